package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/unishare/internal/app/auth"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/repositories"
	"github.com/yigit/unishare/internal/db"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/auth"
	"github.com/yigit/unishare/internal/pkg/notify"
)

var errStoreDown = errors.New("connection refused")

type ratingKey struct {
	resourceID uuid.UUID
	userID     int64
}

type reactionKey struct {
	commentID int64
	userID    int64
}

// fakeDB is an in-memory stand-in for the Postgres schema. It enforces the same
// uniqueness rules the real constraints do.
type fakeDB struct {
	mu sync.Mutex

	users          map[int64]*models.User
	resources      map[uuid.UUID]*models.Resource
	ratings        map[ratingKey]int
	comments       []*models.Comment
	reactions      map[reactionKey]*models.CommentReaction
	reports        []*models.ReportFlag
	nextID         int64
	clock          time.Time
	fail           error
	losingInsertOn *reactionKey
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:     make(map[int64]*models.User),
		resources: make(map[uuid.UUID]*models.Resource),
		ratings:   make(map[ratingKey]int),
		reactions: make(map[reactionKey]*models.CommentReaction),
		clock:     time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeDB) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeDB) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeDB) addUser(id int64, first, last string) *auth.CurrentUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = &models.User{ID: id, FirstName: first, LastName: last}
	return &auth.CurrentUser{ID: id, FirstName: first, LastName: last}
}

func (f *fakeDB) addResource(ownerID int64, title string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.resources[id] = &models.Resource{
		ID:         id,
		Title:      title,
		UploaderID: ownerID,
		FileURL:    "https://files.example/" + id.String(),
		Tags:       "exam, notes",
		CreatedAt:  f.tick(),
		Uploader:   f.users[ownerID],
	}
	return id
}

// knownUser mirrors the user_id foreign keys; callers hold f.mu
func (f *fakeDB) knownUser(id int64) bool {
	_, ok := f.users[id]
	return ok
}

func (f *fakeDB) setFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

func (f *fakeDB) ratingRows(resourceID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.ratings {
		if k.resourceID == resourceID {
			n++
		}
	}
	return n
}

func (f *fakeDB) commentRows() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.comments)
}

func (f *fakeDB) views(id uuid.UUID) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resources[id].ViewsCount
}

// fakeResources implements ResourceStore
type fakeResources struct{ *fakeDB }

func (f fakeResources) GetByID(_ context.Context, id uuid.UUID) (*models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	r, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *r
	return &cp, nil
}

func (f fakeResources) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return false, f.fail
	}
	_, ok := f.resources[id]
	return ok, nil
}

func (f fakeResources) GetOwner(_ context.Context, id uuid.UUID) (*models.ResourceOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	r, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return &models.ResourceOwner{ResourceID: id, Title: r.Title, OwnerID: r.UploaderID}, nil
}

func (f fakeResources) List(_ context.Context, filter models.ResourceFilter, offset, limit uint64) ([]*models.Resource, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, 0, f.fail
	}
	var all []*models.Resource
	for _, r := range f.resources {
		if filter.CourseCode != "" && r.CourseCode != filter.CourseCode {
			continue
		}
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.Resource{}, total, nil
	}
	end := offset + limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[offset:end], total, nil
}

func (f fakeResources) IncrementCounter(_ context.Context, column repositories.CounterColumn, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	r, ok := f.resources[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	switch column {
	case repositories.ViewsCounter:
		r.ViewsCount++
	case repositories.DownloadsCounter:
		r.DownloadsCount++
	}
	return nil
}

func (f fakeResources) GetCounters(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]repositories.ResourceCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make(map[uuid.UUID]repositories.ResourceCounters)
	for _, id := range ids {
		if r, ok := f.resources[id]; ok {
			out[id] = repositories.ResourceCounters{Views: r.ViewsCount, Downloads: r.DownloadsCount}
		}
	}
	return out, nil
}

// fakeRatings implements RatingStore with upsert semantics
type fakeRatings struct{ *fakeDB }

func (f fakeRatings) Upsert(_ context.Context, resourceID uuid.UUID, userID int64, value int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return false, f.fail
	}
	if !f.knownUser(userID) {
		return false, apperrors.ErrUnauthorized
	}
	key := ratingKey{resourceID, userID}
	_, existed := f.ratings[key]
	f.ratings[key] = value
	return !existed, nil
}

func (f fakeRatings) GetUserRating(_ context.Context, resourceID uuid.UUID, userID int64) (*int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	if v, ok := f.ratings[ratingKey{resourceID, userID}]; ok {
		return &v, nil
	}
	return nil, nil
}

func (f fakeRatings) GetAggregate(ctx context.Context, resourceID uuid.UUID) (models.RatingAggregate, error) {
	all, err := f.GetAggregates(ctx, []uuid.UUID{resourceID})
	if err != nil {
		return models.RatingAggregate{}, err
	}
	return all[resourceID], nil
}

func (f fakeRatings) GetAggregates(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.RatingAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	sums := make(map[uuid.UUID]int)
	out := make(map[uuid.UUID]models.RatingAggregate)
	for k, v := range f.ratings {
		agg := out[k.resourceID]
		agg.Count++
		sums[k.resourceID] += v
		out[k.resourceID] = agg
	}
	wanted := make(map[uuid.UUID]models.RatingAggregate)
	for _, id := range ids {
		if agg, ok := out[id]; ok {
			agg.Average = float64(sums[id]) / float64(agg.Count)
			wanted[id] = agg
		}
	}
	return wanted, nil
}

// fakeComments implements CommentStore
type fakeComments struct{ *fakeDB }

func (f fakeComments) Create(_ context.Context, c *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if !f.knownUser(c.UserID) {
		return apperrors.ErrUnauthorized
	}
	c.ID = f.id()
	c.CreatedAt = f.tick()
	if u, ok := f.users[c.UserID]; ok {
		c.AuthorFirstName, c.AuthorLastName = u.FirstName, u.LastName
	}
	cp := *c
	f.comments = append(f.comments, &cp)
	return nil
}

func (f fakeComments) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for _, c := range f.comments {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCommentNotFound
}

func (f fakeComments) ListByResource(_ context.Context, resourceID uuid.UUID) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]*models.Comment, 0)
	for i := len(f.comments) - 1; i >= 0; i-- {
		if f.comments[i].ResourceID == resourceID {
			cp := *f.comments[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f fakeComments) CountByResources(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make(map[uuid.UUID]int64)
	for _, c := range f.comments {
		out[c.ResourceID]++
	}
	wanted := make(map[uuid.UUID]int64)
	for _, id := range ids {
		if n, ok := out[id]; ok {
			wanted[id] = n
		}
	}
	return wanted, nil
}

// fakeReactions implements ReactionStore with the (comment, user) unique constraint
type fakeReactions struct{ *fakeDB }

func (f fakeReactions) GetForUpdate(_ context.Context, _ db.Querier, commentID, userID int64) (*models.CommentReaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	if r, ok := f.reactions[reactionKey{commentID, userID}]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f fakeReactions) Insert(_ context.Context, _ db.Querier, commentID, userID int64, t models.ReactionType) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return false, f.fail
	}
	if !f.knownUser(userID) {
		return false, apperrors.ErrUnauthorized
	}
	key := reactionKey{commentID, userID}
	if f.losingInsertOn != nil && *f.losingInsertOn == key {
		// simulate a concurrent request that committed the same reaction first
		f.losingInsertOn = nil
		f.reactions[key] = &models.CommentReaction{ID: f.id(), CommentID: commentID, UserID: userID, Type: t}
		return false, nil
	}
	if _, ok := f.reactions[key]; ok {
		return false, nil
	}
	f.reactions[key] = &models.CommentReaction{ID: f.id(), CommentID: commentID, UserID: userID, Type: t}
	return true, nil
}

func (f fakeReactions) UpdateType(_ context.Context, _ db.Querier, id int64, t models.ReactionType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	for _, r := range f.reactions {
		if r.ID == id {
			r.Type = t
			return nil
		}
	}
	return errors.New("no such reaction")
}

func (f fakeReactions) Delete(_ context.Context, _ db.Querier, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	for k, r := range f.reactions {
		if r.ID == id {
			delete(f.reactions, k)
			return nil
		}
	}
	return errors.New("no such reaction")
}

func (f fakeReactions) CountsByComment(ctx context.Context, commentID int64) (models.ReactionCounts, error) {
	all, err := f.CountsByComments(ctx, []int64{commentID})
	if err != nil {
		return models.ReactionCounts{}, err
	}
	return all[commentID], nil
}

func (f fakeReactions) CountsByComments(_ context.Context, ids []int64) (map[int64]models.ReactionCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make(map[int64]models.ReactionCounts)
	for _, r := range f.reactions {
		if !wanted[r.CommentID] {
			continue
		}
		c := out[r.CommentID]
		if r.Type == models.ReactionLike {
			c.Likes++
		} else {
			c.Dislikes++
		}
		out[r.CommentID] = c
	}
	return out, nil
}

func (f fakeReactions) UserReactions(_ context.Context, userID int64, ids []int64) (map[int64]models.ReactionType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make(map[int64]models.ReactionType)
	for _, id := range ids {
		if r, ok := f.reactions[reactionKey{id, userID}]; ok {
			out[id] = r.Type
		}
	}
	return out, nil
}

// fakeReports implements ReportStore
type fakeReports struct{ *fakeDB }

func (f fakeReports) Create(_ context.Context, r *models.ReportFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if !f.knownUser(r.UserID) {
		return apperrors.ErrUnauthorized
	}
	r.ID = f.id()
	cp := *r
	f.reports = append(f.reports, &cp)
	return nil
}

// fakeUsers implements appauth.UserLookup
type fakeUsers struct{ *fakeDB }

func (f fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

// fakeTx runs the function without a real transaction
type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

// recordingNotifier captures notifications synchronously
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (n *recordingNotifier) Notify(msg notify.Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return true
}

func (n *recordingNotifier) all() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Notification(nil), n.sent...)
}

// recordingCache is a map-backed cache.PageCache
type recordingCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string][]byte)}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *recordingCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

func (c *recordingCache) Ping(context.Context) error { return nil }
func (c *recordingCache) Close() error               { return nil }

func (c *recordingCache) deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deletes...)
}

// fixture wires every service over one fakeDB
type fixture struct {
	db        *fakeDB
	notifier  *recordingNotifier
	pages     *recordingCache
	stats     StatsService
	ratings   RatingService
	comments  CommentService
	reactions ReactionService
	reports   ReportService
	tracker   CounterTracker
	resources ResourceService
}

func newFixture() *fixture {
	fdb := newFakeDB()
	notifier := &recordingNotifier{}
	pages := newRecordingCache()
	logger := zerolog.Nop()
	actors := appauth.NewActorResolver(fakeUsers{fdb})

	stats := NewStatsService(fakeResources{fdb}, fakeRatings{fdb}, fakeComments{fdb}, logger)
	tracker := NewCounterTracker(fakeResources{fdb}, pages, time.Second, logger)

	return &fixture{
		db:        fdb,
		notifier:  notifier,
		pages:     pages,
		stats:     stats,
		ratings:   NewRatingService(fakeResources{fdb}, fakeRatings{fdb}, actors, notifier, logger),
		comments:  NewCommentService(fakeResources{fdb}, fakeComments{fdb}, fakeReactions{fdb}, actors, notifier, logger),
		reactions: NewReactionService(fakeTx{}, fakeComments{fdb}, fakeReactions{fdb}, logger),
		reports:   NewReportService(fakeResources{fdb}, fakeReports{fdb}, logger),
		tracker:   tracker,
		resources: NewResourceService(fakeResources{fdb}, stats, tracker, pages, logger),
	}
}
