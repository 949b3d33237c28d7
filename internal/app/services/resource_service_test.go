package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/cache"
)

func TestGetResource_RecordsViewAndCachesBody(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Discrete math notes")
	ctx := context.Background()

	resp, err := f.resources.GetResource(ctx, id)
	require.NoError(t, err)
	f.tracker.Wait()

	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, "Ada Lovelace", resp.Uploader)
	assert.Equal(t, []string{"exam", "notes"}, resp.Tags)
	assert.Equal(t, int64(1), f.db.views(id))

	// the body stays cached across views while the count is read fresh
	_, cached := f.pages.Get(ctx, cache.ResourcePageKey(id.String()))
	assert.True(t, cached)

	resp, err = f.resources.GetResource(ctx, id)
	require.NoError(t, err)
	f.tracker.Wait()
	assert.Equal(t, int64(1), resp.Stats.Views)
	assert.Equal(t, int64(2), f.db.views(id))
	assert.Empty(t, f.pages.deleted())
}

func TestGetResource_ServesCachedBodyWithFreshStats(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	rater := f.db.addUser(2, "Alan", "Turing")
	id := f.db.addResource(1, "Discrete math notes")
	ctx := context.Background()

	key := cache.ResourcePageKey(id.String())
	require.NoError(t, f.pages.Set(ctx, key, []byte(`{"id":"`+id.String()+`","title":"From cache","tags":[]}`)))
	_, err := f.ratings.SubmitRating(ctx, id, rater, 5)
	require.NoError(t, err)

	resp, err := f.resources.GetResource(ctx, id)
	require.NoError(t, err)
	f.tracker.Wait()

	assert.Equal(t, "From cache", resp.Title)
	assert.Equal(t, 5.0, resp.Stats.Rating)
	assert.Equal(t, int64(1), resp.Stats.Reviews)
}

func TestGetResource_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.resources.GetResource(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	f.tracker.Wait()
}

func TestDownloadURL(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Discrete math notes")

	url, err := f.resources.DownloadURL(context.Background(), id)
	require.NoError(t, err)
	f.tracker.Wait()

	assert.Equal(t, "https://files.example/"+id.String(), url)
	assert.Equal(t, int64(1), f.stats.GetStats(context.Background(), id).Downloads)
}

func TestListResources(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	rater := f.db.addUser(2, "Alan", "Turing")
	first := f.db.addResource(1, "Oldest")
	f.db.addResource(1, "Middle")
	newest := f.db.addResource(1, "Newest")
	ctx := context.Background()

	_, err := f.ratings.SubmitRating(ctx, first, rater, 4)
	require.NoError(t, err)

	page, err := f.resources.ListResources(ctx, models.ResourceFilter{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Resources, 2)
	assert.Equal(t, newest.String(), page.Resources[0].ID)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)

	page, err = f.resources.ListResources(ctx, models.ResourceFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Resources, 1)
	assert.Equal(t, first.String(), page.Resources[0].ID)
	assert.Equal(t, 4.0, page.Resources[0].Stats.Rating)
}
