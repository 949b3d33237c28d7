package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/models/dto"
)

func TestGetStats_FreshResourceIsZero(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Operating Systems final")

	assert.Equal(t, models.ResourceStats{}, f.stats.GetStats(context.Background(), id))
}

func TestGetStats_TracksRatingsAndComments(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	a := f.db.addUser(2, "Alan", "Turing")
	b := f.db.addUser(3, "Grace", "Hopper")
	id := f.db.addResource(1, "Operating Systems final")
	ctx := context.Background()

	_, err := f.ratings.SubmitRating(ctx, id, a, 4)
	require.NoError(t, err)
	stats := f.stats.GetStats(ctx, id)
	assert.Equal(t, 4.0, stats.Rating)
	assert.Equal(t, int64(1), stats.Reviews)

	_, err = f.ratings.SubmitRating(ctx, id, b, 2)
	require.NoError(t, err)
	stats = f.stats.GetStats(ctx, id)
	assert.Equal(t, 3.0, stats.Rating)
	assert.Equal(t, int64(2), stats.Reviews)

	_, err = f.comments.CreateComment(ctx, id, a, dto.CreateCommentRequest{Content: "Great summary"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.stats.GetStats(ctx, id).Comments)
}

func TestGetStats_RoundsAverage(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Operating Systems final")
	ctx := context.Background()

	for i, v := range []int{5, 4, 4} {
		user := f.db.addUser(int64(10+i), "User", "X")
		_, err := f.ratings.SubmitRating(ctx, id, user, v)
		require.NoError(t, err)
	}

	assert.Equal(t, 4.33, f.stats.GetStats(ctx, id).Rating)
}

func TestGetStatsBatch(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	rater := f.db.addUser(2, "Alan", "Turing")
	rated := f.db.addResource(1, "Networks lab")
	plain := f.db.addResource(1, "Compilers notes")
	unknown := uuid.New()
	ctx := context.Background()

	_, err := f.ratings.SubmitRating(ctx, rated, rater, 5)
	require.NoError(t, err)

	got := f.stats.GetStatsBatch(ctx, []uuid.UUID{rated, plain, unknown, rated})
	require.Len(t, got, 3)
	assert.Equal(t, 5.0, got[rated].Rating)
	assert.Equal(t, models.ResourceStats{}, got[plain])
	assert.Equal(t, models.ResourceStats{}, got[unknown])

	assert.Empty(t, f.stats.GetStatsBatch(ctx, nil))
}

func TestGetStatsBatch_StoreFailure(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	a := f.db.addResource(1, "Networks lab")
	b := f.db.addResource(1, "Compilers notes")
	f.db.setFailure(errStoreDown)

	got := f.stats.GetStatsBatch(context.Background(), []uuid.UUID{a, b})
	require.Len(t, got, 2)
	for _, stats := range got {
		assert.True(t, stats.Unavailable)
		assert.Zero(t, stats.Reviews)
	}
}
