package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unishare/internal/pkg/cache"
)

func TestTrackView_ConcurrentIncrementsAreNotLost(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Thermodynamics")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.tracker.TrackView(context.Background(), id)
		}()
	}
	wg.Wait()
	f.tracker.Wait()

	assert.Equal(t, int64(50), f.db.views(id))
	assert.Equal(t, int64(50), f.stats.GetStats(context.Background(), id).Views)
}

func TestTrackView_SurvivesCancelledRequest(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Thermodynamics")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.tracker.TrackView(ctx, id)
	f.tracker.Wait()

	assert.Equal(t, int64(1), f.db.views(id))
}

func TestTrackView_KeepsCachedPage(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Thermodynamics")
	ctx := context.Background()
	key := cache.ResourcePageKey(id.String())
	require.NoError(t, f.pages.Set(ctx, key, []byte(`{"title":"Thermodynamics"}`)))

	for i := 0; i < 3; i++ {
		f.tracker.TrackView(ctx, id)
	}
	f.tracker.Wait()

	assert.Equal(t, int64(3), f.db.views(id))
	assert.Empty(t, f.pages.deleted())
	_, cached := f.pages.Get(ctx, key)
	assert.True(t, cached)
}

func TestTrackDownload_InvalidatesPage(t *testing.T) {
	f := newFixture()
	f.db.addUser(1, "Ada", "Lovelace")
	id := f.db.addResource(1, "Thermodynamics")

	f.tracker.TrackDownload(context.Background(), id)
	f.tracker.Wait()

	stats := f.stats.GetStats(context.Background(), id)
	assert.Equal(t, int64(1), stats.Downloads)
	assert.Zero(t, stats.Views)
	assert.Equal(t, []string{cache.ResourcePageKey(id.String())}, f.pages.deleted())
}

func TestTrack_FailureIsSwallowed(t *testing.T) {
	f := newFixture()
	missing := uuid.New()

	require.NotPanics(t, func() {
		f.tracker.TrackView(context.Background(), missing)
		f.tracker.Wait()
	})
	assert.Empty(t, f.pages.deleted())
}
