package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unishare/internal/app/repositories"
	"github.com/yigit/unishare/internal/pkg/cache"
)

// CounterTracker records views and downloads. Tracking is best-effort: calls return
// immediately and failures are only logged.
type CounterTracker interface {
	TrackView(ctx context.Context, resourceID uuid.UUID)
	TrackDownload(ctx context.Context, resourceID uuid.UUID)
	// Wait blocks until every in-flight increment has finished
	Wait()
}

type counterTrackerImpl struct {
	resources ResourceStore
	pages     cache.PageCache
	timeout   time.Duration
	logger    zerolog.Logger
	wg        sync.WaitGroup
}

// NewCounterTracker creates a new CounterTracker
func NewCounterTracker(resources ResourceStore, pages cache.PageCache, timeout time.Duration, logger zerolog.Logger) CounterTracker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &counterTrackerImpl{
		resources: resources,
		pages:     pages,
		timeout:   timeout,
		logger:    logger.With().Str("service", "tracker").Logger(),
	}
}

func (t *counterTrackerImpl) TrackView(ctx context.Context, resourceID uuid.UUID) {
	t.track(ctx, repositories.ViewsCounter, resourceID)
}

func (t *counterTrackerImpl) TrackDownload(ctx context.Context, resourceID uuid.UUID) {
	t.track(ctx, repositories.DownloadsCounter, resourceID)
}

func (t *counterTrackerImpl) Wait() {
	t.wg.Wait()
}

// track runs the increment detached from the request so a finished or cancelled
// request does not abort it. Cached pages carry no counters, so views leave the
// page entry alone; a download still refreshes it.
func (t *counterTrackerImpl) track(ctx context.Context, column repositories.CounterColumn, resourceID uuid.UUID) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()

		if err := t.resources.IncrementCounter(ctx, column, resourceID); err != nil {
			t.logger.Warn().Err(err).
				Str("resourceID", resourceID.String()).
				Str("counter", string(column)).
				Msg("Failed to increment counter")
			return
		}

		if column == repositories.ViewsCounter {
			return
		}
		if err := t.pages.Delete(ctx, cache.ResourcePageKey(resourceID.String())); err != nil {
			t.logger.Warn().Err(err).Str("resourceID", resourceID.String()).Msg("Failed to invalidate resource page")
		}
	}()
}
