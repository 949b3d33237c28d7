package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/repositories"
	"golang.org/x/sync/errgroup"
)

// StatsService computes resource popularity snapshots. It never fails: when the
// store is unreachable it returns zeroed snapshots flagged as unavailable.
type StatsService interface {
	GetStats(ctx context.Context, resourceID uuid.UUID) models.ResourceStats
	GetStatsBatch(ctx context.Context, resourceIDs []uuid.UUID) map[uuid.UUID]models.ResourceStats
}

type statsServiceImpl struct {
	resources ResourceStore
	ratings   RatingStore
	comments  CommentStore
	logger    zerolog.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(resources ResourceStore, ratings RatingStore, comments CommentStore, logger zerolog.Logger) StatsService {
	return &statsServiceImpl{
		resources: resources,
		ratings:   ratings,
		comments:  comments,
		logger:    logger.With().Str("service", "stats").Logger(),
	}
}

// GetStats returns the snapshot of a single resource
func (s *statsServiceImpl) GetStats(ctx context.Context, resourceID uuid.UUID) models.ResourceStats {
	return s.GetStatsBatch(ctx, []uuid.UUID{resourceID})[resourceID]
}

// GetStatsBatch returns one snapshot per requested id. The three sources are
// queried concurrently, each with a single grouped query.
func (s *statsServiceImpl) GetStatsBatch(ctx context.Context, resourceIDs []uuid.UUID) map[uuid.UUID]models.ResourceStats {
	ids := dedupe(resourceIDs)
	result := make(map[uuid.UUID]models.ResourceStats, len(ids))
	if len(ids) == 0 {
		return result
	}

	var (
		ratings  map[uuid.UUID]models.RatingAggregate
		comments map[uuid.UUID]int64
		counters map[uuid.UUID]repositories.ResourceCounters
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ratings, err = s.ratings.GetAggregates(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.CountByResources(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		counters, err = s.resources.GetCounters(gctx, ids)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("resources", len(ids)).Msg("Failed to aggregate resource stats")
		for _, id := range ids {
			result[id] = models.UnavailableStats()
		}
		return result
	}

	for _, id := range ids {
		rating := ratings[id]
		counter := counters[id]
		result[id] = models.ResourceStats{
			Rating:    models.RoundAverage(rating.Average),
			Reviews:   rating.Count,
			Views:     counter.Views,
			Comments:  comments[id],
			Downloads: counter.Downloads,
		}
	}
	return result
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
