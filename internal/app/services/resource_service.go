package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/cache"
	"github.com/yigit/unishare/internal/pkg/helpers"
)

// ResourceService defines the read operations on resources
type ResourceService interface {
	ListResources(ctx context.Context, filter models.ResourceFilter, page, size int) (*dto.ResourceListResponse, error)
	GetResource(ctx context.Context, id uuid.UUID) (*dto.ResourceResponse, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
}

type resourceServiceImpl struct {
	resources ResourceStore
	stats     StatsService
	tracker   CounterTracker
	pages     cache.PageCache
	logger    zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(
	resources ResourceStore,
	stats StatsService,
	tracker CounterTracker,
	pages cache.PageCache,
	logger zerolog.Logger,
) ResourceService {
	return &resourceServiceImpl{
		resources: resources,
		stats:     stats,
		tracker:   tracker,
		pages:     pages,
		logger:    logger.With().Str("service", "resource").Logger(),
	}
}

// ListResources returns one page of resources with their stats, computed in one batch
func (s *resourceServiceImpl) ListResources(ctx context.Context, filter models.ResourceFilter, page, size int) (*dto.ResourceListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	resources, total, err := s.resources.List(ctx, filter, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list resources")
		return nil, apperrors.NewStoreError("list resources", err)
	}

	ids := make([]uuid.UUID, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	stats := s.stats.GetStatsBatch(ctx, ids)

	items := make([]dto.ResourceResponse, 0, len(resources))
	for _, r := range resources {
		items = append(items, dto.FromResource(r, stats[r.ID]))
	}

	return &dto.ResourceListResponse{
		Resources:  items,
		Pagination: helpers.NewPaginationInfo(total, page, int(limit)),
	}, nil
}

// GetResource returns a resource page with fresh stats and records a view
func (s *resourceServiceImpl) GetResource(ctx context.Context, id uuid.UUID) (*dto.ResourceResponse, error) {
	resp, err := s.loadPage(ctx, id)
	if err != nil {
		return nil, err
	}

	resp.Stats = s.stats.GetStats(ctx, id)
	s.tracker.TrackView(ctx, id)
	return resp, nil
}

// DownloadURL returns where the file can be fetched and records a download
func (s *resourceServiceImpl) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	resp, err := s.loadPage(ctx, id)
	if err != nil {
		return "", err
	}

	s.tracker.TrackDownload(ctx, id)
	return resp.FileURL, nil
}

// loadPage reads the resource body through the page cache. Stats are never cached.
func (s *resourceServiceImpl) loadPage(ctx context.Context, id uuid.UUID) (*dto.ResourceResponse, error) {
	key := cache.ResourcePageKey(id.String())

	if raw, ok := s.pages.Get(ctx, key); ok {
		var cached dto.ResourceResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn().Str("key", key).Msg("Dropping undecodable cached page")
		_ = s.pages.Delete(ctx, key)
	}

	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrResourceNotFound, "Resource not found")
		}
		s.logger.Error().Err(err).Str("resourceID", id.String()).Msg("Failed to load resource")
		return nil, apperrors.NewStoreError("load resource", err)
	}

	resp := dto.FromResource(resource, models.ResourceStats{})
	if raw, err := json.Marshal(resp); err == nil {
		if err := s.pages.Set(ctx, key, raw); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache resource page")
		}
	}
	return &resp, nil
}
