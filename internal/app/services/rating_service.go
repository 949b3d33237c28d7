package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/unishare/internal/app/auth"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/auth"
	"github.com/yigit/unishare/internal/pkg/notify"
	"github.com/yigit/unishare/internal/pkg/validation"
)

// RatingService defines the interface for rating operations
type RatingService interface {
	GetRating(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser) *dto.RatingResponse
	SubmitRating(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser, value int) (*dto.RatingResponse, error)
}

type ratingServiceImpl struct {
	resources ResourceStore
	ratings   RatingStore
	actors    *appauth.ActorResolver
	notifier  notify.Notifier
	logger    zerolog.Logger
}

// NewRatingService creates a new RatingService
func NewRatingService(
	resources ResourceStore,
	ratings RatingStore,
	actors *appauth.ActorResolver,
	notifier notify.Notifier,
	logger zerolog.Logger,
) RatingService {
	return &ratingServiceImpl{
		resources: resources,
		ratings:   ratings,
		actors:    actors,
		notifier:  notifier,
		logger:    logger.With().Str("service", "rating").Logger(),
	}
}

// GetRating returns the rating aggregate and, for an authenticated caller, their own rating.
// Store failures degrade to a zeroed response flagged as unavailable.
func (s *ratingServiceImpl) GetRating(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser) *dto.RatingResponse {
	resp := s.aggregate(ctx, resourceID)
	if user == nil || resp.Unavailable {
		return resp
	}

	userRating, err := s.ratings.GetUserRating(ctx, resourceID, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Int64("userID", user.ID).Msg("Failed to load user rating")
		resp.Unavailable = true
		return resp
	}
	resp.UserRating = userRating
	return resp
}

// SubmitRating records the caller's rating. The first rating of a resource by a
// user notifies the owner; later ones overwrite the value silently.
func (s *ratingServiceImpl) SubmitRating(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser, value int) (*dto.RatingResponse, error) {
	if !validation.ValidRating(value) {
		return nil, apperrors.NewFieldValidationError("value", "Rating value must be an integer between 1 and 5")
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}

	owner, err := s.resources.GetOwner(ctx, resourceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrResourceNotFound, "Resource not found")
		}
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Msg("Failed to load resource owner")
		return nil, apperrors.NewStoreError("load resource", err)
	}

	inserted, err := s.ratings.Upsert(ctx, resourceID, user.ID, value)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrResourceNotFound):
			// deleted after the owner lookup
			return nil, apperrors.NewNotFoundError(apperrors.ErrResourceNotFound, "Resource not found")
		case errors.Is(err, apperrors.ErrUnauthorized):
			s.logger.Warn().Int64("userID", user.ID).Msg("Rating rejected, token names an unknown user")
			return nil, apperrors.ErrUnauthorized
		}
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Int64("userID", user.ID).Msg("Failed to save rating")
		return nil, apperrors.NewStoreError("save rating", err)
	}

	if inserted && !appauth.IsOwner(owner, user) {
		s.notifier.Notify(notify.Notification{
			UserID:  owner.OwnerID,
			Type:    notify.TypeRating,
			Message: notify.RatingMessage(s.actors.DisplayName(ctx, user), owner.Title, value),
			Link:    notify.ResourceLink(resourceID.String()),
		})
	}

	resp := s.aggregate(ctx, resourceID)
	resp.UserRating = &value
	return resp, nil
}

func (s *ratingServiceImpl) aggregate(ctx context.Context, resourceID uuid.UUID) *dto.RatingResponse {
	agg, err := s.ratings.GetAggregate(ctx, resourceID)
	if err != nil {
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Msg("Failed to aggregate ratings")
		return &dto.RatingResponse{Unavailable: true}
	}
	return ratingResponse(agg)
}

func ratingResponse(agg models.RatingAggregate) *dto.RatingResponse {
	return &dto.RatingResponse{
		Average: models.RoundAverage(agg.Average),
		Count:   agg.Count,
	}
}
