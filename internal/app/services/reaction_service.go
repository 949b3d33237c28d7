package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/db"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/auth"
)

// ReactionService defines the interface for comment reactions
type ReactionService interface {
	React(ctx context.Context, resourceID uuid.UUID, commentID int64, user *auth.CurrentUser, reactionType string) (*dto.ReactionResponse, error)
}

type reactionServiceImpl struct {
	tx        db.Transactor
	comments  CommentStore
	reactions ReactionStore
	logger    zerolog.Logger
}

// NewReactionService creates a new ReactionService
func NewReactionService(tx db.Transactor, comments CommentStore, reactions ReactionStore, logger zerolog.Logger) ReactionService {
	return &reactionServiceImpl{
		tx:        tx,
		comments:  comments,
		reactions: reactions,
		logger:    logger.With().Str("service", "reaction").Logger(),
	}
}

// nextReaction is the toggle state machine. Repeating the current reaction clears
// it (nil), anything else becomes the requested reaction.
func nextReaction(current *models.ReactionType, requested models.ReactionType) *models.ReactionType {
	if current != nil && *current == requested {
		return nil
	}
	return &requested
}

// React applies the caller's like or dislike to a comment and returns the live counts
func (s *reactionServiceImpl) React(ctx context.Context, resourceID uuid.UUID, commentID int64, user *auth.CurrentUser, reactionType string) (*dto.ReactionResponse, error) {
	requested := models.ReactionType(reactionType)
	if !requested.Valid() {
		return nil, apperrors.NewFieldValidationError("type", `Reaction type must be "like" or "dislike"`)
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil && !errors.Is(err, apperrors.ErrCommentNotFound) {
		s.logger.Error().Err(err).Int64("commentID", commentID).Msg("Failed to load comment")
		return nil, apperrors.NewStoreError("load comment", err)
	}
	if comment == nil || comment.ResourceID != resourceID {
		return nil, apperrors.NewNotFoundError(apperrors.ErrCommentNotFound, "Comment not found on this resource")
	}

	var final *models.ReactionType
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		existing, err := s.reactions.GetForUpdate(ctx, q, commentID, user.ID)
		if err != nil {
			return err
		}

		if existing == nil {
			inserted, err := s.reactions.Insert(ctx, q, commentID, user.ID, requested)
			if err != nil {
				return err
			}
			if inserted {
				final = &requested
				return nil
			}
			// a concurrent request from the same user created the row first
			existing, err = s.reactions.GetForUpdate(ctx, q, commentID, user.ID)
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("reaction on comment %d vanished during toggle", commentID)
			}
		}

		final = nextReaction(&existing.Type, requested)
		if final == nil {
			return s.reactions.Delete(ctx, q, existing.ID)
		}
		return s.reactions.UpdateType(ctx, q, existing.ID, *final)
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCommentNotFound):
			// deleted after the lookup above
			return nil, apperrors.NewNotFoundError(apperrors.ErrCommentNotFound, "Comment not found on this resource")
		case errors.Is(err, apperrors.ErrUnauthorized):
			s.logger.Warn().Int64("userID", user.ID).Msg("Reaction rejected, token names an unknown user")
			return nil, apperrors.ErrUnauthorized
		}
		s.logger.Error().Err(err).Int64("commentID", commentID).Int64("userID", user.ID).Msg("Failed to toggle reaction")
		return nil, apperrors.NewStoreError("toggle reaction", err)
	}

	counts, err := s.reactions.CountsByComment(ctx, commentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("commentID", commentID).Msg("Failed to count reactions")
		return nil, apperrors.NewStoreError("count reactions", err)
	}

	resp := &dto.ReactionResponse{
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
	}
	if final != nil {
		resp.UserReaction = reactionPtr(*final)
	}
	return resp, nil
}
