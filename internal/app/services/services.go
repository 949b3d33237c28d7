package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/repositories"
	"github.com/yigit/unishare/internal/db"
)

// The store interfaces below are the slices of the repositories each service
// depends on. The concrete repositories in internal/app/repositories satisfy them.

// ResourceStore reads resources and mutates their counters
type ResourceStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetOwner(ctx context.Context, id uuid.UUID) (*models.ResourceOwner, error)
	List(ctx context.Context, filter models.ResourceFilter, offset, limit uint64) ([]*models.Resource, int64, error)
	IncrementCounter(ctx context.Context, column repositories.CounterColumn, id uuid.UUID) error
	GetCounters(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]repositories.ResourceCounters, error)
}

// RatingStore persists ratings and computes their aggregates
type RatingStore interface {
	Upsert(ctx context.Context, resourceID uuid.UUID, userID int64, value int) (bool, error)
	GetUserRating(ctx context.Context, resourceID uuid.UUID, userID int64) (*int, error)
	GetAggregate(ctx context.Context, resourceID uuid.UUID) (models.RatingAggregate, error)
	GetAggregates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.RatingAggregate, error)
}

// CommentStore persists comments
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*models.Comment, error)
	CountByResources(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

// ReactionStore persists comment reactions
type ReactionStore interface {
	GetForUpdate(ctx context.Context, q db.Querier, commentID, userID int64) (*models.CommentReaction, error)
	Insert(ctx context.Context, q db.Querier, commentID, userID int64, reactionType models.ReactionType) (bool, error)
	UpdateType(ctx context.Context, q db.Querier, id int64, reactionType models.ReactionType) error
	Delete(ctx context.Context, q db.Querier, id int64) error
	CountsByComment(ctx context.Context, commentID int64) (models.ReactionCounts, error)
	CountsByComments(ctx context.Context, commentIDs []int64) (map[int64]models.ReactionCounts, error)
	UserReactions(ctx context.Context, userID int64, commentIDs []int64) (map[int64]models.ReactionType, error)
}

// ReportStore persists resource reports
type ReportStore interface {
	Create(ctx context.Context, report *models.ReportFlag) error
}

var (
	_ ResourceStore = (*repositories.ResourceRepository)(nil)
	_ RatingStore   = (*repositories.RatingRepository)(nil)
	_ CommentStore  = (*repositories.CommentRepository)(nil)
	_ ReactionStore = (*repositories.ReactionRepository)(nil)
	_ ReportStore   = (*repositories.ReportRepository)(nil)
)
