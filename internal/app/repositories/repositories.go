package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ResourceRepository     *ResourceRepository
	RatingRepository       *RatingRepository
	CommentRepository      *CommentRepository
	ReactionRepository     *ReactionRepository
	ReportRepository       *ReportRepository
	UserRepository         *UserRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ResourceRepository:     NewResourceRepository(db),
		RatingRepository:       NewRatingRepository(db),
		CommentRepository:      NewCommentRepository(db),
		ReactionRepository:     NewReactionRepository(db),
		ReportRepository:       NewReportRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
