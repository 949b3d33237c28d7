package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user's 1-5 score of one resource
type Rating struct {
	ID         int64     `db:"id" json:"id"`
	ResourceID uuid.UUID `db:"resource_id" json:"resourceId"`
	UserID     int64     `db:"user_id" json:"userId"`
	Value      int       `db:"value" json:"value"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// RatingAggregate is the average and number of ratings of a resource
type RatingAggregate struct {
	Average float64
	Count   int64
}
