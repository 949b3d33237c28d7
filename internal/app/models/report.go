package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportFlag is a user's report of a resource
type ReportFlag struct {
	ID         int64     `db:"id" json:"id"`
	ResourceID uuid.UUID `db:"resource_id" json:"resourceId"`
	UserID     int64     `db:"user_id" json:"userId"`
	Reason     string    `db:"reason" json:"reason"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
