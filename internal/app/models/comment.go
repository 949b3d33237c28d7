package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is a threaded remark on a resource
type Comment struct {
	ID              int64     `db:"id" json:"id"`
	ResourceID      uuid.UUID `db:"resource_id" json:"resourceId"`
	UserID          int64     `db:"user_id" json:"userId"`
	Content         string    `db:"content" json:"content"`
	ParentCommentID *int64    `db:"parent_comment_id" json:"parentId,omitempty"` // Pointer to handle NULL
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`

	AuthorFirstName string `json:"-"`
	AuthorLastName  string `json:"-"`
}

// AuthorName returns "First Last" of the comment's author
func (c *Comment) AuthorName() string {
	return strings.TrimSpace(c.AuthorFirstName + " " + c.AuthorLastName)
}

// IsReply reports whether the comment answers another comment
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
