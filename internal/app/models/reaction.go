package models

import "time"

// ReactionType is the kind of reaction a user leaves on a comment
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid reports whether t is a known reaction type
func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// CommentReaction is one user's like or dislike of one comment
type CommentReaction struct {
	ID        int64        `db:"id" json:"id"`
	CommentID int64        `db:"comment_id" json:"commentId"`
	UserID    int64        `db:"user_id" json:"userId"`
	Type      ReactionType `db:"type" json:"type"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
}

// ReactionCounts holds the live like/dislike totals of a comment
type ReactionCounts struct {
	Likes    int64
	Dislikes int64
}
