package dto

import "time"

// CreateCommentRequest is the body of POST /resources/{id}/comments
type CreateCommentRequest struct {
	Content  string `json:"content" example:"Very helpful, thanks!"`
	ParentID *int64 `json:"parentId,omitempty" example:"12"`
}

// CommentResponse is the created comment
type CommentResponse struct {
	ID        int64     `json:"id" example:"42"`
	Content   string    `json:"content" example:"Very helpful, thanks!"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author" example:"John Doe"`
	ParentID  *int64    `json:"parentId" example:"12"`
}

// CommentNode is a comment with its reactions and nested replies
type CommentNode struct {
	ID           int64          `json:"id" example:"42"`
	Author       string         `json:"author" example:"John Doe"`
	Content      string         `json:"content"`
	Timestamp    time.Time      `json:"timestamp"`
	ParentID     *int64         `json:"parentId"`
	Likes        int64          `json:"likes" example:"3"`
	Dislikes     int64          `json:"dislikes" example:"0"`
	UserReaction *string        `json:"userReaction" example:"like"`
	Replies      []*CommentNode `json:"replies"`
}

// ReactRequest is the body of POST /resources/{id}/comments/{commentId}/react
type ReactRequest struct {
	Type string `json:"type" example:"like"`
}

// ReactionResponse is the live reaction state of a comment
type ReactionResponse struct {
	Likes        int64   `json:"likes" example:"3"`
	Dislikes     int64   `json:"dislikes" example:"1"`
	UserReaction *string `json:"userReaction" example:"like"`
}
