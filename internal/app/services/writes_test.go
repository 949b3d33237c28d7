package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/auth"
)

// A signed token can outlive the account it names; the users foreign key then
// rejects the write and the caller must sign in again.
func TestWrites_TokenForUnknownUserIsUnauthorized(t *testing.T) {
	f, commentID := newReactionFixture(t)
	resourceID := f.db.comments[0].ResourceID
	ghost := &auth.CurrentUser{ID: 404, FirstName: "Former", LastName: "Student"}
	ctx := context.Background()
	notificationsBefore := len(f.notifier.all())

	tests := []struct {
		name  string
		write func() error
	}{
		{"rating", func() error {
			_, err := f.ratings.SubmitRating(ctx, resourceID, ghost, 5)
			return err
		}},
		{"comment", func() error {
			_, err := f.comments.CreateComment(ctx, resourceID, ghost, dto.CreateCommentRequest{Content: "hello"})
			return err
		}},
		{"reply", func() error {
			_, err := f.comments.CreateComment(ctx, resourceID, ghost, dto.CreateCommentRequest{Content: "hello", ParentID: &commentID})
			return err
		}},
		{"reaction", func() error {
			_, err := f.reactions.React(ctx, resourceID, commentID, ghost, "like")
			return err
		}},
		{"report", func() error {
			return f.reports.ReportResource(ctx, resourceID, ghost, "spam")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.write(), apperrors.ErrUnauthorized)
		})
	}

	assert.Zero(t, f.db.ratingRows(resourceID))
	assert.Equal(t, 1, f.db.commentRows())
	assert.Empty(t, f.db.reactions)
	assert.Empty(t, f.db.reports)
	assert.Len(t, f.notifier.all(), notificationsBefore)
}
