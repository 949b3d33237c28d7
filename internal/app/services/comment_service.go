package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/unishare/internal/app/auth"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/auth"
	"github.com/yigit/unishare/internal/pkg/notify"
	"github.com/yigit/unishare/internal/pkg/validation"
	"golang.org/x/sync/errgroup"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	CreateComment(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser) ([]*dto.CommentNode, error)
}

type commentServiceImpl struct {
	resources ResourceStore
	comments  CommentStore
	reactions ReactionStore
	actors    *appauth.ActorResolver
	notifier  notify.Notifier
	logger    zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	resources ResourceStore,
	comments CommentStore,
	reactions ReactionStore,
	actors *appauth.ActorResolver,
	notifier notify.Notifier,
	logger zerolog.Logger,
) CommentService {
	return &commentServiceImpl{
		resources: resources,
		comments:  comments,
		reactions: reactions,
		actors:    actors,
		notifier:  notifier,
		logger:    logger.With().Str("service", "comment").Logger(),
	}
}

// CreateComment stores a comment or a reply and notifies the resource owner and,
// for replies, the parent's author. Nobody is notified twice or about their own comment.
func (s *commentServiceImpl) CreateComment(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if !validation.ValidComment(content) {
		return nil, apperrors.NewFieldValidationError("content", "Comment must be between 1 and 2000 characters")
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

	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = s.comments.GetByID(ctx, *req.ParentID)
		if err != nil && !errors.Is(err, apperrors.ErrCommentNotFound) {
			s.logger.Error().Err(err).Int64("parentID", *req.ParentID).Msg("Failed to load parent comment")
			return nil, apperrors.NewStoreError("load parent comment", err)
		}
		if parent == nil || parent.ResourceID != resourceID {
			return nil, apperrors.NewFieldValidationError("parentId", "Invalid parent comment")
		}
	}

	comment := &models.Comment{
		ResourceID:      resourceID,
		UserID:          user.ID,
		Content:         content,
		ParentCommentID: req.ParentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrResourceNotFound):
			return nil, apperrors.NewNotFoundError(apperrors.ErrResourceNotFound, "Resource not found")
		case errors.Is(err, apperrors.ErrCommentNotFound):
			return nil, apperrors.NewFieldValidationError("parentId", "Invalid parent comment")
		case errors.Is(err, apperrors.ErrUnauthorized):
			s.logger.Warn().Int64("userID", user.ID).Msg("Comment rejected, token names an unknown user")
			return nil, apperrors.ErrUnauthorized
		}
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Int64("userID", user.ID).Msg("Failed to save comment")
		return nil, apperrors.NewStoreError("save comment", err)
	}

	actor := s.actors.DisplayName(ctx, user)
	link := notify.ResourceLink(resourceID.String())

	if !appauth.IsOwner(owner, user) {
		s.notifier.Notify(notify.Notification{
			UserID:  owner.OwnerID,
			Type:    notify.TypeComment,
			Message: notify.CommentMessage(actor, owner.Title),
			Link:    link,
		})
	}

	if parent != nil && parent.UserID != user.ID && parent.UserID != owner.OwnerID {
		s.notifier.Notify(notify.Notification{
			UserID:  parent.UserID,
			Type:    notify.TypeReply,
			Message: notify.ReplyMessage(actor, owner.Title),
			Link:    link,
		})
	}

	return &dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Timestamp: comment.CreatedAt,
		Author:    actor,
		ParentID:  comment.ParentCommentID,
	}, nil
}

// ListComments returns the comment tree of a resource. Top-level comments come
// newest first, replies in conversation order (oldest first) at every depth.
func (s *commentServiceImpl) ListComments(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser) ([]*dto.CommentNode, error) {
	comments, err := s.comments.ListByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Msg("Failed to list comments")
		return nil, apperrors.NewStoreError("list comments", err)
	}
	if len(comments) == 0 {
		return []*dto.CommentNode{}, nil
	}

	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	var (
		counts map[int64]models.ReactionCounts
		mine   map[int64]models.ReactionType
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.reactions.CountsByComments(gctx, ids)
		return err
	})
	if user != nil {
		g.Go(func() error {
			var err error
			mine, err = s.reactions.UserReactions(gctx, user.ID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Msg("Failed to load comment reactions")
		return nil, apperrors.NewStoreError("load comment reactions", err)
	}

	return buildCommentTree(comments, counts, mine), nil
}

// buildCommentTree assembles comments, given newest first, into nested nodes.
// A reply whose parent is missing from the set is promoted to the top level.
func buildCommentTree(comments []*models.Comment, counts map[int64]models.ReactionCounts, mine map[int64]models.ReactionType) []*dto.CommentNode {
	nodes := make(map[int64]*dto.CommentNode, len(comments))
	for _, c := range comments {
		count := counts[c.ID]
		node := &dto.CommentNode{
			ID:        c.ID,
			Author:    c.AuthorName(),
			Content:   c.Content,
			Timestamp: c.CreatedAt,
			ParentID:  c.ParentCommentID,
			Likes:     count.Likes,
			Dislikes:  count.Dislikes,
			Replies:   []*dto.CommentNode{},
		}
		if t, ok := mine[c.ID]; ok {
			node.UserReaction = reactionPtr(t)
		}
		nodes[c.ID] = node
	}

	roots := make([]*dto.CommentNode, 0)
	for _, c := range comments {
		if c.ParentCommentID == nil || nodes[*c.ParentCommentID] == nil {
			roots = append(roots, nodes[c.ID])
		}
	}

	// walk oldest first so replies end up in conversation order
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if c.ParentCommentID == nil {
			continue
		}
		if parent := nodes[*c.ParentCommentID]; parent != nil {
			parent.Replies = append(parent.Replies, nodes[c.ID])
		}
	}

	return roots
}

func reactionPtr(t models.ReactionType) *string {
	s := string(t)
	return &s
}
