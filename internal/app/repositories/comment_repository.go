package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/dberrors"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	DB *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) selectCommentQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.resource_id", "c.user_id", "c.content", "c.parent_comment_id", "c.created_at",
		"u.first_name", "u.last_name",
	).From("comments c").
		Join("users u ON c.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID, &c.ResourceID, &c.UserID, &c.Content, &c.ParentCommentID, &c.CreatedAt,
		&c.AuthorFirstName, &c.AuthorLastName,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a comment and fills its id and creation time
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	sqlStr, args, err := squirrel.Insert("comments").
		Columns("resource_id", "user_id", "content", "parent_comment_id").
		Values(comment.ResourceID, comment.UserID, comment.Content, comment.ParentCommentID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return writeError(err, "comments", "inserting comment")
	}
	return nil
}

// GetByID retrieves a single comment with its author name
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sqlStr, args, err := r.selectCommentQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	comment, err := scanComment(r.DB.QueryRow(ctx, sqlStr, args...))
	if err != nil && !errors.Is(err, apperrors.ErrCommentNotFound) {
		return nil, fmt.Errorf("error fetching comment: %w", err)
	}
	return comment, err
}

// ListByResource returns every comment of a resource, replies included, newest first
func (r *CommentRepository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*models.Comment, error) {
	sqlStr, args, err := r.selectCommentQuery().
		Where("c.resource_id = ?", resourceID).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CountByResources returns the number of comments, replies included, per resource
func (r *CommentRepository) CountByResources(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	sqlStr, args, err := squirrel.Select("resource_id", "COUNT(*)").
		From("comments").
		Where("resource_id = ANY(?::uuid[])", uuidArray(ids)).
		GroupBy("resource_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}
