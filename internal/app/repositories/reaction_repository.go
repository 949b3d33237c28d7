package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/db"
	"github.com/yigit/unishare/internal/pkg/dberrors"
)

// ReactionRepository handles database operations for comment reactions.
// Methods taking a db.Querier are meant to run inside a transaction.
type ReactionRepository struct {
	DB *pgxpool.Pool
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{DB: db}
}

// GetForUpdate returns the user's reaction on a comment and locks the row, or nil when none exists
func (r *ReactionRepository) GetForUpdate(ctx context.Context, q db.Querier, commentID, userID int64) (*models.CommentReaction, error) {
	sqlStr, args, err := squirrel.Select("id", "comment_id", "user_id", "type", "created_at").
		From("comment_reactions").
		Where(squirrel.Eq{"comment_id": commentID, "user_id": userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var reaction models.CommentReaction
	err = q.QueryRow(ctx, sqlStr, args...).Scan(
		&reaction.ID, &reaction.CommentID, &reaction.UserID, &reaction.Type, &reaction.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching reaction: %w", err)
	}
	return &reaction, nil
}

// Insert adds a reaction. It reports false when a concurrent request created the row first.
func (r *ReactionRepository) Insert(ctx context.Context, q db.Querier, commentID, userID int64, reactionType models.ReactionType) (bool, error) {
	sqlStr, args, err := squirrel.Insert("comment_reactions").
		Columns("comment_id", "user_id", "type").
		Values(commentID, userID, string(reactionType)).
		Suffix("ON CONFLICT (comment_id, user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, writeError(err, "comment_reactions", "inserting reaction")
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateType switches an existing reaction to another type
func (r *ReactionRepository) UpdateType(ctx context.Context, q db.Querier, id int64, reactionType models.ReactionType) error {
	sqlStr, args, err := squirrel.Update("comment_reactions").
		Set("type", string(reactionType)).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("error updating reaction: %w", err)
	}
	return nil
}

// Delete removes a reaction
func (r *ReactionRepository) Delete(ctx context.Context, q db.Querier, id int64) error {
	sqlStr, args, err := squirrel.Delete("comment_reactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("error deleting reaction: %w", err)
	}
	return nil
}

// reactionCountsQuery groups like and dislike totals per comment in a single pass.
// The ids travel as one array parameter so busy threads stay under the bind limit.
func reactionCountsQuery(commentIDs []int64) squirrel.SelectBuilder {
	return squirrel.Select(
		"comment_id",
		"COUNT(*) FILTER (WHERE type = 'like')",
		"COUNT(*) FILTER (WHERE type = 'dislike')",
	).
		From("comment_reactions").
		Where("comment_id = ANY(?::bigint[])", commentIDs).
		GroupBy("comment_id").
		PlaceholderFormat(squirrel.Dollar)
}

// CountsByComments returns like and dislike totals per comment. Comments without
// reactions are absent from the map.
func (r *ReactionRepository) CountsByComments(ctx context.Context, commentIDs []int64) (map[int64]models.ReactionCounts, error) {
	counts := make(map[int64]models.ReactionCounts, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	sqlStr, args, err := reactionCountsQuery(commentIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var commentID int64
		var c models.ReactionCounts
		if err := rows.Scan(&commentID, &c.Likes, &c.Dislikes); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[commentID] = c
	}
	return counts, rows.Err()
}

// CountsByComment returns like and dislike totals of a single comment
func (r *ReactionRepository) CountsByComment(ctx context.Context, commentID int64) (models.ReactionCounts, error) {
	counts, err := r.CountsByComments(ctx, []int64{commentID})
	if err != nil {
		return models.ReactionCounts{}, err
	}
	return counts[commentID], nil
}

func userReactionsQuery(userID int64, commentIDs []int64) squirrel.SelectBuilder {
	return squirrel.Select("comment_id", "type").
		From("comment_reactions").
		Where(squirrel.Eq{"user_id": userID}).
		Where("comment_id = ANY(?::bigint[])", commentIDs).
		PlaceholderFormat(squirrel.Dollar)
}

// UserReactions returns the caller's reaction type per comment
func (r *ReactionRepository) UserReactions(ctx context.Context, userID int64, commentIDs []int64) (map[int64]models.ReactionType, error) {
	reactions := make(map[int64]models.ReactionType, len(commentIDs))
	if len(commentIDs) == 0 {
		return reactions, nil
	}

	sqlStr, args, err := userReactionsQuery(userID, commentIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var commentID int64
		var t models.ReactionType
		if err := rows.Scan(&commentID, &t); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reactions[commentID] = t
	}
	return reactions, rows.Err()
}
