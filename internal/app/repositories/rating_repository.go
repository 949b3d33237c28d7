package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/pkg/dberrors"
)

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	DB *pgxpool.Pool
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{DB: db}
}

// upsertRatingQuery inserts or overwrites the (resource, user) rating in one statement.
// xmax is zero only for a freshly inserted tuple, which tells the caller whether this
// was the user's first rating of the resource.
func upsertRatingQuery(resourceID uuid.UUID, userID int64, value int) squirrel.InsertBuilder {
	return squirrel.Insert("ratings").
		Columns("resource_id", "user_id", "value").
		Values(resourceID, userID, value).
		Suffix("ON CONFLICT (resource_id, user_id) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW() RETURNING (xmax = 0) AS inserted").
		PlaceholderFormat(squirrel.Dollar)
}

// Upsert records the user's rating and reports whether a new row was created
func (r *RatingRepository) Upsert(ctx context.Context, resourceID uuid.UUID, userID int64, value int) (bool, error) {
	sqlStr, args, err := upsertRatingQuery(resourceID, userID, value).ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var inserted bool
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&inserted); err != nil {
		return false, writeError(err, "ratings", "upserting rating")
	}
	return inserted, nil
}

// GetUserRating returns the caller's rating of a resource, or nil when unrated
func (r *RatingRepository) GetUserRating(ctx context.Context, resourceID uuid.UUID, userID int64) (*int, error) {
	sqlStr, args, err := squirrel.Select("value").
		From("ratings").
		Where("resource_id = ?", resourceID).
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var value int
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&value); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user rating: %w", err)
	}
	return &value, nil
}

// GetAggregate returns the average and count of a resource's ratings
func (r *RatingRepository) GetAggregate(ctx context.Context, resourceID uuid.UUID) (models.RatingAggregate, error) {
	sqlStr, args, err := squirrel.Select("COALESCE(AVG(value), 0)::float8", "COUNT(*)").
		From("ratings").
		Where("resource_id = ?", resourceID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.RatingAggregate{}, fmt.Errorf("error building SQL: %w", err)
	}

	var agg models.RatingAggregate
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&agg.Average, &agg.Count); err != nil {
		return models.RatingAggregate{}, fmt.Errorf("error aggregating ratings: %w", err)
	}
	return agg, nil
}

// GetAggregates returns rating aggregates for several resources. Resources without
// ratings are absent from the map.
func (r *RatingRepository) GetAggregates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.RatingAggregate, error) {
	aggregates := make(map[uuid.UUID]models.RatingAggregate, len(ids))
	if len(ids) == 0 {
		return aggregates, nil
	}

	sqlStr, args, err := squirrel.Select("resource_id", "AVG(value)::float8", "COUNT(*)").
		From("ratings").
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
		var agg models.RatingAggregate
		if err := rows.Scan(&id, &agg.Average, &agg.Count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		aggregates[id] = agg
	}
	return aggregates, rows.Err()
}
