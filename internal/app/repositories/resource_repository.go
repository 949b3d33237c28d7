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
	"github.com/yigit/unishare/internal/pkg/logger"
)

// CounterColumn is a monotonic counter of the resources table
type CounterColumn string

const (
	ViewsCounter     CounterColumn = "views_count"
	DownloadsCounter CounterColumn = "downloads_count"
)

// ResourceCounters holds the view and download counters of a resource
type ResourceCounters struct {
	Views     int64
	Downloads int64
}

// ResourceRepository handles database operations for resources
type ResourceRepository struct {
	DB *pgxpool.Pool
}

// NewResourceRepository creates a new instance of ResourceRepository.
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) selectResourceQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.title", "r.description", "r.uploader_id", "r.course_code", "r.semester",
		"r.university", "r.file_url", "r.mime_type", "r.size_bytes", "r.views_count",
		"r.downloads_count", "r.tags", "r.created_at",
		"u.first_name", "u.last_name",
	).From("resources r").
		Join("users u ON r.uploader_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var res models.Resource
	uploader := &models.User{}
	err := row.Scan(
		&res.ID, &res.Title, &res.Description, &res.UploaderID, &res.CourseCode, &res.Semester,
		&res.University, &res.FileURL, &res.MimeType, &res.SizeBytes, &res.ViewsCount,
		&res.DownloadsCount, &res.Tags, &res.CreatedAt,
		&uploader.FirstName, &uploader.LastName,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	uploader.ID = res.UploaderID
	res.Uploader = uploader
	return &res, nil
}

// GetByID retrieves a single resource with its uploader name
func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	sqlStr, args, err := r.selectResourceQuery().Where("r.id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	res, err := scanResource(r.DB.QueryRow(ctx, sqlStr, args...))
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		logger.Error().Err(err).Str("resourceID", id.String()).Msg("Error scanning resource")
	}
	return res, err
}

// Exists reports whether a resource with the given id exists
func (r *ResourceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	sqlStr, args, err := squirrel.Select("1").
		Prefix("SELECT EXISTS (").
		From("resources").
		Where("id = ?", id).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking resource existence: %w", err)
	}
	return exists, nil
}

// GetOwner returns the title and uploader of a resource
func (r *ResourceRepository) GetOwner(ctx context.Context, id uuid.UUID) (*models.ResourceOwner, error) {
	sqlStr, args, err := squirrel.Select("id", "title", "uploader_id").
		From("resources").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var owner models.ResourceOwner
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&owner.ResourceID, &owner.Title, &owner.OwnerID)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error fetching resource owner: %w", err)
	}
	return &owner, nil
}

func applyResourceFilter(q squirrel.SelectBuilder, f models.ResourceFilter) squirrel.SelectBuilder {
	if f.CourseCode != "" {
		q = q.Where(squirrel.Eq{"r.course_code": f.CourseCode})
	}
	if f.University != "" {
		q = q.Where(squirrel.ILike{"r.university": f.University})
	}
	if f.Semester != "" {
		q = q.Where(squirrel.Eq{"r.semester": f.Semester})
	}
	return q
}

// List returns one page of resources matching the filter, newest first, plus the total count
func (r *ResourceRepository) List(ctx context.Context, filter models.ResourceFilter, offset, limit uint64) ([]*models.Resource, int64, error) {
	countSQL, countArgs, err := applyResourceFilter(
		squirrel.Select("COUNT(*)").From("resources r").PlaceholderFormat(squirrel.Dollar), filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int64
	if err := r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting resources: %w", err)
	}

	if total == 0 {
		return []*models.Resource{}, 0, nil
	}

	sqlStr, args, err := applyResourceFilter(r.selectResourceQuery(), filter).
		OrderBy("r.created_at DESC", "r.id").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	resources := make([]*models.Resource, 0, limit)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return resources, total, nil
}

// incrementCounterQuery builds an in-place increment; the new value is computed by the database
func incrementCounterQuery(column CounterColumn, id uuid.UUID) squirrel.UpdateBuilder {
	col := string(column)
	return squirrel.Update("resources").
		Set(col, squirrel.Expr(col+" + 1")).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)
}

// IncrementCounter atomically adds one to a counter column
func (r *ResourceRepository) IncrementCounter(ctx context.Context, column CounterColumn, id uuid.UUID) error {
	if column != ViewsCounter && column != DownloadsCounter {
		return fmt.Errorf("unknown counter column %q", column)
	}

	sqlStr, args, err := incrementCounterQuery(column, id).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error incrementing %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetCounters returns the view and download counters of the given resources
func (r *ResourceRepository) GetCounters(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ResourceCounters, error) {
	counters := make(map[uuid.UUID]ResourceCounters, len(ids))
	if len(ids) == 0 {
		return counters, nil
	}

	sqlStr, args, err := squirrel.Select("id", "views_count", "downloads_count").
		From("resources").
		Where("id = ANY(?::uuid[])", uuidArray(ids)).
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
		var c ResourceCounters
		if err := rows.Scan(&id, &c.Views, &c.Downloads); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counters[id] = c
	}
	return counters, rows.Err()
}
