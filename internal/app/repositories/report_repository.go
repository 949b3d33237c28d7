package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unishare/internal/app/models"
)

// ReportRepository stores resource reports
type ReportRepository struct {
	DB *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

// Create inserts a report flag
func (r *ReportRepository) Create(ctx context.Context, report *models.ReportFlag) error {
	sqlStr, args, err := squirrel.Insert("report_flags").
		Columns("resource_id", "user_id", "reason").
		Values(report.ResourceID, report.UserID, report.Reason).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&report.ID, &report.CreatedAt); err != nil {
		return writeError(err, "report_flags", "inserting report")
	}
	return nil
}
