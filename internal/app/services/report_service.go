package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/auth"
	"github.com/yigit/unishare/internal/pkg/validation"
)

// ReportService defines the interface for reporting resources
type ReportService interface {
	ReportResource(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser, reason string) error
}

type reportServiceImpl struct {
	resources ResourceStore
	reports   ReportStore
	logger    zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(resources ResourceStore, reports ReportStore, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		resources: resources,
		reports:   reports,
		logger:    logger.With().Str("service", "report").Logger(),
	}
}

// ReportResource flags a resource for moderation
func (s *reportServiceImpl) ReportResource(ctx context.Context, resourceID uuid.UUID, user *auth.CurrentUser, reason string) error {
	reason = strings.TrimSpace(reason)
	if !validation.ValidReason(reason) {
		return apperrors.NewFieldValidationError("reason", "Reason must be between 1 and 255 characters")
	}
	if user == nil {
		return apperrors.ErrUnauthorized
	}

	exists, err := s.resources.Exists(ctx, resourceID)
	if err != nil {
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Msg("Failed to check resource")
		return apperrors.NewStoreError("check resource", err)
	}
	if !exists {
		return apperrors.NewNotFoundError(apperrors.ErrResourceNotFound, "Resource not found")
	}

	report := &models.ReportFlag{
		ResourceID: resourceID,
		UserID:     user.ID,
		Reason:     reason,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrResourceNotFound):
			return apperrors.NewNotFoundError(apperrors.ErrResourceNotFound, "Resource not found")
		case errors.Is(err, apperrors.ErrUnauthorized):
			s.logger.Warn().Int64("userID", user.ID).Msg("Report rejected, token names an unknown user")
			return apperrors.ErrUnauthorized
		}
		s.logger.Error().Err(err).Str("resourceID", resourceID.String()).Int64("userID", user.ID).Msg("Failed to save report")
		return apperrors.NewStoreError("save report", err)
	}

	s.logger.Info().Str("resourceID", resourceID.String()).Int64("reportID", report.ID).Msg("Resource reported")
	return nil
}
