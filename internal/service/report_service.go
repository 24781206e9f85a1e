package service

import (
	"context"
	"fmt"

	"forgehub/internal/middleware"
	"forgehub/internal/models"
	"forgehub/internal/repository"
)

type ReportService struct {
	reportRepo       repository.ReportRepository
	projectRepo      repository.ProjectRepository
	reviewRepo       repository.ReviewRepository
	notificationRepo repository.NotificationRepository
}

type CreateReportInput struct {
	ReporterID  uint
	TargetType  models.ReportTarget
	TargetID    uint
	Reason      string
	Description string
}

type ResolveReportInput struct {
	ReportID   uint
	Status     models.ReportStatus
	AdminNotes string
}

func NewReportService(
	reportRepo repository.ReportRepository,
	projectRepo repository.ProjectRepository,
	reviewRepo repository.ReviewRepository,
	notificationRepo repository.NotificationRepository,
) *ReportService {
	return &ReportService{
		reportRepo:       reportRepo,
		projectRepo:      projectRepo,
		reviewRepo:       reviewRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateReport files a report against a project or review after verifying
// the target exists.
func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if !in.TargetType.Valid() {
		return nil, models.NewValidationError("Target type must be project or review")
	}
	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Description) > 2000 {
		return nil, models.NewValidationError("Description too long (max 2000 characters)")
	}

	switch in.TargetType {
	case models.ReportTargetProject:
		if _, err := s.projectRepo.GetByID(ctx, in.TargetID); err != nil {
			return nil, err
		}
	case models.ReportTargetReview:
		if _, err := s.reviewRepo.GetByID(ctx, in.TargetID); err != nil {
			return nil, err
		}
	}

	report := &models.Report{
		ReporterID:  in.ReporterID,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		Reason:      in.Reason,
		Description: in.Description,
		Status:      models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByID(ctx, report.ID)
}

// ResolveReport closes a pending report and notifies the reporter when it
// was resolved in their favor.
func (s *ReportService) ResolveReport(ctx context.Context, in ResolveReportInput) (*models.Report, error) {
	if in.Status != models.ReportStatusResolved && in.Status != models.ReportStatusDismissed {
		return nil, models.NewValidationError("Status must be resolved or dismissed")
	}

	report, err := s.reportRepo.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ReportStatusPending {
		return nil, models.NewValidationError("Report has already been processed")
	}

	report.Status = in.Status
	report.AdminNotes = in.AdminNotes
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	if in.Status == models.ReportStatusResolved {
		notification := &models.Notification{
			UserID:    report.ReporterID,
			Type:      models.NotificationTypeReportResolved,
			Title:     "Report resolved",
			Message:   fmt.Sprintf("Your report about a %s has been resolved.", report.TargetType),
			RelatedID: &report.ID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			middleware.Logger.Error("failed to create report notification",
				"report_id", report.ID, "error", err)
		}
	}

	return report, nil
}
