// Package service holds domain workflows that span multiple repositories.
package service

import (
	"context"
	"fmt"

	"forgehub/internal/middleware"
	"forgehub/internal/models"
	"forgehub/internal/repository"
	"forgehub/internal/validation"
)

type ReviewService struct {
	reviewRepo       repository.ReviewRepository
	projectRepo      repository.ProjectRepository
	developerRepo    repository.DeveloperRepository
	notificationRepo repository.NotificationRepository
}

type CreateReviewInput struct {
	UserID    uint
	ProjectID uint
	Rating    int
	Title     string
	Comment   string
}

type ModerateReviewInput struct {
	ReviewID uint
	Approve  bool
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	projectRepo repository.ProjectRepository,
	developerRepo repository.DeveloperRepository,
	notificationRepo repository.NotificationRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:       reviewRepo,
		projectRepo:      projectRepo,
		developerRepo:    developerRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateReview submits a review in pending state. Project owners cannot
// review their own projects, and a user gets one review per project.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	project, err := s.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	if project.UserID == in.UserID {
		return nil, models.NewValidationError("You cannot review your own project")
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Comment == "" {
		return nil, models.NewValidationError("Comment is required")
	}
	if len(in.Comment) > 5000 {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	reviewed, err := s.reviewRepo.HasUserReviewed(ctx, in.ProjectID, in.UserID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, models.NewConflictError("You have already reviewed this project")
	}

	review := &models.Review{
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
		Status:    models.ReviewStatusPending,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, review.ID)
}

// ModerateReview approves or rejects a pending review. Approval feeds the
// project owner's developer rating aggregates; either outcome notifies the
// review author.
func (s *ReviewService) ModerateReview(ctx context.Context, in ModerateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if review.Status != models.ReviewStatusPending {
		return nil, models.NewValidationError("Review has already been moderated")
	}

	status := models.ReviewStatusRejected
	if in.Approve {
		status = models.ReviewStatusApproved
	}

	updated, err := s.reviewRepo.UpdateStatus(ctx, in.ReviewID, status)
	if err != nil {
		return nil, err
	}

	if in.Approve {
		if err := s.refreshOwnerStats(ctx, review.ProjectID); err != nil {
			// Aggregates are recomputed on the next approval; the moderation
			// itself already committed.
			middleware.Logger.Error("failed to refresh developer rating stats",
				"review_id", review.ID, "error", err)
		}
	}

	s.notifyAuthor(ctx, updated, in.Approve)
	return updated, nil
}

func (s *ReviewService) refreshOwnerStats(ctx context.Context, projectID uint) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	profile, err := s.developerRepo.GetByUserID(ctx, project.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		// Owner never created a developer profile; nothing to aggregate.
		return nil
	}
	return s.developerRepo.RefreshRatingStats(ctx, profile.ID)
}

func (s *ReviewService) notifyAuthor(ctx context.Context, review *models.Review, approved bool) {
	notification := &models.Notification{
		UserID:    review.UserID,
		RelatedID: &review.ID,
	}
	if approved {
		notification.Type = models.NotificationTypeReviewApproved
		notification.Title = "Review approved"
		notification.Message = fmt.Sprintf("Your review %q is now visible.", review.Title)
	} else {
		notification.Type = models.NotificationTypeReviewRejected
		notification.Title = "Review rejected"
		notification.Message = fmt.Sprintf("Your review %q was not approved.", review.Title)
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		middleware.Logger.Error("failed to create review notification",
			"review_id", review.ID, "error", err)
	}
}
