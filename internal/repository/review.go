package repository

import (
	"context"
	"errors"

	"forgehub/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for project reviews.
type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]models.Review, error)
	ListPending(ctx context.Context, limit, offset int) ([]models.Review, error)
	HasUserReviewed(ctx context.Context, projectID, userID uint) (bool, error)
	CountByStatus(ctx context.Context, status models.ReviewStatus) (int64, error)
	Distribution(ctx context.Context, projectID uint) (map[int]int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ReviewStatus) (*models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

// ListByProject returns approved reviews only; pending and rejected ones are
// visible through the moderation queue.
func (r *reviewRepository) ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ? AND status = ?", projectID, models.ReviewStatusApproved).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListPending(ctx context.Context, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", models.ReviewStatusPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) HasUserReviewed(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *reviewRepository) CountByStatus(ctx context.Context, status models.ReviewStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Distribution returns approved review counts keyed by rating, with every
// bucket 1 through 5 present even when empty.
func (r *reviewRepository) Distribution(ctx context.Context, projectID uint) (map[int]int64, error) {
	type bucket struct {
		Rating int
		Count  int64
	}
	var rows []bucket
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("project_id = ? AND status = ?", projectID, models.ReviewStatusApproved).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	dist := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}
	return dist, nil
}

func (r *reviewRepository) UpdateStatus(ctx context.Context, id uint, status models.ReviewStatus) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}

	review.Status = status
	if err := r.db.WithContext(ctx).Model(&review).Update("status", status).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}
