package repository

import (
	"context"
	"errors"

	"forgehub/internal/cache"
	"forgehub/internal/models"

	"gorm.io/gorm"
)

// DeveloperRepository defines persistence operations for developer profiles.
type DeveloperRepository interface {
	GetByID(ctx context.Context, id uint) (*models.DeveloperProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.DeveloperProfile, error)
	Create(ctx context.Context, profile *models.DeveloperProfile) error
	Update(ctx context.Context, profile *models.DeveloperProfile) error
	List(ctx context.Context, availableOnly bool, limit, offset int) ([]models.DeveloperProfile, error)
	TopRated(ctx context.Context, limit int) ([]models.DeveloperProfile, error)
	Count(ctx context.Context) (int64, error)
	RefreshRatingStats(ctx context.Context, profileID uint) error
}

type developerRepository struct {
	db *gorm.DB
}

// NewDeveloperRepository returns a new DeveloperRepository implementation.
func NewDeveloperRepository(db *gorm.DB) DeveloperRepository {
	return &developerRepository{db: db}
}

func (r *developerRepository) GetByID(ctx context.Context, id uint) (*models.DeveloperProfile, error) {
	var profile models.DeveloperProfile
	key := cache.DeveloperKey(id)

	err := cache.Aside(ctx, key, &profile, cache.DeveloperTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").First(&profile, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Developer profile", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *developerRepository) GetByUserID(ctx context.Context, userID uint) (*models.DeveloperProfile, error) {
	var profile models.DeveloperProfile
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *developerRepository) Create(ctx context.Context, profile *models.DeveloperProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Developer profile already exists for this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *developerRepository) Update(ctx context.Context, profile *models.DeveloperProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDeveloper(ctx, profile.ID)
	return nil
}

func (r *developerRepository) List(ctx context.Context, availableOnly bool, limit, offset int) ([]models.DeveloperProfile, error) {
	var profiles []models.DeveloperProfile
	q := r.db.WithContext(ctx).Preload("User")
	if availableOnly {
		q = q.Where("available = ?", true)
	}
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *developerRepository) TopRated(ctx context.Context, limit int) ([]models.DeveloperProfile, error) {
	var profiles []models.DeveloperProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("review_count > 0").
		Order("rating DESC, review_count DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *developerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.DeveloperProfile{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// RefreshRatingStats recomputes the aggregate rating and review count from
// approved reviews of the profile owner's projects.
func (r *developerRepository) RefreshRatingStats(ctx context.Context, profileID uint) error {
	var profile models.DeveloperProfile
	if err := r.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Developer profile", profileID)
		}
		return models.NewInternalError(err)
	}

	type stats struct {
		Avg   float64
		Count int64
	}
	var agg stats
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Joins("JOIN projects ON projects.id = reviews.project_id").
		Where("projects.user_id = ? AND reviews.status = ?", profile.UserID, models.ReviewStatusApproved).
		Scan(&agg).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	updates := map[string]interface{}{
		"rating":       agg.Avg,
		"review_count": agg.Count,
	}
	if err := r.db.WithContext(ctx).Model(&profile).Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDeveloper(ctx, profileID)
	return nil
}
