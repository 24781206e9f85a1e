package repository

import (
	"context"

	"forgehub/internal/models"

	"gorm.io/gorm"
)

// BookmarkRepository defines persistence operations for bookmarks.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) error
	ListByUser(ctx context.Context, userID uint, targetType models.BookmarkTarget, limit, offset int) ([]models.Bookmark, error)
	Delete(ctx context.Context, userID, id uint) error
	Exists(ctx context.Context, userID uint, targetType models.BookmarkTarget, targetID uint) (bool, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository returns a new BookmarkRepository implementation.
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		// The composite unique index makes concurrent duplicates lose here
		// instead of slipping past a read-then-write check.
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Bookmark already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint, targetType models.BookmarkTarget, limit, offset int) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if targetType != "" {
		q = q.Where("target_type = ?", targetType)
	}
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bookmarks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookmarks, nil
}

// Delete removes a bookmark scoped to its owner; deleting someone else's
// bookmark reports not found rather than forbidden.
func (r *bookmarkRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Bookmark{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Bookmark", id)
	}
	return nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID uint, targetType models.BookmarkTarget, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
