package models

import (
	"time"
)

// BookmarkTarget discriminates what a bookmark points at.
type BookmarkTarget string

const (
	BookmarkTargetProject   BookmarkTarget = "project"
	BookmarkTargetDeveloper BookmarkTarget = "developer"
)

// Valid reports whether the target type is known.
func (t BookmarkTarget) Valid() bool {
	return t == BookmarkTargetProject || t == BookmarkTargetDeveloper
}

// Bookmark saves a project or developer profile for a user. The composite
// unique index backs the application-level duplicate check so concurrent
// identical requests cannot create two rows.
type Bookmark struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_bookmark_owner_target" json:"user_id"`
	TargetType BookmarkTarget `gorm:"not null;uniqueIndex:idx_bookmark_owner_target" json:"target_type"`
	TargetID   uint           `gorm:"not null;uniqueIndex:idx_bookmark_owner_target" json:"target_id"`
	CreatedAt  time.Time      `json:"created_at"`
}
