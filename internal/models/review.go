package models

import (
	"time"

	"gorm.io/gorm"
)

// ReviewStatus is the moderation state of a review. New reviews start as
// pending and only admins move them to approved or rejected.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is a rated write-up of a project by another user. Only approved
// reviews are publicly visible and counted in rating aggregates.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"not null;index" json:"project_id"`
	Project   Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Rating    int            `gorm:"not null" json:"rating"`
	Title     string         `gorm:"not null" json:"title"`
	Comment   string         `gorm:"type:text" json:"comment"`
	Status    ReviewStatus   `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
