package models

import (
	"time"
)

// Notification types emitted by moderation flows.
const (
	NotificationTypeReviewApproved = "review_approved"
	NotificationTypeReviewRejected = "review_rejected"
	NotificationTypeReportResolved = "report_resolved"
)

// Notification is a per-user message created by other flows (review
// moderation, report resolution) and consumed by its owner.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	RelatedID *uint     `json:"related_id,omitempty"`
	Read      bool      `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
