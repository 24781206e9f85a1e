package models

import (
	"time"
)

// ReportTarget discriminates what a report is filed against.
type ReportTarget string

const (
	ReportTargetProject ReportTarget = "project"
	ReportTargetReview  ReportTarget = "review"
)

// Valid reports whether the target type is known.
func (t ReportTarget) Valid() bool {
	return t == ReportTargetProject || t == ReportTargetReview
}

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Report is a user-filed complaint against a project or review, worked by
// admins.
type Report struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ReporterID  uint         `gorm:"not null;index" json:"reporter_id"`
	Reporter    User         `gorm:"foreignKey:ReporterID" json:"reporter"`
	TargetType  ReportTarget `gorm:"not null" json:"target_type"`
	TargetID    uint         `gorm:"not null" json:"target_id"`
	Reason      string       `gorm:"not null" json:"reason"`
	Description string       `gorm:"type:text" json:"description"`
	Status      ReportStatus `gorm:"not null;default:pending;index" json:"status"`
	AdminNotes  string       `gorm:"type:text" json:"admin_notes"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
