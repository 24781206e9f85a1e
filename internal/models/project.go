package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectStatus is the publication state of a project. Any status may follow
// any other; there is no enforced state machine.
type ProjectStatus string

const (
	ProjectStatusDraft       ProjectStatus = "draft"
	ProjectStatusActive      ProjectStatus = "active"
	ProjectStatusUnderReview ProjectStatus = "under_review"
)

// Valid reports whether the status is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusDraft || s == ProjectStatusActive || s == ProjectStatusUnderReview
}

// Project represents a community-built software project showcased on the
// platform.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	TechStack   StringList     `gorm:"type:text" json:"tech_stack"`
	MediaURL    string         `json:"media_url"`
	RepoURL     string         `json:"repo_url"`
	LiveURL     string         `json:"live_url"`
	Status      ProjectStatus  `gorm:"not null;default:draft;index" json:"status"`
	Budget      float64        `json:"budget"`
	Featured    bool           `gorm:"not null;default:false;index" json:"featured"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
