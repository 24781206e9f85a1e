package models

import (
	"time"
)

// DeveloperProfile is the one-to-one extension of a User with the developer
// (or admin) role. Rating and ReviewCount are aggregates recomputed from
// approved reviews of the owner's projects; they are never written directly
// by a request body.
type DeveloperProfile struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	User            User       `gorm:"foreignKey:UserID" json:"user"`
	Expertise       StringList `gorm:"type:text" json:"expertise"`
	YearsExperience int        `json:"years_experience"`
	WebsiteURL      string     `json:"website_url"`
	GithubURL       string     `json:"github_url"`
	HourlyRate      float64    `json:"hourly_rate"`
	Bio             string     `gorm:"type:text" json:"bio"`
	Available       bool       `gorm:"not null;default:true" json:"available"`
	Rating          float64    `gorm:"not null;default:0;index" json:"rating"`
	ReviewCount     int        `gorm:"not null;default:0" json:"review_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
