package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is an authored article. The slug is derived from the title and is
// unique across all posts, published or not.
type BlogPost struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Title     string         `gorm:"not null" json:"title"`
	Slug      string         `gorm:"unique;not null" json:"slug"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Excerpt   string         `json:"excerpt"`
	Category  string         `gorm:"index" json:"category"`
	Tags      StringList     `gorm:"type:text" json:"tags"`
	Published bool           `gorm:"not null;default:false;index" json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
