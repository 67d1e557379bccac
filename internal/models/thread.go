package models

import (
	"time"

	"gorm.io/gorm"
)

// Thread is a time-boxed discussion. StartTime < EndTime holds from creation
// on; neither is ever updated.
type Thread struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	GroupID     uint64         `gorm:"not null;index" json:"group_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	StartTime   time.Time      `gorm:"not null" json:"start_time"`
	EndTime     time.Time      `gorm:"not null;index" json:"end_time"`
	CreatedByID uint64         `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Group    Group     `gorm:"foreignKey:GroupID" json:"-"`
	Comments []Comment `gorm:"foreignKey:ThreadID" json:"-"`
}
