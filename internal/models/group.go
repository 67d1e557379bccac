package models

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	GroupKey     string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"group_key"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedByID  uint64         `gorm:"not null;index" json:"created_by_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Threads []Thread      `gorm:"foreignKey:GroupID" json:"threads,omitempty"`
}
