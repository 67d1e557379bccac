package models

import "time"

// Comment is immutable once written. It has no UpdatedAt and no soft delete:
// thread expiry changes what readers see, never what is stored.
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ThreadID  uint64    `gorm:"not null;index" json:"thread_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint64    `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
