package repository

import (
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"gorm.io/gorm"
)

// GormThreadRepository is a GORM implementation of ThreadRepository
type GormThreadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &GormThreadRepository{db: db}
}

// Create creates a new thread. An empty or inverted window fails with
// reveal.ErrInvalidRange before anything is written.
func (r *GormThreadRepository) Create(thread *models.Thread) error {
	if err := reveal.ValidateWindow(thread.StartTime, thread.EndTime); err != nil {
		return err
	}
	return r.db.Create(thread).Error
}

// FindByID finds a thread by ID
func (r *GormThreadRepository) FindByID(id uint64) (*models.Thread, error) {
	var thread models.Thread
	if err := r.db.First(&thread, id).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// ListByGroup lists a group's threads, latest end time first
func (r *GormThreadRepository) ListByGroup(groupID uint64) ([]models.Thread, error) {
	var threads []models.Thread
	if err := r.db.Where("group_id = ?", groupID).
		Order("end_time DESC").
		Order("id DESC").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}
