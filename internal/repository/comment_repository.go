package repository

import (
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateForThread share-locks the thread row and inserts the comment in one
// transaction. A missing thread yields gorm.ErrRecordNotFound and no write.
func (r *GormCommentRepository) CreateForThread(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id").
			First(&thread, comment.ThreadID).Error; err != nil {
			return err
		}

		return tx.Create(comment).Error
	})
}

// ListByThread lists a thread's comments in creation order
func (r *GormCommentRepository) ListByThread(threadID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByThreads counts comments per thread. Threads without comments are
// absent from the result.
func (r *GormCommentRepository) CountByThreads(threadIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(threadIDs))
	if len(threadIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ThreadID uint64
		Count    int64
	}
	if err := r.db.Model(&models.Comment{}).
		Select("thread_id, COUNT(*) AS count").
		Where("thread_id IN ?", threadIDs).
		Group("thread_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ThreadID] = row.Count
	}
	return counts, nil
}
