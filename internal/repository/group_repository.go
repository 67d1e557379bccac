package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateGroup is returned when inserting the group row fails.
	ErrCreateGroup = errors.New("group repository: create group failed")
	// ErrCreateGroupMember is returned when inserting the creator's membership fails.
	ErrCreateGroupMember = errors.New("group repository: create group member failed")
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// CreateWithCreator creates the group and makes its creator a member in the
// same transaction, so a group never exists without its creator.
func (r *GormGroupRepository) CreateWithCreator(group *models.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroup, err)
		}

		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   group.CreatedByID,
			JoinedAt: group.CreatedAt,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroupMember, err)
		}

		return nil
	})
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByGroupKey finds a group by its join key
func (r *GormGroupRepository) FindByGroupKey(key string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("group_key = ?", key).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroupKey replaces a group's join key
func (r *GormGroupRepository) UpdateGroupKey(id uint64, key string) error {
	result := r.db.Model(&models.Group{}).Where("id = ?", id).Update("group_key", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddMember adds a member to a group
func (r *GormGroupRepository) AddMember(member *models.GroupMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific group member
func (r *GormGroupRepository) FindMember(groupID, userID uint64) (*models.GroupMember, error) {
	var member models.GroupMember
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembershipsByUserID lists all groups a user is a member of
func (r *GormGroupRepository) ListMembershipsByUserID(userID uint64) ([]models.GroupMember, error) {
	var memberships []models.GroupMember
	if err := r.db.Preload("Group").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of a group
func (r *GormGroupRepository) ListMembers(groupID uint64) ([]models.GroupMember, error) {
	var members []models.GroupMember
	if err := r.db.Preload("User").
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
