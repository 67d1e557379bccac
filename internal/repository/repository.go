package repository

import (
	"github.com/yukikurage/anonymous-thread-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByIDs returns the users that still exist among ids, keyed by ID
	FindByIDs(ids []uint64) (map[uint64]*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	// CreateWithCreator creates a group and the creator's membership atomically
	CreateWithCreator(group *models.Group) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.Group, error)

	// FindByGroupKey finds a group by its join key
	FindByGroupKey(key string) (*models.Group, error)

	// UpdateGroupKey replaces a group's join key
	UpdateGroupKey(id uint64, key string) error

	// AddMember adds a member to a group
	AddMember(member *models.GroupMember) error

	// FindMember finds a specific group member
	FindMember(groupID, userID uint64) (*models.GroupMember, error)

	// ListMembershipsByUserID lists all groups a user is a member of
	ListMembershipsByUserID(userID uint64) ([]models.GroupMember, error)

	// ListMembers lists all members of a group
	ListMembers(groupID uint64) ([]models.GroupMember, error)
}

// ThreadRepository defines the interface for thread data access
type ThreadRepository interface {
	// Create creates a new thread, rejecting an invalid time window
	Create(thread *models.Thread) error

	// FindByID finds a thread by ID
	FindByID(id uint64) (*models.Thread, error)

	// ListByGroup lists a group's threads, latest end time first
	ListByGroup(groupID uint64) ([]models.Thread, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// CreateForThread inserts a comment after confirming its thread exists,
	// within one transaction
	CreateForThread(comment *models.Comment) error

	// ListByThread lists a thread's comments in creation order
	ListByThread(threadID uint64) ([]models.Comment, error)

	// CountByThreads counts comments per thread
	CountByThreads(threadIDs []uint64) (map[uint64]int64, error)
}
