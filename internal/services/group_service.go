package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"github.com/yukikurage/anonymous-thread-api/internal/repository"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"github.com/yukikurage/anonymous-thread-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound            = errors.New("group not found")
	ErrInvalidGroupName         = errors.New("group name too short")
	ErrGroupPasswordTooShort    = errors.New("group password too short")
	ErrGroupKeyGenerationFailed = errors.New("failed to generate group key")
	ErrInvalidGroupCredentials  = errors.New("invalid group key or password")
	ErrAlreadyGroupMember       = errors.New("user is already a member of this group")
	ErrNotGroupMember           = errors.New("user is not a member of the group")
	ErrNotGroupCreator          = errors.New("only the group creator can perform this action")
)

// GroupService provides business logic for group operations.
type GroupService struct {
	groupRepo repository.GroupRepository
	clock     reveal.Clock
	log       logging.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, clock reveal.Clock, log logging.Logger) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		clock:     clock,
		log:       log,
	}
}

// CreateGroupInput represents parameters to create a new group.
type CreateGroupInput struct {
	Name      string
	Password  string
	CreatorID uint64
}

// CreateGroup creates a group with a fresh join key; the creator becomes its
// first member.
func (s *GroupService) CreateGroup(ctx context.Context, input CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if len([]rune(name)) < constants.MinGroupNameLength {
		return nil, ErrInvalidGroupName
	}
	if len(input.Password) < constants.MinGroupPasswordLength {
		return nil, ErrGroupPasswordTooShort
	}

	groupKey, err := utils.GenerateGroupKey()
	if err != nil {
		return nil, ErrGroupKeyGenerationFailed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	group := &models.Group{
		Name:         name,
		GroupKey:     groupKey,
		PasswordHash: string(hashed),
		CreatedByID:  input.CreatorID,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.groupRepo.CreateWithCreator(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.log.Info(ctx, "group created", "group_id", group.ID, "user_id", input.CreatorID)
	return group, nil
}

// ListGroupsForUser returns the memberships of a user with their groups loaded.
func (s *GroupService) ListGroupsForUser(userID uint64) ([]models.GroupMember, error) {
	memberships, err := s.groupRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return memberships, nil
}

// GetGroupForMember returns the group if userID belongs to it. Non-members get
// ErrGroupNotFound so the group's existence is not disclosed.
func (s *GroupService) GetGroupForMember(groupID, userID uint64) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	if err := s.EnsureMember(groupID, userID); err != nil {
		if errors.Is(err, ErrNotGroupMember) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	return group, nil
}

// ListMembers returns all members of a group with their users loaded.
func (s *GroupService) ListMembers(groupID uint64) ([]models.GroupMember, error) {
	members, err := s.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

// JoinGroupInput holds the credentials needed to join a group.
type JoinGroupInput struct {
	UserID   uint64
	GroupKey string
	Password string
}

// JoinGroup adds a user to the group identified by key once the group
// password matches.
func (s *GroupService) JoinGroup(ctx context.Context, input JoinGroupInput) (*models.Group, error) {
	group, err := s.groupRepo.FindByGroupKey(strings.TrimSpace(input.GroupKey))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group by key: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(group.PasswordHash), []byte(input.Password)); err != nil {
		s.log.Warn(ctx, "group join rejected", "group_id", group.ID, "user_id", input.UserID)
		return nil, ErrInvalidGroupCredentials
	}

	if _, err := s.groupRepo.FindMember(group.ID, input.UserID); err == nil {
		return nil, ErrAlreadyGroupMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.GroupMember{
		GroupID:  group.ID,
		UserID:   input.UserID,
		JoinedAt: s.clock.Now(),
	}

	if err := s.groupRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to group: %w", err)
	}

	s.log.Info(ctx, "group joined", "group_id", group.ID, "user_id", input.UserID)
	return group, nil
}

// RegenerateGroupKey replaces the join key. Only the creator may do this;
// existing members are unaffected.
func (s *GroupService) RegenerateGroupKey(ctx context.Context, groupID, actorID uint64) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	if group.CreatedByID != actorID {
		return nil, ErrNotGroupCreator
	}

	key, err := utils.GenerateGroupKey()
	if err != nil {
		return nil, ErrGroupKeyGenerationFailed
	}

	if err := s.groupRepo.UpdateGroupKey(group.ID, key); err != nil {
		return nil, fmt.Errorf("failed to update group key: %w", err)
	}
	group.GroupKey = key

	s.log.Info(ctx, "group key regenerated", "group_id", group.ID)
	return group, nil
}

// EnsureMember verifies that a user belongs to a group.
func (s *GroupService) EnsureMember(groupID, userID uint64) error {
	_, err := s.groupRepo.FindMember(groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotGroupMember
		}
		return fmt.Errorf("failed to verify group membership: %w", err)
	}
	return nil
}
