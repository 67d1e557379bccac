package dto

import (
	"time"

	"github.com/yukikurage/anonymous-thread-api/internal/models"
)

// GroupDTO represents a group in API responses
type GroupDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	GroupKey    string    `json:"group_key"`
	CreatedByID uint64    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupMemberDTO represents a member in a group
type GroupMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupDetailDTO represents detailed group information
type GroupDetailDTO struct {
	GroupDTO
	Members   []GroupMemberDTO `json:"members"`
	IsCreator bool             `json:"is_creator"`
}

// ToGroupDTO converts a Group model to GroupDTO. Groups are only rendered
// for members, so the join key is always included.
func ToGroupDTO(group models.Group) GroupDTO {
	return GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		GroupKey:    group.GroupKey,
		CreatedByID: group.CreatedByID,
		CreatedAt:   group.CreatedAt,
	}
}

// ToGroupMemberDTO converts a member to DTO
func ToGroupMemberDTO(member models.GroupMember) GroupMemberDTO {
	return GroupMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToGroupListDTO converts a user's memberships to group DTOs
func ToGroupListDTO(memberships []models.GroupMember) []GroupDTO {
	groups := make([]GroupDTO, len(memberships))
	for i, m := range memberships {
		groups[i] = ToGroupDTO(m.Group)
	}
	return groups
}

// ToGroupDetailDTO converts a group with members to detailed DTO
func ToGroupDetailDTO(group models.Group, members []models.GroupMember, viewerID uint64) GroupDetailDTO {
	memberDTOs := make([]GroupMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToGroupMemberDTO(member)
	}

	return GroupDetailDTO{
		GroupDTO:  ToGroupDTO(group),
		Members:   memberDTOs,
		IsCreator: group.CreatedByID == viewerID,
	}
}
