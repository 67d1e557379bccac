package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/dto"
	apierrors "github.com/yukikurage/anonymous-thread-api/internal/errors"
	"github.com/yukikurage/anonymous-thread-api/internal/middleware"
	"github.com/yukikurage/anonymous-thread-api/internal/services"
)

// GroupHandler serves group endpoints.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// CreateGroupRequest is the body of POST /api/groups.
type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

// JoinGroupRequest is the body of POST /api/groups/join.
type JoinGroupRequest struct {
	GroupKey string `json:"group_key" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateGroup creates a group owned by the caller.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), services.CreateGroupInput{
		Name:      req.Name,
		Password:  req.Password,
		CreatorID: userID,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group))
}

// ListGroups returns the groups the caller belongs to.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.groupService.ListGroupsForUser(userID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": dto.ToGroupListDTO(memberships)})
}

// GetGroup returns a group with its members.
// Group is already loaded by RequireGroupMember middleware
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, ok := middleware.GetGroup(c)
	if !ok {
		apierrors.InternalError(c, "Group not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	members, err := h.groupService.ListMembers(group.ID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDetailDTO(group, members, userID))
}

// JoinGroup adds the caller to the group matching key and password.
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.JoinGroup(c.Request.Context(), services.JoinGroupInput{
		UserID:   userID,
		GroupKey: req.GroupKey,
		Password: req.Password,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDTO(*group))
}

// RegenerateGroupKey issues a new join key. Creator only.
func (h *GroupHandler) RegenerateGroupKey(c *gin.Context) {
	group, ok := middleware.GetGroup(c)
	if !ok {
		apierrors.InternalError(c, "Group not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	updated, err := h.groupService.RegenerateGroupKey(c.Request.Context(), group.ID, userID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDTO(*updated))
}

func respondGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidGroupName):
		apierrors.ValidationError(c, fmt.Sprintf("Group name must be at least %d characters", constants.MinGroupNameLength))
	case errors.Is(err, services.ErrGroupPasswordTooShort):
		apierrors.ValidationError(c, fmt.Sprintf("Group password must be at least %d characters", constants.MinGroupPasswordLength))
	case errors.Is(err, services.ErrGroupNotFound):
		apierrors.NotFound(c, "Group not found")
	case errors.Is(err, services.ErrInvalidGroupCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrAlreadyGroupMember):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrNotGroupCreator):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
