package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	apierrors "github.com/yukikurage/anonymous-thread-api/internal/errors"
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"github.com/yukikurage/anonymous-thread-api/internal/services"
)

// RequireGroupMember loads the group named by the :id parameter and checks
// the caller belongs to it. Non-members get 404 so the group's existence is
// not disclosed.
func RequireGroupMember(groupService *services.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid group ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		group, err := groupService.GetGroupForMember(groupID, userID)
		if err != nil {
			if errors.Is(err, services.ErrGroupNotFound) {
				apierrors.NotFound(c, "Group not found")
			} else {
				apierrors.InternalError(c, "Failed to load group")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyGroup, *group)
		c.Next()
	}
}

// GetGroup returns the group stored by RequireGroupMember
func GetGroup(c *gin.Context) (models.Group, bool) {
	v, exists := c.Get(constants.ContextKeyGroup)
	if !exists {
		return models.Group{}, false
	}
	group, ok := v.(models.Group)
	return group, ok
}
