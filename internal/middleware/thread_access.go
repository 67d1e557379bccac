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

// RequireThreadMember checks that the caller belongs to the group of the
// thread named by the :id parameter.
func RequireThreadMember(threadService *services.ThreadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		threadID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid thread ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		thread, err := threadService.GetThreadForMember(threadID, userID)
		if err != nil {
			// Return 404 instead of 403 to avoid leaking thread existence
			if errors.Is(err, services.ErrThreadNotFound) {
				apierrors.NotFound(c, "Thread not found")
			} else {
				apierrors.InternalError(c, "Failed to load thread")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyThread, *thread)
		c.Next()
	}
}

// GetThread returns the thread stored by RequireThreadMember
func GetThread(c *gin.Context) (models.Thread, bool) {
	v, exists := c.Get(constants.ContextKeyThread)
	if !exists {
		return models.Thread{}, false
	}
	thread, ok := v.(models.Thread)
	return thread, ok
}
