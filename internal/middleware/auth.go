package middleware

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	apierrors "github.com/yukikurage/anonymous-thread-api/internal/errors"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
)

// RequireAuth resolves the session's user id and stores it in the gin
// context as a uint64. A session holding an unusable id is cleared.
func RequireAuth(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)
		if raw == nil {
			log.Debug(ctx, "no session user", "path", c.FullPath())
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, ok := toUserID(raw)
		if !ok {
			log.Warn(ctx, "discarding session with malformed user id", "type", fmt.Sprintf("%T", raw))
			session.Clear()
			if err := session.Save(); err != nil {
				log.Error(ctx, "failed to clear session", "error", err)
			}
			apierrors.Unauthorized(c, "Session is invalid, please log in again")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// toUserID accepts the integer types a session codec may hand back.
func toUserID(v any) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

