package constants

// Session and context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
	ContextKeyGroup     = "group"
	ContextKeyThread    = "thread"
	SessionCookieName   = "thread_session"
	HeaderRequestID     = "X-Request-ID"
)

// Validation limits
const (
	MinPasswordLength      = 8
	MinUsernameLength      = 3
	MinGroupNameLength     = 3
	MinGroupPasswordLength = 4
	MinThreadTitleLength   = 3
	MaxThreadTitleLength   = 200
	MaxCommentLength       = 2000
)
