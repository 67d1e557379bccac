// Package events publishes domain events to the message broker.
//
// Payloads never carry a comment's author: consumers see that a comment was
// posted, not who posted it.
package events

import "time"

const (
	RoutingKeyThreadCreated = "thread.created"
	RoutingKeyCommentPosted = "comment.posted"
)

// ThreadCreatedEvent is published after a thread is stored.
type ThreadCreatedEvent struct {
	ThreadID  uint64    `json:"thread_id"`
	GroupID   uint64    `json:"group_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentPostedEvent is published after a comment is admitted.
type CommentPostedEvent struct {
	CommentID uint64    `json:"comment_id"`
	ThreadID  uint64    `json:"thread_id"`
	GroupID   uint64    `json:"group_id"`
	PostedAt  time.Time `json:"posted_at"`
	RevealsAt time.Time `json:"reveals_at"`
}
