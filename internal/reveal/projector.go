package reveal

import (
	"fmt"
	"time"

	"github.com/yukikurage/anonymous-thread-api/internal/models"
)

// WithheldContent replaces a comment body for viewers not entitled to it.
const WithheldContent = "[hidden until the thread ends]"

// ContentPolicy decides who may read comment bodies before a thread expires.
// Author identity is withheld until expiry under every policy.
type ContentPolicy string

const (
	// ContentAuthorOnly shows a pre-expiry body only to the comment's author.
	ContentAuthorOnly ContentPolicy = "author"
	// ContentMembers shows pre-expiry bodies to every group member.
	ContentMembers ContentPolicy = "members"
)

// ParseContentPolicy maps a configuration value to a policy.
func ParseContentPolicy(s string) (ContentPolicy, error) {
	switch p := ContentPolicy(s); p {
	case ContentAuthorOnly, ContentMembers:
		return p, nil
	}
	return "", fmt.Errorf("unknown comment content policy %q", s)
}

// Viewer is the caller a projection is computed for.
type Viewer struct {
	UserID uint64
	Policy ContentPolicy
}

func (v Viewer) mayReadBefore(c models.Comment) bool {
	if v.Policy == ContentMembers {
		return true
	}
	return v.UserID != 0 && v.UserID == c.AuthorID
}

// CommentView is the externally visible form of a comment. It is derived on
// every read and never stored.
type CommentView struct {
	ID              uint64
	ThreadID        uint64
	Content         string
	ContentWithheld bool
	CreatedAt       time.Time
	IsRevealed      bool
	// AuthorID and Author are set only once revealed. Author stays nil when
	// the author record no longer resolves.
	AuthorID *uint64
	Author   *models.User
}

// Project computes the view of c for viewer under state. authors holds the
// resolved author records; a missing entry yields an absent author, not an
// error.
func Project(c models.Comment, state State, viewer Viewer, authors map[uint64]*models.User) CommentView {
	view := CommentView{
		ID:        c.ID,
		ThreadID:  c.ThreadID,
		CreatedAt: c.CreatedAt,
	}

	if IdentitiesRevealed(state) {
		authorID := c.AuthorID
		view.IsRevealed = true
		view.AuthorID = &authorID
		view.Author = authors[c.AuthorID]
		view.Content = c.Content
		return view
	}

	if viewer.mayReadBefore(c) {
		view.Content = c.Content
	} else {
		view.Content = WithheldContent
		view.ContentWithheld = true
	}
	return view
}

// ProjectAll projects a batch under a single state so one response never
// shows a thread half revealed.
func ProjectAll(comments []models.Comment, state State, viewer Viewer, authors map[uint64]*models.User) []CommentView {
	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = Project(c, state, viewer, authors)
	}
	return views
}
