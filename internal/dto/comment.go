package dto

import (
	"time"

	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
)

// CommentDTO represents a projected comment. author_id and author are null
// until the thread expires.
type CommentDTO struct {
	ID              uint64    `json:"id"`
	ThreadID        uint64    `json:"thread_id"`
	Content         string    `json:"content"`
	ContentWithheld bool      `json:"content_withheld"`
	CreatedAt       time.Time `json:"created_at"`
	IsRevealed      bool      `json:"is_revealed"`
	AuthorID        *uint64   `json:"author_id"`
	Author          *UserDTO  `json:"author"`
}

// CommentListResponse carries the comments and the state they were projected
// under
type CommentListResponse struct {
	Comments           []CommentDTO `json:"comments"`
	State              reveal.State `json:"state"`
	CanComment         bool         `json:"can_comment"`
	IdentitiesRevealed bool         `json:"identities_revealed"`
	EvaluatedAt        time.Time    `json:"evaluated_at"`
}

// ToCommentDTO converts a CommentView to CommentDTO
func ToCommentDTO(view reveal.CommentView) CommentDTO {
	dto := CommentDTO{
		ID:              view.ID,
		ThreadID:        view.ThreadID,
		Content:         view.Content,
		ContentWithheld: view.ContentWithheld,
		CreatedAt:       view.CreatedAt.UTC(),
		IsRevealed:      view.IsRevealed,
		AuthorID:        view.AuthorID,
	}

	if view.Author != nil {
		author := ToUserDTO(*view.Author)
		dto.Author = &author
	}

	return dto
}

// ToCommentListResponse converts a projected batch to CommentListResponse
func ToCommentListResponse(views []reveal.CommentView, ev reveal.Evaluation) CommentListResponse {
	items := make([]CommentDTO, len(views))
	for i, v := range views {
		items[i] = ToCommentDTO(v)
	}
	return CommentListResponse{
		Comments:           items,
		State:              ev.State,
		CanComment:         ev.CanComment,
		IdentitiesRevealed: ev.IdentitiesRevealed,
		EvaluatedAt:        ev.At.UTC(),
	}
}
