package dto

import (
	"time"

	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"github.com/yukikurage/anonymous-thread-api/internal/services"
)

// ThreadDTO represents a thread with its lifecycle evaluated at request time
type ThreadDTO struct {
	ID                 uint64       `json:"id"`
	GroupID            uint64       `json:"group_id"`
	Title              string       `json:"title"`
	Content            string       `json:"content"`
	StartTime          time.Time    `json:"start_time"`
	EndTime            time.Time    `json:"end_time"`
	CreatedAt          time.Time    `json:"created_at"`
	State              reveal.State `json:"state"`
	CanComment         bool         `json:"can_comment"`
	IdentitiesRevealed bool         `json:"identities_revealed"`
	StartsInSeconds    int64        `json:"starts_in_seconds"`
	RevealsInSeconds   int64        `json:"reveals_in_seconds"`
	CommentCount       int64        `json:"comment_count"`
	EvaluatedAt        time.Time    `json:"evaluated_at"`
}

// ThreadListResponse wraps a list of threads
type ThreadListResponse struct {
	Threads []ThreadDTO `json:"threads"`
	Count   int         `json:"count"`
}

// ToThreadDTO converts an evaluated thread to ThreadDTO. The creator is
// omitted.
func ToThreadDTO(t services.ThreadWithEvaluation) ThreadDTO {
	return ThreadDTO{
		ID:                 t.Thread.ID,
		GroupID:            t.Thread.GroupID,
		Title:              t.Thread.Title,
		Content:            t.Thread.Content,
		StartTime:          t.Thread.StartTime.UTC(),
		EndTime:            t.Thread.EndTime.UTC(),
		CreatedAt:          t.Thread.CreatedAt.UTC(),
		State:              t.Evaluation.State,
		CanComment:         t.Evaluation.CanComment,
		IdentitiesRevealed: t.Evaluation.IdentitiesRevealed,
		StartsInSeconds:    int64(t.Evaluation.StartsIn.Seconds()),
		RevealsInSeconds:   int64(t.Evaluation.RevealsIn.Seconds()),
		CommentCount:       t.CommentCount,
		EvaluatedAt:        t.Evaluation.At.UTC(),
	}
}

// ToThreadListResponse converts evaluated threads to ThreadListResponse
func ToThreadListResponse(threads []services.ThreadWithEvaluation) ThreadListResponse {
	items := make([]ThreadDTO, len(threads))
	for i, t := range threads {
		items[i] = ToThreadDTO(t)
	}
	return ThreadListResponse{
		Threads: items,
		Count:   len(items),
	}
}
