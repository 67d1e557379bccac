package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/dto"
	apierrors "github.com/yukikurage/anonymous-thread-api/internal/errors"
	"github.com/yukikurage/anonymous-thread-api/internal/middleware"
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"github.com/yukikurage/anonymous-thread-api/internal/services"
)

// CommentHandler serves comment endpoints of a thread.
type CommentHandler struct {
	commentService *services.CommentService
	clock          reveal.Clock
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, clock reveal.Clock) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		clock:          clock,
	}
}

// CreateCommentRequest is the body of POST /api/threads/:id/comments.
// Content is validated by the service after the commentable check.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ListComments returns the thread's comments projected for the caller.
func (h *CommentHandler) ListComments(c *gin.Context) {
	thread, ok := middleware.GetThread(c)
	if !ok {
		apierrors.InternalError(c, "Thread not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	views, ev, err := h.commentService.ListCommentViews(thread.ID, userID, h.clock.Now())
	if err != nil {
		respondCommentError(c, err, thread, time.Time{})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentListResponse(views, ev))
}

// CreateComment posts a comment while the thread is active.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	thread, ok := middleware.GetThread(c)
	if !ok {
		apierrors.InternalError(c, "Thread not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	now := h.clock.Now()
	view, err := h.commentService.SubmitComment(c.Request.Context(), services.SubmitCommentInput{
		ThreadID: thread.ID,
		AuthorID: userID,
		Content:  req.Content,
	}, now)
	if err != nil {
		respondCommentError(c, err, thread, now)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*view))
}

func respondCommentError(c *gin.Context, err error, thread models.Thread, now time.Time) {
	switch {
	case errors.Is(err, reveal.ErrThreadNotCommentable):
		state := reveal.Classify(thread.StartTime, thread.EndTime, now)
		message := "Thread has not started yet"
		if state == reveal.StateExpired {
			message = "Thread has ended"
		}
		apierrors.ThreadNotCommentable(c, message, string(state))
	case errors.Is(err, services.ErrCommentEmpty):
		apierrors.ValidationError(c, err.Error())
	case errors.Is(err, services.ErrCommentTooLong):
		apierrors.ValidationError(c, fmt.Sprintf("Comment must be at most %d characters", constants.MaxCommentLength))
	case errors.Is(err, services.ErrThreadNotFound):
		apierrors.NotFound(c, "Thread not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
