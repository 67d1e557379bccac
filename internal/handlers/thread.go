package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/dto"
	apierrors "github.com/yukikurage/anonymous-thread-api/internal/errors"
	"github.com/yukikurage/anonymous-thread-api/internal/middleware"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"github.com/yukikurage/anonymous-thread-api/internal/services"
)

// ThreadHandler serves thread endpoints. Each request reads the clock once.
type ThreadHandler struct {
	threadService *services.ThreadService
	clock         reveal.Clock
}

// NewThreadHandler creates a new ThreadHandler.
func NewThreadHandler(threadService *services.ThreadService, clock reveal.Clock) *ThreadHandler {
	return &ThreadHandler{
		threadService: threadService,
		clock:         clock,
	}
}

// CreateThreadRequest is the body of POST /api/groups/:id/threads. Times
// are RFC 3339.
type CreateThreadRequest struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// CreateThread creates a thread in the group loaded by RequireGroupMember.
func (h *ThreadHandler) CreateThread(c *gin.Context) {
	group, ok := middleware.GetGroup(c)
	if !ok {
		apierrors.InternalError(c, "Group not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.threadService.CreateThread(c.Request.Context(), services.CreateThreadInput{
		GroupID:   group.ID,
		CreatorID: userID,
		Title:     req.Title,
		Content:   req.Content,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, h.clock.Now())
	if err != nil {
		respondThreadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToThreadDTO(*created))
}

// ListThreads lists a group's threads, optionally filtered by ?state=.
func (h *ThreadHandler) ListThreads(c *gin.Context) {
	group, ok := middleware.GetGroup(c)
	if !ok {
		apierrors.InternalError(c, "Group not found in context")
		return
	}

	state := reveal.State(strings.ToLower(strings.TrimSpace(c.Query("state"))))

	threads, err := h.threadService.ListThreads(group.ID, state, h.clock.Now())
	if err != nil {
		respondThreadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadListResponse(threads))
}

// GetThread returns a thread evaluated at request time.
// Thread is already loaded by RequireThreadMember middleware
func (h *ThreadHandler) GetThread(c *gin.Context) {
	thread, ok := middleware.GetThread(c)
	if !ok {
		apierrors.InternalError(c, "Thread not found in context")
		return
	}

	described, err := h.threadService.Describe(thread, h.clock.Now())
	if err != nil {
		respondThreadError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadDTO(*described))
}

func respondThreadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reveal.ErrInvalidRange):
		apierrors.InvalidRange(c, "start_time must be before end_time")
	case errors.Is(err, services.ErrTitleTooShort):
		apierrors.ValidationError(c, fmt.Sprintf("Title must be at least %d characters", constants.MinThreadTitleLength))
	case errors.Is(err, services.ErrTitleTooLong):
		apierrors.ValidationError(c, fmt.Sprintf("Title must be at most %d characters", constants.MaxThreadTitleLength))
	case errors.Is(err, services.ErrThreadContentEmpty):
		apierrors.ValidationError(c, err.Error())
	case errors.Is(err, services.ErrInvalidStateFilter):
		apierrors.BadRequest(c, "state must be one of scheduled, active, expired")
	case errors.Is(err, services.ErrNotGroupMember),
		errors.Is(err, services.ErrGroupNotFound):
		apierrors.NotFound(c, "Group not found")
	case errors.Is(err, services.ErrThreadNotFound):
		apierrors.NotFound(c, "Thread not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
