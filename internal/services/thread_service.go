package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/events"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"github.com/yukikurage/anonymous-thread-api/internal/repository"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"gorm.io/gorm"
)

var (
	ErrThreadNotFound     = errors.New("thread not found")
	ErrTitleTooShort      = errors.New("title too short")
	ErrTitleTooLong       = errors.New("title too long")
	ErrThreadContentEmpty = errors.New("thread content cannot be empty")
	ErrInvalidStateFilter = errors.New("unknown thread state")
)

// ThreadService handles thread business logic
type ThreadService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	groups      *GroupService
	publisher   events.Publisher
	log         logging.Logger
}

// NewThreadService creates a new ThreadService
func NewThreadService(
	threadRepo repository.ThreadRepository,
	commentRepo repository.CommentRepository,
	groups *GroupService,
	publisher events.Publisher,
	log logging.Logger,
) *ThreadService {
	return &ThreadService{
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		groups:      groups,
		publisher:   publisher,
		log:         log,
	}
}

// CreateThreadInput represents input for creating a thread
type CreateThreadInput struct {
	GroupID   uint64
	CreatorID uint64
	Title     string
	Content   string
	StartTime time.Time
	EndTime   time.Time
}

// ThreadWithEvaluation pairs a thread with its lifecycle at one instant.
type ThreadWithEvaluation struct {
	Thread       models.Thread
	Evaluation   reveal.Evaluation
	CommentCount int64
}

// CreateThread validates and stores a new thread. Nothing is written when
// the window is empty or inverted.
func (s *ThreadService) CreateThread(ctx context.Context, input CreateThreadInput, now time.Time) (*ThreadWithEvaluation, error) {
	title := strings.TrimSpace(input.Title)
	switch n := len([]rune(title)); {
	case n < constants.MinThreadTitleLength:
		return nil, ErrTitleTooShort
	case n > constants.MaxThreadTitleLength:
		return nil, ErrTitleTooLong
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrThreadContentEmpty
	}

	start, end := input.StartTime.UTC(), input.EndTime.UTC()
	if err := reveal.ValidateWindow(start, end); err != nil {
		return nil, err
	}

	if err := s.groups.EnsureMember(input.GroupID, input.CreatorID); err != nil {
		return nil, err
	}

	thread := &models.Thread{
		GroupID:     input.GroupID,
		Title:       title,
		Content:     content,
		StartTime:   start,
		EndTime:     end,
		CreatedByID: input.CreatorID,
		CreatedAt:   now,
	}

	if err := s.threadRepo.Create(thread); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	s.log.Info(ctx, "thread created", "thread_id", thread.ID, "group_id", thread.GroupID,
		"start_time", thread.StartTime, "end_time", thread.EndTime)

	if err := s.publisher.Publish(ctx, events.RoutingKeyThreadCreated, events.ThreadCreatedEvent{
		ThreadID:  thread.ID,
		GroupID:   thread.GroupID,
		Title:     thread.Title,
		StartTime: thread.StartTime,
		EndTime:   thread.EndTime,
		CreatedAt: thread.CreatedAt,
	}); err != nil {
		s.log.Warn(ctx, "thread event not published", "thread_id", thread.ID, "error", err)
	}

	return &ThreadWithEvaluation{
		Thread:     *thread,
		Evaluation: s.EvaluateThread(*thread, now),
	}, nil
}

// EvaluateThread reports the lifecycle state and permissions of thread at now.
func (s *ThreadService) EvaluateThread(thread models.Thread, now time.Time) reveal.Evaluation {
	return reveal.Evaluate(thread, now)
}

// ListThreads returns a group's threads evaluated at now. When state is
// non-empty only threads in that state are returned.
func (s *ThreadService) ListThreads(groupID uint64, state reveal.State, now time.Time) ([]ThreadWithEvaluation, error) {
	if state != "" && !state.Valid() {
		return nil, ErrInvalidStateFilter
	}

	threads, err := s.threadRepo.ListByGroup(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	ids := make([]uint64, len(threads))
	for i, t := range threads {
		ids[i] = t.ID
	}
	counts, err := s.commentRepo.CountByThreads(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	result := make([]ThreadWithEvaluation, 0, len(threads))
	for _, t := range threads {
		ev := s.EvaluateThread(t, now)
		if state != "" && ev.State != state {
			continue
		}
		result = append(result, ThreadWithEvaluation{
			Thread:       t,
			Evaluation:   ev,
			CommentCount: counts[t.ID],
		})
	}

	return result, nil
}

// GetThreadForMember loads a thread whose group userID belongs to.
// Non-members get ErrThreadNotFound.
func (s *ThreadService) GetThreadForMember(threadID, userID uint64) (*models.Thread, error) {
	thread, err := s.threadRepo.FindByID(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to find thread: %w", err)
	}

	if err := s.groups.EnsureMember(thread.GroupID, userID); err != nil {
		if errors.Is(err, ErrNotGroupMember) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}

	return thread, nil
}

// Describe evaluates a loaded thread at now and attaches its comment count.
func (s *ThreadService) Describe(thread models.Thread, now time.Time) (*ThreadWithEvaluation, error) {
	counts, err := s.commentRepo.CountByThreads([]uint64{thread.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	return &ThreadWithEvaluation{
		Thread:       thread,
		Evaluation:   s.EvaluateThread(thread, now),
		CommentCount: counts[thread.ID],
	}, nil
}
