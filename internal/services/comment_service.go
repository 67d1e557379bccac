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
	ErrCommentEmpty   = errors.New("comment content cannot be empty")
	ErrCommentTooLong = errors.New("comment content too long")
)

// CommentService admits comments and projects them for readers. Callers
// resolve group membership before invoking it.
type CommentService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	publisher   events.Publisher
	policy      reveal.ContentPolicy
	log         logging.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	threadRepo repository.ThreadRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	publisher events.Publisher,
	policy reveal.ContentPolicy,
	log logging.Logger,
) *CommentService {
	return &CommentService{
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		policy:      policy,
		log:         log,
	}
}

// SubmitCommentInput represents input for posting a comment
type SubmitCommentInput struct {
	ThreadID uint64
	AuthorID uint64
	Content  string
}

// ListCommentViews projects every comment of a thread for viewerID using one
// lifecycle state computed at now.
func (s *CommentService) ListCommentViews(threadID, viewerID uint64, now time.Time) ([]reveal.CommentView, reveal.Evaluation, error) {
	thread, err := s.loadThread(threadID)
	if err != nil {
		return nil, reveal.Evaluation{}, err
	}
	ev := reveal.Evaluate(*thread, now)

	comments, err := s.commentRepo.ListByThread(thread.ID)
	if err != nil {
		return nil, ev, fmt.Errorf("failed to list comments: %w", err)
	}

	var authors map[uint64]*models.User
	if ev.IdentitiesRevealed {
		authors, err = s.userRepo.FindByIDs(authorIDs(comments))
		if err != nil {
			return nil, ev, fmt.Errorf("failed to resolve comment authors: %w", err)
		}
	}

	viewer := reveal.Viewer{UserID: viewerID, Policy: s.policy}
	return reveal.ProjectAll(comments, ev.State, viewer, authors), ev, nil
}

// SubmitComment admits a comment if the thread is Active at now and returns
// it projected under that same state.
func (s *CommentService) SubmitComment(ctx context.Context, input SubmitCommentInput, now time.Time) (*reveal.CommentView, error) {
	thread, err := s.loadThread(input.ThreadID)
	if err != nil {
		return nil, err
	}

	state, err := reveal.Admit(*thread, now)
	if err != nil {
		s.log.Debug(ctx, "comment rejected", "thread_id", thread.ID, "state", state)
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if len([]rune(content)) > constants.MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	comment := &models.Comment{
		ThreadID:  thread.ID,
		Content:   content,
		AuthorID:  input.AuthorID,
		CreatedAt: now,
	}

	if err := s.commentRepo.CreateForThread(comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.log.Info(ctx, "comment admitted", "comment_id", comment.ID, "thread_id", thread.ID)

	if err := s.publisher.Publish(ctx, events.RoutingKeyCommentPosted, events.CommentPostedEvent{
		CommentID: comment.ID,
		ThreadID:  thread.ID,
		GroupID:   thread.GroupID,
		PostedAt:  comment.CreatedAt,
		RevealsAt: thread.EndTime,
	}); err != nil {
		s.log.Warn(ctx, "comment event not published", "comment_id", comment.ID, "error", err)
	}

	viewer := reveal.Viewer{UserID: input.AuthorID, Policy: s.policy}
	view := reveal.Project(*comment, state, viewer, nil)
	return &view, nil
}

func (s *CommentService) loadThread(threadID uint64) (*models.Thread, error) {
	thread, err := s.threadRepo.FindByID(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to find thread: %w", err)
	}
	return thread, nil
}

// authorIDs returns the distinct author ids of comments
func authorIDs(comments []models.Comment) []uint64 {
	seen := make(map[uint64]struct{}, len(comments))
	result := make([]uint64, 0, len(comments))

	for _, c := range comments {
		if _, exists := seen[c.AuthorID]; exists {
			continue
		}
		seen[c.AuthorID] = struct{}{}
		result = append(result, c.AuthorID)
	}

	return result
}
