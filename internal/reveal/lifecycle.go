package reveal

import (
	"errors"
	"time"

	"github.com/yukikurage/anonymous-thread-api/internal/models"
)

var (
	ErrInvalidRange         = errors.New("thread start time must be before its end time")
	ErrThreadNotCommentable = errors.New("thread is not accepting comments")
)

// State is the temporal state of a thread. The three values partition the
// timeline: [.., start) Scheduled, [start, end) Active, [end, ..) Expired.
type State string

const (
	StateScheduled State = "scheduled"
	StateActive    State = "active"
	StateExpired   State = "expired"
)

// Valid reports whether s is one of the three lifecycle states.
func (s State) Valid() bool {
	switch s {
	case StateScheduled, StateActive, StateExpired:
		return true
	}
	return false
}

// Classify places now relative to the window [start, end).
func Classify(start, end, now time.Time) State {
	switch {
	case now.Before(start):
		return StateScheduled
	case now.Before(end):
		return StateActive
	default:
		return StateExpired
	}
}

// CanComment is true only while the thread is Active.
func CanComment(state State) bool {
	return state == StateActive
}

// IdentitiesRevealed is true only once the thread has Expired. Reveal applies
// to every comment of the thread at once.
func IdentitiesRevealed(state State) bool {
	return state == StateExpired
}

// ValidateWindow rejects windows that are empty or inverted.
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidRange
	}
	return nil
}

// Evaluation is a thread's lifecycle as seen at one instant.
type Evaluation struct {
	State              State
	CanComment         bool
	IdentitiesRevealed bool
	// StartsIn is the time left until the thread opens, zero once it has.
	StartsIn time.Duration
	// RevealsIn is the time left until authors are revealed, zero after.
	RevealsIn time.Duration
	At        time.Time
}

// Evaluate classifies thread at now and derives its permissions.
func Evaluate(thread models.Thread, now time.Time) Evaluation {
	state := Classify(thread.StartTime, thread.EndTime, now)
	return Evaluation{
		State:              state,
		CanComment:         CanComment(state),
		IdentitiesRevealed: IdentitiesRevealed(state),
		StartsIn:           remaining(thread.StartTime, now),
		RevealsIn:          remaining(thread.EndTime, now),
		At:                 now,
	}
}

// Admit checks whether a comment may be written to thread at now.
func Admit(thread models.Thread, now time.Time) (State, error) {
	state := Classify(thread.StartTime, thread.EndTime, now)
	if !CanComment(state) {
		return state, ErrThreadNotCommentable
	}
	return state, nil
}

func remaining(until, now time.Time) time.Duration {
	if d := until.Sub(now); d > 0 {
		return d
	}
	return 0
}
