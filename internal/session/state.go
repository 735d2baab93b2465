package session

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/vocab"
)

// ErrNoQuestions is returned when a session is created without questions.
var ErrNoQuestions = errors.New("session has no questions")

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseIdle     Phase = iota // Created or reset, not started
	PhaseActive                // Serving questions
	PhaseFinished              // Summary computed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Recorder receives answer outcomes. The wrong-word notebook implements it.
type Recorder interface {
	RecordMiss(ctx context.Context, item vocab.Item, mode questiongen.Mode) error
	Promote(ctx context.Context, word string) error
}

// AnswerLogEntry records one submitted answer. Entries are never modified.
type AnswerLogEntry struct {
	QuestionIndex int
	SelectedIndex int
	Correct       bool
	SecondsSpent  int
}

// WrongAnswer is kept for the end-of-session review.
type WrongAnswer struct {
	Question      questiongen.Question
	YourAnswer    string
	CorrectAnswer string
}

// Options configures a Session. The zero value is a silent, synchronous
// session: answers advance immediately and no countdown runs.
type Options struct {
	// Recorder is notified of misses, and of correct answers in review mode.
	Recorder Recorder

	// Review marks a notebook practice run. Correct answers promote the word.
	Review bool

	// Scheduler runs delayed work. When nil, advances happen immediately
	// and the countdown is disabled.
	Scheduler Scheduler

	// CorrectDelay and IncorrectDelay pace the automatic advance after an
	// answer. Zero advances synchronously.
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration

	// TickInterval drives the per-question countdown. Zero disables it.
	TickInterval time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives recorder failures.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the pacing used by the TUI.
func DefaultOptions() Options {
	return Options{
		CorrectDelay:   150 * time.Millisecond,
		IncorrectDelay: 1800 * time.Millisecond,
		TickInterval:   time.Second,
	}
}
