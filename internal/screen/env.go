package screen

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tango/internal/i18n"
	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/vocab"
	"github.com/abhisek/tango/internal/wrongwords"
)

// Env is what every screen shares: the loaded level, its notebook, and
// the quiz settings the home screen edits.
type Env struct {
	Ctx      context.Context
	Level    vocab.Level
	Lang     vocab.Language
	T        *i18n.Catalog
	Lessons  vocab.Lessons
	LoadErr  error // set when vocabulary could not be loaded
	Notebook *wrongwords.Store
	Gen      *questiongen.Generator
	Settings *Settings

	// Pacing applied to every quiz session.
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration

	// ExportDir receives CSV exports.
	ExportDir string

	Log logrus.FieldLogger
	Now func() time.Time
}

// Settings are the home screen choices for the next quiz.
type Settings struct {
	Mode    questiongen.Mode
	Count   int      // 0 means all selected items
	Lessons []string // lesson ids, or [vocab.AllLessons]
}

// Tr is shorthand for the catalog lookup.
func (e *Env) Tr(key string, subs map[string]any) string {
	return e.T.T(key, subs)
}

// SessionOptions returns the session options for a quiz run on the TUI
// event loop.
func (e *Env) SessionOptions(review bool, sched session.Scheduler) session.Options {
	opts := session.DefaultOptions()
	opts.CorrectDelay = e.CorrectDelay
	opts.IncorrectDelay = e.IncorrectDelay
	opts.Scheduler = sched
	opts.Review = review
	opts.Now = e.Now
	opts.Logger = e.Log
	if e.Notebook != nil {
		opts.Recorder = e.Notebook
	}
	return opts
}

// QuizRequest describes how to build a quiz. A request with Items quizzes
// exactly those items; otherwise Count items are sampled from Lessons.
type QuizRequest struct {
	Mode    questiongen.Mode
	Items   []vocab.Item
	Lessons []string
	Count   int

	// Review marks notebook practice: correct answers promote words.
	Review bool
}

// RequestFromSettings returns a lesson-sampled request for s.
func RequestFromSettings(s Settings) QuizRequest {
	return QuizRequest{
		Mode:    s.Mode,
		Lessons: append([]string(nil), s.Lessons...),
		Count:   s.Count,
	}
}

// StartQuizMsg asks the app to open a quiz. With Replace the quiz takes
// the place of the active screen.
type StartQuizMsg struct {
	Request QuizRequest
	Replace bool
}

// NotebookChangedMsg tells the app to refresh the notebook count in the
// header.
type NotebookChangedMsg struct{}
