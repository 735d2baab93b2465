package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/samber/lo"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/summary"
	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/vocab"
)

// taskDueMsg delivers a TaskQueue task once its delay has elapsed.
type taskDueMsg struct {
	session string
	id      uint64
}

// QuizScreen runs one quiz session.
type QuizScreen struct {
	env   *screen.Env
	req   screen.QuizRequest
	queue *session.TaskQueue
	sess  *session.Session
	tick  func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	choice     components.MultiChoice
	shown      int
	showDetail bool
	confirming bool
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New builds the questions for req and an idle session over them. When
// nothing could be generated the screen shows an error instead.
func New(env *screen.Env, req screen.QuizRequest) *QuizScreen {
	q := &QuizScreen{
		env:   env,
		req:   req,
		queue: session.NewTaskQueue(),
		tick:  tea.Tick,
		shown: -1,
	}
	s, err := session.New(Build(env, req), env.SessionOptions(req.Review, q.queue))
	if err != nil {
		q.errMsg = env.Tr("no_questions", nil)
		if env.LoadErr != nil {
			q.errMsg = env.Tr("load_failed", nil)
		}
		env.Log.WithError(err).WithField("mode", req.Mode).Warn("quiz not started")
		return q
	}
	q.sess = s
	return q
}

// Build generates the questions for req. Explicit items are quizzed as
// given; otherwise Count items are sampled from the chosen lessons.
// Distractors come from the whole level plus the quizzed items.
func Build(env *screen.Env, req screen.QuizRequest) []questiongen.Question {
	if env.Gen == nil {
		return nil
	}
	items := req.Items
	if items == nil {
		items = env.Gen.Sample(env.Lessons.Select(req.Lessons), req.Count)
	}
	superset := lo.UniqBy(append(env.Lessons.All(), items...), func(it vocab.Item) string {
		return it.Word
	})
	return env.Gen.Generate(items, superset, req.Mode)
}

// Session returns the underlying session, nil when none could be built.
func (q *QuizScreen) Session() *session.Session {
	return q.sess
}

func (q *QuizScreen) Init() tea.Cmd {
	if q.sess == nil {
		return nil
	}
	q.sess.Start()
	q.sync()
	return q.schedule()
}

func (q *QuizScreen) Title() string {
	if q.req.Review {
		return q.env.Tr("quiz_review_mode", nil)
	}
	return q.env.ModeLabel(q.req.Mode)
}

// HandlesBack is always true: Esc either leaves an untouched quiz or asks
// for confirmation.
func (q *QuizScreen) HandlesBack() bool {
	return true
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case q.sess == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case q.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case q.sess.Answered():
		return []layout.KeyHint{
			{Key: "←→", Description: "Navigate"},
			{Key: "Space", Description: "Details"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDueMsg:
		if q.sess == nil || msg.session != q.sess.ID {
			return q, nil
		}
		q.queue.Fire(msg.id)
		return q, q.after()

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if q.sess == nil {
		if key == "esc" || key == "enter" {
			return q, pop
		}
		return q, nil
	}

	if q.confirming {
		switch key {
		case "y", "Y":
			q.confirming = false
			q.sess.Reset()
			return q, pop
		case "n", "N", "esc":
			q.confirming = false
		}
		return q, nil
	}

	switch key {
	case "esc":
		if q.sess.AnswerCount() == 0 {
			q.sess.Reset()
			return q, pop
		}
		q.confirming = true
		return q, nil
	case "left", "h":
		q.sess.Retreat()
		return q, q.after()
	case "right", "l":
		if q.sess.Answered() {
			q.sess.Advance()
		} else {
			q.sess.GoTo(q.sess.Index() + 1)
		}
		return q, q.after()
	case "space", " ":
		if q.sess.Answered() {
			q.showDetail = !q.showDetail
		}
		return q, nil
	}

	if q.sess.Answered() {
		return q, nil
	}
	q.choice, _ = q.choice.Update(msg)
	if !q.choice.Submitted {
		return q, nil
	}
	if !q.sess.Submit(q.choice.ChosenIndex) {
		q.shown = -1
		q.sync()
		return q, nil
	}
	return q, tea.Batch(q.after(), notebookChanged)
}

// after reflects session changes: a finished session hands over to the
// summary, otherwise newly scheduled tasks are armed.
func (q *QuizScreen) after() tea.Cmd {
	if q.sess.Phase() == session.PhaseFinished {
		next := summary.New(q.env, q.req, q.sess.Finalize())
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	q.sync()
	return q.schedule()
}

// schedule turns freshly queued tasks into tick commands.
func (q *QuizScreen) schedule() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range q.queue.Drain() {
		due := taskDueMsg{session: q.sess.ID, id: t.ID}
		cmds = append(cmds, q.tick(t.Delay, func(time.Time) tea.Msg { return due }))
	}
	return tea.Batch(cmds...)
}

// sync rebuilds the option list when the question or its answered state
// changed.
func (q *QuizScreen) sync() {
	idx := q.sess.Index()
	entry, answered := q.sess.Answer(idx)
	if idx == q.shown && answered == q.choice.Submitted {
		return
	}
	question := q.sess.Question()
	texts := lo.Map(question.Options, func(o questiongen.Option, _ int) string { return o.Text })
	if answered {
		q.choice = components.Answered(texts, question.CorrectIndex(), entry.SelectedIndex)
		q.choice.CorrectTag = q.env.Tr("status_correct", nil)
		q.choice.ChosenTag = q.env.Tr("status_selected", nil)
	} else {
		q.choice = components.NewMultiChoice(texts, question.CorrectIndex())
	}
	if idx != q.shown {
		q.showDetail = true
	}
	q.shown = idx
}

func pop() tea.Msg {
	return router.PopScreenMsg{}
}

func notebookChanged() tea.Msg {
	return screen.NotebookChangedMsg{}
}
