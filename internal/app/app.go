package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/home"
	"github.com/abhisek/tango/internal/screens/quiz"
	"github.com/abhisek/tango/internal/ui/layout"
)

type notebookCountMsg struct {
	count int
	err   error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    *screen.Env
	start  *screen.QuizRequest

	width         int
	height        int
	notebookCount int
}

// newAppModel creates an AppModel on the home screen. A non-nil start
// request opens a quiz on top of it right away.
func newAppModel(env *screen.Env, start *screen.QuizRequest) AppModel {
	return AppModel{
		router: router.New(home.New(env)),
		env:    env,
		start:  start,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.countNotebook()}
	if m.start != nil {
		req := *m.start
		cmds = append(cmds, func() tea.Msg { return screen.StartQuizMsg{Request: req} })
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StartQuizMsg:
		q := quiz.New(m.env, msg.Request)
		if msg.Replace {
			return m, m.router.Replace(q)
		}
		return m, m.router.Push(q)

	case screen.NotebookChangedMsg:
		return m, m.countNotebook()

	case notebookCountMsg:
		if msg.err != nil {
			m.env.Log.WithError(msg.err).Warn("count notebook")
			return m, nil
		}
		m.notebookCount = msg.count
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) countNotebook() tea.Cmd {
	nb, ctx := m.env.Notebook, m.env.Ctx
	if nb == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := nb.Count(ctx)
		return notebookCountMsg{count: n, err: err}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(layout.Header{
		App:      m.env.Tr("app_title", nil),
		Title:    title,
		Level:    m.env.Level.Upper(),
		Notebook: m.env.Tr("notebook_count", map[string]any{"count": m.notebookCount}),
	}, m.width)

	var footerHints []layout.KeyHint
	if khp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = khp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program. A non-nil start request goes
// straight into a quiz.
func Run(env *screen.Env, start *screen.QuizRequest) error {
	p := tea.NewProgram(newAppModel(env, start))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
