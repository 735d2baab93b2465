package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/tango/internal/config"
	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/lessons"
	"github.com/abhisek/tango/internal/screens/notebook"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
)

// Menu rows.
const (
	itemStart = iota
	itemLessons
	itemMode
	itemCount
	itemNotebook
	itemQuit
)

type notebookCountMsg struct {
	count int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env           *screen.Env
	menu          components.Menu
	notebookCount int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Focuser = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	noData := env.LoadErr != nil || env.Lessons.Count() == 0

	items := []components.MenuItem{
		itemStart: {Disabled: noData, Action: func() tea.Cmd {
			req := screen.RequestFromSettings(*env.Settings)
			return func() tea.Msg { return screen.StartQuizMsg{Request: req} }
		}},
		itemLessons: {Disabled: noData, Action: func() tea.Cmd {
			return push(lessons.New(env))
		}},
		itemMode:  {Cycle: h.cycleMode},
		itemCount: {Cycle: h.cycleCount},
		itemNotebook: {Action: func() tea.Cmd {
			return push(notebook.New(env))
		}},
		itemQuit: {Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.relabel()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.countNotebook()
}

// Focus refreshes the notebook size when the home screen is shown again.
func (h *HomeScreen) Focus() tea.Cmd {
	h.relabel()
	return h.countNotebook()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(notebookCountMsg); ok {
		h.notebookCount = m.count
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	h.relabel()
	return h, cmd
}

func (h *HomeScreen) countNotebook() tea.Cmd {
	nb, ctx, log := h.env.Notebook, h.env.Ctx, h.env.Log
	if nb == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := nb.Count(ctx)
		if err != nil {
			log.WithError(err).Warn("count notebook")
		}
		return notebookCountMsg{count: n}
	}
}

func (h *HomeScreen) cycleMode(delta int) {
	modes := questiongen.AllModes
	i := max(lo.IndexOf(modes, h.env.Settings.Mode), 0)
	h.env.Settings.Mode = modes[wrap(i+delta, len(modes))]
}

func (h *HomeScreen) cycleCount(delta int) {
	counts := config.QuestionCounts
	i := max(lo.IndexOf(counts, h.env.Settings.Count), 0)
	h.env.Settings.Count = counts[wrap(i+delta, len(counts))]
}

// relabel refreshes the labels that show current settings.
func (h *HomeScreen) relabel() {
	e, s := h.env, h.env.Settings
	labels := []string{
		itemStart:    e.Tr("btn_start_practice", nil),
		itemLessons:  e.Tr("menu_lessons", map[string]any{"lessons": e.LessonsLabel(s.Lessons)}),
		itemMode:     e.Tr("menu_mode", map[string]any{"mode": e.ModeLabel(s.Mode)}),
		itemCount:    e.Tr("menu_count", map[string]any{"count": e.CountLabel(s.Count)}),
		itemNotebook: e.Tr("menu_notebook", nil),
		itemQuit:     e.Tr("menu_quit", nil),
	}
	for i := range h.menu.Items {
		h.menu.Items[i].Label = labels[i]
	}
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+6) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	e := h.env

	var sections []string
	sections = append(sections, RenderBanner(width, compact))

	intro := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(e.Tr("level_label", map[string]any{"level": e.Level.Upper()})),
		theme.Subtitle.Render(e.Tr("welcome_message_" + string(e.Settings.Mode), nil)),
	}
	if e.LoadErr != nil {
		intro = append(intro, theme.Incorrect.Render(e.Tr("load_failed", nil)))
	}
	sections = append(sections, strings.Join(intro, "\n"))

	count := lipgloss.NewStyle().Foreground(theme.Secondary).Render(e.Tr("notebook_count", map[string]any{"count": h.notebookCount}))
	if compact {
		sections = append(sections, count)
	} else {
		mascot := RenderMascot(MascotFor(h.notebookCount))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, mascot, "   ", count))
	}

	sections = append(sections, components.Card(h.menu.View(), cw))

	centered := make([]string, len(sections))
	for i, s := range sections {
		centered[i] = layout.Centered(s, width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(centered, "\n\n"))
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
