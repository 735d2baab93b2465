package lessons

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
	"github.com/abhisek/tango/internal/vocab"
)

// LessonsScreen edits the lesson selection of the next quiz. Changes are
// written to the shared settings as they happen.
type LessonsScreen struct {
	env    *screen.Env
	picker components.MultiSelect
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

// New creates a LessonsScreen over the loaded lessons.
func New(env *screen.Env) *LessonsScreen {
	opts := []components.SelectOption{{
		Value: vocab.AllLessons,
		Label: env.LessonLabel(vocab.AllLessons),
		Note:  env.Tr("lesson_items", map[string]any{"count": env.Lessons.Count()}),
	}}
	for _, id := range env.Lessons.Keys() {
		opts = append(opts, components.SelectOption{
			Value: id,
			Label: env.LessonLabel(id),
			Note:  env.Tr("lesson_items", map[string]any{"count": len(env.Lessons[id])}),
		})
	}
	return &LessonsScreen{
		env:    env,
		picker: components.NewMultiSelect(opts, vocab.AllLessons, env.Settings.Lessons),
	}
}

func (s *LessonsScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonsScreen) Title() string {
	return s.env.Tr("lessons_title", nil)
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Done"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var changed bool
	s.picker, changed = s.picker.Update(msg)
	if changed {
		s.env.Settings.Lessons = s.picker.Selected()
	}
	return s, nil
}

func (s *LessonsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(s.Title()))
	b.WriteString("\n")
	selected := s.env.LessonsLabel(s.picker.Selected())
	b.WriteString(theme.Subtitle.Render(selected))
	b.WriteString("\n\n")
	b.WriteString(s.picker.View(max(3, height-6)))

	cw := components.ContentWidth(width)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}
