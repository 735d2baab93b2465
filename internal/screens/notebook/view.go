package notebook

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/theme"
	"github.com/abhisek/tango/internal/wrongwords"
)

// rowHeight is the number of lines one record takes in the list.
const rowHeight = 2

func (s *NotebookScreen) View(width, height int) string {
	tr := s.env.Tr
	cw := min(width-4, 96)

	var b strings.Builder
	b.WriteString(s.renderToolbar())
	b.WriteString("\n")
	if v := s.search.View(); v != "" {
		b.WriteString(v)
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(1, cw))))
	b.WriteString("\n")

	used := strings.Count(b.String(), "\n") + 3
	switch {
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Render("Error: " + s.errMsg))
	case !s.loaded:
		b.WriteString(theme.Hint.Render("Loading..."))
	case len(s.visible) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(tr("no_matching_words", nil)))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(tr("change_filter_or_add_words", nil)))
	default:
		b.WriteString(s.renderList(cw, height-used))
	}

	b.WriteString("\n")
	b.WriteString(s.renderStatus())

	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(b.String())
}

func (s *NotebookScreen) renderToolbar() string {
	e := s.env
	count := fmt.Sprintf("%d/%d", len(s.visible), len(s.records))
	return strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(e.FilterLabel(s.Filter())),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(e.SortLabel(s.Sort())),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(count),
	}, "  ·  ")
}

func (s *NotebookScreen) renderList(cw, height int) string {
	start, end := components.Window(len(s.visible), s.cursor, max(1, height/rowHeight))
	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, s.renderRecord(s.visible[i], i == s.cursor, cw))
	}
	return strings.Join(rows, "\n")
}

func (s *NotebookScreen) renderRecord(r wrongwords.Record, selected bool, cw int) string {
	e := s.env
	word := r.Word
	if r.Vocab.HasDistinctReading() {
		word += "（" + r.Vocab.Reading + "）"
	}
	prefix := "  "
	wordStyle := theme.Unselected.Bold(true)
	if selected {
		prefix = "▸ "
		wordStyle = theme.Selected
	}

	top := wordStyle.Render(prefix+word) + "  " +
		components.Badge(e.MasteryLabel(r.Mastery), masteryColor(r.Mastery)) + " " +
		components.Badge(e.DifficultyLabel(r.Difficulty), theme.DifficultyColor(r.Difficulty)) + "  " +
		lipgloss.NewStyle().Foreground(theme.Error).Render(e.Tr("wrong_word_count", map[string]any{"count": r.WrongCount}))

	meaning := e.Tr("wrong_word_meaning_prefix", nil) + r.Vocab.DisplayMeaning(e.Lang)
	date := e.Tr("wrong_word_last_wrong_date", map[string]any{"date": r.LastWrongAt.Format("2006-01-02")})
	bottom := lipgloss.NewStyle().Foreground(theme.TextDim).MaxWidth(cw).Render("    " + meaning + "   " + date)

	return top + "\n" + bottom
}

func (s *NotebookScreen) renderStatus() string {
	e := s.env
	switch s.state {
	case stateConfirmDelete:
		r, _ := s.selected()
		return confirmStyle.Render(e.Tr("wrong_word_confirm_delete", map[string]any{"word": r.Word}))
	case stateConfirmClear:
		return confirmStyle.Render(e.Tr("wrong_word_confirm_clear", map[string]any{"count": len(s.visible)}))
	}
	if s.status != "" {
		return theme.Correct.Render(s.status)
	}
	return ""
}

var confirmStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

func masteryColor(m wrongwords.Mastery) color.Color {
	switch m {
	case wrongwords.MasteryLearning:
		return theme.MasteryLearning
	case wrongwords.MasteryFamiliar:
		return theme.MasteryFamiliar
	}
	return theme.MasteryNew
}
