package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	switch {
	case q.sess == nil:
		return center(width, height, theme.Incorrect.Render(q.errMsg)+"\n\n"+theme.Hint.Render("Esc to go back"))
	case q.confirming:
		return center(width, height, components.Card(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(q.env.Tr("quiz_confirm_quit", nil)),
			components.ContentWidth(width)))
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(q.renderStatus(cw))
	b.WriteString("\n\n")
	b.WriteString(q.renderPrompt(cw))
	b.WriteString("\n\n")
	b.WriteString(q.choice.View())

	if q.sess.Answered() {
		b.WriteString("\n")
		b.WriteString(q.renderFeedback())
		if q.showDetail {
			b.WriteString("\n\n")
			b.WriteString(q.renderDetail(cw))
		}
	}

	return center(width, height, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

// renderStatus shows progress, score, streak and the question timer.
func (q *QuizScreen) renderStatus(cw int) string {
	tr := q.env.Tr
	s := q.sess

	progress := tr("quiz_progress", map[string]any{"current": s.Index() + 1, "total": s.Len()})
	bar := components.NewProgressBar(progress, components.Fraction(s.AnswerCount(), s.Len()), false, cw)

	stats := []string{
		theme.Correct.Render(tr("quiz_correct", map[string]any{"count": s.Score()})),
		lipgloss.NewStyle().Foreground(theme.Accent).Render(tr("quiz_streak", map[string]any{"count": s.Streak()})),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("⏱ " + tr("quiz_seconds", map[string]any{"seconds": s.Seconds()})),
	}
	line := strings.Join(stats, "   ")
	if s.Review() {
		line = components.Badge(tr("quiz_review_mode", nil), theme.Secondary) + "   " + line
	}
	return bar.View() + "\n" + line
}

func (q *QuizScreen) renderPrompt(cw int) string {
	question := q.sess.Question()
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(question.Prompt)
	mode := theme.Hint.Render(q.env.ModeLabel(question.Mode))
	return components.Card(mode+"\n\n"+prompt, cw)
}

func (q *QuizScreen) renderFeedback() string {
	question := q.sess.Question()
	entry, _ := q.sess.Answer(q.sess.Index())
	if entry.Correct {
		return theme.Correct.Render(q.env.Tr("quiz_correct_feedback", nil))
	}
	return theme.Incorrect.Render(q.env.Tr("quiz_incorrect_feedback", map[string]any{"answer": question.Answer}))
}

// renderDetail is the word card shown under an answered question.
func (q *QuizScreen) renderDetail(cw int) string {
	tr := q.env.Tr
	it := q.sess.Question().Vocab

	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(it.Word)
	if it.HasDistinctReading() {
		head += "  " + lipgloss.NewStyle().Foreground(theme.Secondary).Render(it.Reading)
	}
	lines := []string{
		theme.Hint.Render(tr("detailed_info_title", nil)),
		head,
		theme.Body.Render(tr("detailed_info_meaning_prefix", nil) + it.DisplayMeaning(q.env.Lang)),
	}
	if ex := strings.TrimSpace(it.Example); ex != "" {
		lines = append(lines, theme.Body.Render(tr("example_sentence_wrapper", map[string]any{"example": ex})))
	} else if q.sess.Question().Mode != questiongen.ModeUsage && it.Usage != "" {
		lines = append(lines, theme.Body.Render(tr("detailed_info_example_prefix", nil)+it.Usage))
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func center(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
