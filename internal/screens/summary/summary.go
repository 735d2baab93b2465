package summary

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/session"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
	"github.com/abhisek/tango/internal/vocab"
)

// SummaryScreen shows the results of a finished quiz.
type SummaryScreen struct {
	env     *screen.Env
	req     screen.QuizRequest
	sum     session.Summary
	buttons []components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for the quiz built from req.
func New(env *screen.Env, req screen.QuizRequest, sum session.Summary) *SummaryScreen {
	s := &SummaryScreen{env: env, req: req, sum: sum}
	s.buttons = []components.Button{
		components.NewButton(env.Tr("final_score_restart", nil), "r", true, s.restart),
		components.NewButton(env.Tr("final_score_review_mode", nil), "w", len(sum.WrongAnswers) > 0, s.reviewWrong),
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.env.Tr("final_score_title", nil)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "r", Description: "Restart"}}
	if len(s.sum.WrongAnswers) > 0 {
		hints = append(hints, layout.KeyHint{Key: "w", Description: "Review wrong"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Back"})
}

// Summary returns the displayed results.
func (s *SummaryScreen) Summary() session.Summary {
	return s.sum
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	for i := range s.buttons {
		var cmd tea.Cmd
		s.buttons[i], cmd = s.buttons[i].Update(msg)
		if cmd != nil {
			return s, cmd
		}
	}
	return s, nil
}

// restart runs the same request again. Lesson-sampled quizzes draw a
// fresh sample.
func (s *SummaryScreen) restart() tea.Cmd {
	req := s.req
	return func() tea.Msg {
		return screen.StartQuizMsg{Request: req, Replace: true}
	}
}

// reviewWrong quizzes the missed words in mixed mode. It promotes words
// only when the finished quiz was itself notebook practice.
func (s *SummaryScreen) reviewWrong() tea.Cmd {
	items := lo.UniqBy(lo.Map(s.sum.WrongAnswers, func(w session.WrongAnswer, _ int) vocab.Item {
		return w.Question.Vocab
	}), func(it vocab.Item) string { return it.Word })

	req := screen.QuizRequest{
		Mode:   questiongen.ModeMixed,
		Items:  items,
		Review: s.req.Review,
	}
	return func() tea.Msg {
		return screen.StartQuizMsg{Request: req, Replace: true}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	tr := s.env.Tr
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(tr("final_score_title", nil)))
	b.WriteString("\n\n")

	score := tr("final_score_correct_count", map[string]any{"score": s.sum.Score, "total": s.sum.Total})
	pct := tr("final_score_percentage", map[string]any{"percent": s.sum.Percentage})
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(score + "   " + pct))
	b.WriteString("\n")
	b.WriteString(ratingStyle(s.sum.Rating).Render(tr("rating_"+string(s.sum.Rating), nil)))
	b.WriteString("\n\n")

	stats := []string{
		tr("final_score_max_streak", map[string]any{"count": s.sum.MaxStreak}),
		tr("final_score_total_time", map[string]any{"time": s.env.FormatDuration(s.sum.TotalSeconds)}),
		tr("final_score_average_time", map[string]any{"seconds": strconv.FormatFloat(s.sum.AverageSeconds, 'f', 1, 64)}),
	}
	b.WriteString(components.Card(theme.Body.Render(strings.Join(stats, "\n")), cw))
	b.WriteString("\n")

	if len(s.sum.WrongAnswers) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(tr("final_score_review_needed", nil)))
		b.WriteString("\n")
		b.WriteString(s.renderWrong(cw, height))
	}

	b.WriteString("\n")
	var views []string
	for i, btn := range s.buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, btn.View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, views...))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderWrong lists missed questions, trimmed to what fits under the stats.
func (s *SummaryScreen) renderWrong(cw, height int) string {
	tr := s.env.Tr
	limit := max(1, (height-16)/3)
	var lines []string
	for i, w := range s.sum.WrongAnswers {
		if i == limit {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("… +%d", len(s.sum.WrongAnswers)-limit)))
			break
		}
		lines = append(lines,
			theme.Body.Bold(true).Render(w.Question.Prompt),
			"  "+theme.Incorrect.Render(tr("final_score_your_answer", nil)+w.YourAnswer),
			"  "+theme.Correct.Render(tr("final_score_correct_answer", nil)+w.CorrectAnswer),
		)
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func ratingStyle(r session.Rating) lipgloss.Style {
	switch r {
	case session.RatingExcellent, session.RatingGood:
		return theme.Correct
	case session.RatingFair:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
}
