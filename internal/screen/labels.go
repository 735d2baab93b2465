package screen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/vocab"
	"github.com/abhisek/tango/internal/wrongwords"
)

// ModeLabel returns the translated name of m.
func (e *Env) ModeLabel(m questiongen.Mode) string {
	return e.Tr("mode_"+string(m), nil)
}

// CountLabel returns the translated question count, 0 meaning all.
func (e *Env) CountLabel(n int) string {
	if n <= 0 {
		return e.Tr("count_all", nil)
	}
	key := "count_" + strconv.Itoa(n)
	if e.T.Has(key) {
		return e.Tr(key, nil)
	}
	return strconv.Itoa(n)
}

// LessonLabel returns the display name of a lesson id.
func (e *Env) LessonLabel(id string) string {
	if id == vocab.AllLessons {
		return e.Tr("count_all_lessons", nil)
	}
	if n, ok := vocab.LessonNumber(id); ok {
		return e.Tr("lesson_name", map[string]any{"n": n})
	}
	return id
}

// LessonsLabel summarizes a lesson selection.
func (e *Env) LessonsLabel(ids []string) string {
	switch {
	case len(ids) == 0 || (len(ids) == 1 && ids[0] == vocab.AllLessons):
		return e.LessonLabel(vocab.AllLessons)
	case len(ids) == 1:
		return e.LessonLabel(ids[0])
	}
	return fmt.Sprintf("%s ×%d", e.Tr("label_lesson_short", nil), len(ids))
}

// MasteryLabel returns the translated tier name.
func (e *Env) MasteryLabel(m wrongwords.Mastery) string {
	return wrongwords.MasteryLabel(e.T, m)
}

// DifficultyLabel returns the translated difficulty badge text.
func (e *Env) DifficultyLabel(d int) string {
	return e.Tr("wrong_word_difficulty", map[string]any{"level": d})
}

// FilterLabel returns the translated filter name.
func (e *Env) FilterLabel(f wrongwords.Filter) string {
	if m, ok := f.Mastery(); ok {
		return e.Tr("wrong_words_filter_"+string(m), nil)
	}
	if d, ok := f.Difficulty(); ok {
		return e.Tr("wrong_words_filter_difficulty", map[string]any{"level": d})
	}
	return e.Tr("wrong_words_filter_all", nil)
}

// SortLabel returns the translated sort name.
func (e *Env) SortLabel(s wrongwords.Sort) string {
	return e.Tr("wrong_words_sort_"+string(s), nil)
}

// FormatDuration renders whole seconds as "1m 5s" or "45s".
func (e *Env) FormatDuration(seconds int) string {
	if seconds >= 60 {
		return e.Tr("final_score_minutes_seconds", map[string]any{"minutes": seconds / 60, "seconds": seconds % 60})
	}
	return e.Tr("final_score_seconds", map[string]any{"seconds": seconds})
}
