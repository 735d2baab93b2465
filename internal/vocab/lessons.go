package vocab

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// AllLessons is the selection id that stands for every lesson.
const AllLessons = "all"

// Lessons maps a lesson id such as "lesson3" to its items.
type Lessons map[string][]Item

// Keys returns lesson ids ordered by their numeric suffix, then by name.
func (l Lessons) Keys() []string {
	keys := lo.Keys(l)
	sort.Slice(keys, func(i, j int) bool {
		ni, oki := lessonNumber(keys[i])
		nj, okj := lessonNumber(keys[j])
		switch {
		case oki && okj && ni != nj:
			return ni < nj
		case oki != okj:
			return oki
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Select flattens the chosen lessons in lesson order. An empty selection,
// or one containing AllLessons, selects everything. Items without a word
// are dropped.
func (l Lessons) Select(ids []string) []Item {
	keys := l.Keys()
	if len(ids) > 0 && !lo.Contains(ids, AllLessons) {
		keys = lo.Filter(keys, func(k string, _ int) bool {
			return lo.Contains(ids, k)
		})
	}
	var out []Item
	for _, k := range keys {
		out = append(out, lo.Filter(l[k], func(it Item, _ int) bool {
			return strings.TrimSpace(it.Word) != ""
		})...)
	}
	return out
}

// All returns every item across all lessons. It is the distractor superset.
func (l Lessons) All() []Item {
	return l.Select(nil)
}

// Count returns the total number of items.
func (l Lessons) Count() int {
	n := 0
	for _, items := range l {
		n += len(items)
	}
	return n
}

// LessonNumber returns the numeric suffix of a lesson id for display.
func LessonNumber(id string) (int, bool) {
	return lessonNumber(id)
}

func lessonNumber(id string) (int, bool) {
	digits := strings.TrimLeftFunc(id, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
