package wrongwords

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abhisek/tango/internal/vocab"
)

type filterKind int

const (
	filterAll filterKind = iota
	filterMastery
	filterDifficulty
)

// Filter selects records by mastery tier or difficulty.
type Filter struct {
	kind       filterKind
	mastery    Mastery
	difficulty int
}

// FilterAll matches every record.
var FilterAll = Filter{}

// ByMastery matches records at tier m.
func ByMastery(m Mastery) Filter {
	return Filter{kind: filterMastery, mastery: m}
}

// ByDifficulty matches records with difficulty d.
func ByDifficulty(d int) Filter {
	return Filter{kind: filterDifficulty, difficulty: d}
}

// Filters lists every filter in the order the UI cycles through them.
var Filters = func() []Filter {
	out := []Filter{FilterAll}
	for _, m := range AllMastery {
		out = append(out, ByMastery(m))
	}
	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		out = append(out, ByDifficulty(d))
	}
	return out
}()

// ParseFilter parses "all", a tier name, or "difficulty-N".
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return FilterAll, nil
	}
	if m, err := ParseMastery(s); err == nil {
		return ByMastery(m), nil
	}
	if rest, ok := strings.CutPrefix(s, "difficulty-"); ok {
		d, err := strconv.Atoi(rest)
		if err == nil && d >= MinDifficulty && d <= MaxDifficulty {
			return ByDifficulty(d), nil
		}
	}
	return Filter{}, fmt.Errorf("unknown filter %q", s)
}

// String returns the form accepted by ParseFilter.
func (f Filter) String() string {
	switch f.kind {
	case filterMastery:
		return string(f.mastery)
	case filterDifficulty:
		return fmt.Sprintf("difficulty-%d", f.difficulty)
	}
	return "all"
}

// Mastery returns the tier a mastery filter selects.
func (f Filter) Mastery() (Mastery, bool) {
	return f.mastery, f.kind == filterMastery
}

// Difficulty returns the difficulty a difficulty filter selects.
func (f Filter) Difficulty() (int, bool) {
	return f.difficulty, f.kind == filterDifficulty
}

// Match reports whether r passes the filter.
func (f Filter) Match(r Record) bool {
	switch f.kind {
	case filterMastery:
		return r.Mastery == f.mastery
	case filterDifficulty:
		return r.Difficulty == f.difficulty
	}
	return true
}

// Sort orders query results.
type Sort string

const (
	SortRecent       Sort = "recent"       // last miss, newest first
	SortFrequency    Sort = "frequency"    // wrong count, highest first
	SortDifficulty   Sort = "difficulty"   // difficulty, highest first
	SortAlphabetical Sort = "alphabetical" // reading (or word), collated
)

// AllSorts lists the sorts in UI order.
var AllSorts = []Sort{SortRecent, SortFrequency, SortDifficulty, SortAlphabetical}

// ParseSort validates a sort name. Empty means SortRecent.
func ParseSort(s string) (Sort, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortRecent, nil
	}
	for _, known := range AllSorts {
		if Sort(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// apply filters and sorts records without modifying the input.
func apply(records []Record, f Filter, by Sort, lang vocab.Language) []Record {
	out := lo.Filter(records, func(r Record, _ int) bool { return f.Match(r) })

	var less func(a, b Record) bool
	switch by {
	case SortFrequency:
		less = func(a, b Record) bool { return a.WrongCount > b.WrongCount }
	case SortDifficulty:
		less = func(a, b Record) bool { return a.Difficulty > b.Difficulty }
	case SortAlphabetical:
		c := collate.New(language.Make(string(lang)))
		less = func(a, b Record) bool {
			return c.CompareString(a.Vocab.SortKey(), b.Vocab.SortKey()) < 0
		}
	default:
		less = func(a, b Record) bool { return a.LastWrongAt.After(b.LastWrongAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Search keeps records whose word, reading or meanings contain term,
// ignoring case. An empty term keeps everything.
func Search(records []Record, term string) []Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	return lo.Filter(records, func(r Record, _ int) bool {
		for _, field := range []string{r.Word, r.Vocab.Reading, r.Vocab.English, r.Vocab.Chinese} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}
