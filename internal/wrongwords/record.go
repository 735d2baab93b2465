package wrongwords

import (
	"time"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/vocab"
)

// Difficulty bounds. New records start at DefaultDifficulty.
const (
	MinDifficulty     = 1
	MaxDifficulty     = 5
	DefaultDifficulty = 3
)

// Record is one notebook entry, keyed by Word.
type Record struct {
	Word string `json:"word"`

	// Vocab is the item as it was at the first miss.
	Vocab vocab.Item `json:"vocab"`

	WrongCount   int       `json:"wrongCount"`
	FirstWrongAt time.Time `json:"firstWrongAt"`
	LastWrongAt  time.Time `json:"lastWrongAt"`
	Mastery      Mastery   `json:"mastery"`
	Difficulty   int       `json:"difficulty"`

	// History holds one entry per miss, oldest first.
	History []HistoryEntry `json:"history"`
}

// HistoryEntry records when and in which mode a word was missed.
type HistoryEntry struct {
	At   time.Time        `json:"at"`
	Mode questiongen.Mode `json:"mode"`
}

// Vocabulary returns the vocabulary snapshots of records, in order. It
// feeds notebook practice quizzes.
func Vocabulary(records []Record) []vocab.Item {
	out := make([]vocab.Item, len(records))
	for i, r := range records {
		out[i] = r.Vocab
	}
	return out
}
