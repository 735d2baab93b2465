// Package wrongwords keeps the per-level notebook of missed words.
//
// The notebook for a level is persisted as a single JSON array under the
// key "wrongwords/<level>" of a store.KV. Each operation loads, mutates and
// saves the whole array. A Store serializes its own operations; two Stores
// over the same KV do not coordinate.
package wrongwords

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/vocab"
)

var (
	// ErrNotFound is returned when an edit targets a word not in the notebook.
	ErrNotFound = errors.New("word not in notebook")

	// ErrInvalidDifficulty is returned for difficulties outside 1..5.
	ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 5")
)

// Store is the notebook for one level.
type Store struct {
	kv    store.KV
	level vocab.Level
	lang  vocab.Language
	now   func() time.Time
	log   logrus.FieldLogger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for miss timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLanguage sets the collation language for alphabetical sorting.
func WithLanguage(lang vocab.Language) Option {
	return func(s *Store) { s.lang = lang }
}

// WithLogger sets the logger for mastery transitions.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// New returns the notebook for level backed by kv.
func New(kv store.KV, level vocab.Level, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		level: level,
		lang:  vocab.DefaultLanguage,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	s.log = s.log.WithField("level", string(level))
	return s
}

// PartitionKey returns the KV key holding the notebook of level.
func PartitionKey(level vocab.Level) string {
	return "wrongwords/" + string(level)
}

// Level returns the level this notebook belongs to.
func (s *Store) Level() vocab.Level { return s.level }

func (s *Store) load(ctx context.Context) ([]Record, error) {
	raw, ok, err := s.kv.Get(ctx, PartitionKey(s.level))
	if err != nil {
		return nil, fmt.Errorf("load notebook: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode notebook %s: %w", s.level, err)
	}
	return recs, nil
}

func (s *Store) save(ctx context.Context, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode notebook: %w", err)
	}
	if err := s.kv.Set(ctx, PartitionKey(s.level), raw); err != nil {
		return fmt.Errorf("save notebook: %w", err)
	}
	return nil
}

// update runs fn over the loaded records under the lock and saves the
// result when fn reports a change.
func (s *Store) update(ctx context.Context, fn func([]Record) ([]Record, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return err
	}
	next, changed, err := fn(recs)
	if err != nil || !changed {
		return err
	}
	return s.save(ctx, next)
}

// wordKey normalizes a word for use as a record key.
func wordKey(word string) string {
	return strings.TrimSpace(word)
}

func indexOf(recs []Record, word string) int {
	word = wordKey(word)
	for i := range recs {
		if recs[i].Word == word {
			return i
		}
	}
	return -1
}

func (s *Store) logTransition(t Transition) {
	if t.From == t.To && t.Trigger != "graduate" {
		return
	}
	s.log.WithFields(logrus.Fields{
		"word":    t.Word,
		"from":    string(t.From),
		"to":      string(t.To),
		"trigger": t.Trigger,
	}).Debug("mastery changed")
}

// RecordMiss notes a wrong answer for item. A first miss creates the
// record; later misses bump the count and reopen familiar words.
func (s *Store) RecordMiss(ctx context.Context, item vocab.Item, mode questiongen.Mode) error {
	word := wordKey(item.Word)
	if word == "" {
		return nil
	}
	now := s.now()
	return s.update(ctx, func(recs []Record) ([]Record, bool, error) {
		i := indexOf(recs, word)
		if i < 0 {
			recs = append(recs, Record{
				Word:         word,
				Vocab:        item,
				WrongCount:   1,
				FirstWrongAt: now,
				LastWrongAt:  now,
				Mastery:      MasteryNew,
				Difficulty:   DefaultDifficulty,
				History:      []HistoryEntry{{At: now, Mode: mode}},
			})
			s.log.WithField("word", word).Debug("added to notebook")
			return recs, true, nil
		}
		r := &recs[i]
		from := r.Mastery
		r.WrongCount++
		r.LastWrongAt = now
		r.History = append(r.History, HistoryEntry{At: now, Mode: mode})
		r.Mastery = r.Mastery.missed()
		s.logTransition(Transition{Word: word, From: from, To: r.Mastery, Trigger: "miss"})
		return recs, true, nil
	})
}

// Promote moves word one tier up after a correct answer in notebook
// practice. Familiar words graduate and are removed. Unknown words are
// ignored.
func (s *Store) Promote(ctx context.Context, word string) error {
	return s.update(ctx, func(recs []Record) ([]Record, bool, error) {
		i := indexOf(recs, word)
		if i < 0 {
			return recs, false, nil
		}
		from := recs[i].Mastery
		next, graduated := from.promoted()
		if graduated {
			s.logTransition(Transition{Word: word, From: from, To: from, Trigger: "graduate"})
			return append(recs[:i], recs[i+1:]...), true, nil
		}
		recs[i].Mastery = next
		s.logTransition(Transition{Word: word, From: from, To: next, Trigger: "promote"})
		return recs, true, nil
	})
}

// Query returns the records passing f, ordered by sort. Ties keep
// notebook order.
func (s *Store) Query(ctx context.Context, f Filter, by Sort) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return apply(recs, f, by, s.lang), nil
}

// Get returns the record for word.
func (s *Store) Get(ctx context.Context, word string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load(ctx)
	if err != nil {
		return Record{}, false, err
	}
	if i := indexOf(recs, word); i >= 0 {
		return recs[i], true, nil
	}
	return Record{}, false, nil
}

// Count returns the number of records.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load(ctx)
	return len(recs), err
}

// DeleteOne removes word. Deleting a missing word is not an error.
func (s *Store) DeleteOne(ctx context.Context, word string) error {
	return s.DeleteMany(ctx, []string{word})
}

// DeleteMany removes every listed word and returns nil for words that
// were not present.
func (s *Store) DeleteMany(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(words))
	for _, w := range words {
		drop[wordKey(w)] = struct{}{}
	}
	return s.update(ctx, func(recs []Record) ([]Record, bool, error) {
		kept := recs[:0]
		for _, r := range recs {
			if _, ok := drop[r.Word]; !ok {
				kept = append(kept, r)
			}
		}
		return kept, len(kept) != len(recs), nil
	})
}

// Clear removes every record of the level.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, PartitionKey(s.level)); err != nil {
		return fmt.Errorf("clear notebook: %w", err)
	}
	s.log.Info("notebook cleared")
	return nil
}

// CycleMastery steps word through new, learning, familiar and back to new.
func (s *Store) CycleMastery(ctx context.Context, word string) (Mastery, error) {
	var out Mastery
	err := s.edit(ctx, word, func(r *Record) error {
		from := r.Mastery
		r.Mastery = from.cycled()
		out = r.Mastery
		s.logTransition(Transition{Word: word, From: from, To: out, Trigger: "edit"})
		return nil
	})
	return out, err
}

// CycleDifficulty steps the difficulty of word through 1..5, wrapping.
func (s *Store) CycleDifficulty(ctx context.Context, word string) (int, error) {
	var out int
	err := s.edit(ctx, word, func(r *Record) error {
		r.Difficulty = r.Difficulty%MaxDifficulty + 1
		out = r.Difficulty
		return nil
	})
	return out, err
}

// SetDifficulty sets the difficulty of word.
func (s *Store) SetDifficulty(ctx context.Context, word string, d int) error {
	if d < MinDifficulty || d > MaxDifficulty {
		return fmt.Errorf("%w: got %d", ErrInvalidDifficulty, d)
	}
	return s.edit(ctx, word, func(r *Record) error {
		r.Difficulty = d
		return nil
	})
}

func (s *Store) edit(ctx context.Context, word string, fn func(*Record) error) error {
	return s.update(ctx, func(recs []Record) ([]Record, bool, error) {
		i := indexOf(recs, word)
		if i < 0 {
			return nil, false, fmt.Errorf("%w: %s", ErrNotFound, word)
		}
		if err := fn(&recs[i]); err != nil {
			return nil, false, err
		}
		return recs, true, nil
	})
}

// Stats summarizes a notebook.
type Stats struct {
	Total        int             `json:"total"`
	ByMastery    map[Mastery]int `json:"byMastery"`
	ByDifficulty map[int]int     `json:"byDifficulty"`
	TotalMisses  int             `json:"totalMisses"`
}

// Stats counts records by tier and difficulty.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{
		Total:        len(recs),
		ByMastery:    make(map[Mastery]int, len(AllMastery)),
		ByDifficulty: make(map[int]int, MaxDifficulty),
	}
	for _, m := range AllMastery {
		st.ByMastery[m] = 0
	}
	for _, r := range recs {
		st.ByMastery[r.Mastery]++
		st.ByDifficulty[r.Difficulty]++
		st.TotalMisses += r.WrongCount
	}
	return st, nil
}
