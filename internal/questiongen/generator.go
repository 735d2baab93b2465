package questiongen

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/tango/internal/vocab"
)

// Config controls question generation.
type Config struct {
	// Language picks which meaning field answers meaning questions.
	Language vocab.Language

	// Distractors is the number of wrong options per question.
	Distractors int

	// CursorStep is how far the shared distractor cursor moves after each
	// successfully built question.
	CursorStep int
}

// DefaultConfig returns the standard four-option configuration.
func DefaultConfig() Config {
	return Config{
		Language:    vocab.DefaultLanguage,
		Distractors: 3,
		CursorStep:  3,
	}
}

// Generator builds multiple-choice questions from vocabulary items.
// It is not safe for concurrent use.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Generator. A nil rng is replaced by a time-seeded source.
func New(cfg Config, rng *rand.Rand) *Generator {
	def := DefaultConfig()
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.Distractors <= 0 {
		cfg.Distractors = def.Distractors
	}
	if cfg.CursorStep <= 0 {
		cfg.CursorStep = def.CursorStep
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Generate builds one question per item where possible and returns them
// in random order. Distractors are drawn from superset, which should be
// the full vocabulary of the level, not just items. Items whose
// preconditions fail, or for which not enough distinct distractors
// exist, are skipped.
func (g *Generator) Generate(items, superset []vocab.Item, mode Mode) []Question {
	pool := g.shuffled(superset)
	cursor := 0

	out := make([]Question, 0, len(items))
	for _, it := range items {
		q, ok := g.prompt(it, g.pickMode(mode))
		if !ok {
			continue
		}
		distractors, ok := g.distractors(pool, cursor, it, q.Mode, q.Answer)
		if !ok {
			continue
		}
		cursor = (cursor + g.cfg.CursorStep) % len(pool)

		opts := make([]Option, 0, len(distractors)+1)
		opts = append(opts, Option{Text: q.Answer, Correct: true, Vocab: it})
		opts = append(opts, distractors...)
		g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
		q.Options = opts

		out = append(out, q)
	}

	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Sample returns n items chosen at random. n <= 0 or n >= len(items)
// returns every item in random order.
func (g *Generator) Sample(items []vocab.Item, n int) []vocab.Item {
	out := g.shuffled(items)
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func (g *Generator) pickMode(mode Mode) Mode {
	if mode == ModeMixed || !mode.Valid() {
		return questionModes[g.rng.IntN(len(questionModes))]
	}
	return mode
}

// prompt resolves the effective mode for an item and fills Prompt, Mode,
// Answer and Vocab. Reading and usage fall back to meaning when their
// preconditions fail.
func (g *Generator) prompt(it vocab.Item, mode Mode) (Question, bool) {
	switch {
	case mode == ModeReading && it.HasDistinctReading():
		return Question{Prompt: it.Word, Mode: ModeReading, Answer: it.Reading, Vocab: it}, true

	case mode == ModeUsage && it.Sentence() != "":
		clause, ok := g.clause(it.Sentence())
		if !ok {
			return Question{}, false
		}
		return Question{Prompt: clause, Mode: ModeUsage, Answer: it.Word, Vocab: it}, true
	}

	answer := it.MeaningFor(g.cfg.Language)
	if answer == "" {
		return Question{}, false
	}
	prompt := it.Word
	if it.HasDistinctReading() {
		prompt += " (" + it.Reading + ")"
	}
	return Question{Prompt: prompt, Mode: ModeMeaning, Answer: answer, Vocab: it}, true
}

// clause picks the cloze prompt from a sentence. Sentences with more than
// one blank are split into clauses and one clause is chosen at random.
func (g *Generator) clause(sentence string) (string, bool) {
	clauses := []string{sentence}
	if strings.Count(sentence, ClozeMarker) > 1 {
		clauses = SplitClauses(sentence)
	}
	if len(clauses) == 0 {
		return "", false
	}
	return clauses[g.rng.IntN(len(clauses))], true
}

// distractors scans pool from cursor, wrapping once, for wrong options
// whose answer text is non-empty, differs from the correct answer and is
// unique within the question.
func (g *Generator) distractors(pool []vocab.Item, cursor int, source vocab.Item, mode Mode, correct string) ([]Option, bool) {
	if len(pool) == 0 {
		return nil, false
	}
	want := g.cfg.Distractors
	out := make([]Option, 0, want)
	seen := map[string]bool{correct: true}
	for i := cursor; i < cursor+len(pool) && len(out) < want; i++ {
		cand := pool[i%len(pool)]
		if cand.Word == source.Word {
			continue
		}
		text := answerFor(cand, mode, g.cfg.Language)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, Option{Text: text, Vocab: cand})
	}
	return out, len(out) == want
}

func (g *Generator) shuffled(items []vocab.Item) []vocab.Item {
	out := append([]vocab.Item(nil), items...)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
