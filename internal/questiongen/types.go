package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/tango/internal/vocab"
)

// Mode selects what a question asks about.
type Mode string

const (
	// ModeReading shows the word and asks for its kana reading.
	ModeReading Mode = "reading"

	// ModeMeaning shows the word (with reading) and asks for its meaning.
	ModeMeaning Mode = "meaning"

	// ModeUsage shows a cloze sentence and asks which word fills the blank.
	ModeUsage Mode = "usage"

	// ModeMixed picks one of the three modes per item. It never appears on
	// a generated Question.
	ModeMixed Mode = "mixed"
)

// AllModes lists the selectable modes in menu order.
var AllModes = []Mode{ModeReading, ModeMeaning, ModeUsage, ModeMixed}

// questionModes are the modes a Question can carry.
var questionModes = []Mode{ModeReading, ModeMeaning, ModeUsage}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown quiz mode %q", s)
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, err := ParseMode(string(m))
	return err == nil
}

// Question is a generated multiple-choice question. It is not modified
// after generation.
type Question struct {
	// Prompt is the text shown to the learner: the word, the word with its
	// reading, or a cloze sentence.
	Prompt string

	// Mode is reading, meaning or usage.
	Mode Mode

	// Options holds the shuffled choices. Exactly one is correct.
	Options []Option

	// Answer is the text of the correct option.
	Answer string

	// Vocab is the item the question was built from.
	Vocab vocab.Item
}

// Option is one choice of a Question.
type Option struct {
	Text    string
	Correct bool
	Vocab   vocab.Item
}

// CorrectIndex returns the index of the correct option, or -1.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// answerFor returns the value an item contributes as an answer in mode.
func answerFor(it vocab.Item, mode Mode, lang vocab.Language) string {
	switch mode {
	case ModeReading:
		return it.Reading
	case ModeUsage:
		return it.Word
	case ModeMeaning:
		return it.MeaningFor(lang)
	}
	return ""
}
