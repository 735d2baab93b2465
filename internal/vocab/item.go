package vocab

import (
	"fmt"
	"strings"
)

// Item is one dictionary entry. Word is the identity key across lessons
// and the wrong-word notebook.
type Item struct {
	Word    string `json:"w"`
	Reading string `json:"r,omitempty"`
	English string `json:"m,omitempty"`
	Chinese string `json:"c,omitempty"`
	Usage   string `json:"u,omitempty"`
	Example string `json:"e,omitempty"`
}

// HasDistinctReading reports whether the reading is present and differs from the word.
func (it Item) HasDistinctReading() bool {
	return it.Reading != "" && it.Reading != it.Word
}

// MeaningFor returns the primary meaning for the display language.
// English learners see the English gloss; every other language uses the
// Chinese gloss.
func (it Item) MeaningFor(lang Language) string {
	if lang == LangEN {
		return it.English
	}
	return it.Chinese
}

// DisplayMeaning returns the primary meaning, falling back to the other gloss.
func (it Item) DisplayMeaning(lang Language) string {
	if m := it.MeaningFor(lang); m != "" {
		return m
	}
	if lang == LangEN {
		return it.Chinese
	}
	return it.English
}

// Sentence returns the usage sentence, or the example sentence when no
// usage sentence is present.
func (it Item) Sentence() string {
	if s := strings.TrimSpace(it.Usage); s != "" {
		return s
	}
	return strings.TrimSpace(it.Example)
}

// SortKey is the string used for alphabetical ordering: reading, else word.
func (it Item) SortKey() string {
	if it.Reading != "" {
		return it.Reading
	}
	return it.Word
}

// Level identifies a vocabulary set. Wrong-word records are partitioned by level.
type Level string

const (
	LevelN1     Level = "n1"
	LevelN2     Level = "n2"
	LevelN3     Level = "n3"
	LevelBiaori Level = "biaori"
	LevelGaoji  Level = "gaoji"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = LevelN2

// AllLevels lists every supported level in display order.
var AllLevels = []Level{LevelN1, LevelN2, LevelN3, LevelBiaori, LevelGaoji}

// ParseLevel parses a level id case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllLevels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Upper returns the level in upper case, as used in file names and headers.
func (l Level) Upper() string {
	return strings.ToUpper(string(l))
}

// Language is a display language.
type Language string

const (
	LangJA Language = "ja"
	LangEN Language = "en"
	LangZH Language = "zh"
)

// DefaultLanguage is used when no language is configured or detected.
const DefaultLanguage = LangJA

// AllLanguages lists the supported display languages.
var AllLanguages = []Language{LangJA, LangEN, LangZH}

// ParseLanguage parses a language code such as "en", "zh-CN" or "ja_JP.UTF-8".
func ParseLanguage(s string) (Language, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(code, "-_."); i >= 0 {
		code = code[:i]
	}
	for _, known := range AllLanguages {
		if Language(code) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}
