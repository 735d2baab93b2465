// Package screentest builds a screen.Env over in-memory storage and the
// embedded N2 lessons for screen tests.
package screentest

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/i18n"
	"github.com/abhisek/tango/internal/logging"
	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/vocab"
	"github.com/abhisek/tango/internal/wrongwords"
)

// Now is the fixed clock of test environments.
var Now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// Env returns an English environment with an empty notebook, a seeded
// generator and no pacing delays.
func Env(t *testing.T) *screen.Env {
	t.Helper()
	ctx := context.Background()

	lessons, err := vocab.EmbeddedSource{}.Fetch(ctx, vocab.LevelN2)
	if err != nil {
		t.Fatalf("fetch lessons: %v", err)
	}
	cat, err := i18n.NewLoader(nil, nil).Load(vocab.LangEN)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	now := func() time.Time { return Now }
	log := logging.Discard()

	cfg := questiongen.DefaultConfig()
	cfg.Language = vocab.LangEN
	return &screen.Env{
		Ctx:     ctx,
		Level:   vocab.LevelN2,
		Lang:    vocab.LangEN,
		T:       cat,
		Lessons: lessons,
		Notebook: wrongwords.New(store.NewMemoryKV(), vocab.LevelN2,
			wrongwords.WithClock(now),
			wrongwords.WithLanguage(vocab.LangEN),
			wrongwords.WithLogger(log)),
		Gen: questiongen.New(cfg, rand.New(rand.NewPCG(1, 2))),
		Settings: &screen.Settings{
			Mode:    questiongen.ModeMixed,
			Count:   5,
			Lessons: []string{vocab.AllLessons},
		},
		ExportDir: t.TempDir(),
		Log:       log,
		Now:       now,
	}
}

// Key builds a key press from its string form: "enter", "esc", "space",
// the arrows, or a single character.
func Key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// Messages runs cmd and flattens batches into the messages they produce.
// Commands that sleep, such as tea.Tick, block the caller.
func Messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Messages(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
