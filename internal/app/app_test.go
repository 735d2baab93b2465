package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screen/screentest"
	"github.com/abhisek/tango/internal/screens/home"
	"github.com/abhisek/tango/internal/screens/quiz"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestAppModel_StartQuiz(t *testing.T) {
	env := screentest.Env(t)
	m := newAppModel(env, nil)

	m, _ = update(t, m, screen.StartQuizMsg{Request: screen.RequestFromSettings(*env.Settings)})
	if m.router.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", m.router.Depth())
	}
	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Fatalf("active = %T", m.router.Active())
	}

	m, _ = update(t, m, screen.StartQuizMsg{Request: screen.RequestFromSettings(*env.Settings), Replace: true})
	if m.router.Depth() != 2 {
		t.Errorf("replace changed depth to %d", m.router.Depth())
	}
}

func TestAppModel_EscRespectsBackHandler(t *testing.T) {
	env := screentest.Env(t)
	m := newAppModel(env, nil)
	m, _ = update(t, m, screen.StartQuizMsg{Request: screen.RequestFromSettings(*env.Settings)})

	// the untouched quiz handles esc itself and asks to be popped
	_, cmd := update(t, m, screentest.Key("esc"))
	msgs := screentest.Messages(cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", msgs)
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Errorf("got %T, want PopScreenMsg", msgs[0])
	}
}

func TestAppModel_EscOnRoot(t *testing.T) {
	m := newAppModel(screentest.Env(t), nil)
	_, cmd := update(t, m, screentest.Key("esc"))
	if cmd != nil {
		t.Error("esc on the home screen should do nothing")
	}
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("active = %T", m.router.Active())
	}
}

func TestAppModel_NotebookCount(t *testing.T) {
	env := screentest.Env(t)
	if err := env.Notebook.RecordMiss(context.Background(), env.Lessons.All()[0], questiongen.ModeReading); err != nil {
		t.Fatal(err)
	}
	m := newAppModel(env, nil)

	_, cmd := update(t, m, screen.NotebookChangedMsg{})
	if cmd == nil {
		t.Fatal("expected a count command")
	}
	m, _ = update(t, m, cmd())
	if m.notebookCount != 1 {
		t.Errorf("notebookCount = %d, want 1", m.notebookCount)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.render()
	if !strings.Contains(view, "Notebook: 1") || !strings.Contains(view, "N2") {
		t.Error("header should show the level and notebook size")
	}
}

func TestAppModel_StartRequest(t *testing.T) {
	env := screentest.Env(t)
	req := screen.RequestFromSettings(*env.Settings)
	m := newAppModel(env, &req)

	var sawStart bool
	for _, msg := range screentest.Messages(m.Init()) {
		if _, ok := msg.(screen.StartQuizMsg); ok {
			sawStart = true
		}
	}
	if !sawStart {
		t.Error("Init should open the requested quiz")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(screentest.Env(t), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}
