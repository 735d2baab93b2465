package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screen/screentest"
	"github.com/abhisek/tango/internal/screens/lessons"
	"github.com/abhisek/tango/internal/screens/notebook"
)

func press(h *HomeScreen, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.Update(screentest.Key(k))
	}
	return cmd
}

func TestHomeScreen_StartQuiz(t *testing.T) {
	env := screentest.Env(t)
	h := New(env)

	cmd := press(h, "enter")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(screen.StartQuizMsg)
	if !ok {
		t.Fatalf("got %T, want StartQuizMsg", cmd())
	}
	if msg.Replace || msg.Request.Mode != questiongen.ModeMixed || msg.Request.Count != 5 {
		t.Errorf("request = %+v", msg)
	}
}

func TestHomeScreen_CycleMode(t *testing.T) {
	env := screentest.Env(t)
	h := New(env)

	press(h, "down", "down")
	tests := []struct {
		key  string
		want questiongen.Mode
	}{
		{"right", questiongen.ModeReading},
		{"right", questiongen.ModeMeaning},
		{"left", questiongen.ModeReading},
		{"left", questiongen.ModeMixed},
		{"enter", questiongen.ModeReading},
	}
	for _, tt := range tests {
		press(h, tt.key)
		if env.Settings.Mode != tt.want {
			t.Errorf("after %s: mode = %s, want %s", tt.key, env.Settings.Mode, tt.want)
		}
	}
	if !strings.Contains(h.menu.Items[itemMode].Label, "Reading") {
		t.Errorf("label = %q", h.menu.Items[itemMode].Label)
	}
}

func TestHomeScreen_CycleCount(t *testing.T) {
	env := screentest.Env(t)
	h := New(env)

	press(h, "down", "down", "down")
	var got []int
	for i := 0; i < 5; i++ {
		press(h, "right")
		got = append(got, env.Settings.Count)
	}
	want := []int{10, 20, 30, 0, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("counts = %v, want %v", got, want)
		}
	}
}

func TestHomeScreen_Push(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want func(screen.Screen) bool
	}{
		{"lessons", []string{"down", "enter"}, func(s screen.Screen) bool { _, ok := s.(*lessons.LessonsScreen); return ok }},
		{"notebook", []string{"down", "down", "down", "down", "enter"}, func(s screen.Screen) bool { _, ok := s.(*notebook.NotebookScreen); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := press(New(screentest.Env(t)), tt.keys...)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			msg, ok := cmd().(router.PushScreenMsg)
			if !ok || !tt.want(msg.Screen) {
				t.Errorf("got %#v", msg)
			}
		})
	}
}

func TestHomeScreen_LoadErrorDisablesQuiz(t *testing.T) {
	env := screentest.Env(t)
	env.LoadErr = errors.New("offline")
	h := New(env)

	if h.menu.Selected != itemMode {
		t.Errorf("Selected = %d, want the first enabled row", h.menu.Selected)
	}
	if !strings.Contains(h.View(100, 40), "Failed to load vocabulary.") {
		t.Error("view should mention the load failure")
	}
}

func TestHomeScreen_NotebookCount(t *testing.T) {
	env := screentest.Env(t)
	for _, it := range env.Lessons.All()[:3] {
		if err := env.Notebook.RecordMiss(context.Background(), it, questiongen.ModeMeaning); err != nil {
			t.Fatal(err)
		}
	}
	h := New(env)
	h.Update(h.Init()())
	if h.notebookCount != 3 {
		t.Errorf("notebookCount = %d, want 3", h.notebookCount)
	}
	if !strings.Contains(h.View(100, 40), "Notebook: 3") {
		t.Error("view should show the notebook size")
	}
}

func TestMascotFor(t *testing.T) {
	if MascotFor(0) != MascotIdle || MascotFor(alertThreshold) != MascotAlert {
		t.Error("unexpected mascot variant")
	}
}
