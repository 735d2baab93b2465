package notebook

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screen/screentest"
	"github.com/abhisek/tango/internal/wrongwords"
)

// openNotebook seeds the first n lesson words as misses and returns a
// loaded screen.
func openNotebook(t *testing.T, n int) (*NotebookScreen, *screen.Env) {
	t.Helper()
	env := screentest.Env(t)
	ctx := context.Background()
	for _, it := range env.Lessons.All()[:n] {
		require.NoError(t, env.Notebook.RecordMiss(ctx, it, questiongen.ModeReading))
	}
	s := New(env)
	pump(s, s.Init())
	return s, env
}

// pump feeds the messages produced by cmd back into the screen and
// returns the ones it does not consume itself.
func pump(s *NotebookScreen, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	for _, msg := range screentest.Messages(cmd) {
		if _, ok := msg.(loadedMsg); ok {
			s.Update(msg)
			continue
		}
		out = append(out, msg)
	}
	return out
}

func press(s *NotebookScreen, key string) []tea.Msg {
	_, cmd := s.Update(screentest.Key(key))
	return pump(s, cmd)
}

func TestNotebookScreen_Lists(t *testing.T) {
	s, _ := openNotebook(t, 3)
	require.Len(t, s.Visible(), 3)

	view := s.View(100, 30)
	assert.Contains(t, view, "曖昧")
	assert.Contains(t, view, "Missed 1x")
	assert.Contains(t, view, "3/3")
}

func TestNotebookScreen_Empty(t *testing.T) {
	s, _ := openNotebook(t, 0)
	assert.Contains(t, s.View(100, 30), "No matching words")
}

func TestNotebookScreen_FilterAndSortCycle(t *testing.T) {
	s, env := openNotebook(t, 3)
	ctx := context.Background()
	_, err := env.Notebook.CycleMastery(ctx, s.Visible()[0].Word)
	require.NoError(t, err)

	press(s, "f") // new
	assert.Equal(t, wrongwords.ByMastery(wrongwords.MasteryNew), s.Filter())
	assert.Len(t, s.Visible(), 2)

	press(s, "f") // learning
	assert.Len(t, s.Visible(), 1)

	for i := 0; i < len(wrongwords.Filters)-2; i++ {
		press(s, "f")
	}
	assert.Equal(t, wrongwords.FilterAll, s.Filter())

	press(s, "s")
	assert.Equal(t, wrongwords.SortFrequency, s.Sort())
}

func TestNotebookScreen_Search(t *testing.T) {
	s, _ := openNotebook(t, 3)

	s.Update(screentest.Key("/"))
	require.True(t, s.HandlesBack())
	for _, k := range "あい" {
		s.Update(tea.KeyPressMsg{Code: k, Text: string(k)})
	}
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, "曖昧", s.Visible()[0].Word)

	s.Update(screentest.Key("enter"))
	assert.True(t, s.HandlesBack(), "a kept search term still owns esc")
	assert.Len(t, s.Visible(), 1)

	s.Update(screentest.Key("esc"))
	assert.False(t, s.HandlesBack())
	assert.Len(t, s.Visible(), 3)
}

func TestNotebookScreen_CycleEdits(t *testing.T) {
	s, env := openNotebook(t, 1)
	word := s.Visible()[0].Word

	msgs := press(s, "m")
	assert.Contains(t, msgs, tea.Msg(screen.NotebookChangedMsg{}))
	press(s, "d")

	rec, ok, err := env.Notebook.Get(context.Background(), word)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wrongwords.MasteryLearning, rec.Mastery)
	assert.Equal(t, 4, rec.Difficulty)
	assert.Equal(t, 4, s.Visible()[0].Difficulty)
}

func TestNotebookScreen_DeleteConfirm(t *testing.T) {
	s, env := openNotebook(t, 2)
	word := s.Visible()[0].Word

	press(s, "x")
	assert.Contains(t, s.View(100, 30), "Delete "+word+"?")
	press(s, "n")
	assert.Len(t, s.Visible(), 2)

	press(s, "x")
	press(s, "y")
	assert.Len(t, s.Visible(), 1)
	_, ok, err := env.Notebook.Get(context.Background(), word)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotebookScreen_ClearFiltered(t *testing.T) {
	s, env := openNotebook(t, 3)
	ctx := context.Background()
	keep := s.Visible()[2].Word
	_, err := env.Notebook.CycleMastery(ctx, keep)
	require.NoError(t, err)

	press(s, "f") // new: two words
	require.Len(t, s.Visible(), 2)
	press(s, "X")
	assert.Contains(t, s.View(100, 30), "Delete 2 words?")
	press(s, "y")

	n, err := env.Notebook.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, ok, _ := env.Notebook.Get(ctx, keep)
	assert.True(t, ok)
}

func TestNotebookScreen_Practise(t *testing.T) {
	s, _ := openNotebook(t, 3)

	msgs := press(s, "p")
	require.Len(t, msgs, 1)
	msg, ok := msgs[0].(screen.StartQuizMsg)
	require.True(t, ok)
	assert.False(t, msg.Replace)
	assert.True(t, msg.Request.Review)
	assert.Equal(t, questiongen.ModeMixed, msg.Request.Mode)
	assert.Len(t, msg.Request.Items, 3)
}

func TestNotebookScreen_PractiseEmpty(t *testing.T) {
	s, _ := openNotebook(t, 0)
	assert.Empty(t, press(s, "p"))
}

func TestNotebookScreen_Export(t *testing.T) {
	s, env := openNotebook(t, 2)

	press(s, "e")
	path := filepath.Join(env.ExportDir, "wrong_words_N2_2024-05-01.csv")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(raw), "\n"))
	assert.True(t, strings.HasPrefix(string(raw), "\ufeffWord,Reading,Meaning"))
	assert.Contains(t, s.View(200, 30), "Exported to")
}

func TestNotebookScreen_ExportEmpty(t *testing.T) {
	s, _ := openNotebook(t, 0)
	press(s, "e")
	assert.Contains(t, s.View(100, 30), "Nothing to export.")
}

func TestNotebookScreen_FocusReloads(t *testing.T) {
	s, env := openNotebook(t, 1)
	require.NoError(t, env.Notebook.RecordMiss(context.Background(), env.Lessons.All()[5], questiongen.ModeUsage))

	pump(s, s.Focus())
	assert.Len(t, s.Visible(), 2)
}
