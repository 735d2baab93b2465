package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/vocab"
	"github.com/abhisek/tango/internal/wrongwords"
)

// execute runs the root command with an isolated data and config home.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T, dbPath string, words ...string) {
	t.Helper()
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	nb := wrongwords.New(st.KV(), vocab.LevelN2)
	for _, w := range words {
		require.NoError(t, nb.RecordMiss(context.Background(), vocab.Item{Word: w, Reading: w + "-r", English: w + "-m"}, questiongen.ModeMeaning))
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tango "), out)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"lesson1":[{"w":"猫","r":"ねこ","m":"cat"}]}`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"lesson1":"nope"}`), 0o644))

	out, err := execute(t, "", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "1 lessons, 1 words")

	out, err = execute(t, "", "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL  "+bad)
}

func TestLessons(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tango.db")
	out, err := execute(t, "", "lessons", "--db", db, "--level", "n2")
	require.NoError(t, err)
	assert.Contains(t, out, "lesson1")
	assert.Contains(t, out, "(N2)")
}

func TestWrongListAndClear(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tango.db")
	seed(t, db, "犬", "猫")

	out, err := execute(t, "", "wrong", "list", "--db", db, "--level", "n2", "--lang", "en", "--sort", "alphabetical")
	require.NoError(t, err)
	assert.Contains(t, out, "犬")
	assert.Contains(t, out, "猫-m")
	assert.Contains(t, out, "2 entries")

	_, err = execute(t, "", "wrong", "delete", "--db", db, "--level", "n2", "犬")
	require.NoError(t, err)

	out, err = execute(t, "", "stats", "--db", db, "--level", "n2", "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "1 words, 1 misses")
}

func TestWrongExport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tango.db")
	seed(t, db, "猫")
	path := filepath.Join(t.TempDir(), "out", "wrong.csv")

	_, err := execute(t, "", "wrong", "export", "--db", db, "--level", "n2", "--out", path)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"猫"`)
}

func TestReset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tango.db")
	seed(t, db, "猫")

	out, err := execute(t, "n\n", "reset", "--db", db, "--level", "n2", "--yes=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = execute(t, "", "reset", "--db", db, "--level", "n2", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Notebook cleared.")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	n, err := wrongwords.New(st.KV(), vocab.LevelN2).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCheckLessons(t *testing.T) {
	lessons := vocab.Lessons{"lesson1": {{Word: "a"}}}
	assert.NoError(t, checkLessons(lessons, []string{"lesson1", vocab.AllLessons}))
	assert.ErrorContains(t, checkLessons(lessons, []string{"lesson9"}), "lesson9")
}
