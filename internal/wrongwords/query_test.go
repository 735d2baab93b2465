package wrongwords

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/vocab"
)

func words(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Word
	}
	return out
}

// seed builds a notebook:
//
//	word  reading  misses  difficulty  mastery   last miss
//	蟻    あり     1       3           new       t0
//	犬    いぬ     3       5           learning  t0+2h
//	鳥    とり     2       1           new       t0+1h
func seed(t *testing.T) *Store {
	s, c, _ := newTestStore(t)
	ctx := context.Background()
	miss := func(w, r string) {
		require.NoError(t, s.RecordMiss(ctx, item(w, r), questiongen.ModeMeaning))
	}

	miss("蟻", "あり")
	miss("犬", "いぬ")
	miss("鳥", "とり")
	c.tick(time.Hour)
	miss("鳥", "とり")
	miss("犬", "いぬ")
	c.tick(time.Hour)
	miss("犬", "いぬ")

	require.NoError(t, s.SetDifficulty(ctx, "犬", 5))
	require.NoError(t, s.SetDifficulty(ctx, "鳥", 1))
	require.NoError(t, s.Promote(ctx, "犬"))
	return s
}

func TestQuerySort(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	tests := []struct {
		sort Sort
		want []string
	}{
		{SortRecent, []string{"犬", "鳥", "蟻"}},
		{SortFrequency, []string{"犬", "鳥", "蟻"}},
		{SortDifficulty, []string{"犬", "蟻", "鳥"}},
		{SortAlphabetical, []string{"蟻", "犬", "鳥"}}, // あり, いぬ, とり
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			recs, err := s.Query(ctx, FilterAll, tt.sort)
			require.NoError(t, err)
			assert.Equal(t, tt.want, words(recs))
		})
	}
}

func TestQuerySortsKeepTheSameSet(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	recent, err := s.Query(ctx, FilterAll, SortRecent)
	require.NoError(t, err)
	for _, by := range AllSorts {
		recs, err := s.Query(ctx, FilterAll, by)
		require.NoError(t, err)
		assert.ElementsMatch(t, words(recent), words(recs), by)
	}

	alpha, err := s.Query(ctx, FilterAll, SortAlphabetical)
	require.NoError(t, err)
	assert.NotEqual(t, words(recent), words(alpha))
}

func TestQuerySortStable(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	for _, w := range []string{"あ", "い", "う"} {
		require.NoError(t, s.RecordMiss(ctx, item(w, ""), questiongen.ModeMeaning))
	}
	recs, err := s.Query(ctx, FilterAll, SortFrequency)
	require.NoError(t, err)
	assert.Equal(t, []string{"あ", "い", "う"}, words(recs))
}

func TestQueryFilter(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	tests := []struct {
		filter string
		want   []string
	}{
		{"all", []string{"犬", "鳥", "蟻"}},
		{"new", []string{"鳥", "蟻"}},
		{"learning", []string{"犬"}},
		{"familiar", []string{}},
		{"difficulty-1", []string{"鳥"}},
		{"difficulty-3", []string{"蟻"}},
		{"difficulty-4", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			f, err := ParseFilter(tt.filter)
			require.NoError(t, err)
			recs, err := s.Query(ctx, f, SortRecent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, words(recs))
		})
	}
}

func TestParseFilter(t *testing.T) {
	for _, bad := range []string{"difficulty-0", "difficulty-6", "difficulty-x", "mastered"} {
		_, err := ParseFilter(bad)
		assert.Error(t, err, bad)
	}
	for _, f := range Filters {
		parsed, err := ParseFilter(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	assert.Len(t, Filters, 9)
}

func TestParseSort(t *testing.T) {
	got, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortRecent, got)

	got, err = ParseSort("Alphabetical")
	require.NoError(t, err)
	assert.Equal(t, SortAlphabetical, got)

	_, err = ParseSort("random")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	recs := []Record{
		{Word: "猫", Vocab: vocab.Item{Word: "猫", Reading: "ねこ", English: "Cat", Chinese: "猫"}},
		{Word: "犬", Vocab: vocab.Item{Word: "犬", Reading: "いぬ", English: "dog", Chinese: "狗"}},
	}
	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"猫", "犬"}},
		{"cat", []string{"猫"}},
		{"いぬ", []string{"犬"}},
		{"狗", []string{"犬"}},
		{"  DOG ", []string{"犬"}},
		{"bird", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, words(Search(recs, tt.term)), "term %q", tt.term)
	}
}

type labels map[string]string

func (l labels) T(key string, _ map[string]any) string {
	if s, ok := l[key]; ok {
		return s
	}
	return key
}

func TestWriteCSV(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	recs := []Record{{
		Word:         "曖昧",
		Vocab:        vocab.Item{Word: "曖昧", Reading: "あいまい", Chinese: `含糊 "不清"`, English: "vague"},
		WrongCount:   2,
		Difficulty:   4,
		Mastery:      MasteryLearning,
		FirstWrongAt: at,
		LastWrongAt:  at.Add(time.Hour),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recs, labels{"csv_header_word": "単語", "wrong_word_mastery_learning": "学習中"}, vocab.LangZH))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\ufeff"), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "単語,reading,meaning,wrongCount,difficulty,masteryLabel,firstWrongAt,lastWrongAt", lines[0])
	assert.Equal(t, `"曖昧","あいまい","含糊 ""不清""",2,4,"学習中","2024-05-01 09:30:00","2024-05-01 10:30:00"`, lines[1])
}

func TestWriteCSV_NilLabeler(t *testing.T) {
	recs := []Record{{Word: "猫", Vocab: vocab.Item{Word: "猫", English: "cat"}, Mastery: MasteryNew, Difficulty: 3, WrongCount: 1}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recs, nil, vocab.LangEN))
	assert.Contains(t, buf.String(), `"猫","","cat",1,3,"new","",""`)
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "wrong_words_N2_2024-05-01.csv", ExportFilename(vocab.LevelN2, at))
	assert.Equal(t, "wrong_words_BIAORI_2024-05-01.csv", ExportFilename(vocab.LevelBiaori, at))
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ExportFilename(vocab.LevelN3, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	recs := []Record{{Word: "猫", Vocab: vocab.Item{Word: "猫", Reading: "ねこ", English: "cat"}, Mastery: MasteryNew, Difficulty: 3, WrongCount: 1}}

	require.NoError(t, ExportFile(path, recs, nil, vocab.LangEN))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"猫","ねこ","cat",1,3,"new"`)
	assert.Equal(t, "wrong_words_N3_2024-05-01.csv", filepath.Base(path))
}
