package wrongwords

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/tango/internal/vocab"
)

// Labeler translates UI keys. *i18n.Catalog satisfies it.
type Labeler interface {
	T(key string, subs map[string]any) string
}

// TimeLayout is the timestamp format used in exports.
const TimeLayout = "2006-01-02 15:04:05"

const bom = "\ufeff"

// csvColumns pairs each header key with its fallback text.
var csvColumns = [][2]string{
	{"csv_header_word", "word"},
	{"csv_header_kana", "reading"},
	{"csv_header_meaning", "meaning"},
	{"csv_header_wrong_count", "wrongCount"},
	{"csv_header_difficulty", "difficulty"},
	{"csv_header_mastery", "masteryLabel"},
	{"csv_header_first_wrong_time", "firstWrongAt"},
	{"csv_header_last_wrong_time", "lastWrongAt"},
}

// MasteryLabel returns the display label of m.
func MasteryLabel(l Labeler, m Mastery) string {
	return label(l, "wrong_word_mastery_"+string(m), string(m))
}

func label(l Labeler, key, fallback string) string {
	if l == nil {
		return fallback
	}
	if s := l.T(key, nil); s != "" && s != key {
		return s
	}
	return fallback
}

// WriteCSV writes records as a spreadsheet-friendly CSV: a UTF-8 byte
// order mark, a translated header row, then one row per record. Text
// columns are always quoted.
func WriteCSV(w io.Writer, records []Record, l Labeler, lang vocab.Language) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(bom)

	headers := make([]string, len(csvColumns))
	for i, c := range csvColumns {
		headers[i] = label(l, c[0], c[1])
	}
	bw.WriteString(strings.Join(headers, ","))
	bw.WriteByte('\n')

	for _, r := range records {
		row := []string{
			quote(r.Word),
			quote(r.Vocab.Reading),
			quote(r.Vocab.DisplayMeaning(lang)),
			strconv.Itoa(r.WrongCount),
			strconv.Itoa(r.Difficulty),
			quote(MasteryLabel(l, r.Mastery)),
			quote(formatTime(r.FirstWrongAt)),
			quote(formatTime(r.LastWrongAt)),
		}
		bw.WriteString(strings.Join(row, ","))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// ExportFilename returns the default export name, e.g.
// wrong_words_N2_2024-05-01.csv.
func ExportFilename(level vocab.Level, now time.Time) string {
	return fmt.Sprintf("wrong_words_%s_%s.csv", level.Upper(), now.Format("2006-01-02"))
}

// ExportFile writes records to path, creating its directory. A file that
// could not be written completely is removed.
func ExportFile(path string, records []Record, l Labeler, lang vocab.Language) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
		if err != nil {
			os.Remove(path)
		}
	}()
	return WriteCSV(f, records, l, lang)
}
