package questiongen

import "strings"

// ClozeMarker marks the blank in usage sentences.
const ClozeMarker = "___"

// sentenceEnds are the terminators a clause is split after.
const sentenceEnds = "。！？!?"

// SplitClauses splits a sentence after each terminator, keeping the
// terminator with its clause. Clauses are trimmed and empty ones dropped.
func SplitClauses(s string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if c := strings.TrimSpace(b.String()); c != "" {
			out = append(out, c)
		}
		b.Reset()
	}
	for _, r := range s {
		b.WriteRune(r)
		if strings.ContainsRune(sentenceEnds, r) {
			flush()
		}
	}
	flush()
	return out
}
