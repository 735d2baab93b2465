package wrongwords

import (
	"encoding/json"
	"fmt"
)

// Mastery is how well a missed word has been re-learned.
type Mastery string

const (
	MasteryNew      Mastery = "new"
	MasteryLearning Mastery = "learning"
	MasteryFamiliar Mastery = "familiar"
)

// AllMastery lists the tiers in promotion order.
var AllMastery = []Mastery{MasteryNew, MasteryLearning, MasteryFamiliar}

// ParseMastery validates a tier name.
func ParseMastery(s string) (Mastery, error) {
	for _, m := range AllMastery {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mastery level %q", s)
}

// promoted returns the next tier. graduated is true when the word leaves
// the notebook.
func (m Mastery) promoted() (next Mastery, graduated bool) {
	switch m {
	case MasteryNew:
		return MasteryLearning, false
	case MasteryLearning:
		return MasteryFamiliar, false
	}
	return m, true
}

// missed returns the tier after a renewed miss. Only familiar words are
// reopened; new and learning keep their tier.
func (m Mastery) missed() Mastery {
	if m == MasteryFamiliar {
		return MasteryLearning
	}
	return m
}

// cycled returns the tier after a manual edit: new, learning, familiar, new.
func (m Mastery) cycled() Mastery {
	switch m {
	case MasteryNew:
		return MasteryLearning
	case MasteryLearning:
		return MasteryFamiliar
	}
	return MasteryNew
}

// UnmarshalJSON rejects unknown tiers.
func (m *Mastery) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMastery(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Transition records a mastery change for logging.
type Transition struct {
	Word    string
	From    Mastery
	To      Mastery
	Trigger string // "miss", "promote", "graduate", "edit"
}
