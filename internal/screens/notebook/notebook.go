package notebook

import (
	"path/filepath"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/questiongen"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/wrongwords"
)

type state int

const (
	stateList state = iota
	stateSearch
	stateConfirmDelete
	stateConfirmClear
)

type loadedMsg struct {
	records []wrongwords.Record
	err     error
}

// NotebookScreen lists the wrong-word notebook of the current level.
type NotebookScreen struct {
	env *screen.Env

	filter  int // index into wrongwords.Filters
	sort    int // index into wrongwords.AllSorts
	records []wrongwords.Record
	visible []wrongwords.Record
	cursor  int
	loaded  bool

	search components.TextInput
	state  state
	status string
	errMsg string
}

var _ screen.Screen = (*NotebookScreen)(nil)
var _ screen.KeyHintProvider = (*NotebookScreen)(nil)
var _ screen.BackHandler = (*NotebookScreen)(nil)
var _ screen.Focuser = (*NotebookScreen)(nil)

// New creates a NotebookScreen. Records are loaded by Init.
func New(env *screen.Env) *NotebookScreen {
	return &NotebookScreen{
		env:    env,
		search: components.NewTextInput(env.Tr("wrong_words_search_placeholder", nil), 40),
	}
}

func (s *NotebookScreen) Init() tea.Cmd {
	return s.load()
}

// Focus reloads after a practice quiz.
func (s *NotebookScreen) Focus() tea.Cmd {
	return s.load()
}

func (s *NotebookScreen) Title() string {
	return s.env.Tr("wrong_words_title", nil)
}

// HandlesBack keeps Esc for closing the search box, clearing the search
// term and dismissing confirmations.
func (s *NotebookScreen) HandlesBack() bool {
	return s.state != stateList || s.search.Value() != ""
}

func (s *NotebookScreen) KeyHints() []layout.KeyHint {
	switch s.state {
	case stateSearch:
		return []layout.KeyHint{{Key: "Enter", Description: "Apply"}, {Key: "Esc", Description: "Clear"}}
	case stateConfirmDelete, stateConfirmClear:
		return []layout.KeyHint{{Key: "Y", Description: "Delete"}, {Key: "N", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "f/s", Description: "Filter/Sort"},
		{Key: "/", Description: "Search"},
		{Key: "m/d", Description: "Mastery/Difficulty"},
		{Key: "x/X", Description: "Delete/Clear"},
		{Key: "p", Description: "Practise"},
		{Key: "e", Description: "Export"},
		{Key: "Esc", Description: "Back"},
	}
}

// Filter returns the active filter.
func (s *NotebookScreen) Filter() wrongwords.Filter {
	return wrongwords.Filters[s.filter]
}

// Sort returns the active sort.
func (s *NotebookScreen) Sort() wrongwords.Sort {
	return wrongwords.AllSorts[s.sort]
}

// Visible returns the listed records after filter, sort and search.
func (s *NotebookScreen) Visible() []wrongwords.Record {
	return s.visible
}

func (s *NotebookScreen) load() tea.Cmd {
	nb, ctx, f, by := s.env.Notebook, s.env.Ctx, s.Filter(), s.Sort()
	return func() tea.Msg {
		if nb == nil {
			return loadedMsg{}
		}
		recs, err := nb.Query(ctx, f, by)
		return loadedMsg{records: recs, err: err}
	}
}

func (s *NotebookScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.env.Log.WithError(msg.err).Warn("load notebook")
		}
		s.setRecords(msg.records)
		return s, nil

	case tea.KeyMsg:
		switch s.state {
		case stateSearch:
			return s.handleSearchKey(msg)
		case stateConfirmDelete, stateConfirmClear:
			return s.handleConfirmKey(msg)
		}
		return s.handleListKey(msg)
	}

	if s.state == stateSearch {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

// setRecords replaces the query result, keeping the cursor on the same
// word when it is still listed.
func (s *NotebookScreen) setRecords(recs []wrongwords.Record) {
	current := ""
	if r, ok := s.selected(); ok {
		current = r.Word
	}
	s.records = recs
	s.refilter()
	for i, r := range s.visible {
		if r.Word == current {
			s.cursor = i
			return
		}
	}
}

func (s *NotebookScreen) refilter() {
	s.visible = wrongwords.Search(s.records, s.search.Value())
	s.cursor = max(0, min(s.cursor, len(s.visible)-1))
}

func (s *NotebookScreen) selected() (wrongwords.Record, bool) {
	if s.cursor < 0 || s.cursor >= len(s.visible) {
		return wrongwords.Record{}, false
	}
	return s.visible[s.cursor], true
}

func (s *NotebookScreen) handleListKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.status = ""
	ctx, nb := s.env.Ctx, s.env.Notebook

	switch msg.String() {
	case "esc":
		s.search.SetValue("")
		s.refilter()
		return s, nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible)-1 {
			s.cursor++
		}
	case "f":
		s.filter = (s.filter + 1) % len(wrongwords.Filters)
		s.cursor = 0
		return s, s.load()
	case "s":
		s.sort = (s.sort + 1) % len(wrongwords.AllSorts)
		s.cursor = 0
		return s, s.load()
	case "/":
		s.state = stateSearch
		return s, s.search.Focus()
	case "m":
		if r, ok := s.selected(); ok && nb != nil {
			_, err := nb.CycleMastery(ctx, r.Word)
			return s, s.edited(err)
		}
	case "d":
		if r, ok := s.selected(); ok && nb != nil {
			_, err := nb.CycleDifficulty(ctx, r.Word)
			return s, s.edited(err)
		}
	case "x":
		if _, ok := s.selected(); ok {
			s.state = stateConfirmDelete
		}
	case "X":
		if len(s.visible) > 0 {
			s.state = stateConfirmClear
		}
	case "p":
		return s, s.practise()
	case "e":
		s.export()
	}
	return s, nil
}

func (s *NotebookScreen) handleSearchKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.search.SetValue("")
		fallthrough
	case "enter":
		s.search.Blur()
		s.state = stateList
		s.refilter()
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.refilter()
	return s, cmd
}

func (s *NotebookScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	ctx, nb := s.env.Ctx, s.env.Notebook
	confirmed := s.state
	switch msg.String() {
	case "y", "Y":
		s.state = stateList
		if nb == nil {
			return s, nil
		}
		if confirmed == stateConfirmDelete {
			r, _ := s.selected()
			return s, s.edited(nb.DeleteOne(ctx, r.Word))
		}
		words := make([]string, len(s.visible))
		for i, r := range s.visible {
			words[i] = r.Word
		}
		return s, s.edited(nb.DeleteMany(ctx, words))
	case "n", "N", "esc":
		s.state = stateList
	}
	return s, nil
}

// edited reloads the list and the header count after a notebook change.
func (s *NotebookScreen) edited(err error) tea.Cmd {
	if err != nil {
		s.errMsg = err.Error()
		s.env.Log.WithError(err).Warn("edit notebook")
	}
	return tea.Batch(s.load(), func() tea.Msg { return screen.NotebookChangedMsg{} })
}

// practise quizzes the listed words in review mode.
func (s *NotebookScreen) practise() tea.Cmd {
	if len(s.visible) == 0 {
		return nil
	}
	req := screen.QuizRequest{
		Mode:   questiongen.ModeMixed,
		Items:  wrongwords.Vocabulary(s.visible),
		Review: true,
	}
	return func() tea.Msg { return screen.StartQuizMsg{Request: req} }
}

// export writes the listed words to the export directory.
func (s *NotebookScreen) export() {
	if len(s.visible) == 0 {
		s.status = s.env.Tr("no_exportable_wrong_words", nil)
		return
	}
	path := filepath.Join(s.env.ExportDir, wrongwords.ExportFilename(s.env.Level, s.env.Now()))
	if err := wrongwords.ExportFile(path, s.visible, s.env.T, s.env.Lang); err != nil {
		s.errMsg = err.Error()
		s.env.Log.WithError(err).Warn("export notebook")
		return
	}
	s.env.Log.WithField("path", path).WithField("words", len(s.visible)).Info("notebook exported")
	s.status = s.env.Tr("wrong_word_exported", map[string]any{"path": path})
}
