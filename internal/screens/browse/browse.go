package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yuchen/rootdrill/internal/app"
	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/router"
	"github.com/yuchen/rootdrill/internal/screen"
	"github.com/yuchen/rootdrill/internal/screens/detail"
	"github.com/yuchen/rootdrill/internal/screens/flashcard"
	quizscreen "github.com/yuchen/rootdrill/internal/screens/quiz"
	"github.com/yuchen/rootdrill/internal/screens/stats"
	"github.com/yuchen/rootdrill/internal/ui/components"
	"github.com/yuchen/rootdrill/internal/ui/layout"
	"github.com/yuchen/rootdrill/internal/ui/theme"
)

// typeFilters cycles through the entry-type filter states.
var typeFilters = []string{"", string(dataset.TypePrefix), string(dataset.TypeRoot), string(dataset.TypeSuffix)}

// BrowseScreen is the root screen: the filterable entry list.
type BrowseScreen struct {
	state *app.State

	search     components.TextInput
	searching  bool
	typeFilter int

	filtered []*dataset.Entry
	cursor   int
	offset   int
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// New creates the browse screen over the full dataset.
func New(state *app.State) *BrowseScreen {
	s := &BrowseScreen{
		state:  state,
		search: components.NewTextInput("search root or meaning", false, 40),
	}
	s.refilter()
	return s
}

func (s *BrowseScreen) Init() tea.Cmd { return nil }

func (s *BrowseScreen) Title() string { return "Browse" }

func (s *BrowseScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Detail"},
		{Key: "/", Description: "Search"},
		{Key: "t", Description: "Type"},
		{Key: "f", Description: "Flashcards"},
		{Key: "q", Description: "Quiz"},
		{Key: "s", Description: "Stats"},
	}
}

func (s *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.searching {
		switch kmsg.String() {
		case "enter", "esc":
			s.searching = false
			s.refilter()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.refilter()
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.filtered)-1 {
			s.cursor++
		}
	case "/":
		s.searching = true
		return s, s.search.Init()
	case "t":
		s.typeFilter = (s.typeFilter + 1) % len(typeFilters)
		s.refilter()
	case "enter":
		if s.cursor < len(s.filtered) {
			entry := s.filtered[s.cursor]
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: detail.New(s.state, entry)}
			}
		}
	case "f":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: flashcard.New(s.state)}
		}
	case "q":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: quizscreen.New(s.state)}
		}
	case "s":
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: stats.New(s.state)}
		}
	}

	return s, nil
}

// refilter recomputes the visible entry list from the search text and
// type filter, clamping the cursor.
func (s *BrowseScreen) refilter() {
	query := strings.ToLower(strings.TrimSpace(s.search.Value()))

	pool := s.state.Dataset.Entries
	if wantType := typeFilters[s.typeFilter]; wantType != "" {
		pool = s.state.Dataset.ByType(dataset.EntryType(wantType))
	}

	s.filtered = s.filtered[:0]
	for _, e := range pool {
		if query != "" && !matches(e, query) {
			continue
		}
		s.filtered = append(s.filtered, e)
	}
	if s.cursor >= len(s.filtered) {
		s.cursor = 0
		s.offset = 0
	}
}

func matches(e *dataset.Entry, query string) bool {
	if strings.Contains(strings.ToLower(e.Root), query) {
		return true
	}
	if strings.Contains(strings.ToLower(e.MeaningZh), query) {
		return true
	}
	for _, a := range e.Aliases {
		if strings.Contains(strings.ToLower(a), query) {
			return true
		}
	}
	return false
}

func (s *BrowseScreen) View(width, height int) string {
	var b strings.Builder

	filterLabel := "all types"
	if typeFilters[s.typeFilter] != "" {
		filterLabel = typeFilters[s.typeFilter] + " only"
	}
	b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("%d entries · %s", len(s.filtered), filterLabel)))
	b.WriteString("\n")

	if s.searching || s.search.Value() != "" {
		b.WriteString("  " + s.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}

	end := s.offset + visible
	if end > len(s.filtered) {
		end = len(s.filtered)
	}

	for i := s.offset; i < end; i++ {
		e := s.filtered[i]
		p := s.state.Progress.Get(e.ID)

		dot := lipgloss.NewStyle().
			Foreground(theme.StatusColor(string(p.Status))).
			Render("●")

		line := fmt.Sprintf("%s %-7s %-16s %s", dot, e.Type, e.Root, truncate(e.MeaningZh, width-34))
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		b.WriteString("\n")
	}

	if len(s.filtered) == 0 {
		b.WriteString("  " + theme.Hint.Render("No entries match the current filter."))
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
