package detail

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yuchen/rootdrill/internal/app"
	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/progress"
	"github.com/yuchen/rootdrill/internal/screen"
	"github.com/yuchen/rootdrill/internal/store"
	"github.com/yuchen/rootdrill/internal/ui/layout"
	"github.com/yuchen/rootdrill/internal/ui/theme"
)

// DetailScreen shows a single entry with its examples and learning
// state, and offers the manual status override.
type DetailScreen struct {
	state  *app.State
	entry  *dataset.Entry
	events []store.ReviewEventRecord
	note   string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

type eventsLoadedMsg struct {
	Events []store.ReviewEventRecord
	Err    error
}

// New creates a detail screen for one entry.
func New(state *app.State, entry *dataset.Entry) *DetailScreen {
	return &DetailScreen{state: state, entry: entry}
}

func (s *DetailScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.state.Store.EntryEvents(context.Background(), s.entry.ID, 5)
		return eventsLoadedMsg{Events: events, Err: err}
	}
}

func (s *DetailScreen) Title() string { return s.entry.Root }

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "n/l/m", Description: "Set status"},
	}
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if loaded, ok := msg.(eventsLoadedMsg); ok {
		if loaded.Err == nil {
			s.events = loaded.Events
		}
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	var status progress.Status
	switch kmsg.String() {
	case "n":
		status = progress.StatusNew
	case "l":
		status = progress.StatusLearning
	case "m":
		status = progress.StatusMastered
	default:
		return s, nil
	}

	if _, err := s.state.Progress.SetStatus(context.Background(), s.entry.ID, status); err != nil {
		s.note = "could not save status: " + err.Error()
	} else {
		s.note = "status set to " + string(status)
	}
	return s, nil
}

func (s *DetailScreen) View(width, height int) string {
	e := s.entry
	p := s.state.Progress.Get(e.ID)
	qs := s.state.Quiz.EntryStats(e.ID)

	contentWidth := width - 8
	if contentWidth > 72 {
		contentWidth = 72
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  (%s)", e.Root, e.Type)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.StatusColor(string(p.Status))).
		Render(fmt.Sprintf("  ● %s", p.Status)))
	b.WriteString("\n\n")

	if e.MeaningZh != "" {
		b.WriteString(valStyle.Width(contentWidth).PaddingLeft(2).Render(e.MeaningZh))
		b.WriteString("\n\n")
	}

	if e.Section != "" {
		b.WriteString(dimStyle.Render("  Section:     ") + valStyle.Render(e.Section) + "\n")
	}
	if len(e.Aliases) > 0 {
		b.WriteString(dimStyle.Render("  Aliases:     ") + valStyle.Render(strings.Join(e.Aliases, ", ")) + "\n")
	}
	if len(e.Tags) > 0 {
		b.WriteString(dimStyle.Render("  Tags:        ") + valStyle.Render(strings.Join(e.Tags, ", ")) + "\n")
	}
	b.WriteString(dimStyle.Render("  Confidence:  ") + valStyle.Render(fmt.Sprintf("%.2f", e.Confidence)) + "\n")
	b.WriteString(dimStyle.Render("  Flashcards:  ") +
		valStyle.Render(fmt.Sprintf("shown %d · remembered %d · again %d",
			p.Flash.Shown, p.Flash.Remembered, p.Flash.Again)) + "\n")
	if qs.Total > 0 {
		b.WriteString(dimStyle.Render("  Quiz:        ") +
			valStyle.Render(fmt.Sprintf("%d/%d correct", qs.Correct, qs.Total)) + "\n")
	}
	if len(s.events) > 0 {
		marks := make([]string, 0, len(s.events))
		for _, ev := range s.events {
			mark := theme.Incorrect.Render("✗")
			if ev.Correct {
				mark = theme.Correct.Render("✓")
			}
			marks = append(marks, mark+" "+dimStyle.Render(ev.CreatedAt.Local().Format("Jan 02")))
		}
		b.WriteString(dimStyle.Render("  Recent:      ") + strings.Join(marks, "  ") + "\n")
	}
	b.WriteString("\n")

	if len(e.Examples) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Examples"))
		b.WriteString("\n")
		shown := e.Examples
		if max := height - 14; max > 0 && len(shown) > max {
			shown = shown[:max]
		}
		for _, ex := range shown {
			line := "  " + ex.Word
			if ex.Decomposition != "" {
				line += "  " + dimStyle.Render(ex.Decomposition)
			}
			b.WriteString(valStyle.Render(line))
			b.WriteString("\n")
			if ex.ExplanationZh != "" {
				b.WriteString(dimStyle.Render("      " + ex.ExplanationZh))
				b.WriteString("\n")
			}
		}
	}

	if s.note != "" {
		b.WriteString("\n  " + theme.Hint.Render(s.note))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
