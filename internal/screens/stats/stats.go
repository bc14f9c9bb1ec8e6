package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yuchen/rootdrill/internal/app"
	"github.com/yuchen/rootdrill/internal/progress"
	"github.com/yuchen/rootdrill/internal/screen"
	"github.com/yuchen/rootdrill/internal/store"
	"github.com/yuchen/rootdrill/internal/ui/components"
	"github.com/yuchen/rootdrill/internal/ui/layout"
	"github.com/yuchen/rootdrill/internal/ui/theme"
)

// StatsScreen shows learning totals, quiz accuracy, recent sessions,
// and the daily goal editor.
type StatsScreen struct {
	state *app.State

	sessions []store.SessionSummary

	editingGoal bool
	goalInput   components.TextInput
	note        string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

type sessionsLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

// New creates the stats screen.
func New(state *app.State) *StatsScreen {
	return &StatsScreen{
		state:     state,
		goalInput: components.NewTextInput("daily goal", true, 3),
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.state.Store.RecentSessions(context.Background(), 10)
		return sessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *StatsScreen) Title() string { return "Stats" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.editingGoal {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save goal"},
		}
	}
	return []layout.KeyHint{
		{Key: "g", Description: "Edit goal"},
		{Key: "f", Description: "Filter"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if loaded, ok := msg.(sessionsLoadedMsg); ok {
		if loaded.Err == nil {
			s.sessions = loaded.Sessions
		}
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.editingGoal {
		if kmsg.String() == "enter" {
			s.commitGoal()
			return s, nil
		}
		var cmd tea.Cmd
		s.goalInput, cmd = s.goalInput.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "g":
		s.editingGoal = true
		s.goalInput.SetValue(strconv.Itoa(s.state.Settings.DailyGoal))
		return s, s.goalInput.Init()
	case "f":
		if err := s.state.ToggleTrainingFilter(context.Background()); err != nil {
			s.note = "could not save settings: " + err.Error()
		} else {
			s.note = "training filter: " + s.state.Settings.TrainingFilter
		}
	}
	return s, nil
}

// commitGoal parses and clamps the entered goal, then persists it.
func (s *StatsScreen) commitGoal() {
	s.editingGoal = false
	n, err := strconv.Atoi(strings.TrimSpace(s.goalInput.Value()))
	if err != nil {
		s.note = "daily goal unchanged"
		return
	}
	s.state.Settings.DailyGoal = store.ClampDailyGoal(n)
	if err := s.state.SaveSettings(context.Background()); err != nil {
		s.note = "could not save settings: " + err.Error()
		return
	}
	s.note = fmt.Sprintf("daily goal set to %d", s.state.Settings.DailyGoal)
}

func (s *StatsScreen) View(width, height int) string {
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	headStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	counts := s.state.Progress.StatusCounts()
	totals := s.state.Progress.FlashTotals()
	quizTotal, quizCorrect := s.state.Quiz.Totals()

	tracked := counts[progress.StatusNew] + counts[progress.StatusLearning] + counts[progress.StatusMastered]
	untouched := len(s.state.Dataset.Entries) - tracked
	if untouched < 0 {
		untouched = 0
	}

	var b strings.Builder
	b.WriteString("\n")

	ds := s.state.Dataset
	b.WriteString(headStyle.Render("  Dataset"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Entries:    ") + valStyle.Render(strconv.Itoa(len(ds.Entries))) + "\n")
	b.WriteString(dimStyle.Render("  Quizzable:  ") +
		valStyle.Render(fmt.Sprintf("%d with meanings · %d with examples",
			len(ds.WithMeaning()), len(ds.WithExamples()))) + "\n")
	b.WriteString("\n")

	b.WriteString(headStyle.Render("  Progress"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Mastered:   ") + valStyle.Render(strconv.Itoa(counts[progress.StatusMastered])) + "\n")
	b.WriteString(dimStyle.Render("  Learning:   ") + valStyle.Render(strconv.Itoa(counts[progress.StatusLearning])) + "\n")
	b.WriteString(dimStyle.Render("  New:        ") + valStyle.Render(strconv.Itoa(counts[progress.StatusNew]+untouched)) + "\n")
	b.WriteString("\n")

	masteredPct := 0.0
	if len(s.state.Dataset.Entries) > 0 {
		masteredPct = float64(counts[progress.StatusMastered]) / float64(len(s.state.Dataset.Entries))
	}
	bar := components.NewProgressBar("  Mastery", masteredPct, true, width-12)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(headStyle.Render("  Flashcards"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Shown:      ") + valStyle.Render(strconv.Itoa(totals.Shown)) + "\n")
	b.WriteString(dimStyle.Render("  Remembered: ") + valStyle.Render(strconv.Itoa(totals.Remembered)) + "\n")
	b.WriteString(dimStyle.Render("  Again:      ") + valStyle.Render(strconv.Itoa(totals.Again)) + "\n")
	b.WriteString("\n")

	b.WriteString(headStyle.Render("  Quiz"))
	b.WriteString("\n")
	accuracy := "n/a"
	if quizTotal > 0 {
		accuracy = fmt.Sprintf("%.0f%%", 100*float64(quizCorrect)/float64(quizTotal))
	}
	b.WriteString(dimStyle.Render("  Answered:   ") + valStyle.Render(strconv.Itoa(quizTotal)) + "\n")
	b.WriteString(dimStyle.Render("  Accuracy:   ") + valStyle.Render(accuracy) + "\n")

	if hardest := s.state.Quiz.Hardest(3); len(hardest) > 0 {
		b.WriteString(dimStyle.Render("  Hardest:    "))
		parts := make([]string, 0, len(hardest))
		for _, h := range hardest {
			label := h.EntryID
			if e := s.state.Dataset.ByID(h.EntryID); e != nil {
				label = e.Root
			}
			parts = append(parts, fmt.Sprintf("%s %d/%d", label, h.Correct, h.Total))
		}
		b.WriteString(valStyle.Render(strings.Join(parts, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.sessions) > 0 {
		b.WriteString(headStyle.Render("  Recent sessions"))
		b.WriteString("\n")
		for _, sess := range s.sessions {
			line := fmt.Sprintf("  %s  %-9s  %d/%d correct",
				sess.StartedAt.Local().Format("Jan 02 15:04"), sess.Kind, sess.Correct, sess.Total)
			b.WriteString(dimStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(headStyle.Render("  Settings"))
	b.WriteString("\n")
	if s.editingGoal {
		b.WriteString(dimStyle.Render("  Daily goal: ") + s.goalInput.View() + "\n")
	} else {
		b.WriteString(dimStyle.Render("  Daily goal: ") + valStyle.Render(strconv.Itoa(s.state.Settings.DailyGoal)) + "\n")
	}
	b.WriteString(dimStyle.Render("  Filter:     ") + valStyle.Render(s.state.Settings.TrainingFilter) + "\n")

	if s.note != "" {
		b.WriteString("\n  " + theme.Hint.Render(s.note))
	}

	return b.String()
}
