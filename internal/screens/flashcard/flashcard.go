package flashcard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/yuchen/rootdrill/internal/app"
	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/router"
	"github.com/yuchen/rootdrill/internal/screen"
	quizscreen "github.com/yuchen/rootdrill/internal/screens/quiz"
	"github.com/yuchen/rootdrill/internal/store"
	"github.com/yuchen/rootdrill/internal/ui/components"
	"github.com/yuchen/rootdrill/internal/ui/layout"
	"github.com/yuchen/rootdrill/internal/ui/theme"
)

// FlashcardScreen runs the single-entry review loop: prompt, optional
// reveal, then a remembered/again outcome.
type FlashcardScreen struct {
	state     *app.State
	sessionID string

	current  *dataset.Entry
	revealed bool
	note     string
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)

// New creates a flashcard screen and draws the first card.
func New(state *app.State) *FlashcardScreen {
	s := &FlashcardScreen{
		state:     state,
		sessionID: uuid.New().String(),
	}
	s.advance()
	return s
}

func (s *FlashcardScreen) Init() tea.Cmd { return nil }

func (s *FlashcardScreen) Title() string { return "Flashcards" }

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	if s.current == nil {
		return []layout.KeyHint{
			{Key: "f", Description: "Filter"},
			{Key: "q", Description: "Quiz"},
		}
	}
	if !s.revealed {
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "f", Description: "Filter"},
			{Key: "q", Description: "Quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "r", Description: "Remembered"},
		{Key: "a", Description: "Again"},
		{Key: "f", Description: "Filter"},
		{Key: "q", Description: "Quiz"},
	}
}

// advance draws the next card from the weighted picker.
func (s *FlashcardScreen) advance() {
	s.current = s.state.Picker.PickNext(s.state.Dataset.Entries, s.state.AllowMastered())
	s.revealed = false
}

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "q":
		// Hop straight to the quiz without stacking another screen.
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: quizscreen.New(s.state)}
		}
	case "f":
		if err := s.state.ToggleTrainingFilter(context.Background()); err != nil {
			s.note = "could not save settings: " + err.Error()
		} else {
			s.note = "filter: " + s.state.Settings.TrainingFilter
		}
		s.advance()
		return s, nil
	case " ", "space":
		if s.current != nil {
			s.revealed = true
		}
		return s, nil
	case "r":
		return s, s.record(true)
	case "a":
		return s, s.record(false)
	}

	return s, nil
}

// record applies the review outcome, logs the event, and advances.
// Outcomes before reveal are ignored so a card cannot be graded blind.
func (s *FlashcardScreen) record(remembered bool) tea.Cmd {
	if s.current == nil || !s.revealed {
		return nil
	}
	ctx := context.Background()
	entryID := s.current.ID

	var err error
	if remembered {
		_, err = s.state.Progress.Remembered(ctx, entryID)
	} else {
		_, err = s.state.Progress.Again(ctx, entryID)
	}
	if err != nil {
		s.note = "could not save progress: " + err.Error()
		return nil
	}

	_ = s.state.Store.AppendReviewEvent(ctx, store.ReviewEventData{
		SessionID: s.sessionID,
		EntryID:   entryID,
		Kind:      store.EventFlashcard,
		Correct:   remembered,
	})

	s.note = ""
	s.advance()
	return nil
}

func (s *FlashcardScreen) View(width, height int) string {
	var b strings.Builder

	reviewed := s.state.ReviewedToday(context.Background())
	goal := s.state.Settings.DailyGoal
	percent := float64(reviewed) / float64(goal)
	if percent > 1 {
		percent = 1
	}
	bar := components.NewProgressBar("  Today", percent, true, width-10)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if s.current == nil {
		b.WriteString("  " + theme.Hint.Render(
			"No entries to review with the current filter. Press f to include mastered entries."))
		return b.String()
	}

	e := s.current
	p := s.state.Progress.Get(e.ID)

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s", e.Root)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   %s · %s", e.Type, p.Status)))
	b.WriteString("\n\n")

	if !s.revealed {
		b.WriteString("  " + theme.Hint.Render("Press Space to reveal the meaning."))
	} else {
		if e.MeaningZh != "" {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Text).
				Width(width - 8).
				PaddingLeft(2).
				Render(e.MeaningZh))
			b.WriteString("\n\n")
		}
		shown := e.Examples
		if len(shown) > 4 {
			shown = shown[:4]
		}
		for _, ex := range shown {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + ex.Word))
			if ex.ExplanationZh != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + ex.ExplanationZh))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n  " + theme.Hint.Render("r = remembered · a = again"))
	}

	if s.note != "" {
		b.WriteString("\n\n  " + theme.Hint.Render(s.note))
	}

	return b.String()
}
