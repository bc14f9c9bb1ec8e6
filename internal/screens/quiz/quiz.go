package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/yuchen/rootdrill/internal/app"
	quizgen "github.com/yuchen/rootdrill/internal/quiz"
	"github.com/yuchen/rootdrill/internal/screen"
	"github.com/yuchen/rootdrill/internal/store"
	"github.com/yuchen/rootdrill/internal/ui/components"
	"github.com/yuchen/rootdrill/internal/ui/layout"
	"github.com/yuchen/rootdrill/internal/ui/theme"
)

// QuizScreen runs the multiple-choice quiz loop.
type QuizScreen struct {
	state     *app.State
	sessionID string

	question *quizgen.Question
	choice   components.MultiChoice
	answered int
	correct  int
	note     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen and generates the first question.
func New(state *app.State) *QuizScreen {
	s := &QuizScreen{
		state:     state,
		sessionID: uuid.New().String(),
	}
	s.next()
	return s
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string { return "Quiz" }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.question == nil {
		return nil
	}
	if s.question.Resolved() {
		return []layout.KeyHint{
			{Key: "n", Description: "Next"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answer"},
		{Key: "n", Description: "Skip"},
	}
}

// next discards the current question, answered or not, and generates
// a fresh one.
func (s *QuizScreen) next() {
	s.question = s.state.Generator.Generate(s.state.Dataset.Entries)
	if s.question == nil {
		return
	}

	prompt := "What does this root mean?"
	if s.question.Kind == quizgen.KindWordRoot {
		prompt = "Which root builds this word?"
	}
	prompt += "\n\n  " + s.question.Prompt

	options := make([]string, len(s.question.Options))
	correctIndex := 0
	for i, opt := range s.question.Options {
		options[i] = opt.Label
		if opt.EntryID == s.question.TargetID {
			correctIndex = i
		}
	}
	s.choice = components.NewMultiChoice(prompt, options, correctIndex)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.question == nil {
		return s, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "n" {
		s.next()
		return s, nil
	}

	wasSubmitted := s.choice.Submitted
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)

	// First submission resolves the question exactly once; clicks after
	// resolution are no-ops inside the component.
	if !wasSubmitted && s.choice.Submitted {
		if correct, ok := s.question.Resolve(s.choice.ChosenIndex); ok {
			s.answered++
			if correct {
				s.correct++
			}
			ctx := context.Background()
			if err := s.state.Quiz.Record(ctx, s.question.TargetID, correct); err != nil {
				s.note = "could not save quiz stats: " + err.Error()
			}
			_ = s.state.Store.AppendReviewEvent(ctx, store.ReviewEventData{
				SessionID: s.sessionID,
				EntryID:   s.question.TargetID,
				Kind:      store.EventQuiz,
				Correct:   correct,
			})
		}
	}

	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder

	if s.question == nil {
		b.WriteString("\n  " + theme.Hint.Render(
			"The dataset has no entries with meanings or examples, so no questions can be built."))
		return b.String()
	}

	b.WriteString("  " + theme.Hint.Render(
		fmt.Sprintf("session: %d answered · %d correct", s.answered, s.correct)))
	b.WriteString("\n\n")

	choiceView := s.choice.View()
	for _, line := range strings.Split(choiceView, "\n") {
		b.WriteString("  " + line + "\n")
	}

	if s.question.Resolved() {
		if s.choice.IsCorrect() {
			b.WriteString("\n  " + theme.Correct.Render("Correct!"))
		} else {
			b.WriteString("\n  " + theme.Incorrect.Render("Not quite."))
		}
		b.WriteString("  " + theme.Hint.Render("Press n for the next question."))
	}

	if s.note != "" {
		b.WriteString("\n\n  " + theme.Hint.Render(s.note))
	}

	return b.String()
}
