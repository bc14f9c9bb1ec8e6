package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/progress"
	"github.com/yuchen/rootdrill/internal/quiz"
	"github.com/yuchen/rootdrill/internal/review"
	"github.com/yuchen/rootdrill/internal/store"
)

// State is the application-wide session state shared by all screens.
// Everything mutable is persisted write-through by the owning service;
// the one exception is Settings, saved via SaveSettings after edits.
type State struct {
	Dataset  *dataset.Dataset
	Store    *store.Store
	Progress *progress.Service
	Quiz     *quiz.Service
	Settings *store.SettingsDocument

	Picker    *review.Picker
	Generator *quiz.Generator
}

// NewState loads the three persisted documents and wires the selection
// and generation engines.
func NewState(ctx context.Context, ds *dataset.Dataset, st *store.Store) *State {
	prog := progress.NewService(ctx, st)
	src := rand.NewSource(time.Now().UnixNano())
	return &State{
		Dataset:   ds,
		Store:     st,
		Progress:  prog,
		Quiz:      quiz.NewService(ctx, st),
		Settings:  st.LoadSettings(ctx),
		Picker:    review.NewPicker(prog, src),
		Generator: quiz.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SaveSettings persists the settings document.
func (s *State) SaveSettings(ctx context.Context) error {
	s.Settings.Normalize()
	return s.Store.SaveSettings(ctx, s.Settings)
}

// ToggleTrainingFilter flips the flashcard pool filter and persists.
func (s *State) ToggleTrainingFilter(ctx context.Context) error {
	if s.Settings.TrainingFilter == store.FilterAll {
		s.Settings.TrainingFilter = store.FilterUnmastered
	} else {
		s.Settings.TrainingFilter = store.FilterAll
	}
	return s.SaveSettings(ctx)
}

// AllowMastered reports whether mastered entries stay in the
// flashcard pool under the current training filter.
func (s *State) AllowMastered() bool {
	return s.Settings.TrainingFilter == store.FilterAll
}

// MasteredCount returns how many entries are currently mastered.
func (s *State) MasteredCount() int {
	return s.Progress.StatusCounts()[progress.StatusMastered]
}

// ReviewedToday returns today's flashcard outcome count. Event log
// trouble degrades to zero rather than failing the view.
func (s *State) ReviewedToday(ctx context.Context) int {
	n, err := s.Store.TodayFlashcardCount(ctx)
	if err != nil {
		return 0
	}
	return n
}

// ResetAll restores progress, quiz statistics, and the event log to
// their defaults.
func (s *State) ResetAll(ctx context.Context) error {
	if err := s.Progress.Reset(ctx); err != nil {
		return err
	}
	return s.Quiz.Reset(ctx)
}
