package detail

import (
	"context"
	"strings"
	"testing"

	"github.com/yuchen/rootdrill/internal/app"
	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecentReviewsShowOnlyThisEntry(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	events := []store.ReviewEventData{
		{SessionID: "s1", EntryID: "root-mal", Kind: store.EventQuiz, Correct: true},
		{SessionID: "s1", EntryID: "root-mal", Kind: store.EventFlashcard, Correct: false},
		{SessionID: "s1", EntryID: "pre-ab", Kind: store.EventQuiz, Correct: true},
	}
	for _, ev := range events {
		if err := st.AppendReviewEvent(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entry := &dataset.Entry{ID: "root-mal", Type: dataset.TypeRoot, Root: "mal", MeaningZh: "bad"}
	state := app.NewState(ctx, &dataset.Dataset{Entries: []*dataset.Entry{entry}}, st)

	s := New(state, entry)
	s.Update(s.Init()())

	if len(s.events) != 2 {
		t.Fatalf("events = %d, want the 2 for this entry", len(s.events))
	}
	if view := s.View(80, 24); !strings.Contains(view, "Recent:") {
		t.Error("view missing the recent reviews line")
	}
}
