package stats

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

func TestViewShowsDatasetCoverage(t *testing.T) {
	st := openTestStore(t)
	ds := &dataset.Dataset{Entries: []*dataset.Entry{
		{ID: "pre-ab", Type: dataset.TypePrefix, Root: "ab-", MeaningZh: "away",
			Examples: []dataset.Example{{Word: "abduct"}}},
		{ID: "suf-ward", Type: dataset.TypeSuffix, Root: "-ward"},
	}}
	state := app.NewState(context.Background(), ds, st)

	view := New(state).View(80, 30)
	if !strings.Contains(view, "Quizzable") {
		t.Fatalf("view missing the quizzable line:\n%s", view)
	}
	if !strings.Contains(view, "1 with meanings · 1 with examples") {
		t.Errorf("coverage counts wrong:\n%s", view)
	}
}
