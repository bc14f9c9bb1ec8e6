package browse

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/yuchen/rootdrill/internal/app"
	"github.com/yuchen/rootdrill/internal/dataset"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testState() *app.State {
	return &app.State{Dataset: &dataset.Dataset{Entries: []*dataset.Entry{
		{ID: "pre-ab", Type: dataset.TypePrefix, Root: "ab-", MeaningZh: "away"},
		{ID: "root-mal", Type: dataset.TypeRoot, Root: "mal", MeaningZh: "bad"},
		{ID: "suf-ward", Type: dataset.TypeSuffix, Root: "-ward"},
	}}}
}

func TestTypeFilterNarrowsList(t *testing.T) {
	s := New(testState())
	if len(s.filtered) != 3 {
		t.Fatalf("filtered = %d, want all 3 entries", len(s.filtered))
	}

	want := []dataset.EntryType{dataset.TypePrefix, dataset.TypeRoot, dataset.TypeSuffix}
	for _, wt := range want {
		s.Update(keyPress('t'))
		if len(s.filtered) != 1 || s.filtered[0].Type != wt {
			t.Errorf("after cycling to %s: filtered = %v", wt, s.filtered)
		}
	}

	// One more press wraps back to the unfiltered list.
	s.Update(keyPress('t'))
	if len(s.filtered) != 3 {
		t.Errorf("filtered = %d after wrap, want 3", len(s.filtered))
	}
}
