package review

import (
	"context"
	"math/rand"
	"testing"

	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/progress"
	"github.com/yuchen/rootdrill/internal/store"
)

func newTestProgress(t *testing.T) *progress.Service {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return progress.NewService(context.Background(), st)
}

func entries(ids ...string) []*dataset.Entry {
	out := make([]*dataset.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, &dataset.Entry{ID: id, Type: dataset.TypeRoot, Root: id})
	}
	return out
}

func TestWeight(t *testing.T) {
	tests := []struct {
		name string
		p    progress.EntryProgress
		want float64
	}{
		{"new entry", progress.EntryProgress{Status: progress.StatusNew}, 3},
		{"learning entry", progress.EntryProgress{Status: progress.StatusLearning}, 2},
		{"mastered entry", progress.EntryProgress{Status: progress.StatusMastered}, 1},
		{
			"failure penalty",
			progress.EntryProgress{
				Status: progress.StatusLearning,
				Flash:  progress.FlashCounts{Again: 5, Remembered: 5},
			},
			2 + (5 - 5*0.4),
		},
		{
			"penalty floors at zero",
			progress.EntryProgress{
				Status: progress.StatusLearning,
				Flash:  progress.FlashCounts{Again: 1, Remembered: 10},
			},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weight(tt.p); got != tt.want {
				t.Errorf("Weight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickNextEmptyPool(t *testing.T) {
	pk := NewPicker(newTestProgress(t), rand.NewSource(1))

	if got := pk.PickNext(nil, true); got != nil {
		t.Errorf("PickNext(empty) = %v, want nil", got)
	}
}

func TestPickNextSingleEntry(t *testing.T) {
	pk := NewPicker(newTestProgress(t), rand.NewSource(1))
	pool := entries("only")

	for i := 0; i < 20; i++ {
		got := pk.PickNext(pool, false)
		if got == nil || got.ID != "only" {
			t.Fatalf("draw %d: got %v, want the single entry", i, got)
		}
	}
}

func TestPickNextExcludesMastered(t *testing.T) {
	prog := newTestProgress(t)
	ctx := context.Background()
	if _, err := prog.SetStatus(ctx, "done", progress.StatusMastered); err != nil {
		t.Fatalf("set status: %v", err)
	}

	pk := NewPicker(prog, rand.NewSource(42))
	pool := entries("done", "fresh")

	for i := 0; i < 100; i++ {
		got := pk.PickNext(pool, false)
		if got == nil {
			t.Fatal("unexpected nil from non-empty pool")
		}
		if got.ID == "done" {
			t.Fatalf("draw %d returned mastered entry", i)
		}
	}
}

func TestPickNextAllMastered(t *testing.T) {
	prog := newTestProgress(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		if _, err := prog.SetStatus(ctx, id, progress.StatusMastered); err != nil {
			t.Fatalf("set status: %v", err)
		}
	}

	pk := NewPicker(prog, rand.NewSource(1))
	pool := entries("a", "b")

	if got := pk.PickNext(pool, false); got != nil {
		t.Errorf("PickNext = %v, want nil when everything is mastered", got)
	}
	if got := pk.PickNext(pool, true); got == nil {
		t.Error("PickNext with allowMastered should still draw")
	}
}

// Frequently failed entries should be drawn noticeably more often than
// mastered ones. Uses a fixed seed; the margin is wide enough that the
// check is stable.
func TestPickNextFavorsFailedEntries(t *testing.T) {
	prog := newTestProgress(t)
	ctx := context.Background()

	// "hard" fails five times: weight 2 + 5 = 7. "easy" is mastered: weight 1.
	for i := 0; i < 5; i++ {
		if _, err := prog.Again(ctx, "hard"); err != nil {
			t.Fatalf("again: %v", err)
		}
	}
	if _, err := prog.SetStatus(ctx, "easy", progress.StatusMastered); err != nil {
		t.Fatalf("set status: %v", err)
	}

	pk := NewPicker(prog, rand.NewSource(7))
	pool := entries("hard", "easy")

	hard := 0
	const draws = 1000
	for i := 0; i < draws; i++ {
		if pk.PickNext(pool, true).ID == "hard" {
			hard++
		}
	}

	// Expected share is 7/8. Anything above 3/4 proves the bias.
	if hard < draws*3/4 {
		t.Errorf("hard drawn %d/%d times, expected a strong majority", hard, draws)
	}
}
