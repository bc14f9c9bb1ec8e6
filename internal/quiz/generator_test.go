package quiz

import (
	"math/rand"
	"testing"

	"github.com/yuchen/rootdrill/internal/dataset"
)

func makeEntries(n int, typ dataset.EntryType, withMeaning, withExamples bool) []*dataset.Entry {
	out := make([]*dataset.Entry, 0, n)
	for i := 0; i < n; i++ {
		e := &dataset.Entry{
			ID:   string(typ) + "-" + string(rune('a'+i)),
			Type: typ,
			Root: string(rune('a'+i)) + "-root",
		}
		if withMeaning {
			e.MeaningZh = "meaning of " + e.ID
		}
		if withExamples {
			e.Examples = []dataset.Example{{Word: e.ID + "-word", ExplanationZh: "x"}}
		}
		out = append(out, e)
	}
	return out
}

func assertWellFormed(t *testing.T, q *Question, pool []*dataset.Entry) {
	t.Helper()
	if q == nil {
		t.Fatal("expected a question")
	}

	want := optionCount
	if len(pool) < want {
		want = len(pool)
	}
	if len(q.Options) != want {
		t.Errorf("options = %d, want %d", len(q.Options), want)
	}

	seen := make(map[string]bool)
	foundTarget := false
	for _, opt := range q.Options {
		if seen[opt.EntryID] {
			t.Errorf("duplicate option %q", opt.EntryID)
		}
		seen[opt.EntryID] = true
		if opt.EntryID == q.TargetID {
			foundTarget = true
		}
	}
	if !foundTarget {
		t.Error("target missing from options")
	}
}

func TestMeaningQuestion(t *testing.T) {
	g := New(rand.NewSource(1))
	pool := makeEntries(10, dataset.TypeRoot, true, false)

	for i := 0; i < 50; i++ {
		q := g.meaningQuestion(pool)
		assertWellFormed(t, q, pool)
		if q.Kind != KindMeaning {
			t.Fatalf("Kind = %v, want KindMeaning", q.Kind)
		}
	}
}

func TestMeaningQuestionSmallPool(t *testing.T) {
	g := New(rand.NewSource(1))

	for n := 1; n < 4; n++ {
		pool := makeEntries(n, dataset.TypeRoot, true, false)
		q := g.meaningQuestion(pool)
		assertWellFormed(t, q, pool)
	}
}

func TestMeaningQuestionNoMeanings(t *testing.T) {
	g := New(rand.NewSource(1))
	pool := makeEntries(5, dataset.TypeRoot, false, true)

	if q := g.meaningQuestion(pool); q != nil {
		t.Errorf("expected nil question, got %+v", q)
	}
}

func TestWordRootQuestion(t *testing.T) {
	g := New(rand.NewSource(2))
	pool := makeEntries(10, dataset.TypeRoot, true, true)

	for i := 0; i < 50; i++ {
		q := g.wordRootQuestion(pool)
		assertWellFormed(t, q, pool)
		if q.Kind != KindWordRoot {
			t.Fatalf("Kind = %v, want KindWordRoot", q.Kind)
		}

		target := findEntry(pool, q.TargetID)
		if target == nil {
			t.Fatal("target not in pool")
		}
		if !hasExampleWord(target, q.Prompt) {
			t.Errorf("prompt %q is not an example of the target", q.Prompt)
		}
	}
}

// With three or more same-type alternatives, every distractor keeps
// the target's type.
func TestWordRootDistractorsPreferSameType(t *testing.T) {
	g := New(rand.NewSource(3))

	prefixes := makeEntries(6, dataset.TypePrefix, true, true)
	suffixes := makeEntries(6, dataset.TypeSuffix, true, false)
	pool := append(append([]*dataset.Entry{}, prefixes...), suffixes...)
	// Only prefixes have examples, so the target is always a prefix.

	for i := 0; i < 50; i++ {
		q := g.wordRootQuestion(pool)
		if q == nil {
			t.Fatal("expected a question")
		}
		for _, opt := range q.Options {
			e := findEntry(pool, opt.EntryID)
			if e.Type != dataset.TypePrefix {
				t.Fatalf("distractor %q has type %s, want prefix", opt.EntryID, e.Type)
			}
		}
	}
}

func TestWordRootFallsBackAcrossTypes(t *testing.T) {
	g := New(rand.NewSource(4))

	// One prefix with examples, three roots without: same-type pool is
	// empty so distractors must come from the other types.
	pool := append(makeEntries(1, dataset.TypePrefix, true, true),
		makeEntries(3, dataset.TypeRoot, true, false)...)

	q := g.wordRootQuestion(pool)
	assertWellFormed(t, q, pool)
}

func TestGenerateNilOnEmptyDataset(t *testing.T) {
	g := New(rand.NewSource(5))
	pool := makeEntries(5, dataset.TypeRoot, false, false)

	if q := g.Generate(pool); q != nil {
		t.Errorf("expected nil, got %+v", q)
	}
}

func TestGenerateFallsBackBetweenKinds(t *testing.T) {
	g := New(rand.NewSource(6))

	// Meanings but no examples: every draw must produce Kind A.
	pool := makeEntries(6, dataset.TypeRoot, true, false)
	for i := 0; i < 20; i++ {
		q := g.Generate(pool)
		if q == nil || q.Kind != KindMeaning {
			t.Fatalf("draw %d: got %+v, want a meaning question", i, q)
		}
	}

	// Examples but no meanings: every draw must produce Kind B.
	pool = makeEntries(6, dataset.TypeRoot, false, true)
	for i := 0; i < 20; i++ {
		q := g.Generate(pool)
		if q == nil || q.Kind != KindWordRoot {
			t.Fatalf("draw %d: got %+v, want a word-root question", i, q)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	g := New(rand.NewSource(7))
	pool := makeEntries(6, dataset.TypeRoot, true, false)
	q := g.Generate(pool)

	correctIndex := -1
	for i, opt := range q.Options {
		if opt.EntryID == q.TargetID {
			correctIndex = i
		}
	}

	correct, ok := q.Resolve(correctIndex)
	if !ok || !correct {
		t.Fatalf("first resolve = %v, %v, want correct", correct, ok)
	}

	if _, ok := q.Resolve(correctIndex); ok {
		t.Error("second resolve should be a no-op")
	}
	if !q.Resolved() {
		t.Error("question should remain resolved")
	}
}

func TestResolveOutOfRange(t *testing.T) {
	g := New(rand.NewSource(8))
	pool := makeEntries(6, dataset.TypeRoot, true, false)
	q := g.Generate(pool)

	if _, ok := q.Resolve(-1); ok {
		t.Error("negative index should not resolve")
	}
	if _, ok := q.Resolve(len(q.Options)); ok {
		t.Error("out-of-range index should not resolve")
	}
	if q.Resolved() {
		t.Error("failed resolves must not mark the question answered")
	}
}

func findEntry(pool []*dataset.Entry, id string) *dataset.Entry {
	for _, e := range pool {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func hasExampleWord(e *dataset.Entry, word string) bool {
	for _, ex := range e.Examples {
		if ex.Word == word {
			return true
		}
	}
	return false
}
