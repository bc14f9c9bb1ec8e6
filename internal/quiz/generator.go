// Package quiz builds multiple-choice questions over the dataset and
// records outcomes into the quiz statistics document.
package quiz

import (
	"math/rand"

	"github.com/yuchen/rootdrill/internal/dataset"
)

// Kind distinguishes the two question shapes.
type Kind int

const (
	// KindMeaning asks for the meaning of a shown root.
	KindMeaning Kind = iota
	// KindWordRoot asks which root a shown example word belongs to.
	KindWordRoot
)

// Option is one answer choice.
type Option struct {
	EntryID string
	Label   string
}

// Question is a generated multiple-choice question. Exactly one
// resolution per question: further answers after Resolve are no-ops.
type Question struct {
	Kind     Kind
	Prompt   string
	Options  []Option
	TargetID string

	resolved bool
}

// Resolved reports whether the question has been answered.
func (q *Question) Resolved() bool {
	return q.resolved
}

// Resolve marks the question answered with the option at index i and
// reports whether that option was correct. The second return value is
// false when the question was already resolved or i is out of range.
func (q *Question) Resolve(i int) (correct, ok bool) {
	if q.resolved || i < 0 || i >= len(q.Options) {
		return false, false
	}
	q.resolved = true
	return q.Options[i].EntryID == q.TargetID, true
}

// optionCount is the target number of choices per question. Smaller
// pools produce fewer options, never duplicates.
const optionCount = 4

// Generator produces questions from an entry pool.
type Generator struct {
	rand *rand.Rand
}

// New creates a generator with the given random source.
func New(src rand.Source) *Generator {
	return &Generator{rand: rand.New(src)}
}

// Generate builds the next question, choosing between the two kinds
// with equal probability. Returns nil when neither kind has an
// eligible target.
func (g *Generator) Generate(entries []*dataset.Entry) *Question {
	if g.rand.Intn(2) == 0 {
		if q := g.meaningQuestion(entries); q != nil {
			return q
		}
		return g.wordRootQuestion(entries)
	}
	if q := g.wordRootQuestion(entries); q != nil {
		return q
	}
	return g.meaningQuestion(entries)
}

// meaningQuestion asks for the meaning of a random entry that has one.
func (g *Generator) meaningQuestion(entries []*dataset.Entry) *Question {
	var eligible []*dataset.Entry
	for _, e := range entries {
		if e.HasMeaning() {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	target := eligible[g.rand.Intn(len(eligible))]

	var rest []*dataset.Entry
	for _, e := range eligible {
		if e.ID != target.ID {
			rest = append(rest, e)
		}
	}
	distractors := g.sample(rest, optionCount-1)

	options := make([]Option, 0, len(distractors)+1)
	options = append(options, Option{EntryID: target.ID, Label: target.MeaningZh})
	for _, d := range distractors {
		options = append(options, Option{EntryID: d.ID, Label: d.MeaningZh})
	}
	g.shuffle(options)

	return &Question{
		Kind:     KindMeaning,
		Prompt:   target.Root,
		Options:  options,
		TargetID: target.ID,
	}
}

// wordRootQuestion shows a random example word and asks which root it
// belongs to. Distractors prefer entries of the same type when at
// least three exist.
func (g *Generator) wordRootQuestion(entries []*dataset.Entry) *Question {
	var eligible []*dataset.Entry
	for _, e := range entries {
		if e.HasExamples() {
			eligible = append(eligible, e)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	target := eligible[g.rand.Intn(len(eligible))]
	example := target.Examples[g.rand.Intn(len(target.Examples))]

	var sameType, others []*dataset.Entry
	for _, e := range entries {
		if e.ID == target.ID {
			continue
		}
		if e.Type == target.Type {
			sameType = append(sameType, e)
		} else {
			others = append(others, e)
		}
	}

	pool := sameType
	if len(sameType) < optionCount-1 {
		pool = append(sameType, others...)
	}
	distractors := g.sample(pool, optionCount-1)

	options := make([]Option, 0, len(distractors)+1)
	options = append(options, Option{EntryID: target.ID, Label: target.Label()})
	for _, d := range distractors {
		options = append(options, Option{EntryID: d.ID, Label: d.Label()})
	}
	g.shuffle(options)

	return &Question{
		Kind:     KindWordRoot,
		Prompt:   example.Word,
		Options:  options,
		TargetID: target.ID,
	}
}

// sample draws up to n entries uniformly without replacement.
func (g *Generator) sample(pool []*dataset.Entry, n int) []*dataset.Entry {
	if n > len(pool) {
		n = len(pool)
	}
	idx := g.rand.Perm(len(pool))[:n]
	out := make([]*dataset.Entry, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func (g *Generator) shuffle(options []Option) {
	g.rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}
