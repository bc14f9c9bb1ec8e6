// Package review selects the next flashcard entry with a weighted
// random draw biased toward unmastered and frequently failed items.
package review

import (
	"math/rand"

	"github.com/yuchen/rootdrill/internal/dataset"
	"github.com/yuchen/rootdrill/internal/progress"
)

// Base weights per status. New entries are favored over learning ones,
// which are favored over mastered ones.
const (
	weightNew      = 3.0
	weightLearning = 2.0
	weightMastered = 1.0
)

// recoveryFactor discounts successes when computing the penalty term
// for frequently failed entries.
const recoveryFactor = 0.4

// Picker draws the next flashcard entry. The random source is
// injectable so tests can pin the draw.
type Picker struct {
	progress *progress.Service
	rand     *rand.Rand
}

// NewPicker creates a picker over the given progress state.
func NewPicker(prog *progress.Service, src rand.Source) *Picker {
	return &Picker{
		progress: prog,
		rand:     rand.New(src),
	}
}

// Weight computes the selection weight for one entry. The penalty term
// max(0, again - remembered*recoveryFactor) re-surfaces entries the
// learner keeps failing relative to how often they succeed.
func Weight(p progress.EntryProgress) float64 {
	var base float64
	switch p.Status {
	case progress.StatusLearning:
		base = weightLearning
	case progress.StatusMastered:
		base = weightMastered
	default:
		base = weightNew
	}

	penalty := float64(p.Flash.Again) - float64(p.Flash.Remembered)*recoveryFactor
	if penalty < 0 {
		penalty = 0
	}
	return base + penalty
}

// PickNext returns the next entry to review, or nil when the pool is
// empty. Mastered entries are excluded unless allowMastered is set.
// This is a randomized biased sampler: repeated calls on an unchanged
// pool may return different entries.
func (pk *Picker) PickNext(entries []*dataset.Entry, allowMastered bool) *dataset.Entry {
	type candidate struct {
		entry  *dataset.Entry
		weight float64
	}

	var pool []candidate
	var total float64
	for _, e := range entries {
		p := pk.progress.Get(e.ID)
		if !allowMastered && p.Status == progress.StatusMastered {
			continue
		}
		w := Weight(p)
		pool = append(pool, candidate{entry: e, weight: w})
		total += w
	}
	if len(pool) == 0 {
		return nil
	}

	// Single weighted draw via linear subtraction. Fine for pools of
	// hundreds of entries.
	r := pk.rand.Float64() * total
	for _, c := range pool {
		r -= c.weight
		if r <= 0 {
			return c.entry
		}
	}
	// Rounding can leave a positive remainder after the full pass.
	return pool[len(pool)-1].entry
}
