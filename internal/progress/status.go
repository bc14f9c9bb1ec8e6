package progress

// Status is an entry's position in the learning lifecycle.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusMastered Status = "mastered"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusMastered:
		return true
	}
	return false
}

// masteryMargin is the required lead of remembered over again before an
// entry is promoted to mastered. A heuristic, not a certified spaced
// repetition model.
const masteryMargin = 3

// FlashCounts are the flashcard counters for one entry. Counters only
// grow, except on explicit reset.
type FlashCounts struct {
	Shown      int
	Remembered int
	Again      int
}

// EntryProgress is the mutable learning state for one entry.
type EntryProgress struct {
	Status Status
	Flash  FlashCounts
}

// applyRemembered records a successful review and derives the new status.
func (p *EntryProgress) applyRemembered() {
	p.Flash.Shown++
	p.Flash.Remembered++
	if p.Flash.Remembered >= p.Flash.Again+masteryMargin {
		p.Status = StatusMastered
	} else {
		p.Status = StatusLearning
	}
}

// applyAgain records a failed review. Mastered entries regress.
func (p *EntryProgress) applyAgain() {
	p.Flash.Shown++
	p.Flash.Again++
	p.Status = StatusLearning
}
