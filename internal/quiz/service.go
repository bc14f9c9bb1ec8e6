package quiz

import (
	"context"
	"sort"

	"github.com/yuchen/rootdrill/internal/store"
)

// Service owns the in-memory quiz statistics document and persists it
// after every recorded answer.
type Service struct {
	st  *store.Store
	doc *store.QuizDocument
}

// NewService loads the quiz document from the store. A corrupt or
// absent document silently becomes the default.
func NewService(ctx context.Context, st *store.Store) *Service {
	return &Service{
		st:  st,
		doc: st.LoadQuiz(ctx),
	}
}

// Record counts one answered question against the global and per-entry
// totals and persists immediately.
func (s *Service) Record(ctx context.Context, entryID string, correct bool) error {
	s.doc.Total++
	if correct {
		s.doc.Correct++
	}

	stats := s.doc.ByEntry[entryID]
	if stats == nil {
		stats = &store.EntryQuizStats{}
		s.doc.ByEntry[entryID] = stats
	}
	stats.Total++
	if correct {
		stats.Correct++
	}

	return s.st.SaveQuiz(ctx, s.doc)
}

// Totals returns the global question and correct-answer counts.
func (s *Service) Totals() (total, correct int) {
	return s.doc.Total, s.doc.Correct
}

// EntryStats returns the per-entry counters, or zeros when the entry
// was never quizzed.
func (s *Service) EntryStats(entryID string) store.EntryQuizStats {
	if stats := s.doc.ByEntry[entryID]; stats != nil {
		return *stats
	}
	return store.EntryQuizStats{}
}

// EntryAccuracy pairs an entry with its quiz accuracy.
type EntryAccuracy struct {
	EntryID  string
	Total    int
	Correct  int
	Accuracy float64
}

// Hardest returns up to n quizzed entries sorted by ascending accuracy,
// ties broken by more answers first.
func (s *Service) Hardest(n int) []EntryAccuracy {
	out := make([]EntryAccuracy, 0, len(s.doc.ByEntry))
	for id, stats := range s.doc.ByEntry {
		if stats.Total == 0 {
			continue
		}
		out = append(out, EntryAccuracy{
			EntryID:  id,
			Total:    stats.Total,
			Correct:  stats.Correct,
			Accuracy: float64(stats.Correct) / float64(stats.Total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy != out[j].Accuracy {
			return out[i].Accuracy < out[j].Accuracy
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].EntryID < out[j].EntryID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Reset restores the quiz statistics to zero and persists.
func (s *Service) Reset(ctx context.Context) error {
	s.doc = store.DefaultQuiz()
	return s.st.SaveQuiz(ctx, s.doc)
}

// Replace swaps in a new quiz document (backup import) and persists.
func (s *Service) Replace(ctx context.Context, doc *store.QuizDocument) error {
	if doc.ByEntry == nil {
		doc.ByEntry = make(map[string]*store.EntryQuizStats)
	}
	doc.Version = store.DocumentVersion
	s.doc = doc
	return s.st.SaveQuiz(ctx, s.doc)
}

// Document returns the current quiz document (backup export).
func (s *Service) Document() *store.QuizDocument {
	return s.doc
}
