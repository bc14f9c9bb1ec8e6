package progress

import (
	"context"
	"fmt"

	"github.com/yuchen/rootdrill/internal/store"
)

// Service owns the in-memory progress document and persists it after
// every mutation. Single writer: the running session owns its store.
type Service struct {
	st  *store.Store
	doc *store.ProgressDocument
}

// NewService loads the progress document from the store. A corrupt or
// absent document silently becomes the default.
func NewService(ctx context.Context, st *store.Store) *Service {
	return &Service{
		st:  st,
		doc: st.LoadProgress(ctx),
	}
}

// Get returns the progress for an entry, creating the default record
// lazily on first access.
func (s *Service) Get(id string) EntryProgress {
	if data, ok := s.doc.Entries[id]; ok {
		return fromData(data)
	}
	return EntryProgress{Status: StatusNew}
}

// Remembered records a successful review for the entry and persists.
func (s *Service) Remembered(ctx context.Context, id string) (EntryProgress, error) {
	p := s.Get(id)
	p.applyRemembered()
	return p, s.put(ctx, id, p)
}

// Again records a failed review for the entry and persists.
func (s *Service) Again(ctx context.Context, id string) (EntryProgress, error) {
	p := s.Get(id)
	p.applyAgain()
	return p, s.put(ctx, id, p)
}

// SetStatus forces an entry into the given status, bypassing counters.
// Used by the manual override on the detail screen.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (EntryProgress, error) {
	if !status.Valid() {
		return EntryProgress{}, fmt.Errorf("unknown status %q", status)
	}
	p := s.Get(id)
	p.Status = status
	return p, s.put(ctx, id, p)
}

// Reset restores every entry to the default state and clears the
// review event log. Callers reset quiz statistics alongside.
func (s *Service) Reset(ctx context.Context) error {
	s.doc = store.DefaultProgress()
	if err := s.st.SaveProgress(ctx, s.doc); err != nil {
		return err
	}
	return s.st.ClearReviewEvents(ctx)
}

// Replace swaps in a new progress document (backup import) and persists.
func (s *Service) Replace(ctx context.Context, doc *store.ProgressDocument) error {
	if doc.Entries == nil {
		doc.Entries = make(map[string]*store.EntryProgressData)
	}
	doc.Version = store.DocumentVersion
	s.doc = doc
	return s.st.SaveProgress(ctx, s.doc)
}

// Document returns the current progress document (backup export).
func (s *Service) Document() *store.ProgressDocument {
	return s.doc
}

// StatusCounts returns how many tracked entries sit in each status.
// Entries never reviewed are not tracked and count as new.
func (s *Service) StatusCounts() map[Status]int {
	counts := make(map[Status]int)
	for _, data := range s.doc.Entries {
		counts[Status(data.Status)]++
	}
	return counts
}

// FlashTotals sums the flashcard counters across all tracked entries.
func (s *Service) FlashTotals() FlashCounts {
	var total FlashCounts
	for _, data := range s.doc.Entries {
		total.Shown += data.Flash.Shown
		total.Remembered += data.Flash.Remembered
		total.Again += data.Flash.Again
	}
	return total
}

func (s *Service) put(ctx context.Context, id string, p EntryProgress) error {
	s.doc.Entries[id] = toData(p)
	return s.st.SaveProgress(ctx, s.doc)
}

func fromData(data *store.EntryProgressData) EntryProgress {
	status := Status(data.Status)
	if !status.Valid() {
		status = StatusNew
	}
	return EntryProgress{
		Status: status,
		Flash: FlashCounts{
			Shown:      data.Flash.Shown,
			Remembered: data.Flash.Remembered,
			Again:      data.Flash.Again,
		},
	}
}

func toData(p EntryProgress) *store.EntryProgressData {
	return &store.EntryProgressData{
		Status: string(p.Status),
		Flash: store.FlashCountsData{
			Shown:      p.Flash.Shown,
			Remembered: p.Flash.Remembered,
			Again:      p.Flash.Again,
		},
	}
}
