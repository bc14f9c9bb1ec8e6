package store

import (
	"context"
	"encoding/json"
)

// Document storage keys. One independent slot per document.
const (
	KeyProgress = "progress"
	KeyQuiz     = "quiz"
	KeySettings = "settings"
)

// DocumentVersion is the only accepted version for stored documents.
// Anything else is treated as total loss and replaced by defaults.
const DocumentVersion = 1

// EntryProgressData is the persisted learning state for one entry.
type EntryProgressData struct {
	Status string          `json:"status"`
	Flash  FlashCountsData `json:"flash"`
}

// FlashCountsData are the flashcard counters for one entry.
type FlashCountsData struct {
	Shown      int `json:"shown"`
	Remembered int `json:"remembered"`
	Again      int `json:"again"`
}

// ProgressDocument holds per-entry learning progress, keyed by entry id.
type ProgressDocument struct {
	Version int                           `json:"version"`
	Entries map[string]*EntryProgressData `json:"entries"`
}

// DefaultProgress returns a fresh empty progress document.
func DefaultProgress() *ProgressDocument {
	return &ProgressDocument{
		Version: DocumentVersion,
		Entries: make(map[string]*EntryProgressData),
	}
}

// EntryQuizStats are per-entry quiz counters.
type EntryQuizStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// QuizDocument holds global and per-entry quiz statistics.
type QuizDocument struct {
	Version int                        `json:"version"`
	Total   int                        `json:"total"`
	Correct int                        `json:"correct"`
	ByEntry map[string]*EntryQuizStats `json:"byEntry"`
}

// DefaultQuiz returns a fresh empty quiz statistics document.
func DefaultQuiz() *QuizDocument {
	return &QuizDocument{
		Version: DocumentVersion,
		ByEntry: make(map[string]*EntryQuizStats),
	}
}

// Training filter values for flashcard candidate pools.
const (
	FilterAll        = "all"
	FilterUnmastered = "unmastered"
)

// Daily goal bounds.
const (
	MinDailyGoal     = 1
	MaxDailyGoal     = 500
	DefaultDailyGoal = 20
)

// SettingsDocument holds learner preferences.
type SettingsDocument struct {
	Version        int    `json:"version"`
	DailyGoal      int    `json:"dailyGoal"`
	TrainingFilter string `json:"trainingFilter"`
}

// DefaultSettings returns the default settings document.
func DefaultSettings() *SettingsDocument {
	return &SettingsDocument{
		Version:        DocumentVersion,
		DailyGoal:      DefaultDailyGoal,
		TrainingFilter: FilterAll,
	}
}

// ClampDailyGoal forces a daily goal into the accepted range.
func ClampDailyGoal(n int) int {
	if n < MinDailyGoal {
		return MinDailyGoal
	}
	if n > MaxDailyGoal {
		return MaxDailyGoal
	}
	return n
}

// Normalize fills defaulted fields after an import overlay and forces
// the accepted version.
func (d *SettingsDocument) Normalize() {
	d.Version = DocumentVersion
	if d.DailyGoal == 0 {
		d.DailyGoal = DefaultDailyGoal
	}
	d.DailyGoal = ClampDailyGoal(d.DailyGoal)
	if d.TrainingFilter != FilterAll && d.TrainingFilter != FilterUnmastered {
		d.TrainingFilter = FilterAll
	}
}

// versionProbe reads just the version field of a stored document.
type versionProbe struct {
	Version int `json:"version"`
}

// loadRaw returns the stored text under key when it is valid JSON
// carrying exactly DocumentVersion. Absent keys, invalid JSON, wrong
// versions, and storage read errors all report false: corruption is
// total loss and the caller falls back to defaults. Callers must
// decode the returned bytes into a fresh value, never into a live
// document, so that a decode failure cannot leave half-filled fields
// behind.
func (s *Store) loadRaw(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var probe versionProbe
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, false
	}
	if probe.Version != DocumentVersion {
		return nil, false
	}
	return []byte(raw), true
}

// saveDocument marshals doc and overwrites the slot under key.
func (s *Store) saveDocument(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, string(raw))
}

// LoadProgress returns the stored progress document, or a fresh default
// when the slot is absent or corrupt.
func (s *Store) LoadProgress(ctx context.Context) *ProgressDocument {
	raw, ok := s.loadRaw(ctx, KeyProgress)
	if !ok {
		return DefaultProgress()
	}
	var doc ProgressDocument
	if json.Unmarshal(raw, &doc) != nil {
		return DefaultProgress()
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]*EntryProgressData)
	}
	return &doc
}

// SaveProgress overwrites the progress slot.
func (s *Store) SaveProgress(ctx context.Context, doc *ProgressDocument) error {
	return s.saveDocument(ctx, KeyProgress, doc)
}

// LoadQuiz returns the stored quiz document, or a fresh default when
// the slot is absent or corrupt.
func (s *Store) LoadQuiz(ctx context.Context) *QuizDocument {
	raw, ok := s.loadRaw(ctx, KeyQuiz)
	if !ok {
		return DefaultQuiz()
	}
	var doc QuizDocument
	if json.Unmarshal(raw, &doc) != nil {
		return DefaultQuiz()
	}
	if doc.ByEntry == nil {
		doc.ByEntry = make(map[string]*EntryQuizStats)
	}
	return &doc
}

// SaveQuiz overwrites the quiz slot.
func (s *Store) SaveQuiz(ctx context.Context, doc *QuizDocument) error {
	return s.saveDocument(ctx, KeyQuiz, doc)
}

// LoadSettings returns the stored settings document, or the default
// when the slot is absent or corrupt.
func (s *Store) LoadSettings(ctx context.Context) *SettingsDocument {
	raw, ok := s.loadRaw(ctx, KeySettings)
	if !ok {
		return DefaultSettings()
	}
	var doc SettingsDocument
	if json.Unmarshal(raw, &doc) != nil {
		return DefaultSettings()
	}
	doc.Normalize()
	return &doc
}

// SaveSettings overwrites the settings slot.
func (s *Store) SaveSettings(ctx context.Context, doc *SettingsDocument) error {
	return s.saveDocument(ctx, KeySettings, doc)
}
