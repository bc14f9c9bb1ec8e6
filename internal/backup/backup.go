// Package backup serializes the three persisted documents into a
// portable snapshot and restores them from one.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/yuchen/rootdrill/internal/store"
)

// Named failure kinds for import. Parse failures wrap ErrNotJSON;
// structurally unusable payloads wrap ErrNoProgress. State is left
// unchanged on either.
var (
	ErrNotJSON    = errors.New("backup is not valid JSON")
	ErrNoProgress = errors.New("backup contains no progress document")
)

// Snapshot is the canonical backup bundle.
type Snapshot struct {
	Version    int                     `json:"version"`
	ExportedAt string                  `json:"exportedAt"`
	Progress   *store.ProgressDocument `json:"progress"`
	Quiz       *store.QuizDocument     `json:"quiz"`
	Settings   *store.SettingsDocument `json:"settings"`
}

// canonicalSchema gates the canonical shape: a progress object with an
// entries mapping under the "progress" key. Quiz and settings stay
// optional and are defaulted on import.
const canonicalSchema = `{
  "type": "object",
  "required": ["progress"],
  "properties": {
    "progress": {
      "type": "object",
      "required": ["entries"],
      "properties": {
        "entries": {"type": "object"}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	compiled   *jsonschema.Schema
	schemaErr  error
)

func canonical() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(canonicalSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://backup.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, schemaErr = c.Compile("schema://backup.json")
	})
	return compiled, schemaErr
}

// Export captures the given documents as a canonical snapshot.
func Export(progress *store.ProgressDocument, quiz *store.QuizDocument, settings *store.SettingsDocument) *Snapshot {
	return &Snapshot{
		Version:    store.DocumentVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Progress:   progress,
		Quiz:       quiz,
		Settings:   settings,
	}
}

// Marshal renders a snapshot as indented JSON for the backup file.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// legacyShape is the pre-snapshot format: the whole object doubles as
// the progress payload, either directly or under "xdfProgress".
type legacyShape struct {
	XdfProgress *store.ProgressDocument             `json:"xdfProgress"`
	Entries     map[string]*store.EntryProgressData `json:"entries"`
}

// Parse reads a backup file body and reconstructs the three documents,
// overlaying parsed fields onto fresh defaults so missing sub-fields
// are filled. Canonical shape is tried first, then the legacy flat
// shapes. Neither matching is an ErrNoProgress failure.
func Parse(data []byte) (*Snapshot, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	schema, err := canonical()
	if err != nil {
		return nil, err
	}

	if schema.Validate(parsed) == nil {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
		}
		return normalize(&snap), nil
	}

	// Legacy fallback: the object itself or its xdfProgress field is
	// the progress payload.
	var legacy legacyShape
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	switch {
	case legacy.XdfProgress != nil && legacy.XdfProgress.Entries != nil:
		return normalize(&Snapshot{Progress: legacy.XdfProgress}), nil
	case legacy.Entries != nil:
		return normalize(&Snapshot{Progress: &store.ProgressDocument{Entries: legacy.Entries}}), nil
	}
	return nil, ErrNoProgress
}

// normalize overlays the parsed documents onto defaults and forces the
// accepted version everywhere.
func normalize(snap *Snapshot) *Snapshot {
	snap.Version = store.DocumentVersion

	if snap.Progress == nil {
		snap.Progress = store.DefaultProgress()
	}
	if snap.Progress.Entries == nil {
		snap.Progress.Entries = make(map[string]*store.EntryProgressData)
	}
	snap.Progress.Version = store.DocumentVersion

	if snap.Quiz == nil {
		snap.Quiz = store.DefaultQuiz()
	}
	if snap.Quiz.ByEntry == nil {
		snap.Quiz.ByEntry = make(map[string]*store.EntryQuizStats)
	}
	snap.Quiz.Version = store.DocumentVersion

	if snap.Settings == nil {
		snap.Settings = store.DefaultSettings()
	}
	snap.Settings.Normalize()

	return snap
}

// Restore persists all three documents of a parsed snapshot. Three
// sequential writes, no rollback: acceptable for a single-user local
// store.
func Restore(ctx context.Context, st *store.Store, snap *Snapshot) error {
	if err := st.SaveProgress(ctx, snap.Progress); err != nil {
		return fmt.Errorf("restore progress: %w", err)
	}
	if err := st.SaveQuiz(ctx, snap.Quiz); err != nil {
		return fmt.Errorf("restore quiz: %w", err)
	}
	if err := st.SaveSettings(ctx, snap.Settings); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}
	return nil
}
