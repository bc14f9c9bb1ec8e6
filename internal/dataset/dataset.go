package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Dataset is the immutable entry collection loaded once at startup.
type Dataset struct {
	Meta    Meta
	Entries []*Entry

	byID map[string]*Entry
}

// Load reads and parses the dataset file at path.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var file struct {
		Meta    Meta     `json:"meta"`
		Entries []*Entry `json:"entries"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", filepath.Base(path), err)
	}

	ds := &Dataset{
		Meta:    file.Meta,
		Entries: file.Entries,
		byID:    make(map[string]*Entry, len(file.Entries)),
	}
	for _, e := range ds.Entries {
		ds.byID[e.ID] = e
	}
	return ds, nil
}

// ByID returns the entry with the given id, or nil if unknown.
func (d *Dataset) ByID(id string) *Entry {
	return d.byID[id]
}

// WithMeaning returns entries that carry a non-empty meaning.
func (d *Dataset) WithMeaning() []*Entry {
	var out []*Entry
	for _, e := range d.Entries {
		if e.HasMeaning() {
			out = append(out, e)
		}
	}
	return out
}

// WithExamples returns entries that have at least one example word.
func (d *Dataset) WithExamples() []*Entry {
	var out []*Entry
	for _, e := range d.Entries {
		if e.HasExamples() {
			out = append(out, e)
		}
	}
	return out
}

// ByType returns entries of the given type.
func (d *Dataset) ByType(t EntryType) []*Entry {
	var out []*Entry
	for _, e := range d.Entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// DefaultDataPath resolves the dataset file path in priority order:
// 1. ROOTDRILL_DATA environment variable
// 2. $XDG_DATA_HOME/rootdrill/roots.json
// 3. ~/.local/share/rootdrill/roots.json
func DefaultDataPath() (string, error) {
	if p := os.Getenv("ROOTDRILL_DATA"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "rootdrill", "roots.json"), nil
}
