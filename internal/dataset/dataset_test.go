package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFile = `{
  "meta": {
    "sourceFile": "roots.docx",
    "generatedAt": "2026-08-01T00:00:00Z",
    "entryCount": 3,
    "exampleCount": 2
  },
  "entries": [
    {
      "id": "ab-1",
      "type": "prefix",
      "root": "ab",
      "meaningZh": "away from",
      "section": "prefixes",
      "aliases": ["abs"],
      "examples": [
        {"word": "abnormal", "explanationZh": "not normal"}
      ],
      "tags": [],
      "confidence": 0.95
    },
    {
      "id": "mal",
      "type": "root",
      "root": "mal",
      "meaningZh": "bad",
      "section": "roots",
      "aliases": [],
      "examples": [
        {"word": "malfunction", "explanationZh": "to fail"}
      ],
      "tags": ["common"],
      "confidence": 0.9
    },
    {
      "id": "ward",
      "type": "suffix",
      "root": "-ward",
      "meaningZh": "",
      "section": "suffixes",
      "aliases": [],
      "examples": [],
      "tags": [],
      "confidence": 0.8
    }
  ]
}`

func writeSample(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roots.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	ds, err := Load(writeSample(t, sampleFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(ds.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(ds.Entries))
	}
	if ds.Meta.EntryCount != 3 || ds.Meta.ExampleCount != 2 {
		t.Errorf("meta = %+v", ds.Meta)
	}

	e := ds.ByID("mal")
	if e == nil || e.Root != "mal" {
		t.Fatalf("ByID(mal) = %+v", e)
	}
	if ds.ByID("nope") != nil {
		t.Error("unknown id should be nil")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeSample(t, "not json")); err == nil {
		t.Error("invalid JSON should fail")
	}
}

func TestFilters(t *testing.T) {
	ds, err := Load(writeSample(t, sampleFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := ds.WithMeaning(); len(got) != 2 {
		t.Errorf("WithMeaning = %d entries, want 2", len(got))
	}
	if got := ds.WithExamples(); len(got) != 2 {
		t.Errorf("WithExamples = %d entries, want 2", len(got))
	}
	if got := ds.ByType(TypeSuffix); len(got) != 1 || got[0].ID != "ward" {
		t.Errorf("ByType(suffix) = %+v", got)
	}
}

func TestLabel(t *testing.T) {
	ds, err := Load(writeSample(t, sampleFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := ds.ByID("ab-1").Label(); !strings.Contains(got, "away from") {
		t.Errorf("Label = %q, want the meaning included", got)
	}
	if got := ds.ByID("ward").Label(); got != "-ward" {
		t.Errorf("Label without meaning = %q, want just the root", got)
	}
}

func TestDefaultDataPath(t *testing.T) {
	t.Setenv("ROOTDRILL_DATA", "/tmp/custom.json")
	p, err := DefaultDataPath()
	if err != nil || p != "/tmp/custom.json" {
		t.Fatalf("path = %q, err = %v", p, err)
	}

	t.Setenv("ROOTDRILL_DATA", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	p, err = DefaultDataPath()
	if err != nil || p != filepath.Join("/tmp/xdg", "rootdrill", "roots.json") {
		t.Fatalf("xdg path = %q, err = %v", p, err)
	}
}

func TestCheckPasses(t *testing.T) {
	report, err := Check(writeSample(t, sampleFile))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if report.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", report.EntryCount)
	}
	if report.ExampleCount != 2 {
		t.Errorf("ExampleCount = %d, want 2", report.ExampleCount)
	}
	if report.FieldCompleteness < 0.9 {
		t.Errorf("FieldCompleteness = %.3f, want >= 0.9", report.FieldCompleteness)
	}
}

func TestCheckRejectsDuplicateIDs(t *testing.T) {
	body := strings.Replace(sampleFile, `"id": "mal"`, `"id": "ab-1"`, 1)
	_, err := Check(writeSample(t, body))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("err = %v, want duplicate id failure", err)
	}
}

func TestCheckRejectsBadShape(t *testing.T) {
	cases := map[string]string{
		"missing meta":  `{"entries": []}`,
		"bad type":      strings.Replace(sampleFile, `"type": "prefix"`, `"type": "verb"`, 1),
		"empty root":    strings.Replace(sampleFile, `"root": "mal"`, `"root": ""`, 1),
		"entries list":  `{"meta": {"entryCount": 1, "exampleCount": 1}, "entries": "nope"}`,
		"confidence >1": strings.Replace(sampleFile, `"confidence": 0.9`, `"confidence": 1.5`, 1),
	}
	for name, body := range cases {
		if _, err := Check(writeSample(t, body)); err == nil {
			t.Errorf("%s: expected a failure", name)
		}
	}
}

func TestCheckRejectsIncompleteFields(t *testing.T) {
	// Entries carrying only the three structural fields sit at 3/9
	// completeness, well under the bar.
	body := `{
	  "meta": {"entryCount": 2, "exampleCount": 1},
	  "entries": [
	    {"id": "a", "type": "root", "root": "a"},
	    {"id": "b", "type": "root", "root": "b"}
	  ]
	}`
	_, err := Check(writeSample(t, body))
	if err == nil || !strings.Contains(err.Error(), "completeness") {
		t.Fatalf("err = %v, want completeness failure", err)
	}
}
