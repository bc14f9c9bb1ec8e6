package dataset

// EntryType classifies an entry as a prefix, suffix, or root.
type EntryType string

const (
	TypePrefix EntryType = "prefix"
	TypeSuffix EntryType = "suffix"
	TypeRoot   EntryType = "root"
)

// Example is a single example word under an entry.
type Example struct {
	Word          string `json:"word"`
	Decomposition string `json:"decomposition,omitempty"`
	ExplanationZh string `json:"explanationZh"`
	RawLine       string `json:"rawLine,omitempty"`
}

// Entry is one root/affix item from the dataset. Entries are immutable
// after load.
type Entry struct {
	ID         string    `json:"id"`
	Type       EntryType `json:"type"`
	Root       string    `json:"root"`
	MeaningZh  string    `json:"meaningZh,omitempty"`
	Section    string    `json:"section,omitempty"`
	Aliases    []string  `json:"aliases"`
	Examples   []Example `json:"examples"`
	Tags       []string  `json:"tags"`
	Confidence float64   `json:"confidence"`
}

// HasMeaning reports whether the entry carries a non-empty meaning.
func (e *Entry) HasMeaning() bool {
	return e.MeaningZh != ""
}

// HasExamples reports whether the entry has at least one example word.
func (e *Entry) HasExamples() bool {
	return len(e.Examples) > 0
}

// Label returns the display string for an entry: its root plus the
// meaning when one exists.
func (e *Entry) Label() string {
	if e.MeaningZh == "" {
		return e.Root
	}
	return e.Root + " — " + e.MeaningZh
}

// Meta describes the provenance of a dataset file.
type Meta struct {
	SourceFile   string `json:"sourceFile"`
	GeneratedAt  string `json:"generatedAt"`
	EntryCount   int    `json:"entryCount"`
	ExampleCount int    `json:"exampleCount"`
}
