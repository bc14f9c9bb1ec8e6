package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fileSchema describes the dataset file shape. Field completeness is
// checked separately so a partially extracted dataset still passes the
// structural gate.
const fileSchema = `{
  "type": "object",
  "required": ["meta", "entries"],
  "properties": {
    "meta": {
      "type": "object",
      "required": ["entryCount", "exampleCount"],
      "properties": {
        "entryCount": {"type": "integer", "minimum": 1},
        "exampleCount": {"type": "integer", "minimum": 1}
      }
    },
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type", "root"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"enum": ["prefix", "suffix", "root"]},
          "root": {"type": "string", "minLength": 1},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledFileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(fileSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://dataset.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://dataset.json")
	})
	return compiledSchema, schemaErr
}

// CheckReport summarizes a dataset validation pass.
type CheckReport struct {
	EntryCount        int
	ExampleCount      int
	FieldCompleteness float64
}

// requiredFields are the entry fields counted toward field completeness.
var requiredFields = []string{
	"id", "type", "root", "meaningZh", "section",
	"aliases", "examples", "tags", "confidence",
}

// Check validates the dataset file at path: schema shape, unique ids,
// and at least 90% field completeness across entries.
func Check(path string) (*CheckReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledFileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	obj := parsed.(map[string]any)
	entries, _ := obj["entries"].([]any)

	seen := make(map[string]bool, len(entries))
	present := 0
	exampleCount := 0
	for _, item := range entries {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := e["id"].(string)
		if seen[id] {
			return nil, fmt.Errorf("duplicate entry id %q", id)
		}
		seen[id] = true
		for _, f := range requiredFields {
			if _, ok := e[f]; ok {
				present++
			}
		}
		if exs, ok := e["examples"].([]any); ok {
			exampleCount += len(exs)
		}
	}

	completeness := 0.0
	if len(entries) > 0 {
		completeness = float64(present) / float64(len(entries)*len(requiredFields))
	}
	if completeness < 0.9 {
		return nil, fmt.Errorf("field completeness %.3f below 0.9", completeness)
	}

	return &CheckReport{
		EntryCount:        len(entries),
		ExampleCount:      exampleCount,
		FieldCompleteness: completeness,
	}, nil
}
