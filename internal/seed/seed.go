package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/zaim-abbasi/to-do-application/internal/tasklist"
	"github.com/zaim-abbasi/to-do-application/internal/utils"
)

// SchemaVersion is the seed file format version this build understands.
const SchemaVersion = 1

// seedSchema is the bundled JSON Schema for seed files. A copy can be
// exported with BundledSchema for external tooling.
const seedSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Todo Seed File",
  "description": "Schema for read-only task fixtures loaded at startup",
  "type": "object",
  "required": ["schema_version", "tasks"],
  "additionalProperties": false,
  "properties": {
    "schema_version": {
      "type": "integer",
      "const": 1,
      "description": "Seed file format version"
    },
    "tasks": {
      "type": "array",
      "description": "Task records applied in order",
      "items": {
        "type": "object",
        "required": ["text"],
        "additionalProperties": false,
        "properties": {
          "text": {
            "type": "string",
            "minLength": 1,
            "description": "Task text, must not be empty"
          },
          "priority": {
            "type": "string",
            "enum": ["low", "medium", "high"],
            "description": "Task priority, defaults to medium when omitted"
          },
          "category": {
            "type": "string",
            "description": "Free-form category label"
          },
          "due_date": {
            "type": "string",
            "format": "date",
            "description": "Due date in YYYY-MM-DD form"
          },
          "notes": {
            "type": "string",
            "description": "Optional free-form notes"
          },
          "tags": {
            "type": "array",
            "items": {"type": "string", "minLength": 1},
            "description": "Tag labels"
          },
          "completed": {
            "type": "boolean",
            "description": "Whether the task starts completed"
          }
        }
      }
    }
  }
}`

// BundledSchema returns the JSON Schema that ships with the binary.
func BundledSchema() string {
	return seedSchema
}

// Record is one task entry in a seed file. Records carry no id; ids are
// assigned when the record is applied to a list.
type Record struct {
	Text      string   `json:"text"`
	Priority  string   `json:"priority,omitempty"`
	Category  string   `json:"category,omitempty"`
	DueDate   string   `json:"due_date,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Completed bool     `json:"completed,omitempty"`
}

// File is a parsed seed document.
type File struct {
	SchemaVersion int      `json:"schema_version"`
	Tasks         []Record `json:"tasks"`

	// raw holds the original document so schema validation sees fields
	// the struct decoding would drop.
	raw []byte
}

// Load reads and parses a seed file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document from raw JSON.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	f.raw = data
	return &f, nil
}

// ValidationError describes a single problem found in a seed document.
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationResult is the outcome of validating a seed document.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []string
	// UsedSchema names the schema that ran: "bundled", a file path, or
	// "minimal" when no schema could be compiled.
	UsedSchema string
}

// ValidationOptions controls Validate.
type ValidationOptions struct {
	// SchemaPath points at a JSON Schema file that overrides the
	// bundled schema. Empty means use the bundled one.
	SchemaPath string
}

// Validate checks a seed document against its JSON Schema. When the
// schema cannot be compiled, minimal structural checks run instead so
// obviously broken seeds are still caught.
func (f *File) Validate(opts ValidationOptions) ValidationResult {
	result := ValidationResult{Valid: true}

	doc, err := f.document()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		return result
	}

	schema, usedSchema, err := compileSchema(opts.SchemaPath)
	if err != nil {
		// Schema unavailable; fall back to minimal checks.
		result.UsedSchema = "minimal"
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("schema validation unavailable (%v); ran minimal checks only", err))
		result.Errors = validateMinimal(f)
		result.Valid = len(result.Errors) == 0
		appendContentWarnings(f, &result)
		return result
	}
	result.UsedSchema = usedSchema

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			collectSchemaErrors(ve, &result.Errors)
		} else {
			result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		}
		result.Valid = false
	}

	appendContentWarnings(f, &result)
	return result
}

// document returns the JSON value to validate, preferring the original
// bytes over a re-marshal of the struct.
func (f *File) document() (interface{}, error) {
	data := f.raw
	if data == nil {
		var err error
		data, err = json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal seed file: %w", err)
		}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return doc, nil
}

func compileSchema(schemaPath string) (*jsonschema.Schema, string, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve schema path: %w", err)
		}
		schema, err := compiler.Compile(absPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to compile schema %s: %w", schemaPath, err)
		}
		return schema, schemaPath, nil
	}

	if err := compiler.AddResource("seed.schema.json", strings.NewReader(seedSchema)); err != nil {
		return nil, "", fmt.Errorf("failed to load bundled schema: %w", err)
	}
	schema, err := compiler.Compile("seed.schema.json")
	if err != nil {
		return nil, "", fmt.Errorf("failed to compile bundled schema: %w", err)
	}
	return schema, "bundled", nil
}

// collectSchemaErrors flattens a jsonschema validation error tree into
// path/message pairs. Only leaves carry the useful messages.
func collectSchemaErrors(ve *jsonschema.ValidationError, out *[]ValidationError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, ValidationError{
			Path:    utils.JSONPointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, out)
	}
}

// validateMinimal performs structural checks without a schema.
func validateMinimal(f *File) []ValidationError {
	var errs []ValidationError
	if f.SchemaVersion != SchemaVersion {
		errs = append(errs, ValidationError{
			Path:    "schema_version",
			Message: fmt.Sprintf("must be %d, got %d", SchemaVersion, f.SchemaVersion),
		})
	}
	for i, rec := range f.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if strings.TrimSpace(rec.Text) == "" {
			errs = append(errs, ValidationError{Path: prefix + ".text", Message: "must not be empty"})
		}
		if rec.Priority != "" && !tasklist.Priority(rec.Priority).Valid() {
			errs = append(errs, ValidationError{
				Path:    prefix + ".priority",
				Message: fmt.Sprintf("unknown priority %q", rec.Priority),
			})
		}
		if rec.DueDate != "" {
			if _, err := tasklist.ParseDueDate(rec.DueDate); err != nil {
				errs = append(errs, ValidationError{Path: prefix + ".due_date", Message: err.Error()})
			}
		}
		for j, tag := range rec.Tags {
			if strings.TrimSpace(tag) == "" {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("%s.tags[%d]", prefix, j),
					Message: "must not be empty",
				})
			}
		}
	}
	return errs
}

func appendContentWarnings(f *File, result *ValidationResult) {
	if len(f.Tasks) == 0 {
		result.Warnings = append(result.Warnings, "seed file has no tasks")
	}
}

// Apply inserts the file's records into a list in order, assigning
// fresh ids through the list's own add path. Records marked completed
// are toggled after insertion. Apply stops at the first bad record and
// reports how many were applied before it.
func (f *File) Apply(l *tasklist.List) (int, error) {
	applied := 0
	for i, rec := range f.Tasks {
		pri, err := tasklist.ParsePriority(rec.Priority)
		if err != nil {
			return applied, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		due, err := tasklist.ParseDueDate(rec.DueDate)
		if err != nil {
			return applied, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		task, err := l.Add(tasklist.Draft{
			Text:     rec.Text,
			Priority: pri,
			Category: rec.Category,
			DueDate:  due,
			Notes:    rec.Notes,
			TagsRaw:  strings.Join(rec.Tags, ", "),
		})
		if err != nil {
			return applied, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		applied++
		if rec.Completed {
			l.Toggle(task.ID)
		}
	}
	return applied, nil
}

// Example returns a seed document suitable as a starting point.
func Example() string {
	return `{
  "schema_version": 1,
  "tasks": [
    {
      "text": "Review pull requests",
      "priority": "high",
      "category": "work",
      "due_date": "2025-09-01",
      "tags": ["review", "daily"]
    },
    {
      "text": "Buy groceries",
      "priority": "medium",
      "category": "errands",
      "notes": "Milk, eggs, coffee",
      "tags": ["shopping"]
    },
    {
      "text": "Water the plants",
      "priority": "low",
      "category": "home",
      "completed": true
    }
  ]
}
`
}
