package students

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var documentSchema string

// Document is the on-disk representation of a student population.
type Document struct {
	Items []*Record `json:"items"`
}

// FileSource reads students from a JSON document on disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a source backed by the given file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: strings.TrimSpace(path)}
}

func (s *FileSource) List(_ context.Context) ([]*Record, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("students file is not configured")
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading students file %q: %w", s.Path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("students file %q: %w", s.Path, err)
	}

	if len(doc.Items) == 0 {
		return nil, ErrNoRecords
	}

	return doc.Items, nil
}

// ParseDocument validates raw JSON against the students schema and decodes it.
// A bare array of records is accepted as well as {"items": [...]}.
func ParseDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Document{}, nil
	}

	if trimmed[0] == '[' {
		wrapped := make([]byte, 0, len(trimmed)+11)
		wrapped = append(wrapped, `{"items":`...)
		wrapped = append(wrapped, trimmed...)
		wrapped = append(wrapped, '}')
		trimmed = wrapped
	}

	if err := validateDocument(trimmed); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}

	items := doc.Items[:0]
	for _, r := range doc.Items {
		if r != nil {
			items = append(items, r)
		}
	}
	doc.Items = items

	return &doc, nil
}

func validateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate students: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}

	return fmt.Errorf("students document is invalid: %s", strings.Join(problems, "; "))
}

// WriteFile dumps records to path as an indented students document.
func WriteFile(path string, records []*Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(&Document{Items: records})
}
