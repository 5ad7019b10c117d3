// Package records decodes caller-supplied résumé records from JSON or YAML.
// Input is either a single object or a list of objects.
package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a decoder by file extension. Unknown extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes a records file.
func LoadFile(path string) ([]entity.RawRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "read records file")
	}
	return Decode(b, FormatFromPath(path))
}

// Read decodes records from r.
func Read(r io.Reader, format Format) ([]entity.RawRecord, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, common.WrapError(err, "read records")
	}
	return Decode(b, format)
}

// Decode turns one object or a list of objects into records.
// JSON numbers keep their literal spelling.
func Decode(data []byte, format Format) ([]entity.RawRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("no records: %w", common.ErrInvalidInput)
	}

	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %v: %w", err, common.ErrInvalidInput)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %v: %w", err, common.ErrInvalidInput)
		}
	}
	return fromDocument(doc)
}

func fromDocument(doc any) ([]entity.RawRecord, error) {
	switch t := doc.(type) {
	case []any:
		out := make([]entity.RawRecord, 0, len(t))
		for i, item := range t {
			rec, ok := toRecord(item)
			if !ok {
				return nil, fmt.Errorf("record #%d is not an object: %w", i+1, common.ErrInvalidInput)
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		rec, ok := toRecord(t)
		if !ok {
			return nil, fmt.Errorf("expected an object or a list of objects: %w", common.ErrInvalidInput)
		}
		return []entity.RawRecord{rec}, nil
	}
}

func toRecord(v any) (entity.RawRecord, bool) {
	switch m := v.(type) {
	case map[string]any:
		return entity.RawRecord(m), true
	case map[any]any:
		rec := make(entity.RawRecord, len(m))
		for k, val := range m {
			rec[fmt.Sprint(k)] = val
		}
		return rec, true
	default:
		return nil, false
	}
}
