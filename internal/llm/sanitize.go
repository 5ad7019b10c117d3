package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// NormalizeAndSanitizeJSON
// - Strips a markdown code fence around the object
// - Renames legacy keys to the current field names
// - Drops null/empty values
// - Coerces numbers and booleans to strings
// - Removes unknown keys (additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dec := json.NewDecoder(bytes.NewReader(stripFence(raw)))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)
	for _, f := range constants.ResumeFields {
		for _, alias := range constants.LookupKeys(f) {
			if alias == f {
				continue
			}
			if v, ok := m[alias]; ok {
				if _, exists := m[f]; !exists {
					m[f] = v
				}
				delete(m, alias)
				dropped = append(dropped, alias+"->"+f)
			}
		}
	}

	for k, v := range maps.Clone(m) {
		if !constants.IsResumeField(k) {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case json.Number:
			m[k] = t.String()
		case bool:
			m[k] = fmt.Sprintf("%t", t)
		case []any:
			// models sometimes return lists for comma-separated fields
			parts := make([]string, 0, len(t))
			for _, item := range t {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					parts = append(parts, strings.TrimSpace(s))
				}
			}
			if len(parts) == 0 {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = strings.Join(parts, ", ")
			}
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// ParseExtraction turns model output into a record: sanitize, validate
// against ResumeJSONSchema, decode. Failures are extraction errors.
func ParseExtraction(content []byte, logger *slog.Logger) (entity.RawRecord, []byte, error) {
	cleaned, _, err := NormalizeAndSanitizeJSON(content, logger)
	if err != nil {
		return nil, content, common.NewExtractionError("model returned malformed JSON", err)
	}
	if err := ValidateJSONAgainstSchema(ResumeJSONSchema(), cleaned); err != nil {
		return nil, cleaned, common.NewExtractionError("schema validation failed", err)
	}

	var rec entity.RawRecord
	if err := json.Unmarshal(cleaned, &rec); err != nil {
		return nil, cleaned, common.NewExtractionError("unmarshal record", err)
	}
	return rec, cleaned, nil
}

func stripFence(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = bytes.TrimPrefix(s, []byte("```"))
	if i := bytes.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = bytes.TrimSuffix(bytes.TrimSpace(s), []byte("```"))
	return bytes.TrimSpace(s)
}
