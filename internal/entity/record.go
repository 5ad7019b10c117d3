package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawRecord is one parsed résumé prior to destination-schema adaptation.
// Values come straight from JSON/YAML decoding and may be any scalar or nil.
type RawRecord map[string]any

// Value returns the string form of the first present key. Nil, empty and
// whitespace-only values count as absent.
func (r RawRecord) Value(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s := stringify(v)
		if strings.TrimSpace(s) == "" {
			continue
		}
		return s, true
	}
	return "", false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	case fmt.Stringer:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
