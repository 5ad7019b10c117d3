// Package mapper adapts loosely typed résumé records to the property types a
// destination database actually declares.
package mapper

import (
	"log/slog"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// Mapper builds page property sets from raw records.
type Mapper struct {
	logger *slog.Logger
	rules  []fieldRule
}

func New(logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{logger: logger, rules: fieldRules}
}

// DisplayName returns the record's name, if it has a usable one.
func DisplayName(rec entity.RawRecord) (string, bool) {
	return rec.Value(constants.LookupKeys(constants.FieldName)...)
}

// Build maps rec onto schema. It fails only when the record has no name;
// fields the schema cannot hold are left out.
func (m *Mapper) Build(rec entity.RawRecord, schema entity.DestinationSchema) (entity.PropertySet, error) {
	if _, ok := DisplayName(rec); !ok {
		return nil, common.ValidationError{Field: constants.FieldName, Message: "missing name"}
	}

	props := make(entity.PropertySet, len(m.rules))
	var skipped []string
	for _, rule := range m.rules {
		value, ok := rec.Value(rule.keys...)
		if !ok {
			continue
		}
		kind, _ := schema.Kind(rule.target)
		if rule.gated() && !rule.accepted(kind) {
			skipped = append(skipped, rule.target)
			continue
		}
		if p, ok := rule.build(value, kind); ok {
			props[rule.target] = p
		}
	}

	if len(skipped) > 0 {
		m.logger.Debug("mapper.build.skipped_fields", "fields", skipped)
	}
	return props, nil
}
