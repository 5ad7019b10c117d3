package mapper

import (
	"strings"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// fieldRule maps one résumé field onto a destination property.
type fieldRule struct {
	target string
	keys   []string
	// accepts lists the schema kinds the property may be written as.
	// Empty means the rule is applied regardless of the schema.
	accepts []entity.PropertyKind
	build   func(value string, kind entity.PropertyKind) (entity.Property, bool)
}

// fieldRules is evaluated in order for every record.
var fieldRules = []fieldRule{
	{
		target: constants.FieldName,
		keys:   constants.LookupKeys(constants.FieldName),
		build:  func(v string, _ entity.PropertyKind) (entity.Property, bool) { return entity.TitleProperty(v), true },
	},
	{
		target: constants.FieldEmail,
		keys:   constants.LookupKeys(constants.FieldEmail),
		build:  func(v string, _ entity.PropertyKind) (entity.Property, bool) { return entity.EmailProperty(v), true },
	},
	{
		target: constants.FieldPhone,
		keys:   constants.LookupKeys(constants.FieldPhone),
		build:  buildPhone,
	},
	selectRule(constants.FieldAge),
	selectRule(constants.FieldGender),
	richTextRule(constants.FieldExperience),
	richTextRule(constants.FieldEducation),
	richTextRule(constants.FieldEmployer),
	richTextRule(constants.FieldRole),
	richTextRule(constants.FieldSkills),
	{
		target:  constants.FieldPosition,
		keys:    constants.LookupKeys(constants.FieldPosition),
		accepts: []entity.PropertyKind{entity.KindRichText, entity.KindMultiSelect},
		build: func(v string, kind entity.PropertyKind) (entity.Property, bool) {
			if kind == entity.KindMultiSelect {
				opts := SplitOptions(v)
				return entity.MultiSelectProperty(opts...), len(opts) > 0
			}
			return entity.RichTextProperty(v), true
		},
	},
}

func selectRule(field string) fieldRule {
	return fieldRule{
		target:  field,
		keys:    constants.LookupKeys(field),
		accepts: []entity.PropertyKind{entity.KindSelect},
		build:   func(v string, _ entity.PropertyKind) (entity.Property, bool) { return entity.SelectProperty(v), true },
	}
}

func richTextRule(field string) fieldRule {
	return fieldRule{
		target:  field,
		keys:    constants.LookupKeys(field),
		accepts: []entity.PropertyKind{entity.KindRichText},
		build:   func(v string, _ entity.PropertyKind) (entity.Property, bool) { return entity.RichTextProperty(v), true },
	}
}

// buildPhone writes the normalized number as phone_number unless the
// destination declares the column as rich_text.
func buildPhone(v string, kind entity.PropertyKind) (entity.Property, bool) {
	phone := FormatPhone(v)
	if kind == entity.KindRichText {
		return entity.RichTextProperty(phone), true
	}
	return entity.PhoneProperty(phone), true
}

// SplitOptions splits a comma-separated list, trimming segments and
// dropping empty ones.
func SplitOptions(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r fieldRule) gated() bool { return len(r.accepts) > 0 }

func (r fieldRule) accepted(kind entity.PropertyKind) bool {
	for _, k := range r.accepts {
		if k == kind {
			return true
		}
	}
	return false
}
