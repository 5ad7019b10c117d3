package notion

import (
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// SchemaFromConfigs flattens Notion property configs to name → kind.
// Kind strings are Notion's own type names, so unsupported kinds pass through
// and simply never match a mapping rule.
func SchemaFromConfigs(configs notionapi.PropertyConfigs) map[string]entity.PropertyKind {
	out := make(map[string]entity.PropertyKind, len(configs))
	for name, cfg := range configs {
		if cfg == nil {
			continue
		}
		out[name] = entity.PropertyKind(cfg.GetType())
	}
	return out
}

// ToProperties converts a PropertySet to the notionapi request shape.
func ToProperties(props entity.PropertySet) (notionapi.Properties, error) {
	out := make(notionapi.Properties, len(props))
	for name, p := range props {
		switch p.Kind {
		case entity.KindTitle:
			out[name] = notionapi.TitleProperty{Title: richText(p.Text)}
		case entity.KindRichText:
			out[name] = notionapi.RichTextProperty{RichText: richText(p.Text)}
		case entity.KindSelect:
			out[name] = notionapi.SelectProperty{Select: notionapi.Option{Name: p.Text}}
		case entity.KindMultiSelect:
			opts := make([]notionapi.Option, 0, len(p.Options))
			for _, o := range p.Options {
				opts = append(opts, notionapi.Option{Name: o})
			}
			out[name] = notionapi.MultiSelectProperty{MultiSelect: opts}
		case entity.KindEmail:
			out[name] = notionapi.EmailProperty{Email: p.Text}
		case entity.KindPhone:
			out[name] = notionapi.PhoneNumberProperty{PhoneNumber: p.Text}
		default:
			return nil, fmt.Errorf("property %q: unsupported kind %q", name, p.Kind)
		}
	}
	return out, nil
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}
}
