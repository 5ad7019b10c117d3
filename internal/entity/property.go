package entity

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Property is one typed value destined for a page property.
// Options is used by multi_select; every other kind uses Text.
type Property struct {
	Kind    PropertyKind
	Text    string
	Options []string
}

// PropertySet is the payload of one create-page call, keyed by property name.
type PropertySet map[string]Property

func TitleProperty(s string) Property    { return Property{Kind: KindTitle, Text: s} }
func RichTextProperty(s string) Property { return Property{Kind: KindRichText, Text: s} }
func SelectProperty(s string) Property   { return Property{Kind: KindSelect, Text: s} }
func EmailProperty(s string) Property    { return Property{Kind: KindEmail, Text: s} }
func PhoneProperty(s string) Property    { return Property{Kind: KindPhone, Text: s} }

func MultiSelectProperty(opts ...string) Property {
	return Property{Kind: KindMultiSelect, Options: opts}
}

// Names returns the property names, sorted.
func (ps PropertySet) Names() []string {
	names := make([]string, 0, len(ps))
	for n := range ps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Text textContent `json:"text"`
}

type namedOption struct {
	Name string `json:"name"`
}

// MarshalJSON renders the property in the Notion page-property wire shape,
// e.g. {"title":[{"text":{"content":"..."}}]}.
func (p Property) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindTitle, KindRichText:
		return json.Marshal(map[string]any{string(p.Kind): []richText{{Text: textContent{Content: p.Text}}}})
	case KindSelect:
		return json.Marshal(map[string]any{"select": namedOption{Name: p.Text}})
	case KindMultiSelect:
		opts := make([]namedOption, 0, len(p.Options))
		for _, o := range p.Options {
			opts = append(opts, namedOption{Name: o})
		}
		return json.Marshal(map[string]any{"multi_select": opts})
	case KindEmail, KindPhone:
		return json.Marshal(map[string]any{string(p.Kind): p.Text})
	default:
		return nil, fmt.Errorf("unsupported property kind %q", p.Kind)
	}
}
