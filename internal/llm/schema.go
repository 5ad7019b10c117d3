package llm

import (
	"encoding/json"

	"github.com/joseph-ayodele/resumes-tracker/constants"
)

// ResumeJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Every field is a string; only the name is required.
// We pass this to the model as a structured output constraint and also use it locally to validate.
func ResumeJSONSchema() map[string]any {
	props := make(map[string]any, len(constants.ResumeFields))
	for _, f := range constants.ResumeFields {
		props[f] = map[string]any{"type": "string"}
	}
	props[constants.FieldName] = map[string]any{"type": "string", "minLength": 1}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{constants.FieldName},
	}
}

// SchemaPrompt renders the output schema as the text block every provider sends.
func SchemaPrompt() string {
	b, _ := json.MarshalIndent(ResumeJSONSchema(), "", "  ")
	return "JSON Schema:\n" + string(b)
}
