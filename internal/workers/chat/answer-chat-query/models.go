package answerchatquery

import (
	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
)

type Input struct {
	Query    string     `json:"query"`
	Entities entity.Set `json:"entities,omitempty"`
	Intent   string     `json:"intent,omitempty"`
	Category string     `json:"category,omitempty"`
	Execute  *bool      `json:"execute,omitempty"`
}

// Output flattens the pipeline response into process variables. Matched is
// false when no template fit the question; the process decides what to do
// with that.
type Output struct {
	RequestID       string           `json:"requestId"`
	Matched         bool             `json:"matched"`
	TemplateID      string           `json:"templateId,omitempty"`
	Category        string           `json:"category,omitempty"`
	ResultType      string           `json:"resultType,omitempty"`
	GeneratedQuery  string           `json:"generatedQuery,omitempty"`
	Score           float64          `json:"score"`
	Entities        entity.Set       `json:"entities"`
	EntitySummary   string           `json:"entitySummary"`
	Warnings        []string         `json:"warnings,omitempty"`
	MissingEntities []string         `json:"missingEntities,omitempty"`
	Error           string           `json:"error,omitempty"`
	Execution       *executor.Result `json:"execution,omitempty"`
	DurationMs      int64            `json:"durationMs"`
}

const inputSchema = `{
  "type": "object",
  "required": ["query"],
  "properties": {
    "query":    {"type": "string", "minLength": 1, "maxLength": 2000},
    "entities": {"type": ["object", "null"]},
    "intent":   {"type": "string"},
    "category": {"type": "string"},
    "execute":  {"type": "boolean"}
  }
}`
