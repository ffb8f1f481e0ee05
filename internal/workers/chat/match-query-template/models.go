package matchquerytemplate

import (
	"obcms-chat-workers/internal/chat/catalogindex"
	"obcms-chat-workers/internal/chat/entity"
)

type Input struct {
	Query    string     `json:"query"`
	Entities entity.Set `json:"entities,omitempty"`
	Intent   string     `json:"intent,omitempty"`
	Category string     `json:"category,omitempty"`
}

type Output struct {
	TemplateID      string             `json:"templateId"`
	Category        string             `json:"category"`
	ResultType      string             `json:"resultType"`
	GeneratedQuery  string             `json:"generatedQuery"`
	Score           float64            `json:"score"`
	Entities        entity.Set         `json:"entities,omitempty"`
	MissingEntities []string           `json:"missingEntities"`
	Hints           []catalogindex.Hit `json:"hints,omitempty"`
}

const inputSchema = `{
  "type": "object",
  "required": ["query"],
  "properties": {
    "query":    {"type": "string", "minLength": 1, "maxLength": 2000},
    "entities": {"type": ["object", "null"]},
    "intent":   {"type": "string"},
    "category": {"type": "string"}
  }
}`
