package suggestquerytemplates

import "obcms-chat-workers/internal/chat/matcher"

type Input struct {
	Partial        string `json:"partial"`
	Category       string `json:"category,omitempty"`
	MaxSuggestions int    `json:"maxSuggestions,omitempty"`
}

type Output struct {
	Suggestions []matcher.Suggestion `json:"suggestions"`
	Count       int                  `json:"count"`
}

const inputSchema = `{
  "type": "object",
  "required": ["partial"],
  "properties": {
    "partial":        {"type": "string", "maxLength": 500},
    "category":       {"type": "string"},
    "maxSuggestions": {"type": "integer", "minimum": 1, "maximum": 50}
  }
}`
