package matcher

import (
	"sort"
	"strings"

	"obcms-chat-workers/internal/chat/templates"
)

type Suggestion struct {
	TemplateID  string `json:"templateId"`
	Category    string `json:"category"`
	Example     string `json:"example"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority"`
}

// GetTemplateSuggestions offers template examples that start with partial.
// At most max templates are collected, in registry order, and then ordered by
// priority. A non-positive max uses the matcher default.
func (m *Matcher) GetTemplateSuggestions(partial, category string, max int) []Suggestion {
	if max <= 0 {
		max = m.maxSuggestions
	}
	prefix := strings.ToLower(partial)

	var pool []*templates.QueryTemplate
	if category != "" {
		pool = m.catalog.GetTemplatesByCategory(category)
	} else {
		pool = m.catalog.GetAllTemplates()
	}

	out := make([]Suggestion, 0, max)
	for _, t := range pool {
		if len(out) >= max {
			break
		}
		for _, ex := range t.Examples {
			if !strings.HasPrefix(strings.ToLower(ex), prefix) {
				continue
			}
			out = append(out, Suggestion{
				TemplateID:  t.ID,
				Category:    t.Category,
				Example:     ex,
				Description: t.Description,
				Priority:    t.Priority,
			})
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}
