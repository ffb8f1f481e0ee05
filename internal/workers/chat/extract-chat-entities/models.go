package extractchatentities

import "obcms-chat-workers/internal/chat/entity"

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	Entities    entity.Set `json:"entities"`
	EntityKeys  []string   `json:"entityKeys"`
	Summary     string     `json:"summary"`
	Warnings    []string   `json:"warnings,omitempty"`
	EntityCount int        `json:"entityCount"`
}
