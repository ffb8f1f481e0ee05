package executechatquery

import "obcms-chat-workers/internal/chat/executor"

type Input struct {
	GeneratedQuery string `json:"generatedQuery"`
	TemplateID     string `json:"templateId,omitempty"`
}

type Output struct {
	Success    bool               `json:"success"`
	Result     interface{}        `json:"result"`
	QueryInfo  executor.QueryInfo `json:"queryInfo"`
	TemplateID string             `json:"templateId,omitempty"`
}
