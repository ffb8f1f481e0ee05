// Package pipeline answers a chat question end to end: extract entities, pick
// and fill a template, then optionally run the generated query.
package pipeline

import (
	"context"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/common/logger"

	"github.com/google/uuid"
)

type Request struct {
	Query    string     `json:"query"`
	Entities entity.Set `json:"entities,omitempty"`
	Intent   string     `json:"intent,omitempty"`
	Category string     `json:"category,omitempty"`
	Execute  bool       `json:"execute"`
}

type Response struct {
	RequestID  string                   `json:"requestId"`
	Query      string                   `json:"query"`
	Entities   entity.Set               `json:"entities"`
	Summary    string                   `json:"summary"`
	Warnings   []string                 `json:"warnings,omitempty"`
	Generation matcher.GenerationResult `json:"generation"`
	Execution  *executor.Result         `json:"execution,omitempty"`
	DurationMs int64                    `json:"durationMs"`
}

// Service wires the extractor, matcher and executor together. The executor is
// optional; without one Answer only generates queries.
type Service struct {
	extractor *entity.Extractor
	matcher   *matcher.Matcher
	executor  *executor.Executor
	logger    logger.Logger
	newID     func() string
}

func New(ext *entity.Extractor, m *matcher.Matcher, exec *executor.Executor, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if ext == nil {
		ext = entity.NewExtractor()
	}
	return &Service{
		extractor: ext,
		matcher:   m,
		executor:  exec,
		logger:    log.WithFields(map[string]interface{}{"component": "pipeline"}),
		newID:     func() string { return uuid.New().String() },
	}
}

// Answer runs the pipeline for req. Entities supplied by the caller replace
// extracted entities under the same key.
func (s *Service) Answer(ctx context.Context, req Request) Response {
	start := time.Now()
	resp := Response{RequestID: s.newID(), Query: req.Query}

	entities := s.Entities(ctx, req.Query, req.Entities)
	resp.Entities = entities
	resp.Summary = entity.Summary(entities)
	resp.Warnings = entity.Validate(entities)

	resp.Generation = s.matcher.MatchAndGenerate(ctx, req.Query, entities, req.Intent, req.Category)
	if resp.Generation.Entities != nil {
		resp.Entities = resp.Generation.Entities
	}

	if req.Execute && resp.Generation.Success && s.executor != nil {
		res := s.executor.Execute(ctx, resp.Generation.Query)
		resp.Execution = &res
	}

	resp.DurationMs = time.Since(start).Milliseconds()
	fields := map[string]interface{}{
		"requestId":  resp.RequestID,
		"templateId": resp.Generation.TemplateID,
		"matched":    resp.Generation.Success,
		"durationMs": resp.DurationMs,
	}
	if resp.Execution != nil {
		fields["executed"] = resp.Execution.Success
	}
	s.logger.Info("chat query answered", fields)
	return resp
}

// Entities extracts entities from text and overlays the caller's.
func (s *Service) Entities(ctx context.Context, text string, supplied entity.Set) entity.Set {
	merged := s.extractor.Extract(ctx, text)
	for k, v := range supplied {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	return merged
}
