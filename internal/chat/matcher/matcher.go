// Package matcher selects the best query template for a chat question and
// renders its query string.
package matcher

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/placeholder"
	"obcms-chat-workers/internal/chat/templates"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/metrics"
	"obcms-chat-workers/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultMinPriority    = 1
	DefaultMaxSuggestions = 5

	errNoMatch = "No matching templates found"
)

// MatchResult is a candidate template with its score and the match that
// produced it.
type MatchResult struct {
	Template *templates.QueryTemplate
	Score    float64
	Match    *templates.Match
}

type Validation struct {
	IsValid         bool
	Error           string
	MissingEntities []string
}

// GenerationResult is the outcome of MatchAndGenerate. Template and Score are
// kept on validation failures.
type GenerationResult struct {
	Success         bool                     `json:"success"`
	Template        *templates.QueryTemplate `json:"-"`
	TemplateID      string                   `json:"templateId,omitempty"`
	Category        string                   `json:"category,omitempty"`
	ResultType      templates.ResultType     `json:"resultType,omitempty"`
	Query           string                   `json:"query,omitempty"`
	Score           float64                  `json:"score"`
	Error           string                   `json:"error,omitempty"`
	MissingEntities []string                 `json:"missingEntities"`
	Entities        entity.Set               `json:"entities,omitempty"`
}

type Option func(*Matcher)

func WithMinPriority(p int) Option {
	return func(m *Matcher) {
		if p > 0 {
			m.minPriority = p
		}
	}
}

func WithMaxSuggestions(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.maxSuggestions = n
		}
	}
}

// WithObservability traces MatchAndGenerate through o.
func WithObservability(o *observability.Observability) Option {
	return func(m *Matcher) { m.obs = o }
}

type Matcher struct {
	catalog        templates.Catalog
	logger         logger.Logger
	obs            *observability.Observability
	minPriority    int
	maxSuggestions int
}

func New(catalog templates.Catalog, log logger.Logger, opts ...Option) *Matcher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	m := &Matcher{
		catalog:        catalog,
		logger:         log.WithFields(map[string]interface{}{"component": "matcher"}),
		minPriority:    DefaultMinPriority,
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindMatchingTemplates returns the templates whose pattern matches query, in
// registry order. Entities and intent do not filter candidates.
func (m *Matcher) FindMatchingTemplates(query string, entities entity.Set, intent, category string) []*templates.QueryTemplate {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	candidates := m.catalog.SearchTemplates(query, category, m.minPriority)
	out := make([]*templates.QueryTemplate, 0, len(candidates))
	for _, t := range candidates {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}

// RankTemplates scores every candidate and orders them best first. Equal scores
// keep candidate order.
func (m *Matcher) RankTemplates(candidates []*templates.QueryTemplate, query string, entities entity.Set) []MatchResult {
	results := make([]MatchResult, 0, len(candidates))
	for _, t := range candidates {
		match := t.FindMatch(query)
		if match == nil {
			continue
		}
		results = append(results, MatchResult{
			Template: t,
			Score:    t.ScoreMatch(query, entities),
			Match:    match,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// PromoteCaptures returns a copy of entities extended with the values captured
// by the template's capture groups. Keys that already hold a value are kept.
// The input set is never modified.
func PromoteCaptures(best MatchResult, entities entity.Set) entity.Set {
	working := entities.Clone()
	if best.Template == nil || best.Match == nil {
		return working
	}

	for group, key := range best.Template.Captures() {
		captured := strings.ToLower(best.Match.Group(group))
		if captured == "" || working.Has(key) {
			continue
		}
		working[key] = entity.Value{Key: key, Value: captured, Confidence: 1}
	}
	return working
}

func (m *Matcher) ValidateTemplate(t *templates.QueryTemplate, entities entity.Set) Validation {
	missing := t.MissingEntities(entities)
	if len(missing) > 0 {
		return Validation{
			IsValid:         false,
			Error:           "Missing required entities: " + strings.Join(missing, ", "),
			MissingEntities: missing,
		}
	}
	return Validation{IsValid: true, MissingEntities: []string{}}
}

func (m *Matcher) SubstituteEntities(tmpl string, entities entity.Set) string {
	return placeholder.Substitute(tmpl, entities)
}

func (m *Matcher) GenerateQuery(t *templates.QueryTemplate, entities entity.Set) string {
	return m.SubstituteEntities(t.QueryTemplate, entities)
}

// MatchAndGenerate runs the whole matching pipeline for query. It never panics:
// unexpected failures come back as an "Internal error" result.
func (m *Matcher) MatchAndGenerate(ctx context.Context, query string, entities entity.Set, intent, category string) (result GenerationResult) {
	start := time.Now()
	_, span := m.obs.StartSpan(ctx, "matcher.MatchAndGenerate",
		attribute.String("chat.category", category),
		attribute.String("chat.intent", intent),
	)

	outcome := "error"
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("match and generate panicked", map[string]interface{}{
				"query": query,
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			})
			result = GenerationResult{
				Success:         false,
				Error:           fmt.Sprintf("Internal error: %v", r),
				MissingEntities: []string{},
			}
			outcome = "error"
			span.SetStatus(codes.Error, result.Error)
		}

		label := category
		if label == "" {
			label = result.Category
		}
		if label == "" {
			label = "all"
		}
		metrics.TemplateMatches.WithLabelValues(outcome, label).Inc()
		metrics.TemplateMatchDuration.Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.String("chat.outcome", outcome), attribute.String("chat.template_id", result.TemplateID))
		span.End()
	}()

	candidates := m.FindMatchingTemplates(query, entities, intent, category)
	if len(candidates) == 0 {
		outcome = "no_match"
		m.logger.Debug("no template matched", map[string]interface{}{"query": query, "category": category})
		return GenerationResult{Success: false, Error: errNoMatch, MissingEntities: []string{}}
	}

	ranked := m.RankTemplates(candidates, query, entities)
	if len(ranked) == 0 {
		outcome = "no_match"
		return GenerationResult{Success: false, Error: errNoMatch, MissingEntities: []string{}}
	}
	best := ranked[0]
	working := PromoteCaptures(best, entities)

	result = GenerationResult{
		Template:   best.Template,
		TemplateID: best.Template.ID,
		Category:   best.Template.Category,
		ResultType: best.Template.ResultType,
		Score:      best.Score,
		Entities:   working,
	}

	v := m.ValidateTemplate(best.Template, working)
	if !v.IsValid {
		outcome = "invalid"
		result.Error = v.Error
		result.MissingEntities = v.MissingEntities
		m.logger.Debug("template matched with missing entities", map[string]interface{}{
			"templateId": best.Template.ID,
			"missing":    v.MissingEntities,
		})
		return result
	}

	result.Success = true
	result.Query = m.GenerateQuery(best.Template, working)
	result.MissingEntities = []string{}
	outcome = "matched"

	m.logger.Debug("template matched", map[string]interface{}{
		"templateId": best.Template.ID,
		"score":      best.Score,
		"candidates": len(candidates),
	})
	return result
}
