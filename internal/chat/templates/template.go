// Package templates holds the query template type and the read-only registry
// the matcher searches.
package templates

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"obcms-chat-workers/internal/chat/entity"

	"github.com/go-playground/validator/v10"
)

type ResultType string

const (
	ResultCount     ResultType = "count"
	ResultList      ResultType = "list"
	ResultAggregate ResultType = "aggregate"
)

const (
	DefaultIntent   = "data_query"
	DefaultPriority = 5
)

var ErrInvalidTemplate = errors.New("INVALID_TEMPLATE")

// DefaultCaptures promotes a "rating" capture group when a template declares
// no capture table of its own.
var DefaultCaptures = map[string]string{"rating": entity.KeyRating}

// Definition is the uncompiled form of a template as written in the catalog or
// a YAML pack.
type Definition struct {
	ID               string            `yaml:"id" json:"id" validate:"required"`
	Category         string            `yaml:"category" json:"category" validate:"required"`
	Pattern          string            `yaml:"pattern" json:"pattern" validate:"required"`
	QueryTemplate    string            `yaml:"query_template" json:"query_template" validate:"required"`
	RequiredEntities []string          `yaml:"required_entities" json:"required_entities" validate:"dive,required"`
	OptionalEntities []string          `yaml:"optional_entities" json:"optional_entities" validate:"dive,required"`
	Priority         int               `yaml:"priority" json:"priority" validate:"min=1,max=10"`
	ResultType       ResultType        `yaml:"result_type" json:"result_type" validate:"required,oneof=count list aggregate"`
	Examples         []string          `yaml:"examples" json:"examples" validate:"min=1,dive,required"`
	Description      string            `yaml:"description" json:"description"`
	Tags             []string          `yaml:"tags" json:"tags"`
	Intent           string            `yaml:"intent" json:"intent"`
	CaptureEntities  map[string]string `yaml:"capture_entities" json:"capture_entities" validate:"dive,keys,required,endkeys,required"`
}

// QueryTemplate is a compiled, immutable template.
type QueryTemplate struct {
	ID               string
	Category         string
	Pattern          *regexp.Regexp
	QueryTemplate    string
	RequiredEntities []string
	OptionalEntities []string
	Priority         int
	ResultType       ResultType
	Examples         []string
	Description      string
	Tags             []string
	Intent           string
	CaptureEntities  map[string]string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Compile validates d and compiles its pattern case-insensitively. Every
// example must match the compiled pattern.
func Compile(d Definition) (*QueryTemplate, error) {
	if d.Priority == 0 {
		d.Priority = DefaultPriority
	}
	if d.Intent == "" {
		d.Intent = DefaultIntent
	}

	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidTemplate, templateName(d), describeValidation(err))
	}

	pattern, err := regexp.Compile("(?i)" + d.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: pattern: %v", ErrInvalidTemplate, d.ID, err)
	}

	for _, ex := range d.Examples {
		if !pattern.MatchString(ex) {
			return nil, fmt.Errorf("%w: %s: example %q does not match its pattern", ErrInvalidTemplate, d.ID, ex)
		}
	}

	for group := range d.CaptureEntities {
		if pattern.SubexpIndex(group) < 0 {
			return nil, fmt.Errorf("%w: %s: capture group %q not in pattern", ErrInvalidTemplate, d.ID, group)
		}
	}

	return &QueryTemplate{
		ID:               d.ID,
		Category:         d.Category,
		Pattern:          pattern,
		QueryTemplate:    d.QueryTemplate,
		RequiredEntities: cloneStrings(d.RequiredEntities),
		OptionalEntities: cloneStrings(d.OptionalEntities),
		Priority:         d.Priority,
		ResultType:       d.ResultType,
		Examples:         cloneStrings(d.Examples),
		Description:      d.Description,
		Tags:             cloneStrings(d.Tags),
		Intent:           d.Intent,
		CaptureEntities:  cloneCaptures(d.CaptureEntities),
	}, nil
}

func templateName(d Definition) string {
	if d.ID == "" {
		return "<unnamed>"
	}
	return d.ID
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneCaptures(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Match holds the span and named groups of a pattern match.
type Match struct {
	Text   string
	Start  int
	End    int
	Groups map[string]string
}

// Group returns the trimmed text captured by name, or "".
func (m *Match) Group(name string) string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.Groups[name])
}

// Captures maps capture group names to entity keys. Templates that declare
// none use DefaultCaptures.
func (t *QueryTemplate) Captures() map[string]string {
	if len(t.CaptureEntities) == 0 {
		return DefaultCaptures
	}
	return t.CaptureEntities
}

func (t *QueryTemplate) Matches(query string) bool {
	return t.Pattern.MatchString(query)
}

// FindMatch returns nil when the pattern does not match query.
func (t *QueryTemplate) FindMatch(query string) *Match {
	loc := t.Pattern.FindStringSubmatchIndex(query)
	if loc == nil {
		return nil
	}

	m := &Match{Text: query[loc[0]:loc[1]], Start: loc[0], End: loc[1], Groups: map[string]string{}}
	for i, name := range t.Pattern.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		m.Groups[name] = query[loc[2*i]:loc[2*i+1]]
	}
	return m
}

// MissingEntities lists required entities that are absent or empty, in
// declaration order.
func (t *QueryTemplate) MissingEntities(entities entity.Set) []string {
	var missing []string
	for _, key := range t.RequiredEntities {
		if !entities.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// ScoreMatch rates how well t fits query and entities in [0,1]. A match is worth
// 0.3, the matched share of the query up to 0.1, priority up to 0.3 and entity
// completeness up to 0.3.
func (t *QueryTemplate) ScoreMatch(query string, entities entity.Set) float64 {
	m := t.FindMatch(query)
	if m == nil {
		return 0
	}

	score := 0.3

	if n := len(strings.TrimSpace(query)); n > 0 {
		score += 0.1 * clamp(float64(m.End-m.Start)/float64(n))
	}

	score += 0.3 * float64(t.Priority) / 10

	declared := len(t.RequiredEntities) + len(t.OptionalEntities)
	if declared == 0 {
		score += 0.3
	} else {
		present := 0
		for _, key := range t.RequiredEntities {
			if entities.Has(key) {
				present++
			}
		}
		for _, key := range t.OptionalEntities {
			if entities.Has(key) {
				present++
			}
		}
		score += 0.3 * float64(present) / float64(declared)
	}

	return clamp(score)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func (t *QueryTemplate) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}
