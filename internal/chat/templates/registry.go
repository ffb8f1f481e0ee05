package templates

import (
	"errors"
	"fmt"
	"sort"
)

var ErrDuplicateTemplate = errors.New("DUPLICATE_TEMPLATE")

// Catalog is the read side of a template registry.
type Catalog interface {
	GetAllTemplates() []*QueryTemplate
	GetTemplateByID(id string) (*QueryTemplate, bool)
	GetTemplatesByCategory(category string) []*QueryTemplate
	SearchTemplates(query, category string, minPriority int) []*QueryTemplate
}

// Stats summarizes a registry for operators and documentation.
type Stats struct {
	Total           int            `json:"total"`
	Categories      map[string]int `json:"categories"`
	Tags            map[string]int `json:"tags"`
	AveragePriority float64        `json:"averagePriority"`
}

// Registry is built once and never modified, so concurrent readers need no
// locking.
type Registry struct {
	templates  []*QueryTemplate
	byID       map[string]*QueryTemplate
	byCategory map[string][]*QueryTemplate
	byTag      map[string][]*QueryTemplate
	categories []string
	tags       []string
}

// NewRegistry compiles and registers every definition in order. All problems
// are reported together; any problem fails the whole registry.
func NewRegistry(groups ...[]Definition) (*Registry, error) {
	r := &Registry{
		byID:       map[string]*QueryTemplate{},
		byCategory: map[string][]*QueryTemplate{},
		byTag:      map[string][]*QueryTemplate{},
	}

	var errs []error
	for _, defs := range groups {
		for _, d := range defs {
			t, err := Compile(d)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if _, dup := r.byID[t.ID]; dup {
				errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.ID))
				continue
			}
			r.add(t)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.Strings(r.categories)
	sort.Strings(r.tags)
	return r, nil
}

// MustNewRegistry panics on registration errors. For process start.
func MustNewRegistry(groups ...[]Definition) *Registry {
	r, err := NewRegistry(groups...)
	if err != nil {
		panic(fmt.Sprintf("template registry: %v", err))
	}
	return r
}

func (r *Registry) add(t *QueryTemplate) {
	r.templates = append(r.templates, t)
	r.byID[t.ID] = t

	if _, seen := r.byCategory[t.Category]; !seen {
		r.categories = append(r.categories, t.Category)
	}
	r.byCategory[t.Category] = append(r.byCategory[t.Category], t)

	for _, tag := range t.Tags {
		if _, seen := r.byTag[tag]; !seen {
			r.tags = append(r.tags, tag)
		}
		r.byTag[tag] = append(r.byTag[tag], t)
	}
}

// GetAllTemplates returns the registry's own slice in registration order.
// Callers must not modify it.
func (r *Registry) GetAllTemplates() []*QueryTemplate {
	return r.templates
}

func (r *Registry) Len() int {
	return len(r.templates)
}

func (r *Registry) GetTemplateByID(id string) (*QueryTemplate, bool) {
	t, ok := r.byID[id]
	return t, ok
}

func (r *Registry) GetTemplatesByCategory(category string) []*QueryTemplate {
	return r.byCategory[category]
}

func (r *Registry) GetTemplatesByTag(tag string) []*QueryTemplate {
	return r.byTag[tag]
}

func (r *Registry) Categories() []string {
	return r.categories
}

func (r *Registry) Tags() []string {
	return r.tags
}

// SearchTemplates returns, in registry order, the templates whose pattern
// matches query. An empty category searches everything.
func (r *Registry) SearchTemplates(query, category string, minPriority int) []*QueryTemplate {
	pool := r.templates
	if category != "" {
		pool = r.byCategory[category]
	}

	var out []*QueryTemplate
	for _, t := range pool {
		if t.Priority < minPriority {
			continue
		}
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) Stats() Stats {
	s := Stats{
		Total:      len(r.templates),
		Categories: make(map[string]int, len(r.byCategory)),
		Tags:       make(map[string]int, len(r.byTag)),
	}
	for c, ts := range r.byCategory {
		s.Categories[c] = len(ts)
	}
	for tag, ts := range r.byTag {
		s.Tags[tag] = len(ts)
	}

	total := 0
	for _, t := range r.templates {
		total += t.Priority
	}
	if len(r.templates) > 0 {
		s.AveragePriority = float64(total) / float64(len(r.templates))
	}
	return s
}
