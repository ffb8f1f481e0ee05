package templates

import (
	"fmt"
	"sync"
)

// Lazy builds its registry on first use. Concurrent first callers block on the
// same build and all observe the same registry.
type Lazy struct {
	once sync.Once
	load func() (*Registry, error)
	reg  *Registry
	err  error
}

func NewLazy(load func() (*Registry, error)) *Lazy {
	return &Lazy{load: load}
}

// Load is a Lazy over definitions produced by loader.
func Load(loader func() ([]Definition, error)) *Lazy {
	return NewLazy(func() (*Registry, error) {
		defs, err := loader()
		if err != nil {
			return nil, err
		}
		return NewRegistry(defs)
	})
}

func (l *Lazy) Get() (*Registry, error) {
	l.once.Do(func() {
		l.reg, l.err = l.load()
	})
	return l.reg, l.err
}

// registry panics when the build failed; the matcher turns that panic into an
// internal error result.
func (l *Lazy) registry() *Registry {
	r, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("template registry unavailable: %v", err))
	}
	return r
}

func (l *Lazy) GetAllTemplates() []*QueryTemplate {
	return l.registry().GetAllTemplates()
}

func (l *Lazy) GetTemplateByID(id string) (*QueryTemplate, bool) {
	return l.registry().GetTemplateByID(id)
}

func (l *Lazy) GetTemplatesByCategory(category string) []*QueryTemplate {
	return l.registry().GetTemplatesByCategory(category)
}

func (l *Lazy) SearchTemplates(query, category string, minPriority int) []*QueryTemplate {
	return l.registry().SearchTemplates(query, category, minPriority)
}
