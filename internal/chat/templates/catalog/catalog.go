// Package catalog holds the built-in OBCMS query templates grouped by domain.
package catalog

import (
	"sync"

	"obcms-chat-workers/internal/chat/templates"
)

// Categories lists the domain groups in registration order.
var Categories = []string{
	"communities",
	"geographic",
	"infrastructure",
	"livelihood",
	"needs",
	"mana",
	"stakeholders",
	"coordination",
	"policies",
	"budget",
	"temporal",
	"analytics",
	"comparison",
	"cross_domain",
}

// Definitions returns every built-in definition in registration order. The
// returned slice is fresh on every call.
func Definitions() []templates.Definition {
	groups := [][]templates.Definition{
		communityTemplates,
		geographicTemplates,
		infrastructureTemplates,
		livelihoodTemplates,
		needsTemplates,
		manaTemplates,
		stakeholderTemplates,
		coordinationTemplates,
		policyTemplates,
		budgetTemplates,
		temporalTemplates,
		analyticsTemplates,
		comparisonTemplates,
		crossDomainTemplates,
	}

	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]templates.Definition, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// NewRegistry compiles the built-in definitions followed by any extra packs.
func NewRegistry(extra ...[]templates.Definition) (*templates.Registry, error) {
	groups := append([][]templates.Definition{Definitions()}, extra...)
	return templates.NewRegistry(groups...)
}

var (
	defaultOnce sync.Once
	defaultLazy *templates.Lazy
)

// Default is the process-wide lazily built catalog.
func Default() *templates.Lazy {
	defaultOnce.Do(func() {
		defaultLazy = templates.NewLazy(func() (*templates.Registry, error) {
			return NewRegistry()
		})
	})
	return defaultLazy
}

// WithPacks is a lazily built catalog extended by the given pack files.
func WithPacks(paths ...string) *templates.Lazy {
	return templates.NewLazy(func() (*templates.Registry, error) {
		extra := make([][]templates.Definition, 0, len(paths))
		for _, p := range paths {
			defs, err := templates.LoadPackFile(p)
			if err != nil {
				return nil, err
			}
			extra = append(extra, defs)
		}
		return NewRegistry(extra...)
	})
}
