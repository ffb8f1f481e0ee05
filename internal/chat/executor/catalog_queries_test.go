package executor_test

import (
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/chat/placeholder"
	"obcms-chat-workers/internal/chat/templates/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entitySets() map[string]entity.Set {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	return map[string]entity.Set{
		"none": {},
		"province": {
			entity.KeyLocation:     entity.Location{Level: entity.LevelProvince, Value: "Zamboanga del Sur", Confidence: 0.9},
			entity.KeyStatus:       entity.Value{Key: entity.KeyStatus, Value: "active"},
			entity.KeyDateRange:    entity.DateRange{Start: &start, End: &end, RangeType: "absolute"},
			entity.KeyEthnicGroup:  entity.Value{Key: entity.KeyEthnicGroup, Value: "maranao"},
			entity.KeyLivelihood:   entity.Value{Key: entity.KeyLivelihood, Value: "fishing"},
			entity.KeyRating:       entity.Value{Key: entity.KeyRating, Value: "no"},
			entity.KeyNumbers:      entity.Numbers{Items: []entity.Number{{Value: 5}}},
			entity.KeySector:       entity.Value{Key: entity.KeySector, Value: "education"},
			entity.KeyUrgencyLevel: entity.Value{Key: entity.KeyUrgencyLevel, Value: "immediate"},
			entity.KeyNeedStatus:   entity.Value{Key: entity.KeyNeedStatus, Value: "validated"},
			entity.KeyMinistry:     entity.Value{Key: entity.KeyMinistry, Value: "MOH"},
		},
		"region": {
			entity.KeyLocation:  entity.Location{Level: entity.LevelRegion, Value: "Region IX"},
			entity.KeyDateRange: entity.DateRange{End: &end},
		},
		"unlevelled": {
			entity.KeyLocation: entity.Location{Value: "Cotabato"},
		},
		"hostile": {
			entity.KeyLocation:   entity.Location{Value: `O'Brien {x} \ ')).delete()`},
			entity.KeySector:     entity.Value{Key: entity.KeySector, Value: `x'); __import__('os`},
			entity.KeyMinistry:   entity.Value{Key: entity.KeyMinistry, Value: `{ministry_filter}`},
			entity.KeyLivelihood: entity.Value{Key: entity.KeyLivelihood, Value: `"quoted"`},
		},
	}
}

func TestCatalog_EveryGeneratedQueryCompiles(t *testing.T) {
	r, err := catalog.NewRegistry()
	require.NoError(t, err)
	builder := executor.NewBuilder(nil, 0)

	for name, set := range entitySets() {
		for _, tmpl := range r.GetAllTemplates() {
			query := placeholder.Substitute(tmpl.QueryTemplate, set)

			q, err := executor.Parse(query)
			if !assert.NoError(t, err, "%s/%s: %s", name, tmpl.ID, query) {
				continue
			}
			st, err := builder.Build(q)
			if !assert.NoError(t, err, "%s/%s: %s", name, tmpl.ID, query) {
				continue
			}
			assert.Contains(t, []string{"list", "count", "exists", "first", "last", "aggregate"}, string(st.Terminal))
			assert.NotContains(t, st.SQL, "'", "%s/%s: literals must be bound", name, tmpl.ID)
		}
	}
}

func TestCatalog_ResultTypesAgreeWithTerminals(t *testing.T) {
	r, err := catalog.NewRegistry()
	require.NoError(t, err)

	for _, tmpl := range r.GetAllTemplates() {
		q, err := executor.Parse(placeholder.Substitute(tmpl.QueryTemplate, entity.Set{}))
		require.NoError(t, err, tmpl.ID)

		switch tmpl.ResultType {
		case "count":
			assert.Equal(t, executor.TerminalCount, q.Terminal, tmpl.ID)
		case "aggregate":
			assert.Contains(t, []executor.Terminal{executor.TerminalAggregate, executor.TerminalList}, q.Terminal, tmpl.ID)
		case "list":
			assert.Equal(t, executor.TerminalList, q.Terminal, tmpl.ID)
		}
	}
}

func TestCatalog_GroupedTemplatesSelectEveryAnnotation(t *testing.T) {
	r, err := catalog.NewRegistry()
	require.NoError(t, err)
	builder := executor.NewBuilder(nil, 0)

	grouped := 0
	for _, tmpl := range r.GetAllTemplates() {
		q, err := executor.Parse(placeholder.Substitute(tmpl.QueryTemplate, entity.Set{}))
		require.NoError(t, err, tmpl.ID)
		if !q.GroupByValues || len(q.Annotations) == 0 || q.ValuesAfterAnnotate || q.Flat {
			continue
		}
		grouped++

		st, err := builder.Build(q)
		require.NoError(t, err, tmpl.ID)

		names := make([]string, 0, len(st.Columns))
		for _, c := range st.Columns {
			names = append(names, c.Name)
		}
		for _, v := range q.Values {
			assert.Contains(t, names, v, tmpl.ID)
		}
		for _, a := range q.Annotations {
			assert.Contains(t, names, a.Alias, tmpl.ID)
		}
	}
	assert.NotZero(t, grouped)
}
