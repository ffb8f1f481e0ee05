package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/templates"
	"obcms-chat-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_BuiltInCatalogCompiles(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.Equal(t, len(Definitions()), r.Len())
	assert.ElementsMatch(t, Categories, r.Categories())
	for _, c := range Categories {
		assert.NotEmpty(t, r.GetTemplatesByCategory(c), c)
	}
}

func TestCatalog_ExamplesMatchOwnPatterns(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	for _, tmpl := range r.GetAllTemplates() {
		for _, ex := range tmpl.Examples {
			assert.True(t, tmpl.Matches(ex), "%s: %q", tmpl.ID, ex)
		}
		assert.GreaterOrEqual(t, tmpl.Priority, 1)
		assert.LessOrEqual(t, tmpl.Priority, 10)
	}
}

func TestDefault_ReturnsSameSliceFast(t *testing.T) {
	lazy := Default()
	assert.Same(t, lazy, Default())

	first := lazy.GetAllTemplates()
	require.NotEmpty(t, first)

	start := time.Now()
	second := lazy.GetAllTemplates()
	elapsed := time.Since(start)

	assert.Same(t, &first[0], &second[0])
	assert.Less(t, elapsed, time.Millisecond)
}

func TestCatalog_KeyTemplates(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	tests := []struct {
		id       string
		query    string
		priority int
		result   templates.ResultType
	}{
		{"list_all_provinces", "Show me all provinces", 10, templates.ResultList},
		{"count_communities_by_location", "How many communities in Region IX?", 9, templates.ResultCount},
		{"count_communities_by_water_access", "Communities with no water access", 9, templates.ResultCount},
		{"list_needs_by_sector", "show sector needs", 9, templates.ResultList},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tmpl, ok := r.GetTemplateByID(tt.id)
			require.True(t, ok)
			assert.True(t, tmpl.Matches(tt.query))
			assert.Equal(t, tt.priority, tmpl.Priority)
			assert.Equal(t, tt.result, tmpl.ResultType)
		})
	}

	water, _ := r.GetTemplateByID("count_communities_by_water_access")
	m := water.FindMatch("Communities with no water access")
	require.NotNil(t, m)
	assert.Equal(t, "no", m.Group("rating"))
}

func TestCatalog_AnalyticalGroups(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Len(), 190)

	groups := map[string][]string{
		"temporal":     {"count_last_n_days", "count_by_fiscal_year", "count_before_date", "needs_identification_trends", "aging_analysis"},
		"analytics":    {"statistical_summary", "variance_analysis", "clustering_analysis", "risk_scoring"},
		"comparison":   {"region_vs_region", "location_benchmarking", "ethnicity_needs", "cost_per_beneficiary"},
		"cross_domain": {"communities_with_unmet_needs", "assessment_to_needs_pipeline", "unfunded_needs_analysis"},
	}
	for category, ids := range groups {
		assert.GreaterOrEqual(t, len(r.GetTemplatesByCategory(category)), 20, category)
		for _, id := range ids {
			tmpl, ok := r.GetTemplateByID(id)
			require.True(t, ok, id)
			assert.Equal(t, category, tmpl.Category, id)
		}
	}
}

func TestWithPacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, registry.SavePack(path, &registry.TemplatePack{
		Version: "1",
		Templates: []registry.TemplateDoc{{
			ID:            "count_madaris",
			Category:      "education",
			Pattern:       `\bhow many\s+madaris\b`,
			QueryTemplate: "OBCCommunity.objects.filter(infrastructure__infrastructure_type='madrasah').distinct().count()",
			Priority:      8,
			ResultType:    "count",
			Examples:      []string{"How many madaris?"},
		}},
	}))

	r, err := WithPacks(path).Get()
	require.NoError(t, err)
	assert.Equal(t, len(Definitions())+1, r.Len())

	tmpl, ok := r.GetTemplateByID("count_madaris")
	require.True(t, ok)
	assert.Equal(t, templates.DefaultIntent, tmpl.Intent)

	_, err = WithPacks(filepath.Join(t.TempDir(), "missing.yaml")).Get()
	assert.Error(t, err)
}

func TestWithPacks_ShippedExamplePack(t *testing.T) {
	reg, err := WithPacks(filepath.Join("..", "..", "..", "..", "configs", "templates", "extra.example.yaml")).Get()
	require.NoError(t, err)

	tmpl, ok := reg.GetTemplateByID("count_communities_with_madrasah")
	require.True(t, ok)
	assert.True(t, tmpl.Matches("How many communities with a madrasah?"))
	assert.Equal(t, len(Definitions())+1, reg.Len())
}
