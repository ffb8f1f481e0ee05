package matcher

import (
	"context"
	"strings"
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/templates"
	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/internal/common/logger"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogMatcher(t *testing.T) *Matcher {
	t.Helper()
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)
	return New(reg, logger.NewTestLogger(t))
}

func smallRegistry(t *testing.T) *templates.Registry {
	t.Helper()
	return templates.MustNewRegistry([]templates.Definition{
		{
			ID:            "first_tie",
			Category:      "geographic",
			Pattern:       `\bprovinces\b`,
			QueryTemplate: "Province.objects.all()",
			Priority:      5,
			ResultType:    templates.ResultList,
			Examples:      []string{"provinces", "provinces please"},
			Description:   "first",
		},
		{
			ID:            "second_tie",
			Category:      "geographic",
			Pattern:       `\bprovinces\b`,
			QueryTemplate: "Province.objects.count()",
			Priority:      5,
			ResultType:    templates.ResultCount,
			Examples:      []string{"provinces count"},
		},
		{
			ID:            "regions",
			Category:      "geographic",
			Pattern:       `\bregions\b`,
			QueryTemplate: "Region.objects.all()",
			Priority:      9,
			ResultType:    templates.ResultList,
			Examples:      []string{"Regions of the south", "provinces and regions"},
		},
	})
}

func TestScenario_ShowAllProvinces(t *testing.T) {
	m := newCatalogMatcher(t)
	const q = "Show me all provinces"

	var ids []string
	for _, tmpl := range m.FindMatchingTemplates(q, entity.Set{}, "", "") {
		ids = append(ids, tmpl.ID)
	}
	assert.Contains(t, ids, "list_all_provinces")

	res := m.MatchAndGenerate(context.Background(), q, entity.Set{}, "", "")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "list_all_provinces", res.TemplateID)
	assert.Equal(t, templates.ResultList, res.Template.ResultType)
	assert.NotContains(t, res.Query, "{")
	assert.NotContains(t, res.Query, "}")
	assert.Empty(t, res.MissingEntities)
}

func TestScenario_CountCommunitiesInRegion(t *testing.T) {
	m := newCatalogMatcher(t)
	entities := entity.Set{
		entity.KeyLocation: entity.Location{Level: entity.LevelRegion, Value: "Region IX"},
	}

	res := m.MatchAndGenerate(context.Background(), "How many communities in Region IX?", entities, "", "")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "count_communities_by_location", res.TemplateID)
	assert.Equal(t, templates.ResultCount, res.Template.ResultType)
	assert.Contains(t, res.Query, "region__name__icontains='Region IX'")
	assert.Equal(t,
		"OBCCommunity.objects.filter(barangay__municipality__province__region__name__icontains='Region IX').count()",
		res.Query)
}

func TestScenario_RatingCapturePromotion(t *testing.T) {
	m := newCatalogMatcher(t)

	t.Run("no water access promotes rating none", func(t *testing.T) {
		input := entity.Set{}
		res := m.MatchAndGenerate(context.Background(), "Communities with no water access", input, "", "")
		require.True(t, res.Success, res.Error)
		assert.Equal(t, "count_communities_by_water_access", res.TemplateID)
		assert.Contains(t, res.Query, "availability_status__icontains='none'")
		assert.Equal(t, "no", res.Entities.Text(entity.KeyRating))
		assert.Empty(t, input, "caller entities must not gain the promoted rating")
	})

	t.Run("water access without rating drops the clause", func(t *testing.T) {
		res := m.MatchAndGenerate(context.Background(), "Communities with water access", entity.Set{}, "", "")
		require.True(t, res.Success, res.Error)
		assert.NotContains(t, res.Query, "availability_status")
		assert.NotContains(t, res.Query, "{")
		assert.NotContains(t, res.Query, "}")
		assert.Equal(t,
			"OBCCommunity.objects.filter(infrastructure__infrastructure_type='water').distinct().count()",
			res.Query)
	})
}

func TestScenario_MissingSector(t *testing.T) {
	m := newCatalogMatcher(t)

	res := m.MatchAndGenerate(context.Background(), "show sector needs", entity.Set{}, "", "")
	assert.False(t, res.Success)
	assert.Equal(t, []string{"sector"}, res.MissingEntities)
	assert.Equal(t, "Missing required entities: sector", res.Error)
	require.NotNil(t, res.Template, "template is kept for observability")
	assert.Equal(t, "list_needs_by_sector", res.TemplateID)
	assert.Greater(t, res.Score, 0.0)
	assert.Empty(t, res.Query)
}

func TestScenario_TemporalAndCrossDomainRouting(t *testing.T) {
	m := newCatalogMatcher(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	year := entity.Set{entity.KeyDateRange: entity.DateRange{Start: &start, End: &end}}

	tests := []struct {
		query    string
		entities entity.Set
		want     string
	}{
		{"How many PPAs in FY 2024?", year, "count_by_fiscal_year"},
		{"How many needs were identified before 2024?", year, "count_before_date"},
		{"YTD assessments", year, "count_year_to_date"},
		{"Count MANA assessments this year", year, "count_assessments"},
		{"Communities with unmet needs", entity.Set{}, "communities_with_unmet_needs"},
		{"Critical needs without funding", entity.Set{}, "unfunded_needs_analysis"},
		{"Assessment to needs pipeline", entity.Set{}, "assessment_to_needs_pipeline"},
		{"Cost per beneficiary by sector", entity.Set{}, "cost_per_beneficiary"},
		{"Budget variance", entity.Set{}, "variance_analysis"},
		{"Compare regions", entity.Set{}, "region_vs_region"},
		{"Needs by ethnic group", entity.Set{}, "ethnicity_needs"},
		{"Needs identified per month", entity.Set{}, "needs_identification_trends"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			res := m.MatchAndGenerate(context.Background(), tt.query, tt.entities, "", "")
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.TemplateID)
			assert.NotContains(t, res.Query, "{")
		})
	}

	res := m.MatchAndGenerate(context.Background(), "How many PPAs in FY 2024?", year, "", "")
	assert.Equal(t,
		"WorkItem.objects.filter(created_at__gte='2024-01-01T00:00:00Z', created_at__lte='2024-12-31T23:59:59Z').count()",
		res.Query)

	res = m.MatchAndGenerate(context.Background(), "How many needs were identified before 2024?", year, "", "")
	assert.Equal(t, "Need.objects.filter(created_at__lt='2024-01-01T00:00:00Z').count()", res.Query)
}

func TestMatchAndGenerate_DoesNotMutateInput(t *testing.T) {
	m := newCatalogMatcher(t)

	inputs := []entity.Set{
		{},
		{entity.KeyRating: entity.Value{Key: entity.KeyRating, Value: "good", Confidence: 0.9}},
		{
			entity.KeyLocation: entity.Location{Level: entity.LevelProvince, Value: "Sulu", Confidence: 0.95},
			entity.KeyNumbers:   entity.Numbers{Items: []entity.Number{{Value: 5, Type: "cardinal", Confidence: 1}}},
		},
	}
	for _, in := range inputs {
		before := in.Clone()
		m.MatchAndGenerate(context.Background(), "How many communities have poor water supply?", in, "", "")
		if diff := cmp.Diff(before, in); diff != "" {
			t.Errorf("entities changed (-before +after):\n%s", diff)
		}
	}
}

func TestPromoteCaptures_ExplicitEntityWins(t *testing.T) {
	m := newCatalogMatcher(t)
	input := entity.Set{entity.KeyRating: entity.Value{Key: entity.KeyRating, Value: "good"}}

	res := m.MatchAndGenerate(context.Background(), "Communities with no water access", input, "", "")
	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Query, "availability_status__icontains='good'")
	assert.NotContains(t, res.Query, "'none'")
}

func TestPromoteCaptures_EmptyExistingValueIsReplaced(t *testing.T) {
	reg := templates.MustNewRegistry([]templates.Definition{{
		ID:               "water",
		Category:         "infrastructure",
		Pattern:          `\bcommunities\s+with\s+(?:(?P<rating>no|poor|good)\s+)?water\b`,
		QueryTemplate:    "x",
		OptionalEntities: []string{"rating"},
		Priority:         5,
		ResultType:       templates.ResultCount,
		Examples:         []string{"communities with water"},
	}})
	tmpl, _ := reg.GetTemplateByID("water")

	best := MatchResult{Template: tmpl, Match: tmpl.FindMatch("communities with POOR water")}
	input := entity.Set{entity.KeyRating: entity.Value{Key: entity.KeyRating, Value: "  "}}

	out := PromoteCaptures(best, input)
	assert.Equal(t, "poor", out.Text(entity.KeyRating), "captured text is lower-cased")
	assert.Equal(t, "  ", input[entity.KeyRating].(entity.Value).Value, "input is not modified")
}

func TestRankTemplates_Deterministic(t *testing.T) {
	m := New(smallRegistry(t), logger.NewNoOpLogger())
	const q = "provinces and regions"

	candidates := m.FindMatchingTemplates(q, nil, "", "")
	require.Len(t, candidates, 3)

	first := m.RankTemplates(candidates, q, nil)
	order := func(rs []MatchResult) []string {
		ids := make([]string, len(rs))
		for i, r := range rs {
			ids[i] = r.Template.ID
		}
		return ids
	}
	assert.Equal(t, []string{"regions", "first_tie", "second_tie"}, order(first))
	assert.Equal(t, first[1].Score, first[2].Score)

	for i := 0; i < 50; i++ {
		assert.Equal(t, order(first), order(m.RankTemplates(candidates, q, nil)))
	}
}

func TestValidateTemplate(t *testing.T) {
	m := newCatalogMatcher(t)
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)

	tmpl, ok := reg.GetTemplateByID("count_communities_by_location")
	require.True(t, ok)

	tests := []struct {
		name     string
		entities entity.Set
		valid    bool
	}{
		{"absent", entity.Set{}, false},
		{"empty value", entity.Set{entity.KeyLocation: entity.Location{Value: ""}}, false},
		{"present", entity.Set{entity.KeyLocation: entity.Location{Level: entity.LevelRegion, Value: "Region X"}}, true},
		{"unrelated keys only", entity.Set{entity.KeySector: entity.Value{Key: entity.KeySector, Value: "health"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := m.ValidateTemplate(tmpl, tt.entities)
			assert.Equal(t, tt.valid, v.IsValid)
			if tt.valid {
				assert.Empty(t, v.Error)
				assert.Empty(t, v.MissingEntities)
			} else {
				assert.Equal(t, []string{"location"}, v.MissingEntities)
				assert.Equal(t, "Missing required entities: location", v.Error)
			}
		})
	}
}

func TestMatchAndGenerate_NoMatch(t *testing.T) {
	m := newCatalogMatcher(t)

	for _, q := range []string{"", "   ", "tell me a joke"} {
		res := m.MatchAndGenerate(context.Background(), q, nil, "", "")
		assert.False(t, res.Success)
		assert.Equal(t, "No matching templates found", res.Error)
		assert.Nil(t, res.Template)
		assert.Zero(t, res.Score)
	}
}

func TestMatchAndGenerate_CategoryFilter(t *testing.T) {
	m := newCatalogMatcher(t)

	res := m.MatchAndGenerate(context.Background(), "Show me all provinces", nil, "", "needs")
	assert.False(t, res.Success)
	assert.Equal(t, "No matching templates found", res.Error)
}

type panickingCatalog struct{ templates.Catalog }

func (panickingCatalog) SearchTemplates(string, string, int) []*templates.QueryTemplate {
	panic("index corrupted")
}

func TestMatchAndGenerate_RecoversPanics(t *testing.T) {
	m := New(panickingCatalog{}, logger.NewTestLogger(t))

	res := m.MatchAndGenerate(context.Background(), "Show me all provinces", entity.Set{}, "", "")
	assert.False(t, res.Success)
	assert.Equal(t, "Internal error: index corrupted", res.Error)
	assert.Nil(t, res.Template)
	assert.Empty(t, res.Query)
	assert.Zero(t, res.Score)
	assert.Empty(t, res.MissingEntities)
}

func TestMatchAndGenerate_FailedLazyCatalog(t *testing.T) {
	lazy := templates.Load(func() ([]templates.Definition, error) {
		return []templates.Definition{{ID: "broken"}}, nil
	})
	m := New(lazy, logger.NewTestLogger(t))

	res := m.MatchAndGenerate(context.Background(), "anything", nil, "", "")
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "Internal error: template registry unavailable"), res.Error)
}

func TestGetTemplateSuggestions(t *testing.T) {
	m := New(smallRegistry(t), logger.NewNoOpLogger())

	got := m.GetTemplateSuggestions("PROVINCES", "", 0)
	assert.Equal(t, []Suggestion{
		{TemplateID: "regions", Category: "geographic", Example: "provinces and regions", Priority: 9},
		{TemplateID: "first_tie", Category: "geographic", Example: "provinces", Description: "first", Priority: 5},
		{TemplateID: "second_tie", Category: "geographic", Example: "provinces count", Priority: 5},
	}, got)

	limited := m.GetTemplateSuggestions("provinces", "", 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "first_tie", limited[0].TemplateID, "collection stops before sorting")

	assert.Empty(t, m.GetTemplateSuggestions("provinces", "budget", 5))
	assert.Empty(t, m.GetTemplateSuggestions("zzz", "", 5))
}

func TestGetTemplateSuggestions_KeepsTrailingSpace(t *testing.T) {
	m := New(smallRegistry(t), logger.NewNoOpLogger())

	got := m.GetTemplateSuggestions("Provinces ", "", 0)
	examples := make([]string, 0, len(got))
	for _, s := range got {
		examples = append(examples, s.Example)
	}
	assert.Equal(t, []string{"provinces and regions", "provinces please", "provinces count"}, examples)
}

func TestGetTemplateSuggestions_Catalog(t *testing.T) {
	m := newCatalogMatcher(t)

	got := m.GetTemplateSuggestions("how many", "geographic", 3)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Priority, got[i].Priority)
	}
	for _, s := range got {
		assert.True(t, strings.HasPrefix(strings.ToLower(s.Example), "how many"))
	}
}
