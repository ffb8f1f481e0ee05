package templates

import (
	"errors"
	"testing"

	"obcms-chat-workers/internal/chat/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waterDefinition() Definition {
	return Definition{
		ID:               "water",
		Category:         "infrastructure",
		Pattern:          `\bcommunities\s+with\s+(?:(?P<rating>no|poor|good)\s+)?water\b`,
		QueryTemplate:    "OBCCommunity.objects.filter(infrastructure__infrastructure_type='water'{rating_filter}).count()",
		OptionalEntities: []string{"rating"},
		Priority:         9,
		ResultType:       ResultCount,
		Examples:         []string{"Communities with water", "communities with no water"},
	}
}

func TestCompile_Defaults(t *testing.T) {
	d := waterDefinition()
	d.Priority = 0
	d.Intent = ""

	tmpl, err := Compile(d)
	require.NoError(t, err)

	assert.Equal(t, DefaultPriority, tmpl.Priority)
	assert.Equal(t, DefaultIntent, tmpl.Intent)
	assert.Nil(t, tmpl.CaptureEntities)
	assert.Equal(t, DefaultCaptures, tmpl.Captures())
	assert.True(t, tmpl.Matches("COMMUNITIES WITH WATER"), "patterns are case-insensitive")
}

func TestCompile_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Definition)
		errMsg string
	}{
		{"missing id", func(d *Definition) { d.ID = "" }, "ID"},
		{"bad result type", func(d *Definition) { d.ResultType = "table" }, "ResultType"},
		{"priority too high", func(d *Definition) { d.Priority = 11 }, "Priority"},
		{"no examples", func(d *Definition) { d.Examples = nil }, "Examples"},
		{"bad regex", func(d *Definition) { d.Pattern = `(unclosed` }, "pattern"},
		{"example does not match", func(d *Definition) { d.Examples = append(d.Examples, "list all provinces") }, "does not match"},
		{"unknown capture group", func(d *Definition) { d.CaptureEntities = map[string]string{"grade": "rating"} }, "capture group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := waterDefinition()
			tt.mutate(&d)

			_, err := Compile(d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTemplate))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCompile_CopiesSlices(t *testing.T) {
	d := waterDefinition()
	tmpl, err := Compile(d)
	require.NoError(t, err)

	d.OptionalEntities[0] = "changed"
	d.Examples[0] = "changed"
	assert.Equal(t, []string{"rating"}, tmpl.OptionalEntities)
	assert.Equal(t, "Communities with water", tmpl.Examples[0])
}

func TestFindMatch(t *testing.T) {
	tmpl, err := Compile(waterDefinition())
	require.NoError(t, err)

	m := tmpl.FindMatch("Which communities with poor water?")
	require.NotNil(t, m)
	assert.Equal(t, "communities with poor water", m.Text)
	assert.Equal(t, 6, m.Start)
	assert.Equal(t, "poor", m.Group("rating"))

	m = tmpl.FindMatch("communities with water")
	require.NotNil(t, m)
	assert.Equal(t, "", m.Group("rating"))
	_, captured := m.Groups["rating"]
	assert.False(t, captured, "unmatched optional groups are not reported")

	assert.Nil(t, tmpl.FindMatch("show provinces"))
	assert.Equal(t, "", (*Match)(nil).Group("rating"))
}

func TestMissingEntities(t *testing.T) {
	d := waterDefinition()
	d.RequiredEntities = []string{"location", "sector"}
	tmpl, err := Compile(d)
	require.NoError(t, err)

	assert.Equal(t, []string{"location", "sector"}, tmpl.MissingEntities(nil))
	assert.Equal(t, []string{"sector"}, tmpl.MissingEntities(entity.Set{
		"location": entity.Location{Level: entity.LevelRegion, Value: "Region IX"},
	}))
	assert.Equal(t, []string{"location"}, tmpl.MissingEntities(entity.Set{
		"location": entity.Value{Key: "location", Value: ""},
		"sector":   entity.Value{Key: "sector", Value: "health"},
	}), "empty entity text counts as missing")
}

func TestScoreMatch(t *testing.T) {
	tmpl, err := Compile(waterDefinition())
	require.NoError(t, err)

	t.Run("no match scores zero", func(t *testing.T) {
		assert.Zero(t, tmpl.ScoreMatch("list provinces", nil))
	})

	t.Run("full coverage with entities", func(t *testing.T) {
		set := entity.Set{"rating": entity.Value{Key: "rating", Value: "poor"}}
		// 0.3 + 0.1*1 + 0.3*0.9 + 0.3*1
		assert.InDelta(t, 0.97, tmpl.ScoreMatch("communities with poor water", set), 1e-9)
	})

	t.Run("partial coverage without entities", func(t *testing.T) {
		q := "list communities with water"
		cov := float64(len("communities with water")) / float64(len(q))
		assert.InDelta(t, 0.3+0.1*cov+0.27, tmpl.ScoreMatch(q, nil), 1e-9)
	})

	t.Run("no declared entities counts as complete", func(t *testing.T) {
		d := waterDefinition()
		d.OptionalEntities = nil
		d.Priority = 10
		plain, err := Compile(d)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, plain.ScoreMatch("communities with water", nil), 1e-9)
	})
}

func TestHasTag(t *testing.T) {
	d := waterDefinition()
	d.Tags = []string{"water", "count"}
	tmpl, err := Compile(d)
	require.NoError(t, err)

	assert.True(t, tmpl.HasTag("water"))
	assert.False(t, tmpl.HasTag("list"))
}
