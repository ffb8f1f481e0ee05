package placeholder

import (
	"strings"
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/entity"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"no", "none", true},
		{"None", "none", true},
		{" without ", "none", true},
		{"poor", "poor", true},
		{"limited", "limited", true},
		{"available", "available", true},
		{"good", "good", true},
		{"excellent", "excellent", true},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeRating(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)

			if ok {
				again, _ := NormalizeRating(got)
				assert.Equal(t, got, again, "normalization must be idempotent")
			}
		})
	}
}

func TestSubstitute_LocationLevels(t *testing.T) {
	const tmpl = "OBCCommunity.objects.filter({location_filter}).count()"

	tests := []struct {
		level entity.LocationLevel
		want  string
	}{
		{entity.LevelRegion, "barangay__municipality__province__region__name__icontains='Region IX'"},
		{entity.LevelProvince, "barangay__municipality__province__name__icontains='Region IX'"},
		{entity.LevelMunicipality, "barangay__municipality__name__icontains='Region IX'"},
		{entity.LevelBarangay, "barangay__name__icontains='Region IX'"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			set := entity.Set{entity.KeyLocation: entity.Location{Level: tt.level, Value: "Region IX"}}
			assert.Equal(t, "OBCCommunity.objects.filter("+tt.want+").count()", Substitute(tmpl, set))
		})
	}

	t.Run("unknown level ORs every depth", func(t *testing.T) {
		set := entity.Set{entity.KeyLocation: entity.Value{Key: entity.KeyLocation, Value: "Cotabato"}}
		got := Substitute("{location_filter}", set)
		assert.Equal(t, 4, strings.Count(got, "Q("))
		assert.Equal(t, 3, strings.Count(got, " | "))
		assert.Contains(t, got, "barangay__name__icontains='Cotabato'")
	})
}

func TestSubstitute_DateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	both := entity.Set{entity.KeyDateRange: entity.DateRange{Start: &start, End: &end}}
	assert.Equal(t,
		"created_at__gte='2024-01-01T00:00:00Z', created_at__lte='2024-12-31T23:59:59Z'",
		Substitute("{date_range_filter}", both))

	onlyStart := entity.Set{entity.KeyDateRange: entity.DateRange{Start: &start}}
	assert.Equal(t, "created_at__gte='2024-01-01T00:00:00Z'", Substitute("{date_range_filter}", onlyStart))

	neither := entity.Set{entity.KeyDateRange: entity.DateRange{}}
	assert.Equal(t, "", Substitute("{date_range_filter}", neither))
}

func TestSubstitute_OpenEndedDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	both := entity.Set{entity.KeyDateRange: entity.DateRange{Start: &start, End: &end}}

	assert.Equal(t, "created_at__lt='2024-01-01T00:00:00Z'", Substitute("{before_date_filter}", both))
	assert.Equal(t, "created_at__gt='2024-12-31T23:59:59Z'", Substitute("{after_date_filter}", both))

	onlyEnd := entity.Set{entity.KeyDateRange: entity.DateRange{End: &end}}
	assert.Equal(t, "Need.objects.filter().count()", Substitute("Need.objects.filter({before_date_filter}).count()", onlyEnd))
	assert.Equal(t, "", Substitute("{after_date_filter}", entity.Set{}))
}

func TestSubstitute_RatingAndLimit(t *testing.T) {
	const tmpl = "OBCCommunity.objects.filter(infrastructure__infrastructure_type='water'{rating_filter})[:{limit}]"

	withRating := entity.Set{
		entity.KeyRating:  entity.Value{Key: entity.KeyRating, Value: "no"},
		entity.KeyNumbers: entity.Numbers{Items: []entity.Number{{Value: 5}}},
	}
	assert.Equal(t,
		"OBCCommunity.objects.filter(infrastructure__infrastructure_type='water', "+
			"infrastructure__availability_status__icontains='none')[:5]",
		Substitute(tmpl, withRating))

	assert.Equal(t,
		"OBCCommunity.objects.filter(infrastructure__infrastructure_type='water')[:20]",
		Substitute(tmpl, entity.Set{}))
}

func TestSubstitute_EscapesLiteralValues(t *testing.T) {
	set := entity.Set{entity.KeyStatus: entity.Value{Key: entity.KeyStatus, Value: `o'pen{x}\`}}
	assert.Equal(t, `status__iexact='o\'penx\\'`, Substitute("{status_filter}", set))
}

func TestSubstitute_NeverLeavesBraces(t *testing.T) {
	templates := []string{
		"",
		"{}",
		"{{location_filter}}",
		"Need.objects.filter({sector_filter}, {unknown}).count()",
		"{ unclosed",
		"closed }",
		"{a{b}c}",
		"Model.objects.filter({location_filter}{rating_filter}{date_range_filter})[:{limit}]",
	}
	sets := []entity.Set{
		{},
		nil,
		{entity.KeyLocation: entity.Location{Level: entity.LevelRegion, Value: "{Region} IX"}},
		{entity.KeySector: entity.Value{Key: entity.KeySector, Value: "}health{"}},
		{entity.KeyRating: entity.Value{Key: entity.KeyRating, Value: "{{}}"}},
	}

	for _, tmpl := range templates {
		for _, set := range sets {
			out := Substitute(tmpl, set)
			assert.NotContains(t, out, "{", "template %q", tmpl)
			assert.NotContains(t, out, "}", "template %q", tmpl)
		}
	}
}

func TestClauses_ExtendedKinds(t *testing.T) {
	set := entity.Set{
		entity.KeySector:        entity.Value{Key: entity.KeySector, Value: "education"},
		entity.KeyPriorityLevel: entity.Value{Key: entity.KeyPriorityLevel, Value: "immediate"},
		entity.KeyNeedStatus:    entity.Value{Key: entity.KeyNeedStatus, Value: "identified"},
		entity.KeyMinistry:      entity.Value{Key: entity.KeyMinistry, Value: "MILG"},
		entity.KeyEthnicGroup:   entity.Value{Key: entity.KeyEthnicGroup, Value: "Tausug"},
		entity.KeyLivelihood:    entity.Value{Key: entity.KeyLivelihood, Value: "fishing"},
	}

	c := Clauses(set)
	assert.Equal(t, "sector__iexact='education'", c["sector_filter"])
	assert.Equal(t, "urgency_level__iexact='immediate'", c["priority_filter"])
	assert.Equal(t, "status__iexact='identified'", c["need_status_filter"])
	assert.Equal(t, "lead_ministry__iexact='MILG'", c["ministry_filter"])
	assert.Equal(t, "primary_ethnic_group__icontains='Tausug'", c["ethnic_group_filter"])
	assert.Equal(t, "Tausug", c["ethnicity"])
	assert.Equal(t, "primary_livelihood__icontains='fishing'", c["livelihood_filter"])
	assert.Equal(t, "", c["rating_filter"])
	assert.Equal(t, "20", c["limit"])
}
