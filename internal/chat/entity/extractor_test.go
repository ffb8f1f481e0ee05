package entity

import (
	"context"
	"testing"
	"time"

	"obcms-chat-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func newTestExtractor(t *testing.T, opts ...Option) *Extractor {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(logger.NewTestLogger(t)),
	}, opts...)
	return NewExtractor(opts...)
}

type fakeGazetteer struct {
	provinces      map[string]string
	municipalities map[string]Place
	lookups        []string
}

func (f *fakeGazetteer) Province(_ context.Context, name string) (string, bool, error) {
	stored, ok := f.provinces[name]
	return stored, ok, nil
}

func (f *fakeGazetteer) Municipality(_ context.Context, phrase string) (*Place, error) {
	f.lookups = append(f.lookups, phrase)
	if p, ok := f.municipalities[phrase]; ok {
		return &p, nil
	}
	return nil, nil
}

func TestExtract_EmptyText(t *testing.T) {
	ex := newTestExtractor(t)
	assert.Empty(t, ex.Extract(context.Background(), "   "))
}

func TestExtract_Regions(t *testing.T) {
	tests := []struct {
		text     string
		wantCode string
		wantConf float64
	}{
		{"How many communities in Region IX?", "IX", 0.95},
		{"communities in zamboanga peninsula", "IX", 0.85},
		{"needs in region x", "X", 0.95},
		{"needs in region xi", "XI", 0.95},
		{"programs across soccsksargen", "XII", 0.85},
	}

	ex := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			set := ex.Extract(context.Background(), tt.text)
			loc, ok := set[KeyLocation].(Location)
			require.True(t, ok, "expected a location in %v", set)
			assert.Equal(t, LevelRegion, loc.Level)
			assert.Equal(t, tt.wantCode, loc.Code)
			assert.Equal(t, "Region "+tt.wantCode, loc.Value)
			assert.InDelta(t, tt.wantConf, loc.Confidence, 1e-9)
		})
	}
}

func TestExtract_ProvinceWithoutGazetteer(t *testing.T) {
	set := newTestExtractor(t).Extract(context.Background(), "needs in Sultan Kudarat")

	loc, ok := set[KeyLocation].(Location)
	require.True(t, ok)
	assert.Equal(t, LevelProvince, loc.Level)
	assert.Equal(t, "Sultan Kudarat", loc.Value)
	assert.InDelta(t, 0.92*0.9, loc.Confidence, 1e-9)
}

func TestExtract_ProvinceValidatedByPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM common_province").
		WithArgs("lanao del norte", "%lanao del norte%").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Lanao del Norte"))

	ex := newTestExtractor(t, WithGazetteer(NewPostgresGazetteer(db)))
	set := ex.Extract(context.Background(), "ldn communities")

	loc, ok := set[KeyLocation].(Location)
	require.True(t, ok)
	assert.Equal(t, "Lanao del Norte", loc.Value)
	assert.InDelta(t, 0.7+3.0/20, loc.Confidence, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtract_MunicipalityFromGazetteer(t *testing.T) {
	gaz := &fakeGazetteer{municipalities: map[string]Place{
		"pagadian": {Name: "Pagadian City", Province: "Zamboanga del Sur", Region: "Region IX"},
	}}
	set := newTestExtractor(t, WithGazetteer(gaz)).Extract(context.Background(), "farmers in pagadian")

	loc, ok := set[KeyLocation].(Location)
	require.True(t, ok)
	assert.Equal(t, LevelMunicipality, loc.Level)
	assert.Equal(t, "Pagadian City", loc.Value)
	assert.Equal(t, "Zamboanga del Sur", loc.Province)
	assert.InDelta(t, 0.75, loc.Confidence, 1e-9)
	assert.NotContains(t, gaz.lookups, "in")
}

func TestPostgresGazetteer_Municipality(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM common_municipality").
		WithArgs("dipolog", "%dipolog%").
		WillReturnRows(sqlmock.NewRows([]string{"m", "p", "r"}).AddRow("Dipolog", "Zamboanga del Norte", "Region IX"))
	mock.ExpectQuery("FROM common_municipality").
		WithArgs("100%", `%100\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"m", "p", "r"}))

	g := NewPostgresGazetteer(db)

	place, err := g.Municipality(context.Background(), "dipolog")
	require.NoError(t, err)
	require.NotNil(t, place)
	assert.True(t, place.Exact)
	assert.Equal(t, "Region IX", place.Region)

	place, err = g.Municipality(context.Background(), "100%")
	require.NoError(t, err)
	assert.Nil(t, place)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtract_EthnicGroupAndLivelihood(t *testing.T) {
	set := newTestExtractor(t).Extract(context.Background(), "Maranao farmers")

	eth := set[KeyEthnicGroup].(Value)
	assert.Equal(t, "Meranaw", eth.Value)
	assert.InDelta(t, 0.90, eth.Confidence, 1e-9)

	liv := set[KeyLivelihood].(Value)
	assert.Equal(t, "farming", liv.Value)
	assert.InDelta(t, 0.90, liv.Confidence, 1e-9)

	set = newTestExtractor(t).Extract(context.Background(), "kagan kalagan weaving")
	assert.Equal(t, "Kagan Kalagan", set.Text(KeyEthnicGroup))
	assert.InDelta(t, 0.95, set[KeyLivelihood].(Value).Confidence, 1e-9)
}

func TestExtract_DateRanges(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	lastSecond := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 23, 59, 59, 0, time.UTC) }

	tests := []struct {
		text      string
		start     time.Time
		end       time.Time
		rangeType string
		conf      float64
	}{
		{"needs in the last 7 days", fixedNow.Add(-7 * 24 * time.Hour), fixedNow, "relative", 1.0},
		{"activity in the last 2 months", fixedNow.Add(-60 * 24 * time.Hour), fixedNow, "relative", 1.0},
		{"events the last 3 weeks", fixedNow.Add(-21 * 24 * time.Hour), fixedNow, "relative", 1.0},
		{"assessments this year", day(2025, time.January, 1), fixedNow, "relative", 1.0},
		{"ytd assessments", day(2025, time.January, 1), fixedNow, "relative", 1.0},
		{"year-to-date needs", day(2025, time.January, 1), fixedNow, "relative", 1.0},
		{"assessments last year", day(2024, time.January, 1), lastSecond(2024, time.December, 31), "relative", 1.0},
		{"recent assessments", fixedNow.Add(-30 * 24 * time.Hour), fixedNow, "relative", 0.85},
		{"workshops from jan to mar", day(2025, time.January, 1), lastSecond(2025, time.March, 31), "absolute", 0.95},
		{"assessments in march 2024", day(2024, time.March, 1), lastSecond(2024, time.March, 31), "absolute", 0.95},
		{"needs in 2023", day(2023, time.January, 1), lastSecond(2023, time.December, 31), "absolute", 0.90},
	}

	ex := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			dr, ok := ex.Extract(context.Background(), tt.text)[KeyDateRange].(DateRange)
			require.True(t, ok)
			require.NotNil(t, dr.Start)
			require.NotNil(t, dr.End)
			assert.True(t, tt.start.Equal(*dr.Start), "start %s", dr.Start)
			assert.True(t, tt.end.Equal(*dr.End), "end %s", dr.End)
			assert.Equal(t, tt.rangeType, dr.RangeType)
			assert.InDelta(t, tt.conf, dr.Confidence, 1e-9)
		})
	}
}

func TestExtract_Keywords(t *testing.T) {
	tests := []struct {
		text  string
		key   string
		value string
		conf  float64
	}{
		{"show completed projects", KeyStatus, "completed", 0.95},
		{"active communities", KeyStatus, "ongoing", 0.90},
		{"education needs", KeySector, "education", 0.95},
		{"school needs", KeySector, "education", 0.90},
		{"urgent needs", KeyPriorityLevel, "immediate", 0.95},
		{"needs within a month", KeyUrgencyLevel, "immediate", 1.0},
		{"unmet needs", KeyNeedStatus, "identified", 0.95},
		{"milg programs", KeyMinistry, "MILG", 0.95},
		{"programs of the local government", KeyMinistry, "MILG", 0.90},
		{"baseline assessments", KeyAssessmentType, "baseline", 0.95},
		{"signed moa", KeyPartnershipType, "MOA", 0.95},
	}

	ex := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, ok := ex.Extract(context.Background(), tt.text)[tt.key].(Value)
			require.True(t, ok)
			assert.Equal(t, tt.value, v.Value)
			assert.Equal(t, tt.key, v.Key)
			assert.InDelta(t, tt.conf, v.Confidence, 1e-9)
		})
	}
}

func TestExtract_Numbers(t *testing.T) {
	ex := newTestExtractor(t)

	n := ex.Extract(context.Background(), "top 5 communities")[KeyNumbers].(Numbers)
	assert.Equal(t, []Number{{Value: 5, Type: "cardinal", Confidence: 1.0}}, n.Items)

	n = ex.Extract(context.Background(), "the five largest, 5th overall")[KeyNumbers].(Numbers)
	assert.Equal(t, []Number{{Value: 5, Type: "cardinal", Confidence: 0.95}}, n.Items)

	n = ex.Extract(context.Background(), "show 10 and then three")[KeyNumbers].(Numbers)
	assert.Equal(t, []Number{
		{Value: 10, Type: "cardinal", Confidence: 1.0},
		{Value: 3, Type: "cardinal", Confidence: 0.95},
	}, n.Items)
}

func TestExtract_BudgetRanges(t *testing.T) {
	i64 := func(v int64) *int64 { return &v }
	tests := []struct {
		text string
		min  *int64
		max  *int64
	}{
		{"projects under 5 million", i64(0), i64(5_000_000)},
		{"projects over 1.5m", i64(1_500_000), nil},
		{"projects between 2 and 4 million", i64(2_000_000), i64(4_000_000)},
		{"a 10 million budget", i64(9_000_000), i64(11_000_000)},
	}

	ex := newTestExtractor(t)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b, ok := ex.Extract(context.Background(), tt.text)[KeyBudgetRange].(BudgetRange)
			require.True(t, ok)
			assert.Equal(t, tt.min, b.Min)
			assert.Equal(t, tt.max, b.Max)
		})
	}
}

func TestSummary(t *testing.T) {
	start, end := fixedNow.Add(-time.Hour), fixedNow
	set := Set{
		KeyEthnicGroup: Value{Key: KeyEthnicGroup, Value: "Meranaw", Confidence: 0.9},
		KeyLivelihood:  Value{Key: KeyLivelihood, Value: "farming", Confidence: 0.9},
		KeyLocation:    Location{Level: LevelRegion, Value: "Region IX", Confidence: 0.95},
		KeyDateRange:   DateRange{Start: &start, End: &end, RangeType: "relative", Confidence: 1},
		KeyStatus:      Value{Key: KeyStatus, Value: "ongoing", Confidence: 0.9},
		KeyNumbers:     Numbers{Items: []Number{{Value: 5, Type: "cardinal", Confidence: 1}}},
	}

	assert.Equal(t,
		"Found: Meranaw, farming livelihood, Region IX (region), recent data, ongoing status, top 5",
		Summary(set))
	assert.Equal(t, "No entities detected", Summary(Set{}))

	abs := DateRange{Start: &start, End: &end, RangeType: "absolute"}
	assert.Equal(t, "Found: from 2025-06-15 to 2025-06-15", Summary(Set{KeyDateRange: abs}))
}

func TestValidate(t *testing.T) {
	start, end := fixedNow, fixedNow.Add(-24*time.Hour)
	set := Set{
		KeyLocation:  Location{Level: LevelProvince, Value: "Cotabato", Confidence: 0.2},
		KeyDateRange: DateRange{Start: &start, End: &end, RangeType: "absolute", Confidence: 1},
		KeyStatus:    Value{Key: KeyStatus, Value: "ongoing"},
	}

	assert.Equal(t, []string{
		"Low confidence location: Cotabato (0.20)",
		"Invalid date range: start (2025-06-15T10:00:00Z) after end (2025-06-14T10:00:00Z)",
		"Very low confidence location: Cotabato",
	}, Validate(set))

	assert.Empty(t, Validate(Set{KeySector: Value{Key: KeySector, Value: "health", Confidence: 0.9}}))
}
