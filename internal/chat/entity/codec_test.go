package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_UnmarshalLooseWireForm(t *testing.T) {
	payload := `{
		"location": {"type": "region", "value": "Region IX"},
		"status": "active",
		"numbers": [5, {"value": 3, "type": "ordinal", "confidence": 0.95}],
		"date_range": {"start": "2024-01-01", "end": "2024-12-31T23:59:59Z"},
		"budget_range": {"min": 0, "max": 5000000},
		"sector": null
	}`

	var set Set
	require.NoError(t, json.Unmarshal([]byte(payload), &set))

	loc := set[KeyLocation].(Location)
	assert.Equal(t, LevelRegion, loc.Level)
	assert.Equal(t, "Region IX", loc.Value)

	assert.Equal(t, Value{Key: KeyStatus, Value: "active", Confidence: 1}, set[KeyStatus])

	nums := set[KeyNumbers].(Numbers)
	assert.Equal(t, []Number{
		{Value: 5, Type: "cardinal", Confidence: 1},
		{Value: 3, Type: "ordinal", Confidence: 0.95},
	}, nums.Items)

	dr := set[KeyDateRange].(DateRange)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(*dr.Start))
	assert.Equal(t, 2024, dr.End.Year())

	budget := set[KeyBudgetRange].(BudgetRange)
	assert.Equal(t, int64(5_000_000), *budget.Max)

	assert.NotContains(t, set, KeySector)
}

func TestSet_JSONRoundTripKeepsVariants(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	in := Set{
		KeyLocation:  Location{Level: LevelMunicipality, Value: "Dipolog", Province: "Zamboanga del Norte", Confidence: 0.9},
		KeyDateRange: DateRange{Start: &start, End: &end, RangeType: "absolute", Confidence: 0.95},
		KeyRating:    Value{Key: KeyRating, Value: "none", Confidence: 1},
		KeyNumbers:   Numbers{Items: []Number{{Value: 10, Type: "cardinal", Confidence: 1}}},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Set
	require.NoError(t, json.Unmarshal(data, &out))

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_RejectsBadPayloads(t *testing.T) {
	var set Set
	assert.Error(t, json.Unmarshal([]byte(`["location"]`), &set))
	assert.Error(t, json.Unmarshal([]byte(`{"date_range": {"start": "yesterday"}}`), &set))
	assert.Error(t, json.Unmarshal([]byte(`{"x": {"kind": "mystery", "value": "?"}}`), &set))
}

func TestSet_CloneIsIndependent(t *testing.T) {
	orig := Set{
		KeyNumbers: Numbers{Items: []Number{{Value: 5}}},
		KeyStatus:  Value{Key: KeyStatus, Value: "ongoing"},
	}

	clone := orig.Clone()
	clone[KeyNumbers].(Numbers).Items[0].Value = 99
	clone[KeyRating] = Value{Key: KeyRating, Value: "none"}

	assert.Equal(t, 5, orig[KeyNumbers].(Numbers).Items[0].Value)
	assert.NotContains(t, orig, KeyRating)
	assert.True(t, clone.Has(KeyRating))
	assert.False(t, Set{KeyStatus: Value{Key: KeyStatus, Value: "  "}}.Has(KeyStatus))
}
