package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// wireEntity is the JSON form of every variant except Numbers, which travels as
// a plain array. kind is optional on input and inferred from the key when absent.
type wireEntity struct {
	Kind       Kind       `json:"kind,omitempty"`
	Type       string     `json:"type,omitempty"`
	Value      flexString `json:"value,omitempty"`
	Code       string     `json:"code,omitempty"`
	Province   string     `json:"province,omitempty"`
	Region     string     `json:"region,omitempty"`
	Start      string     `json:"start,omitempty"`
	End        string     `json:"end,omitempty"`
	RangeType  string     `json:"range_type,omitempty"`
	Min        *int64     `json:"min,omitempty"`
	Max        *int64     `json:"max,omitempty"`
	Items      []Number   `json:"items,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
}

// flexString accepts strings, numbers and booleans.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value      int     `json:"value"`
		Type       string  `json:"type,omitempty"`
		Confidence float64 `json:"confidence,omitempty"`
	}{n.Value, n.Type, n.Confidence})
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("number %s: %w", data, err)
		}
		*n = Number{Value: int(v), Type: "cardinal", Confidence: 1}
		return nil
	}

	var w struct {
		Value      json.Number `json:"value"`
		Type       string      `json:"type"`
		Confidence float64     `json:"confidence"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(string(w.Value), 64)
	if err != nil {
		return fmt.Errorf("number value %q: %w", w.Value, err)
	}
	n.Value = int(v)
	n.Type = w.Type
	n.Confidence = w.Confidence
	return nil
}

func (s Set) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s))
	for key, e := range s {
		if e == nil {
			continue
		}
		out[key] = toWire(e)
	}
	return json.Marshal(out)
}

func toWire(e Entity) interface{} {
	switch v := e.(type) {
	case Location:
		return wireEntity{Kind: KindLocation, Type: string(v.Level), Value: flexString(v.Value),
			Code: v.Code, Province: v.Province, Region: v.Region, Confidence: v.Confidence}
	case DateRange:
		return wireEntity{Kind: KindDateRange, Start: formatTime(v.Start), End: formatTime(v.End),
			RangeType: v.RangeType, Confidence: v.Confidence}
	case BudgetRange:
		return wireEntity{Kind: KindBudgetRange, Min: v.Min, Max: v.Max, Confidence: v.Confidence}
	case Numbers:
		if v.Items == nil {
			return []Number{}
		}
		return v.Items
	default:
		return wireEntity{Kind: KindValue, Value: flexString(e.Text()), Confidence: confidenceOrZero(e)}
	}
}

func confidenceOrZero(e Entity) float64 {
	c, _ := Confidence(e)
	return c
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("entities must be an object: %w", err)
	}

	out := make(Set, len(raw))
	for key, msg := range raw {
		e, err := decodeEntity(key, msg)
		if err != nil {
			return fmt.Errorf("entity %q: %w", key, err)
		}
		if e != nil {
			out[key] = e
		}
	}
	*s = out
	return nil
}

func decodeEntity(key string, msg json.RawMessage) (Entity, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return nil, nil
	}

	switch msg[0] {
	case '[':
		var items []Number
		if err := json.Unmarshal(msg, &items); err != nil {
			return nil, err
		}
		return Numbers{Items: items}, nil
	case '{':
	default:
		var v flexString
		if err := json.Unmarshal(msg, &v); err != nil {
			return nil, err
		}
		if key == KeyLocation {
			return Location{Value: string(v), Confidence: 1}, nil
		}
		return Value{Key: key, Value: string(v), Confidence: 1}, nil
	}

	var w wireEntity
	if err := json.Unmarshal(msg, &w); err != nil {
		return nil, err
	}

	kind := w.Kind
	if kind == "" {
		kind = inferKind(key, w)
	}

	switch kind {
	case KindLocation:
		return Location{Level: LocationLevel(w.Type), Value: string(w.Value), Code: w.Code,
			Province: w.Province, Region: w.Region, Confidence: w.Confidence}, nil
	case KindDateRange:
		start, err := parseTime(w.Start)
		if err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
		end, err := parseTime(w.End)
		if err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		return DateRange{Start: start, End: end, RangeType: w.RangeType, Confidence: w.Confidence}, nil
	case KindBudgetRange:
		return BudgetRange{Min: w.Min, Max: w.Max, Confidence: w.Confidence}, nil
	case KindNumbers:
		return Numbers{Items: w.Items}, nil
	case KindValue:
		return Value{Key: key, Value: string(w.Value), Confidence: w.Confidence}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

func inferKind(key string, w wireEntity) Kind {
	switch {
	case key == KeyLocation:
		return KindLocation
	case key == KeyDateRange, w.Start != "" || w.End != "":
		return KindDateRange
	case key == KeyBudgetRange, w.Min != nil || w.Max != nil:
		return KindBudgetRange
	case key == KeyNumbers, len(w.Items) > 0:
		return KindNumbers
	default:
		return KindValue
	}
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized time %q", s)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
