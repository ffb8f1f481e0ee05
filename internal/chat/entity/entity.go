// Package entity holds the typed entities extracted from chat text and the
// extractor that produces them.
package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind names an entity variant.
type Kind string

const (
	KindLocation    Kind = "location"
	KindDateRange   Kind = "date_range"
	KindNumbers     Kind = "numbers"
	KindBudgetRange Kind = "budget_range"
	KindValue       Kind = "value"
)

// Well-known entity keys.
const (
	KeyLocation        = "location"
	KeyEthnicGroup     = "ethnolinguistic_group"
	KeyLivelihood      = "livelihood"
	KeyDateRange       = "date_range"
	KeyStatus          = "status"
	KeyNumbers         = "numbers"
	KeySector          = "sector"
	KeyPriorityLevel   = "priority_level"
	KeyUrgencyLevel    = "urgency_level"
	KeyNeedStatus      = "need_status"
	KeyMinistry        = "ministry"
	KeyBudgetRange     = "budget_range"
	KeyAssessmentType  = "assessment_type"
	KeyPartnershipType = "partnership_type"
	KeyRating          = "rating"
)

// Entity is one extracted value. Text returns the normalized value, or "" when
// the entity carries nothing usable.
type Entity interface {
	Kind() Kind
	Text() string
}

type LocationLevel string

const (
	LevelRegion       LocationLevel = "region"
	LevelProvince     LocationLevel = "province"
	LevelMunicipality LocationLevel = "municipality"
	LevelBarangay     LocationLevel = "barangay"
)

type Location struct {
	Level      LocationLevel
	Value      string
	Code       string
	Province   string
	Region     string
	Confidence float64
}

func (Location) Kind() Kind { return KindLocation }
func (l Location) Text() string { return strings.TrimSpace(l.Value) }

type DateRange struct {
	Start      *time.Time
	End        *time.Time
	RangeType  string
	Confidence float64
}

func (DateRange) Kind() Kind { return KindDateRange }

func (d DateRange) Text() string {
	if d.Start == nil && d.End == nil {
		return ""
	}
	var start, end string
	if d.Start != nil {
		start = d.Start.Format(time.RFC3339)
	}
	if d.End != nil {
		end = d.End.Format(time.RFC3339)
	}
	return start + ".." + end
}

// Value is a classifier entity such as status, sector or rating. Key is the
// entity key it was produced for.
type Value struct {
	Key        string
	Value      string
	Confidence float64
}

func (Value) Kind() Kind { return KindValue }
func (v Value) Text() string { return strings.TrimSpace(v.Value) }

type Number struct {
	Value      int
	Type       string
	Confidence float64
}

type Numbers struct {
	Items []Number
}

func (Numbers) Kind() Kind { return KindNumbers }

func (n Numbers) Text() string {
	if len(n.Items) == 0 {
		return ""
	}
	return strconv.Itoa(n.Items[0].Value)
}

// First returns the first extracted number.
func (n Numbers) First() (int, bool) {
	if len(n.Items) == 0 {
		return 0, false
	}
	return n.Items[0].Value, true
}

// BudgetRange amounts are in pesos. A nil bound is open.
type BudgetRange struct {
	Min        *int64
	Max        *int64
	Confidence float64
}

func (BudgetRange) Kind() Kind { return KindBudgetRange }

func (b BudgetRange) Text() string {
	if b.Min == nil && b.Max == nil {
		return ""
	}
	var lo, hi string
	if b.Min != nil {
		lo = strconv.FormatInt(*b.Min, 10)
	}
	if b.Max != nil {
		hi = strconv.FormatInt(*b.Max, 10)
	}
	return lo + "-" + hi
}

// Confidence reports the confidence carried by e, if any.
func Confidence(e Entity) (float64, bool) {
	switch v := e.(type) {
	case Location:
		return v.Confidence, true
	case DateRange:
		return v.Confidence, true
	case Value:
		return v.Confidence, true
	case BudgetRange:
		return v.Confidence, true
	case Numbers:
		if len(v.Items) == 0 {
			return 0, false
		}
		return v.Items[0].Confidence, true
	default:
		return 0, false
	}
}

// Set maps entity keys to entities. Callers treat a Set as read-only and Clone
// before adding to it.
type Set map[string]Entity

// Has reports whether key is present with a non-empty value.
func (s Set) Has(key string) bool {
	e, ok := s[key]
	return ok && e != nil && e.Text() != ""
}

func (s Set) Get(key string) (Entity, bool) {
	e, ok := s[key]
	if !ok || e == nil {
		return nil, false
	}
	return e, true
}

// Text returns the normalized value under key, or "".
func (s Set) Text(key string) string {
	if e, ok := s.Get(key); ok {
		return e.Text()
	}
	return ""
}

// Keys returns the keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy that shares nothing mutable with s.
func (s Set) Clone() Set {
	if s == nil {
		return Set{}
	}
	out := make(Set, len(s))
	for k, e := range s {
		out[k] = cloneEntity(e)
	}
	return out
}

func cloneEntity(e Entity) Entity {
	switch v := e.(type) {
	case Numbers:
		items := make([]Number, len(v.Items))
		copy(items, v.Items)
		return Numbers{Items: items}
	case DateRange:
		v.Start = cloneTime(v.Start)
		v.End = cloneTime(v.End)
		return v
	case BudgetRange:
		v.Min = cloneInt(v.Min)
		v.Max = cloneInt(v.Max)
		return v
	default:
		return e
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneInt(i *int64) *int64 {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// String renders the set for logs.
func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, k := range s.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%q", k, s.Text(k)))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
