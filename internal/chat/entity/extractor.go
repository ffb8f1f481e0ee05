package entity

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"obcms-chat-workers/internal/common/logger"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Option func(*Extractor)

// WithClock fixes the reference time for relative date ranges.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithGazetteer enables province validation and municipality lookup.
func WithGazetteer(g Gazetteer) Option {
	return func(e *Extractor) { e.gazetteer = g }
}

func WithLogger(log logger.Logger) Option {
	return func(e *Extractor) { e.logger = log }
}

// Extractor turns free text into an entity Set using keyword tables and
// regular expressions. It is safe for concurrent use.
type Extractor struct {
	now       func() time.Time
	gazetteer Gazetteer
	logger    logger.Logger
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now, logger: logger.NewNoOpLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract never fails; resolvers that find nothing leave their key out.
func (e *Extractor) Extract(ctx context.Context, text string) Set {
	text = strings.ToLower(strings.TrimSpace(text))
	set := Set{}
	if text == "" {
		return set
	}

	if loc, ok := e.resolveLocation(ctx, text); ok {
		set[KeyLocation] = loc
	}
	if v, ok := resolveEthnicGroup(text); ok {
		set[KeyEthnicGroup] = v
	}
	if v, ok := resolveKeyword(KeyLivelihood, livelihoodTable, text, 0.95, 0.90); ok {
		set[KeyLivelihood] = v
	}
	if dr, ok := resolveDateRange(text, e.now()); ok {
		set[KeyDateRange] = dr
	}
	if v, ok := resolveKeyword(KeyStatus, statusTable, text, 0.95, 0.90); ok {
		set[KeyStatus] = v
	}
	if n, ok := resolveNumbers(text); ok {
		set[KeyNumbers] = n
	}
	if v, ok := resolveKeyword(KeySector, sectorTable, text, 0.95, 0.90); ok {
		set[KeySector] = v
	}
	if v, ok := resolveKeyword(KeyPriorityLevel, priorityTable, text, 0.95, 0.95); ok {
		set[KeyPriorityLevel] = v
	}
	if v, ok := resolveKeyword(KeyUrgencyLevel, urgencyTable, text, 1.0, 1.0); ok {
		set[KeyUrgencyLevel] = v
	}
	if v, ok := resolveKeyword(KeyNeedStatus, needStatusTable, text, 0.95, 0.95); ok {
		set[KeyNeedStatus] = v
	}
	if v, ok := resolveKeyword(KeyMinistry, ministryTable, text, 0.95, 0.90); ok {
		set[KeyMinistry] = v
	}
	if b, ok := resolveBudget(text); ok {
		set[KeyBudgetRange] = b
	}
	if v, ok := resolveKeyword(KeyAssessmentType, assessmentTable, text, 0.95, 0.90); ok {
		set[KeyAssessmentType] = v
	}
	if v, ok := resolveKeyword(KeyPartnershipType, partnershipTable, text, 0.95, 0.90); ok {
		set[KeyPartnershipType] = v
	}

	e.logger.Debug("entities extracted", map[string]interface{}{
		"count": len(set),
		"keys":  set.Keys(),
	})
	return set
}

// resolveKeyword scores exact when the matched phrase equals the canonical value.
func resolveKeyword(key string, table keywordTable, text string, exact, partial float64) (Value, bool) {
	value, kw, ok := table.first(text)
	if !ok {
		return Value{}, false
	}
	conf := partial
	if kw == strings.ToLower(value) {
		conf = exact
	}
	return Value{Key: key, Value: value, Confidence: conf}, true
}

func resolveEthnicGroup(text string) (Value, bool) {
	v, ok := resolveKeyword(KeyEthnicGroup, ethnicTable, text, 0.95, 0.90)
	if !ok {
		return Value{}, false
	}
	v.Value = titleCase(strings.ReplaceAll(v.Value, "_", " "))
	return v, true
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func (e *Extractor) resolveLocation(ctx context.Context, text string) (Location, bool) {
	if loc, ok := resolveRegion(text); ok {
		return loc, true
	}
	if loc, ok := e.resolveProvince(ctx, text); ok {
		return loc, true
	}
	return e.resolveMunicipality(ctx, text)
}

func resolveRegion(text string) (Location, bool) {
	for _, r := range regionPatterns {
		for _, p := range r.patterns {
			if !p.re.MatchString(text) {
				continue
			}
			conf := 0.85
			if strings.HasPrefix(p.word, "region") {
				conf = 0.95
			}
			return Location{Level: LevelRegion, Value: r.name, Code: r.code, Confidence: conf}, true
		}
	}
	return Location{}, false
}

func (e *Extractor) resolveProvince(ctx context.Context, text string) (Location, bool) {
	name, variant, ok := provinceTable.first(text)
	if !ok {
		return Location{}, false
	}

	conf := math.Min(0.92, 0.7+float64(len(variant))/20)
	value := titleCase(name)
	validated := false

	if e.gazetteer != nil {
		stored, found, err := e.gazetteer.Province(ctx, name)
		if err != nil {
			e.logger.Debug("province validation failed", map[string]interface{}{"province": name, "error": err.Error()})
		} else if found {
			value = stored
			validated = true
		}
	}
	if !validated {
		conf *= 0.9
	}
	return Location{Level: LevelProvince, Value: value, Confidence: conf}, true
}

var (
	nonWord   = regexp.MustCompile(`[^a-z0-9ñ\s-]+`)
	stopWords = map[string]bool{
		"the": true, "and": true, "for": true, "from": true, "with": true, "show": true,
		"list": true, "many": true, "what": true, "which": true, "where": true, "there": true,
		"communities": true, "community": true, "province": true, "region": true, "municipality": true,
		"barangay": true, "needs": true, "total": true, "count": true, "number": true, "all": true,
	}
)

// resolveMunicipality tries 3-, 2- and 1-word phrases against the gazetteer.
func (e *Extractor) resolveMunicipality(ctx context.Context, text string) (Location, bool) {
	if e.gazetteer == nil {
		return Location{}, false
	}

	words := strings.Fields(nonWord.ReplaceAllString(text, " "))
	for size := 3; size >= 1; size-- {
		for i := 0; i+size <= len(words); i++ {
			phrase := strings.Join(words[i:i+size], " ")
			if size == 1 && (len(phrase) < 4 || stopWords[phrase]) {
				continue
			}
			place, err := e.gazetteer.Municipality(ctx, phrase)
			if err != nil {
				e.logger.Debug("municipality lookup failed", map[string]interface{}{"phrase": phrase, "error": err.Error()})
				return Location{}, false
			}
			if place == nil {
				continue
			}
			conf := 0.75
			if place.Exact {
				conf = 0.90
			}
			return Location{
				Level:      LevelMunicipality,
				Value:      place.Name,
				Province:   place.Province,
				Region:     place.Region,
				Confidence: conf,
			}, true
		}
	}
	return Location{}, false
}

var (
	lastDaysRe   = regexp.MustCompile(`last (\d+) days?`)
	lastMonthsRe = regexp.MustCompile(`last (\d+) months?`)
	lastWeeksRe  = regexp.MustCompile(`last (\d+) weeks?`)
	fromToRe     = regexp.MustCompile(`from (\w+) to (\w+)`)
	monthYearRe  = regexp.MustCompile(`(\w+)\s+(\d{4})`)
	yearRe       = regexp.MustCompile(`\b(20\d{2})\b`)
	yearToDateRe = regexp.MustCompile(`\b(?:ytd|year[- ]to[- ]date)\b`)
)

const (
	rangeRelative = "relative"
	rangeAbsolute = "absolute"
)

func resolveDateRange(text string, now time.Time) (DateRange, bool) {
	if dr, ok := relativeRange(text, now); ok {
		return dr, true
	}
	return absoluteRange(text, now)
}

func relativeRange(text string, now time.Time) (DateRange, bool) {
	back := func(d time.Duration, conf float64) (DateRange, bool) {
		start, end := now.Add(-d), now
		return DateRange{Start: &start, End: &end, RangeType: rangeRelative, Confidence: conf}, true
	}
	day := 24 * time.Hour

	if n, ok := leadingCount(lastDaysRe, text); ok {
		return back(time.Duration(n)*day, 1.0)
	}
	if n, ok := leadingCount(lastMonthsRe, text); ok {
		return back(time.Duration(n)*30*day, 1.0)
	}
	if n, ok := leadingCount(lastWeeksRe, text); ok {
		return back(time.Duration(n)*7*day, 1.0)
	}

	loc := now.Location()
	switch {
	case strings.Contains(text, "this year") || strings.Contains(text, "current year") || yearToDateRe.MatchString(text):
		start, end := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), now
		return DateRange{Start: &start, End: &end, RangeType: rangeRelative, Confidence: 1.0}, true
	case strings.Contains(text, "last year"):
		start := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, loc)
		end := time.Date(now.Year()-1, time.December, 31, 23, 59, 59, 0, loc)
		return DateRange{Start: &start, End: &end, RangeType: rangeRelative, Confidence: 1.0}, true
	case strings.Contains(text, "recent") || strings.Contains(text, "latest") || strings.Contains(text, "current"):
		return back(30*day, 0.85)
	}
	return DateRange{}, false
}

func leadingCount(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func absoluteRange(text string, now time.Time) (DateRange, bool) {
	loc := now.Location()

	if m := fromToRe.FindStringSubmatch(text); m != nil {
		from, okFrom := monthNumbers[m[1]]
		to, okTo := monthNumbers[m[2]]
		if okFrom && okTo {
			start := time.Date(now.Year(), time.Month(from), 1, 0, 0, 0, 0, loc)
			end := endOfMonth(now.Year(), to, loc)
			return DateRange{Start: &start, End: &end, RangeType: rangeAbsolute, Confidence: 0.95}, true
		}
	}

	for _, m := range monthYearRe.FindAllStringSubmatch(text, -1) {
		month, ok := monthNumbers[m[1]]
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(m[2])
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		end := endOfMonth(year, month, loc)
		return DateRange{Start: &start, End: &end, RangeType: rangeAbsolute, Confidence: 0.95}, true
	}

	if m := yearRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end := time.Date(year, time.December, 31, 23, 59, 59, 0, loc)
		return DateRange{Start: &start, End: &end, RangeType: rangeAbsolute, Confidence: 0.90}, true
	}
	return DateRange{}, false
}

// endOfMonth is the last second of month.
func endOfMonth(year, month int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, loc).Add(-time.Second)
}

var digitsRe = regexp.MustCompile(`\b(\d+)\b`)

func resolveNumbers(text string) (Numbers, bool) {
	var found []Number
	for _, m := range digitsRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = append(found, Number{Value: n, Type: "cardinal", Confidence: 1.0})
	}
	for _, w := range writtenNumbers {
		if w.re.MatchString(text) {
			found = append(found, Number{Value: w.value, Type: "cardinal", Confidence: 0.95})
		}
	}
	for _, w := range ordinalNumbers {
		if w.re.MatchString(text) {
			found = append(found, Number{Value: w.value, Type: "ordinal", Confidence: 0.95})
		}
	}
	if len(found) == 0 {
		return Numbers{}, false
	}
	return Numbers{Items: dedupNumbers(found)}, true
}

// dedupNumbers keeps the first position of each value and its best confidence.
func dedupNumbers(in []Number) []Number {
	index := make(map[int]int, len(in))
	out := make([]Number, 0, len(in))
	for _, n := range in {
		if i, seen := index[n.Value]; seen {
			if n.Confidence > out[i].Confidence {
				out[i] = n
			}
			continue
		}
		index[n.Value] = len(out)
		out = append(out, n)
	}
	return out
}

const amountRe = `(\d+(?:\.\d+)?)\s*(?:million|m\b)`

var (
	budgetUnderRe   = regexp.MustCompile(`under ` + amountRe)
	budgetOverRe    = regexp.MustCompile(`over ` + amountRe)
	budgetBetweenRe = regexp.MustCompile(`between (\d+(?:\.\d+)?)\s*(?:million|m\b)?\s*(?:and|to) ` + amountRe)
	budgetAboutRe   = regexp.MustCompile(amountRe + `\s*budget`)
)

func millions(s string) int64 {
	f, _ := strconv.ParseFloat(s, 64)
	return int64(math.Round(f * 1_000_000))
}

func resolveBudget(text string) (BudgetRange, bool) {
	if m := budgetBetweenRe.FindStringSubmatch(text); m != nil {
		lo, hi := millions(m[1]), millions(m[2])
		return BudgetRange{Min: &lo, Max: &hi, Confidence: 0.95}, true
	}
	if m := budgetUnderRe.FindStringSubmatch(text); m != nil {
		lo, hi := int64(0), millions(m[1])
		return BudgetRange{Min: &lo, Max: &hi, Confidence: 0.95}, true
	}
	if m := budgetOverRe.FindStringSubmatch(text); m != nil {
		lo := millions(m[1])
		return BudgetRange{Min: &lo, Confidence: 0.95}, true
	}
	if m := budgetAboutRe.FindStringSubmatch(text); m != nil {
		amount := millions(m[1])
		lo, hi := amount*9/10, amount*11/10
		return BudgetRange{Min: &lo, Max: &hi, Confidence: 0.90}, true
	}
	return BudgetRange{}, false
}

// Summary renders a one-line description of the entities for chat replies.
func Summary(s Set) string {
	var parts []string

	if v := s.Text(KeyEthnicGroup); v != "" {
		parts = append(parts, v)
	}
	if v := s.Text(KeyLivelihood); v != "" {
		parts = append(parts, v+" livelihood")
	}
	if e, ok := s.Get(KeyLocation); ok && e.Text() != "" {
		level := "unknown"
		if loc, isLoc := e.(Location); isLoc && loc.Level != "" {
			level = string(loc.Level)
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Text(), level))
	}
	if e, ok := s.Get(KeyDateRange); ok {
		if dr, isRange := e.(DateRange); isRange {
			if part := describeRange(dr); part != "" {
				parts = append(parts, part)
			}
		}
	}
	if v := s.Text(KeyStatus); v != "" {
		parts = append(parts, v+" status")
	}
	if e, ok := s.Get(KeyNumbers); ok {
		if n, isNum := e.(Numbers); isNum {
			if first, has := n.First(); has {
				parts = append(parts, fmt.Sprintf("top %d", first))
			}
		}
	}

	if len(parts) == 0 {
		return "No entities detected"
	}
	return "Found: " + strings.Join(parts, ", ")
}

func describeRange(dr DateRange) string {
	const day = "2006-01-02"
	switch {
	case dr.RangeType == rangeRelative:
		return "recent data"
	case dr.Start != nil && dr.End != nil:
		return fmt.Sprintf("from %s to %s", dr.Start.Format(day), dr.End.Format(day))
	case dr.Start != nil:
		return "from " + dr.Start.Format(day)
	case dr.End != nil:
		return "until " + dr.End.Format(day)
	}
	return ""
}

// Validate lists quality problems in s. A zero confidence means none was given
// and is not reported.
func Validate(s Set) []string {
	var issues []string

	if e, ok := s.Get(KeyLocation); ok {
		if c, has := Confidence(e); has && c > 0 && c < 0.5 {
			issues = append(issues, fmt.Sprintf("Low confidence location: %s (%.2f)", e.Text(), c))
		}
	}
	if e, ok := s.Get(KeyDateRange); ok {
		if dr, isRange := e.(DateRange); isRange && dr.Start != nil && dr.End != nil && dr.Start.After(*dr.End) {
			issues = append(issues, fmt.Sprintf("Invalid date range: start (%s) after end (%s)",
				dr.Start.Format(time.RFC3339), dr.End.Format(time.RFC3339)))
		}
	}
	for _, key := range s.Keys() {
		e := s[key]
		if e == nil {
			continue
		}
		if c, has := Confidence(e); has && c > 0 && c < 0.3 {
			issues = append(issues, fmt.Sprintf("Very low confidence %s: %s", key, e.Text()))
		}
	}
	return issues
}
