// Package placeholder fills {name} tokens in query templates with filter
// clauses computed from extracted entities.
package placeholder

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"obcms-chat-workers/internal/chat/entity"
)

// DefaultLimit applies when no number was extracted.
const DefaultLimit = 20

const (
	regionPath       = "barangay__municipality__province__region__name"
	provincePath     = "barangay__municipality__province__name"
	municipalityPath = "barangay__municipality__name"
	barangayPath     = "barangay__name"
)

var (
	leftoverToken = regexp.MustCompile(`\{[^{}]*\}`)
	strayBraces   = strings.NewReplacer("{", "", "}", "")
	literalQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "{", "", "}", "")
)

// Substitute replaces every {name} token in tmpl with its computed clause and
// strips tokens no entity filled. The result never contains a brace.
func Substitute(tmpl string, entities entity.Set) string {
	clauses := Clauses(entities)

	names := make([]string, 0, len(clauses))
	for name := range clauses {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", clauses[name])
	}

	out := strings.NewReplacer(pairs...).Replace(tmpl)
	out = leftoverToken.ReplaceAllString(out, "")
	return strayBraces.Replace(out)
}

// Clauses computes the placeholder table for entities.
func Clauses(entities entity.Set) map[string]string {
	clauses := map[string]string{
		"rating_filter": "",
		"limit":         strconv.Itoa(DefaultLimit),
	}

	if e, ok := entities.Get(entity.KeyLocation); ok && e.Text() != "" {
		var level entity.LocationLevel
		if loc, isLoc := e.(entity.Location); isLoc {
			level = loc.Level
		}
		clauses["location_filter"] = locationFilter(level, e.Text())
		clauses["location"] = escape(e.Text())
	}

	if v := entities.Text(entity.KeyStatus); v != "" {
		clauses["status_filter"] = "status__iexact=" + quote(v)
		clauses["status"] = escape(v)
	}

	if e, ok := entities.Get(entity.KeyDateRange); ok {
		if dr, isRange := e.(entity.DateRange); isRange {
			clauses["date_range_filter"] = dateRangeFilter(dr)
			if dr.Start != nil {
				clauses["before_date_filter"] = "created_at__lt=" + quote(dr.Start.Format(time.RFC3339))
			}
			if dr.End != nil {
				clauses["after_date_filter"] = "created_at__gt=" + quote(dr.End.Format(time.RFC3339))
			}
		}
	}

	if v := entities.Text(entity.KeyEthnicGroup); v != "" {
		clauses["ethnic_group_filter"] = "primary_ethnic_group__icontains=" + quote(v)
		clauses["ethnicity"] = escape(v)
	}

	if v := entities.Text(entity.KeyLivelihood); v != "" {
		clauses["livelihood_filter"] = "primary_livelihood__icontains=" + quote(v)
		clauses["livelihood"] = escape(v)
	}

	if rating, ok := NormalizeRating(entities.Text(entity.KeyRating)); ok {
		clauses["rating_filter"] = ", infrastructure__availability_status__icontains=" + quote(rating)
		clauses["rating"] = escape(rating)
	}

	if e, ok := entities.Get(entity.KeyNumbers); ok {
		if nums, isNums := e.(entity.Numbers); isNums {
			if n, has := nums.First(); has {
				clauses["limit"] = strconv.Itoa(n)
			}
		} else if n, err := strconv.Atoi(e.Text()); err == nil {
			clauses["limit"] = strconv.Itoa(n)
		}
	}

	if v := entities.Text(entity.KeySector); v != "" {
		clauses["sector_filter"] = "sector__iexact=" + quote(v)
		clauses["sector"] = escape(v)
	}
	urgency := entities.Text(entity.KeyUrgencyLevel)
	if urgency == "" {
		urgency = entities.Text(entity.KeyPriorityLevel)
	}
	if urgency != "" {
		clauses["priority_filter"] = "urgency_level__iexact=" + quote(urgency)
	}
	if v := entities.Text(entity.KeyNeedStatus); v != "" {
		clauses["need_status_filter"] = "status__iexact=" + quote(v)
	}
	if v := entities.Text(entity.KeyMinistry); v != "" {
		clauses["ministry_filter"] = "lead_ministry__iexact=" + quote(v)
		clauses["ministry"] = escape(v)
	}

	return clauses
}

func locationFilter(level entity.LocationLevel, value string) string {
	q := quote(value)
	switch level {
	case entity.LevelRegion:
		return regionPath + "__icontains=" + q
	case entity.LevelProvince:
		return provincePath + "__icontains=" + q
	case entity.LevelMunicipality:
		return municipalityPath + "__icontains=" + q
	case entity.LevelBarangay:
		return barangayPath + "__icontains=" + q
	default:
		return "Q(" + regionPath + "__icontains=" + q + ") | " +
			"Q(" + provincePath + "__icontains=" + q + ") | " +
			"Q(" + municipalityPath + "__icontains=" + q + ") | " +
			"Q(" + barangayPath + "__icontains=" + q + ")"
	}
}

func dateRangeFilter(dr entity.DateRange) string {
	var parts []string
	if dr.Start != nil {
		parts = append(parts, "created_at__gte="+quote(dr.Start.Format(time.RFC3339)))
	}
	if dr.End != nil {
		parts = append(parts, "created_at__lte="+quote(dr.End.Format(time.RFC3339)))
	}
	return strings.Join(parts, ", ")
}

// NormalizeRating maps rating synonyms to canonical values. Unknown values pass
// through lower-cased; blank input reports false.
func NormalizeRating(raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "":
		return "", false
	case "no", "none", "without":
		return "none", true
	default:
		return v, true
	}
}

func quote(v string) string {
	return "'" + escape(v) + "'"
}

// escape makes v safe inside a single-quoted query literal.
func escape(v string) string {
	return literalQuoter.Replace(v)
}
