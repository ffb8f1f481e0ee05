package entity

import (
	"regexp"
	"strings"
)

// keywordEntry maps a canonical value to the phrases that select it. Entries
// and phrases are tried in declaration order and the first hit wins.
type keywordEntry struct {
	value    string
	keywords []string
}

type compiledKeyword struct {
	word string
	re   *regexp.Regexp
}

type compiledEntry struct {
	value    string
	keywords []compiledKeyword
}

type keywordTable []compiledEntry

func compileTable(entries []keywordEntry) keywordTable {
	table := make(keywordTable, 0, len(entries))
	for _, e := range entries {
		ce := compiledEntry{value: e.value}
		for _, kw := range e.keywords {
			ce.keywords = append(ce.keywords, compiledKeyword{word: kw, re: wordPattern(kw)})
		}
		table = append(table, ce)
	}
	return table
}

func wordPattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// first returns the canonical value and the phrase that matched.
func (t keywordTable) first(text string) (value, keyword string, ok bool) {
	for _, e := range t {
		for _, kw := range e.keywords {
			if kw.re.MatchString(text) {
				return e.value, kw.word, true
			}
		}
	}
	return "", "", false
}

type region struct {
	code     string
	name     string
	variants []string
}

var regions = []region{
	{"IX", "Region IX", []string{"region ix", "region 9", "zamboanga", "zamboanga peninsula", "r9", "rix"}},
	{"X", "Region X", []string{"region x", "region 10", "northern mindanao", "r10", "rx"}},
	{"XI", "Region XI", []string{"region xi", "region 11", "davao", "davao region", "r11", "rxi"}},
	{"XII", "Region XII", []string{"region xii", "region 12", "soccsksargen", "socsksargen", "r12", "rxii"}},
}

// Province variants start with the canonical name.
var provinceEntries = []keywordEntry{
	{"sultan kudarat", []string{"sultan kudarat", "sk", "s. kudarat", "skudarat"}},
	{"maguindanao", []string{"maguindanao", "maguindanao del norte", "maguindanao del sur"}},
	{"south cotabato", []string{"south cotabato", "s cotabato", "socot", "s. cotabato"}},
	{"sarangani", []string{"sarangani", "saranggani"}},
	{"cotabato", []string{"cotabato", "north cotabato", "n cotabato"}},
	{"zamboanga del norte", []string{"zamboanga del norte", "zdn", "z del norte"}},
	{"zamboanga del sur", []string{"zamboanga del sur", "zds", "z del sur"}},
	{"zamboanga sibugay", []string{"zamboanga sibugay", "sibugay"}},
	{"bukidnon", []string{"bukidnon", "bukidnon province"}},
	{"misamis oriental", []string{"misamis oriental", "mis or", "misor"}},
	{"misamis occidental", []string{"misamis occidental", "mis occ", "misocc"}},
	{"lanao del norte", []string{"lanao del norte", "ldn", "l del norte"}},
	{"davao del norte", []string{"davao del norte", "ddn", "d del norte"}},
	{"davao del sur", []string{"davao del sur", "dds", "d del sur"}},
	{"davao oriental", []string{"davao oriental", "dor", "d oriental"}},
	{"davao de oro", []string{"davao de oro", "compostela valley", "comval"}},
	{"davao occidental", []string{"davao occidental", "docc", "d occidental"}},
}

var ethnicEntries = []keywordEntry{
	{"meranaw", []string{"maranao", "marano", "meranaw", "meranaos", "maranaos"}},
	{"maguindanaon", []string{"maguindanao", "maguindanaon", "magindanao", "maguindanons"}},
	{"tausug", []string{"tausug", "tausog", "tausugs", "tau sug"}},
	{"sama", []string{"sama", "sama-bajau", "sama bajau", "bajau", "badjao"}},
	{"badjao", []string{"badjao", "badjaos", "bajo", "sama badjao"}},
	{"yakan", []string{"yakan", "yakans", "yaken"}},
	{"iranun", []string{"iranun", "iranon", "ilanun", "iranuns"}},
	{"kagan_kalagan", []string{"kalagan", "kagan", "kagan kalagan", "kaagan"}},
	{"kolibugan", []string{"kolibugan", "kalibugan", "kolibogan"}},
	{"sangil", []string{"sangil", "sangir", "sangils"}},
	{"molbog", []string{"molbog", "mulbug", "molbogs"}},
	{"jama_mapun", []string{"jama mapun", "yakan", "mapun"}},
	{"palawani", []string{"palawani", "palawan", "palawanos"}},
}

var livelihoodEntries = []keywordEntry{
	{"farming", []string{"farming", "farmer", "farmers", "agriculture", "agricultural", "crops", "rice", "corn", "vegetables"}},
	{"fishing", []string{"fishing", "fisher", "fisherman", "fishermen", "fisherfolk", "fish", "aquaculture"}},
	{"trading", []string{"trading", "trader", "traders", "merchant", "merchants", "business", "sari-sari"}},
	{"weaving", []string{"weaving", "weaver", "weavers", "textile", "textiles", "handloom"}},
	{"livestock", []string{"livestock", "cattle", "poultry", "chicken", "goat", "carabao", "animal husbandry"}},
	{"carpentry", []string{"carpentry", "carpenter", "carpenters", "woodwork", "woodworking"}},
	{"masonry", []string{"masonry", "mason", "masons", "construction", "builder"}},
	{"driving", []string{"driving", "driver", "drivers", "tricycle", "jeepney", "transport"}},
	{"vending", []string{"vending", "vendor", "vendors", "street vendor", "market vendor"}},
	{"handicrafts", []string{"handicraft", "handicrafts", "artisan", "artisans", "crafts"}},
}

var statusEntries = []keywordEntry{
	{"ongoing", []string{"ongoing", "in progress", "active", "in-progress", "running"}},
	{"completed", []string{"completed", "done", "finished", "complete", "closed"}},
	{"draft", []string{"draft", "drafts", "drafted"}},
	{"pending", []string{"pending", "waiting", "awaiting"}},
	{"approved", []string{"approved", "accepted", "confirmed"}},
	{"rejected", []string{"rejected", "declined", "denied"}},
	{"cancelled", []string{"cancelled", "canceled"}},
	{"suspended", []string{"suspended", "paused", "on hold"}},
	{"planned", []string{"planned", "scheduled", "upcoming"}},
}

var sectorEntries = []keywordEntry{
	{"education", []string{"education", "educational", "school", "learning", "training"}},
	{"economic_development", []string{"economic", "economy", "livelihood", "business", "enterprise"}},
	{"social_development", []string{"social", "community development", "social welfare"}},
	{"cultural_development", []string{"cultural", "culture", "heritage", "tradition"}},
	{"infrastructure", []string{"infrastructure", "roads", "bridges", "facilities", "buildings"}},
	{"health", []string{"health", "medical", "healthcare", "clinic", "hospital", "wellness"}},
	{"governance", []string{"governance", "government", "administration", "leadership"}},
	{"environment", []string{"environment", "environmental", "ecology", "nature", "conservation"}},
	{"security", []string{"security", "peace", "safety", "protection", "conflict"}},
}

var priorityEntries = []keywordEntry{
	{"immediate", []string{"critical", "immediate", "urgent", "emergency", "asap"}},
	{"short_term", []string{"high", "high priority", "important", "pressing"}},
	{"medium_term", []string{"medium", "moderate", "normal"}},
	{"long_term", []string{"low", "low priority", "future", "long-term"}},
}

var urgencyEntries = []keywordEntry{
	{"immediate", []string{"immediate", "within 1 month", "within a month", "asap", "right now"}},
	{"short_term", []string{"short term", "short-term", "1-6 months", "few months"}},
	{"medium_term", []string{"medium term", "medium-term", "6-12 months", "this year"}},
	{"long_term", []string{"long term", "long-term", "over a year", "1+ years", "future"}},
}

var needStatusEntries = []keywordEntry{
	{"identified", []string{"identified", "unmet", "unfulfilled", "unaddressed", "pending"}},
	{"validated", []string{"validated", "verified", "confirmed"}},
	{"prioritized", []string{"prioritized", "ranked"}},
	{"planned", []string{"planned", "scheduled", "programmed"}},
	{"in_progress", []string{"in progress", "ongoing", "active", "implementing", "partially met"}},
	{"completed", []string{"completed", "met", "fulfilled", "addressed", "finished", "done"}},
	{"deferred", []string{"deferred", "postponed", "delayed"}},
	{"rejected", []string{"rejected", "declined", "cancelled"}},
}

var ministryEntries = []keywordEntry{
	{"MILG", []string{"milg", "local government", "ministry of local government"}},
	{"MSSD", []string{"mssd", "social services", "social development", "ministry of social services"}},
	{"MHPW", []string{"mhpw", "health", "public works", "ministry of health"}},
	{"MBDA", []string{"mbda", "basic education", "ministry of basic education"}},
	{"MHEA", []string{"mhea", "higher education", "ministry of higher education"}},
	{"MOJ", []string{"moj", "justice", "ministry of justice"}},
	{"MOI", []string{"moi", "interior", "ministry of interior"}},
	{"MTIT", []string{"mtit", "transportation", "ministry of transportation"}},
	{"MENR", []string{"menr", "environment", "natural resources", "ministry of environment"}},
	{"MAFAR", []string{"mafar", "agriculture", "fisheries", "ministry of agriculture"}},
	{"MTRADEIN", []string{"mtradein", "trade", "investment", "ministry of trade"}},
	{"MLGD", []string{"mlgd", "labor", "employment", "ministry of labor"}},
}

var assessmentEntries = []keywordEntry{
	{"rapid", []string{"rapid", "quick", "fast", "emergency"}},
	{"comprehensive", []string{"comprehensive", "detailed", "thorough", "full", "complete"}},
	{"baseline", []string{"baseline", "initial", "starting", "benchmark"}},
	{"thematic", []string{"thematic", "sectoral", "sector-specific", "focused"}},
	{"needs_assessment", []string{"needs assessment", "na", "mana"}},
	{"impact", []string{"impact", "outcome", "effect", "result"}},
	{"monitoring", []string{"monitoring", "progress", "tracking"}},
}

var partnershipEntries = []keywordEntry{
	{"MOA", []string{"moa", "memorandum of agreement", "agreement"}},
	{"MOU", []string{"mou", "memorandum of understanding", "understanding"}},
	{"collaboration", []string{"collaboration", "collaborative", "partnership", "joint"}},
	{"joint_program", []string{"joint program", "joint project", "joint initiative"}},
	{"technical_assistance", []string{"technical assistance", "ta", "technical support"}},
	{"capacity_building", []string{"capacity building", "training", "capability development"}},
	{"coordination", []string{"coordination", "coordinated", "multi-stakeholder"}},
}

var (
	provinceTable    = compileTable(provinceEntries)
	ethnicTable      = compileTable(ethnicEntries)
	livelihoodTable  = compileTable(livelihoodEntries)
	statusTable      = compileTable(statusEntries)
	sectorTable      = compileTable(sectorEntries)
	priorityTable    = compileTable(priorityEntries)
	urgencyTable     = compileTable(urgencyEntries)
	needStatusTable  = compileTable(needStatusEntries)
	ministryTable    = compileTable(ministryEntries)
	assessmentTable  = compileTable(assessmentEntries)
	partnershipTable = compileTable(partnershipEntries)
	regionPatterns   = compileRegions(regions)
)

type compiledRegion struct {
	region
	patterns []compiledKeyword
}

func compileRegions(rs []region) []compiledRegion {
	out := make([]compiledRegion, 0, len(rs))
	for _, r := range rs {
		cr := compiledRegion{region: r}
		for _, v := range r.variants {
			cr.patterns = append(cr.patterns, compiledKeyword{word: v, re: wordPattern(v)})
		}
		out = append(out, cr)
	}
	return out
}

var monthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

type namedNumber struct {
	word  string
	value int
	re    *regexp.Regexp
}

func compileNumbers(words []string, values []int) []namedNumber {
	out := make([]namedNumber, len(words))
	for i, w := range words {
		out[i] = namedNumber{word: w, value: values[i], re: wordPattern(w)}
	}
	return out
}

var writtenNumbers = compileNumbers(
	strings.Fields("one two three four five six seven eight nine ten eleven twelve thirteen fourteen "+
		"fifteen sixteen seventeen eighteen nineteen twenty twenty-five thirty forty fifty hundred thousand"),
	[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 25, 30, 40, 50, 100, 1000},
)

var ordinalNumbers = compileNumbers(
	strings.Fields("first second third fourth fifth sixth seventh eighth ninth tenth "+
		"1st 2nd 3rd 4th 5th 6th 7th 8th 9th 10th"),
	[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
)
