package catalog

import "obcms-chat-workers/internal/chat/templates"

// Raw {location} text is matched against the names along the administrative
// hierarchy when the query does not start from OBCCommunity.
var geographicTemplates = []templates.Definition{
	{
		ID:            "count_all_regions",
		Category:      "geographic",
		Pattern:       `\b(?:how many|count|total|number of)\s+regions?\b`,
		QueryTemplate: "Region.objects.count()",
		Priority:      8,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many regions?", "Count regions", "Total number of regions"},
		Description:   "Count regions covered by the program",
		Tags:          []string{"geographic", "regions", "count"},
	},
	{
		ID:            "list_all_regions",
		Category:      "geographic",
		Pattern:       `\b(?:show|list|display|get|what are)\s+(?:me\s+)?(?:the\s+)?(?:list of\s+)?(?:all\s+)?regions?\b`,
		QueryTemplate: "Region.objects.all().order_by('name')",
		Priority:      10,
		ResultType:    templates.ResultList,
		Examples:      []string{"Show me all regions", "List regions", "What are the regions?"},
		Description:   "List all regions",
		Tags:          []string{"geographic", "regions", "list"},
	},
	{
		ID:            "count_all_provinces",
		Category:      "geographic",
		Pattern:       `\b(?:how many|count|total|number of)\s+(?:obc\s+)?provinces?\b`,
		QueryTemplate: "Province.objects.count()",
		Priority:      8,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many provinces?", "Count provinces", "Number of OBC provinces"},
		Description:   "Count provinces",
		Tags:          []string{"geographic", "provinces", "count"},
	},
	{
		ID:            "list_all_provinces",
		Category:      "geographic",
		Pattern:       `\b(?:show|list|display|get|what are)\s+(?:me\s+)?(?:the\s+)?(?:list of\s+)?(?:all\s+)?provinces?\b`,
		QueryTemplate: "Province.objects.all().order_by('region__name', 'name')",
		Priority:      10,
		ResultType:    templates.ResultList,
		Examples:      []string{"Show me all provinces", "List provinces", "What are the provinces?", "Get the list of all provinces"},
		Description:   "List all provinces grouped by region",
		Tags:          []string{"geographic", "provinces", "list"},
	},
	{
		ID:               "list_provinces_by_region",
		Category:         "geographic",
		Pattern:          `\b(?:show|list|display|get)\s+(?:me\s+)?(?:the\s+)?(?:all\s+)?provinces?\s+(?:in|of|under|within)\s+\w+`,
		QueryTemplate:    "Province.objects.filter(region__name__icontains='{location}').order_by('name')",
		RequiredEntities: []string{"location"},
		Priority:         10,
		ResultType:       templates.ResultList,
		Examples:         []string{"Show me all provinces in Region IX", "List provinces of Region XII", "Display the provinces under Region X"},
		Description:      "List the provinces of a region",
		Tags:             []string{"geographic", "provinces", "location", "list"},
	},
	{
		ID:               "count_provinces_by_region",
		Category:         "geographic",
		Pattern:          `\b(?:how many|count|number of)\s+provinces?\s+(?:are\s+)?(?:there\s+)?(?:in|under|within)\s+\w+`,
		QueryTemplate:    "Province.objects.filter(region__name__icontains='{location}').count()",
		RequiredEntities: []string{"location"},
		Priority:         10,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many provinces in Region XI?", "Count provinces under Region X"},
		Description:      "Count the provinces of a region",
		Tags:             []string{"geographic", "provinces", "location", "count"},
	},
	{
		ID:            "count_all_municipalities",
		Category:      "geographic",
		Pattern:       `\b(?:how many|count|total|number of)\s+(?:municipalities|cities|towns)\b`,
		QueryTemplate: "Municipality.objects.count()",
		Priority:      8,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many municipalities?", "Number of cities", "Count towns"},
		Description:   "Count municipalities and cities",
		Tags:          []string{"geographic", "municipalities", "count"},
	},
	{
		ID:               "list_municipalities_by_province",
		Category:         "geographic",
		Pattern:          `\b(?:show|list|display)\s+(?:me\s+)?(?:the\s+)?(?:all\s+)?(?:municipalities|cities|towns)\s+(?:in|of|within)\s+\w+`,
		QueryTemplate:    "Municipality.objects.filter(province__name__icontains='{location}').order_by('name').values('name', 'municipality_type', 'province__name')",
		RequiredEntities: []string{"location"},
		Priority:         9,
		ResultType:       templates.ResultList,
		Examples:         []string{"List municipalities in Lanao del Norte", "Show me the towns of Sarangani"},
		Description:      "List the municipalities of a province",
		Tags:             []string{"geographic", "municipalities", "location", "list"},
	},
	{
		ID:            "count_all_barangays",
		Category:      "geographic",
		Pattern:       `\b(?:how many|count|total|number of)\s+barangays?\b`,
		QueryTemplate: "Barangay.objects.count()",
		Priority:      7,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many barangays?", "Total barangays"},
		Description:   "Count barangays",
		Tags:          []string{"geographic", "barangays", "count"},
	},
	{
		ID:               "count_barangays_by_location",
		Category:         "geographic",
		Pattern:          `\b(?:how many|count|number of)\s+barangays?\s+(?:are\s+)?(?:there\s+)?(?:in|within)\s+\w+`,
		QueryTemplate:    "Barangay.objects.filter(Q(municipality__name__icontains='{location}') | Q(municipality__province__name__icontains='{location}')).count()",
		RequiredEntities: []string{"location"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many barangays in Zamboanga del Norte?", "Count barangays within Dipolog"},
		Description:      "Count barangays in a municipality or province",
		Tags:             []string{"geographic", "barangays", "location", "count"},
	},
	{
		ID:            "communities_per_region",
		Category:      "geographic",
		Pattern:       `\bcommunities\s+(?:per|by|in each)\s+region\b`,
		QueryTemplate: "Region.objects.annotate(community_count=Count('provinces__municipalities__barangays__obc_communities', distinct=True)).order_by('-community_count')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Communities per region", "How many communities in each region?"},
		Description:   "Number of OBC communities in every region",
		Tags:          []string{"geographic", "communities", "aggregate"},
	},
	{
		ID:            "communities_per_province",
		Category:      "geographic",
		Pattern:       `\bcommunities\s+(?:per|by|in each)\s+province\b`,
		QueryTemplate: "Province.objects.annotate(community_count=Count('municipalities__barangays__obc_communities', distinct=True)).order_by('-community_count')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Communities by province", "Number of communities in each province"},
		Description:   "Number of OBC communities in every province",
		Tags:          []string{"geographic", "communities", "aggregate"},
	},
	{
		ID:            "population_per_region",
		Category:      "geographic",
		Pattern:       `\b(?:obc\s+)?population\s+(?:by|per|in each)\s+region\b`,
		QueryTemplate: "Region.objects.annotate(total_population=Sum('provinces__municipalities__barangays__obc_communities__estimated_obc_population')).order_by('-total_population')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"OBC population by region", "Population per region"},
		Description:   "Estimated OBC population summed per region",
		Tags:          []string{"geographic", "population", "aggregate"},
	},
}
