package catalog

import "obcms-chat-workers/internal/chat/templates"

const communityColumns = "'id', 'name', 'barangay__name', 'barangay__municipality__name', 'barangay__municipality__province__name'"

var communityTemplates = []templates.Definition{
	{
		ID:            "count_total_communities",
		Category:      "communities",
		Pattern:       `\b(?:how many|count|total|number of)\s+(?:obc\s+)?communities\b`,
		QueryTemplate: "OBCCommunity.objects.count()",
		Priority:      7,
		ResultType:    templates.ResultCount,
		Examples: []string{
			"How many communities are there?",
			"Total OBC communities",
			"Number of communities",
		},
		Description: "Count every registered OBC community",
		Tags:        []string{"communities", "count"},
	},
	{
		ID:               "count_communities_by_location",
		Category:         "communities",
		Pattern:          `\b(?:how many|count|total|number of)\s+(?:obc\s+)?communities\s+(?:are\s+)?(?:there\s+)?(?:in|at|within|from)\s+\w+`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).count()",
		RequiredEntities: []string{"location"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples: []string{
			"How many communities in Region IX?",
			"Count communities in Zamboanga del Sur",
			"Number of OBC communities in Cotabato",
		},
		Description: "Count OBC communities in a region, province, municipality or barangay",
		Tags:        []string{"communities", "location", "count"},
	},
	{
		ID:            "list_all_communities",
		Category:      "communities",
		Pattern:       `\b(?:show|list|display|get)\s+(?:me\s+)?(?:all\s+)?(?:the\s+)?(?:obc\s+)?communities\s*(?:\?|$)`,
		QueryTemplate: "OBCCommunity.objects.all().order_by('name').values(" + communityColumns + ")[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples: []string{
			"Show all communities",
			"List OBC communities",
			"Display the communities?",
		},
		Description: "List OBC communities by name",
		Tags:        []string{"communities", "list"},
	},
	{
		ID:               "list_communities_by_location",
		Category:         "communities",
		Pattern:          `\b(?:show|list|display|find)\s+(?:me\s+)?(?:all\s+)?(?:the\s+)?(?:obc\s+)?communities\s+(?:in|at|within|from)\s+\w+`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).order_by('name').values(" + communityColumns + ")[:{limit}]",
		RequiredEntities: []string{"location"},
		OptionalEntities: []string{"numbers"},
		Priority:         9,
		ResultType:       templates.ResultList,
		Examples: []string{
			"Show communities in Sultan Kudarat",
			"List all OBC communities in Region XII",
			"Find communities within Pagadian",
		},
		Description: "List OBC communities in a location",
		Tags:        []string{"communities", "location", "list"},
	},
	{
		ID:       "count_communities_by_ethnic_group",
		Category: "communities",
		Pattern: `\b(?:how many|count|number of)\s+(?:maranao|meranaw|maguindanaon|maguindanao|tausug|sama|badjao|yakan|` +
			`iranun|kalagan|kagan|kolibugan|sangil|molbog|jama mapun|palawani)\s+communities\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({ethnic_group_filter}).count()",
		RequiredEntities: []string{"ethnolinguistic_group"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples: []string{
			"How many Tausug communities?",
			"Count Maranao communities",
			"Number of Yakan communities in the region",
		},
		Description: "Count communities whose primary ethnolinguistic group matches",
		Tags:        []string{"communities", "ethnicity", "count"},
	},
	{
		ID:            "communities_per_ethnic_group",
		Category:      "communities",
		Pattern:       `\b(?:communities|population)\s+(?:by|per)\s+(?:ethnic|ethnolinguistic)\s+groups?\b`,
		QueryTemplate: "OBCCommunity.objects.values('primary_ethnic_group').annotate(count=Count('id'), population=Sum('estimated_obc_population')).order_by('-count')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples: []string{
			"Communities by ethnic group",
			"Show population per ethnolinguistic group",
		},
		Description: "Community count and population per primary ethnolinguistic group",
		Tags:        []string{"communities", "ethnicity", "aggregate"},
	},
	{
		ID:               "total_obc_population",
		Category:         "communities",
		Pattern:          `\b(?:total|overall|combined)\s+(?:obc\s+)?(?:population|households)\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).aggregate(total_population=Sum('estimated_obc_population'), total_households=Sum('total_households'), communities=Count('id'))",
		OptionalEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples: []string{
			"What is the total OBC population?",
			"Combined households in Region IX",
		},
		Description: "Sum of estimated OBC population and households, optionally for a location",
		Tags:        []string{"communities", "population", "aggregate"},
	},
	{
		ID:               "largest_communities",
		Category:         "communities",
		Pattern:          `\b(?:largest|biggest|most populous)\s+(?:obc\s+)?communities\b`,
		QueryTemplate:    "OBCCommunity.objects.filter(estimated_obc_population__isnull=False).order_by('-estimated_obc_population').values('name', 'barangay__name', 'barangay__municipality__name', 'estimated_obc_population')[:{limit}]",
		OptionalEntities: []string{"numbers"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples: []string{
			"Top 5 largest communities",
			"Which are the most populous OBC communities?",
		},
		Description: "Communities ranked by estimated OBC population",
		Tags:        []string{"communities", "population", "list"},
	},
	{
		ID:               "recently_added_communities",
		Category:         "communities",
		Pattern:          `\b(?:recently|newly)\s+(?:added|registered|created)\s+(?:obc\s+)?communities\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({date_range_filter}).order_by('-created_at').values('id', 'name', 'barangay__name', 'created_at')[:{limit}]",
		OptionalEntities: []string{"date_range"},
		Priority:         7,
		ResultType:       templates.ResultList,
		Examples: []string{
			"Recently added communities",
			"Show newly registered OBC communities this year",
		},
		Description: "Communities registered most recently",
		Tags:        []string{"communities", "temporal", "list"},
	},
}
