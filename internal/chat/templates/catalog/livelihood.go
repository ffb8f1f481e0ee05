package catalog

import "obcms-chat-workers/internal/chat/templates"

var livelihoodTemplates = []templates.Definition{
	{
		ID:               "count_communities_by_livelihood",
		Category:         "livelihood",
		Pattern:          `\b(?:how many|count|number of)\s+(?:obc\s+)?(?:farming|fishing|trading|weaving|farmer|fisher\w*|trader|livestock|handicraft)\s+communities\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({livelihood_filter}).count()",
		RequiredEntities: []string{"livelihood"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many fishing communities?", "Count farming communities", "Number of OBC fisherfolk communities"},
		Description:      "Count communities by primary livelihood",
		Tags:             []string{"livelihood", "communities", "count"},
	},
	{
		ID:               "list_communities_by_livelihood",
		Category:         "livelihood",
		Pattern:          `\b(?:show|list|find|which)\s+(?:obc\s+)?communities\s+(?:rely on|depend on|engaged in|engage in|doing)\s+(?:farming|fishing|trading|weaving|livestock|handicrafts?|agriculture)\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({livelihood_filter}).order_by('name').values('id', 'name', 'primary_livelihood', 'barangay__municipality__name')[:{limit}]",
		RequiredEntities: []string{"livelihood"},
		OptionalEntities: []string{"numbers"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Which communities rely on fishing?", "List communities engaged in weaving"},
		Tags:             []string{"livelihood", "communities", "list"},
	},
	{
		ID:            "communities_per_livelihood",
		Category:      "livelihood",
		Pattern:       `\b(?:communities|households)\s+(?:by|per)\s+(?:primary\s+)?livelihood\b`,
		QueryTemplate: "OBCCommunity.objects.values('primary_livelihood').annotate(count=Count('id'), households=Sum('total_households')).order_by('-count')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Communities by livelihood", "Households per primary livelihood"},
		Description:   "Community and household counts per primary livelihood",
		Tags:          []string{"livelihood", "aggregate"},
	},
	{
		ID:               "livelihoods_in_location",
		Category:         "livelihood",
		Pattern:          `\b(?:main\s+)?livelihoods?\s+(?:in|at|of)\s+\w+`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).values('primary_livelihood').annotate(count=Count('id')).order_by('-count')",
		RequiredEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Main livelihoods in Sulu", "What is the livelihood of Region IX communities?"},
		Tags:             []string{"livelihood", "location", "aggregate"},
	},
}
