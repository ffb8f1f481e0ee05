package catalog

import "obcms-chat-workers/internal/chat/templates"

var policyTemplates = []templates.Definition{
	{
		ID:               "count_policy_recommendations",
		Category:         "policies",
		Pattern:          `\b(?:how many|count|number of)\s+(?:\w+\s+)?(?:policy\s+)?recommendations\b`,
		QueryTemplate:    "PolicyRecommendation.objects.filter({status_filter}).count()",
		OptionalEntities: []string{"status"},
		Priority:         8,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many policy recommendations?", "Count approved recommendations"},
		Tags:             []string{"policies", "count"},
	},
	{
		ID:               "list_policy_recommendations",
		Category:         "policies",
		Pattern:          `\b(?:show|list|display)\s+(?:all\s+)?(?:the\s+)?(?:\w+\s+)?policy\s+recommendations\b`,
		QueryTemplate:    "PolicyRecommendation.objects.filter({sector_filter}).order_by('-created_at').values('id', 'title', 'sector', 'status', 'priority')[:{limit}]",
		OptionalEntities: []string{"sector"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Show policy recommendations", "List all education policy recommendations"},
		Tags:             []string{"policies", "list"},
	},
	{
		ID:            "policies_per_sector",
		Category:      "policies",
		Pattern:       `\b(?:policies|policy recommendations|recommendations)\s+(?:by|per)\s+sector\b`,
		QueryTemplate: "PolicyRecommendation.objects.values('sector').annotate(count=Count('id'), total_budget=Sum('estimated_budget')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Policy recommendations by sector", "Policies per sector"},
		Tags:          []string{"policies", "sector", "aggregate"},
	},
	{
		ID:       "policies_by_ministry",
		Category: "policies",
		Pattern: `\b(?:policies|recommendations)\s+(?:for|of|under|by)\s+(?:the\s+)?` +
			`(?:ministry|milg|mssd|mhpw|mbda|mhea|moj|moi|mtit|menr|mafar|mtradein|mlgd)\b`,
		QueryTemplate:    "PolicyRecommendation.objects.filter({ministry_filter}).order_by('-created_at').values('id', 'title', 'status', 'lead_ministry')[:{limit}]",
		RequiredEntities: []string{"ministry"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Recommendations for MILG", "Policies under the Ministry of Basic Education"},
		Tags:             []string{"policies", "ministry", "list"},
	},
	{
		ID:            "high_priority_policies",
		Category:      "policies",
		Pattern:       `\b(?:high[- ]priority|urgent|critical|priority)\s+(?:policies|policy recommendations|recommendations)\b`,
		QueryTemplate: "PolicyRecommendation.objects.filter(priority__in=['high', 'critical']).exclude(status__iexact='implemented').order_by('-created_at').values('id', 'title', 'sector', 'priority', 'status')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Show high priority policies", "Critical recommendations"},
		Tags:          []string{"policies", "priority", "list"},
	},
}
