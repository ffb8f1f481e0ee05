package catalog

import "obcms-chat-workers/internal/chat/templates"

const needColumns = "'id', 'title', 'sector', 'urgency_level', 'status', 'community__name'"

func needsInLocation(tail string) string {
	return "Need.objects.filter(" +
		"Q(community__barangay__municipality__province__region__name__icontains='{location}') | " +
		"Q(community__barangay__municipality__province__name__icontains='{location}') | " +
		"Q(community__barangay__municipality__name__icontains='{location}'))" + tail
}

var needsTemplates = []templates.Definition{
	{
		ID:               "list_needs_by_sector",
		Category:         "needs",
		Pattern:          `\b(?:show|list|display|find)\s+(?:the\s+)?(?:\w+\s+)?sector(?:al)?\s+needs\b`,
		QueryTemplate:    "Need.objects.filter({sector_filter}).order_by('-created_at').values(" + needColumns + ")[:{limit}]",
		RequiredEntities: []string{"sector"},
		OptionalEntities: []string{"numbers"},
		Priority:         9,
		ResultType:       templates.ResultList,
		Examples:         []string{"Show sector needs", "List education sector needs", "Show the health sector needs"},
		Description:      "List identified needs for a sector",
		Tags:             []string{"needs", "sector", "list"},
	},
	{
		ID:               "count_needs_by_sector",
		Category:         "needs",
		Pattern:          `\b(?:how many|count|number of)\s+(?:\w+\s+)?sector(?:al)?\s+needs\b`,
		QueryTemplate:    "Need.objects.filter({sector_filter}).count()",
		RequiredEntities: []string{"sector"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many education sector needs?", "Count livelihood sector needs"},
		Description:      "Count identified needs for a sector",
		Tags:             []string{"needs", "sector", "count"},
	},
	{
		ID:               "list_all_needs",
		Category:         "needs",
		Pattern:          `\b(?:show|list|display)\s+(?:me\s+)?(?:all\s+)?(?:the\s+)?(?:community\s+)?needs\s*(?:\?|$)`,
		QueryTemplate:    "Need.objects.all().order_by('-created_at').values(" + needColumns + ")[:{limit}]",
		OptionalEntities: []string{"numbers"},
		Priority:         7,
		ResultType:       templates.ResultList,
		Examples:         []string{"Show all needs", "List community needs", "Display the needs?"},
		Tags:             []string{"needs", "list"},
	},
	{
		ID:            "count_all_needs",
		Category:      "needs",
		Pattern:       `\b(?:how many|count|total|number of)\s+(?:identified\s+)?(?:community\s+)?needs\b`,
		QueryTemplate: "Need.objects.count()",
		Priority:      8,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many needs?", "Total identified needs", "Number of community needs"},
		Tags:          []string{"needs", "count"},
	},
	{
		ID:               "urgent_needs",
		Category:         "needs",
		Pattern:          `\b(?:urgent|critical|immediate|high[- ]priority)\s+needs\b`,
		QueryTemplate:    "Need.objects.filter(urgency_level__in=['immediate', 'short_term']).exclude(status__in=['completed', 'rejected']).order_by('urgency_level', '-created_at').values(" + needColumns + ")[:{limit}]",
		OptionalEntities: []string{"numbers"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Show urgent needs", "What are the critical needs?", "List high-priority needs"},
		Description:      "Open needs that require immediate or short-term action",
		Tags:             []string{"needs", "priority", "list"},
	},
	{
		ID:            "count_unmet_needs",
		Category:      "needs",
		Pattern:       `\b(?:unmet|unaddressed|unfulfilled|pending|open)\s+needs\b`,
		QueryTemplate: "Need.objects.filter(status__in=['identified', 'validated', 'prioritized']).count()",
		Priority:      8,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many unmet needs?", "Count pending needs"},
		Tags:          []string{"needs", "status", "count"},
	},
	{
		ID:               "needs_by_urgency",
		Category:         "needs",
		Pattern:          `\bneeds\s+(?:with|by|at)\s+(?:\w+\s+)?urgency\b`,
		QueryTemplate:    "Need.objects.filter({priority_filter}).values('urgency_level').annotate(count=Count('id')).order_by('urgency_level')",
		OptionalEntities: []string{"urgency_level"},
		Priority:         7,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Needs by urgency", "Needs with immediate urgency"},
		Tags:             []string{"needs", "priority", "aggregate"},
	},
	{
		ID:               "needs_in_location",
		Category:         "needs",
		Pattern:          `\bneeds\s+(?:in|at|of|for)\s+\w+`,
		QueryTemplate:    needsInLocation(".order_by('-created_at').values(" + needColumns + ")[:{limit}]"),
		RequiredEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Needs in Cotabato", "Show needs for Region XII"},
		Tags:             []string{"needs", "location", "list"},
	},
	{
		ID:            "needs_per_sector",
		Category:      "needs",
		Pattern:       `\bneeds\s+(?:by|per)\s+sector\b`,
		QueryTemplate: "Need.objects.values('sector').annotate(count=Count('id'), estimated_cost=Sum('estimated_cost')).order_by('-count')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs by sector", "Breakdown of needs per sector"},
		Description:   "Number and estimated cost of needs in every sector",
		Tags:          []string{"needs", "sector", "aggregate"},
	},
	{
		ID:               "needs_per_status",
		Category:         "needs",
		Pattern:          `\bneeds\s+(?:by|per)\s+status\b`,
		QueryTemplate:    "Need.objects.filter({need_status_filter}).values('status').annotate(count=Count('id')).order_by('status')",
		OptionalEntities: []string{"need_status"},
		Priority:         7,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Needs by status"},
		Tags:             []string{"needs", "status", "aggregate"},
	},
}
