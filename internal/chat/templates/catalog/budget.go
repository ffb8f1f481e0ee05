package catalog

import "obcms-chat-workers/internal/chat/templates"

var budgetTemplates = []templates.Definition{
	{
		ID:            "total_budget",
		Category:      "budget",
		Pattern:       `\b(?:total|overall)\s+(?:ppa\s+|project\s+)?budget\b`,
		QueryTemplate: "WorkItem.objects.aggregate(total_budget=Sum('budget_allocated'), average_budget=Avg('budget_allocated'), work_items=Count('id'))",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"What is the total budget?", "Overall PPA budget"},
		Tags:          []string{"budget", "aggregate"},
	},
	{
		ID:            "budget_per_ministry",
		Category:      "budget",
		Pattern:       `\bbudget\s+(?:by|per|for each)\s+ministry\b`,
		QueryTemplate: "WorkItem.objects.values('lead_ministry').annotate(total_budget=Sum('budget_allocated'), work_items=Count('id')).order_by('-total_budget')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Budget by ministry", "Show budget per ministry"},
		Tags:          []string{"budget", "ministry", "aggregate"},
	},
	{
		ID:            "budget_per_status",
		Category:      "budget",
		Pattern:       `\bbudget\s+(?:by|per)\s+status\b`,
		QueryTemplate: "WorkItem.objects.values('status').annotate(total_budget=Sum('budget_allocated'), work_items=Count('id')).order_by('status')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Budget by status"},
		Tags:          []string{"budget", "status", "aggregate"},
	},
	{
		ID:               "largest_budget_allocations",
		Category:         "budget",
		Pattern:          `\b(?:largest|biggest|highest)\s+(?:budget\s+)?(?:allocations|budgets|ppas|projects)\b`,
		QueryTemplate:    "WorkItem.objects.filter(budget_allocated__isnull=False).order_by('-budget_allocated').values('title', 'lead_ministry', 'budget_allocated')[:{limit}]",
		OptionalEntities: []string{"numbers"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Top 10 largest budget allocations", "Highest budgets", "Biggest projects"},
		Tags:             []string{"budget", "list"},
	},
	{
		ID:               "ministry_budget",
		Category:         "budget",
		Pattern:          `\b(?:budget|funding|allocation)\s+(?:of|for|under)\s+(?:the\s+)?(?:ministry|milg|mssd|mhpw|mbda|mhea|moj|moi|mtit|menr|mafar|mtradein|mlgd)\b`,
		QueryTemplate:    "WorkItem.objects.filter({ministry_filter}).aggregate(total_budget=Sum('budget_allocated'), work_items=Count('id'))",
		RequiredEntities: []string{"ministry"},
		Priority:         9,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Budget of MSSD", "Funding for the Ministry of Health"},
		Tags:             []string{"budget", "ministry", "aggregate"},
	},
	{
		ID:               "estimated_cost_of_needs",
		Category:         "budget",
		Pattern:          `\b(?:total|estimated)\s+cost\s+of\s+(?:all\s+)?(?:the\s+)?(?:\w+\s+)?needs\b`,
		QueryTemplate:    "Need.objects.filter({sector_filter}).aggregate(total_cost=Sum('estimated_cost'), needs=Count('id'))",
		OptionalEntities: []string{"sector"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Estimated cost of health needs", "Total cost of all the needs"},
		Tags:             []string{"budget", "needs", "aggregate"},
	},
}
