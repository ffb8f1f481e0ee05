package catalog

import "obcms-chat-workers/internal/chat/templates"

var stakeholderTemplates = []templates.Definition{
	{
		ID:            "count_organizations",
		Category:      "stakeholders",
		Pattern:       `\b(?:how many|count|total|number of)\s+(?:partner\s+)?(?:organizations|ngos|agencies|stakeholders)\b`,
		QueryTemplate: "Organization.objects.filter(is_active=True).count()",
		Priority:      8,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many partner organizations?", "Count NGOs", "Number of stakeholders"},
		Tags:          []string{"stakeholders", "organizations", "count"},
	},
	{
		ID:               "list_organizations",
		Category:         "stakeholders",
		Pattern:          `\b(?:show|list|display)\s+(?:all\s+)?(?:the\s+)?(?:partner\s+)?(?:organizations|ngos|agencies|stakeholders)\b`,
		QueryTemplate:    "Organization.objects.filter(is_active=True).order_by('name').values('id', 'name', 'acronym', 'organization_type')[:{limit}]",
		OptionalEntities: []string{"numbers"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"List partner organizations", "Show all stakeholders"},
		Tags:             []string{"stakeholders", "organizations", "list"},
	},
	{
		ID:            "organizations_per_type",
		Category:      "stakeholders",
		Pattern:       `\b(?:organizations|stakeholders|partners)\s+(?:by|per)\s+type\b`,
		QueryTemplate: "Organization.objects.filter(is_active=True).values('organization_type').annotate(count=Count('id')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Organizations by type", "Stakeholders per type"},
		Tags:          []string{"stakeholders", "organizations", "aggregate"},
	},
	{
		ID:               "count_partnerships",
		Category:         "stakeholders",
		Pattern:          `\b(?:how many|count|total|number of)\s+(?:active\s+|ongoing\s+|completed\s+)?(?:partnerships|moas?|mous?|agreements)\b`,
		QueryTemplate:    "Partnership.objects.filter({status_filter}).count()",
		OptionalEntities: []string{"status"},
		Priority:         8,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many partnerships?", "Count active MOAs", "Number of completed agreements"},
		Tags:             []string{"stakeholders", "partnerships", "count"},
	},
	{
		ID:            "partnerships_per_type",
		Category:      "stakeholders",
		Pattern:       `\bpartnerships?\s+(?:by|per)\s+type\b`,
		QueryTemplate: "Partnership.objects.values('partnership_type').annotate(count=Count('id')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Partnerships by type"},
		Tags:          []string{"stakeholders", "partnerships", "aggregate"},
	},
	{
		ID:            "expiring_partnerships",
		Category:      "stakeholders",
		Pattern:       `\b(?:expiring|ending|closing)\s+(?:partnerships|agreements|moas?|mous?)\b`,
		QueryTemplate: "Partnership.objects.filter(status__iexact='active', end_date__isnull=False).order_by('end_date').values('title', 'partnership_type', 'end_date', 'organization__name')[:{limit}]",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Show expiring partnerships", "List ending MOAs"},
		Tags:          []string{"stakeholders", "partnerships", "list"},
	},
	{
		ID:            "organizations_with_most_partnerships",
		Category:      "stakeholders",
		Pattern:       `\b(?:organizations|partners|agencies)\s+with\s+(?:the\s+)?most\s+(?:partnerships|agreements)\b`,
		QueryTemplate: "Organization.objects.annotate(partnership_count=Count('partnerships')).order_by('-partnership_count').values('name', 'acronym', 'partnership_count')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Organizations with the most partnerships", "Partners with most agreements"},
		Tags:          []string{"stakeholders", "partnerships", "list"},
	},
}
