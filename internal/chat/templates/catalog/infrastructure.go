package catalog

import "obcms-chat-workers/internal/chat/templates"

const lackingStatuses = "['none', 'poor', 'limited']"

func lackingInfrastructure(infraType string) string {
	return "OBCCommunity.objects.filter(infrastructure__infrastructure_type='" + infraType +
		"', infrastructure__availability_status__in=" + lackingStatuses + ").distinct().count()"
}

var infrastructureTemplates = []templates.Definition{
	{
		ID:       "count_communities_by_water_access",
		Category: "infrastructure",
		Pattern: `\b(?:(?:how many|count|total)\s+)?(?:obc\s+)?communities\s+(?:have|with|having|that have)\s+` +
			`(?:(?P<rating>no|none|poor|limited|available|good)\s+)?water(?:\s+(?:access|supply))?\b`,
		QueryTemplate:    "OBCCommunity.objects.filter(infrastructure__infrastructure_type='water'{rating_filter}).distinct().count()",
		OptionalEntities: []string{"rating"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples: []string{
			"Communities with no water access",
			"Communities with water access",
			"How many communities have poor water supply?",
			"Count communities with limited water",
		},
		Description: "Count communities by water access, optionally filtered by availability rating",
		Tags:        []string{"infrastructure", "water", "count"},
	},
	{
		ID:            "count_communities_without_electricity",
		Category:      "infrastructure",
		Pattern:       `\b(?:how many|count|total)\s+(?:obc\s+)?communities\s+(?:without|with no|lacking|have no|need)\s+(?:electricity|power)\b`,
		QueryTemplate: lackingInfrastructure("electricity"),
		Priority:      9,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many communities without electricity?", "Count communities lacking power"},
		Description:   "Count communities with no or poor electricity",
		Tags:          []string{"infrastructure", "electricity", "count"},
	},
	{
		ID:            "count_communities_without_health_facilities",
		Category:      "infrastructure",
		Pattern:       `\b(?:how many|count|total)\s+(?:obc\s+)?communities\s+(?:without|with no|lacking|have no|need)\s+(?:health\s*facilities|healthcare|health\s*centers?|clinics?)`,
		QueryTemplate: lackingInfrastructure("health"),
		Priority:      9,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many communities without health centers?", "Count communities lacking clinics"},
		Description:   "Count communities with no or poor access to health facilities",
		Tags:          []string{"infrastructure", "health", "count"},
	},
	{
		ID:            "count_communities_without_schools",
		Category:      "infrastructure",
		Pattern:       `\b(?:how many|count|total)\s+(?:obc\s+)?communities\s+(?:without|with no|lacking|have no|need)\s+(?:schools?|education\s*facilities|learning\s*centers?|madrasah)`,
		QueryTemplate: lackingInfrastructure("education"),
		Priority:      9,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many communities without schools?", "Total communities with no madrasah"},
		Description:   "Count communities with no or poor education facilities",
		Tags:          []string{"infrastructure", "education", "count"},
	},
	{
		ID:       "list_communities_needing_water",
		Category: "infrastructure",
		Pattern:  `\b(?:show|list|find|which)\s+(?:obc\s+)?communities\s+(?:need|needs|require|lack|without)\s+(?:clean\s+)?water\b`,
		QueryTemplate: "OBCCommunity.objects.filter(infrastructure__infrastructure_type='water', infrastructure__availability_status__in=" +
			lackingStatuses + ").distinct().values(" + communityColumns + ")[:{limit}]",
		OptionalEntities: []string{"numbers"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Which communities need clean water?", "List communities without water"},
		Description:      "List communities whose water supply is missing or poor",
		Tags:             []string{"infrastructure", "water", "list"},
	},
	{
		ID:       "list_critical_infrastructure_gaps",
		Category: "infrastructure",
		Pattern:  `\b(?:show|list|find)\s+(?:obc\s+)?communities\s+with\s+(?:critical|urgent|high\s+priority)\s+infrastructure\s+(?:needs|gaps)\b`,
		QueryTemplate: "OBCCommunity.objects.filter(infrastructure__priority_for_improvement__in=['critical', 'high']).distinct().values(" +
			communityColumns + ")[:{limit}]",
		Priority:   8,
		ResultType: templates.ResultList,
		Examples:   []string{"Show communities with critical infrastructure needs", "Find communities with high priority infrastructure gaps"},
		Tags:       []string{"infrastructure", "priority", "list"},
	},
	{
		ID:       "infrastructure_summary",
		Category: "infrastructure",
		Pattern:  `\binfrastructure\s+(?:by|per)\s+type\b|\binfrastructure\s+(?:summary|breakdown|overview)\b`,
		QueryTemplate: "CommunityInfrastructure.objects.values('infrastructure_type').annotate(total=Count('id'), " +
			"lacking=Count('id', filter=Q(availability_status__in=" + lackingStatuses + "))).order_by('infrastructure_type')",
		Priority:    7,
		ResultType:  templates.ResultAggregate,
		Examples:    []string{"Infrastructure by type", "Show the infrastructure summary"},
		Description: "Infrastructure records and gaps per infrastructure type",
		Tags:        []string{"infrastructure", "aggregate"},
	},
	{
		ID:       "infrastructure_in_location",
		Category: "infrastructure",
		Pattern:  `\binfrastructure\s+(?:status\s+)?(?:in|at|of)\s+\w+`,
		QueryTemplate: "CommunityInfrastructure.objects.filter(" +
			"Q(community__barangay__municipality__province__region__name__icontains='{location}') | " +
			"Q(community__barangay__municipality__province__name__icontains='{location}') | " +
			"Q(community__barangay__municipality__name__icontains='{location}'))" +
			".values('infrastructure_type', 'availability_status').annotate(total=Count('id')).order_by('infrastructure_type')",
		RequiredEntities: []string{"location"},
		Priority:         7,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Infrastructure in Lanao del Norte", "Show infrastructure status of Region IX"},
		Tags:             []string{"infrastructure", "location", "aggregate"},
	},
}
