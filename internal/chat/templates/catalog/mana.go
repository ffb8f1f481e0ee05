package catalog

import "obcms-chat-workers/internal/chat/templates"

// MANA is the mapping and needs assessment program.
var manaTemplates = []templates.Definition{
	{
		ID:               "count_assessments",
		Category:         "mana",
		Pattern:          `\b(?:how many|count|total|number of)\s+(?:mana\s+)?assessments?\b`,
		QueryTemplate:    "Assessment.objects.filter({date_range_filter}).count()",
		OptionalEntities: []string{"date_range"},
		Priority:         8,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many assessments?", "Count MANA assessments this year", "Number of assessments last month"},
		Description:      "Count assessments, optionally within a date range",
		Tags:             []string{"mana", "assessments", "count"},
	},
	{
		ID:               "list_recent_assessments",
		Category:         "mana",
		Pattern:          `\b(?:recent|latest|show|list)\s+(?:the\s+)?(?:mana\s+)?assessments?\b`,
		QueryTemplate:    "Assessment.objects.filter({date_range_filter}).order_by('-start_date').values('id', 'title', 'assessment_type', 'status', 'start_date', 'community__name')[:{limit}]",
		OptionalEntities: []string{"date_range"},
		Priority:         7,
		ResultType:       templates.ResultList,
		Examples:         []string{"Recent assessments", "Show MANA assessments from last month", "List the assessments"},
		Tags:             []string{"mana", "assessments", "list"},
	},
	{
		ID:               "list_assessments_by_status",
		Category:         "mana",
		Pattern:          `\b(?:ongoing|active|completed|finished|planned|upcoming|draft)\s+(?:mana\s+)?assessments?\b`,
		QueryTemplate:    "Assessment.objects.filter({status_filter}).order_by('-start_date').values('id', 'title', 'assessment_type', 'status', 'start_date')[:{limit}]",
		RequiredEntities: []string{"status"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Show ongoing assessments", "Completed MANA assessments"},
		Tags:             []string{"mana", "assessments", "status", "list"},
	},
	{
		ID:            "assessments_per_type",
		Category:      "mana",
		Pattern:       `\bassessments?\s+(?:by|per)\s+type\b`,
		QueryTemplate: "Assessment.objects.values('assessment_type').annotate(count=Count('id')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Assessments by type", "Breakdown of assessments per type"},
		Tags:          []string{"mana", "assessments", "aggregate"},
	},
	{
		ID:       "assessments_in_location",
		Category: "mana",
		Pattern:  `\bassessments?\s+(?:conducted\s+)?(?:in|at|within)\s+\w+`,
		QueryTemplate: "Assessment.objects.filter(" +
			"Q(community__barangay__municipality__province__region__name__icontains='{location}') | " +
			"Q(community__barangay__municipality__province__name__icontains='{location}') | " +
			"Q(community__barangay__municipality__name__icontains='{location}'))" +
			".order_by('-start_date').values('id', 'title', 'assessment_type', 'start_date', 'community__name')[:{limit}]",
		RequiredEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Assessments in Lanao del Norte", "Show assessments conducted in Region X"},
		Tags:             []string{"mana", "assessments", "location", "list"},
	},
	{
		ID:            "count_communities_without_assessment",
		Category:      "mana",
		Pattern:       `\bcommunities\s+(?:without|with no|lacking|not yet covered by)\s+(?:an?\s+)?(?:mana\s+)?assessments?\b`,
		QueryTemplate: "OBCCommunity.objects.filter(assessments__isnull=True).count()",
		Priority:      8,
		ResultType:    templates.ResultCount,
		Examples:      []string{"How many communities without an assessment?", "Communities with no MANA assessment"},
		Description:   "Communities never covered by a MANA assessment",
		Tags:          []string{"mana", "communities", "count"},
	},
	{
		ID:            "needs_per_assessment_type",
		Category:      "mana",
		Pattern:       `\bneeds\s+(?:identified\s+)?(?:by|per)\s+assessment\s+type\b`,
		QueryTemplate: "Need.objects.filter(assessment__isnull=False).values('assessment__assessment_type').annotate(count=Count('id')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs by assessment type", "Needs identified per assessment type"},
		Tags:          []string{"mana", "needs", "aggregate"},
	},
}
