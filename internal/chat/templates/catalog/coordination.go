package catalog

import "obcms-chat-workers/internal/chat/templates"

const workItemNouns = `(?:work\s*items|tasks|ppas|projects|activities)`

var coordinationTemplates = []templates.Definition{
	{
		ID:               "upcoming_events",
		Category:         "coordination",
		Pattern:          `\b(?:upcoming|scheduled|next)\s+(?:\d+\s+)?(?:coordination\s+)?(?:events|meetings)\b`,
		QueryTemplate:    "Event.objects.filter(status__in=['planned', 'scheduled']).order_by('start_date').values('title', 'event_type', 'start_date', 'venue')[:{limit}]",
		OptionalEntities: []string{"numbers"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Upcoming events", "Show the next 3 coordination meetings"},
		Tags:             []string{"coordination", "events", "list"},
	},
	{
		ID:               "count_events",
		Category:         "coordination",
		Pattern:          `\b(?:how many|count|number of)\s+(?:coordination\s+)?(?:events|meetings)\b`,
		QueryTemplate:    "Event.objects.filter({date_range_filter}).count()",
		OptionalEntities: []string{"date_range"},
		Priority:         8,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many events this month?", "Count coordination meetings last year"},
		Tags:             []string{"coordination", "events", "count"},
	},
	{
		ID:            "events_per_type",
		Category:      "coordination",
		Pattern:       `\b(?:events|meetings)\s+(?:by|per)\s+type\b`,
		QueryTemplate: "Event.objects.values('event_type').annotate(count=Count('id')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Events by type"},
		Tags:          []string{"coordination", "events", "aggregate"},
	},
	{
		ID:               "count_work_items",
		Category:         "coordination",
		Pattern:          `\b(?:how many|count|number of)\s+(?:\w+\s+)?` + workItemNouns + `\b`,
		QueryTemplate:    "WorkItem.objects.filter({status_filter}).count()",
		OptionalEntities: []string{"status"},
		Priority:         7,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many ongoing projects?", "Count completed tasks", "Number of PPAs"},
		Tags:             []string{"coordination", "work_items", "count"},
	},
	{
		ID:               "list_work_items",
		Category:         "coordination",
		Pattern:          `\b(?:show|list)\s+(?:all\s+)?(?:\w+\s+)?` + workItemNouns + `\b`,
		QueryTemplate:    "WorkItem.objects.filter({status_filter}).order_by('-created_at').values('id', 'title', 'work_type', 'status', 'progress')[:{limit}]",
		OptionalEntities: []string{"status"},
		Priority:         7,
		ResultType:       templates.ResultList,
		Examples:         []string{"List ongoing projects", "Show all completed PPAs", "List tasks"},
		Tags:             []string{"coordination", "work_items", "list"},
	},
	{
		ID:            "delayed_work_items",
		Category:      "coordination",
		Pattern:       `\b(?:overdue|delayed|late|behind schedule)\s+` + workItemNouns + `\b`,
		QueryTemplate: "WorkItem.objects.exclude(status__in=['completed', 'cancelled']).filter(due_date__isnull=False, progress__lt=100).order_by('due_date').values('title', 'status', 'due_date', 'progress')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Show overdue tasks", "Which are the delayed projects?"},
		Description:   "Unfinished work items ordered by due date",
		Tags:          []string{"coordination", "work_items", "list"},
	},
	{
		ID:       "work_items_by_ministry",
		Category: "coordination",
		Pattern: `\b(?:ppas|projects|programs|work\s*items)\s+(?:of|under|by|from)\s+(?:the\s+)?` +
			`(?:ministry|milg|mssd|mhpw|mbda|mhea|moj|moi|mtit|menr|mafar|mtradein|mlgd)\b`,
		QueryTemplate:    "WorkItem.objects.filter({ministry_filter}).order_by('-created_at').values('title', 'status', 'lead_ministry', 'budget_allocated')[:{limit}]",
		RequiredEntities: []string{"ministry"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"PPAs under MSSD", "Projects of the Ministry of Agriculture"},
		Tags:             []string{"coordination", "work_items", "ministry", "list"},
	},
}
