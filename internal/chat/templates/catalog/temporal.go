package catalog

import "obcms-chat-workers/internal/chat/templates"

const (
	periodPhrase = `(?:the\s+)?(?:last|past|previous|this|current)\s+(?:\d+\s+)?(?:days?|weeks?|months?|quarters?|years?)`
	monthNames   = `(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)`
)

var temporalTemplates = []templates.Definition{
	{
		ID:               "count_last_n_days",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+(?:new\s+)?needs\s+(?:were\s+)?(?:identified\s+|recorded\s+|logged\s+)?(?:(?:in|during|over|within)\s+)?` + periodPhrase,
		QueryTemplate:    "Need.objects.filter({date_range_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many needs identified in the last 30 days?", "Count new needs during the last 2 weeks", "Number of needs logged this year"},
		Description:      "Count needs recorded within a relative period",
		Tags:             []string{"temporal", "needs", "count"},
	},
	{
		ID:               "count_by_date_range",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+(?:mana\s+)?assessments?\s+(?:were\s+)?(?:conducted\s+|completed\s+|held\s+)?(?:between|from)\s+\w+`,
		QueryTemplate:    "Assessment.objects.filter({date_range_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many assessments from January to March?", "Count assessments conducted between June and August 2024"},
		Tags:             []string{"temporal", "mana", "assessments", "count"},
	},
	{
		ID:               "count_by_fiscal_year",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+` + workItemNouns + `\s+(?:in|for|during)\s+(?:fy|fiscal\s+year)\s*\d{4}\b`,
		QueryTemplate:    "WorkItem.objects.filter({date_range_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many PPAs in FY 2024?", "Count projects for fiscal year 2023"},
		Description:      "Count work items created in a fiscal year",
		Tags:             []string{"temporal", "work_items", "fiscal_year", "count"},
	},
	{
		ID:               "count_by_month",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+(?:coordination\s+)?(?:events|meetings|engagements)\s+(?:were\s+)?(?:held\s+)?(?:in|during)\s+` + monthNames + `\b`,
		QueryTemplate:    "Event.objects.filter({date_range_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many meetings in March 2024?", "Count events held in January 2025"},
		Tags:             []string{"temporal", "coordination", "events", "count"},
	},
	{
		ID:            "count_by_quarter",
		Category:      "temporal",
		Pattern:       `\b(?:how many|count|number of)\s+(?:ppas|projects|programs)\s+(?:per|by|each)\s+quarter\b|\bquarterly\s+(?:ppa|project)\s+counts?\b`,
		QueryTemplate: "WorkItem.objects.values('start_date__year', 'start_date__quarter').annotate(count=Count('id')).order_by('start_date__year', 'start_date__quarter')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Number of PPAs per quarter", "Quarterly project counts"},
		Tags:          []string{"temporal", "work_items", "quarter", "aggregate"},
	},
	{
		ID:               "count_year_to_date",
		Category:         "temporal",
		Pattern:          `\b(?:year[- ]to[- ]date|ytd)\s+(?:mana\s+)?assessments?\b|\bassessments?\s+(?:conducted\s+)?so\s+far\s+this\s+year\b`,
		QueryTemplate:    "Assessment.objects.filter({date_range_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"YTD assessments", "Year-to-date MANA assessments", "Assessments conducted so far this year"},
		Description:      "Count assessments since the start of the year",
		Tags:             []string{"temporal", "mana", "assessments", "count"},
	},
	{
		ID:               "count_between_dates",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+` + workItemNouns + `\s+(?:were\s+)?(?:started|created|launched|approved)\s+(?:between|from)\s+\w+`,
		QueryTemplate:    "WorkItem.objects.filter({date_range_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many projects started between January and June 2024?", "Count PPAs launched from jan to mar"},
		Tags:             []string{"temporal", "work_items", "count"},
	},
	{
		ID:               "count_before_date",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+needs\s+(?:were\s+)?(?:identified|recorded|logged)\s+(?:before|prior\s+to)\s+\w+`,
		QueryTemplate:    "Need.objects.filter({before_date_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many needs were identified before 2024?", "Count needs recorded prior to March 2024"},
		Description:      "Count needs recorded before the start of a period",
		Tags:             []string{"temporal", "needs", "count"},
	},
	{
		ID:               "count_after_date",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+needs\s+(?:were\s+)?(?:identified|recorded|logged)\s+after\s+\w+`,
		QueryTemplate:    "Need.objects.filter({after_date_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many needs were identified after 2023?", "Count needs logged after June 2024"},
		Description:      "Count needs recorded after the end of a period",
		Tags:             []string{"temporal", "needs", "count"},
	},
	{
		ID:               "count_current_period",
		Category:         "temporal",
		Pattern:          `\b(?:how many|count|number of)\s+(?:partnerships|moas?|mous?|agreements)\s+(?:were\s+)?(?:signed\s+|started\s+)?(?:this|current|last)\s+(?:month|quarter|year)\b`,
		QueryTemplate:    "Partnership.objects.filter({date_range_filter}).count()",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultCount,
		Examples:         []string{"How many partnerships signed this year?", "Count MOAs last year"},
		Tags:             []string{"temporal", "stakeholders", "partnerships", "count"},
	},
	{
		ID:            "assessment_completion_trends",
		Category:      "temporal",
		Pattern:       `\bassessments?\s+completion\s+(?:trends?|by\s+month|per\s+month)\b|\bassessment\s+trends?\b`,
		QueryTemplate: "Assessment.objects.filter(status='completed', end_date__isnull=False).values('end_date__year', 'end_date__month').annotate(count=Count('id')).order_by('end_date__year', 'end_date__month')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Assessment completion trends", "Assessment trend", "Assessments completion by month"},
		Description:   "Completed assessments per month",
		Tags:          []string{"temporal", "mana", "assessments", "trend"},
	},
	{
		ID:            "ppa_implementation_trends",
		Category:      "temporal",
		Pattern:       `\b(?:ppa|project|program)\s+(?:implementation|start)\s+(?:trends?|by\s+month|per\s+month|over\s+time)\b|\bmonthly\s+(?:ppa|project)\s+(?:starts|launches)\b`,
		QueryTemplate: "WorkItem.objects.filter(start_date__isnull=False).values('start_date__year', 'start_date__month').annotate(count=Count('id'), budget=Sum('budget_allocated')).order_by('start_date__year', 'start_date__month')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"PPA implementation trends", "Project start by month", "Monthly PPA starts"},
		Tags:          []string{"temporal", "work_items", "trend"},
	},
	{
		ID:            "budget_utilization_trends",
		Category:      "temporal",
		Pattern:       `\bbudget\s+(?:utili[sz]ation|spending|allocation)\s+(?:trends?|over\s+time|by\s+year|per\s+year)\b`,
		QueryTemplate: "WorkItem.objects.filter(start_date__isnull=False).values('start_date__year').annotate(allocated=Sum('budget_allocated'), average_progress=Avg('progress'), work_items=Count('id')).order_by('start_date__year')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Budget utilization trends", "Budget allocation by year", "Budget spending over time"},
		Description:   "Allocated budget and average progress per start year",
		Tags:          []string{"temporal", "budget", "trend"},
	},
	{
		ID:            "needs_identification_trends",
		Category:      "temporal",
		Pattern:       `\bneeds?\s+(?:identification\s+)?trends?\b|\bneeds\s+(?:identified\s+)?(?:per|by|each)\s+month\b|\bmonthly\s+needs\b`,
		QueryTemplate: "Need.objects.values('created_at__year', 'created_at__month').annotate(count=Count('id')).order_by('created_at__year', 'created_at__month')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs identification trends", "Needs identified per month", "Monthly needs"},
		Tags:          []string{"temporal", "needs", "trend"},
	},
	{
		ID:            "engagement_frequency_trends",
		Category:      "temporal",
		Pattern:       `\b(?:meetings?|events?|engagements?)\s+(?:frequency|trends?|per\s+month|by\s+month)\b`,
		QueryTemplate: "Event.objects.values('start_date__year', 'start_date__month').annotate(count=Count('id')).order_by('start_date__year', 'start_date__month')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Engagement frequency", "Meetings per month", "Event trends"},
		Tags:          []string{"temporal", "coordination", "events", "trend"},
	},
	{
		ID:            "growth_rate_analysis",
		Category:      "temporal",
		Pattern:       `\b(?:community\s+)?growth\s+(?:rate|trend|analysis)\b|\bcommunities\s+(?:registered|added)\s+(?:per|by|each)\s+year\b`,
		QueryTemplate: "OBCCommunity.objects.values('created_at__year').annotate(communities=Count('id'), population=Sum('estimated_obc_population')).order_by('created_at__year')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Community growth rate", "Communities registered per year", "Growth analysis"},
		Description:   "Communities and population registered per year",
		Tags:          []string{"temporal", "communities", "trend"},
	},
	{
		ID:            "seasonal_patterns",
		Category:      "temporal",
		Pattern:       `\bseasonal(?:ity|\s+patterns?|\s+trends?)\b`,
		QueryTemplate: "Need.objects.values('created_at__month').annotate(count=Count('id')).order_by('created_at__month')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Seasonal patterns in needs", "Seasonality"},
		Description:   "Needs recorded per calendar month across all years",
		Tags:          []string{"temporal", "needs", "trend"},
	},
	{
		ID:               "momentum_analysis",
		Category:         "temporal",
		Pattern:          `\bmomentum\s+(?:analysis|of\s+needs)\b|\bweekly\s+momentum\b|\bneeds\s+(?:per|by)\s+week\b`,
		QueryTemplate:    "Need.objects.filter({date_range_filter}).values('created_at__year', 'created_at__week').annotate(count=Count('id')).order_by('created_at__year', 'created_at__week')",
		OptionalEntities: []string{"date_range"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Momentum analysis", "Needs per week in the last 3 months"},
		Tags:             []string{"temporal", "needs", "trend"},
	},
	{
		ID:            "forecast_projections",
		Category:      "temporal",
		Pattern:       `\b(?:forecast|projections?)\s+(?:for\s+|of\s+)?(?:ppas?|projects?|budget)\b|\bbudget\s+projections?\b`,
		QueryTemplate: "WorkItem.objects.filter(start_date__isnull=False).values('start_date__year').annotate(work_items=Count('id'), budget=Sum('budget_allocated')).order_by('start_date__year')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Forecast for PPAs", "Budget projections"},
		Description:   "Yearly work item history that projections extrapolate from",
		Tags:          []string{"temporal", "work_items", "budget", "trend"},
	},
	{
		ID:            "period_comparisons",
		Category:      "temporal",
		Pattern:       `\b(?:quarter[- ](?:on|over)[- ]quarter|compare\s+quarters|qoq)\b`,
		QueryTemplate: "Need.objects.values('created_at__year', 'created_at__quarter').annotate(count=Count('id'), total_cost=Sum('estimated_cost')).order_by('created_at__year', 'created_at__quarter')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Quarter-over-quarter needs", "Compare quarters"},
		Tags:          []string{"temporal", "needs", "comparison"},
	},
	{
		ID:            "historical_comparison",
		Category:      "temporal",
		Pattern:       `\b(?:year[- ](?:on|over)[- ]year|yoy|compare\s+(?:the\s+)?years)\b`,
		QueryTemplate: "Assessment.objects.filter(start_date__isnull=False).values('start_date__year').annotate(assessments=Count('id'), communities=Count('community', distinct=True)).order_by('start_date__year')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Year-over-year assessments", "Compare the years"},
		Description:   "Assessments and covered communities per year",
		Tags:          []string{"temporal", "mana", "assessments", "comparison"},
	},
	{
		ID:            "cumulative_totals",
		Category:      "temporal",
		Pattern:       `\b(?:cumulative|running)\s+(?:totals?|counts?)\b`,
		QueryTemplate: "OBCCommunity.objects.values('created_at__year').annotate(communities=Count('id')).order_by('created_at__year')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Cumulative totals of communities", "Running count"},
		Description:   "Yearly registrations in order for a running total",
		Tags:          []string{"temporal", "communities", "trend"},
	},
	{
		ID:            "milestone_tracking",
		Category:      "temporal",
		Pattern:       `\bmilestones?\b|\b` + workItemNouns + `\s+(?:near(?:ing)?\s+completion|almost\s+(?:done|complete))\b`,
		QueryTemplate: "WorkItem.objects.filter(progress__gte=75, progress__lt=100).exclude(status__in=['completed', 'cancelled']).order_by('-progress').values('title', 'status', 'progress', 'due_date')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Milestones", "Projects nearing completion", "PPAs almost done"},
		Tags:          []string{"temporal", "work_items", "list"},
	},
	{
		ID:            "overdue_analysis",
		Category:      "temporal",
		Pattern:       `\boverdue\s+(?:analysis|summary|breakdown|by\s+ministry)\b`,
		QueryTemplate: "WorkItem.objects.filter(due_date__isnull=False, progress__lt=100).exclude(status__in=['completed', 'cancelled']).values('lead_ministry').annotate(open_items=Count('id'), average_progress=Avg('progress'), earliest_due=Min('due_date')).order_by('earliest_due')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Overdue analysis", "Overdue by ministry"},
		Description:   "Unfinished dated work per ministry ordered by the earliest due date",
		Tags:          []string{"temporal", "work_items", "ministry"},
	},
	{
		ID:            "completion_duration",
		Category:      "temporal",
		Pattern:       `\bassessment\s+durations?\b|\bhow\s+long\s+(?:do|did|does)\s+(?:mana\s+)?assessments?\s+take\b`,
		QueryTemplate: "Assessment.objects.filter(status='completed', start_date__isnull=False, end_date__isnull=False).order_by('-end_date').values('title', 'assessment_type', 'start_date', 'end_date')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Assessment duration", "How long do assessments take?"},
		Tags:          []string{"temporal", "mana", "assessments", "list"},
	},
	{
		ID:            "aging_analysis",
		Category:      "temporal",
		Pattern:       `\b(?:aging|ageing)\s+(?:analysis|report|of\s+(?:open\s+)?needs)\b|\bneeds\s+(?:aging|ageing)\b`,
		QueryTemplate: "Need.objects.exclude(status__in=['completed', 'rejected']).values('created_at__year').annotate(open_needs=Count('id')).order_by('created_at__year')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Aging analysis", "Ageing of open needs", "Needs aging"},
		Description:   "Open needs by the year they were recorded",
		Tags:          []string{"temporal", "needs", "aging"},
	},
	{
		ID:            "time_to_approval",
		Category:      "temporal",
		Pattern:       `\btime\s+to\s+approval\b|\bapproval\s+(?:time|lag|turnaround)\b`,
		QueryTemplate: "PolicyRecommendation.objects.values('status').annotate(count=Count('id'), oldest=Min('created_at'), newest=Max('created_at')).order_by('status')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Time to approval for policies", "Approval turnaround"},
		Tags:          []string{"temporal", "policies", "status"},
	},
	{
		ID:            "recurrence_patterns",
		Category:      "temporal",
		Pattern:       `\b(?:recurring|recurrence)\s+(?:patterns?|events|meetings)\b|\b(?:events|meetings)\s+by\s+(?:day\s+of\s+(?:the\s+)?week|weekday)\b`,
		QueryTemplate: "Event.objects.values('event_type', 'start_date__week_day').annotate(count=Count('id')).order_by('event_type', 'start_date__week_day')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Recurring meetings", "Events by day of the week"},
		Description:   "Events per type and weekday, Sunday first",
		Tags:          []string{"temporal", "coordination", "events"},
	},
	{
		ID:            "anniversary_tracking",
		Category:      "temporal",
		Pattern:       `\banniversar(?:y|ies)\b`,
		QueryTemplate: "Partnership.objects.filter(status__iexact='active', start_date__isnull=False).order_by('start_date__month', 'start_date__day').values('title', 'organization__name', 'start_date')[:{limit}]",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Partnership anniversaries", "Upcoming anniversary dates"},
		Tags:          []string{"temporal", "stakeholders", "partnerships", "list"},
	},
	{
		ID:            "historical_averages",
		Category:      "temporal",
		Pattern:       `\b(?:historical|yearly|annual)\s+averages?\b`,
		QueryTemplate: "WorkItem.objects.filter(start_date__isnull=False).values('start_date__year').annotate(average_budget=Avg('budget_allocated'), average_progress=Avg('progress'), work_items=Count('id')).order_by('start_date__year')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Historical averages", "Annual average budget"},
		Tags:          []string{"temporal", "work_items", "budget", "trend"},
	},
}
