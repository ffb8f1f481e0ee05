package catalog

import "obcms-chat-workers/internal/chat/templates"

const ethnicityDimension = `(?:ethnicity|ethnic\s+groups?|ethnolinguistic\s+groups?)`

var comparisonTemplates = []templates.Definition{
	{
		ID:            "region_vs_region",
		Category:      "comparison",
		Pattern:       `\bcompare\s+(?:all\s+|the\s+)?regions\b|\bregion\s+(?:vs\.?|versus)\s+region\b|\bregional\s+comparison\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__province__region__name').annotate(communities=Count('id'), population=Sum('estimated_obc_population'), households=Sum('total_households')).order_by('-communities')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Compare regions", "Regional comparison", "Region vs region"},
		Tags:          []string{"comparison", "geographic", "region"},
	},
	{
		ID:               "province_vs_province",
		Category:         "comparison",
		Pattern:          `\bcompare\s+(?:all\s+|the\s+)?provinces\b|\bprovince\s+(?:vs\.?|versus)\s+province\b|\bprovincial\s+comparison\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).values('barangay__municipality__province__name', 'barangay__municipality__province__region__name').annotate(communities=Count('id'), population=Sum('estimated_obc_population'), households=Sum('total_households')).order_by('-communities')",
		OptionalEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Compare provinces", "Compare the provinces in Region IX", "Provincial comparison"},
		Tags:             []string{"comparison", "geographic", "province"},
	},
	{
		ID:               "municipality_comparison",
		Category:         "comparison",
		Pattern:          `\bcompare\s+(?:all\s+|the\s+)?(?:municipalities|cities|towns)\b|\bmunicipal(?:ity)?\s+comparison\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).values('barangay__municipality__name', 'barangay__municipality__province__name').annotate(communities=Count('id'), population=Sum('estimated_obc_population')).order_by('-communities')[:{limit}]",
		OptionalEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Compare municipalities", "Compare the towns in Lanao del Norte", "Municipal comparison"},
		Tags:             []string{"comparison", "geographic", "municipality"},
	},
	{
		ID:            "multi_location_comparison",
		Category:      "comparison",
		Pattern:       `\bcompare\s+(?:needs\s+)?(?:across|between)\s+(?:locations|areas|provinces)\b|\bside[- ]by[- ]side\s+(?:locations|provinces)\b`,
		QueryTemplate: "Need.objects.values('community__barangay__municipality__province__name').annotate(needs=Count('id'), urgent=Count('id', filter=Q(urgency_level='immediate')), communities=Count('community', distinct=True)).order_by('-needs')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Compare needs across provinces", "Side-by-side locations"},
		Description:   "Needs, immediate needs and affected communities per province",
		Tags:          []string{"comparison", "needs", "province"},
	},
	{
		ID:            "location_ranking",
		Category:      "comparison",
		Pattern:       `\brank(?:ing)?\s+(?:of\s+)?(?:the\s+)?(?:provinces|regions|municipalities|locations)\s+by\s+(?:obc\s+)?(?:communities|population)\b|\btop\s+(?:\d+\s+)?(?:provinces|municipalities)\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__province__name').annotate(communities=Count('id'), population=Sum('estimated_obc_population')).order_by('-communities')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Rank provinces by communities", "Top 5 provinces", "Ranking of locations by population"},
		Tags:          []string{"comparison", "geographic", "province", "ranking"},
	},
	{
		ID:            "location_benchmarking",
		Category:      "comparison",
		Pattern:       `\bbenchmark(?:ing)?\s+(?:the\s+)?(?:provinces|regions|locations)\b`,
		QueryTemplate: "Province.objects.annotate(communities=Count('municipalities__barangays__obc_communities'), obc_population=Sum('municipalities__barangays__obc_communities__estimated_obc_population')).order_by('-obc_population').values('name', 'population', 'communities', 'obc_population')",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Benchmark provinces", "Benchmarking locations"},
		Description:   "OBC population against the total population of each province",
		Tags:          []string{"comparison", "geographic", "province"},
	},
	{
		ID:            "location_gap_analysis",
		Category:      "comparison",
		Pattern:       `\b(?:location|geographic|regional)\s+gaps?\b|\bgap\s+analysis\s+by\s+(?:province|region|location)\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__province__name').annotate(communities=Count('id'), unassessed=Count('id', filter=Q(assessments__isnull=True))).order_by('-unassessed')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Geographic gaps", "Gap analysis by province"},
		Description:   "Communities without an assessment per province",
		Tags:          []string{"comparison", "geographic", "mana", "gaps"},
	},
	{
		ID:            "location_performance_matrix",
		Category:      "comparison",
		Pattern:       `\bperformance\s+matrix\b|\b(?:province|location)\s+performance\b`,
		QueryTemplate: "Need.objects.values('community__barangay__municipality__province__name', 'status').annotate(count=Count('id')).order_by('community__barangay__municipality__province__name', 'status')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Performance matrix", "Province performance"},
		Description:   "Needs per province and status",
		Tags:          []string{"comparison", "needs", "province", "status"},
	},
	{
		ID:            "ethnicity_demographics",
		Category:      "comparison",
		Pattern:       `\b(?:ethnic|ethnolinguistic)\s+(?:group\s+)?demographics\b|\bdemographics\s+(?:by|per|across)\s+` + ethnicityDimension + `\b`,
		QueryTemplate: "OBCCommunity.objects.values('primary_ethnic_group').annotate(communities=Count('id'), population=Sum('estimated_obc_population'), households=Sum('total_households'), average_population=Avg('estimated_obc_population')).order_by('-population')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Ethnic group demographics", "Demographics by ethnicity"},
		Tags:          []string{"comparison", "communities", "ethnicity", "population"},
	},
	{
		ID:            "ethnicity_needs",
		Category:      "comparison",
		Pattern:       `\bneeds\s+(?:by|per|across)\s+` + ethnicityDimension + `\b`,
		QueryTemplate: "Need.objects.values('community__primary_ethnic_group').annotate(needs=Count('id'), urgent=Count('id', filter=Q(urgency_level='immediate')), total_cost=Sum('estimated_cost')).order_by('-needs')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs by ethnic group", "Needs across ethnicity"},
		Tags:          []string{"comparison", "needs", "ethnicity"},
	},
	{
		ID:            "ethnicity_outcomes",
		Category:      "comparison",
		Pattern:       `\b(?:outcomes?|results?)\s+(?:by|per|across)\s+` + ethnicityDimension + `\b`,
		QueryTemplate: "Need.objects.values('community__primary_ethnic_group').annotate(needs=Count('id'), completed=Count('id', filter=Q(status='completed'))).order_by('-completed')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Outcomes by ethnicity", "Results per ethnic group"},
		Description:   "Needs raised and completed per ethnic group",
		Tags:          []string{"comparison", "needs", "ethnicity"},
	},
	{
		ID:            "ethnicity_coverage",
		Category:      "comparison",
		Pattern:       `\b(?:service|infrastructure)\s+coverage\s+(?:by|per|across)\s+` + ethnicityDimension + `\b`,
		QueryTemplate: "CommunityInfrastructure.objects.values('community__primary_ethnic_group', 'infrastructure_type').annotate(records=Count('id'), lacking=Count('id', filter=Q(availability_status='none'))).order_by('community__primary_ethnic_group', 'infrastructure_type')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Infrastructure coverage by ethnic group", "Service coverage across ethnicity"},
		Tags:          []string{"comparison", "infrastructure", "ethnicity"},
	},
	{
		ID:            "ethnicity_participation",
		Category:      "comparison",
		Pattern:       `\b(?:participation|engagement)\s+(?:by|per|across)\s+` + ethnicityDimension + `\b`,
		QueryTemplate: "Assessment.objects.values('community__primary_ethnic_group').annotate(assessments=Count('id'), communities=Count('community', distinct=True)).order_by('-assessments')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Participation by ethnic group", "Engagement across ethnolinguistic groups"},
		Description:   "Assessments and assessed communities per ethnic group",
		Tags:          []string{"comparison", "mana", "ethnicity"},
	},
	{
		ID:            "ethnicity_resource_allocation",
		Category:      "comparison",
		Pattern:       `\b(?:resources?|budget|funding|costs?)\s+(?:allocation\s+)?(?:by|per|across)\s+` + ethnicityDimension + `\b`,
		QueryTemplate: "Need.objects.values('community__primary_ethnic_group').annotate(total_cost=Sum('estimated_cost'), beneficiaries=Sum('beneficiary_count')).order_by('-total_cost')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Resource allocation by ethnicity", "Funding per ethnic group"},
		Tags:          []string{"comparison", "needs", "ethnicity", "budget"},
	},
	{
		ID:            "budget_efficiency",
		Category:      "comparison",
		Pattern:       `\bbudget\s+efficiency\b|\bcost\s+per\s+(?:ppa|project)\b`,
		QueryTemplate: "WorkItem.objects.values('lead_ministry').annotate(work_items=Count('id'), total_budget=Sum('budget_allocated'), average_budget=Avg('budget_allocated'), average_progress=Avg('progress')).order_by('-average_progress')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Budget efficiency by ministry", "Cost per project"},
		Tags:          []string{"comparison", "budget", "ministry"},
	},
	{
		ID:            "project_success_rates",
		Category:      "comparison",
		Pattern:       `\b(?:project|ppa|program)\s+success\s+rates?\b|\bcompletion\s+rates?\b`,
		QueryTemplate: "WorkItem.objects.values('work_type').annotate(work_items=Count('id'), completed=Count('id', filter=Q(status='completed')), cancelled=Count('id', filter=Q(status='cancelled'))).order_by('-completed')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Project success rates", "Completion rate by type"},
		Tags:          []string{"comparison", "work_items"},
	},
	{
		ID:            "completion_time_comparison",
		Category:      "comparison",
		Pattern:       `\bcompletion\s+times?\s+(?:by|per|across)\s+\w+|\bcompare\s+completion\s+times?\b`,
		QueryTemplate: "Assessment.objects.filter(status='completed').values('assessment_type').annotate(completed=Count('id'), earliest_start=Min('start_date'), latest_end=Max('end_date')).order_by('assessment_type')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Completion time by assessment type", "Compare completion times"},
		Tags:          []string{"comparison", "mana", "assessments"},
	},
	{
		ID:            "cost_per_beneficiary",
		Category:      "comparison",
		Pattern:       `\bcost\s+per\s+beneficiar(?:y|ies)\b`,
		QueryTemplate: "Need.objects.filter(beneficiary_count__gt=0, estimated_cost__isnull=False).values('sector').annotate(total_cost=Sum('estimated_cost'), beneficiaries=Sum('beneficiary_count')).order_by('sector')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Cost per beneficiary", "Cost per beneficiary by sector"},
		Description:   "Need cost and beneficiaries per sector",
		Tags:          []string{"comparison", "needs", "cost", "beneficiaries"},
	},
	{
		ID:            "coverage_comparison",
		Category:      "comparison",
		Pattern:       `\bcoverage\s+comparison\b|\bcompare\s+(?:assessment\s+)?coverage\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__province__region__name').annotate(communities=Count('id'), assessed=Count('id', filter=Q(assessments__isnull=False)), with_needs=Count('id', filter=Q(needs__isnull=False))).order_by('barangay__municipality__province__region__name')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Coverage comparison", "Compare assessment coverage"},
		Tags:          []string{"comparison", "mana", "region"},
	},
	{
		ID:            "performance_benchmarking",
		Category:      "comparison",
		Pattern:       `\bperformance\s+benchmark(?:s|ing)?\b|\bbenchmark\s+(?:the\s+)?(?:ministries|moas)\b`,
		QueryTemplate: "WorkItem.objects.values('lead_ministry').annotate(work_items=Count('id'), completed=Count('id', filter=Q(status='completed')), average_progress=Avg('progress'), progress_stddev=StdDev('progress')).order_by('-average_progress')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Performance benchmarking", "Benchmark ministries"},
		Tags:          []string{"comparison", "work_items", "ministry"},
	},
}
