package catalog

import "obcms-chat-workers/internal/chat/templates"

var analyticsTemplates = []templates.Definition{
	{
		ID:               "statistical_summary",
		Category:         "analytics",
		Pattern:          `\bstatistical\s+summary\b|\bsummary\s+statistics\b|\b(?:population|community)\s+statistics\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).aggregate(communities=Count('id'), total_population=Sum('estimated_obc_population'), average_population=Avg('estimated_obc_population'), min_population=Min('estimated_obc_population'), max_population=Max('estimated_obc_population'), population_stddev=StdDev('estimated_obc_population'))",
		OptionalEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Statistical summary of communities", "Population statistics in Lanao del Sur"},
		Description:      "Count, total, mean, range and spread of community population",
		Tags:             []string{"analytics", "communities", "population", "statistics"},
	},
	{
		ID:            "distribution_analysis",
		Category:      "analytics",
		Pattern:       `\bdistribution\s+of\s+(?:obc\s+)?(?:population|communities|households)\b|\b(?:population|household)\s+distribution\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__province__name').annotate(communities=Count('id'), population=Sum('estimated_obc_population'), households=Sum('total_households')).order_by('-population')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Distribution of OBC population", "Household distribution"},
		Tags:          []string{"analytics", "communities", "population", "province"},
	},
	{
		ID:            "outlier_detection",
		Category:      "analytics",
		Pattern:       `\b(?:cost\s+)?outliers?\b|\bunusually\s+(?:expensive|costly|large)\s+needs\b`,
		QueryTemplate: "Need.objects.filter(estimated_cost__isnull=False).order_by('-estimated_cost').values('title', 'sector', 'estimated_cost', 'community__name')[:{limit}]",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Cost outliers", "Unusually expensive needs"},
		Description:   "Needs with the highest estimated cost",
		Tags:          []string{"analytics", "needs", "cost", "list"},
	},
	{
		ID:            "correlation_analysis",
		Category:      "analytics",
		Pattern:       `\bcorrelat(?:e|ion)\s+(?:between\s+)?population\s+and\s+needs\b|\bcorrelation\s+analysis\b`,
		QueryTemplate: "OBCCommunity.objects.annotate(needs_count=Count('needs')).order_by('-estimated_obc_population').values('name', 'estimated_obc_population', 'total_households', 'needs_count')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Correlation between population and needs", "Correlation analysis"},
		Description:   "Population and need counts side by side per community",
		Tags:          []string{"analytics", "communities", "needs", "statistics"},
	},
	{
		ID:            "variance_analysis",
		Category:      "analytics",
		Pattern:       `\bvariance\s+(?:analysis|of|in)\b|\b(?:budget|cost)\s+variance\b`,
		QueryTemplate: "WorkItem.objects.values('lead_ministry').annotate(work_items=Count('id'), average_budget=Avg('budget_allocated'), budget_variance=Variance('budget_allocated'), budget_stddev=StdDev('budget_allocated')).order_by('-budget_variance')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Budget variance", "Variance analysis by ministry"},
		Tags:          []string{"analytics", "budget", "ministry", "statistics"},
	},
	{
		ID:            "percentile_ranking",
		Category:      "analytics",
		Pattern:       `\bpercentiles?\b`,
		QueryTemplate: "Province.objects.order_by('-population').values('name', 'region__name', 'population')[:{limit}]",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Percentile ranking of provinces", "Population percentiles"},
		Description:   "Provinces ordered by population",
		Tags:          []string{"analytics", "geographic", "population", "list"},
	},
	{
		ID:            "coefficient_of_variation",
		Category:      "analytics",
		Pattern:       `\bcoefficient\s+of\s+variation\b|\b(?:population|budget)\s+(?:spread|dispersion|variability)\b`,
		QueryTemplate: "OBCCommunity.objects.values('primary_ethnic_group').annotate(communities=Count('id'), average_population=Avg('estimated_obc_population'), population_stddev=StdDev('estimated_obc_population')).order_by('-population_stddev')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Coefficient of variation", "Population spread by ethnic group"},
		Description:   "Mean and standard deviation of population per ethnic group",
		Tags:          []string{"analytics", "communities", "population", "statistics"},
	},
	{
		ID:            "aggregation_by_dimension",
		Category:      "analytics",
		Pattern:       `\b(?:breakdown|aggregates?|totals?)\s+by\s+municipalit(?:y|ies)\b|\bcommunities\s+(?:per|by|in\s+each)\s+municipality\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__name', 'barangay__municipality__province__name').annotate(communities=Count('id'), population=Sum('estimated_obc_population')).order_by('-communities')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Communities per municipality", "Breakdown by municipality"},
		Tags:          []string{"analytics", "communities", "municipality"},
	},
	{
		ID:            "weighted_averages",
		Category:      "analytics",
		Pattern:       `\bweighted\s+averages?\b|\baverage\s+household\s+size\b`,
		QueryTemplate: "OBCCommunity.objects.filter(total_households__gt=0).aggregate(population=Sum('estimated_obc_population'), households=Sum('total_households'), average_households=Avg('total_households'))",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Weighted average", "Average household size"},
		Description:   "Population and household totals for a household-weighted mean",
		Tags:          []string{"analytics", "communities", "households", "statistics"},
	},
	{
		ID:            "confidence_intervals",
		Category:      "analytics",
		Pattern:       `\bconfidence\s+intervals?\b|\bmargin\s+of\s+error\b`,
		QueryTemplate: "Need.objects.filter(estimated_cost__isnull=False).values('sector').annotate(needs=Count('id'), average_cost=Avg('estimated_cost'), cost_stddev=StdDev('estimated_cost')).order_by('sector')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Confidence intervals for need costs", "Margin of error"},
		Description:   "Sample size, mean and deviation of need cost per sector",
		Tags:          []string{"analytics", "needs", "cost", "statistics"},
	},
	{
		ID:            "clustering_analysis",
		Category:      "analytics",
		Pattern:       `\bclusters?\s+of\s+communities\b|\bcommunity\s+clusters?\b|\bclustering\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__name').annotate(communities=Count('id')).filter(communities__gte=3).order_by('-communities')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Clusters of communities", "Community clustering"},
		Description:   "Municipalities with three or more communities",
		Tags:          []string{"analytics", "communities", "municipality"},
	},
	{
		ID:            "segmentation",
		Category:      "analytics",
		Pattern:       `\bsegment(?:ation|s)?\s+(?:of\s+)?(?:obc\s+)?communities\b|\bcommunity\s+segments?\b`,
		QueryTemplate: "OBCCommunity.objects.values('primary_ethnic_group', 'primary_livelihood').annotate(communities=Count('id'), population=Sum('estimated_obc_population')).order_by('-communities')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Segmentation of communities", "Community segments"},
		Description:   "Communities by ethnic group and livelihood",
		Tags:          []string{"analytics", "communities", "ethnicity", "livelihood"},
	},
	{
		ID:            "anomaly_detection",
		Category:      "analytics",
		Pattern:       `\banomal(?:y|ies|ous)\b|\bincomplete\s+community\s+records\b`,
		QueryTemplate: "OBCCommunity.objects.filter(Q(total_households__isnull=True) | Q(estimated_obc_population__isnull=True) | Q(total_households=0)).order_by('name').values('name', 'community_code', 'estimated_obc_population', 'total_households')[:{limit}]",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Anomaly detection", "Incomplete community records"},
		Description:   "Communities with missing or zero household and population counts",
		Tags:          []string{"analytics", "communities", "quality", "list"},
	},
	{
		ID:               "similarity_analysis",
		Category:         "analytics",
		Pattern:          `\bsimilar\s+communities\b|\bcommunities\s+similar\s+to\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({ethnic_group_filter}, {livelihood_filter}).order_by('name').values('name', 'primary_ethnic_group', 'primary_livelihood', 'barangay__municipality__name')[:{limit}]",
		OptionalEntities: []string{"ethnicity", "livelihood"},
		Priority:         7,
		ResultType:       templates.ResultList,
		Examples:         []string{"Similar communities", "Maranao fishing communities similar to this one"},
		Tags:             []string{"analytics", "communities", "list"},
	},
	{
		ID:               "pattern_matching",
		Category:         "analytics",
		Pattern:          `\bcommunities\s+matching\s+(?:the\s+|this\s+)?(?:profile|pattern|criteria)\b`,
		QueryTemplate:    "OBCCommunity.objects.filter({location_filter}).filter({ethnic_group_filter}, {livelihood_filter}).order_by('name').values(" + communityColumns + ", 'primary_ethnic_group', 'primary_livelihood')[:{limit}]",
		OptionalEntities: []string{"location", "ethnicity", "livelihood"},
		Priority:         7,
		ResultType:       templates.ResultList,
		Examples:         []string{"Communities matching the profile", "Maranao farming communities matching the criteria"},
		Tags:             []string{"analytics", "communities", "list"},
	},
	{
		ID:            "grouping_by_characteristics",
		Category:      "analytics",
		Pattern:       `\bcommunities\s+(?:grouped\s+|group\s+)?by\s+(?:status|characteristics)\b`,
		QueryTemplate: "OBCCommunity.objects.values('status').annotate(count=Count('id'), population=Sum('estimated_obc_population')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Communities by status", "Communities grouped by characteristics"},
		Tags:          []string{"analytics", "communities", "status"},
	},
	{
		ID:            "hotspot_identification",
		Category:      "analytics",
		Pattern:       `\bhot\s*spots?\b`,
		QueryTemplate: "Need.objects.exclude(status__in=['completed', 'rejected']).values('community__barangay__municipality__name', 'community__barangay__municipality__province__name').annotate(open_needs=Count('id'), urgent=Count('id', filter=Q(urgency_level='immediate'))).order_by('-urgent', '-open_needs')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Need hotspots", "Where are the hotspots?"},
		Description:   "Municipalities with the most open and immediate needs",
		Tags:          []string{"analytics", "needs", "municipality"},
	},
	{
		ID:            "network_analysis",
		Category:      "analytics",
		Pattern:       `\b(?:partnership|stakeholder|partner)\s+network\b|\bnetwork\s+analysis\b`,
		QueryTemplate: "Organization.objects.annotate(partnerships_count=Count('partnerships', distinct=True)).filter(partnerships_count__gt=0).order_by('-partnerships_count').values('name', 'organization_type', 'partnerships_count')[:{limit}]",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Partnership network", "Network analysis"},
		Description:   "Organizations ranked by the partnerships they hold",
		Tags:          []string{"analytics", "stakeholders", "partnerships", "list"},
	},
	{
		ID:            "hierarchy_analysis",
		Category:      "analytics",
		Pattern:       `\badministrative\s+hierarchy\b|\bhierarchy\s+analysis\b`,
		QueryTemplate: "Province.objects.annotate(municipalities_count=Count('municipalities')).order_by('region__name', 'name').values('region__name', 'name', 'municipalities_count')",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Administrative hierarchy", "Hierarchy analysis"},
		Description:   "Provinces under each region with their municipality counts",
		Tags:          []string{"analytics", "geographic", "list"},
	},
	{
		ID:            "factor_analysis",
		Category:      "analytics",
		Pattern:       `\bfactors?\s+(?:driving|behind|affecting)\s+needs\b|\bfactor\s+analysis\b`,
		QueryTemplate: "Need.objects.values('sector', 'urgency_level').annotate(count=Count('id'), total_cost=Sum('estimated_cost')).order_by('-count')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Factors driving needs", "Factor analysis"},
		Tags:          []string{"analytics", "needs", "sector"},
	},
	{
		ID:            "risk_scoring",
		Category:      "analytics",
		Pattern:       `\brisk\s+(?:scores?|scoring|ranking)\b|\b(?:at|high)[- ]risk\s+communities\b`,
		QueryTemplate: "Need.objects.filter(urgency_level__in=['immediate', 'short_term']).exclude(status__in=['completed', 'rejected']).values('community__name', 'community__barangay__municipality__name').annotate(urgent_needs=Count('id'), beneficiaries=Sum('beneficiary_count')).order_by('-urgent_needs')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Risk scoring", "At-risk communities", "High risk communities"},
		Description:   "Communities ranked by open urgent needs",
		Tags:          []string{"analytics", "communities", "needs", "risk"},
	},
	{
		ID:            "success_indicators",
		Category:      "analytics",
		Pattern:       `\bsuccess\s+(?:indicators?|metrics)\b|\bkpis?\b`,
		QueryTemplate: "WorkItem.objects.aggregate(work_items=Count('id'), completed=Count('id', filter=Q(status='completed')), average_progress=Avg('progress'), total_budget=Sum('budget_allocated'))",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Success indicators", "Show the KPIs"},
		Tags:          []string{"analytics", "work_items", "statistics"},
	},
	{
		ID:            "gap_prediction",
		Category:      "analytics",
		Pattern:       `\bgap\s+(?:prediction|forecast|projection)\b|\bservice\s+gaps?\b`,
		QueryTemplate: "CommunityInfrastructure.objects.filter(availability_status__in=['none', 'poor', 'limited']).values('infrastructure_type').annotate(communities=Count('community', distinct=True)).order_by('-communities')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Gap prediction", "Service gaps"},
		Description:   "Communities lacking each infrastructure type",
		Tags:          []string{"analytics", "infrastructure", "gaps"},
	},
	{
		ID:            "capacity_analysis",
		Category:      "analytics",
		Pattern:       `\bcapacity\s+(?:analysis|by\s+ministry)\b|\b(?:ministry\s+workload|workload\s+by\s+ministry)\b`,
		QueryTemplate: "WorkItem.objects.exclude(status__in=['completed', 'cancelled']).values('lead_ministry').annotate(open_work_items=Count('id'), budget=Sum('budget_allocated'), average_progress=Avg('progress')).order_by('-open_work_items')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Capacity analysis", "Workload by ministry"},
		Tags:          []string{"analytics", "work_items", "ministry"},
	},
	{
		ID:            "efficiency_metrics",
		Category:      "analytics",
		Pattern:       `\befficiency\s+metrics\b|\b(?:delivery|implementation)\s+efficiency\b`,
		QueryTemplate: "WorkItem.objects.filter(budget_allocated__gt=0).values('lead_ministry').annotate(work_items=Count('id'), completed=Count('id', filter=Q(status='completed')), budget=Sum('budget_allocated'), average_progress=Avg('progress')).order_by('-completed')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Efficiency metrics", "Implementation efficiency"},
		Tags:          []string{"analytics", "work_items", "ministry", "budget"},
	},
	{
		ID:            "performance_prediction",
		Category:      "analytics",
		Pattern:       `\b(?:performance|completion)\s+(?:prediction|forecast|outlook)\b|\blikely\s+to\s+(?:finish|complete)\b`,
		QueryTemplate: "WorkItem.objects.filter(progress__gte=50).exclude(status__in=['completed', 'cancelled']).order_by('-progress', 'due_date').values('title', 'lead_ministry', 'progress', 'due_date')[:{limit}]",
		Priority:      7,
		ResultType:    templates.ResultList,
		Examples:      []string{"Completion forecast", "Which projects are likely to finish?"},
		Tags:          []string{"analytics", "work_items", "list"},
	},
	{
		ID:            "trend_projection",
		Category:      "analytics",
		Pattern:       `\btrend\s+projections?\b|\bprojected\s+(?:needs|growth)\b`,
		QueryTemplate: "Need.objects.values('created_at__year').annotate(needs=Count('id'), total_cost=Sum('estimated_cost')).order_by('created_at__year')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Trend projection", "Projected needs"},
		Description:   "Needs and cost per year as a projection baseline",
		Tags:          []string{"analytics", "needs", "trend"},
	},
	{
		ID:            "early_warning_indicators",
		Category:      "analytics",
		Pattern:       `\bearly\s+warnings?\b|\bwarning\s+(?:signs|indicators)\b|\bred\s+flags?\b`,
		QueryTemplate: "WorkItem.objects.filter(progress__lt=25, due_date__isnull=False).exclude(status__in=['completed', 'cancelled']).order_by('due_date').values('title', 'lead_ministry', 'progress', 'due_date')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Early warning indicators", "Red flags"},
		Description:   "Barely started work items with a due date",
		Tags:          []string{"analytics", "work_items", "list"},
	},
	{
		ID:            "impact_prediction",
		Category:      "analytics",
		Pattern:       `\b(?:expected|potential|projected)\s+impact\b|\bimpact\s+(?:prediction|estimate)\b|\bbeneficiar(?:y|ies)\s+(?:by|per)\s+sector\b`,
		QueryTemplate: "Need.objects.values('sector').annotate(beneficiaries=Sum('beneficiary_count'), needs=Count('id'), total_cost=Sum('estimated_cost')).order_by('-beneficiaries')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Expected impact", "Beneficiaries by sector"},
		Tags:          []string{"analytics", "needs", "sector", "beneficiaries"},
	},
	{
		ID:            "resource_optimization",
		Category:      "analytics",
		Pattern:       `\bresource\s+(?:optimi[sz]ation|gaps?)\b|\bunder[- ]?funded\s+sectors\b`,
		QueryTemplate: "Need.objects.exclude(status__in=['completed', 'rejected']).values('sector').annotate(open_needs=Count('id'), open_cost=Sum('estimated_cost')).order_by('-open_cost')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Resource optimization", "Underfunded sectors"},
		Description:   "Open needs and their cost per sector",
		Tags:          []string{"analytics", "needs", "sector", "budget"},
	},
}
