package catalog

import "obcms-chat-workers/internal/chat/templates"

var crossDomainTemplates = []templates.Definition{
	{
		ID:            "communities_with_assessments",
		Category:      "cross_domain",
		Pattern:       `\b(?:show|list|which)\s+(?:obc\s+)?communities\s+(?:with|having|have)\s+(?:an?\s+)?(?:active\s+)?(?:mana\s+)?assessments?\b`,
		QueryTemplate: "OBCCommunity.objects.filter(assessments__isnull=False).order_by('name').values(" + communityColumns + ")[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Show communities with assessments", "Which communities have a MANA assessment?"},
		Tags:          []string{"cross_domain", "communities", "mana", "list"},
	},
	{
		ID:            "communities_without_assessments",
		Category:      "cross_domain",
		Pattern:       `\b(?:show|list|which)\s+(?:obc\s+)?communities\s+(?:were\s+|have\s+been\s+|are\s+)?(?:never|not\s+yet)\s+assessed\b`,
		QueryTemplate: "OBCCommunity.objects.filter(assessments__isnull=True).order_by('name').values(" + communityColumns + ")[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Which communities were never assessed?", "List communities not yet assessed"},
		Tags:          []string{"cross_domain", "communities", "mana", "list"},
	},
	{
		ID:               "communities_recent_assessment",
		Category:         "cross_domain",
		Pattern:          `\bcommunities\s+assessed\s+(?:in|within|during)\s+` + periodPhrase,
		QueryTemplate:    "Assessment.objects.filter({date_range_filter}).values('community__name', 'community__barangay__municipality__name').annotate(assessments=Count('id')).order_by('-assessments')[:{limit}]",
		RequiredEntities: []string{"date_range"},
		Priority:         9,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Communities assessed in the last 6 months", "Communities assessed within the last year"},
		Tags:             []string{"cross_domain", "communities", "mana"},
	},
	{
		ID:            "assessment_coverage_by_ethnicity",
		Category:      "cross_domain",
		Pattern:       `\bassessment\s+coverage\s+(?:by|per|across)\s+(?:ethnicity|ethnic\s+groups?|ethnolinguistic\s+groups?)\b`,
		QueryTemplate: "OBCCommunity.objects.values('primary_ethnic_group').annotate(total_communities=Count('id'), assessed_communities=Count('id', filter=Q(assessments__isnull=False))).order_by('-assessed_communities')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Assessment coverage by ethnicity", "Assessment coverage per ethnic group"},
		Tags:          []string{"cross_domain", "mana", "ethnicity", "coverage"},
	},
	{
		ID:            "needs_per_community",
		Category:      "cross_domain",
		Pattern:       `\b(?:average|mean)\s+(?:number\s+of\s+)?needs\s+(?:per|for\s+each|identified\s+in)\s+communit(?:y|ies)\b`,
		QueryTemplate: "Need.objects.aggregate(needs=Count('id'), communities=Count('community', distinct=True))",
		Priority:      9,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Average needs per community", "Mean number of needs for each community"},
		Description:   "Need and community totals for a per-community mean",
		Tags:          []string{"cross_domain", "needs", "communities"},
	},
	{
		ID:            "communities_by_needs_count",
		Category:      "cross_domain",
		Pattern:       `\bcommunities\s+(?:with|by)\s+(?:the\s+)?most\s+(?:identified\s+)?needs\b`,
		QueryTemplate: "OBCCommunity.objects.annotate(needs_count=Count('needs')).filter(needs_count__gt=0).order_by('-needs_count').values('name', 'barangay__name', 'barangay__municipality__name', 'needs_count')[:{limit}]",
		Priority:      9,
		ResultType:    templates.ResultList,
		Examples:      []string{"Communities with the most needs", "Communities by most identified needs"},
		Tags:          []string{"cross_domain", "communities", "needs", "list"},
	},
	{
		ID:            "communities_with_unmet_needs",
		Category:      "cross_domain",
		Pattern:       `\bcommunities\s+with\s+(?:unmet|open|pending|unaddressed)\s+needs\b`,
		QueryTemplate: "OBCCommunity.objects.filter(needs__status__in=['identified', 'validated', 'prioritized']).order_by('name').values(" + communityColumns + ")[:{limit}]",
		Priority:      9,
		ResultType:    templates.ResultList,
		Examples:      []string{"Communities with unmet needs", "Show communities with open needs"},
		Tags:          []string{"cross_domain", "communities", "needs", "list"},
	},
	{
		ID:            "assessment_to_needs_pipeline",
		Category:      "cross_domain",
		Pattern:       `\bassessments?\s+to\s+needs\s+(?:pipeline|flow)\b`,
		QueryTemplate: "Assessment.objects.annotate(needs_count=Count('needs')).order_by('-needs_count').values('title', 'status', 'needs_count')[:{limit}]",
		Priority:      9,
		ResultType:    templates.ResultList,
		Examples:      []string{"Assessment to needs pipeline", "Assessments to needs flow"},
		Tags:          []string{"cross_domain", "mana", "needs", "pipeline"},
	},
	{
		ID:            "communities_multiple_assessments",
		Category:      "cross_domain",
		Pattern:       `\bcommunities\s+with\s+(?:multiple|several|repeated|\d+\+)\s+assessments\b`,
		QueryTemplate: "OBCCommunity.objects.annotate(assessment_count=Count('assessments')).filter(assessment_count__gte=2).order_by('-assessment_count').values('name', 'barangay__name', 'assessment_count')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Communities with multiple assessments", "Communities with 2+ assessments"},
		Tags:          []string{"cross_domain", "communities", "mana", "list"},
	},
	{
		ID:               "community_assessment_history",
		Category:         "cross_domain",
		Pattern:          `\bassessment\s+history\s+(?:of|for|in)\s+\w+`,
		QueryTemplate:    "Assessment.objects.filter(Q(community__name__icontains='{location}') | Q(community__barangay__name__icontains='{location}') | Q(community__barangay__municipality__name__icontains='{location}')).order_by('-start_date').values('title', 'assessment_type', 'status', 'start_date', 'end_date', 'community__name')[:{limit}]",
		RequiredEntities: []string{"location"},
		Priority:         8,
		ResultType:       templates.ResultList,
		Examples:         []string{"Assessment history for Marawi", "Assessment history of Poblacion"},
		Tags:             []string{"cross_domain", "mana", "assessments", "list"},
	},
	{
		ID:            "communities_by_assessment_status",
		Category:      "cross_domain",
		Pattern:       `\bcommunities\s+by\s+assessment\s+status\b`,
		QueryTemplate: "OBCCommunity.objects.filter(assessments__isnull=False).values('assessments__status').annotate(community_count=Count('id', distinct=True)).order_by('-community_count')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Communities by assessment status"},
		Tags:          []string{"cross_domain", "communities", "mana", "status"},
	},
	{
		ID:            "assessment_geographic_coverage",
		Category:      "cross_domain",
		Pattern:       `\bassessment\s+(?:geographic\s+)?coverage\s+(?:by|per|across)\s+(?:province|region)s?\b`,
		QueryTemplate: "OBCCommunity.objects.values('barangay__municipality__province__name').annotate(total_communities=Count('id'), assessed_communities=Count('id', filter=Q(assessments__isnull=False))).order_by('-assessed_communities')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Assessment coverage by province", "Assessment geographic coverage across regions"},
		Tags:          []string{"cross_domain", "mana", "province", "coverage"},
	},
	{
		ID:            "communities_priority_needs",
		Category:      "cross_domain",
		Pattern:       `\bcommunities\s+with\s+(?:critical|high[- ]priority|priority|immediate)\s+needs\b`,
		QueryTemplate: "Need.objects.filter(urgency_level='immediate').exclude(status__in=['completed', 'rejected']).values('community__name', 'community__barangay__municipality__name').annotate(priority_needs=Count('id')).order_by('-priority_needs')[:{limit}]",
		Priority:      9,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Communities with critical needs", "Communities with high-priority needs"},
		Tags:          []string{"cross_domain", "communities", "needs", "priority"},
	},
	{
		ID:            "assessment_participation_rate",
		Category:      "cross_domain",
		Pattern:       `\b(?:community\s+participation|participation\s+rate)\s+in\s+assessments?\b`,
		QueryTemplate: "Assessment.objects.values('community__name').annotate(assessments=Count('id')).order_by('-assessments')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Community participation in assessments", "Participation rate in assessments"},
		Tags:          []string{"cross_domain", "mana", "communities"},
	},
	{
		ID:            "communities_assessment_gap",
		Category:      "cross_domain",
		Pattern:       `\btime\s+since\s+(?:the\s+)?last\s+assessment\b|\blast\s+assessment\s+(?:by|per)\s+community\b`,
		QueryTemplate: "OBCCommunity.objects.annotate(last_assessment=Max('assessments__start_date')).filter(last_assessment__isnull=False).order_by('last_assessment').values('name', 'barangay__name', 'last_assessment')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Time since last assessment", "Last assessment by community"},
		Description:   "Assessed communities, longest since their latest assessment first",
		Tags:          []string{"cross_domain", "communities", "mana", "list"},
	},
	{
		ID:            "partnerships_supporting_assessments",
		Category:      "cross_domain",
		Pattern:       `\bpartnerships?\s+(?:supporting|linked\s+to|for)\s+(?:mana\s+)?assessments?\b`,
		QueryTemplate: "Partnership.objects.filter(Q(title__icontains='assessment') | Q(title__icontains='mana')).order_by('-start_date').values('title', 'partnership_type', 'status', 'organization__name')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Partnerships supporting assessments", "Partnerships for MANA assessments"},
		Tags:          []string{"cross_domain", "stakeholders", "partnerships", "mana"},
	},
	{
		ID:            "stakeholder_engagement_in_workshops",
		Category:      "cross_domain",
		Pattern:       `\bstakeholders?\s+(?:in|participating\s+in)\s+(?:mana\s+)?workshops?\b|\bworkshop\s+engagements?\b`,
		QueryTemplate: "Event.objects.filter(event_type__icontains='workshop').order_by('-start_date').values('title', 'venue', 'start_date', 'status')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Stakeholders in MANA workshops", "Workshop engagements"},
		Tags:          []string{"cross_domain", "coordination", "events", "workshops"},
	},
	{
		ID:            "moa_assessment_leadership",
		Category:      "cross_domain",
		Pattern:       `\b(?:moas?|ministries|agencies)\s+(?:leading|conducting)\s+assessments?\b`,
		QueryTemplate: "Need.objects.filter(assessment__isnull=False).values('lead_ministry').annotate(assessments=Count('assessment', distinct=True), needs=Count('id')).order_by('-assessments')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Ministries leading assessments", "MOAs conducting assessments"},
		Description:   "Lead ministries by the assessments their needs came from",
		Tags:          []string{"cross_domain", "mana", "ministry"},
	},
	{
		ID:            "coordination_to_assessment",
		Category:      "cross_domain",
		Pattern:       `\b(?:engagements?|coordination)\s+to\s+assessments?\b`,
		QueryTemplate: "Event.objects.filter(Q(title__icontains='assessment') | Q(title__icontains='mana')).values('event_type').annotate(events=Count('id')).order_by('-events')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Coordination to assessment", "Engagements to assessments"},
		Tags:          []string{"cross_domain", "coordination", "events", "mana"},
	},
	{
		ID:            "assessment_stakeholder_count",
		Category:      "cross_domain",
		Pattern:       `\b(?:stakeholder|ministry)\s+(?:participation|count)\s+(?:by|in|per)\s+assessments?\b`,
		QueryTemplate: "Need.objects.filter(assessment__isnull=False).values('assessment__title').annotate(ministries=Count('lead_ministry', distinct=True), needs=Count('id')).order_by('-ministries')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Stakeholder count by assessment", "Ministry participation per assessment"},
		Description:   "Distinct lead ministries behind each assessment's needs",
		Tags:          []string{"cross_domain", "mana", "ministry"},
	},
	{
		ID:            "multi_stakeholder_assessments",
		Category:      "cross_domain",
		Pattern:       `\bassessments?\s+with\s+(?:multiple|several|\d+\+)\s+(?:stakeholders?|organizations?|ministries|agencies)\b`,
		QueryTemplate: "Need.objects.filter(assessment__isnull=False).values('assessment__title').annotate(ministries=Count('lead_ministry', distinct=True)).filter(ministries__gte=2).order_by('-ministries')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Assessments with multiple stakeholders", "Assessments with 3+ agencies"},
		Tags:          []string{"cross_domain", "mana", "ministry"},
	},
	{
		ID:            "engagement_assessment_linkage",
		Category:      "cross_domain",
		Pattern:       `\b(?:engagements?|events?)\s+(?:linked|related)\s+to\s+assessments?\b`,
		QueryTemplate: "Event.objects.filter(Q(title__icontains='assessment') | Q(event_type__icontains='assessment')).order_by('-start_date').values('title', 'event_type', 'start_date', 'venue')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Engagements linked to assessments", "Events related to assessments"},
		Tags:          []string{"cross_domain", "coordination", "events", "mana"},
	},
	{
		ID:            "partnership_assessment_support",
		Category:      "cross_domain",
		Pattern:       `\bpartnerships?\s+supporting\s+mana\b|\bmana\s+partners\b`,
		QueryTemplate: "Organization.objects.filter(partnerships__title__icontains='mana').annotate(partnerships_count=Count('partnerships', distinct=True)).order_by('-partnerships_count').values('name', 'organization_type', 'partnerships_count')[:{limit}]",
		Priority:      9,
		ResultType:    templates.ResultList,
		Examples:      []string{"Partnerships supporting MANA", "MANA partners"},
		Description:   "Organizations holding a MANA partnership with their partnership totals",
		Tags:          []string{"cross_domain", "stakeholders", "partnerships", "mana"},
	},
	{
		ID:            "stakeholder_assessment_coverage",
		Category:      "cross_domain",
		Pattern:       `\bstakeholder\s+coverage\s+across\s+assessments?\b`,
		QueryTemplate: "Need.objects.filter(assessment__isnull=False).values('lead_ministry', 'assessment__assessment_type').annotate(needs=Count('id')).order_by('lead_ministry', 'assessment__assessment_type')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Stakeholder coverage across assessments"},
		Tags:          []string{"cross_domain", "mana", "ministry"},
	},
	{
		ID:            "needs_to_ppas_pipeline",
		Category:      "cross_domain",
		Pattern:       `\bneeds?\s+to\s+(?:ppas?|projects?)\b|\bneeds\s+pipeline\b`,
		QueryTemplate: "Need.objects.values('sector', 'status').annotate(needs=Count('id'), total_cost=Sum('estimated_cost')).order_by('sector', 'status')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs to PPAs", "Needs pipeline"},
		Description:   "Needs per sector and stage",
		Tags:          []string{"cross_domain", "needs", "pipeline"},
	},
	{
		ID:               "needs_without_ppas",
		Category:         "cross_domain",
		Pattern:          `\bneeds\s+(?:without|lacking)\s+(?:ppas?|projects?|implementation)\b`,
		QueryTemplate:    "Need.objects.filter(status__in=['identified', 'validated', 'prioritized']).filter({sector_filter}).order_by('urgency_level', '-created_at').values(" + needColumns + ")[:{limit}]",
		OptionalEntities: []string{"sector"},
		Priority:         9,
		ResultType:       templates.ResultList,
		Examples:         []string{"Needs without PPAs", "Health needs lacking implementation"},
		Description:      "Needs not yet taken up for implementation",
		Tags:             []string{"cross_domain", "needs", "pipeline", "list"},
	},
	{
		ID:            "needs_with_budget",
		Category:      "cross_domain",
		Pattern:       `\bneeds?\s+with\s+(?:budget|funding)\s+(?:allocated|assigned)\b`,
		QueryTemplate: "Need.objects.filter(estimated_cost__gt=0).exclude(status__in=['identified', 'rejected']).order_by('-estimated_cost').values('title', 'sector', 'estimated_cost', 'status')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Needs with budget allocated", "Needs with funding assigned"},
		Tags:          []string{"cross_domain", "needs", "budget", "list"},
	},
	{
		ID:               "policies_implementing_needs",
		Category:         "cross_domain",
		Pattern:          `\b(?:policies|recommendations)\s+(?:addressing|implementing)\s+needs\b`,
		QueryTemplate:    "PolicyRecommendation.objects.filter({sector_filter}).values('sector').annotate(policies=Count('id'), implemented=Count('id', filter=Q(status__iexact='implemented'))).order_by('-policies')",
		OptionalEntities: []string{"sector"},
		Priority:         8,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"Policies addressing needs", "Recommendations implementing needs in education"},
		Tags:             []string{"cross_domain", "policies", "needs", "sector"},
	},
	{
		ID:               "ppas_addressing_needs",
		Category:         "cross_domain",
		Pattern:          `\b(?:ppas?|projects?)\s+(?:addressing|implementing|for)\s+needs\b`,
		QueryTemplate:    "WorkItem.objects.filter({ministry_filter}).exclude(status='cancelled').values('lead_ministry').annotate(work_items=Count('id'), budget=Sum('budget_allocated')).order_by('-work_items')",
		OptionalEntities: []string{"ministry"},
		Priority:         9,
		ResultType:       templates.ResultAggregate,
		Examples:         []string{"PPAs addressing needs", "Projects for needs"},
		Tags:             []string{"cross_domain", "work_items", "needs", "ministry"},
	},
	{
		ID:            "needs_policy_ppa_flow",
		Category:      "cross_domain",
		Pattern:       `\bneeds?\s+to\s+polic(?:y|ies)\s+to\s+ppas?\b|\bfull\s+pipeline\b|\bcomplete\s+flow\b`,
		QueryTemplate: "Need.objects.values('sector').annotate(needs=Count('id'), validated=Count('id', filter=Q(status__in=['validated', 'prioritized'])), completed=Count('id', filter=Q(status='completed'))).order_by('sector')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs to policies to PPAs", "Full pipeline", "Complete flow"},
		Tags:          []string{"cross_domain", "needs", "pipeline", "sector"},
	},
	{
		ID:            "unfunded_needs_analysis",
		Category:      "cross_domain",
		Pattern:       `\bunfunded\s+(?:needs|priorities)\b|\bcritical\s+needs\s+(?:without|with\s+no)\s+(?:budget|funding)\b`,
		QueryTemplate: "Need.objects.filter(urgency_level__in=['immediate', 'short_term'], status__in=['identified', 'validated', 'prioritized']).order_by('urgency_level', 'sector').values(" + needColumns + ")[:{limit}]",
		Priority:      9,
		ResultType:    templates.ResultList,
		Examples:      []string{"Unfunded needs", "Critical needs without funding"},
		Tags:          []string{"cross_domain", "needs", "budget", "list"},
	},
	{
		ID:            "needs_coverage_by_sector",
		Category:      "cross_domain",
		Pattern:       `\bneeds\s+(?:coverage|addressed|met)\s+(?:vs\.?\s+unmet\s+)?by\s+sector\b`,
		QueryTemplate: "Need.objects.values('sector').annotate(total_needs=Count('id'), addressed_needs=Count('id', filter=Q(status='completed')), unmet_needs=Count('id', filter=Q(status__in=['identified', 'validated', 'prioritized']))).order_by('sector')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs coverage by sector", "Needs addressed vs unmet by sector"},
		Tags:          []string{"cross_domain", "needs", "sector", "coverage"},
	},
	{
		ID:            "policy_to_ppa_conversion_rate",
		Category:      "cross_domain",
		Pattern:       `\bpolic(?:y|ies)\s+implementation\s+rates?\b`,
		QueryTemplate: "PolicyRecommendation.objects.values('status').annotate(total=Count('id'), total_budget=Sum('estimated_budget')).order_by('status')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Policy implementation rate", "Policies implementation rates"},
		Tags:          []string{"cross_domain", "policies", "status"},
	},
	{
		ID:            "needs_with_multiple_ppas",
		Category:      "cross_domain",
		Pattern:       `\bneeds?\s+(?:addressed\s+by|with)\s+multiple\s+(?:ppas?|ministries)\b`,
		QueryTemplate: "Need.objects.values('sector').annotate(ministries=Count('lead_ministry', distinct=True)).filter(ministries__gte=2).order_by('-ministries')",
		Priority:      7,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Needs addressed by multiple ministries", "Needs with multiple PPAs"},
		Description:   "Sectors whose needs span several lead ministries",
		Tags:          []string{"cross_domain", "needs", "ministry"},
	},
	{
		ID:            "ppas_by_needs_addressed",
		Category:      "cross_domain",
		Pattern:       `\b(?:ppas?|projects?|ministries)\s+(?:ranked\s+)?by\s+needs\s+addressed\b`,
		QueryTemplate: "Need.objects.filter(status='completed').values('lead_ministry').annotate(needs_addressed=Count('id'), beneficiaries=Sum('beneficiary_count')).order_by('-needs_addressed')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"PPAs ranked by needs addressed", "Ministries by needs addressed"},
		Tags:          []string{"cross_domain", "needs", "ministry"},
	},
	{
		ID:            "needs_budget_allocation",
		Category:      "cross_domain",
		Pattern:       `\bbudget\s+allocated\s+to\s+needs\s+by\s+sector\b|\bneeds\s+budget\s+by\s+sector\b`,
		QueryTemplate: "Need.objects.filter(estimated_cost__gt=0).values('sector').annotate(total_cost=Sum('estimated_cost'), needs=Count('id')).order_by('-total_cost')",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Budget allocated to needs by sector", "Needs budget by sector"},
		Tags:          []string{"cross_domain", "needs", "budget", "sector"},
	},
	{
		ID:            "evidence_based_budgeting",
		Category:      "cross_domain",
		Pattern:       `\b(?:evidence[- ]based|assessment[- ]to[- ]budget)\s+(?:budgeting|flow)\b|\bneeds\s+to\s+funding\s+flow\b`,
		QueryTemplate: "Need.objects.filter(assessment__isnull=False).aggregate(assessed_needs=Count('id'), assessments=Count('assessment', distinct=True), costed_needs=Count('id', filter=Q(estimated_cost__gt=0)), total_cost=Sum('estimated_cost'))",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Evidence-based budgeting", "Needs to funding flow"},
		Description:   "How many assessed needs carry a cost estimate",
		Tags:          []string{"cross_domain", "needs", "budget", "mana"},
	},
	{
		ID:            "needs_implementation_gap",
		Category:      "cross_domain",
		Pattern:       `\b(?:gap|lag)\s+(?:from|between)\s+(?:need\s+)?identification\s+(?:to|and)\s+(?:ppa|implementation)\b`,
		QueryTemplate: "Need.objects.exclude(status__in=['completed', 'rejected']).order_by('created_at').values('title', 'sector', 'status', 'created_at')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultList,
		Examples:      []string{"Gap from identification to implementation", "Lag between need identification and implementation"},
		Description:   "Open needs, oldest first",
		Tags:          []string{"cross_domain", "needs", "pipeline", "list"},
	},
	{
		ID:            "cross_sector_needs_analysis",
		Category:      "cross_domain",
		Pattern:       `\b(?:cross|multi)[- ]?sector(?:al)?\s+needs\b`,
		QueryTemplate: "Need.objects.values('community__name').annotate(sectors=Count('sector', distinct=True), needs=Count('id')).filter(sectors__gte=2).order_by('-sectors')[:{limit}]",
		Priority:      8,
		ResultType:    templates.ResultAggregate,
		Examples:      []string{"Cross-sector needs", "Multi-sectoral needs"},
		Description:   "Communities whose needs span two or more sectors",
		Tags:          []string{"cross_domain", "needs", "sector"},
	},
}
