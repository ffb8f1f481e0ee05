package executor

import (
	"sort"
)

type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeDate
)

type Field struct {
	Name   string
	Column string
	Type   FieldType
}

// Relation links two models. A forward relation stores Column on the source
// table; a reverse relation finds target rows whose Column points back.
type Relation struct {
	Name    string
	Target  string
	Column  string
	Reverse bool
}

type Model struct {
	Name      string
	Table     string
	fields    map[string]Field
	order     []string
	relations map[string]Relation
}

func (m *Model) Field(name string) (Field, bool) {
	if name == "pk" {
		name = "id"
	}
	f, ok := m.fields[name]
	return f, ok
}

func (m *Model) Relation(name string) (Relation, bool) {
	r, ok := m.relations[name]
	return r, ok
}

// Columns lists scalar fields in declaration order.
func (m *Model) Columns() []Field {
	out := make([]Field, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.fields[name])
	}
	return out
}

// Schema is the allowlist of models and fields a query may touch.
type Schema struct {
	models map[string]*Model
}

func (s *Schema) Model(name string) (*Model, bool) {
	m, ok := s.models[name]
	return m, ok
}

func (s *Schema) ModelNames() []string {
	names := make([]string, 0, len(s.models))
	for n := range s.models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type modelOption func(*Model)

func fields(defs ...Field) modelOption {
	return func(m *Model) {
		for _, f := range defs {
			if f.Column == "" {
				f.Column = f.Name
			}
			m.fields[f.Name] = f
			m.order = append(m.order, f.Name)
		}
	}
}

func fk(name, target, column string) modelOption {
	return func(m *Model) {
		m.relations[name] = Relation{Name: name, Target: target, Column: column}
	}
}

func reverse(name, target, column string) modelOption {
	return func(m *Model) {
		m.relations[name] = Relation{Name: name, Target: target, Column: column, Reverse: true}
	}
}

func newModel(name, table string, opts ...modelOption) *Model {
	m := &Model{
		Name:      name,
		Table:     table,
		fields:    map[string]Field{},
		relations: map[string]Relation{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func str(name string) Field  { return Field{Name: name, Type: TypeString} }
func num(name string) Field  { return Field{Name: name, Type: TypeInt} }
func dec(name string) Field  { return Field{Name: name, Type: TypeFloat} }
func flag(name string) Field { return Field{Name: name, Type: TypeBool} }
func ts(name string) Field   { return Field{Name: name, Type: TypeTime} }
func day(name string) Field  { return Field{Name: name, Type: TypeDate} }

// NewSchema builds a schema from models, keyed by model name.
func NewSchema(models ...*Model) *Schema {
	s := &Schema{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		s.models[m.Name] = m
	}
	return s
}

// DefaultSchema describes the OBCMS tables reachable from chat queries.
func DefaultSchema() *Schema {
	return NewSchema(
		newModel("Region", "common_region",
			fields(num("id"), str("code"), str("name"), str("description"), flag("is_active"), ts("created_at")),
			reverse("provinces", "Province", "region_id"),
		),
		newModel("Province", "common_province",
			fields(num("id"), str("code"), str("name"), num("population"), flag("is_active"), ts("created_at")),
			fk("region", "Region", "region_id"),
			reverse("municipalities", "Municipality", "province_id"),
		),
		newModel("Municipality", "common_municipality",
			fields(num("id"), str("code"), str("name"), str("municipality_type"), num("population"), flag("is_active"), ts("created_at")),
			fk("province", "Province", "province_id"),
			reverse("barangays", "Barangay", "municipality_id"),
		),
		newModel("Barangay", "common_barangay",
			fields(num("id"), str("code"), str("name"), num("population"), flag("is_active"), ts("created_at")),
			fk("municipality", "Municipality", "municipality_id"),
			reverse("obc_communities", "OBCCommunity", "barangay_id"),
		),
		newModel("OBCCommunity", "communities_obccommunity",
			fields(num("id"), str("name"), str("community_code"), num("estimated_obc_population"), num("total_households"),
				str("primary_ethnic_group"), str("primary_livelihood"), str("status"), flag("is_active"),
				ts("created_at"), ts("updated_at")),
			fk("barangay", "Barangay", "barangay_id"),
			reverse("infrastructure", "CommunityInfrastructure", "community_id"),
			reverse("needs", "Need", "community_id"),
			reverse("assessments", "Assessment", "community_id"),
		),
		newModel("CommunityInfrastructure", "communities_communityinfrastructure",
			fields(num("id"), str("infrastructure_type"), str("availability_status"), str("condition"),
				str("priority_for_improvement"), str("notes"), ts("created_at")),
			fk("community", "OBCCommunity", "community_id"),
		),
		newModel("Need", "mana_need",
			fields(num("id"), str("title"), str("description"), str("sector"), str("category"), str("urgency_level"),
				str("status"), str("lead_ministry"), dec("estimated_cost"), num("beneficiary_count"), ts("created_at")),
			fk("community", "OBCCommunity", "community_id"),
			fk("assessment", "Assessment", "assessment_id"),
		),
		newModel("Assessment", "mana_assessment",
			fields(num("id"), str("title"), str("assessment_type"), str("status"), day("start_date"), day("end_date"), ts("created_at")),
			fk("community", "OBCCommunity", "community_id"),
			reverse("needs", "Need", "assessment_id"),
		),
		newModel("PolicyRecommendation", "policy_tracking_policyrecommendation",
			fields(num("id"), str("title"), str("sector"), str("status"), str("priority"), str("lead_ministry"),
				dec("estimated_budget"), ts("created_at")),
		),
		newModel("Organization", "coordination_organization",
			fields(num("id"), str("name"), str("acronym"), str("organization_type"), flag("is_active"), ts("created_at")),
			reverse("partnerships", "Partnership", "organization_id"),
		),
		newModel("Partnership", "coordination_partnership",
			fields(num("id"), str("title"), str("partnership_type"), str("status"), day("start_date"), day("end_date"), ts("created_at")),
			fk("organization", "Organization", "organization_id"),
		),
		newModel("WorkItem", "common_workitem",
			fields(num("id"), str("title"), str("work_type"), str("status"), str("priority"), num("progress"),
				str("lead_ministry"), dec("budget_allocated"), day("start_date"), day("due_date"), ts("created_at")),
		),
		newModel("Event", "coordination_event",
			fields(num("id"), str("title"), str("event_type"), str("status"), str("venue"),
				ts("start_date"), ts("end_date"), ts("created_at")),
		),
	)
}
