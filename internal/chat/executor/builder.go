package executor

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// DefaultMaxResults caps list queries that do not slice.
const DefaultMaxResults = 1000

// Column names one output column and the type used to decode it.
type Column struct {
	Name string
	Type FieldType
}

// Statement is a compiled query. SQL only ever holds schema identifiers and
// $n placeholders; every literal travels in Args.
type Statement struct {
	Model    string
	SQL      string
	Args     []interface{}
	Columns  []Column
	Terminal Terminal
	Single   bool
	Flat     bool
	Pick     string
	Empty    bool
}

// Builder compiles queries into PostgreSQL.
type Builder struct {
	schema     *Schema
	maxResults int
}

func NewBuilder(schema *Schema, maxResults int) *Builder {
	if schema == nil {
		schema = defaultSchema
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Builder{schema: schema, maxResults: maxResults}
}

type compiler struct {
	schema  *Schema
	args    []interface{}
	seq     int
	ann     map[string]string
	annType map[string]FieldType
}

type scope struct {
	c      *compiler
	model  *Model
	alias  string
	joins  []string
	joined map[string]string

	// having is the compiled HAVING clause. While inHaving is set, bare
	// annotation names resolve to their aggregate expressions.
	having   string
	inHaving bool
}

type item struct {
	expr string
	name string
	typ  FieldType
	agg  bool
}

func (c *compiler) newScope(m *Model) *scope {
	return &scope{c: c, model: m, alias: c.nextAlias(), joined: map[string]string{}}
}

func (c *compiler) nextAlias() string {
	a := "t" + strconv.Itoa(c.seq)
	c.seq++
	return a
}

func (c *compiler) param(v interface{}) string {
	c.args = append(c.args, v)
	return "$" + strconv.Itoa(len(c.args))
}

func (c *compiler) target(r Relation) *Model {
	m, _ := c.schema.Model(r.Target)
	return m
}

func (s *scope) from() string {
	return s.model.Table + " " + s.alias + strings.Join(s.joins, "")
}

func (s *scope) join(key, from string, r Relation) string {
	if a, ok := s.joined[key]; ok {
		return a
	}
	target := s.c.target(r)
	a := s.c.nextAlias()
	if r.Reverse {
		s.joins = append(s.joins, " LEFT JOIN "+target.Table+" "+a+" ON "+a+"."+r.Column+" = "+from+".id")
	} else {
		s.joins = append(s.joins, " LEFT JOIN "+target.Table+" "+a+" ON "+a+".id = "+from+"."+r.Column)
	}
	s.joined[key] = a
	return a
}

// Build validates q against the schema and compiles it.
func (b *Builder) Build(q *Query) (*Statement, error) {
	if q == nil {
		return nil, reject(rejectSyntax, "empty query")
	}
	model, ok := b.schema.Model(q.Model)
	if !ok {
		return nil, reject(rejectModel, "unknown model '%s'", q.Model)
	}
	terminal := q.Terminal
	if terminal == "" {
		terminal = TerminalList
	}

	c := &compiler{schema: b.schema, ann: map[string]string{}, annType: map[string]FieldType{}}
	root := c.newScope(model)

	plain, grouped, err := splitHaving(q)
	if err != nil {
		return nil, err
	}
	where, err := root.where(plain)
	if err != nil {
		return nil, err
	}
	for _, a := range q.Annotations {
		if err := checkAlias(model, a.Alias, c.ann); err != nil {
			return nil, err
		}
		expr, typ, err := root.aggregate(a)
		if err != nil {
			return nil, err
		}
		c.ann[a.Alias] = expr
		c.annType[a.Alias] = typ
	}
	root.inHaving = true
	root.having, err = root.where(grouped)
	root.inHaving = false
	if err != nil {
		return nil, err
	}

	st := &Statement{
		Model:    model.Name,
		Terminal: terminal,
		Single:   terminal == TerminalFirst || terminal == TerminalLast || (terminal == TerminalList && q.Index),
		Flat:     q.Flat,
		Pick:     q.Pick,
		Empty:    q.Empty,
	}

	switch terminal {
	case TerminalCount:
		if len(q.Annotations) > 0 || (q.Distinct && len(q.Values) > 0) {
			inner, _, err := root.selectSQL(q, where, b.maxResults, false)
			if err != nil {
				return nil, err
			}
			st.SQL = "SELECT COUNT(*) FROM (" + inner + ") sub"
		} else {
			st.SQL = "SELECT COUNT(*) FROM " + root.from() + whereClause(where)
		}
		st.Columns = []Column{{Name: "count", Type: TypeInt}}

	case TerminalExists:
		if root.having != "" {
			inner, _, err := root.selectSQL(q, where, b.maxResults, false)
			if err != nil {
				return nil, err
			}
			st.SQL = "SELECT EXISTS (" + inner + ")"
		} else {
			st.SQL = "SELECT EXISTS (SELECT 1 FROM " + root.from() + whereClause(where) + ")"
		}
		st.Columns = []Column{{Name: "exists", Type: TypeBool}}

	case TerminalAggregate:
		if len(q.Annotations) > 0 {
			return nil, reject(rejectSyntax, "aggregate() over annotate() is not supported")
		}
		if len(q.Aggregates) == 0 {
			return nil, reject(rejectSyntax, "aggregate() needs at least one aggregate")
		}
		seen := map[string]string{}
		var cols []string
		for _, a := range q.Aggregates {
			if err := checkAlias(model, a.Alias, seen); err != nil {
				return nil, err
			}
			expr, typ, err := root.aggregate(a)
			if err != nil {
				return nil, err
			}
			seen[a.Alias] = expr
			cols = append(cols, expr+" AS "+quoteIdent(a.Alias))
			st.Columns = append(st.Columns, Column{Name: a.Alias, Type: typ})
		}
		if q.Pick != "" {
			if _, ok := seen[q.Pick]; !ok {
				return nil, reject(rejectField, "unknown aggregate key '%s'", q.Pick)
			}
		}
		st.SQL = "SELECT " + strings.Join(cols, ", ") + " FROM " + root.from() + whereClause(where)

	case TerminalList, TerminalFirst, TerminalLast:
		sql, cols, err := root.selectSQL(q, where, b.maxResults, true)
		if err != nil {
			return nil, err
		}
		st.SQL = sql
		st.Columns = cols

	default:
		return nil, reject(rejectSyntax, "unknown terminal '%s'", terminal)
	}

	st.Args = c.args
	return st, nil
}

// splitHaving separates filter() and exclude() calls on annotations from those
// on fields. A single call may not mix the two.
func splitHaving(q *Query) (plain, grouped *Query, err error) {
	names := make(map[string]bool, len(q.Annotations))
	for _, a := range q.Annotations {
		names[a.Alias] = true
	}
	plain, grouped = &Query{}, &Query{}
	place := func(e Expr, onFields, onAnnotations *[]Expr) error {
		ann, field := annotationRefs(e, names)
		if ann && field {
			return reject(rejectSyntax, "a filter cannot mix annotations and fields")
		}
		if ann {
			*onAnnotations = append(*onAnnotations, e)
		} else {
			*onFields = append(*onFields, e)
		}
		return nil
	}
	for _, f := range q.Filters {
		if err := place(f, &plain.Filters, &grouped.Filters); err != nil {
			return nil, nil, err
		}
	}
	for _, e := range q.Excludes {
		if err := place(e, &plain.Excludes, &grouped.Excludes); err != nil {
			return nil, nil, err
		}
	}
	return plain, grouped, nil
}

func annotationRefs(e Expr, names map[string]bool) (ann, field bool) {
	switch v := e.(type) {
	case Condition:
		if len(v.Path) == 1 && names[v.Path[0]] {
			return true, false
		}
		return false, true
	case NotExpr:
		return annotationRefs(v.Arg, names)
	case BoolExpr:
		for _, a := range v.Args {
			x, y := annotationRefs(a, names)
			ann, field = ann || x, field || y
		}
	}
	return ann, field
}

func whereClause(where string) string {
	if where == "" {
		return ""
	}
	return " WHERE " + where
}

func checkAlias(m *Model, alias string, taken map[string]string) error {
	if alias == "" {
		return reject(rejectSyntax, "aggregate needs a name")
	}
	if _, ok := m.Field(alias); ok {
		return reject(rejectField, "annotation '%s' conflicts with a field on %s", alias, m.Name)
	}
	if _, ok := m.Relation(alias); ok {
		return reject(rejectField, "annotation '%s' conflicts with a field on %s", alias, m.Name)
	}
	if _, ok := taken[alias]; ok {
		return reject(rejectField, "duplicate annotation '%s'", alias)
	}
	return nil
}

// selectSQL renders a row-returning SELECT. With full unset the ordering and
// limits are dropped, for use as a counting subquery.
func (s *scope) selectSQL(q *Query, where string, maxResults int, full bool) (string, []Column, error) {
	c := s.c
	var items []item
	if len(q.Values) > 0 {
		for _, v := range q.Values {
			if expr, ok := c.ann[v]; ok {
				items = append(items, item{expr: expr, name: v, typ: c.annType[v], agg: true})
				continue
			}
			path, err := splitPath(v)
			if err != nil {
				return "", nil, err
			}
			expr, typ, err := s.selectPath(path)
			if err != nil {
				return "", nil, err
			}
			items = append(items, item{expr: expr, name: v, typ: typ})
		}
		if q.GroupByValues && !q.ValuesAfterAnnotate && !q.Flat {
			listed := map[string]bool{}
			for _, v := range q.Values {
				listed[v] = true
			}
			for _, a := range q.Annotations {
				if !listed[a.Alias] {
					items = append(items, item{expr: c.ann[a.Alias], name: a.Alias, typ: c.annType[a.Alias], agg: true})
				}
			}
		}
	} else {
		for _, f := range s.model.Columns() {
			items = append(items, item{expr: s.alias + "." + f.Column, name: f.Name, typ: f.Type})
		}
		for _, a := range q.Annotations {
			items = append(items, item{expr: c.ann[a.Alias], name: a.Alias, typ: c.annType[a.Alias], agg: true})
		}
	}

	grouped := len(q.Annotations) > 0
	byValues := grouped && q.GroupByValues && len(q.Values) > 0
	distinct := q.Distinct && len(q.Values) > 0 && !grouped

	var groupBy []string
	inGroup := map[string]bool{}
	addGroup := func(expr string) {
		if inGroup[expr] {
			return
		}
		if !byValues && strings.HasPrefix(expr, s.alias+".") {
			return
		}
		inGroup[expr] = true
		groupBy = append(groupBy, expr)
	}
	if grouped && !byValues {
		groupBy = append(groupBy, s.alias+".id")
		inGroup[s.alias+".id"] = true
	}
	selected := map[string]bool{}
	for _, it := range items {
		selected[it.expr] = true
		if grouped && !it.agg {
			addGroup(it.expr)
		}
	}

	var orderBy []string
	if full {
		ordering := q.Ordering
		if len(ordering) == 0 && (q.Terminal == TerminalFirst || q.Terminal == TerminalLast) {
			ordering = []Order{{Field: "id"}}
		}
		for _, o := range ordering {
			desc := o.Desc
			if q.Terminal == TerminalLast {
				desc = !desc
			}
			expr, isAgg := c.ann[o.Field]
			if !isAgg {
				path, err := splitPath(o.Field)
				if err != nil {
					return "", nil, err
				}
				expr, _, err = s.selectPath(path)
				if err != nil {
					return "", nil, err
				}
			}
			if distinct && !selected[expr] {
				continue
			}
			if grouped && !isAgg && !inGroup[expr] {
				if byValues && len(q.Ordering) == 0 {
					expr = items[0].expr
				} else {
					addGroup(expr)
				}
			}
			if desc {
				expr += " DESC"
			}
			orderBy = append(orderBy, expr)
		}
	}

	cols := make([]Column, 0, len(items))
	rendered := make([]string, 0, len(items))
	for _, it := range items {
		rendered = append(rendered, it.expr+" AS "+quoteIdent(it.name))
		cols = append(cols, Column{Name: it.name, Type: it.typ})
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(strings.Join(rendered, ", "))
	b.WriteString(" FROM ")
	b.WriteString(s.from())
	b.WriteString(whereClause(where))
	if len(groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(groupBy, ", "))
	}
	if s.having != "" {
		b.WriteString(" HAVING ")
		b.WriteString(s.having)
	}
	if full {
		if len(orderBy) > 0 {
			b.WriteString(" ORDER BY ")
			b.WriteString(strings.Join(orderBy, ", "))
		}
		limit := maxResults
		switch {
		case q.Terminal == TerminalFirst || q.Terminal == TerminalLast || q.Index:
			limit = 1
		case q.Limit > 0 && q.Limit < limit:
			limit = q.Limit
		}
		b.WriteString(" LIMIT " + strconv.Itoa(limit))
		if q.Offset > 0 && q.Terminal == TerminalList {
			b.WriteString(" OFFSET " + strconv.Itoa(q.Offset))
		}
	}
	return b.String(), cols, nil
}

// selectPath resolves a field path for output, ordering or aggregation.
// Relations on the way become LEFT JOINs; a path ending on a relation yields
// the related id.
func (s *scope) selectPath(path []string) (string, FieldType, error) {
	model, alias := s.model, s.alias
	for i, seg := range path {
		last := i == len(path)-1
		if f, ok := model.Field(seg); ok {
			if !last {
				if i == len(path)-2 {
					if expr, tf, ok := datePart(alias+"."+f.Column, f, path[i+1]); ok {
						return expr, tf.Type, nil
					}
				}
				return "", 0, reject(rejectField, "'%s' on %s is not a relation", seg, model.Name)
			}
			return alias + "." + f.Column, f.Type, nil
		}
		r, ok := model.Relation(seg)
		if !ok {
			return "", 0, reject(rejectField, "unknown field '%s' on %s", seg, model.Name)
		}
		if last && !r.Reverse {
			return alias + "." + r.Column, TypeInt, nil
		}
		alias = s.join(strings.Join(path[:i+1], "__"), alias, r)
		model = s.c.target(r)
		if last {
			return alias + ".id", TypeInt, nil
		}
	}
	return "", 0, reject(rejectField, "empty field name")
}

func (s *scope) aggregate(a Aggregate) (string, FieldType, error) {
	if len(a.Field) == 0 {
		return "", 0, reject(rejectSyntax, "%s() needs a field name", a.Func)
	}
	expr, typ, err := s.selectPath(a.Field)
	if err != nil {
		return "", 0, err
	}
	switch a.Func {
	case AggCount:
		typ = TypeInt
	case AggAvg:
		typ = TypeFloat
	case AggSum:
		if typ != TypeInt && typ != TypeFloat {
			return "", 0, reject(rejectField, "cannot sum '%s'", strings.Join(a.Field, "__"))
		}
	case AggStdDev, AggVariance:
		if typ != TypeInt && typ != TypeFloat {
			return "", 0, reject(rejectField, "cannot compute %s of '%s'", a.Func, strings.Join(a.Field, "__"))
		}
		typ = TypeFloat
	case AggMax, AggMin:
	default:
		return "", 0, reject(rejectMethod, "aggregate '%s' is not allowed", a.Func)
	}
	if a.Distinct {
		expr = "DISTINCT " + expr
	}
	sql := string(a.Func) + "(" + expr + ")"
	if a.Filter != nil {
		cond, err := s.expr(a.Filter)
		if err != nil {
			return "", 0, err
		}
		if cond != "" {
			sql += " FILTER (WHERE " + cond + ")"
		}
	}
	return sql, typ, nil
}

func (s *scope) where(q *Query) (string, error) {
	var parts []string
	for _, f := range q.Filters {
		sql, err := s.filterCall(f)
		if err != nil {
			return "", err
		}
		if sql != "" {
			parts = append(parts, sql)
		}
	}
	for _, e := range q.Excludes {
		sql, err := s.filterCall(e)
		if err != nil {
			return "", err
		}
		if sql != "" {
			parts = append(parts, "NOT COALESCE(("+sql+"), FALSE)")
		}
	}
	return strings.Join(parts, " AND "), nil
}

// filterCall compiles the arguments of one filter() or exclude() call.
// Conditions that cross the same reverse relation must hold for the same
// related row, so they share one EXISTS.
func (s *scope) filterCall(e Expr) (string, error) {
	be, ok := e.(BoolExpr)
	if !ok || be.Op != OpAnd {
		return s.expr(e)
	}

	type group struct {
		prefix []string
		conds  []Condition
	}
	var (
		order  []interface{}
		groups = map[string]*group{}
	)
	for _, arg := range be.Args {
		c, isCond := arg.(Condition)
		if !isCond {
			order = append(order, arg)
			continue
		}
		idx := s.reverseIndex(c.Path)
		if idx < 0 {
			order = append(order, arg)
			continue
		}
		key := strings.Join(c.Path[:idx+1], "__")
		g, seen := groups[key]
		if !seen {
			g = &group{prefix: c.Path[:idx+1]}
			groups[key] = g
			order = append(order, g)
		}
		g.conds = append(g.conds, Condition{Path: c.Path[idx+1:], Lookup: c.Lookup, Value: c.Value})
	}

	var parts []string
	for _, o := range order {
		var (
			sql string
			err error
		)
		switch v := o.(type) {
		case *group:
			sql, err = s.existsPath(v.prefix, v.conds)
		case Expr:
			sql, err = s.expr(v)
		}
		if err != nil {
			return "", err
		}
		if sql != "" {
			parts = append(parts, sql)
		}
	}
	if len(parts) > 1 {
		return "(" + strings.Join(parts, " AND ") + ")", nil
	}
	return strings.Join(parts, ""), nil
}

// reverseIndex finds the reverse relation a path crosses after zero or more
// forward relations, when more path follows it. It returns -1 otherwise.
func (s *scope) reverseIndex(path []string) int {
	model := s.model
	for i, seg := range path[:len(path)-1] {
		r, ok := model.Relation(seg)
		if !ok {
			return -1
		}
		if r.Reverse {
			return i
		}
		model = s.c.target(r)
	}
	return -1
}

func (s *scope) existsPath(prefix []string, conds []Condition) (string, error) {
	model, alias := s.model, s.alias
	for i, seg := range prefix[:len(prefix)-1] {
		r, _ := model.Relation(seg)
		alias = s.join(strings.Join(prefix[:i+1], "__"), alias, r)
		model = s.c.target(r)
	}
	r, _ := model.Relation(prefix[len(prefix)-1])
	return s.exists(alias, r, conds, false)
}

func (s *scope) exists(parent string, r Relation, conds []Condition, negate bool) (string, error) {
	sub := s.c.newScope(s.c.target(r))
	parts := []string{sub.alias + "." + r.Column + " = " + parent + ".id"}
	for _, c := range conds {
		sql, err := sub.condition(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	sql := "EXISTS (SELECT 1 FROM " + sub.from() + " WHERE " + strings.Join(parts, " AND ") + ")"
	if negate {
		sql = "NOT " + sql
	}
	return sql, nil
}

func (s *scope) expr(e Expr) (string, error) {
	switch v := e.(type) {
	case Condition:
		return s.condition(v)
	case NotExpr:
		inner, err := s.expr(v.Arg)
		if err != nil {
			return "", err
		}
		if inner == "" {
			return "FALSE", nil
		}
		return "NOT COALESCE((" + inner + "), FALSE)", nil
	case BoolExpr:
		parts := make([]string, 0, len(v.Args))
		for _, a := range v.Args {
			sql, err := s.expr(a)
			if err != nil {
				return "", err
			}
			if sql != "" {
				parts = append(parts, sql)
			}
		}
		switch len(parts) {
		case 0:
			return "", nil
		case 1:
			return parts[0], nil
		}
		op := " AND "
		if v.Op == OpOr {
			op = " OR "
		}
		return "(" + strings.Join(parts, op) + ")", nil
	case nil:
		return "", nil
	}
	return "", reject(rejectSyntax, "unsupported filter expression")
}

func (s *scope) condition(c Condition) (string, error) {
	if len(c.Path) == 0 {
		return "", reject(rejectField, "empty field name")
	}
	if c.Lookup == "" {
		c.Lookup = "exact"
	}
	if !lookups[c.Lookup] {
		return "", reject(rejectField, "unsupported lookup '%s'", c.Lookup)
	}

	if s.inHaving && len(c.Path) == 1 {
		if expr, ok := s.c.ann[c.Path[0]]; ok {
			return s.c.lookup(expr, Field{Name: c.Path[0], Type: s.c.annType[c.Path[0]]}, c.Lookup, c.Value)
		}
	}

	model, alias := s.model, s.alias
	for i, seg := range c.Path {
		last := i == len(c.Path)-1
		if f, ok := model.Field(seg); ok {
			if !last {
				if i == len(c.Path)-2 {
					if expr, tf, ok := datePart(alias+"."+f.Column, f, c.Path[i+1]); ok {
						return s.c.lookup(expr, tf, c.Lookup, c.Value)
					}
				}
				return "", reject(rejectField, "'%s' on %s is not a relation", seg, model.Name)
			}
			return s.c.lookup(alias+"."+f.Column, f, c.Lookup, c.Value)
		}
		r, ok := model.Relation(seg)
		if !ok {
			return "", reject(rejectField, "unknown field '%s' on %s", seg, model.Name)
		}
		if r.Reverse {
			if !last {
				return s.exists(alias, r, []Condition{{Path: c.Path[i+1:], Lookup: c.Lookup, Value: c.Value}}, false)
			}
			if c.Lookup == "isnull" {
				if c.Value.Kind != KindBool {
					return "", reject(rejectValue, "isnull needs True or False")
				}
				return s.exists(alias, r, nil, c.Value.Bool)
			}
			return s.exists(alias, r, []Condition{{Path: []string{"id"}, Lookup: c.Lookup, Value: c.Value}}, false)
		}
		if last {
			return s.c.lookup(alias+"."+r.Column, Field{Name: seg, Column: r.Column, Type: TypeInt}, c.Lookup, c.Value)
		}
		alias = s.join(strings.Join(c.Path[:i+1], "__"), alias, r)
		model = s.c.target(r)
	}
	return "", reject(rejectField, "empty field name")
}

func (c *compiler) lookup(col string, f Field, lookup string, v Value) (string, error) {
	if lookup == "isnull" {
		if v.Kind != KindBool {
			return "", reject(rejectValue, "isnull needs True or False")
		}
		if v.Bool {
			return col + " IS NULL", nil
		}
		return col + " IS NOT NULL", nil
	}
	if v.Kind == KindNull {
		if lookup == "exact" {
			return col + " IS NULL", nil
		}
		return "", reject(rejectValue, "None is not allowed with '%s'", lookup)
	}

	switch lookup {
	case "in":
		if v.Kind != KindList {
			return "", reject(rejectValue, "'%s__in' needs a list", f.Name)
		}
		if len(v.List) == 0 {
			return "FALSE", nil
		}
		arr, cast, err := typedArray(f, v.List)
		if err != nil {
			return "", err
		}
		return col + cast + " = ANY(" + c.param(arr) + ")", nil

	case "range":
		if v.Kind != KindList || len(v.List) != 2 {
			return "", reject(rejectValue, "'%s__range' needs two values", f.Name)
		}
		lo, err := coerce(f, v.List[0])
		if err != nil {
			return "", err
		}
		hi, err := coerce(f, v.List[1])
		if err != nil {
			return "", err
		}
		return col + " BETWEEN " + c.param(lo) + " AND " + c.param(hi), nil
	}

	if v.Kind == KindList {
		return "", reject(rejectValue, "a list is not allowed with '%s'", lookup)
	}

	switch lookup {
	case "exact", "gt", "gte", "lt", "lte":
		val, err := coerce(f, v)
		if err != nil {
			return "", err
		}
		return col + " " + comparison[lookup] + " " + c.param(val), nil
	case "iexact":
		return "UPPER(" + col + "::text) = UPPER(" + c.param(literal(v)) + ")", nil
	}

	pattern := escapeLike(literal(v))
	switch lookup {
	case "contains", "icontains":
		pattern = "%" + pattern + "%"
	case "startswith", "istartswith":
		pattern += "%"
	case "endswith", "iendswith":
		pattern = "%" + pattern
	}
	if strings.HasPrefix(lookup, "i") {
		return "UPPER(" + col + "::text) LIKE UPPER(" + c.param(pattern) + ")", nil
	}
	return col + "::text LIKE " + c.param(pattern), nil
}

var dateParts = map[string]string{
	"year":     "YEAR",
	"quarter":  "QUARTER",
	"month":    "MONTH",
	"week":     "WEEK",
	"day":      "DAY",
	"week_day": "DOW",
}

// datePart applies a date transform such as created_at__year to a date or
// timestamp column. week_day counts from 1 for Sunday.
func datePart(col string, f Field, part string) (string, Field, bool) {
	if f.Type != TypeTime && f.Type != TypeDate {
		return "", Field{}, false
	}
	unit, ok := dateParts[part]
	if !ok {
		return "", Field{}, false
	}
	expr := "EXTRACT(" + unit + " FROM " + col + ")::int"
	if part == "week_day" {
		expr = "(" + expr + " + 1)"
	}
	return expr, Field{Name: f.Name + "__" + part, Column: col, Type: TypeInt}, true
}

var comparison = map[string]string{"exact": "=", "gt": ">", "gte": ">=", "lt": "<", "lte": "<="}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func literal(v Value) string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// coerce converts a literal to the Go type the field's column expects.
func coerce(f Field, v Value) (interface{}, error) {
	bad := func() (interface{}, error) {
		return nil, reject(rejectValue, "invalid value for '%s'", f.Name)
	}
	switch f.Type {
	case TypeString:
		if v.Kind == KindBool || v.Kind == KindList || v.Kind == KindNull {
			return bad()
		}
		return literal(v), nil
	case TypeInt:
		switch v.Kind {
		case KindInt:
			return v.Int, nil
		case KindFloat:
			return v.Float, nil
		case KindString:
			if n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64); err == nil {
				return n, nil
			}
		}
		return bad()
	case TypeFloat:
		switch v.Kind {
		case KindInt:
			return float64(v.Int), nil
		case KindFloat:
			return v.Float, nil
		case KindString:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64); err == nil {
				return n, nil
			}
		}
		return bad()
	case TypeBool:
		switch v.Kind {
		case KindBool:
			return v.Bool, nil
		case KindString:
			if b, err := strconv.ParseBool(v.Str); err == nil {
				return b, nil
			}
		}
		return bad()
	case TypeTime, TypeDate:
		if v.Kind != KindString {
			return bad()
		}
		return v.Str, nil
	}
	return bad()
}

// typedArray builds the driver array for an = ANY($n) lookup, plus the cast
// the column needs to compare against it.
func typedArray(f Field, items []Value) (interface{}, string, error) {
	switch f.Type {
	case TypeInt:
		out := make([]int64, 0, len(items))
		for _, it := range items {
			v, err := coerce(f, it)
			if err != nil {
				return nil, "", err
			}
			n, ok := v.(int64)
			if !ok {
				return nil, "", reject(rejectValue, "invalid value for '%s'", f.Name)
			}
			out = append(out, n)
		}
		return pq.Array(out), "", nil
	case TypeFloat:
		out := make([]float64, 0, len(items))
		for _, it := range items {
			v, err := coerce(f, it)
			if err != nil {
				return nil, "", err
			}
			out = append(out, v.(float64))
		}
		return pq.Array(out), "", nil
	case TypeBool:
		out := make([]bool, 0, len(items))
		for _, it := range items {
			v, err := coerce(f, it)
			if err != nil {
				return nil, "", err
			}
			out = append(out, v.(bool))
		}
		return pq.Array(out), "", nil
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Kind == KindNull || it.Kind == KindBool {
			return nil, "", reject(rejectValue, "invalid value for '%s'", f.Name)
		}
		out = append(out, literal(it))
	}
	cast := ""
	if f.Type == TypeTime || f.Type == TypeDate {
		cast = "::text"
	}
	return pq.Array(out), cast, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
