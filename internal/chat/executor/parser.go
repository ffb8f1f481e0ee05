package executor

import (
	"strconv"
	"strings"
)

// MaxQueryLength bounds the size of a query string.
const MaxQueryLength = 4096

var lookups = map[string]bool{
	"exact": true, "iexact": true,
	"contains": true, "icontains": true,
	"startswith": true, "istartswith": true,
	"endswith": true, "iendswith": true,
	"gt": true, "gte": true, "lt": true, "lte": true,
	"in": true, "isnull": true, "range": true,
}

var mutatingMethods = map[string]bool{
	"delete": true, "update": true, "create": true, "save": true,
	"get_or_create": true, "update_or_create": true,
	"bulk_create": true, "bulk_update": true,
}

var readMethods = map[string]bool{
	"all": true, "none": true, "filter": true, "exclude": true,
	"order_by": true, "values": true, "values_list": true, "distinct": true,
	"select_related": true, "prefetch_related": true,
	"annotate": true, "aggregate": true,
	"count": true, "exists": true, "first": true, "last": true,
}

var defaultSchema = DefaultSchema()

// Parse reads a query string against the default schema.
func Parse(src string) (*Query, error) {
	return ParseWithSchema(src, defaultSchema)
}

// ParseWithSchema reads a query string of the form
//
//	Model.objects.filter(...).order_by(...).values(...)[:n]
//
// Anything outside the read-only grammar comes back as a *RejectionError.
// Field paths are checked later, when the query is built.
func ParseWithSchema(src string, schema *Schema) (*Query, error) {
	if len(src) > MaxQueryLength {
		return nil, reject(rejectTooLong, "query exceeds %d characters", MaxQueryLength)
	}
	if strings.TrimSpace(src) == "" {
		return nil, reject(rejectSyntax, "empty query")
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, schema: schema, q: &Query{}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	if p.q.Terminal == "" {
		p.q.Terminal = TerminalList
	}
	return p.q, nil
}

type parser struct {
	toks   []token
	pos    int
	schema *Schema
	q      *Query
	sliced bool
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(punct string) error {
	t := p.next()
	if !t.is(punct) {
		return reject(rejectSyntax, "expected '%s', found %s", punct, t.describe())
	}
	return nil
}

func checkName(name string) error {
	if strings.HasPrefix(name, "__") {
		return reject(rejectDunder, "dunder name '%s' is not allowed", name)
	}
	if strings.HasPrefix(name, "_") {
		return reject(rejectDunder, "private name '%s' is not allowed", name)
	}
	return nil
}

func (p *parser) parse() error {
	t := p.next()
	if t.kind != tokIdent {
		return reject(rejectSyntax, "expected model name, found %s", t.describe())
	}
	if err := checkName(t.text); err != nil {
		return err
	}
	if p.peek().is("(") {
		return reject(rejectBuiltin, "call to '%s' is not allowed", t.text)
	}
	if _, ok := p.schema.Model(t.text); !ok {
		return reject(rejectModel, "unknown model '%s'", t.text)
	}
	p.q.Model = t.text

	if err := p.expect("."); err != nil {
		return err
	}
	t = p.next()
	if t.kind == tokIdent {
		if err := checkName(t.text); err != nil {
			return err
		}
	}
	if t.kind != tokIdent || t.text != "objects" {
		return reject(rejectSyntax, "expected 'objects' after model name, found %s", t.describe())
	}
	if p.peek().kind == tokEOF {
		return reject(rejectSyntax, "expected a method call after 'objects'")
	}

	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			return nil
		case t.is("."):
			p.next()
			if err := p.parseCall(); err != nil {
				return err
			}
		case t.is("["):
			p.next()
			if err := p.parseSubscript(); err != nil {
				return err
			}
		default:
			return reject(rejectSyntax, "unexpected %s at position %d", t.describe(), t.pos)
		}
	}
}

func (p *parser) parseCall() error {
	t := p.next()
	if t.kind != tokIdent {
		return reject(rejectSyntax, "expected method name, found %s", t.describe())
	}
	name := t.text
	if err := checkName(name); err != nil {
		return err
	}
	if mutatingMethods[name] {
		return reject(rejectMutation, "mutating operation '%s' is not allowed", name)
	}
	if !readMethods[name] {
		return reject(rejectMethod, "method '%s' is not allowed", name)
	}
	if p.q.Terminal != "" {
		return reject(rejectTerminated, "cannot call '%s' after %s()", name, p.q.Terminal)
	}
	if p.sliced {
		return reject(rejectTerminated, "cannot call '%s' after slicing", name)
	}
	if err := p.expect("("); err != nil {
		return err
	}
	args, err := p.parseArgs(")")
	if err != nil {
		return err
	}
	return p.apply(name, args)
}

// arg is one call argument. Exactly one of value, expr and agg is set.
type arg struct {
	key   string
	value *Value
	expr  Expr
	agg   *Aggregate
}

func (p *parser) parseArgs(closer string) ([]arg, error) {
	var args []arg
	for {
		if p.peek().is(closer) {
			p.next()
			return args, nil
		}
		if p.peek().is(",") {
			p.next()
			continue
		}
		a, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, a)

		t := p.peek()
		if !t.is(",") && !t.is(closer) {
			return nil, reject(rejectSyntax, "expected ',' or '%s', found %s", closer, t.describe())
		}
	}
}

func (p *parser) parseArg() (arg, error) {
	t := p.peek()
	if t.kind == tokIdent && p.peekAt(1).is("=") {
		if err := checkName(t.text); err != nil {
			return arg{}, err
		}
		p.next()
		p.next()
		a, err := p.parseOperand()
		if err != nil {
			return arg{}, err
		}
		if a.expr != nil && t.text != "filter" {
			return arg{}, reject(rejectSyntax, "Q expression cannot be assigned to '%s'", t.text)
		}
		a.key = t.text
		return a, nil
	}
	return p.parseOperand()
}

// parseOperand reads a literal, an aggregate call or a Q expression.
func (p *parser) parseOperand() (arg, error) {
	t := p.peek()
	if t.is("~") || t.is("(") || (t.kind == tokIdent && t.text == "Q") {
		e, err := p.parseOr()
		if err != nil {
			return arg{}, err
		}
		return arg{expr: e}, nil
	}
	if t.kind == tokIdent {
		if _, ok := aggFuncs[t.text]; ok && p.peekAt(1).is("(") {
			agg, err := p.parseAggregate()
			if err != nil {
				return arg{}, err
			}
			return arg{agg: agg}, nil
		}
	}
	v, err := p.parseValue()
	if err != nil {
		return arg{}, err
	}
	return arg{value: &v}, nil
}

func (p *parser) parseValue() (Value, error) {
	t := p.next()
	switch t.kind {
	case tokString:
		return String(t.text), nil
	case tokInt:
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return Value{}, reject(rejectValue, "invalid integer %s", t.text)
		}
		return Int(n), nil
	case tokFloat:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return Value{}, reject(rejectValue, "invalid number %s", t.text)
		}
		return Float(f), nil
	case tokIdent:
		switch t.text {
		case "True":
			return Bool(true), nil
		case "False":
			return Bool(false), nil
		case "None":
			return Null(), nil
		}
		if err := checkName(t.text); err != nil {
			return Value{}, err
		}
		if p.peek().is("(") {
			return Value{}, reject(rejectBuiltin, "call to '%s' is not allowed", t.text)
		}
		return Value{}, reject(rejectSyntax, "name '%s' is not allowed", t.text)
	case tokPunct:
		if t.text == "[" {
			return p.parseList()
		}
	}
	return Value{}, reject(rejectSyntax, "expected a value, found %s", t.describe())
}

func (p *parser) parseList() (Value, error) {
	list := Value{Kind: KindList, List: []Value{}}
	for {
		if p.peek().is("]") {
			p.next()
			return list, nil
		}
		if p.peek().is(",") {
			p.next()
			continue
		}
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		if v.Kind == KindList {
			return Value{}, reject(rejectValue, "nested lists are not allowed")
		}
		list.List = append(list.List, v)
		if t := p.peek(); !t.is(",") && !t.is("]") {
			return Value{}, reject(rejectSyntax, "expected ',' or ']', found %s", t.describe())
		}
	}
}

// Q expressions: & binds tighter than |, ~ tightest.
func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	args := []Expr{left}
	for p.peek().is("|") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return BoolExpr{Op: OpOr, Args: args}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	args := []Expr{left}
	for p.peek().is("&") {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}
	if len(args) == 1 {
		return left, nil
	}
	return BoolExpr{Op: OpAnd, Args: args}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.next()
	switch {
	case t.is("~"):
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NotExpr{Arg: inner}, nil
	case t.is("("):
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case t.kind == tokIdent && t.text == "Q":
		if err := p.expect("("); err != nil {
			return nil, err
		}
		args, err := p.parseArgs(")")
		if err != nil {
			return nil, err
		}
		return conditions("Q", args)
	}
	return nil, reject(rejectSyntax, "expected Q expression, found %s", t.describe())
}

// conditions turns filter-style arguments into one AND expression.
func conditions(method string, args []arg) (BoolExpr, error) {
	out := BoolExpr{Op: OpAnd}
	for _, a := range args {
		switch {
		case a.key != "" && a.value != nil:
			c, err := Where(a.key, *a.value)
			if err != nil {
				return BoolExpr{}, err
			}
			out.Args = append(out.Args, c)
		case a.key == "" && a.expr != nil:
			out.Args = append(out.Args, a.expr)
		case a.agg != nil:
			return BoolExpr{}, reject(rejectSyntax, "aggregate is not allowed in %s()", method)
		default:
			return BoolExpr{}, reject(rejectSyntax, "%s() positional arguments must be Q expressions", method)
		}
	}
	return out, nil
}

func (p *parser) parseAggregate() (*Aggregate, error) {
	name := p.next().text
	agg := &Aggregate{Func: aggFuncs[name]}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args, err := p.parseArgs(")")
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		switch {
		case a.key == "" && a.value != nil && a.value.Kind == KindString && agg.Field == nil:
			path, err := splitPath(a.value.Str)
			if err != nil {
				return nil, err
			}
			agg.Field = path
		case a.key == "distinct" && a.value != nil && a.value.Kind == KindBool:
			agg.Distinct = a.value.Bool
		case a.key == "filter" && a.expr != nil:
			agg.Filter = a.expr
		default:
			return nil, reject(rejectSyntax, "invalid argument to %s()", name)
		}
	}
	if agg.Field == nil {
		return nil, reject(rejectSyntax, "%s() needs a field name", name)
	}
	return agg, nil
}

func (p *parser) apply(name string, args []arg) error {
	q := p.q
	switch name {
	case "all", "distinct", "none", "count", "exists", "first", "last":
		if len(args) > 0 {
			return reject(rejectSyntax, "%s() takes no arguments", name)
		}
		switch name {
		case "distinct":
			q.Distinct = true
		case "none":
			q.Empty = true
		case "count":
			q.Terminal = TerminalCount
		case "exists":
			q.Terminal = TerminalExists
		case "first":
			q.Terminal = TerminalFirst
		case "last":
			q.Terminal = TerminalLast
		}

	case "select_related", "prefetch_related":
		for _, a := range args {
			if a.key != "" || a.value == nil || a.value.Kind != KindString {
				return reject(rejectSyntax, "%s() takes field names", name)
			}
		}

	case "filter", "exclude":
		e, err := conditions(name, args)
		if err != nil {
			return err
		}
		if len(e.Args) == 0 {
			return nil
		}
		if name == "filter" {
			q.Filters = append(q.Filters, e)
		} else {
			q.Excludes = append(q.Excludes, e)
		}

	case "order_by":
		ordering := make([]Order, 0, len(args))
		for _, a := range args {
			if a.key != "" || a.value == nil || a.value.Kind != KindString {
				return reject(rejectSyntax, "order_by() takes field names")
			}
			f := a.value.Str
			if f == "?" {
				return reject(rejectValue, "random ordering is not allowed")
			}
			o := Order{Field: strings.TrimPrefix(f, "-"), Desc: strings.HasPrefix(f, "-")}
			if o.Field == "" {
				return reject(rejectValue, "empty ordering field")
			}
			ordering = append(ordering, o)
		}
		q.Ordering = ordering

	case "values", "values_list":
		var fields []string
		flat := false
		for _, a := range args {
			switch {
			case a.key == "" && a.value != nil && a.value.Kind == KindString:
				fields = append(fields, a.value.Str)
			case name == "values_list" && a.key == "flat" && a.value != nil && a.value.Kind == KindBool:
				flat = a.value.Bool
			default:
				return reject(rejectSyntax, "%s() takes field names", name)
			}
		}
		if flat && len(fields) != 1 {
			return reject(rejectSyntax, "flat=True needs exactly one field")
		}
		q.Values = fields
		q.Flat = flat
		if len(q.Annotations) == 0 {
			q.GroupByValues = len(fields) > 0
		} else {
			q.ValuesAfterAnnotate = true
		}

	case "annotate", "aggregate":
		aggs, err := aggregates(name, args)
		if err != nil {
			return err
		}
		if name == "annotate" {
			q.Annotations = append(q.Annotations, aggs...)
		} else {
			q.Aggregates = aggs
			q.Terminal = TerminalAggregate
		}
	}
	return nil
}

func aggregates(method string, args []arg) ([]Aggregate, error) {
	if len(args) == 0 {
		return nil, reject(rejectSyntax, "%s() needs at least one aggregate", method)
	}
	out := make([]Aggregate, 0, len(args))
	for _, a := range args {
		if a.agg == nil {
			return nil, reject(rejectSyntax, "%s() arguments must be aggregates", method)
		}
		agg := *a.agg
		agg.Alias = a.key
		if agg.Alias == "" {
			agg.Alias = strings.Join(agg.Field, "__") + "__" + strings.ToLower(string(agg.Func))
		}
		out = append(out, agg)
	}
	return out, nil
}

func (p *parser) parseSubscript() error {
	q := p.q
	if p.sliced {
		return reject(rejectTerminated, "query is already sliced")
	}
	t := p.peek()

	if t.kind == tokString {
		if q.Terminal != TerminalAggregate || q.Pick != "" {
			return reject(rejectSyntax, "key lookup is only allowed after aggregate()")
		}
		p.next()
		q.Pick = t.text
		return p.expect("]")
	}
	if q.Terminal != "" {
		return reject(rejectTerminated, "cannot slice after %s()", q.Terminal)
	}

	var start, stop *int
	if t.kind == tokInt {
		n, err := p.index()
		if err != nil {
			return err
		}
		start = &n
	}
	if p.peek().is("]") {
		p.next()
		if start == nil {
			return reject(rejectSyntax, "empty subscript")
		}
		q.Offset, q.Limit, q.Index = *start, 1, true
		p.sliced = true
		return nil
	}
	if err := p.expect(":"); err != nil {
		return err
	}
	if p.peek().kind == tokInt {
		n, err := p.index()
		if err != nil {
			return err
		}
		stop = &n
	}
	if p.peek().is(":") {
		return reject(rejectSyntax, "slice steps are not allowed")
	}
	if err := p.expect("]"); err != nil {
		return err
	}

	p.sliced = true
	if start != nil {
		q.Offset = *start
	}
	if stop != nil {
		if *stop <= q.Offset {
			q.Empty = true
			return nil
		}
		q.Limit = *stop - q.Offset
	}
	return nil
}

func (p *parser) index() (int, error) {
	t := p.next()
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, reject(rejectValue, "invalid index %s", t.text)
	}
	if n < 0 {
		return 0, reject(rejectValue, "negative indexing is not supported")
	}
	return n, nil
}

func splitPath(s string) ([]string, error) {
	if s == "" {
		return nil, reject(rejectField, "empty field name")
	}
	parts := strings.Split(s, "__")
	for _, part := range parts {
		if part == "" {
			return nil, reject(rejectField, "invalid field path '%s'", s)
		}
	}
	return parts, nil
}

// splitLookup separates the trailing lookup from a filter key. Keys without a
// known lookup suffix use exact.
func splitLookup(key string) ([]string, string, error) {
	if strings.HasPrefix(key, "_") {
		return nil, "", checkName(key)
	}
	parts, err := splitPath(key)
	if err != nil {
		return nil, "", err
	}
	last := parts[len(parts)-1]
	if len(parts) > 1 && lookups[last] {
		return parts[:len(parts)-1], last, nil
	}
	return parts, "exact", nil
}
