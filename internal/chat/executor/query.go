// Package executor runs chat queries against the OBCMS database. Query strings
// are accepted only when they parse under a small allowlist grammar of
// read-only ORM-style calls; everything else is rejected before any SQL is
// built.
package executor

import (
	"errors"
	"fmt"
)

type Terminal string

const (
	TerminalList      Terminal = "list"
	TerminalCount     Terminal = "count"
	TerminalExists    Terminal = "exists"
	TerminalFirst     Terminal = "first"
	TerminalLast      Terminal = "last"
	TerminalAggregate Terminal = "aggregate"
)

type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindNull
	KindList
)

// Value is a literal taken from a query string.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Int(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func Null() Value           { return Value{Kind: KindNull} }
func List(vs ...Value) Value {
	return Value{Kind: KindList, List: vs}
}

// Interface returns the Go value handed to the database driver.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	default:
		return nil
	}
}

// Expr is a boolean filter expression.
type Expr interface {
	expr()
}

// Condition is a single field lookup such as barangay__name__icontains='x'.
type Condition struct {
	Path   []string
	Lookup string
	Value  Value
}

type BoolOp string

const (
	OpAnd BoolOp = "AND"
	OpOr  BoolOp = "OR"
)

type BoolExpr struct {
	Op   BoolOp
	Args []Expr
}

type NotExpr struct {
	Arg Expr
}

func (Condition) expr() {}
func (BoolExpr) expr()  {}
func (NotExpr) expr()   {}

// Q builds the AND of conditions.
func Q(conds ...Expr) Expr {
	return BoolExpr{Op: OpAnd, Args: conds}
}

// Or builds the OR of exprs.
func Or(exprs ...Expr) Expr {
	return BoolExpr{Op: OpOr, Args: exprs}
}

// Where parses a Django-style lookup key into a Condition.
func Where(key string, v Value) (Condition, error) {
	path, lookup, err := splitLookup(key)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Path: path, Lookup: lookup, Value: v}, nil
}

type AggFunc string

const (
	AggCount AggFunc = "COUNT"
	AggSum   AggFunc = "SUM"
	AggAvg   AggFunc = "AVG"
	AggMax   AggFunc = "MAX"
	AggMin   AggFunc = "MIN"

	AggStdDev   AggFunc = "STDDEV_SAMP"
	AggVariance AggFunc = "VAR_SAMP"
)

var aggFuncs = map[string]AggFunc{
	"Count": AggCount,
	"Sum":   AggSum,
	"Avg":   AggAvg,
	"Max":   AggMax,
	"Min":   AggMin,

	"StdDev":   AggStdDev,
	"Variance": AggVariance,
}

type Aggregate struct {
	Alias    string
	Func     AggFunc
	Field    []string
	Distinct bool
	Filter   Expr
}

type Order struct {
	Field string
	Desc  bool
}

// Query is a parsed, read-only query. It can also be built directly in Go and
// handed to Executor.ExecuteQuery.
type Query struct {
	Model    string
	Filters  []Expr
	Excludes []Expr
	Ordering []Order
	Values   []string
	Flat     bool
	Distinct bool

	Annotations []Aggregate
	// GroupByValues is set when values() came before annotate(), grouping the
	// annotations by the selected values.
	GroupByValues bool
	// ValuesAfterAnnotate is set when values() followed annotate(); only the
	// listed annotations are then selected.
	ValuesAfterAnnotate bool

	Aggregates []Aggregate
	Terminal   Terminal

	Offset int
	Limit  int
	// Index is set by a single-element subscript such as [0].
	Index bool
	// Pick selects one key of an aggregate result.
	Pick string
	// Empty is set by none().
	Empty bool
}

// ErrRejected matches every RejectionError.
var ErrRejected = errors.New("UNSAFE_QUERY")

// RejectionError explains why a query was refused. Category is a short label
// for metrics.
type RejectionError struct {
	Category string
	Reason   string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

const (
	rejectSyntax     = "syntax"
	rejectModel      = "model"
	rejectMutation   = "mutation"
	rejectMethod     = "method"
	rejectDunder     = "dunder"
	rejectBuiltin    = "builtin"
	rejectField      = "field"
	rejectValue      = "value"
	rejectTooLong    = "too_long"
	rejectTerminated = "terminated"
)

func reject(category, format string, args ...interface{}) error {
	return &RejectionError{Category: category, Reason: fmt.Sprintf(format, args...)}
}
