package executor

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RejectsUnsafeInput(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		reason   string
	}{
		{"import", "__import__('os').system('rm -rf /')", rejectDunder, "dunder name '__import__' is not allowed"},
		{"exec", "exec('print(1)')", rejectBuiltin, "call to 'exec' is not allowed"},
		{"eval", "eval('1+1')", rejectBuiltin, "call to 'eval' is not allowed"},
		{"compile", "compile('x', 'y', 'exec')", rejectBuiltin, "call to 'compile' is not allowed"},
		{"open", "open('/etc/passwd')", rejectBuiltin, "call to 'open' is not allowed"},
		{"class chain", "().__class__.__bases__[0].__subclasses__()", rejectSyntax, "expected model name, found '('"},
		{"delete", "OBCCommunity.objects.all().delete()", rejectMutation, "mutating operation 'delete' is not allowed"},
		{"update", "OBCCommunity.objects.update(name='x')", rejectMutation, "mutating operation 'update' is not allowed"},
		{"create", "Region.objects.create(name='x')", rejectMutation, "mutating operation 'create' is not allowed"},
		{"bulk create", "Region.objects.bulk_create([])", rejectMutation, "mutating operation 'bulk_create' is not allowed"},
		{"delete after count", "Region.objects.count().delete()", rejectMutation, "mutating operation 'delete' is not allowed"},
		{"raw", "Region.objects.raw('DROP TABLE common_region')", rejectMethod, "method 'raw' is not allowed"},
		{"extra", "Region.objects.extra(where=['1=1'])", rejectMethod, "method 'extra' is not allowed"},
		{"dunder attribute", "Region.objects.__class__", rejectDunder, "dunder name '__class__' is not allowed"},
		{"dunder method", "Region.objects.all().__dict__", rejectDunder, "dunder name '__dict__' is not allowed"},
		{"private name", "Region._meta", rejectDunder, "private name '_meta' is not allowed"},
		{"unknown model", "User.objects.all()", rejectModel, "unknown model 'User'"},
		{"manager missing", "Region.all()", rejectSyntax, "expected 'objects' after model name, found 'all'"},
		{"bare manager", "Region.objects", rejectSyntax, "expected a method call after 'objects'"},
		{"call in value", "Region.objects.filter(name=getattr(x, 'y'))", rejectBuiltin, "call to 'getattr' is not allowed"},
		{"bare name in value", "Region.objects.filter(name=os)", rejectSyntax, "name 'os' is not allowed"},
		{"dunder kwarg", "Region.objects.filter(__class__='x')", rejectDunder, "dunder name '__class__' is not allowed"},
		{"random ordering", "Region.objects.order_by('?')", rejectValue, "random ordering is not allowed"},
		{"call after terminal", "Region.objects.count().filter(name='x')", rejectTerminated, "cannot call 'filter' after count()"},
		{"call after slice", "Region.objects.all()[:5].filter(name='x')", rejectTerminated, "cannot call 'filter' after slicing"},
		{"negative index", "Region.objects.all()[-1]", rejectValue, "negative indexing is not supported"},
		{"slice step", "Region.objects.all()[0:10:2]", rejectSyntax, "slice steps are not allowed"},
		{"trailing input", "Region.objects.count() ; DROP TABLE x", rejectSyntax, "unexpected character ';' at position 23"},
		{"semicolon in call", "Region.objects.filter(name='a'); Region.objects.all().delete()", rejectSyntax, "unexpected character ';' at position 31"},
		{"unterminated string", "Region.objects.filter(name='abc)", rejectSyntax, "unterminated string at position 27"},
		{"empty path segment", "Region.objects.filter(provinces____name='x')", rejectField, "invalid field path 'provinces____name'"},
		{"key pick without aggregate", "Region.objects.count()['x']", rejectSyntax, "key lookup is only allowed after aggregate()"},
		{"empty", "   ", rejectSyntax, "empty query"},
		{"positional literal in filter", "Region.objects.filter('x')", rejectSyntax, "filter() positional arguments must be Q expressions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			require.Error(t, err)
			assert.Nil(t, q)
			assert.True(t, errors.Is(err, ErrRejected))

			var rej *RejectionError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.category, rej.Category)
			assert.Equal(t, tt.reason, rej.Reason)
		})
	}
}

func TestParse_RejectsOverlongQuery(t *testing.T) {
	q := "Region.objects.filter(name='" + strings.Repeat("a", MaxQueryLength) + "')"
	_, err := Parse(q)

	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rejectTooLong, rej.Category)
}

func TestParse_Count(t *testing.T) {
	q, err := Parse("OBCCommunity.objects.filter(barangay__municipality__name__icontains='Cotabato').count()")
	require.NoError(t, err)

	want := &Query{
		Model: "OBCCommunity",
		Filters: []Expr{BoolExpr{Op: OpAnd, Args: []Expr{
			Condition{Path: []string{"barangay", "municipality", "name"}, Lookup: "icontains", Value: String("Cotabato")},
		}}},
		Terminal: TerminalCount,
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("parsed query mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_QExpressionPrecedence(t *testing.T) {
	q, err := Parse("Barangay.objects.filter(Q(name='a') | Q(name='b') & ~Q(code='c')).count()")
	require.NoError(t, err)
	require.Len(t, q.Filters, 1)

	want := BoolExpr{Op: OpAnd, Args: []Expr{
		BoolExpr{Op: OpOr, Args: []Expr{
			BoolExpr{Op: OpAnd, Args: []Expr{Condition{Path: []string{"name"}, Lookup: "exact", Value: String("a")}}},
			BoolExpr{Op: OpAnd, Args: []Expr{
				BoolExpr{Op: OpAnd, Args: []Expr{Condition{Path: []string{"name"}, Lookup: "exact", Value: String("b")}}},
				NotExpr{Arg: BoolExpr{Op: OpAnd, Args: []Expr{Condition{Path: []string{"code"}, Lookup: "exact", Value: String("c")}}}},
			}},
		}},
	}}
	if diff := cmp.Diff(want, q.Filters[0]); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ValuesAndLiterals(t *testing.T) {
	q, err := Parse(`Need.objects.filter(urgency_level__in=['immediate', "short_term",], beneficiary_count__gte=-5, estimated_cost__lt=1.5, assessment__isnull=False, title=None,).order_by('-created_at', 'title').values('id', 'title')[:20]`)
	require.NoError(t, err)

	require.Len(t, q.Filters, 1)
	args := q.Filters[0].(BoolExpr).Args
	require.Len(t, args, 5)
	assert.Equal(t, List(String("immediate"), String("short_term")), args[0].(Condition).Value)
	assert.Equal(t, Int(-5), args[1].(Condition).Value)
	assert.Equal(t, Float(1.5), args[2].(Condition).Value)
	assert.Equal(t, Bool(false), args[3].(Condition).Value)
	assert.Equal(t, Null(), args[4].(Condition).Value)

	assert.Equal(t, []Order{{Field: "created_at", Desc: true}, {Field: "title"}}, q.Ordering)
	assert.Equal(t, []string{"id", "title"}, q.Values)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, TerminalList, q.Terminal)
}

func TestParse_StrippedPlaceholderCommas(t *testing.T) {
	q, err := Parse("OBCCommunity.objects.filter(, , barangay__name__icontains='Poblacion',, ).count()")
	require.NoError(t, err)
	require.Len(t, q.Filters, 1)
	assert.Len(t, q.Filters[0].(BoolExpr).Args, 1)

	q, err = Parse("Region.objects.filter().count()")
	require.NoError(t, err)
	assert.Equal(t, TerminalCount, q.Terminal)
}

func TestParse_StringEscapes(t *testing.T) {
	q, err := Parse(`Region.objects.filter(name='O\'Brien \\ "x"').count()`)
	require.NoError(t, err)
	c := q.Filters[0].(BoolExpr).Args[0].(Condition)
	assert.Equal(t, `O'Brien \ "x"`, c.Value.Str)
}

func TestParse_AnnotateAndAggregate(t *testing.T) {
	t.Run("values before annotate groups by values", func(t *testing.T) {
		q, err := Parse("OBCCommunity.objects.values('primary_ethnic_group').annotate(count=Count('id'), population=Sum('estimated_obc_population')).order_by('-count')")
		require.NoError(t, err)
		assert.True(t, q.GroupByValues)
		require.Len(t, q.Annotations, 2)
		assert.Equal(t, Aggregate{Alias: "count", Func: AggCount, Field: []string{"id"}}, q.Annotations[0])
		assert.Equal(t, Aggregate{Alias: "population", Func: AggSum, Field: []string{"estimated_obc_population"}}, q.Annotations[1])
	})

	t.Run("values after annotate", func(t *testing.T) {
		q, err := Parse("Organization.objects.annotate(partnership_count=Count('partnerships')).order_by('-partnership_count').values('name', 'partnership_count')[:5]")
		require.NoError(t, err)
		assert.False(t, q.GroupByValues)
		assert.Equal(t, []string{"name", "partnership_count"}, q.Values)
	})

	t.Run("distinct and filtered aggregates", func(t *testing.T) {
		q, err := Parse("CommunityInfrastructure.objects.annotate(c=Count('community', distinct=True), lacking=Count('id', filter=Q(availability_status='none')))")
		require.NoError(t, err)
		require.Len(t, q.Annotations, 2)
		assert.True(t, q.Annotations[0].Distinct)
		assert.NotNil(t, q.Annotations[1].Filter)
	})

	t.Run("positional aggregate gets a default name", func(t *testing.T) {
		q, err := Parse("WorkItem.objects.aggregate(Sum('budget_allocated'))['budget_allocated__sum']")
		require.NoError(t, err)
		assert.Equal(t, TerminalAggregate, q.Terminal)
		assert.Equal(t, "budget_allocated__sum", q.Aggregates[0].Alias)
		assert.Equal(t, "budget_allocated__sum", q.Pick)
	})
}

func TestParse_Subscripts(t *testing.T) {
	q, err := Parse("Region.objects.order_by('name')[2]")
	require.NoError(t, err)
	assert.True(t, q.Index)
	assert.Equal(t, 2, q.Offset)
	assert.Equal(t, 1, q.Limit)

	q, err = Parse("Region.objects.all()[5:15]")
	require.NoError(t, err)
	assert.Equal(t, 5, q.Offset)
	assert.Equal(t, 10, q.Limit)

	q, err = Parse("Region.objects.all()[:0]")
	require.NoError(t, err)
	assert.True(t, q.Empty)
}

func TestParse_ReadOnlyNoOps(t *testing.T) {
	q, err := Parse("Need.objects.select_related('community').prefetch_related('assessment').distinct().exists()")
	require.NoError(t, err)
	assert.True(t, q.Distinct)
	assert.Equal(t, TerminalExists, q.Terminal)

	q, err = Parse("Region.objects.none()")
	require.NoError(t, err)
	assert.True(t, q.Empty)
}

func TestWhere(t *testing.T) {
	c, err := Where("barangay__name__icontains", String("x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"barangay", "name"}, c.Path)
	assert.Equal(t, "icontains", c.Lookup)

	c, err = Where("status", String("active"))
	require.NoError(t, err)
	assert.Equal(t, "exact", c.Lookup)

	_, err = Where("__class__", String("x"))
	assert.ErrorIs(t, err, ErrRejected)
}
