package executor

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/metrics"
	"obcms-chat-workers/internal/common/observability"
	"obcms-chat-workers/internal/common/resilience"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout  = 5 * time.Second
	DefaultCacheTTL = 5 * time.Minute

	maxLoggedQuery = 200
)

type Config struct {
	MaxResults int
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// QueryInfo describes how a query ran.
type QueryInfo struct {
	Query      string   `json:"query,omitempty"`
	Model      string   `json:"model,omitempty"`
	Terminal   Terminal `json:"terminal,omitempty"`
	SQL        string   `json:"sql,omitempty"`
	RowCount   int      `json:"rowCount"`
	DurationMs int64    `json:"durationMs"`
	Cached     bool     `json:"cached"`
}

// Result is what Execute returns. Rejections and database failures both come
// back with Success false; Err carries the classified failure for callers that
// report it further.
type Result struct {
	Success   bool                  `json:"success"`
	Result    interface{}           `json:"result"`
	Error     string                `json:"error,omitempty"`
	ErrorCode string                `json:"errorCode,omitempty"`
	Info      QueryInfo             `json:"queryInfo"`
	Err       *errors.StandardError `json:"-"`
}

type Option func(*Executor)

// WithCache stores successful results in c for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(e *Executor) {
		e.cache = c
		if ttl > 0 {
			e.cacheTTL = ttl
		}
	}
}

func WithBreaker(b *resilience.Breaker) Option {
	return func(e *Executor) { e.breaker = b }
}

func WithSchema(s *Schema) Option {
	return func(e *Executor) {
		if s != nil {
			e.schema = s
		}
	}
}

func WithObservability(o *observability.Observability) Option {
	return func(e *Executor) { e.obs = o }
}

// Executor runs read-only chat queries.
type Executor struct {
	db       *sql.DB
	schema   *Schema
	builder  *Builder
	cache    Cache
	cacheTTL time.Duration
	breaker  *resilience.Breaker
	group    singleflight.Group
	timeout  time.Duration
	logger   logger.Logger
	obs      *observability.Observability
}

func New(db *sql.DB, cfg Config, log logger.Logger, opts ...Option) *Executor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	e := &Executor{
		db:       db,
		schema:   defaultSchema,
		cacheTTL: DefaultCacheTTL,
		timeout:  cfg.Timeout,
		logger:   log.WithFields(map[string]interface{}{"component": "executor"}),
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if cfg.CacheTTL > 0 {
		e.cacheTTL = cfg.CacheTTL
	}
	for _, opt := range opts {
		opt(e)
	}
	e.builder = NewBuilder(e.schema, cfg.MaxResults)
	return e
}

func (e *Executor) Schema() *Schema {
	return e.schema
}

// Execute parses query and runs it. Queries outside the read-only grammar are
// refused without touching the database.
func (e *Executor) Execute(ctx context.Context, query string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = e.internalError(query, fmt.Errorf("%v", r))
		}
	}()

	q, err := ParseWithSchema(query, e.schema)
	if err != nil {
		return e.rejected(query, err)
	}
	res = e.ExecuteQuery(ctx, q)
	res.Info.Query = query
	return res
}

// ExecuteQuery runs a query built in code.
func (e *Executor) ExecuteQuery(ctx context.Context, q *Query) (res Result) {
	start := time.Now()
	ctx, span := e.obs.StartSpan(ctx, "executor.ExecuteQuery")
	defer func() {
		if r := recover(); r != nil {
			res = e.internalError("", fmt.Errorf("%v", r))
		}
		res.Info.DurationMs = time.Since(start).Milliseconds()
		span.SetAttributes(
			attribute.String("chat.model", res.Info.Model),
			attribute.Bool("chat.cached", res.Info.Cached),
			attribute.Int("chat.rows", res.Info.RowCount),
		)
		if !res.Success {
			span.SetStatus(codes.Error, res.Error)
		}
		span.End()
	}()

	st, err := e.builder.Build(q)
	if err != nil {
		return e.rejected("", err)
	}
	info := QueryInfo{Model: st.Model, Terminal: st.Terminal, SQL: st.SQL}

	if st.Empty {
		result := shape(st, nil)
		info.RowCount = rowCount(result)
		return Result{Success: true, Result: result, Info: info}
	}

	key := CacheKey(st)
	if result, ok := e.lookup(ctx, st, key); ok {
		info.Cached = true
		info.RowCount = rowCount(result)
		return Result{Success: true, Result: result, Info: info}
	}

	// The shared run outlives any one caller; each caller still stops waiting
	// when its own context ends.
	flight := e.group.DoChan(key, func() (interface{}, error) {
		return e.run(context.WithoutCancel(ctx), st)
	})
	var result interface{}
	select {
	case r := <-flight:
		if r.Err != nil {
			return e.failed(info, r.Err)
		}
		result = r.Val
	case <-ctx.Done():
		return e.failed(info, ctx.Err())
	}

	metrics.QueriesExecuted.WithLabelValues(st.Model, "success").Inc()
	e.store(ctx, key, result)

	info.RowCount = rowCount(result)
	e.logger.Debug("query executed", map[string]interface{}{
		"model":    st.Model,
		"terminal": string(st.Terminal),
		"rows":     info.RowCount,
	})
	return Result{Success: true, Result: result, Info: info}
}

func (e *Executor) run(ctx context.Context, st *Statement) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.QueryDuration.WithLabelValues(st.Model).Observe(time.Since(start).Seconds())
	}()

	query := func(ctx context.Context) (interface{}, error) {
		rows, err := e.db.QueryContext(ctx, st.SQL, st.Args...)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && !stderrors.Is(err, ctxErr) {
				err = fmt.Errorf("%w: %v", ctxErr, err)
			}
			return nil, err
		}
		scanned, err := scanRows(rows, st.Columns)
		if err != nil {
			return nil, err
		}
		return shape(st, scanned), nil
	}

	if e.breaker == nil {
		return query(ctx)
	}
	return e.breaker.Do(ctx, query)
}

func (e *Executor) lookup(ctx context.Context, st *Statement, key string) (interface{}, bool) {
	if e.cache == nil {
		return nil, false
	}
	data, found, err := e.cache.Get(ctx, key)
	if err != nil {
		metrics.QueryCacheLookups.WithLabelValues("error").Inc()
		e.logger.Warn("query cache read failed", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	if !found {
		metrics.QueryCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	result, err := decodeCached(st, data)
	if err != nil {
		metrics.QueryCacheLookups.WithLabelValues("error").Inc()
		e.logger.Warn("query cache entry unreadable", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	metrics.QueryCacheLookups.WithLabelValues("hit").Inc()
	return result, true
}

func (e *Executor) store(ctx context.Context, key string, result interface{}) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, data, e.cacheTTL); err != nil {
		e.logger.Warn("query cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// rejected reports a refused query. Refusals are expected security events and
// are logged at warn.
func (e *Executor) rejected(query string, err error) Result {
	category := rejectSyntax
	var rej *RejectionError
	if stderrors.As(err, &rej) {
		category = rej.Category
	}
	metrics.QueriesRejected.WithLabelValues(category).Inc()
	e.logger.Warn("query rejected", map[string]interface{}{
		"query":    truncate(query, maxLoggedQuery),
		"reason":   err.Error(),
		"category": category,
	})

	stdErr := errors.NewUnsafeQueryError(err.Error())
	return Result{
		Success:   false,
		Error:     stdErr.Message,
		ErrorCode: string(stdErr.Code),
		Info:      QueryInfo{Query: query},
		Err:       stdErr,
	}
}

func (e *Executor) failed(info QueryInfo, err error) Result {
	var stdErr *errors.StandardError
	switch {
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		stdErr = errors.NewCircuitOpenError("executor")
	case stderrors.Is(err, context.DeadlineExceeded):
		stdErr = errors.NewQueryTimeoutError(info.Model)
	default:
		stdErr = errors.NewQueryExecutionFailedError(info.Model, err)
	}
	metrics.QueriesExecuted.WithLabelValues(info.Model, "error").Inc()
	e.logger.Error("query execution failed", map[string]interface{}{
		"model":     info.Model,
		"errorCode": string(stdErr.Code),
		"error":     err.Error(),
	})
	return Result{
		Success:   false,
		Error:     "Execution error: " + err.Error(),
		ErrorCode: string(stdErr.Code),
		Info:      info,
		Err:       stdErr,
	}
}

func (e *Executor) internalError(query string, err error) Result {
	stdErr := errors.NewInternalError(err)
	e.logger.Error("query executor panicked", map[string]interface{}{
		"query": truncate(query, maxLoggedQuery),
		"error": err.Error(),
	})
	return Result{
		Success:   false,
		Error:     "Internal error: " + err.Error(),
		ErrorCode: string(stdErr.Code),
		Info:      QueryInfo{Query: query},
		Err:       stdErr,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
