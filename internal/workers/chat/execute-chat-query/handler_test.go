package executechatquery

import (
	"context"
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/resilience"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{Timeout: 2 * time.Second}
}

func setupExecutor(t *testing.T) (*executor.Executor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	exec := executor.New(db, executor.Config{Timeout: time.Second}, logger.NewTestLogger(t),
		executor.WithCache(executor.NewRedisCache(client), time.Minute))
	return exec, mock
}

func TestExecute_RunsQuery(t *testing.T) {
	exec, mock := setupExecutor(t)
	h := NewHandler(createTestConfig(), exec, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT COUNT(*) FROM common_province t0").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(27)))

	out, err := h.Execute(context.Background(), &Input{GeneratedQuery: "Province.objects.count()", TemplateID: "count_provinces"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, int64(27), out.Result)
	assert.Equal(t, "Province", out.QueryInfo.Model)
	assert.Equal(t, "count_provinces", out.TemplateID)

	again, err := h.Execute(context.Background(), &Input{GeneratedQuery: "Province.objects.count()"})
	require.NoError(t, err)
	assert.True(t, again.QueryInfo.Cached)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_UnsafeQueryIsNotRetried(t *testing.T) {
	exec, mock := setupExecutor(t)
	h := NewHandler(createTestConfig(), exec, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{GeneratedQuery: "OBCCommunity.objects.all().delete()"})
	require.Error(t, err)

	stdErr := h.standardize(err)
	assert.Equal(t, errors.ErrCodeUnsafeQuery, stdErr.Code)
	assert.False(t, stdErr.Retryable)

	bpmn := errors.ConvertToBPMNError(stdErr)
	assert.Equal(t, "UNSAFE_QUERY", bpmn.Code)
	assert.Equal(t, 0, bpmn.Retries)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_EmptyQuery(t *testing.T) {
	exec, _ := setupExecutor(t)
	h := NewHandler(createTestConfig(), exec, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{GeneratedQuery: "  "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, errors.ErrCodeInvalidInput, h.standardize(err).Code)
}

func TestExecute_RateLimited(t *testing.T) {
	exec, mock := setupExecutor(t)
	cfg := createTestConfig()
	cfg.RateLimitPerSec = 0.001
	cfg.RateBurst = 1
	h := NewHandler(cfg, exec, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT COUNT(*) FROM common_region t0").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	_, err := h.Execute(context.Background(), &Input{GeneratedQuery: "Region.objects.count()"})
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), &Input{GeneratedQuery: "Region.objects.count()"})
	assert.ErrorIs(t, err, resilience.ErrRateLimited)

	stdErr := h.standardize(err)
	assert.Equal(t, errors.ErrCodeRateLimited, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_DatabaseErrorIsRetryable(t *testing.T) {
	exec, mock := setupExecutor(t)
	h := NewHandler(createTestConfig(), exec, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT COUNT(*) FROM mana_need t0").WillReturnError(assert.AnError)

	_, err := h.Execute(context.Background(), &Input{GeneratedQuery: "Need.objects.count()"})
	stdErr := h.standardize(err)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.Equal(t, 3, errors.ConvertToBPMNError(stdErr).Retries)
}
