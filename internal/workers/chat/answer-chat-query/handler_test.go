package answerchatquery

import (
	"context"
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/chat/pipeline"
	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countByRegionSQL = `SELECT COUNT\(\*\) FROM communities_obccommunity t0 LEFT JOIN common_barangay t1`

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.NewTestLogger(t)
	clock := func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	svc := pipeline.New(
		entity.NewExtractor(entity.WithClock(clock)),
		matcher.New(reg, log),
		executor.New(db, executor.Config{}, log),
		log,
	)
	return NewHandler(LoadConfig(), svc, log), mock
}

func TestExecute_AnswersAndRunsByDefault(t *testing.T) {
	h, mock := createTestHandler(t)

	mock.ExpectQuery(countByRegionSQL).
		WithArgs("%Region IX%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	out, err := h.Execute(context.Background(), &Input{Query: "How many communities in Region IX?"})
	require.NoError(t, err)

	assert.True(t, out.Matched)
	assert.NotEmpty(t, out.RequestID)
	assert.Equal(t, "count_communities_by_location", out.TemplateID)
	assert.Equal(t, "count", out.ResultType)
	require.NotNil(t, out.Execution)
	assert.True(t, out.Execution.Success)
	assert.Equal(t, int64(42), out.Execution.Result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_GenerateOnly(t *testing.T) {
	h, mock := createTestHandler(t)
	run := false

	out, err := h.Execute(context.Background(), &Input{Query: "How many communities in Region IX?", Execute: &run})
	require.NoError(t, err)

	assert.True(t, out.Matched)
	assert.Nil(t, out.Execution)
	assert.Equal(t,
		"OBCCommunity.objects.filter(barangay__municipality__province__region__name__icontains='Region IX').count()",
		out.GeneratedQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_NoMatchCompletes(t *testing.T) {
	h, mock := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Query: "what is the weather tomorrow"})
	require.NoError(t, err)

	assert.False(t, out.Matched)
	assert.NotEmpty(t, out.Error)
	assert.Nil(t, out.Execution)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DatabaseFailureIsRetried(t *testing.T) {
	h, mock := createTestHandler(t)

	mock.ExpectQuery(countByRegionSQL).WillReturnError(assert.AnError)

	_, err := h.Execute(context.Background(), &Input{Query: "How many communities in Region IX?"})
	require.Error(t, err)

	stdErr := h.standardize(err)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_EmptyQuery(t *testing.T) {
	h, _ := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Query: " "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, errors.ErrCodeInvalidInput, h.standardize(err).Code)
}

func TestInputSchema(t *testing.T) {
	assert.True(t, schema.ValidateJSON(`{"query":"list provinces","execute":false}`).Valid)
	assert.False(t, schema.ValidateJSON(`{"query":"list provinces","execute":"yes"}`).Valid)
	assert.False(t, schema.ValidateJSON(`{}`).Valid)
}
