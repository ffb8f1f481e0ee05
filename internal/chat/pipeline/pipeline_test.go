package pipeline

import (
	"context"
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.NewTestLogger(t)
	clock := func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	svc := New(
		entity.NewExtractor(entity.WithClock(clock)),
		matcher.New(reg, log),
		executor.New(db, executor.Config{}, log),
		log,
	)
	return svc, mock
}

func TestAnswer_ExtractsMatchesAndExecutes(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM communities_obccommunity t0 LEFT JOIN common_barangay t1`).
		WithArgs("%Region IX%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	resp := svc.Answer(context.Background(), Request{Query: "How many communities in Region IX?", Execute: true})

	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, "Region IX", resp.Entities.Text(entity.KeyLocation))
	require.True(t, resp.Generation.Success, resp.Generation.Error)
	assert.Equal(t, "count_communities_by_location", resp.Generation.TemplateID)

	require.NotNil(t, resp.Execution)
	require.True(t, resp.Execution.Success, resp.Execution.Error)
	assert.Equal(t, int64(42), resp.Execution.Result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswer_CallerEntitiesWin(t *testing.T) {
	svc, _ := newService(t)

	resp := svc.Answer(context.Background(), Request{
		Query: "How many communities in Region IX?",
		Entities: entity.Set{
			entity.KeyLocation: entity.Location{Level: entity.LevelRegion, Value: "Region XII"},
		},
	})

	require.True(t, resp.Generation.Success, resp.Generation.Error)
	assert.Equal(t,
		"OBCCommunity.objects.filter(barangay__municipality__province__region__name__icontains='Region XII').count()",
		resp.Generation.Query)
	assert.Nil(t, resp.Execution)
}

func TestAnswer_InvalidTemplateIsNotExecuted(t *testing.T) {
	svc, mock := newService(t)

	resp := svc.Answer(context.Background(), Request{Query: "show sector needs", Execute: true})

	assert.False(t, resp.Generation.Success)
	assert.Equal(t, []string{"sector"}, resp.Generation.MissingEntities)
	assert.Nil(t, resp.Execution)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswer_UniqueRequestIDs(t *testing.T) {
	svc, _ := newService(t)

	a := svc.Answer(context.Background(), Request{Query: "Show me all provinces"})
	b := svc.Answer(context.Background(), Request{Query: "Show me all provinces"})
	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.Equal(t, a.Generation.Query, b.Generation.Query)
}

func TestEntities_SkipsNilOverrides(t *testing.T) {
	svc, _ := newService(t)

	got := svc.Entities(context.Background(), "communities in region ix", entity.Set{entity.KeyLocation: nil})
	assert.Equal(t, "Region IX", got.Text(entity.KeyLocation))
}
