package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_Lifecycle(t *testing.T) {
	obs, err := New("chat-test")
	require.NoError(t, err)

	ctx, span := obs.StartSpan(context.Background(), "match")
	require.NotNil(t, span)
	assert.NotNil(t, ctx)
	span.End()

	obs.RecordJob(ctx, "match-query-template", "completed", 12*time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, obs.Shutdown(shutdownCtx))
}

func TestObservability_NilReceiverIsSafe(t *testing.T) {
	var obs *Observability

	_, span := obs.StartSpan(context.Background(), "noop")
	span.End()
	obs.RecordJob(context.Background(), "x", "failed", time.Second)
	assert.NoError(t, obs.Shutdown(context.Background()))
}
