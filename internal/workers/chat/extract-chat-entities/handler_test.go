package extractchatentities

import (
	"context"
	"strings"
	"testing"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	clock := func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return NewHandler(LoadConfig(), entity.NewExtractor(entity.WithClock(clock)), logger.NewTestLogger(t))
}

func TestExecute_ExtractsEntities(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Text: "Show fishing communities in Region IX"})
	require.NoError(t, err)

	assert.Equal(t, "Region IX", out.Entities.Text(entity.KeyLocation))
	assert.Contains(t, out.EntityKeys, entity.KeyLocation)
	assert.Contains(t, out.EntityKeys, entity.KeyLivelihood)
	assert.Equal(t, len(out.Entities), out.EntityCount)
	assert.NotEmpty(t, out.Summary)
}

func TestExecute_NothingToExtract(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Text: "hello there"})
	require.NoError(t, err)
	assert.Empty(t, out.Entities)
	assert.Equal(t, 0, out.EntityCount)
}

func TestExecute_RejectsBadText(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = h.Execute(context.Background(), &Input{Text: strings.Repeat("a", h.config.MaxTextLength+1)})
	assert.ErrorIs(t, err, ErrTextTooLong)
}
