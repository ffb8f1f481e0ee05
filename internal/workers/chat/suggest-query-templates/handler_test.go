package suggestquerytemplates

import (
	"context"
	"strings"
	"testing"

	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)
	log := logger.NewTestLogger(t)
	return NewHandler(LoadConfig(), matcher.New(reg, log), reg.Categories(), log)
}

func TestExecute_PrefixWithinCategory(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Partial: "show me all", Category: "geographic"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, out.Count, 2)
	assert.Len(t, out.Suggestions, out.Count)

	for i, s := range out.Suggestions {
		assert.Equal(t, "geographic", s.Category)
		assert.True(t, strings.HasPrefix(strings.ToLower(s.Example), "show me all"), s.Example)
		if i > 0 {
			assert.LessOrEqual(t, s.Priority, out.Suggestions[i-1].Priority)
		}
	}
}

func TestExecute_RespectsLimit(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Partial: "", MaxSuggestions: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	out, err = h.Execute(context.Background(), &Input{Partial: ""})
	require.NoError(t, err)
	assert.Equal(t, h.config.MaxSuggestions, out.Count)
}

func TestExecute_NoSuggestions(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Partial: "zzz nothing starts like this"})
	require.NoError(t, err)
	assert.Empty(t, out.Suggestions)
	assert.Equal(t, 0, out.Count)
}

func TestExecute_UnknownCategory(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Partial: "show", Category: "weather"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestInputSchema(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"partial only", `{"partial":"show"}`, true},
		{"empty partial", `{"partial":""}`, true},
		{"with limit", `{"partial":"list","maxSuggestions":10}`, true},
		{"missing partial", `{"category":"geographic"}`, false},
		{"zero limit", `{"partial":"x","maxSuggestions":0}`, false},
		{"limit too large", `{"partial":"x","maxSuggestions":500}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, schema.ValidateJSON(tt.doc).Valid)
		})
	}
}
