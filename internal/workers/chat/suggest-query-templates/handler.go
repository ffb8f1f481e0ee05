package suggestquerytemplates

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/metrics"
	"obcms-chat-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "suggest-query-templates"
)

var (
	ErrUnknownCategory = stderrors.New("UNKNOWN_CATEGORY")
)

var schema = validation.MustCompile(inputSchema)

type Handler struct {
	config     *Config
	matcher    *matcher.Matcher
	categories map[string]bool
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

// NewHandler builds the handler. categories lists the categories the catalog
// knows; an empty list accepts any category.
func NewHandler(config *Config, m *matcher.Matcher, categories []string, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}
	return &Handler{
		config:     config,
		matcher:    m,
		categories: known,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	done := metrics.TrackJob(TaskType)

	if res := schema.ValidateJSON(job.Variables); !res.Valid {
		done(string(errors.ErrCodeInvalidInput))
		h.errHandler.HandleJobError(context.Background(), client, job, errors.NewInvalidInputError(res.Summary()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		done(string(errors.ErrCodeInvalidInput))
		h.errHandler.HandleJobError(context.Background(), client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr := errors.NewInvalidInputError(err.Error())
		done(string(stdErr.Code))
		h.errHandler.HandleJobError(context.Background(), client, job, stdErr)
		return
	}

	done("")
	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Category != "" && len(h.categories) > 0 && !h.categories[input.Category] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, input.Category)
	}

	max := input.MaxSuggestions
	if max <= 0 {
		max = h.config.MaxSuggestions
	}
	suggestions := h.matcher.GetTemplateSuggestions(input.Partial, input.Category, max)

	h.logger.Debug("suggestions built", map[string]interface{}{
		"partial":  input.Partial,
		"category": input.Category,
		"count":    len(suggestions),
	})
	return &Output{Suggestions: suggestions, Count: len(suggestions)}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
