package extractchatentities

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "extract-chat-entities"
)

var (
	ErrEmptyText   = stderrors.New("EMPTY_TEXT")
	ErrTextTooLong = stderrors.New("TEXT_TOO_LONG")
)

type Handler struct {
	config     *Config
	extractor  *entity.Extractor
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, extractor *entity.Extractor, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		extractor:  extractor,
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		done(string(errors.ErrCodeInvalidInput))
		h.errHandler.HandleJobError(context.Background(), client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if h.config.MaxTextLength > 0 && utf8.RuneCountInString(text) > h.config.MaxTextLength {
		return nil, fmt.Errorf("%w: %d characters allowed", ErrTextTooLong, h.config.MaxTextLength)
	}

	set := h.extractor.Extract(ctx, text)
	out := &Output{
		Entities:    set,
		EntityKeys:  set.Keys(),
		Summary:     entity.Summary(set),
		Warnings:    entity.Validate(set),
		EntityCount: len(set),
	}

	h.logger.Info("entities extracted", map[string]interface{}{
		"entityCount": out.EntityCount,
		"keys":        out.EntityKeys,
	})
	return out, nil
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
