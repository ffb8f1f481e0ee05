package answerchatquery

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"obcms-chat-workers/internal/chat/pipeline"
	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/metrics"
	"obcms-chat-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "answer-chat-query"
)

var (
	ErrEmptyQuery = stderrors.New("EMPTY_QUERY")
)

var schema = validation.MustCompile(inputSchema)

type Answerer interface {
	Answer(ctx context.Context, req pipeline.Request) pipeline.Response
}

type Handler struct {
	config     *Config
	service    Answerer
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, service Answerer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		service:    service,
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
		stdErr := h.standardize(err)
		done(string(stdErr.Code))
		h.errHandler.HandleJobError(context.Background(), client, job, stdErr)
		return
	}

	done("")
	h.completeJob(client, job, output)
}

// execute completes the job for every outcome except a retryable execution
// failure, which is handed back so the job is retried.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, ErrEmptyQuery
	}
	run := h.config.ExecuteByDefault
	if input.Execute != nil {
		run = *input.Execute
	}

	resp := h.service.Answer(ctx, pipeline.Request{
		Query:    input.Query,
		Entities: input.Entities,
		Intent:   input.Intent,
		Category: input.Category,
		Execute:  run,
	})

	if ex := resp.Execution; ex != nil && !ex.Success && ex.Err != nil && ex.Err.Retryable {
		return nil, ex.Err
	}

	gen := resp.Generation
	return &Output{
		RequestID:       resp.RequestID,
		Matched:         gen.Success,
		TemplateID:      gen.TemplateID,
		Category:        gen.Category,
		ResultType:      string(gen.ResultType),
		GeneratedQuery:  gen.Query,
		Score:           gen.Score,
		Entities:        resp.Entities,
		EntitySummary:   resp.Summary,
		Warnings:        resp.Warnings,
		MissingEntities: gen.MissingEntities,
		Error:           gen.Error,
		Execution:       resp.Execution,
		DurationMs:      resp.DurationMs,
	}, nil
}

func (h *Handler) standardize(err error) *errors.StandardError {
	if stdErr, ok := errors.AsStandard(err); ok {
		return stdErr
	}
	if stderrors.Is(err, ErrEmptyQuery) {
		return errors.NewInvalidInputError("query is required")
	}
	return errors.NewInternalError(err)
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
