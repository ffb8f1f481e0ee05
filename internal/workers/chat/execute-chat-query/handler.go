package executechatquery

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/metrics"
	"obcms-chat-workers/internal/common/resilience"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "execute-chat-query"
)

var (
	ErrEmptyQuery = stderrors.New("EMPTY_QUERY")
)

// Runner executes generated query strings.
type Runner interface {
	Execute(ctx context.Context, query string) executor.Result
}

type Handler struct {
	config     *Config
	runner     Runner
	limiter    *resilience.Limiter
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, runner Runner, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	h := &Handler{
		config:     config,
		runner:     runner,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
	if config.RateLimitPerSec > 0 {
		h.limiter = resilience.NewLimiter(config.RateLimitPerSec, config.RateBurst, config.RateWait)
	}
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	done := metrics.TrackJob(TaskType)

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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.GeneratedQuery)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	res := h.runner.Execute(ctx, query)
	if !res.Success {
		h.logger.Warn("chat query not executed", map[string]interface{}{
			"templateId": input.TemplateID,
			"errorCode":  res.ErrorCode,
			"error":      res.Error,
		})
		if res.Err != nil {
			return nil, res.Err
		}
		return nil, stderrors.New(res.Error)
	}

	h.logger.Info("chat query executed", map[string]interface{}{
		"templateId": input.TemplateID,
		"model":      res.Info.Model,
		"rows":       res.Info.RowCount,
		"cached":     res.Info.Cached,
		"durationMs": res.Info.DurationMs,
	})
	return &Output{
		Success:    true,
		Result:     res.Result,
		QueryInfo:  res.Info,
		TemplateID: input.TemplateID,
	}, nil
}

func (h *Handler) standardize(err error) *errors.StandardError {
	if stdErr, ok := errors.AsStandard(err); ok {
		return stdErr
	}
	switch {
	case stderrors.Is(err, ErrEmptyQuery):
		return errors.NewInvalidInputError("generatedQuery is required")
	case stderrors.Is(err, resilience.ErrRateLimited):
		return errors.NewRateLimitedError(TaskType)
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
