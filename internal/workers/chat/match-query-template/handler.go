package matchquerytemplate

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"obcms-chat-workers/internal/chat/catalogindex"
	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/common/errors"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/metrics"
	"obcms-chat-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-query-template"
)

var schema = validation.MustCompile(inputSchema)

// HintSearcher looks up catalog entries close to an unmatched question.
type HintSearcher interface {
	Search(ctx context.Context, text string, size int) ([]catalogindex.Hit, error)
}

type Handler struct {
	config     *Config
	matcher    *matcher.Matcher
	hints      HintSearcher
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

// NewHandler builds the handler. hints may be nil.
func NewHandler(config *Config, m *matcher.Matcher, hints HintSearcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		matcher:    m,
		hints:      hints,
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
		stdErr, ok := errors.AsStandard(err)
		if !ok {
			stdErr = errors.NewInternalError(err)
		}
		done(string(stdErr.Code))
		h.errHandler.HandleJobError(context.Background(), client, job, stdErr)
		return
	}

	done("")
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidInputError("query is required")
	}
	ents := input.Entities
	if ents == nil {
		ents = entity.Set{}
	}

	gen := h.matcher.MatchAndGenerate(ctx, input.Query, ents, input.Intent, input.Category)
	if !gen.Success {
		switch {
		case len(gen.MissingEntities) > 0:
			return nil, errors.NewMissingRequiredEntitiesError(gen.TemplateID, gen.MissingEntities)
		case gen.Template == nil && strings.HasPrefix(gen.Error, "Internal error"):
			return nil, errors.NewInternalError(stderrors.New(gen.Error))
		default:
			stdErr := errors.NewNoMatchingTemplateError(input.Query)
			if hints := h.lookupHints(ctx, input.Query); len(hints) > 0 {
				stdErr = stdErr.WithMetadata("hints", hints)
			}
			return nil, stdErr
		}
	}

	h.logger.Info("template matched", map[string]interface{}{
		"templateId": gen.TemplateID,
		"score":      gen.Score,
	})
	return &Output{
		TemplateID:      gen.TemplateID,
		Category:        gen.Category,
		ResultType:      string(gen.ResultType),
		GeneratedQuery:  gen.Query,
		Score:           gen.Score,
		Entities:        gen.Entities,
		MissingEntities: gen.MissingEntities,
	}, nil
}

// lookupHints never fails the job; a broken index only loses the hints.
func (h *Handler) lookupHints(ctx context.Context, query string) []catalogindex.Hit {
	if h.hints == nil || h.config.HintCount <= 0 {
		return nil
	}
	hits, err := h.hints.Search(ctx, query, h.config.HintCount)
	if err != nil {
		h.logger.Warn("catalog hint search failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return hits
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

// ValidateInput checks raw job variables against the input schema.
func ValidateInput(variables string) *validation.ValidationResult {
	return schema.ValidateJSON(variables)
}
