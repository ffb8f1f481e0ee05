package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	// Matching
	ErrCodeNoMatchingTemplate      ErrorCode = "NO_MATCHING_TEMPLATE"
	ErrCodeMissingRequiredEntities ErrorCode = "MISSING_REQUIRED_ENTITIES"
	ErrCodeTemplateNotFound        ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateRegistration    ErrorCode = "TEMPLATE_REGISTRATION_FAILED"

	// Execution
	ErrCodeUnsafeQuery              ErrorCode = "UNSAFE_QUERY"
	ErrCodeQueryParseFailed         ErrorCode = "QUERY_PARSE_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeCircuitOpen              ErrorCode = "CIRCUIT_OPEN"
	ErrCodeRateLimited              ErrorCode = "RATE_LIMITED"

	// Catalog index
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns the same error with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewNoMatchingTemplateError(query string) *StandardError {
	return newError(ErrCodeNoMatchingTemplate, "No matching templates found", fmt.Sprintf("query: %q", query), false)
}

func NewMissingRequiredEntitiesError(templateID string, missing []string) *StandardError {
	return newError(ErrCodeMissingRequiredEntities,
		"Missing required entities: "+strings.Join(missing, ", "),
		fmt.Sprintf("templateId: %s", templateID), false).
		WithMetadata("missingEntities", missing)
}

func NewTemplateNotFoundError(templateID string) *StandardError {
	return newError(ErrCodeTemplateNotFound, "Template not found in registry", fmt.Sprintf("templateId: %s", templateID), false)
}

func NewTemplateRegistrationError(templateID string, err error) *StandardError {
	return newError(ErrCodeTemplateRegistration, "Template registration failed",
		fmt.Sprintf("templateId: %s, error: %s", templateID, err), false)
}

func NewUnsafeQueryError(reason string) *StandardError {
	return newError(ErrCodeUnsafeQuery, "Unsafe query: "+reason, reason, false)
}

func NewQueryParseFailedError(err error) *StandardError {
	return newError(ErrCodeQueryParseFailed, "Query could not be parsed", err.Error(), false)
}

func NewQueryExecutionFailedError(model string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("model: %s, error: %s", model, err), true)
}

func NewQueryTimeoutError(model string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("model: %s", model), true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewCircuitOpenError(name string) *StandardError {
	return newError(ErrCodeCircuitOpen, "Circuit breaker is open", fmt.Sprintf("breaker: %s", name), true)
}

func NewRateLimitedError(taskType string) *StandardError {
	return newError(ErrCodeRateLimited, "Rate limit exceeded", fmt.Sprintf("taskType: %s", taskType), true)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("index: %s, error: %s", index, err), true)
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternalError, "Unexpected error", err.Error(), false)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeNoMatchingTemplate:       "NO_MATCHING_TEMPLATE",
	ErrCodeMissingRequiredEntities:  "MISSING_REQUIRED_ENTITIES",
	ErrCodeTemplateNotFound:         "TEMPLATE_NOT_FOUND",
	ErrCodeTemplateRegistration:     "TEMPLATE_REGISTRATION_FAILED",
	ErrCodeUnsafeQuery:              "UNSAFE_QUERY",
	ErrCodeQueryParseFailed:         "QUERY_PARSE_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeCircuitOpen:              "CIRCUIT_OPEN",
	ErrCodeRateLimited:              "RATE_LIMITED",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeInvalidInput:             "INVALID_INPUT",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed:
		return 3
	case ErrCodeQueryTimeout,
		ErrCodeRateLimited:
		return 2
	case ErrCodeCircuitOpen:
		return 1
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// AsStandard unwraps err to the first *StandardError in its chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "TEMPLATE") || strings.Contains(codeStr, "ENTITIES"):
		return "MATCHING"
	case codeStr == string(ErrCodeUnsafeQuery):
		return "SECURITY"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "CIRCUIT") || strings.Contains(codeStr, "RATE"):
		return "RESILIENCE"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
