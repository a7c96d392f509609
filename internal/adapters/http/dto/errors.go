// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/go-api-runtime/chain"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
	"github.com/jsamuelsen/go-api-runtime/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
// It provides a consistent structure for API error handling.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details provides additional context about the error.
	// For validation errors, this contains field-level error messages.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the requested resource was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeUnauthorized indicates credentials are missing or invalid.
	ErrorCodeUnauthorized = "UNAUTHORIZED"

	// ErrorCodeForbidden indicates the operation is not permitted.
	ErrorCodeForbidden = "FORBIDDEN"

	// ErrorCodeUnavailable indicates a dependency is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetTraceID extracts the trace ID for error responses. The gin context key
// takes precedence, then the active OpenTelemetry span, then the inbound
// X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if id, exists := c.Get("trace_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}

		return ""
	}

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError maps an application error to an HTTP response and writes it.
// Credential failures (missing, unknown, or rejected credentials surfacing
// as context enrichment errors) map to 401; infrastructure details are
// never echoed back to the caller.
func HandleError(c *gin.Context, err error) {
	status, resp := mapError(err)

	if traceID := GetTraceID(c); traceID != "" {
		resp.TraceID = traceID
	}

	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// mapError translates domain and chain errors to a status code and envelope.
func mapError(err error) (int, *ErrorResponse) {
	switch {
	case chain.IsEnrichment(err) || domain.IsUnauthenticated(err):
		return http.StatusUnauthorized, NewErrorResponse(
			ErrorCodeUnauthorized,
			"authentication required",
		)

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(
			ErrorCodeNotFound,
			err.Error(),
		)

	case domain.IsValidation(err):
		resp := NewErrorResponse(
			ErrorCodeValidation,
			err.Error(),
		)

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(
			ErrorCodeForbidden,
			err.Error(),
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			"service temporarily unavailable",
		)

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}
