package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/go-api-runtime/internal/adapters/clients"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
)

// ErrorResponse is the error envelope a downstream may answer with. Peers
// built on this runtime nest the detail under "error"; others put code and
// message at the top level, so both shapes are accepted.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail is the nested form of the downstream error envelope.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// GetCode returns the error code, preferring the nested form.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the error message, preferring the nested form.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error envelope from a response body.
// A missing, malformed, or empty envelope yields nil; the status code
// alone must then carry the mapping.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetCode() == "" && errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapClientError translates client-level failures (no response received)
// to domain errors. Circuit breaker and retry exhaustion both surface as
// the downstream being unavailable.
func MapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// MapHTTPError maps a non-2xx downstream response to a domain error,
// using the parsed error envelope for context when the body carries one.
//
// A downstream 401 means the re-presented caller credentials were rejected
// there, so it maps back to an unauthenticated error rather than a generic
// upstream failure.
func MapHTTPError(resp *http.Response, serviceName, operation string) error {
	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	message := statusMessage(resp.StatusCode, operation)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.NewUnauthenticatedError("relayed", message)

	case http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusNotFound:
		return domain.NewNotFoundError(serviceName, operation)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		// Surface one field-level detail when the envelope carries any.
		if errResp != nil {
			for field, msg := range errResp.Error.Details {
				return domain.NewValidationError(field, msg)
			}
		}

		return domain.NewValidationError("", message)

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	default:
		if resp.StatusCode >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}

		return domain.NewValidationError("", message)
	}
}

// statusMessage is the fallback message when the downstream sent no usable
// envelope.
func statusMessage(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusUnauthorized:
		return "credentials rejected downstream"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}
