package dto

import "github.com/jsamuelsen/go-api-runtime/internal/domain"

// EchoRequest is the HTTP request body for the echo endpoints.
type EchoRequest struct {
	// Message is the text to echo back.
	Message string `json:"message" validate:"required,notempty"`
}

// ToDomain converts the request to the domain representation.
func (r *EchoRequest) ToDomain() domain.EchoRequest {
	return domain.EchoRequest{
		Message: r.Message,
	}
}

// EchoResponse is the HTTP response for the echo endpoints. Besides the
// echoed message it surfaces what the typed context carried: the verified
// caller and the request ID the chain materialized.
type EchoResponse struct {
	Message   string   `json:"message"`
	Subject   string   `json:"subject,omitempty"`
	Scopes    []string `json:"scopes,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

// ToEchoResponse converts a domain reply to an HTTP response.
func ToEchoResponse(r *domain.EchoReply) *EchoResponse {
	return &EchoResponse{
		Message:   r.Message,
		Subject:   r.Subject,
		Scopes:    r.Scopes,
		RequestID: r.RequestID,
	}
}
