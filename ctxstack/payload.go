package ctxstack

// Payload pairs a transport body with its context stack so both travel
// together through a single-type-parameter service call.
//
// A payload is exclusively owned by one request's traversal through the
// wrapper chain: each wrapper consumes the payload it receives and produces
// a new one. Neither field is shared or aliased across concurrent requests.
type Payload[B any, C any] struct {
	// Body is the transport request or response body.
	Body B

	// Context is the typed context stack attached to the body.
	Context C
}

// NewPayload attaches a context stack to a body.
func NewPayload[B any, C any](body B, context C) Payload[B, C] {
	return Payload[B, C]{Body: body, Context: context}
}

// WithContext replaces the payload's context stack, keeping the body.
// The receiver is unchanged.
func WithContext[B any, C any, D any](p Payload[B, C], context D) Payload[B, D] {
	return Payload[B, D]{Body: p.Body, Context: context}
}
