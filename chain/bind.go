package chain

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
)

// Bound pairs a context-aware service with one fixed context stack,
// producing a context-free callable that always invokes the service with
// that stack. Use it for static or background contexts, such as scheduled
// jobs acting under a service identity, rather than per-request contexts.
//
// The bound stack is an immutable value and may be shared by every call.
type Bound[B any, Resp any, C any] struct {
	api     Service[ctxstack.Payload[B, C], Resp]
	context C
}

// Bind fixes the given context onto the service.
func Bind[B any, Resp any, C any](api Service[ctxstack.Payload[B, C], Resp], context C) *Bound[B, Resp, C] {
	return &Bound[B, Resp, C]{api: api, context: context}
}

// Context returns the bound context stack.
func (b *Bound[B, Resp, C]) Context() C {
	return b.context
}

// Call implements Service.
func (b *Bound[B, Resp, C]) Call(ctx context.Context, body B) (Resp, error) {
	return b.api.Call(ctx, ctxstack.NewPayload(body, b.context))
}
