package chain

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
)

// DropContext adapts an entirely context-free service so it can sit at the
// inner end of a context-carrying chain: the incoming stack is discarded
// and only the body is delegated. Used to reuse legacy or context-agnostic
// handlers; the stack's content can never influence the inner service.
type DropContext[B any, Resp any, C any] struct {
	inner Service[B, Resp]
}

// NewDropContext wraps a context-free service.
func NewDropContext[B any, Resp any, C any](inner Service[B, Resp]) *DropContext[B, Resp, C] {
	return &DropContext[B, Resp, C]{inner: inner}
}

// Call implements Service.
func (d *DropContext[B, Resp, C]) Call(ctx context.Context, p ctxstack.Payload[B, C]) (Resp, error) {
	return d.inner.Call(ctx, p.Body)
}
