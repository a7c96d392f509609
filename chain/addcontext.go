package chain

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
)

// Materializer builds the initial context stack for an inbound request.
// It runs once per request at the chain entry, has no precondition and
// cannot fail; ambient metadata such as a request ID or logging handle is
// read from ctx, where the transport adapter placed it.
//
// Which fields count as ambient is the caller's choice: supply a
// materializer producing exactly the stack shape the inner chain declares.
type Materializer[B any, C any] func(ctx context.Context, body B) C

// AddContext is the entry wrapper: it accepts a context-free body,
// materializes a fresh context stack and passes a context-carrying payload
// to the inner service. Use it as the outermost layer of a chain.
type AddContext[B any, Resp any, C any] struct {
	inner       Service[ctxstack.Payload[B, C], Resp]
	materialize Materializer[B, C]
}

// NewAddContext wraps inner behind a context-free entry point. Resp usually
// needs naming at the call site; B and C are inferred from the materializer.
func NewAddContext[Resp any, B any, C any](
	inner Service[ctxstack.Payload[B, C], Resp],
	materialize Materializer[B, C],
) *AddContext[B, Resp, C] {
	return &AddContext[B, Resp, C]{inner: inner, materialize: materialize}
}

// Call implements Service.
func (a *AddContext[B, Resp, C]) Call(ctx context.Context, body B) (Resp, error) {
	stack := a.materialize(ctx, body)

	return a.inner.Call(ctx, ctxstack.NewPayload(body, stack))
}
