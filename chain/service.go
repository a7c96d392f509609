// Package chain composes request-handling services by transforming the
// typed context stack that travels with each request.
//
// Every stage implements the same Service shape, so stages compose freely:
// an entry wrapper materializes a fresh context stack (AddContext), inner
// wrappers enrich it one field at a time (AddField) or strip it before a
// context-free handler (DropContext), and Bind fixes a static context onto
// a handler once for background work. Factory variants apply the same
// transformations to per-connection service factories.
//
// Wrappers hold only read-mostly configuration; all per-request state lives
// in the ctxstack.Payload they pass forward, which each request exclusively
// owns. Wrappers never swallow inner-service errors and never invoke the
// inner service when their own enrichment precondition fails.
package chain

import "context"

// Service is the uniform request-to-response transformation every wrapper
// and handler implements. Req is either a bare body or a
// ctxstack.Payload pairing a body with its context stack.
//
// Call must honor ctx cancellation while awaiting external operations and
// must be safe for concurrent use: any state beyond the request itself must
// tolerate concurrent readers.
type Service[Req any, Resp any] interface {
	Call(ctx context.Context, req Req) (Resp, error)
}

// Func adapts a plain function to the Service interface.
type Func[Req any, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Call implements Service.
func (f Func[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

// Factory produces a fresh service instance per connection or per request.
// Wrapping a factory, rather than a single service, applies a context
// transformation uniformly to every instance the factory will ever produce.
type Factory[Req any, Resp any] interface {
	New(ctx context.Context) (Service[Req, Resp], error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc[Req any, Resp any] func(ctx context.Context) (Service[Req, Resp], error)

// New implements Factory.
func (f FactoryFunc[Req, Resp]) New(ctx context.Context) (Service[Req, Resp], error) {
	return f(ctx)
}
