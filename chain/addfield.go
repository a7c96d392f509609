package chain

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
)

// Enricher produces the value for one context field, typically after a
// side-effecting lookup such as credential verification. It sees the
// request body and the context accumulated so far, both read-only.
type Enricher[B any, C any, T any] func(ctx context.Context, body B, current C) (T, error)

// AddField adapts a service expecting a stack extended with one field of
// type T into a service accepting the narrower stack. The enricher runs per
// request; on failure the wrapper short-circuits with an EnrichmentError
// and the inner service is never invoked, so the inner service can rely on
// the field always being genuine.
type AddField[T any, B any, Resp any, C any] struct {
	inner  Service[ctxstack.Payload[B, ctxstack.Cons[T, C]], Resp]
	enrich Enricher[B, C, T]
	field  string
}

// NewAddField wraps inner behind an enrichment step. The field label only
// appears in error reporting. Resp usually needs naming at the call site;
// T, B and C are inferred from the enricher.
func NewAddField[Resp any, T any, B any, C any](
	inner Service[ctxstack.Payload[B, ctxstack.Cons[T, C]], Resp],
	enrich Enricher[B, C, T],
	field string,
) *AddField[T, B, Resp, C] {
	return &AddField[T, B, Resp, C]{inner: inner, enrich: enrich, field: field}
}

// Call implements Service.
func (a *AddField[T, B, Resp, C]) Call(ctx context.Context, p ctxstack.Payload[B, C]) (Resp, error) {
	value, err := a.enrich(ctx, p.Body, p.Context)
	if err != nil {
		var zero Resp
		return zero, &EnrichmentError{Field: a.field, Cause: err}
	}

	extended := ctxstack.NewPayload(p.Body, ctxstack.Push(p.Context, value))

	return a.inner.Call(ctx, extended)
}
