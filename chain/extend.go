package chain

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
)

// Push joins a parent context and one field value into a larger context.
// Generated shapes provide one per added field (their With functions);
// ctxstack.Push is the generic-stack equivalent.
type Push[C any, T any, D any] func(parent C, value T) D

// Extend is AddField generalized over the shape of the extended context.
// Instead of consing onto a generic stack it applies a caller-supplied push
// function, so a chain can grow generated shapes (Ambient → Authed) with
// the same failure semantics: on enrichment error the wrapper
// short-circuits with an EnrichmentError and never invokes inner.
type Extend[T any, B any, Resp any, C any, D any] struct {
	inner  Service[ctxstack.Payload[B, D], Resp]
	enrich Enricher[B, C, T]
	push   Push[C, T, D]
	field  string
}

// NewExtend wraps inner behind an enrichment step joined by push. The field
// label only appears in error reporting. Resp usually needs naming at the
// call site; the rest is inferred from the enricher and push arguments.
func NewExtend[Resp any, T any, B any, C any, D any](
	inner Service[ctxstack.Payload[B, D], Resp],
	enrich Enricher[B, C, T],
	push Push[C, T, D],
	field string,
) *Extend[T, B, Resp, C, D] {
	return &Extend[T, B, Resp, C, D]{inner: inner, enrich: enrich, push: push, field: field}
}

// Call implements Service.
func (e *Extend[T, B, Resp, C, D]) Call(ctx context.Context, p ctxstack.Payload[B, C]) (Resp, error) {
	value, err := e.enrich(ctx, p.Body, p.Context)
	if err != nil {
		var zero Resp
		return zero, &EnrichmentError{Field: e.field, Cause: err}
	}

	return e.inner.Call(ctx, ctxstack.NewPayload(p.Body, e.push(p.Context, value)))
}

// NewExtendFactory applies Extend to every service the inner factory
// produces.
func NewExtendFactory[Resp any, T any, B any, C any, D any](
	inner Factory[ctxstack.Payload[B, D], Resp],
	enrich Enricher[B, C, T],
	push Push[C, T, D],
	field string,
) Factory[ctxstack.Payload[B, C], Resp] {
	return FactoryFunc[ctxstack.Payload[B, C], Resp](
		func(ctx context.Context) (Service[ctxstack.Payload[B, C], Resp], error) {
			svc, err := inner.New(ctx)
			if err != nil {
				return nil, err
			}

			return NewExtend(svc, enrich, push, field), nil
		})
}
