package chain

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
)

// The factory adapters below lift each wrapper from a single service to a
// service factory, so a transformation configured once is applied to every
// instance the factory produces rather than to one process-wide instance.

// NewAddContextFactory applies AddContext to every service the inner
// factory produces.
func NewAddContextFactory[Resp any, B any, C any](
	inner Factory[ctxstack.Payload[B, C], Resp],
	materialize Materializer[B, C],
) Factory[B, Resp] {
	return FactoryFunc[B, Resp](func(ctx context.Context) (Service[B, Resp], error) {
		svc, err := inner.New(ctx)
		if err != nil {
			return nil, err
		}

		return NewAddContext(svc, materialize), nil
	})
}

// NewAddFieldFactory applies AddField to every service the inner factory
// produces.
func NewAddFieldFactory[Resp any, T any, B any, C any](
	inner Factory[ctxstack.Payload[B, ctxstack.Cons[T, C]], Resp],
	enrich Enricher[B, C, T],
	field string,
) Factory[ctxstack.Payload[B, C], Resp] {
	return FactoryFunc[ctxstack.Payload[B, C], Resp](
		func(ctx context.Context) (Service[ctxstack.Payload[B, C], Resp], error) {
			svc, err := inner.New(ctx)
			if err != nil {
				return nil, err
			}

			return NewAddField(svc, enrich, field), nil
		})
}

// NewDropContextFactory applies DropContext to every service the inner
// factory produces.
func NewDropContextFactory[B any, Resp any, C any](
	inner Factory[B, Resp],
) Factory[ctxstack.Payload[B, C], Resp] {
	return FactoryFunc[ctxstack.Payload[B, C], Resp](
		func(ctx context.Context) (Service[ctxstack.Payload[B, C], Resp], error) {
			svc, err := inner.New(ctx)
			if err != nil {
				return nil, err
			}

			return NewDropContext[B, Resp, C](svc), nil
		})
}
