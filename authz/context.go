package authz

import "context"

// ctxKey is an unexported key type so no other package can collide with the
// values stored here.
type ctxKey int

const (
	ctxKeyAuthData ctxKey = iota
	ctxKeyAuthorization
)

// ContextWithAuthData stores a raw credential in the context. The transport
// adapter calls this after parsing request headers so that enrichment
// wrappers can reach the credential without depending on the transport.
func ContextWithAuthData(ctx context.Context, data AuthData) context.Context {
	return context.WithValue(ctx, ctxKeyAuthData, data)
}

// AuthDataFromContext extracts the raw credential stored by the transport
// adapter, if any.
func AuthDataFromContext(ctx context.Context) (AuthData, bool) {
	if ctx == nil {
		return nil, false
	}

	data, ok := ctx.Value(ctxKeyAuthData).(AuthData)

	return data, ok
}

// ContextWithAuthorization stores a verified identity in the context for
// code paths that run outside the typed context stack, such as transport
// middleware logging.
func ContextWithAuthorization(ctx context.Context, a Authorization) context.Context {
	return context.WithValue(ctx, ctxKeyAuthorization, a)
}

// AuthorizationFromContext extracts a verified identity stored with
// ContextWithAuthorization, if any.
func AuthorizationFromContext(ctx context.Context) (Authorization, bool) {
	if ctx == nil {
		return Authorization{}, false
	}

	a, ok := ctx.Value(ctxKeyAuthorization).(Authorization)

	return a, ok
}
