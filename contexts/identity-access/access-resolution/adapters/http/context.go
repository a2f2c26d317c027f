package httpadapter

import (
	"context"

	"gatehouse/contexts/identity-access/access-resolution/domain/entities"
)

type authContextKey struct{}

// WithAuthorization attaches a resolved authorization context to the
// request context. The value is request-scoped and must not be reused.
func WithAuthorization(ctx context.Context, auth entities.AuthorizationContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, auth)
}

// AuthorizationFrom returns the authorization context attached by the
// middleware. Protected handlers must check ok before touching any data.
func AuthorizationFrom(ctx context.Context) (entities.AuthorizationContext, bool) {
	auth, ok := ctx.Value(authContextKey{}).(entities.AuthorizationContext)
	return auth, ok
}
