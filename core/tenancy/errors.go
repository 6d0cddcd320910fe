package tenancy

import (
	"context"
	"errors"
)

// ErrRequestContextRequired is returned when a RequestContext is required on
// ctx but was never attached with WithRequestContext.
var ErrRequestContextRequired = errors.New("request context is required")

// RequireRequestContext retrieves the RequestContext attached to ctx or
// returns ErrRequestContextRequired.
func RequireRequestContext(ctx context.Context) (RequestContext, error) {
	rc, ok := FromContext(ctx)
	if !ok {
		return RequestContext{}, ErrRequestContextRequired
	}
	return rc, nil
}
