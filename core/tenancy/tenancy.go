// Package tenancy carries the multi-tenant request context threaded through
// every orchestrator and storage call: which tenant an operation belongs to,
// and the per-operation identity used for logging and idempotency.
package tenancy

import (
	"context"
	"time"

	"github.com/rs/xid"
)

// DefaultTenantID is used when a caller supplies no tenant.
const DefaultTenantID = "default"

// contextKey namespaces values stored on a context.Context.
type contextKey string

const (
	tenantContextKey  contextKey = "scim_tenant"
	requestContextKey contextKey = "scim_request"
)

// TenantContext identifies the isolation scope a resource operation runs
// under. Two tenants with the same logical resource id are independent
// resources with independent versions (spec.md §3, P6).
type TenantContext struct {
	// TenantID scopes every storage key. Empty is normalized to
	// DefaultTenantID by NewTenantContext.
	TenantID string

	// ClientID optionally identifies the calling client within the tenant.
	ClientID string
}

// NewTenantContext builds a TenantContext, defaulting an empty tenantID to
// DefaultTenantID.
func NewTenantContext(tenantID, clientID string) TenantContext {
	if tenantID == "" {
		tenantID = DefaultTenantID
	}
	return TenantContext{TenantID: tenantID, ClientID: clientID}
}

// RequestContext is created once per incoming operation and threaded
// unchanged to the storage call (spec.md §3).
type RequestContext struct {
	// OperationID uniquely identifies this operation, for logging and
	// idempotency. Format is unconstrained by the spec; this module uses
	// xid for a compact, sortable, timestamp-embedding identifier.
	OperationID string

	// Tenant scopes the operation. Nil tenant is treated as
	// DefaultTenantID by callers that read it via TenantID().
	Tenant *TenantContext

	// Timestamp is when the request context was created; the orchestrator
	// stamps Meta.Created/Meta.LastModified from this value.
	Timestamp time.Time
}

// NewRequestContext creates a RequestContext with a fresh operation id and
// the current time. A nil tenant defaults to DefaultTenantID when read via
// TenantID().
func NewRequestContext(tenant *TenantContext) RequestContext {
	return RequestContext{
		OperationID: xid.New().String(),
		Tenant:      tenant,
		Timestamp:   time.Now().UTC(),
	}
}

// TenantID returns the scoping tenant id, defaulting to DefaultTenantID when
// no tenant was supplied.
func (rc RequestContext) TenantID() string {
	if rc.Tenant == nil || rc.Tenant.TenantID == "" {
		return DefaultTenantID
	}
	return rc.Tenant.TenantID
}

// WithRequestContext attaches a RequestContext to ctx.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext retrieves the RequestContext previously attached with
// WithRequestContext.
func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(RequestContext)
	return rc, ok
}

// WithTenant attaches a TenantContext directly to ctx, independent of any
// RequestContext, for collaborators that only need tenant scoping.
func WithTenant(ctx context.Context, tc TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

// TenantFromContext retrieves a TenantContext attached with WithTenant.
func TenantFromContext(ctx context.Context) (TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey).(TenantContext)
	return tc, ok
}
