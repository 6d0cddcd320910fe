package tenancy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/scimcore/core/tenancy"
)

func TestNewTenantContext_DefaultsEmptyTenant(t *testing.T) {
	tc := tenancy.NewTenantContext("", "")
	assert.Equal(t, tenancy.DefaultTenantID, tc.TenantID)
}

func TestRequestContext_TenantID(t *testing.T) {
	t.Run("nil tenant defaults", func(t *testing.T) {
		rc := tenancy.NewRequestContext(nil)
		assert.Equal(t, tenancy.DefaultTenantID, rc.TenantID())
	})

	t.Run("explicit tenant", func(t *testing.T) {
		tc := tenancy.NewTenantContext("acme", "")
		rc := tenancy.NewRequestContext(&tc)
		assert.Equal(t, "acme", rc.TenantID())
	})
}

func TestNewRequestContext_UniqueOperationIDs(t *testing.T) {
	a := tenancy.NewRequestContext(nil)
	b := tenancy.NewRequestContext(nil)
	assert.NotEqual(t, a.OperationID, b.OperationID)
}

func TestContextRoundTrip(t *testing.T) {
	rc := tenancy.NewRequestContext(nil)
	ctx := tenancy.WithRequestContext(context.Background(), rc)

	got, ok := tenancy.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, rc.OperationID, got.OperationID)

	_, ok = tenancy.FromContext(context.Background())
	assert.False(t, ok)
}

func TestRequireRequestContext(t *testing.T) {
	_, err := tenancy.RequireRequestContext(context.Background())
	assert.ErrorIs(t, err, tenancy.ErrRequestContextRequired)

	rc := tenancy.NewRequestContext(nil)
	ctx := tenancy.WithRequestContext(context.Background(), rc)
	got, err := tenancy.RequireRequestContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, rc.OperationID, got.OperationID)
}
