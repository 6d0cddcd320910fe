package orchestrator_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/pkg/scim/orchestrator"
	"github.com/xraph/scimcore/pkg/scim/schema"
	"github.com/xraph/scimcore/pkg/scim/storage/memstore"
	"github.com/xraph/scimcore/pkg/scim/validation"
	"github.com/xraph/scimcore/pkg/scim/version"
)

func newOrchestrator(t *testing.T) *orchestrator.Orchestrator {
	t.Helper()
	reg, err := schema.DefaultRegistry(nil)
	require.NoError(t, err)
	return orchestrator.New(memstore.New(), reg)
}

func decode(t *testing.T, raw string) validation.Document {
	t.Helper()
	var doc validation.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func requestContext() tenancy.RequestContext {
	return tenancy.NewRequestContext(nil)
}

func TestOrchestrator_CreateAndGet(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	doc := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`)

	created, err := o.Create(ctx, requestContext(), "User", doc)
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	require.NotNil(t, created.Meta)
	assert.False(t, created.Meta.Version.IsZero())

	fetched, err := o.Get(ctx, requestContext(), "User", *created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "alice", fetched.Attributes["userName"])
	assert.True(t, fetched.Meta.Version.Matches(created.Meta.Version), "P1: version is referentially stable for unchanged content")
}

func TestOrchestrator_Get_Miss(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	fetched, err := o.Get(ctx, requestContext(), "User", "00000000-0000-4000-8000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestOrchestrator_Create_RejectsClientSuppliedID(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	doc := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"client-supplied","userName":"alice"}`)

	_, err := o.Create(ctx, requestContext(), "User", doc)
	require.Error(t, err)
	assert.Equal(t, errs.CodeValidationFailed, errs.GetErrorCode(err))
}

func TestOrchestrator_Replace(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	doc := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`)

	created, err := o.Create(ctx, requestContext(), "User", doc)
	require.NoError(t, err)

	update := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice2"}`)
	update["id"] = created.ID.String()

	result, err := o.Replace(ctx, requestContext(), "User", *created.ID, update, nil)
	require.NoError(t, err)
	require.True(t, result.Ok())
	assert.Equal(t, "alice2", result.Value.Attributes["userName"])
	assert.Equal(t, created.Meta.Created, result.Value.Meta.Created, "created must be preserved across replace")
	assert.False(t, result.Value.Meta.Version.Matches(created.Meta.Version), "content changed, version must change")
}

func TestOrchestrator_Replace_VersionMismatch(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	doc := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`)

	created, err := o.Create(ctx, requestContext(), "User", doc)
	require.NoError(t, err)

	staleVersion := created.Meta.Version
	firstUpdate := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice2"}`)
	firstUpdate["id"] = created.ID.String()
	_, err = o.Replace(ctx, requestContext(), "User", *created.ID, firstUpdate, &staleVersion)
	require.NoError(t, err)

	secondUpdate := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice3"}`)
	secondUpdate["id"] = created.ID.String()
	result, err := o.Replace(ctx, requestContext(), "User", *created.ID, secondUpdate, &staleVersion)
	require.NoError(t, err)
	assert.False(t, result.Ok())
	require.NotNil(t, result.Conflict)
}

func TestOrchestrator_Replace_NotFound(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	update := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"id":"missing","userName":"alice"}`)

	result, err := o.Replace(ctx, requestContext(), "User", "missing", update, nil)
	require.NoError(t, err)
	assert.False(t, result.Ok())
}

func TestOrchestrator_Replace_ImmutableViolation(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	doc := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:Group"],"displayName":"Admins","members":[{"value":"u1"}]}`)

	created, err := o.Create(ctx, requestContext(), "Group", doc)
	require.NoError(t, err)

	update := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:Group"],"displayName":"Admins","members":[{"value":"u2"}]}`)
	update["id"] = created.ID.String()

	_, err = o.Replace(ctx, requestContext(), "Group", *created.ID, update, nil)
	require.Error(t, err)
	assert.Equal(t, errs.CodeValidationFailed, errs.GetErrorCode(err))
}

func TestOrchestrator_DeleteAndList(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	docA := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`)
	docB := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"bob"}`)
	createdA, err := o.Create(ctx, requestContext(), "User", docA)
	require.NoError(t, err)
	_, err = o.Create(ctx, requestContext(), "User", docB)
	require.NoError(t, err)

	list, err := o.List(ctx, requestContext(), "User")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	result, err := o.Delete(ctx, requestContext(), "User", *createdA.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.Ok())

	list, err = o.List(ctx, requestContext(), "User")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOrchestrator_Delete_NotFound(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	result, err := o.Delete(ctx, requestContext(), "User", "missing", nil)
	require.NoError(t, err)
	assert.False(t, result.Ok())
	assert.Equal(t, version.ResultNotFound, result.Kind)
}

// TestOrchestrator_Replace_ConcurrentOnlyOneWins exercises P4: of N
// concurrent replace calls racing against the same expected version,
// exactly one succeeds and the rest observe a version conflict.
func TestOrchestrator_Replace_ConcurrentOnlyOneWins(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	doc := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`)

	created, err := o.Create(ctx, requestContext(), "User", doc)
	require.NoError(t, err)
	expected := created.Meta.Version

	const writers = 8
	var successes atomic.Int32
	var conflicts atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < writers; i++ {
		i := i
		g.Go(func() error {
			update := decode(t, fmt.Sprintf(`{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"writer-%d"}`, i))
			update["id"] = created.ID.String()
			result, err := o.Replace(gctx, requestContext(), "User", *created.ID, update, &expected)
			if err != nil {
				return err
			}
			if result.Ok() {
				successes.Add(1)
			} else {
				conflicts.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 1, successes.Load(), "P4: exactly one concurrent writer observing the same expected version succeeds")
	assert.EqualValues(t, writers-1, conflicts.Load())
}

func TestOrchestrator_TenantIsolation(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()
	doc := decode(t, `{"schemas":["urn:ietf:params:scim:schemas:core:2.0:User"],"userName":"alice"}`)

	tenantA := tenancy.NewTenantContext("a", "")
	tenantB := tenancy.NewTenantContext("b", "")
	rcA := tenancy.NewRequestContext(&tenantA)
	rcB := tenancy.NewRequestContext(&tenantB)

	created, err := o.Create(ctx, rcA, "User", doc)
	require.NoError(t, err)

	fetched, err := o.Get(ctx, rcB, "User", *created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched, "P6: tenants with the same logical id are independent resources")
}
