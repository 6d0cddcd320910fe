package dispatcher_test

import (
	"context"
	"fmt"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/pkg/scim/dispatcher"
	"github.com/xraph/scimcore/pkg/scim/orchestrator"
	"github.com/xraph/scimcore/pkg/scim/schema"
	"github.com/xraph/scimcore/pkg/scim/storage/memstore"
)

// Example_createThenGet demonstrates the dispatcher as the single entry
// point a collaborator (HTTP layer, bulk processor, test harness) calls
// instead of reaching into the orchestrator directly.
func Example_createThenGet() {
	reg, err := schema.DefaultRegistry(nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	d := dispatcher.New(orchestrator.New(memstore.New(), reg), reg)
	ctx := context.Background()

	createResp := d.Dispatch(ctx, dispatcher.Request{
		Operation:    dispatcher.OpCreate,
		ResourceType: "User",
		Body: map[string]any{
			"schemas":  []any{"urn:ietf:params:scim:schemas:core:2.0:User"},
			"userName": "bjensen",
		},
		Ctx: tenancy.NewRequestContext(nil),
	})
	fmt.Println(createResp.Success)

	id, _ := createResp.Data["id"].(string)

	getResp := d.Dispatch(ctx, dispatcher.Request{
		Operation:    dispatcher.OpGet,
		ResourceType: "User",
		ID:           id,
		Ctx:          tenancy.NewRequestContext(nil),
	})
	fmt.Println(getResp.Success)
	fmt.Println(getResp.Data["userName"])

	// Output:
	// true
	// true
	// bjensen
}
