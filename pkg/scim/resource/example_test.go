package resource_test

import (
	"encoding/json"
	"fmt"

	"github.com/xraph/scimcore/pkg/scim/resource"
	"github.com/xraph/scimcore/pkg/scim/schema"
	"github.com/xraph/scimcore/pkg/scim/validation"
)

// Example_fromJSONAndToJSON demonstrates constructing a Resource from a
// create request and rendering it back, with the password attribute
// omitted since its schema declares returned=never.
func Example_fromJSONAndToJSON() {
	reg, err := schema.DefaultRegistry(nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	var doc validation.Document
	_ = json.Unmarshal([]byte(`{
		"schemas": ["urn:ietf:params:scim:schemas:core:2.0:User"],
		"userName": "bjensen",
		"password": "t1meMach1ne"
	}`), &doc)

	r, violations, err := resource.FromJSON(reg, "User", doc)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if violations.HasErrors() {
		fmt.Println("invalid:", violations)
		return
	}

	wire, err := r.ToJSON(reg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(wire["userName"])
	_, hasPassword := wire["password"]
	fmt.Println(hasPassword)

	// Output:
	// bjensen
	// false
}
