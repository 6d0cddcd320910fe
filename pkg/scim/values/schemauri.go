package values

import (
	"github.com/xraph/scimcore/internal/validator"

	"github.com/xraph/scimcore/internal/errs"
)

// SchemaURI identifies a schema document, e.g.
// "urn:ietf:params:scim:schemas:core:2.0:User".
type SchemaURI string

// NewSchemaURI validates s as a syntactically well-formed URI before
// wrapping it.
func NewSchemaURI(s string) (SchemaURI, error) {
	if !validator.ValidateURI(s) {
		return "", errs.InvalidInput("schemas", "not a syntactically valid URI: "+s)
	}
	return SchemaURI(s), nil
}

func (u SchemaURI) String() string {
	return string(u)
}
