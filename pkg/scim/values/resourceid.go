// Package values implements the Value Objects layer (spec.md §2 L0):
// validated primitives shared by every resource, independent of any
// particular schema.
package values

import (
	"strings"

	"github.com/google/uuid"

	"github.com/xraph/scimcore/internal/errs"
)

// ResourceID is a server-issued resource identifier. spec.md §4.6 step 3
// mandates UUIDv4, lowercase.
type ResourceID string

// NewResourceID generates a fresh, lowercase UUIDv4 ResourceID.
func NewResourceID() ResourceID {
	return ResourceID(strings.ToLower(uuid.New().String()))
}

// ParseResourceID validates that s is a syntactically valid UUID and
// returns it as a ResourceID, lowercased for canonical comparison.
func ParseResourceID(s string) (ResourceID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", errs.InvalidInput("id", "not a valid UUID")
	}
	return ResourceID(strings.ToLower(id.String())), nil
}

func (id ResourceID) String() string {
	return string(id)
}
