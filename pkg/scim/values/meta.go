package values

import (
	"time"

	"github.com/xraph/scimcore/pkg/scim/version"
)

// Meta is immutable from the client's perspective; the orchestrator is the
// sole writer (spec.md §3).
type Meta struct {
	ResourceType string
	Created      time.Time
	LastModified time.Time
	Location     string
	Version      version.Version
}
