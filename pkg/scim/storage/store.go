// Package storage defines the Storage Port (spec.md §2 L5): the minimal,
// backend-agnostic contract the Resource Orchestrator depends on. Backends
// are opaque key-value stores of JSON values keyed by (tenant, type, id)
// and perform no SCIM logic.
package storage

import (
	"context"
	"errors"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/pkg/scim/values"
	"github.com/xraph/scimcore/pkg/scim/version"
)

// Sentinel errors backends report; the orchestrator maps these to the
// SCIMError taxonomy (spec.md §4.5, §7). Backend implementations should
// return these directly (or wrap them so errors.Is still matches).
var (
	ErrNotFound      = errors.New("storage: not found")
	ErrAlreadyExists = errors.New("storage: already exists")
	ErrUnavailable   = errors.New("storage: unavailable")
	ErrCorruption    = errors.New("storage: corrupt data")
)

// Document is the JSON-shaped payload the store persists verbatim — the
// output of Resource.ToJSON, including meta (spec.md §6: "The orchestrator
// stores only the resource JSON ... including meta").
type Document = map[string]any

// Entry is one row returned by List.
type Entry struct {
	ID       values.ResourceID
	Document Document
}

// Store is the 5-operation contract every backend must fulfil (spec.md
// §4.5). Every operation is async (ctx-cancellable) and scoped by the
// RequestContext's tenant.
type Store interface {
	// Create inserts a new resource. Returns ErrAlreadyExists if id is
	// already occupied within (tenant, resourceType).
	Create(ctx context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID, doc Document) error

	// Read returns the stored document and true, or (nil, false, nil) on
	// miss.
	Read(ctx context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID) (Document, bool, error)

	// Update overwrites an existing resource. Returns ErrNotFound if id
	// does not exist.
	Update(ctx context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID, doc Document) error

	// Delete removes an existing resource. Returns ErrNotFound if id does
	// not exist.
	Delete(ctx context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID) error

	// List returns every resource of resourceType within the tenant.
	List(ctx context.Context, rc tenancy.RequestContext, resourceType string) ([]Entry, error)
}

// ConditionalUpdater is the optional optimization described in spec.md
// §4.5: a backend that can perform a version check and write atomically,
// avoiding the orchestrator's read-modify-write fallback race.
type ConditionalUpdater interface {
	ConditionalUpdate(ctx context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID, doc Document, expected version.Version) (version.ConditionalResult[Document], error)
}

// UniquenessChecker is an optional capability a backend may implement to
// enforce schema-declared uniqueness="server"/"global" attributes (spec.md
// §9 open question: "how is uniqueness=server/global enforced"). The
// orchestrator does not call IsUnique, whether or not a backend implements
// it: uniqueness of non-id attributes is not enforced by the core, and
// Create relies only on ErrAlreadyExists for the id itself.
type UniquenessChecker interface {
	// IsUnique reports whether value is not already present for
	// attributePath within (tenant, resourceType), excluding excludeID
	// (the resource being updated, if any).
	IsUnique(ctx context.Context, rc tenancy.RequestContext, resourceType, attributePath string, value any, excludeID values.ResourceID) (bool, error)
}
