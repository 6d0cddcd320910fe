// Package orchestrator implements the Resource Orchestrator (spec.md §2
// L6): the SCIM semantic layer sitting between the Validator/Resource
// Model and the Storage Port. It is the only component that talks to
// both.
package orchestrator

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/pkg/scim/resource"
	"github.com/xraph/scimcore/pkg/scim/schema"
	"github.com/xraph/scimcore/pkg/scim/storage"
	"github.com/xraph/scimcore/pkg/scim/validation"
	"github.com/xraph/scimcore/pkg/scim/values"
	"github.com/xraph/scimcore/pkg/scim/version"
)

// Orchestrator is the SCIM semantic layer (spec.md §4.6).
type Orchestrator struct {
	store    storage.Store
	registry *schema.Registry
	logger   *zap.Logger
}

// Option configures an Orchestrator at construction.
type Option func(*Orchestrator)

// WithLogger attaches a structured logger. The default is zap.NewNop(), so
// callers that do not care about observability pay nothing for it.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New constructs an Orchestrator over store and registry.
func New(store storage.Store, registry *schema.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		registry: registry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Create validates doc with Create semantics, assigns a fresh ResourceID
// and Meta, and persists the composed resource (spec.md §4.6 create).
func (o *Orchestrator) Create(ctx context.Context, rc tenancy.RequestContext, resourceType string, doc validation.Document) (*resource.Resource, error) {
	violations, err := validation.Validate(o.registry, resourceType, doc, validation.Create)
	if err != nil {
		return nil, err
	}
	if violations.HasErrors() {
		return nil, violations.ToSCIMError()
	}

	r := buildResourceFromDoc(resourceType, doc)
	id := values.NewResourceID()
	r.ID = &id

	location := resourceType + "/" + id.String()
	contentVersion, err := computeVersion(r)
	if err != nil {
		return nil, err
	}
	r.Meta = &values.Meta{
		ResourceType: resourceType,
		Created:      rc.Timestamp,
		LastModified: rc.Timestamp,
		Location:     location,
		Version:      contentVersion,
	}

	wire, err := r.ToJSON(o.registry)
	if err != nil {
		return nil, err
	}

	if createErr := o.store.Create(ctx, rc, resourceType, id, wire); createErr != nil {
		if errors.Is(createErr, storage.ErrAlreadyExists) {
			o.logger.Info("scim.resource.conflict",
				zap.String("resource_type", resourceType),
				zap.String("id", id.String()),
				zap.String("operation_id", rc.OperationID),
			)
			return nil, errs.Conflict(resourceType, id.String())
		}
		return nil, mapStorageError(createErr)
	}

	o.logger.Info("scim.resource.created",
		zap.String("resource_type", resourceType),
		zap.String("id", id.String()),
		zap.String("tenant", rc.TenantID()),
		zap.String("operation_id", rc.OperationID),
	)

	return r, nil
}

// Get reads a resource by id and recomputes its version on the way out
// (spec.md §4.6 get: "storage is not required to persist the version").
// It returns (nil, nil) on miss.
func (o *Orchestrator) Get(ctx context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID) (*resource.Resource, error) {
	doc, found, err := o.store.Read(ctx, rc, resourceType, id)
	if err != nil {
		return nil, mapStorageError(err)
	}
	if !found {
		return nil, nil
	}

	r, err := resource.FromStored(resourceType, doc)
	if err != nil {
		return nil, err
	}

	contentVersion, err := computeVersion(r)
	if err != nil {
		return nil, err
	}
	if r.Meta == nil {
		r.Meta = &values.Meta{ResourceType: resourceType, Location: resourceType + "/" + id.String()}
	}
	r.Meta.Version = contentVersion

	return r, nil
}

func buildResourceFromDoc(resourceType string, doc validation.Document) *resource.Resource {
	r := &resource.Resource{
		ResourceType: resourceType,
		Attributes:   make(map[string]any, len(doc)),
	}
	if raw, ok := doc["schemas"].([]any); ok {
		r.Schemas = make([]values.SchemaURI, 0, len(raw))
		for _, s := range raw {
			if str, ok := s.(string); ok {
				r.Schemas = append(r.Schemas, values.SchemaURI(str))
			}
		}
	}
	if extIDStr, ok := doc["externalId"].(string); ok {
		extID := values.ExternalID(extIDStr)
		r.ExternalID = &extID
	}
	for k, v := range doc {
		switch k {
		case "schemas", "id", "externalId", "meta":
			continue
		}
		r.Attributes[k] = v
	}
	return r
}

// computeVersion derives Version::from_content(canonical_bytes without
// meta) (spec.md §4.6 step 4): CanonicalBytes already excludes meta
// entirely, so it is safe to call even when Meta is already populated.
func computeVersion(r *resource.Resource) (version.Version, error) {
	b, err := r.CanonicalBytes()
	if err != nil {
		return version.Version{}, err
	}
	return version.FromContent(b), nil
}

func mapStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return errs.NotFound("resource not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		return errs.AlreadyExists("", "")
	case errors.Is(err, storage.ErrCorruption):
		return errs.StorageCorruption(err)
	default:
		return errs.StorageUnavailable(err)
	}
}
