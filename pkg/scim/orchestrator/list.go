package orchestrator

import (
	"context"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/pkg/scim/resource"
	"github.com/xraph/scimcore/pkg/scim/values"
)

// List implements spec.md §4.6 list: a simple pass-through today;
// pagination and filtering are collaborator concerns.
func (o *Orchestrator) List(ctx context.Context, rc tenancy.RequestContext, resourceType string) ([]*resource.Resource, error) {
	entries, err := o.store.List(ctx, rc, resourceType)
	if err != nil {
		return nil, mapStorageError(err)
	}

	out := make([]*resource.Resource, 0, len(entries))
	for _, entry := range entries {
		r, err := resource.FromStored(resourceType, entry.Document)
		if err != nil {
			return nil, err
		}
		contentVersion, err := computeVersion(r)
		if err != nil {
			return nil, err
		}
		if r.Meta == nil {
			r.Meta = &values.Meta{ResourceType: resourceType, Location: resourceType + "/" + entry.ID.String()}
		}
		r.Meta.Version = contentVersion
		out = append(out, r)
	}
	return out, nil
}
