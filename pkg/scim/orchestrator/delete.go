package orchestrator

import (
	"context"

	"go.uber.org/zap"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/pkg/scim/resource"
	"github.com/xraph/scimcore/pkg/scim/values"
	"github.com/xraph/scimcore/pkg/scim/version"
)

// Delete implements spec.md §4.6 delete: symmetric to Replace — a version
// check (if expectedVersion is given) followed by storage.delete.
func (o *Orchestrator) Delete(ctx context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID, expectedVersion *version.Version) (version.ConditionalResult[struct{}], error) {
	current, found, err := o.store.Read(ctx, rc, resourceType, id)
	if err != nil {
		return version.ConditionalResult[struct{}]{}, mapStorageError(err)
	}
	if !found {
		return version.NotFound[struct{}](), nil
	}

	if expectedVersion != nil {
		previous, err := resource.FromStored(resourceType, current)
		if err != nil {
			return version.ConditionalResult[struct{}]{}, err
		}
		currentVersion, err := computeVersion(previous)
		if err != nil {
			return version.ConditionalResult[struct{}]{}, err
		}
		if !expectedVersion.Matches(currentVersion) {
			return version.Mismatch[struct{}](*expectedVersion, currentVersion), nil
		}
	}

	if err := o.store.Delete(ctx, rc, resourceType, id); err != nil {
		return version.ConditionalResult[struct{}]{}, mapStorageError(err)
	}

	o.logger.Info("scim.resource.deleted",
		zap.String("resource_type", resourceType),
		zap.String("id", id.String()),
		zap.String("operation_id", rc.OperationID),
	)

	return version.Success(struct{}{}), nil
}
