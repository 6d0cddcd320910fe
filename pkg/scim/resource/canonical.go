package resource

import (
	"encoding/json"

	"github.com/xraph/scimcore/internal/errs"
)

// CanonicalBytes returns a deterministic byte form used exclusively for
// version computation (spec.md §4.3, §4.6 step 4: "canonical_bytes
// without meta"). meta is excluded entirely, not merely its
// version/lastModified fields: the basis must be identical whether it is
// computed before Meta is composed (Create) or after (Get/List/Delete/
// Replace), or the version would not be referentially stable across
// those paths (P1). It relies on encoding/json's map-key sorting to make
// two semantically equivalent resources hash identically regardless of
// incidental field ordering.
func (r *Resource) CanonicalBytes() ([]byte, error) {
	out := make(map[string]any, len(r.Attributes)+3)

	schemaURIs := make([]string, len(r.Schemas))
	for i, s := range r.Schemas {
		schemaURIs[i] = string(s)
	}
	out["schemas"] = schemaURIs

	if r.ID != nil {
		out["id"] = r.ID.String()
	}
	if r.ExternalID != nil {
		out["externalId"] = r.ExternalID.String()
	}
	for k, v := range r.Attributes {
		out[k] = v
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, errs.InternalError(err)
	}
	return b, nil
}
