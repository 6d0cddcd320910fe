// Package resource implements the Resource Model (spec.md §2 L3): the
// typed in-memory form that supports round-trip JSON and underpins
// version computation.
package resource

import (
	"github.com/xraph/scimcore/pkg/scim/schema"
	"github.com/xraph/scimcore/pkg/scim/validation"
	"github.com/xraph/scimcore/pkg/scim/values"
)

// reservedKeys are document keys the Resource model carries on dedicated
// fields rather than in Attributes.
var reservedKeys = map[string]bool{
	"schemas":    true,
	"id":         true,
	"externalId": true,
	"meta":       true,
}

// Resource is the typed in-memory form of a SCIM resource (spec.md §4.3).
// Attributes holds every declared attribute other than schemas/id/
// externalId/meta, keyed by top-level attribute name, still in the
// dynamic JSON-ish shape the validator operates on — the point of the
// Resource Model is round-trip fidelity and version computation, not a
// fully statically typed User/Group surface (arbitrary custom schemas
// must flow through it too).
type Resource struct {
	ResourceType string
	ID           *values.ResourceID
	ExternalID   *values.ExternalID
	Schemas      []values.SchemaURI
	Attributes   map[string]any
	Meta         *values.Meta
}

// FromJSON constructs a Resource from doc, validating it first. It infers
// the OperationContext from the presence of "id" in doc (spec.md §4.3: "no
// id present" means Create). On validation failure it returns the
// violations and a nil Resource; a non-nil error indicates a more
// fundamental failure (a resource_type with no primary schema mapping).
// Unknown schema URIs in doc are reported as violations, not as an error.
func FromJSON(reg *schema.Registry, resourceType string, doc validation.Document) (*Resource, validation.Errors, error) {
	opCtx := validation.Update
	if _, present := doc["id"]; !present {
		opCtx = validation.Create
	}

	violations, err := validation.Validate(reg, resourceType, doc, opCtx)
	if err != nil {
		return nil, nil, err
	}
	if violations.HasErrors() {
		return nil, violations, nil
	}

	return fromValidatedDocument(resourceType, doc), nil, nil
}

func fromValidatedDocument(resourceType string, doc validation.Document) *Resource {
	r := &Resource{
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
	if idStr, ok := doc["id"].(string); ok {
		id := values.ResourceID(idStr)
		r.ID = &id
	}
	if extIDStr, ok := doc["externalId"].(string); ok {
		extID := values.ExternalID(extIDStr)
		r.ExternalID = &extID
	}

	for k, v := range doc {
		if reservedKeys[k] {
			continue
		}
		r.Attributes[k] = v
	}

	return r
}

// ToJSON walks the declared schemas' attributes in definition order,
// omitting attributes whose Returned is "never", and always includes
// schemas (spec.md §4.3). The result is a map, so it carries no attribute
// order: encoding/json renders its keys sorted, not in definition order.
func (r *Resource) ToJSON(reg *schema.Registry) (map[string]any, error) {
	out := make(map[string]any)

	// []any is the shape encoding/json decodes arrays into, so FromStored
	// reads the schemas of a stored document back.
	schemaURIs := make([]any, len(r.Schemas))
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

	for _, uri := range r.Schemas {
		s, err := reg.SchemaByURI(string(uri))
		if err != nil {
			continue // an extension schema the registry doesn't know is not renderable
		}
		for _, attr := range s.Attributes {
			if attr.Returned == schema.ReturnedNever {
				continue
			}
			if v, present := r.Attributes[attr.Name]; present {
				out[attr.Name] = v
			}
		}
	}

	if r.Meta != nil {
		out["meta"] = metaToJSON(*r.Meta)
	}

	return out, nil
}

func metaToJSON(m values.Meta) map[string]any {
	out := map[string]any{
		"resourceType": m.ResourceType,
		"created":      m.Created.UTC().Format(timeLayout),
		"lastModified": m.LastModified.UTC().Format(timeLayout),
		"version":      m.Version.ToHTTPHeader(),
	}
	if m.Location != "" {
		out["location"] = m.Location
	}
	return out
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"
