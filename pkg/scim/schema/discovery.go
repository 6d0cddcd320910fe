package schema

// The types below are the data shapes a collaborator needs to answer the
// SCIM discovery endpoints (ServiceProviderConfig, ResourceTypes, Schemas).
// Serving them over a transport is explicitly out of scope (spec.md §1);
// this package only produces the documents (spec.md §4.8 supplement).

// SupportedFeature is the generic {supported: bool} shape RFC 7643 uses
// repeatedly in ServiceProviderConfig.
type SupportedFeature struct {
	Supported bool `json:"supported"`
}

// BulkSupport describes bulk-operation limits. The bulk processor itself is
// out of scope; this module always reports it unsupported.
type BulkSupport struct {
	Supported      bool `json:"supported"`
	MaxOperations  int  `json:"maxOperations"`
	MaxPayloadSize int  `json:"maxPayloadSize"`
}

// FilterSupport describes filter-expression support. The filter parser is
// out of scope; this module always reports it unsupported.
type FilterSupport struct {
	Supported  bool `json:"supported"`
	MaxResults int  `json:"maxResults"`
}

// AuthenticationScheme documents one authentication mechanism a
// collaborator's transport layer supports. Authn is out of scope here; the
// core never populates this beyond the empty slice a collaborator fills in.
type AuthenticationScheme struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SpecURI     string `json:"specUri,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
}

// ServiceProviderConfig is the document shape for GET /ServiceProviderConfig.
type ServiceProviderConfig struct {
	Schemas               []string               `json:"schemas"`
	DocumentationURI      string                 `json:"documentationUri,omitempty"`
	Patch                 SupportedFeature       `json:"patch"`
	Bulk                  BulkSupport            `json:"bulk"`
	Filter                FilterSupport          `json:"filter"`
	ChangePassword        SupportedFeature       `json:"changePassword"`
	Sort                  SupportedFeature       `json:"sort"`
	ETag                  SupportedFeature       `json:"etag"`
	AuthenticationSchemes []AuthenticationScheme `json:"authenticationSchemes"`
}

// ResourceTypeDescriptor is the document shape for one entry of
// GET /ResourceTypes.
type ResourceTypeDescriptor struct {
	Schemas    []string          `json:"schemas"`
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Endpoint   string            `json:"endpoint"`
	SchemaURI  string            `json:"schema"`
	Extensions []SchemaExtension `json:"schemaExtensions,omitempty"`
}

// SchemaExtension associates an optional extension schema with a resource
// type (e.g. the Enterprise User extension).
type SchemaExtension struct {
	Schema   string `json:"schema"`
	Required bool   `json:"required"`
}

// DefaultServiceProviderConfig reports the feature set this core actually
// implements: no patch, bulk, or filter processor (all explicit Non-goals),
// weak ETags supported (the Versioning Engine, §4.4), no sort.
func DefaultServiceProviderConfig() ServiceProviderConfig {
	return ServiceProviderConfig{
		Schemas:               []string{"urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"},
		Patch:                 SupportedFeature{Supported: false},
		Bulk:                  BulkSupport{Supported: false},
		Filter:                FilterSupport{Supported: false},
		ChangePassword:        SupportedFeature{Supported: false},
		Sort:                  SupportedFeature{Supported: false},
		ETag:                  SupportedFeature{Supported: true},
		AuthenticationSchemes: []AuthenticationScheme{},
	}
}

// ResourceTypes renders a ResourceTypeDescriptor for every resource_type the
// registry has a primary-schema mapping for.
func (r *Registry) ResourceTypes() []ResourceTypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ResourceTypeDescriptor, 0, len(r.primaryFor))
	for resourceType, uri := range r.primaryFor {
		out = append(out, ResourceTypeDescriptor{
			Schemas:   []string{"urn:ietf:params:scim:schemas:core:2.0:ResourceType"},
			ID:        resourceType,
			Name:      resourceType,
			Endpoint:  "/" + resourceType + "s",
			SchemaURI: uri,
		})
	}
	return out
}

// Describe renders a Schema into the RFC 7643 wire document shape used by
// GET /Schemas and GET /Schemas/{id}. It is the identity transform over the
// already-loaded Schema, since the registry's in-memory model mirrors the
// wire shape.
func (s *Schema) Describe() Schema {
	return *s
}
