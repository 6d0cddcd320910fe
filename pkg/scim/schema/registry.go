package schema

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/xraph/scimcore/internal/errs"
)

// Registry is the single source of truth for the Validator (spec.md §4.1).
// Loaded schemas are never mutated. Every lookup takes the read lock and
// Load takes the write lock, so reads on the hot path do synchronize.
type Registry struct {
	mu          sync.RWMutex
	loaded      bool
	byURI       map[string]*Schema
	primaryFor  map[string]string // resource_type -> schema URI
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithResourceTypeMapping registers an additional resource_type -> schema
// URI mapping beyond the two built-ins (User, Group).
func WithResourceTypeMapping(resourceType, schemaURI string) Option {
	return func(r *Registry) {
		r.primaryFor[resourceType] = schemaURI
	}
}

// NewRegistry constructs an empty Registry. Call Load to populate it.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byURI:      make(map[string]*Schema),
		primaryFor: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load parses each schema document, rejects duplicate ids, and builds the
// attribute-path index. Load may be called multiple times to add schemas
// incrementally (e.g. enterprise extensions). It holds the write lock, so
// it may run alongside lookups; a lookup sees a schema only once the Load
// that adds it has returned.
func (r *Registry) Load(docs ...json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range docs {
		var s Schema
		if err := json.Unmarshal(doc, &s); err != nil {
			return errs.SchemaLoadError("invalid schema JSON", err)
		}
		if err := s.Validate(); err != nil {
			return err
		}
		if _, exists := r.byURI[s.ID]; exists {
			return errs.DuplicateSchemaID(s.ID)
		}
		r.byURI[s.ID] = &s
	}

	r.loaded = true
	return nil
}

// SchemaByURI returns the schema registered under uri.
func (r *Registry) SchemaByURI(uri string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byURI[uri]
	if !ok {
		return nil, errs.UnknownSchemaURI(uri)
	}
	return s, nil
}

// Attribute resolves a dotted attribute path against a schema: "name",
// "name.sub", or an extension-qualified "urn:...:extension:attr" form
// (spec.md §4.1).
func (r *Registry) Attribute(schemaURI, dottedPath string) (*AttributeDefinition, error) {
	s, err := r.SchemaByURI(schemaURI)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(dottedPath, ".")
	attr, ok := s.Attribute(parts[0])
	if !ok {
		return nil, errs.SCIMInvalidPath(dottedPath)
	}

	for _, part := range parts[1:] {
		found := false
		for i := range attr.SubAttributes {
			if attr.SubAttributes[i].Name == part {
				attr = &attr.SubAttributes[i]
				found = true
				break
			}
		}
		if !found {
			return nil, errs.SCIMInvalidPath(dottedPath)
		}
	}

	return attr, nil
}

// PrimarySchemaFor returns the configured primary schema URI for a
// resource_type ("User", "Group", or any custom type registered via
// WithResourceTypeMapping).
func (r *Registry) PrimarySchemaFor(resourceType string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uri, ok := r.primaryFor[resourceType]
	if !ok {
		return "", errs.UnknownResourceType(resourceType)
	}
	return uri, nil
}

// Schemas returns every loaded schema, in no particular order. Used by
// discovery-document rendering (§4.8) and by the validator to check
// extension-schema membership.
func (r *Registry) Schemas() []*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Schema, 0, len(r.byURI))
	for _, s := range r.byURI {
		out = append(out, s)
	}
	return out
}
