package schema

import (
	"embed"
)

//go:embed schemas/user.json schemas/group.json
var builtinSchemas embed.FS

// UserSchemaURI and GroupSchemaURI are the RFC 7643 core schema URIs this
// registry ships built in (spec.md §4.1: "the two built-ins are User and
// Group mapped to their RFC 7643 URIs").
const (
	UserSchemaURI  = "urn:ietf:params:scim:schemas:core:2.0:User"
	GroupSchemaURI = "urn:ietf:params:scim:schemas:core:2.0:Group"
)

// DefaultRegistry builds a Registry preloaded with the built-in User and
// Group schemas, plus any additional schema documents and options the
// caller supplies. It panics if a built-in document is missing from the
// embedded files; a built-in or extra document that fails to load is
// returned as an error.
func DefaultRegistry(extra []byte, opts ...Option) (*Registry, error) {
	r := NewRegistry(append([]Option{
		WithResourceTypeMapping("User", UserSchemaURI),
		WithResourceTypeMapping("Group", GroupSchemaURI),
	}, opts...)...)

	userDoc, err := builtinSchemas.ReadFile("schemas/user.json")
	if err != nil {
		panic("scim/schema: missing embedded user.json: " + err.Error())
	}
	groupDoc, err := builtinSchemas.ReadFile("schemas/group.json")
	if err != nil {
		panic("scim/schema: missing embedded group.json: " + err.Error())
	}

	if err := r.Load(userDoc, groupDoc); err != nil {
		return nil, err
	}

	if len(extra) > 0 {
		if err := r.Load(extra); err != nil {
			return nil, err
		}
	}

	return r, nil
}
