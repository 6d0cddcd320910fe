package resource

import (
	"time"

	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/pkg/scim/values"
	"github.com/xraph/scimcore/pkg/scim/version"
)

// FromStored rebuilds a Resource from a document the orchestrator already
// committed to storage. Unlike FromJSON, it does not re-run the validator:
// a previously stored document is assumed well-formed, and re-validating
// read paths would reject documents written under an older schema
// revision.
func FromStored(resourceType string, doc map[string]any) (*Resource, error) {
	r := fromValidatedDocument(resourceType, doc)

	if rawMeta, ok := doc["meta"].(map[string]any); ok {
		m, err := metaFromJSON(rawMeta)
		if err != nil {
			return nil, err
		}
		r.Meta = &m
	}

	return r, nil
}

func metaFromJSON(raw map[string]any) (values.Meta, error) {
	var m values.Meta

	if s, ok := raw["resourceType"].(string); ok {
		m.ResourceType = s
	}
	if s, ok := raw["location"].(string); ok {
		m.Location = s
	}
	if s, ok := raw["created"].(string); ok {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return m, errs.InternalError(err)
		}
		m.Created = t
	}
	if s, ok := raw["lastModified"].(string); ok {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return m, errs.InternalError(err)
		}
		m.LastModified = t
	}
	if s, ok := raw["version"].(string); ok && s != "" {
		v, err := version.ParseHTTPHeader(s)
		if err != nil {
			return m, err
		}
		m.Version = v
	}

	return m, nil
}
