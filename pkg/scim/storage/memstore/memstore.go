// Package memstore is the reference in-memory Storage Port backend: a
// single map keyed by the composite (tenant, resourceType, id), guarded by
// a single mutex. It exists to exercise the orchestrator in tests and as a
// starting point for real backends, not for production use.
package memstore

import (
	"context"
	"sync"

	"github.com/xraph/scimcore/core/tenancy"
	"github.com/xraph/scimcore/pkg/scim/storage"
	"github.com/xraph/scimcore/pkg/scim/values"
	"github.com/xraph/scimcore/pkg/scim/version"
)

type key struct {
	tenant       string
	resourceType string
	id           string
}

// Store is a process-local Storage Port implementation. The zero value is
// not usable; construct with New.
type Store struct {
	mu      sync.Mutex
	records map[key]storage.Document
}

var (
	_ storage.Store              = (*Store)(nil)
	_ storage.ConditionalUpdater = (*Store)(nil)
)

// New returns an empty Store.
func New() *Store {
	return &Store{records: make(map[key]storage.Document)}
}

func keyFor(rc tenancy.RequestContext, resourceType string, id values.ResourceID) key {
	return key{tenant: rc.TenantID(), resourceType: resourceType, id: id.String()}
}

func (s *Store) Create(_ context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID, doc storage.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := keyFor(rc, resourceType, id)
	if _, exists := s.records[k]; exists {
		return storage.ErrAlreadyExists
	}
	s.records[k] = cloneDocument(doc)
	return nil
}

func (s *Store) Read(_ context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID) (storage.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.records[keyFor(rc, resourceType, id)]
	if !ok {
		return nil, false, nil
	}
	return cloneDocument(doc), true, nil
}

func (s *Store) Update(_ context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID, doc storage.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := keyFor(rc, resourceType, id)
	if _, exists := s.records[k]; !exists {
		return storage.ErrNotFound
	}
	s.records[k] = cloneDocument(doc)
	return nil
}

func (s *Store) Delete(_ context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := keyFor(rc, resourceType, id)
	if _, exists := s.records[k]; !exists {
		return storage.ErrNotFound
	}
	delete(s.records, k)
	return nil
}

func (s *Store) List(_ context.Context, rc tenancy.RequestContext, resourceType string) ([]storage.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []storage.Entry
	tenant := rc.TenantID()
	for k, doc := range s.records {
		if k.tenant != tenant || k.resourceType != resourceType {
			continue
		}
		out = append(out, storage.Entry{ID: values.ResourceID(k.id), Document: cloneDocument(doc)})
	}
	return out, nil
}

// ConditionalUpdate performs the version check and write atomically under
// the same lock Create/Update/Delete use, satisfying the optimistic-locking
// contract natively (spec.md §5) rather than leaving it to the
// orchestrator's read-modify-write fallback. The current version is read
// back from the previously stored doc's meta.version field, which the
// orchestrator always sets before calling into storage — the backend never
// recomputes content hashes itself.
func (s *Store) ConditionalUpdate(_ context.Context, rc tenancy.RequestContext, resourceType string, id values.ResourceID, doc storage.Document, expected version.Version) (version.ConditionalResult[storage.Document], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := keyFor(rc, resourceType, id)
	current, exists := s.records[k]
	if !exists {
		return version.NotFound[storage.Document](), nil
	}

	currentVersion, err := versionOf(current)
	if err != nil {
		return version.ConditionalResult[storage.Document]{}, err
	}

	if !expected.IsZero() && !expected.Matches(currentVersion) {
		return version.Mismatch[storage.Document](expected, currentVersion), nil
	}

	s.records[k] = cloneDocument(doc)
	return version.Success(cloneDocument(doc)), nil
}

func versionOf(doc storage.Document) (version.Version, error) {
	meta, ok := doc["meta"].(map[string]any)
	if !ok {
		return version.Version{}, nil
	}
	raw, ok := meta["version"].(string)
	if !ok || raw == "" {
		return version.Version{}, nil
	}
	return version.ParseHTTPHeader(raw)
}

func cloneDocument(doc storage.Document) storage.Document {
	out := make(storage.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
