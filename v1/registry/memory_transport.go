package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// InMemoryTransport is a Transport backed by an in-process map, for unit
// tests and local experimentation. It implements the same create/register/
// lookup/metadata surface as a real registry, including support for
// simulating a schema version that stays PENDING for a configurable number
// of polls before resolving, which exercises Gateway's polling loop without
// a real backend.
//
// Mirrors the role of a disposable, auto-cleaned-up test registry: create
// one per test, never share between tests.
type InMemoryTransport struct {
	mu sync.Mutex

	// byName holds, for each schema name, its versions in registration
	// order. The last entry is the latest version.
	byName map[string][]*SchemaVersion
	byID   map[SVID]*SchemaVersion

	// pendingPolls counts down, per SVID, how many more GetSchemaVersionByID
	// calls must observe PENDING before the version flips to its
	// resolved status.
	pendingPolls map[SVID]int
	resolved     map[SVID]Status

	metadata map[SVID]map[string]string
}

// NewInMemoryTransport returns an empty InMemoryTransport.
func NewInMemoryTransport() *InMemoryTransport {
	return &InMemoryTransport{
		byName:       make(map[string][]*SchemaVersion),
		byID:         make(map[SVID]*SchemaVersion),
		pendingPolls: make(map[SVID]int),
		resolved:     make(map[SVID]Status),
		metadata:     make(map[SVID]map[string]string),
	}
}

// SimulatePending makes the schema version svid come back PENDING for the
// given number of subsequent GetSchemaVersionByID polls before resolving to
// resolvesTo (StatusAvailable or StatusFailure).
func (t *InMemoryTransport) SimulatePending(svid SVID, polls int, resolvesTo Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingPolls[svid] = polls
	t.resolved[svid] = resolvesTo
}

func (t *InMemoryTransport) GetSchemaVersionByDefinition(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, sv := range t.byName[s.Name()] {
		if schema.Equivalent(sv.Schema, s) {
			return sv, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, s.Name())
}

func (t *InMemoryTransport) GetSchemaVersionByID(ctx context.Context, registryName string, svid SVID) (*SchemaVersion, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sv, ok := t.byID[svid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, svid)
	}

	if remaining, pending := t.pendingPolls[svid]; pending && remaining > 0 {
		t.pendingPolls[svid] = remaining - 1
		copied := *sv
		copied.Status = StatusPending
		return &copied, nil
	}
	if resolved, ok := t.resolved[svid]; ok {
		sv.Status = resolved
	}

	return sv, nil
}

func (t *InMemoryTransport) CreateSchema(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.byName[s.Name()]) > 0 {
		return nil, fmt.Errorf("%w: schema %s already exists", ErrSchemaEvolution, s.Name())
	}
	return t.putLocked(s), nil
}

func (t *InMemoryTransport) RegisterSchemaVersion(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.byName[s.Name()]) == 0 {
		return nil, fmt.Errorf("%w: schema %s does not exist", ErrSchemaNotFound, s.Name())
	}
	return t.putLocked(s), nil
}

func (t *InMemoryTransport) PutSchemaVersionMetadata(ctx context.Context, registryName string, svid SVID, metadata map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[svid]; !ok {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, svid)
	}
	if t.metadata[svid] == nil {
		t.metadata[svid] = make(map[string]string)
	}
	for k, v := range metadata {
		t.metadata[svid][k] = v
	}
	return nil
}

// Metadata returns a copy of the metadata attached to svid, for test
// assertions.
func (t *InMemoryTransport) Metadata(svid SVID) map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]string, len(t.metadata[svid]))
	for k, v := range t.metadata[svid] {
		out[k] = v
	}
	return out
}

// DeleteSchemaVersion removes svid from the transport entirely, including
// its entry in byName. It implements Remover, used by
// TemporaryRegistryTransport to tear down everything it created.
func (t *InMemoryTransport) DeleteSchemaVersion(ctx context.Context, registryName string, svid SVID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sv, ok := t.byID[svid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, svid)
	}

	versions := t.byName[sv.Schema.Name()]
	for i, v := range versions {
		if v.SVID == svid {
			t.byName[sv.Schema.Name()] = append(versions[:i], versions[i+1:]...)
			break
		}
	}

	delete(t.byID, svid)
	delete(t.pendingPolls, svid)
	delete(t.resolved, svid)
	delete(t.metadata, svid)
	return nil
}

func (t *InMemoryTransport) putLocked(s schema.Schema) *SchemaVersion {
	sv := &SchemaVersion{SVID: uuid.New(), Status: StatusAvailable, Schema: s}
	t.byName[s.Name()] = append(t.byName[s.Name()], sv)
	t.byID[sv.SVID] = sv
	return sv
}
