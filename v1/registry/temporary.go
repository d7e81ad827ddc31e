package registry

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// Remover is optionally implemented by a Transport that can tear down a
// schema version it created. InMemoryTransport implements it; HTTPTransport
// does not, since Glue's DeleteSchemaVersion RPC is out of scope here (see
// the Non-goals list).
type Remover interface {
	DeleteSchemaVersion(ctx context.Context, registryName string, svid SVID) error
}

// TemporaryRegistryTransport wraps a Transport under a uniquely suffixed
// registry name, recording every schema version it creates or registers so
// Close can tear them down. This mirrors the disposable-registry role of a
// "create on enter, destroy on exit" test harness: construct one per test or
// experiment and always defer Close.
//
// Auto-removal is best-effort: if the wrapped Transport does not implement
// Remover, Close logs what it would have removed and returns nil.
type TemporaryRegistryTransport struct {
	inner        Transport
	RegistryName string
	autoremove   bool

	mu      sync.Mutex
	created []SVID
}

// NewTemporaryRegistryTransport wraps inner under a registry name derived
// from namePrefix, a timestamp, and a random suffix, to avoid colliding with
// other concurrently running tests against the same backend.
func NewTemporaryRegistryTransport(inner Transport, namePrefix string) *TemporaryRegistryTransport {
	if namePrefix == "" {
		namePrefix = "temporary-registry"
	}
	suffix := uuid.New().String()[:8]
	return &TemporaryRegistryTransport{
		inner:        inner,
		RegistryName: namePrefix + "-" + time.Now().UTC().Format("060102-150405") + "-" + suffix,
		autoremove:   true,
	}
}

// WithAutoremove controls whether Close tears down the schema versions this
// transport created. Defaults to true.
func (t *TemporaryRegistryTransport) WithAutoremove(autoremove bool) *TemporaryRegistryTransport {
	t.autoremove = autoremove
	return t
}

func (t *TemporaryRegistryTransport) GetSchemaVersionByDefinition(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	return t.inner.GetSchemaVersionByDefinition(ctx, registryName, s)
}

func (t *TemporaryRegistryTransport) GetSchemaVersionByID(ctx context.Context, registryName string, svid SVID) (*SchemaVersion, error) {
	return t.inner.GetSchemaVersionByID(ctx, registryName, svid)
}

func (t *TemporaryRegistryTransport) CreateSchema(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	sv, err := t.inner.CreateSchema(ctx, registryName, s)
	if err == nil {
		t.track(sv.SVID)
	}
	return sv, err
}

func (t *TemporaryRegistryTransport) RegisterSchemaVersion(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	sv, err := t.inner.RegisterSchemaVersion(ctx, registryName, s)
	if err == nil {
		t.track(sv.SVID)
	}
	return sv, err
}

func (t *TemporaryRegistryTransport) PutSchemaVersionMetadata(ctx context.Context, registryName string, svid SVID, metadata map[string]string) error {
	return t.inner.PutSchemaVersionMetadata(ctx, registryName, svid, metadata)
}

func (t *TemporaryRegistryTransport) track(svid SVID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.created = append(t.created, svid)
}

// Close tears down every schema version this transport created, in reverse
// creation order, if autoremove is enabled and the wrapped Transport
// implements Remover. Errors removing individual versions are logged and
// otherwise ignored, matching the original's "best-effort teardown" stance.
func (t *TemporaryRegistryTransport) Close(ctx context.Context) error {
	t.mu.Lock()
	created := append([]SVID(nil), t.created...)
	t.mu.Unlock()

	if !t.autoremove || len(created) == 0 {
		return nil
	}

	remover, ok := t.inner.(Remover)
	if !ok {
		log.Printf("registry: %s not auto-removed: transport does not support DeleteSchemaVersion", t.RegistryName)
		return nil
	}

	for i := len(created) - 1; i >= 0; i-- {
		if err := remover.DeleteSchemaVersion(ctx, t.RegistryName, created[i]); err != nil {
			log.Printf("registry: failed to remove schema version %s from %s: %v", created[i], t.RegistryName, err)
		}
	}
	return nil
}
