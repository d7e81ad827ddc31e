package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// countingResolver counts how many times each method is actually invoked
// and blocks on a barrier so concurrent callers can be made to race on
// purpose before any one of them completes.
type countingResolver struct {
	byDefCalls int32
	byIDCalls  int32

	release chan struct{}

	sv *registry.SchemaVersion
}

func newCountingResolver(sv *registry.SchemaVersion) *countingResolver {
	return &countingResolver{release: make(chan struct{}), sv: sv}
}

func (r *countingResolver) GetByDefinition(ctx context.Context, s schema.Schema) (*registry.SchemaVersion, error) {
	atomic.AddInt32(&r.byDefCalls, 1)
	<-r.release
	return r.sv, nil
}

func (r *countingResolver) GetByID(ctx context.Context, svid registry.SVID) (*registry.SchemaVersion, error) {
	atomic.AddInt32(&r.byIDCalls, 1)
	<-r.release
	return r.sv, nil
}

func testSchema(t *testing.T) schema.Schema {
	t.Helper()
	s, err := schema.NewAvro("Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`, schema.CompatibilityBackward)
	require.NoError(t, err)
	return s
}

func TestGetOrRegisterCachesAfterFirstCall(t *testing.T) {
	s := testSchema(t)
	sv := &registry.SchemaVersion{SVID: mustSVID(t), Schema: s}
	resolver := newCountingResolver(sv)
	close(resolver.release)

	c := New(resolver, observability.NewNoOpObserver())

	svid1, err := c.GetOrRegister(context.Background(), s)
	require.NoError(t, err)

	svid2, err := c.GetOrRegister(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, svid1, svid2)
	assert.EqualValues(t, 1, resolver.byDefCalls)
	assert.Equal(t, 1, c.Len())
}

func TestGetOrRegisterCoalescesConcurrentMisses(t *testing.T) {
	s := testSchema(t)
	sv := &registry.SchemaVersion{SVID: mustSVID(t), Schema: s}
	resolver := newCountingResolver(sv)

	c := New(resolver, observability.NewNoOpObserver())

	const n = 20
	var wg sync.WaitGroup
	results := make([]registry.SVID, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrRegister(context.Background(), s)
		}(i)
	}

	close(resolver.release)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, sv.SVID, results[i])
	}

	assert.EqualValues(t, 1, resolver.byDefCalls, "concurrent misses for the same definition must coalesce into one remote call")
}

func TestGetByIDCoalescesConcurrentMisses(t *testing.T) {
	s := testSchema(t)
	svid := mustSVID(t)
	sv := &registry.SchemaVersion{SVID: svid, Schema: s}
	resolver := newCountingResolver(sv)

	c := New(resolver, observability.NewNoOpObserver())

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetByID(context.Background(), svid)
			assert.NoError(t, err)
		}()
	}

	close(resolver.release)
	wg.Wait()

	assert.EqualValues(t, 1, resolver.byIDCalls)
}

func TestGetByIDPopulatesReverseDefinitionMap(t *testing.T) {
	s := testSchema(t)
	svid := mustSVID(t)
	sv := &registry.SchemaVersion{SVID: svid, Schema: s}
	resolver := newCountingResolver(sv)
	close(resolver.release)

	c := New(resolver, observability.NewNoOpObserver())

	_, err := c.GetByID(context.Background(), svid)
	require.NoError(t, err)

	gotSVID, err := c.GetOrRegister(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, svid, gotSVID)
	assert.EqualValues(t, 0, resolver.byDefCalls, "GetByID should have already populated the definition side of the cache")
}

func mustSVID(t *testing.T) registry.SVID {
	t.Helper()
	return uuid.New()
}

// spyObserver records every OperationContext it receives, for assertions
// on how many times the cache actually reached its resolver.
type spyObserver struct {
	mu   sync.Mutex
	seen []observability.OperationContext
}

func (o *spyObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, ctx)
}

func (o *spyObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.seen)
}

func TestGetOrRegisterObservesOnlyTheCoalescedCall(t *testing.T) {
	s := testSchema(t)
	sv := &registry.SchemaVersion{SVID: mustSVID(t), Schema: s}
	resolver := newCountingResolver(sv)
	observer := &spyObserver{}

	c := New(resolver, observer)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.GetOrRegister(context.Background(), s)
		}()
	}

	close(resolver.release)
	wg.Wait()

	assert.Equal(t, 1, observer.count(), "only the single-flight winner should report an observation")

	// A later cache hit reaches neither the resolver nor the observer.
	_, err := c.GetOrRegister(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 1, observer.count())
}
