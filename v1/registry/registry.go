// Package registry implements the gateway to the remote schema registry
// service: a thin RPC client (Transport) plus the polling and
// auto-registration logic that turns its raw operations into a single
// "get me an available schema version" call.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// Logger is the minimal logging surface the Gateway needs. *logger.Logger
// satisfies it.
type Logger interface {
	Warn(msg string, err error, fields ...map[string]interface{})
}

// SVID is a schema-version identifier, a 128-bit value compared byte-wise.
type SVID = uuid.UUID

// Status is the lifecycle state of a schema version on the remote side.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusPending   Status = "PENDING"
	StatusFailure   Status = "FAILURE"
	StatusDeleting  Status = "DELETING"
)

// SchemaVersion is one version of a named schema as known to the registry.
type SchemaVersion struct {
	SVID   SVID
	Status Status
	Schema schema.Schema
}

var (
	// ErrSchemaNotFound is returned when the registry has no schema
	// version matching the requested definition or SVID.
	ErrSchemaNotFound = errors.New("registry: schema not found")

	// ErrSchemaEvolution is returned when a new schema definition fails
	// the compatibility check against the latest registered version.
	ErrSchemaEvolution = errors.New("registry: schema evolution rejected")

	// ErrSchemaRegistrationFailed is returned when a schema version
	// transitions to the terminal FAILURE status.
	ErrSchemaRegistrationFailed = errors.New("registry: schema registration failed")

	// ErrTimeout is returned when polling for a PENDING schema version
	// exhausts its attempt budget before the version becomes AVAILABLE.
	ErrTimeout = errors.New("registry: timed out waiting for schema version")

	// ErrTransport is returned when the underlying Transport fails for
	// reasons unrelated to registry semantics (network, auth, etc).
	ErrTransport = errors.New("registry: transport error")
)

//go:generate mockgen -source=registry.go -destination=mock_transport.go -package=registry

// Transport is the raw RPC surface the Gateway drives. Implementations
// need not know about polling or auto-registration; they translate each
// call directly into one remote operation.
type Transport interface {
	// GetSchemaVersionByDefinition looks up a schema version by its
	// (format, name, definition) triple. Returns ErrSchemaNotFound if no
	// matching version is registered.
	GetSchemaVersionByDefinition(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error)

	// GetSchemaVersionByID looks up a schema version by SVID. Returns
	// ErrSchemaNotFound if svid is unknown.
	GetSchemaVersionByID(ctx context.Context, registryName string, svid SVID) (*SchemaVersion, error)

	// CreateSchema creates a brand-new named schema along with its first
	// version. Used when RegisterSchemaVersion reports the schema name
	// does not exist yet.
	CreateSchema(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error)

	// RegisterSchemaVersion registers a new version of an existing named
	// schema, subject to its compatibility mode.
	RegisterSchemaVersion(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error)

	// PutSchemaVersionMetadata attaches key/value metadata to an existing
	// schema version. Best-effort: callers treat failures as non-fatal.
	PutSchemaVersionMetadata(ctx context.Context, registryName string, svid SVID, metadata map[string]string) error
}

// NamingStrategy derives the registry-facing schema name for a Schema.
// The default strategy is s.Name() unchanged. The Gateway stores the
// strategy in its Config but does not call it; transports name schemas
// with s.Name().
type NamingStrategy func(s schema.Schema) string

// Config configures a Gateway.
type Config struct {
	// RegistryName is the remote registry to operate against. Required.
	RegistryName string

	// AutoRegister enables the register_schema_version -> create_schema
	// fallback chain when a schema is not found by definition. It is not
	// defaulted: the zero value false turns auto-registration off.
	AutoRegister bool

	// Metadata is attached to every newly registered schema version via
	// PutSchemaVersionMetadata, best-effort.
	Metadata map[string]string

	// JitterInterval is the delay between PENDING polling attempts.
	// Defaults to 100ms.
	JitterInterval time.Duration

	// MaxWaitAttempts bounds the number of polling attempts before
	// giving up with ErrTimeout. Defaults to 30.
	MaxWaitAttempts int

	// NamingStrategy derives the registry-facing name for a schema.
	// Defaults to schema.Schema.Name. It is stored but not applied by the
	// Gateway; see NamingStrategy.
	NamingStrategy NamingStrategy
}

func (c Config) withDefaults() Config {
	if c.JitterInterval == 0 {
		c.JitterInterval = 100 * time.Millisecond
	}
	if c.MaxWaitAttempts == 0 {
		c.MaxWaitAttempts = 30
	}
	if c.NamingStrategy == nil {
		c.NamingStrategy = func(s schema.Schema) string { return s.Name() }
	}
	return c
}

// Gateway is the schema registry gateway: it drives a Transport through
// polling and auto-registration so callers only ever see an AVAILABLE
// SchemaVersion or a terminal error.
type Gateway struct {
	cfg       Config
	transport Transport
	logger    Logger
	observer  observability.Observer
}

// New constructs a Gateway over transport, filling in the defaults for
// JitterInterval, MaxWaitAttempts and NamingStrategy. AutoRegister is taken
// as given, so auto-registration is off unless cfg sets it to true.
func New(cfg Config, transport Transport, log Logger, obs observability.Observer) *Gateway {
	cfg = cfg.withDefaults()
	return &Gateway{cfg: cfg, transport: transport, logger: log, observer: obs}
}

// GetByDefinition resolves s to an AVAILABLE SchemaVersion, registering it
// first if it does not yet exist and auto-registration is enabled.
func (g *Gateway) GetByDefinition(ctx context.Context, s schema.Schema) (*SchemaVersion, error) {
	start := time.Now()
	sv, err := g.transport.GetSchemaVersionByDefinition(ctx, g.cfg.RegistryName, s)
	if err == nil {
		sv, err = g.awaitAvailable(ctx, sv, func(ctx context.Context) (*SchemaVersion, error) {
			return g.transport.GetSchemaVersionByID(ctx, g.cfg.RegistryName, sv.SVID)
		})
		g.observe(ctx, "get_schema_version_by_definition", s.Name(), start, err)
		return sv, err
	}

	if !errors.Is(err, ErrSchemaNotFound) {
		g.observe(ctx, "get_schema_version_by_definition", s.Name(), start, err)
		return nil, err
	}

	if !g.cfg.AutoRegister {
		g.observe(ctx, "get_schema_version_by_definition", s.Name(), start, err)
		return nil, err
	}

	sv, err = g.registerOrCreate(ctx, s)
	g.observe(ctx, "register_schema_version", s.Name(), start, err)
	return sv, err
}

// GetByID resolves svid to an AVAILABLE SchemaVersion.
func (g *Gateway) GetByID(ctx context.Context, svid SVID) (*SchemaVersion, error) {
	start := time.Now()
	sv, err := g.transport.GetSchemaVersionByID(ctx, g.cfg.RegistryName, svid)
	if err != nil {
		g.observe(ctx, "get_schema_version_by_id", svid.String(), start, err)
		return nil, err
	}

	sv, err = g.awaitAvailable(ctx, sv, func(ctx context.Context) (*SchemaVersion, error) {
		return g.transport.GetSchemaVersionByID(ctx, g.cfg.RegistryName, svid)
	})
	g.observe(ctx, "get_schema_version_by_id", svid.String(), start, err)
	return sv, err
}

// registerOrCreate implements the auto-registration fallback chain:
// register_schema_version first (the schema name usually already exists),
// falling back to create_schema when the name itself is unknown.
func (g *Gateway) registerOrCreate(ctx context.Context, s schema.Schema) (*SchemaVersion, error) {
	sv, err := g.transport.RegisterSchemaVersion(ctx, g.cfg.RegistryName, s)
	if err != nil {
		if !errors.Is(err, ErrSchemaNotFound) {
			return nil, err
		}
		sv, err = g.transport.CreateSchema(ctx, g.cfg.RegistryName, s)
		if err != nil {
			return nil, err
		}
	}

	sv, err = g.awaitAvailable(ctx, sv, func(ctx context.Context) (*SchemaVersion, error) {
		return g.transport.GetSchemaVersionByID(ctx, g.cfg.RegistryName, sv.SVID)
	})
	if err != nil {
		return nil, err
	}

	if len(g.cfg.Metadata) > 0 {
		if metaErr := g.transport.PutSchemaVersionMetadata(ctx, g.cfg.RegistryName, sv.SVID, g.cfg.Metadata); metaErr != nil {
			g.logger.Warn("failed to attach schema version metadata", metaErr, map[string]interface{}{"svid": sv.SVID.String()})
		}
	}

	return sv, nil
}

// awaitAvailable polls refetch while sv is PENDING, up to MaxWaitAttempts
// times spaced JitterInterval apart. Any terminal status other than
// AVAILABLE - FAILURE, DELETING, or anything else the registry might report
// - is reported as ErrSchemaRegistrationFailed; exhausting the attempt
// budget is reported as ErrTimeout.
func (g *Gateway) awaitAvailable(ctx context.Context, sv *SchemaVersion, refetch func(context.Context) (*SchemaVersion, error)) (*SchemaVersion, error) {
	for attempt := 0; sv.Status == StatusPending; attempt++ {
		if attempt >= g.cfg.MaxWaitAttempts {
			return nil, fmt.Errorf("%w: svid %s still PENDING after %d attempts", ErrTimeout, sv.SVID, attempt)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.cfg.JitterInterval):
		}

		next, err := refetch(ctx)
		if err != nil {
			return nil, err
		}
		sv = next
	}

	if sv.Status != StatusAvailable {
		return nil, fmt.Errorf("%w: svid %s status %s", ErrSchemaRegistrationFailed, sv.SVID, sv.Status)
	}

	return sv, nil
}

func (g *Gateway) observe(ctx context.Context, operation, resource string, start time.Time, err error) {
	g.observer.ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: operation,
		Resource:  resource,
		Duration:  time.Since(start),
		Error:     err,
	})
}
