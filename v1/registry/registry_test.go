package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

type noopLogger struct{}

func (noopLogger) Warn(msg string, err error, fields ...map[string]interface{}) {}

func newTestGateway(t *testing.T, transport Transport, cfg Config) *Gateway {
	t.Helper()
	cfg.JitterInterval = time.Millisecond
	return New(cfg, transport, noopLogger{}, observability.NewNoOpObserver())
}

func mustAvro(t *testing.T, name, def string) schema.Schema {
	t.Helper()
	s, err := schema.NewAvro(name, def, schema.CompatibilityBackward)
	require.NoError(t, err)
	return s
}

func TestGetByDefinitionAutoRegistersOnFirstUse(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry", AutoRegister: true})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)

	sv, err := gw.GetByDefinition(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, sv.Status)
	assert.True(t, schema.Equivalent(sv.Schema, s))
}

func TestGetByDefinitionReusesExistingVersion(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry", AutoRegister: true})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)

	first, err := gw.GetByDefinition(context.Background(), s)
	require.NoError(t, err)

	second, err := gw.GetByDefinition(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, first.SVID, second.SVID)
}

func TestGetByDefinitionAutoRegisterDisabledReturnsNotFound(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry", AutoRegister: false})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)

	_, err := gw.GetByDefinition(context.Background(), s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaNotFound))
}

func TestRegisterOrCreateFallsBackToCreateSchema(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry", AutoRegister: true})

	s := mustAvro(t, "Gadget", `{"type":"record","name":"Gadget","fields":[{"name":"id","type":"long"}]}`)

	sv, err := gw.registerOrCreate(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, sv.Status)

	versions := len(transport.byName["Gadget"])
	assert.Equal(t, 1, versions)
}

func TestGetByIDPollsThroughPendingToAvailable(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry"})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)
	created, err := transport.CreateSchema(context.Background(), "default-registry", s)
	require.NoError(t, err)

	transport.SimulatePending(created.SVID, 2, StatusAvailable)

	sv, err := gw.GetByID(context.Background(), created.SVID)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, sv.Status)
}

func TestGetByIDTerminalFailureReturnsRegistrationFailedError(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry"})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)
	created, err := transport.CreateSchema(context.Background(), "default-registry", s)
	require.NoError(t, err)

	transport.SimulatePending(created.SVID, 1, StatusFailure)

	_, err = gw.GetByID(context.Background(), created.SVID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaRegistrationFailed))
}

func TestGetByIDExhaustsAttemptsAndTimesOut(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry", MaxWaitAttempts: 2})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)
	created, err := transport.CreateSchema(context.Background(), "default-registry", s)
	require.NoError(t, err)

	transport.SimulatePending(created.SVID, 100, StatusAvailable)

	_, err = gw.GetByID(context.Background(), created.SVID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestGetByIDDeletingStatusReturnsRegistrationFailedError(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry"})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)
	created, err := transport.CreateSchema(context.Background(), "default-registry", s)
	require.NoError(t, err)

	transport.SimulatePending(created.SVID, 0, StatusDeleting)

	_, err = gw.GetByID(context.Background(), created.SVID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaRegistrationFailed), "a non-AVAILABLE terminal status must not be treated as success")
}

func TestGetByIDUnknownSVIDReturnsNotFound(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{RegistryName: "default-registry"})

	_, err := gw.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaNotFound))
}

func TestPutSchemaVersionMetadataAttachedOnRegistration(t *testing.T) {
	transport := NewInMemoryTransport()
	gw := newTestGateway(t, transport, Config{
		RegistryName: "default-registry",
		AutoRegister: true,
		Metadata:     map[string]string{"team": "platform"},
	})

	s := mustAvro(t, "Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`)

	sv, err := gw.GetByDefinition(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, "platform", transport.Metadata(sv.SVID)["team"])
}
