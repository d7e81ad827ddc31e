package rabbit

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/cache"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/compression"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/serde"
)

const eventDefinition = `{"type":"record","name":"Event","fields":[{"name":"id","type":"long"},{"name":"kind","type":"string"}]}`

type noopRabbitLogger struct{}

func (noopRabbitLogger) Warn(msg string, err error, fields ...map[string]interface{}) {}

func newTestRabbitPipeline(t *testing.T) *serde.Pipeline {
	t.Helper()
	transport := registry.NewInMemoryTransport()
	gw := registry.New(registry.Config{RegistryName: "rabbit-integration-test", AutoRegister: true}, transport, noopRabbitLogger{}, observability.NewNoOpObserver())
	c := cache.New(gw, observability.NewNoOpObserver())
	return serde.New(c, compression.NewRegistry(), serde.Config{})
}

// TestRabbitPublishConsumeRoundTripThroughSchemaPipeline verifies that a
// Pair published through a RabbitClient is readable back on the consumer
// side, decoded to the same schema and datum, against a real broker, and
// that the publisher eagerly registered its value schema at construction.
func TestRabbitPublishConsumeRoundTripThroughSchemaPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	hostPort, containerInstance := initializeRabbitBroker(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	pipeline := newTestRabbitPipeline(t)

	event, err := schema.NewAvro("Event", eventDefinition, schema.CompatibilityBackward)
	require.NoError(t, err)

	baseConn := Connection{Host: "localhost", Port: hostPort, User: "guest", Password: "guest"}

	publisher, err := NewClient(Config{
		Connection: baseConn,
		Channel: Channel{
			ExchangeName: "events",
			ExchangeType: "direct",
			RoutingKey:   "event.created",
			IsConsumer:   false,
		},
		Pipeline: pipeline,
		Schema:   event,
	})
	require.NoError(t, err)
	defer publisher.GracefulShutdown()

	svid, resolved := publisher.ValueSchemaSVID()
	require.True(t, resolved, "NewClient should have eagerly registered the publisher's value schema")
	assert.NotEqual(t, registry.SVID{}, svid)

	consumer, err := NewClient(Config{
		Connection: baseConn,
		Channel: Channel{
			ExchangeName: "events",
			ExchangeType: "direct",
			RoutingKey:   "event.created",
			QueueName:    "events-consumer",
			IsConsumer:   true,
		},
		Pipeline: pipeline,
	})
	require.NoError(t, err)
	defer consumer.GracefulShutdown()

	wg := &sync.WaitGroup{}
	consumeCtx, consumeCancel := context.WithCancel(ctx)
	defer consumeCancel()

	messages := consumer.Consume(consumeCtx, wg)

	datum := map[string]interface{}{"id": int64(7), "kind": "created"}
	err = publisher.Publish(ctx, Pair{Datum: datum, Schema: event}, nil)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		pair := msg.Pair()
		assert.Equal(t, datum, pair.Datum)
		assert.True(t, schema.Equivalent(pair.Schema, event))
		require.NoError(t, msg.AckMsg())
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for message to be consumed")
	}

	consumeCancel()
	wg.Wait()
}

func initializeRabbitBroker(ctx context.Context, t *testing.T) (uint, testcontainers.Container) {
	t.Helper()

	hostPort, err := rabbitFreePort()
	require.NoError(t, err)

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"5672/tcp": []nat.PortBinding{{HostPort: strconv.Itoa(int(hostPort))}},
			}
		},
		WaitingFor: wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	dialer := &net.Dialer{Timeout: 2 * time.Second}
	require.Eventually(t, func() bool {
		conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort("localhost", strconv.Itoa(int(hostPort))))
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 60*time.Second, 500*time.Millisecond, "RabbitMQ port not ready")

	return hostPort, c
}

func rabbitFreePort() (uint, error) {
	lc := &net.ListenConfig{}
	l, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return uint(l.Addr().(*net.TCPAddr).Port), nil
}
