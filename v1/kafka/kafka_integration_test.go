package kafka

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/cache"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/compression"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/serde"
)

const widgetDefinition = `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"},{"name":"label","type":"string"}]}`

func newTestPipeline(t *testing.T) *serde.Pipeline {
	t.Helper()
	transport := registry.NewInMemoryTransport()
	gw := registry.New(registry.Config{RegistryName: "integration-test", AutoRegister: true}, transport, noopKafkaLogger{}, observability.NewNoOpObserver())
	c := cache.New(gw, observability.NewNoOpObserver())
	return serde.New(c, compression.NewRegistry(), serde.Config{})
}

type noopKafkaLogger struct{}

func (noopKafkaLogger) Warn(msg string, err error, fields ...map[string]interface{}) {}

// TestKafkaPublishConsumeRoundTripThroughSchemaPipeline verifies that a
// Pair published through a KafkaClient is readable back on the consumer
// side, decoded to the same schema and datum, using a real Kafka broker.
func TestKafkaPublishConsumeRoundTripThroughSchemaPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	brokers, containerInstance := initializeKafkaBroker(ctx, t, "widgets")
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	pipeline := newTestPipeline(t)

	widget, err := schema.NewAvro("Widget", widgetDefinition, schema.CompatibilityBackward)
	require.NoError(t, err)

	producerCfg := Config{
		Brokers:    brokers,
		Topic:      "widgets",
		IsConsumer: false,
		Pipeline:   pipeline,
		Schema:     widget,
	}

	var producer *KafkaClient
	producerApp := fx.New(
		FXModule,
		fx.Provide(func() Config { return producerCfg }),
		fx.Populate(&producer),
	)
	require.NoError(t, producerApp.Start(ctx))
	defer func() {
		if err := producerApp.Stop(ctx); err != nil {
			t.Logf("failed to stop producer app: %v", err)
		}
	}()

	svid, resolved := producer.ValueSchemaSVID()
	require.True(t, resolved, "NewClient should have eagerly registered the producer's value schema")
	assert.NotEqual(t, registry.SVID{}, svid)

	time.Sleep(2 * time.Second)

	consumerCfg := Config{
		Brokers:    brokers,
		Topic:      "widgets",
		GroupID:    "widgets-consumer",
		IsConsumer: true,
		Pipeline:   pipeline,
	}

	var consumer *KafkaClient
	consumerApp := fx.New(
		FXModule,
		fx.Provide(func() Config { return consumerCfg }),
		fx.Populate(&consumer),
	)
	require.NoError(t, consumerApp.Start(ctx))
	defer func() {
		if err := consumerApp.Stop(ctx); err != nil {
			t.Logf("failed to stop consumer app: %v", err)
		}
	}()

	time.Sleep(2 * time.Second)

	wg := &sync.WaitGroup{}
	consumeCtx, consumeCancel := context.WithCancel(ctx)
	defer consumeCancel()

	messages := consumer.Consume(consumeCtx, wg)
	received := make(chan Message, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range messages {
			received <- msg
			return
		}
	}()

	datum := map[string]interface{}{"id": int64(42), "label": "gizmo"}
	err = producer.Publish(ctx, "widget-42", Pair{Datum: datum, Schema: widget}, nil)
	require.NoError(t, err)

	select {
	case msg := <-received:
		pair := msg.Pair()
		assert.Equal(t, datum, pair.Datum)
		assert.True(t, schema.Equivalent(pair.Schema, widget))
		require.NoError(t, msg.CommitMsg())
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for message to be consumed")
	}

	consumeCancel()
	wg.Wait()
}

func initializeKafkaBroker(ctx context.Context, t *testing.T, topic string) ([]string, testcontainers.Container) {
	t.Helper()

	hostPort, err := kafkaFreePort()
	require.NoError(t, err)

	containerInstance, err := createKafkaBrokerContainer(ctx, hostPort)
	require.NoError(t, err)

	dialer := &net.Dialer{Timeout: 2 * time.Second}
	require.Eventually(t, func() bool {
		conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort("localhost", hostPort))
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 60*time.Second, 500*time.Millisecond, "Kafka port not ready")

	brokers := []string{fmt.Sprintf("localhost:%s", hostPort)}
	createKafkaTestTopic(t, brokers, topic)

	return brokers, containerInstance
}

func createKafkaTestTopic(t *testing.T, brokers []string, topic string) {
	t.Helper()

	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		t.Logf("warning: could not create admin connection: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	controller, err := conn.Controller()
	if err != nil {
		t.Logf("warning: could not get controller: %v", err)
		return
	}

	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		t.Logf("warning: could not connect to controller: %v", err)
		return
	}
	defer func() { _ = controllerConn.Close() }()

	if err := controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}); err != nil {
		t.Logf("warning: could not create topic (may already exist): %v", err)
	}
}

func createKafkaBrokerContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {
	portBindings := nat.PortMap{
		"9092/tcp": []nat.PortBinding{{HostPort: hostPort}},
	}

	req := testcontainers.ContainerRequest{
		Image:        "confluentinc/cp-kafka:7.5.0",
		ExposedPorts: []string{"9092/tcp"},
		Env: map[string]string{
			"KAFKA_BROKER_ID":                                "1",
			"KAFKA_LISTENER_SECURITY_PROTOCOL_MAP":           "PLAINTEXT:PLAINTEXT,PLAINTEXT_HOST:PLAINTEXT,CONTROLLER:PLAINTEXT",
			"KAFKA_ADVERTISED_LISTENERS":                     fmt.Sprintf("PLAINTEXT://localhost:29092,PLAINTEXT_HOST://localhost:%s", hostPort),
			"KAFKA_OFFSETS_TOPIC_REPLICATION_FACTOR":         "1",
			"KAFKA_GROUP_INITIAL_REBALANCE_DELAY_MS":         "0",
			"KAFKA_TRANSACTION_STATE_LOG_MIN_ISR":            "1",
			"KAFKA_TRANSACTION_STATE_LOG_REPLICATION_FACTOR": "1",
			"KAFKA_PROCESS_ROLES":                            "broker,controller",
			"KAFKA_NODE_ID":                                  "1",
			"KAFKA_CONTROLLER_QUORUM_VOTERS":                 "1@localhost:29093",
			"KAFKA_LISTENERS":                                "PLAINTEXT://0.0.0.0:29092,PLAINTEXT_HOST://0.0.0.0:9092,CONTROLLER://0.0.0.0:29093",
			"KAFKA_INTER_BROKER_LISTENER_NAME":               "PLAINTEXT",
			"KAFKA_CONTROLLER_LISTENER_NAMES":                "CONTROLLER",
			"KAFKA_LOG_DIRS":                                 "/tmp/kraft-combined-logs",
			"CLUSTER_ID":                                     "MkU3OEVBNTcwNTJENDM2Qk",
			"KAFKA_AUTO_CREATE_TOPICS_ENABLE":                "true",
		},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("9092/tcp").WithStartupTimeout(60*time.Second),
			wait.ForLog("Kafka Server started").WithStartupTimeout(60*time.Second),
		),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err == nil {
			return c, nil
		}
		lastErr = err
		if strings.Contains(err.Error(), "docker.sock") {
			time.Sleep(time.Duration(attempt+1) * time.Second)
			continue
		}
		break
	}

	return nil, fmt.Errorf("failed to start Kafka container after 3 attempts: %w", lastErr)
}

func kafkaFreePort() (string, error) {
	lc := &net.ListenConfig{}
	l, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer func() { _ = l.Close() }()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port), nil
}
