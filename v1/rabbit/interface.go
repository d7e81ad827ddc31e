package rabbit

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// Pipeline is the schema serde pipeline a RabbitClient serializes and
// deserializes message bodies through. *serde.Pipeline satisfies it.
type Pipeline interface {
	Serialize(ctx context.Context, datum interface{}, s schema.Schema) ([]byte, error)
	Deserialize(ctx context.Context, data []byte) (interface{}, schema.Schema, error)

	// EnsureRegistered resolves s to an SVID without encoding anything,
	// used by NewClient to register a publisher's value schema eagerly.
	EnsureRegistered(ctx context.Context, s schema.Schema) (registry.SVID, error)
}

// Pair bundles a datum with the schema it should be (or was) encoded
// under, mirroring v1/kafka.Pair.
type Pair struct {
	Datum  interface{}
	Schema schema.Schema
}

// Serializer encodes a Pair into wire bytes.
type Serializer interface {
	Encode(ctx context.Context, pair Pair) ([]byte, error)
}

// Deserializer decodes wire bytes back into a Pair.
type Deserializer interface {
	Decode(ctx context.Context, data []byte) (Pair, error)
}

// pipelineSerializer adapts a Pipeline to the Serializer interface.
type pipelineSerializer struct {
	pipeline Pipeline
}

func (s *pipelineSerializer) Encode(ctx context.Context, pair Pair) ([]byte, error) {
	return s.pipeline.Serialize(ctx, pair.Datum, pair.Schema)
}

// pipelineDeserializer adapts a Pipeline to the Deserializer interface.
type pipelineDeserializer struct {
	pipeline Pipeline
}

func (d *pipelineDeserializer) Decode(ctx context.Context, data []byte) (Pair, error) {
	datum, s, err := d.pipeline.Deserialize(ctx, data)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Datum: datum, Schema: s}, nil
}

// SetDefaultSerializers builds the client's Serializer and Deserializer
// from cfg.Pipeline, when one was configured and no explicit
// SetSerializer/SetDeserializer call has already run.
func (rb *RabbitClient) SetDefaultSerializers() {
	if rb.cfg.Pipeline == nil {
		return
	}
	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.serializer == nil {
		rb.serializer = &pipelineSerializer{pipeline: rb.cfg.Pipeline}
	}
	if rb.deserializer == nil {
		rb.deserializer = &pipelineDeserializer{pipeline: rb.cfg.Pipeline}
	}
}

// SetSerializer sets the serializer for the RabbitMQ client, replacing any
// serializer NewClient built from Config.Pipeline.
func (rb *RabbitClient) SetSerializer(s Serializer) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.serializer = s
}

// SetDeserializer sets the deserializer for the RabbitMQ client, replacing
// any deserializer NewClient built from Config.Pipeline.
func (rb *RabbitClient) SetDeserializer(d Deserializer) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.deserializer = d
}

// Client provides a high-level interface for interacting with RabbitMQ.
// It abstracts connection management, channel operations, and message publishing/consuming.
//
// This interface is implemented by the concrete *RabbitClient type.
type Client interface {
	// Publisher operations

	// Publish encodes pair through the client's Serializer and publishes
	// it to the configured exchange and routing key. headers, when
	// provided, is sent on the AMQP message unchanged.
	Publish(ctx context.Context, pair Pair, headers ...map[string]interface{}) error

	// Consumer operations

	// Consume starts consuming messages from the main queue.
	// Returns a channel that delivers consumed messages.
	Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	// ConsumeDLQ starts consuming messages from the dead letter queue (DLQ).
	// This allows processing of messages that failed in the main queue.
	ConsumeDLQ(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	// Connection management

	// RetryConnection monitors the connection and automatically reconnects on failure.
	// This method should be run in a goroutine.
	RetryConnection(cfg Config)

	// Lifecycle

	// GracefulShutdown closes all RabbitMQ connections and channels cleanly.
	GracefulShutdown()

	// GetChannel returns the underlying AMQP channel for direct operations when needed.
	GetChannel() *amqp.Channel
}

// Message represents a consumed message from RabbitMQ.
// It provides methods for acknowledging, rejecting, and accessing message data.
type Message interface {
	// AckMsg acknowledges the message, removing it from the queue.
	AckMsg() error

	// NackMsg negatively acknowledges the message.
	// If requeue is true, the message is requeued; otherwise it is discarded,
	// or dead-lettered if the queue has a dead-letter exchange.
	NackMsg(requeue bool) error

	// Body returns the message payload as a byte slice, still framed.
	Body() []byte

	// Header returns the message headers.
	Header() map[string]interface{}

	// Pair returns the datum decoded through the client's Deserializer and
	// the schema it was written under. Zero-valued if the client has no
	// Deserializer configured.
	Pair() Pair
}
