package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
)

// Publish encodes value through the client's Serializer and writes it to
// the configured topic. headers, when non-nil, are attached to the
// message verbatim; callers use this to propagate trace context.
//
// The configured topic is not passed to the Serializer: the schema cache
// and registry gateway do not key anything off it.
func (k *KafkaClient) Publish(ctx context.Context, key string, value Pair, headers map[string]string) error {
	start := time.Now()

	k.mu.RLock()
	serializer := k.serializer
	writer := k.writer
	k.mu.RUnlock()

	if serializer == nil {
		return fmt.Errorf("kafka: no serializer configured, call SetSerializer or set Config.Pipeline")
	}
	if writer == nil {
		return fmt.Errorf("kafka: client is not configured as a producer")
	}

	body, err := serializer.Encode(ctx, value)
	if err != nil {
		k.observeOperation(ctx, "publish", k.cfg.Topic, start, err, 0)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: body,
	}
	for hk, hv := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: hk, Value: []byte(hv)})
	}

	err = writer.WriteMessages(ctx, msg)
	k.observeOperation(ctx, "publish", k.cfg.Topic, start, err, len(body))
	return err
}

func (k *KafkaClient) observeOperation(ctx context.Context, operation, resource string, start time.Time, err error, size int) {
	if k.observer == nil {
		return
	}
	k.observer.ObserveOperation(observability.OperationContext{
		Component: "kafka",
		Operation: operation,
		Resource:  resource,
		Duration:  time.Since(start),
		Error:     err,
		Size:      int64(size),
	})
}
