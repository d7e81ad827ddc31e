package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Message is one decoded Kafka record, ready for application processing
// and explicit commit.
type Message interface {
	// Pair is the decoded datum and the schema it was written under.
	Pair() Pair

	// Body is the raw, still-framed message value.
	Body() []byte

	// Key is the Kafka message key.
	Key() []byte

	// Header exposes the message's Kafka headers as a flat map, used to
	// extract propagated trace context.
	Header() map[string]string

	// CommitMsg commits the message's offset.
	CommitMsg() error
}

type consumerMessage struct {
	reader  *kafka.Reader
	raw     kafka.Message
	decoded Pair
}

func (m *consumerMessage) Pair() Pair  { return m.decoded }
func (m *consumerMessage) Body() []byte { return m.raw.Value }
func (m *consumerMessage) Key() []byte  { return m.raw.Key }

func (m *consumerMessage) Header() map[string]string {
	out := make(map[string]string, len(m.raw.Headers))
	for _, h := range m.raw.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

func (m *consumerMessage) CommitMsg() error {
	return m.reader.CommitMessages(context.Background(), m.raw)
}

// Consume reads messages from the configured topic, decodes each one
// through the client's Deserializer, and streams them on the returned
// channel. The channel is closed when ctx is cancelled or the client is
// shut down. wg.Add(1) is called before the consume loop starts and
// wg.Done() when it exits, so callers can wait for a clean shutdown.
func (k *KafkaClient) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	out := make(chan Message)

	k.mu.RLock()
	reader := k.reader
	deserializer := k.deserializer
	k.mu.RUnlock()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case <-k.shutdownSignal:
				return
			default:
			}

			raw, err := reader.FetchMessage(ctx)
			if err != nil {
				k.observeOperation(ctx, "consume", k.cfg.Topic, time.Now(), err, 0)
				return
			}

			pair, err := deserializer.Decode(ctx, raw.Value)
			if err != nil {
				k.observeOperation(ctx, "consume", k.cfg.Topic, time.Now(), err, len(raw.Value))
				continue
			}
			k.observeOperation(ctx, "consume", k.cfg.Topic, time.Now(), nil, len(raw.Value))

			select {
			case out <- &consumerMessage{reader: reader, raw: raw, decoded: pair}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// ConsumeParallel is Consume, fanned out across n concurrent fetch/decode
// workers sharing one reader. Message order across the returned channel is
// not guaranteed to match broker order when n > 1.
func (k *KafkaClient) ConsumeParallel(ctx context.Context, wg *sync.WaitGroup, n int) <-chan Message {
	out := make(chan Message)

	for i := 0; i < n; i++ {
		workerCh := k.Consume(ctx, wg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range workerCh {
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		<-ctx.Done()
		close(out)
	}()

	return out
}
