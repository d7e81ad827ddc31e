package kafka

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
)

// FXModule is an fx.Module that provides and configures the Kafka client.
//
// Usage:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    fx.Provide(
//	        func() kafka.Config {
//	            return kafka.Config{Brokers: []string{"localhost:9092"}, Topic: "events"}
//	        },
//	    ),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a KafkaClient.
type KafkaParams struct {
	fx.In

	Config   Config
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new KafkaClient using dependency injection.
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}
	return client, nil
}

// KafkaLifecycleParams groups the dependencies needed for Kafka client
// lifecycle management.
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle registers the KafkaClient with the fx lifecycle
// system, ensuring GracefulShutdown runs on application stop.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: Kafka client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Kafka client shutdown")
			return params.Client.GracefulShutdown()
		},
	})
}
