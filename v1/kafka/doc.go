// Package kafka provides functionality for interacting with Apache Kafka.
//
// The kafka package offers a simplified interface for working with Kafka
// message brokers, providing connection management, message publishing, and
// consuming capabilities with a focus on reliability and ease of use.
//
// Core Features:
//   - Robust connection management with automatic reconnection
//   - Simple publishing interface with error handling
//   - Consumer interface with automatic commit handling
//   - Consumer group support
//   - Integration with the Logger package for structured logging
//   - Distributed tracing support via message headers
//
// Basic Usage:
//
//	import (
//		"github.com/aleph-alpha-eng/glue-schema-registry/v1/kafka"
//		"github.com/aleph-alpha-eng/glue-schema-registry/v1/logger"
//		"context"
//		"sync"
//	)
//
//	// Create a new Kafka client, wired to the schema serde pipeline
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers:  []string{"localhost:9092"},
//		Topic:    "events",
//		GroupID:  "my-consumer-group",
//		Pipeline: pipeline, // *serde.Pipeline
//	})
//	if err != nil {
//		log.Fatal("Failed to connect to Kafka", err, nil)
//	}
//	defer client.Close()
//
//	// Publish a message
//	ctx := context.Background()
//	err = client.Publish(ctx, "key", kafka.Pair{Datum: record, Schema: userSchema}, nil)
//	if err != nil {
//		log.Error("Failed to publish message", err, nil)
//	}
//
//	// Consume messages
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	msgChan := client.Consume(ctx, wg)
//	for msg := range msgChan {
//		log.Info("Received message", nil, map[string]interface{}{
//			"schema": msg.Pair().Schema.Name(),
//		})
//
//		// Process msg.Pair().Datum
//
//		// Commit the message
//		if err := msg.CommitMsg(); err != nil {
//			log.Error("Failed to commit message", err, nil)
//		}
//	}
//
// High-Throughput Consumption with Parallel Workers:
//
// For high-volume topics, use ConsumeParallel to process messages concurrently:
//
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	// Use 5 concurrent workers for better throughput
//	msgChan := client.ConsumeParallel(ctx, wg, 5)
//	for msg := range msgChan {
//		// Process messages concurrently
//		processMessage(msg)
//
//		// Commit the message
//		if err := msg.CommitMsg(); err != nil {
//			log.Error("Failed to commit message", err, nil)
//		}
//	}
//
// Distributed Tracing with Message Headers:
//
// This package supports distributed tracing by allowing you to propagate trace context
// through message headers, enabling end-to-end visibility across services.
//
// Publisher Example (sending trace context):
//
//	import (
//		"github.com/aleph-alpha-eng/glue-schema-registry/v1/tracer"
//		// other imports...
//	)
//
//	// Create a tracer client
//	tracerClient := tracer.NewClient(tracerConfig, log)
//
//	// Create a span for the operation that includes publishing
//	ctx, span := tracerClient.StartSpan(ctx, "process-and-publish")
//	defer span.End()
//
//	// Process data...
//
//	// Extract trace context as headers before publishing
//	traceHeaders := tracerClient.GetCarrier(ctx)
//
//	// Publish with trace headers
//	err = kafkaClient.Publish(ctx, "key", kafka.Pair{Datum: record, Schema: userSchema}, traceHeaders)
//	if err != nil {
//		span.RecordError(err)
//		log.Error("Failed to publish message", err, nil)
//	}
//
// Consumer Example (continuing the trace):
//
//	msgChan := kafkaClient.Consume(ctx, wg)
//	for msg := range msgChan {
//		// Extract trace headers from the message
//		headers := msg.Header()
//
//		// Create a new context with the trace information
//		ctx = tracerClient.SetCarrierOnContext(ctx, headers)
//
//		// Create a span as a child of the incoming trace
//		ctx, span := tracerClient.StartSpan(ctx, "process-message")
//		defer span.End()
//
//		// Add relevant attributes to the span
//		tracerClient.SetAttributes(span, map[string]interface{}{
//			"message.size": len(msg.Body()),
//			"message.key":  string(msg.Key()),
//		})
//
//		// Process the message...
//
//		if err := processMessage(msg.Body()); err != nil {
//			// Record any errors in the span
//			span.RecordError(err)
//			continue
//		}
//
//		// Commit successful processing
//		if err := msg.CommitMsg(); err != nil {
//			span.RecordError(err)
//			log.Error("Failed to commit message", err, nil)
//		}
//	}
//
// FX Module Integration:
//
// This package provides a fx module for easy integration:
//
//	app := fx.New(
//		logger.FXModule, // Optional: provides std logger
//		kafka.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// The Kafka module does not take a logger from the dependency injection
// container; set Config.Logger to route Kafka's internal errors to a logger.
//
// Configuration:
//
// The kafka client is configured explicitly through Config; the package reads
// no environment variables. An application's own variables might look like:
//
//	KAFKA_BROKERS=localhost:9092,localhost:9093
//	KAFKA_TOPIC=events
//	KAFKA_GROUP_ID=my-consumer-group
//
// Custom Logger Integration:
//
// You can integrate the std/v1/logger for better error logging:
//
//	import (
//		"github.com/aleph-alpha-eng/glue-schema-registry/v1/logger"
//		"github.com/aleph-alpha-eng/glue-schema-registry/v1/kafka"
//	)
//
//	// Create logger
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "my-service",
//	})
//
//	// Create Kafka client with logger
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers:    []string{"localhost:9092"},
//		Topic:      "events",
//		Logger:     log, // Kafka internal errors will use this logger
//		IsConsumer: false,
//	})
//
// Thread Safety:
//
// All methods on the KafkaClient type are safe for concurrent use by multiple
// goroutines; GracefulShutdown (and its alias Close) may be called more than
// once.
package kafka
