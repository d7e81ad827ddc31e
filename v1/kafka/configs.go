package kafka

import (
	"time"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// Default tunables applied by NewClient when the corresponding Config
// field is left at its zero value.
const (
	DefaultMinBytes       = 10e3 // 10KB
	DefaultMaxBytes       = 10e6 // 10MB
	DefaultMaxWait        = 1 * time.Second
	DefaultCommitInterval = 1 * time.Second
	DefaultStartOffset    = -1 // kafka.LastOffset
	DefaultPartition      = -1
	DefaultRequiredAcks   = 1 // RequireOne
	DefaultBatchSize      = 100
	DefaultBatchTimeout   = 1 * time.Second
	DefaultMaxAttempts    = 3
	DefaultWriteTimeout   = 10 * time.Second
)

// Logger is the minimal logging surface used for Kafka's own internal
// error log stream. *logger.Logger satisfies it.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
}

// TLSConfig configures TLS for the Kafka dialer.
type TLSConfig struct {
	Enabled            bool
	InsecureSkipVerify bool
	CACertPath         string
	ClientCertPath     string
	ClientKeyPath      string
}

// SASLConfig configures SASL authentication for the Kafka dialer.
type SASLConfig struct {
	Enabled   bool
	Mechanism string // "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"
	Username  string
	Password  string
}

// Config configures a KafkaClient.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string

	// IsConsumer selects whether NewClient builds a reader (true) or a
	// writer (false).
	IsConsumer bool

	// Pipeline, when set, is used by SetDefaultSerializers to build the
	// client's Serializer and Deserializer from the shared schema serde
	// pipeline.
	Pipeline Pipeline

	// Schema is the value schema a producer writes under. When set
	// together with Pipeline and IsConsumer is false, NewClient resolves
	// it through Pipeline.EnsureRegistered before the writer is handed
	// back to the caller, so a registry problem with this schema is a
	// construction error rather than a failure on the first Publish.
	// Ignored for consumers, which learn the writer schema per message
	// from the wire frame.
	Schema schema.Schema

	MinBytes       int
	MaxBytes       int
	MaxWait        time.Duration
	CommitInterval time.Duration
	StartOffset    int64
	Partition      int

	RequiredAcks     int
	BatchSize        int
	BatchTimeout     time.Duration
	MaxAttempts      int
	WriteTimeout     time.Duration
	Async            bool
	CompressionCodec string // "gzip", "snappy", "lz4", "zstd"

	EnableAutoCommit bool

	TLS  TLSConfig
	SASL SASLConfig

	// Logger receives Kafka's internal error log stream, if set.
	Logger Logger

	// ErrorLogger is used instead of Logger when Logger is nil.
	ErrorLogger func(msg string, args ...interface{})
}
