package rabbit

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
)

// RabbitClient represents a client for interacting with RabbitMQ.
// It manages connections, channels, and provides methods for publishing
// and consuming messages with automatic reconnection capabilities.
type RabbitClient struct {
	// cfg stores the configuration for this RabbitMQ client
	cfg Config

	// Channel is the main AMQP channel used for publishing and consuming messages.
	// It's exposed publicly to allow direct operations when needed.
	Channel *amqp.Channel

	// conn is the underlying AMQP connection to the RabbitMQ server
	conn *amqp.Connection

	// mu protects concurrent access to connection and channel
	mu sync.RWMutex

	// shutdownSignal is closed when the client is being shut down
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once

	// logger receives internal connection/channel events and errors, if set.
	logger Logger

	// observer, if set, is notified of every Publish/Consume operation.
	observer observability.Observer

	// serializer is used to encode a Pair before publishing.
	serializer Serializer

	// deserializer is used to decode a delivery body into a Pair on consume.
	deserializer Deserializer

	// valueSVID is the schema-version identifier NewClient resolved
	// cfg.Schema to, for a publisher that configured one eagerly. The zero
	// SVID means no eager resolution happened (consumer, or no Schema set).
	valueSVID registry.SVID
}

// ValueSchemaSVID returns the SVID this client's configured publisher value
// schema resolved to, and whether eager resolution ran at all.
func (rb *RabbitClient) ValueSchemaSVID() (registry.SVID, bool) {
	return rb.valueSVID, rb.valueSVID != (registry.SVID{})
}

// WithLogger attaches a logger to the client for recording connection,
// channel, and operation events. Returns the client for chaining.
func (rb *RabbitClient) WithLogger(l Logger) *RabbitClient {
	rb.logger = l
	return rb
}

// WithObserver attaches an observer to the client for tracking Publish and
// Consume operations. Returns the client for chaining.
func (rb *RabbitClient) WithObserver(observer observability.Observer) *RabbitClient {
	rb.observer = observer
	return rb
}

func (rb *RabbitClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.InfoWithContext(ctx, msg, nil, fields)
		return
	}
	log.Println("INFO:", msg)
}

func (rb *RabbitClient) logWarn(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.WarnWithContext(ctx, msg, nil, fields)
		return
	}
	log.Println("WARNING:", msg, fields)
}

func (rb *RabbitClient) logError(ctx context.Context, msg string, fields map[string]interface{}) {
	if rb.logger != nil {
		rb.logger.ErrorWithContext(ctx, msg, nil, fields)
		return
	}
	log.Println("ERROR:", msg, fields)
}

// NewClient creates and initializes a new RabbitMQ client with the provided configuration.
// This function establishes the initial connection to RabbitMQ, sets up channels,
// and configures exchanges and queues as specified in the configuration.
//
// Parameters:
//   - config: Configuration for connecting to RabbitMQ and setting up channels
//
// Returns a new RabbitClient instance that is ready to use.
// If the connection attempt or channel setup fails, it will return an error.
//
// Example:
//
//	client, err := rabbit.NewClient(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.GracefulShutdown()
func NewClient(config Config) (*RabbitClient, error) {
	con, err := newConnection(config)
	if err != nil {
		log.Printf("ERROR: error in connecting to rabbit after all retries: %v", err)
		return nil, err
	}

	ch, err := connectToChannel(con, config)
	if ch == nil || err != nil {
		log.Printf("ERROR: error in declaring channel: %v", err)
		return nil, err
	}

	rb := &RabbitClient{
		cfg:            config,
		conn:           con,
		Channel:        ch,
		shutdownSignal: make(chan struct{}),
	}

	if !config.Channel.IsConsumer && config.Pipeline != nil && config.Schema != nil {
		svid, regErr := config.Pipeline.EnsureRegistered(context.Background(), config.Schema)
		if regErr != nil {
			_ = ch.Close()
			_ = con.Close()
			return nil, fmt.Errorf("failed to register value schema %s: %w", config.Schema.Name(), regErr)
		}
		rb.valueSVID = svid
		log.Printf("INFO: Rabbit publisher initialized, value schema %s resolved to svid %s", config.Schema.Name(), svid)
	}

	rb.SetDefaultSerializers()

	return rb, nil
}

// connectToChannel creates and configures a RabbitMQ channel for consumers and publishers.
// This function sets up the channel with the appropriate exchanges, queues, and bindings
// based on the provided configuration.
//
// Parameters:
//   - rb: The AMQP connection to create the channel from
//   - cfg: Configuration specifying channel, exchange, queue, and binding settings
//
// Returns:
//   - *amqp.Channel: The configured channel
//   - error: Any error encountered during set up
//
// The function handles several configuration scenarios:
//   - Basic channel setup for publishers
//   - Full exchange, queue, and binding setup for consumers
//   - Dead letter exchange and queue configuration when enabled
//   - QoS (prefetch) settings for controlling message delivery
func connectToChannel(rb *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	ch, err := rb.Channel()
	if err != nil {
		log.Printf("ERROR: error in creating channel: %v", err)
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		log.Printf("ERROR: error in enabling publisher confirms: %v", err)
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if !cfg.Channel.IsConsumer {
		return ch, nil
	}

	// Declare the main exchange
	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		cfg.Channel.ExchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		log.Printf("ERROR: error in declaring exchange: %v", err)
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Set up dead letter configuration if enabled
	queueArgs := amqp.Table{}
	if cfg.DeadLetter.ExchangeName != "" && cfg.DeadLetter.Ttl > 0 {
		// Declare dead letter exchange
		err = ch.ExchangeDeclare(
			cfg.DeadLetter.ExchangeName,
			"direct",
			true,  // Durable
			false, // AutoDelete
			false, // Internal
			false, // NoWait
			nil,   // Arguments
		)
		if err != nil {
			log.Printf("ERROR: error in declaring dead letter exchange: %v", err)
			return nil, fmt.Errorf("failed to declare dead letter exchange: %w", err)
		}

		// Set up dead letter queue with configured name
		_, err = ch.QueueDeclare(
			cfg.DeadLetter.QueueName,
			true,  // Durable
			false, // AutoDelete
			false, // Exclusive
			false, // NoWait
			nil,   // Arguments
		)
		if err != nil {
			log.Printf("ERROR: error in declaring dead letter queue: %v", err)
			return nil, fmt.Errorf("failed to declare dead letter queue: %w", err)
		}

		// Bind a dead letter queue to exchange
		err = ch.QueueBind(
			cfg.DeadLetter.QueueName,
			cfg.DeadLetter.RoutingKey,
			cfg.DeadLetter.ExchangeName,
			false, // NoWait
			nil,   // Arguments
		)
		if err != nil {
			log.Printf("ERROR: error in binding dead letter queue: %v", err)
			return nil, fmt.Errorf("failed to bind dead letter queue: %w", err)
		}

		// Configure main queue arguments for dead lettering
		queueArgs = amqp.Table{
			"x-dead-letter-exchange":    cfg.DeadLetter.ExchangeName,
			"x-dead-letter-routing-key": cfg.DeadLetter.RoutingKey,
			"x-message-ttl":             cfg.DeadLetter.Ttl * 1000, // Convert to milliseconds
		}
	}

	// Declare main queue
	_, err = ch.QueueDeclare(
		cfg.Channel.QueueName,
		true,      // Durable
		false,     // AutoDelete
		false,     // Exclusive
		false,     // NoWait
		queueArgs, // Arguments including dead letter config
	)
	if err != nil {
		log.Printf("ERROR: error in declaring queue: %v", err)
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// Bind main queue to exchange
	err = ch.QueueBind(
		cfg.Channel.QueueName,
		cfg.Channel.RoutingKey,
		cfg.Channel.ExchangeName,
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		log.Printf("ERROR: error in binding queue: %v", err)
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	// Set QoS if specified
	if cfg.Channel.PrefetchCount > 0 {
		err = ch.Qos(cfg.Channel.PrefetchCount, 0, false)
		if err != nil {
			log.Printf("ERROR: error in setting QoS: %v", err)
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	return ch, nil
}

// RetryConnection continuously monitors the RabbitMQ connection and automatically
// re-establishes it if it fails. This method is typically run in a goroutine.
//
// Parameters:
//   - cfg: Configuration for establishing new connections
//
// The method will:
//   - Monitor the connection for closure events
//   - Attempt to reconnect when the connection is lost, waiting
//     cfg.Channel.DelayToReconnect between failed attempts
//   - Re-establish channels and their configurations
//   - Continue monitoring until the shutdownSignal is received
//
// This provides resilience against network issues and RabbitMQ server restarts.
func (rb *RabbitClient) RetryConnection(cfg Config) {
	defer rb.closeShutdownOnce.Do(func() {
		close(rb.shutdownSignal)
	})
outerLoop:
	for {
		errChan := make(chan *amqp.Error, 1)
		rb.conn.NotifyClose(errChan)

		select {
		case <-rb.shutdownSignal:
			log.Println("INFO: Stopping RetryConnection loop due to shutdown signal")
			return

		case err := <-errChan:
			log.Printf("WARNING: RabbitMQ connection closed, retrying... %v", err)
		reconnectLoop:
			for {
				select {
				case <-rb.shutdownSignal:
					log.Println("INFO: Stopping RetryConnection loop due to shutdown signal")
					return
				default:
					newConn, err := newConnection(cfg)
					if err != nil {
						log.Printf("ERROR: RabbitMQ reconnection failed: %v", err)
						delay := time.Second
						if cfg.Channel.DelayToReconnect > 0 {
							delay = time.Duration(cfg.Channel.DelayToReconnect) * time.Millisecond
						}
						time.Sleep(delay)
						continue reconnectLoop
					}

					rb.mu.Lock()
					rb.conn = newConn
					if rb.Channel != nil {
						_ = rb.Channel.Close()
					}
					rb.Channel, err = connectToChannel(newConn, cfg)
					rb.mu.Unlock()

					if err != nil {
						log.Printf("ERROR: Failed to re-establish RabbitMQ channel: %v", err)
						continue reconnectLoop
					}

					log.Println("INFO: Successfully reconnected to RabbitMQ")
					continue outerLoop
				}
			}
		}
	}
}

// newConnection makes one attempt to connect to the RabbitMQ server; it does
// not retry. This function handles different connection scenarios, including
// TLS/SSL configurations.
//
// Parameters:
//   - cfg: Configuration containing connection details
//
// Returns:
//   - *amqp.Connection: Established connection to RabbitMQ
//   - error: Any error encountered during connection
//
// The function supports three connection modes:
//   - SSL with client certificates (full TLS authentication)
//   - SSL without client certificates (server authentication only)
//   - Plain AMQP (no SSL/TLS)
//
// All connections use a 2-second heartbeat interval to detect disconnections quickly.
func newConnection(cfg Config) (*amqp.Connection, error) {

	if cfg.Connection.IsSSLEnabled && cfg.Connection.UseCert {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		caCert, err := os.ReadFile(cfg.Connection.CACertPath)
		if err != nil {
			log.Printf("ERROR: failed to read CA cert: %v", err)
			return nil, err
		}
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(caCert)

		cert, err := tls.LoadX509KeyPair(cfg.Connection.ClientCertPath, cfg.Connection.ClientKeyPath)
		if err != nil {
			log.Printf("ERROR: failed to load client cert: %v", err)
			return nil, err
		}

		tlsConfig := &tls.Config{
			RootCAs:      caCertPool,
			Certificates: []tls.Certificate{cert},
			ServerName:   cfg.Connection.ServerName,
		}
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat:       2 * time.Second,
			TLSClientConfig: tlsConfig,
		})
		if err == nil {
			log.Println("INFO: Connected to Rabbit")
			return conn, nil
		}
		log.Printf("ERROR: error in connecting to rabbit: %v", err)
	} else if !cfg.Connection.IsSSLEnabled {
		hostURL := fmt.Sprintf("amqp://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		//conn, err := amqp.Dial(hostURL)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			log.Println("INFO: Connected to Rabbit")
			return conn, nil
		}
		log.Printf("ERROR: error in connecting to rabbit: %v", err)
	} else {
		hostURL := fmt.Sprintf("amqps://%v:%v@%v:%v", cfg.Connection.User, cfg.Connection.Password, cfg.Connection.Host, cfg.Connection.Port)
		conn, err := amqp.DialConfig(hostURL, amqp.Config{
			Heartbeat: 2 * time.Second,
		})
		if err == nil {
			log.Println("INFO: Connected to Rabbit")
			return conn, nil
		}
		log.Printf("ERROR: error in connecting to rabbit: %v", err)
	}
	return nil, fmt.Errorf("failed to connect to Rabbit")
}
