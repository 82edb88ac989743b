// Package events publishes validation records to Kafka so downstream
// consumers (analytics, audit) can follow the log without reading the store.
// Publication is fire-and-forget: delivery failures are logged and counted,
// never returned to the HTTP caller.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"validarfc/internal/validation/metrics"
	"validarfc/internal/validation/models"
)

// DefaultTopic receives one message per validation.
const DefaultTopic = "validarfc.validations"

const deliveryTimeout = 10 * time.Second

// Event is the message value. Field names match the HTTP response.
type Event struct {
	RFC       string `json:"rfc"`
	IsValid   bool   `json:"is_valid"`
	CreatedAt string `json:"created_at"`
}

// KafkaPublisher produces validation events asynchronously.
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewKafka connects a producer to brokers. An empty topic uses DefaultTopic.
func NewKafka(brokers []string, topic string, logger *slog.Logger, m *metrics.Metrics) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no seed brokers configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RecordDeliveryTimeout(deliveryTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &KafkaPublisher{
		client:  client,
		topic:   topic,
		logger:  logger,
		metrics: m,
	}, nil
}

// EnsureTopic creates the topic with broker default partitioning when it does
// not exist yet.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(p.client)
	_, err := adm.CreateTopic(ctx, -1, -1, nil, p.topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	return nil
}

// Publish hands the record to the producer and returns immediately. The
// record outlives the request, so cancellation of ctx is ignored.
func (p *KafkaPublisher) Publish(ctx context.Context, record models.Record) error {
	value, err := Encode(record)
	if err != nil {
		return err
	}

	msg := &kgo.Record{
		Key:   []byte(record.RFC),
		Value: value,
	}
	p.client.Produce(context.WithoutCancel(ctx), msg, func(r *kgo.Record, err error) {
		if err == nil {
			return
		}
		p.metrics.IncrementPublishFailure()
		p.logger.Warn("failed to publish validation event",
			"topic", r.Topic,
			"rfc", record.RFC,
			"error", err,
		)
	})
	return nil
}

// Close flushes buffered records, waiting at most until ctx is done, and
// releases the client.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	err := p.client.Flush(ctx)
	p.client.Close()
	if err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	return nil
}

// Encode renders a record as the JSON message value.
func Encode(record models.Record) ([]byte, error) {
	value, err := json.Marshal(Event{
		RFC:       record.RFC,
		IsValid:   record.IsValid,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal validation event: %w", err)
	}
	return value, nil
}
