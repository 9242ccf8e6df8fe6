// Package kafka publishes outbox entries to Kafka (or Redpanda) with franz-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"preservation/internal/platform/config"
	"preservation/pkg/platform/audit/worker"
)

// Producer implements worker.Producer on a single topic.
type Producer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewProducer returns nil, nil when no brokers are configured; the caller
// then keeps events in the outbox only.
func NewProducer(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping kafka: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{client: client, topic: cfg.Topic, logger: logger}, nil
}

// EnsureTopic creates the topic if it does not exist yet.
func (p *Producer) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	admin := kadm.NewClient(p.client)
	resp, err := admin.CreateTopic(ctx, partitions, replicationFactor, nil, p.topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	if err == nil {
		p.logger.Info("kafka topic created", "topic", p.topic, "partitions", partitions)
	}
	return nil
}

// Produce sends the batch synchronously and returns the first failure.
func (p *Producer) Produce(ctx context.Context, messages []worker.Message) error {
	if len(messages) == 0 {
		return nil
	}
	results := p.client.ProduceSync(ctx, toRecords(p.topic, messages)...)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", p.topic, err)
	}
	return nil
}

func (p *Producer) Close() {
	p.client.Close()
}

func toRecords(topic string, messages []worker.Message) []*kgo.Record {
	records := make([]*kgo.Record, 0, len(messages))
	for _, m := range messages {
		keys := make([]string, 0, len(m.Headers))
		for k := range m.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		headers := make([]kgo.RecordHeader, 0, len(keys))
		for _, k := range keys {
			headers = append(headers, kgo.RecordHeader{Key: k, Value: []byte(m.Headers[k])})
		}
		records = append(records, &kgo.Record{
			Topic:   topic,
			Key:     m.Key,
			Value:   m.Value,
			Headers: headers,
		})
	}
	return records
}
