// Package worker publishes outbox entries to the event stream.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	audit "preservation/pkg/platform/audit"
)

var (
	published = promauto.NewCounter(prometheus.CounterOpts{
		Name: "preservation_outbox_published_total",
		Help: "Outbox entries published to the event stream",
	})
	publishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "preservation_outbox_publish_failures_total",
		Help: "Outbox batches that failed to publish",
	})
)

// Message is one record handed to the producer. Key keeps events of one
// aggregate on one partition.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type Producer interface {
	Produce(ctx context.Context, messages []Message) error
}

// TxRunner scopes one batch (read, publish, mark) in a transaction carried by ctx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Worker polls the outbox and publishes pending entries. Delivery is at least
// once: a crash between produce and mark publishes the batch again.
type Worker struct {
	outbox    audit.Outbox
	producer  Producer
	tx        TxRunner
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithTxRunner(tx TxRunner) Option {
	return func(w *Worker) {
		if tx != nil {
			w.tx = tx
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

func NewWorker(outbox audit.Outbox, producer Producer, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		producer:  producer,
		tx:        noTx{},
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run flushes on every tick until ctx is cancelled. Publish errors are logged
// and retried on the next tick.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for {
				n, err := w.Flush(ctx)
				if err != nil {
					w.logger.ErrorContext(ctx, "outbox publish failed", "error", err)
					break
				}
				if n < w.batchSize {
					break
				}
			}
		}
	}
}

// Flush publishes one batch and returns how many entries were sent.
func (w *Worker) Flush(ctx context.Context) (int, error) {
	var sent int
	err := w.tx.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := w.outbox.Pending(ctx, w.batchSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		messages := make([]Message, 0, len(entries))
		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			messages = append(messages, Message{
				Key:   []byte(e.AggregateID),
				Value: e.Payload,
				Headers: map[string]string{
					"event_type":     e.EventType,
					"aggregate_type": e.AggregateType,
					"outbox_id":      e.ID.String(),
				},
			})
			ids = append(ids, e.ID)
		}
		if err := w.producer.Produce(ctx, messages); err != nil {
			publishFailures.Inc()
			return err
		}
		if err := w.outbox.MarkPublished(ctx, ids, time.Now()); err != nil {
			return err
		}
		sent = len(entries)
		published.Add(float64(sent))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}
