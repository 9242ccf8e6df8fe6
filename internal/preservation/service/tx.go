package service

import (
	"context"
	"sync"
	"time"

	dErrors "preservation/pkg/domain-errors"
	"preservation/pkg/platform/audit"
)

// defaultTxTimeout is the maximum duration for an in-memory transaction.
const defaultTxTimeout = 5 * time.Second

// memoryTx serializes commands with one lock. Tag writes are atomic per Save
// call; audit events are buffered and appended only when fn succeeds.
type memoryTx struct {
	mu      sync.Mutex
	tags    TagStore
	audit   AuditAppender
	timeout time.Duration
}

// NewMemoryTx returns a StoreTx for in-memory stores.
func NewMemoryTx(tags TagStore, auditStore AuditAppender) StoreTx {
	return &memoryTx{tags: tags, audit: auditStore}
}

func (t *memoryTx) RunInTx(ctx context.Context, fn func(stores TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	buffered := &bufferedAppender{}
	if err := fn(TxStores{Tags: t.tags, Audit: buffered}); err != nil {
		return err
	}
	for _, e := range buffered.events {
		if err := t.audit.Append(ctx, e); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append event")
		}
	}
	return nil
}

type bufferedAppender struct {
	events []audit.Event
}

func (b *bufferedAppender) Append(_ context.Context, event audit.Event) error {
	b.events = append(b.events, event)
	return nil
}
