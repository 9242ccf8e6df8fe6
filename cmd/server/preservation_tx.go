package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"preservation/internal/preservation/service"
	pgstore "preservation/internal/preservation/store/postgres"
	dErrors "preservation/pkg/domain-errors"
	auditpg "preservation/pkg/platform/audit/store/postgres"
	txcontext "preservation/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// postgresTx runs service commands and outbox batches in one pgx transaction.
type postgresTx struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func newPostgresTx(pool *pgxpool.Pool) *postgresTx {
	return &postgresTx{pool: pool, timeout: defaultTxTimeout}
}

// RunInTx implements service.StoreTx. Tag rows and outbox rows commit together.
func (t *postgresTx) RunInTx(ctx context.Context, fn func(stores service.TxStores) error) error {
	return t.run(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(service.TxStores{
			Tags:  pgstore.New(tx),
			Audit: auditpg.New(tx),
		})
	})
}

// txRunner adapts postgresTx to the outbox worker, which finds the
// transaction in its context.
type txRunner struct {
	tx *postgresTx
}

func (r txRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.tx.run(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(txcontext.WithTx(ctx, tx))
	})
}

func (t *postgresTx) run(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
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

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
