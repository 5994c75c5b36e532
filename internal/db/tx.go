package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// InTx runs fn inside a single transaction: rolled back when fn returns an
// error (or panics), committed otherwise. The connection goes back to the
// pool on every path.
func InTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("rollback tx: %s", rbErr)
			}
			return
		}

		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("commit tx: %w", commitErr)
		}
	}()

	return fn(tx)
}

// LockUser takes a transaction-scoped advisory lock for userID. Held until
// the enclosing transaction ends, it serializes all writers of one user's
// data while other users proceed in parallel.
func LockUser(ctx context.Context, tx pgx.Tx, userID int64) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userLockKey(userID)); err != nil {
		return fmt.Errorf("advisory lock user %d: %w", userID, err)
	}
	return nil
}

// userLockKey keeps user locks in their own key space so other advisory
// lock users of the same database do not collide with them.
func userLockKey(userID int64) int64 {
	const userLockSpace int64 = 0x5753 << 48
	return userLockSpace | (userID & (1<<48 - 1))
}
