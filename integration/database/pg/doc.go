// Package pg manages PostgreSQL pools built on pgx.
//
// Connect parses the connection string, applies pool limits and retries the
// first ping with exponential backoff. Migrate runs goose migrations from an
// fs.FS, usually an embedded directory. Healthcheck returns a readiness check.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations, log); err != nil {
//		return err
//	}
//
// # Transactions
//
// WithTx and TxFromContext carry a pgx.Tx through a context so repositories
// can join a caller's transaction. InTx opens one when the context has none,
// and Conn picks the transaction or the pool for a single query:
//
//	err := pg.InTx(ctx, pool, func(ctx context.Context) error {
//		_, err := pg.Conn(ctx, pool).Exec(ctx, "UPDATE ...")
//		return err
//	})
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
// IsTxClosedError classify driver errors.
package pg
