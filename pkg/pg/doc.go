// Package pg connects to PostgreSQL with pgx/v5 and manages the notifier's
// schema with goose.
//
// The only table the notifier owns is settings (key, value, updated_at),
// backing settings.PostgresStore. Its migration is embedded in the binary:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, nil, log); err != nil {
//		return err
//	}
//
// Connect retries with a linearly growing delay. Healthcheck plugs the pool
// into the readiness probe.
package pg
