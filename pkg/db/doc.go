// Package db opens pgx connection pools and applies goose migrations.
//
//	pool, err := db.Open(ctx, cfg.DatabaseURL, db.WithMaxConns(5))
//	if err != nil {
//		return err
//	}
//	err = db.Migrate(ctx, pool, session.Migrations, session.MigrationsDir, db.DefaultMigrationsTable, log)
//
// [Healthcheck] and [Shutdown] return closures for the readiness probe and
// the server shutdown hooks.
package db
