package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ghkeeper/internal/config"
	"github.com/dmitrymomot/ghkeeper/pkg/db"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
	"github.com/dmitrymomot/ghkeeper/pkg/session"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the session table migrations to DATABASE_URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbCfg, err := config.LoadDatabase()
		if err != nil {
			return err
		}
		log := logger.New(logger.Config{Level: "info", Format: "text"})

		pool, err := db.Open(cmd.Context(), dbCfg.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Migrate(cmd.Context(), pool, session.Migrations, session.MigrationsDir, db.DefaultMigrationsTable, log); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}
