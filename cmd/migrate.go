package cmd

import (
	"github.com/mytheresa/go-configurable-catalog/app/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Postgres)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Info("schema migrated")
			return nil
		},
	}
}
