package cmd

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/spf13/cobra"
)

//go:embed sql/seed.sql
var seedSQL string

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog content with demo products",
		Long:  "Truncates every catalog table and loads a configurable t-shirt with its variants. Run migrate first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := sql.Open("postgres", cfg.Postgres.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := runSeed(cmd.Context(), db); err != nil {
				return err
			}
			logger.Infow("catalog seeded", "database", cfg.Postgres.DB)
			return nil
		},
	}
}

func runSeed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, seedSQL); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("seed failed (%s %s): %s", pqErr.Code, pqErr.Code.Name(), pqErr.Message)
		}
		return fmt.Errorf("seed failed: %w", err)
	}
	return tx.Commit()
}
