package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mytheresa/go-configurable-catalog/app/config"
	"github.com/mytheresa/go-configurable-catalog/app/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

// NewRootCommand builds the catalog CLI.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Configurable product catalog service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load instead of ./.env")

	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand())
	return root
}

func Execute() error {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func setup() (*config.Config, *zap.SugaredLogger, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
