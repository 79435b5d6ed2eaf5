package main

import (
	"fmt"
	"os"

	"github.com/meur/shortbox/internal/config"
	"github.com/meur/shortbox/internal/logging"
	"github.com/meur/shortbox/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shortbox",
		Short:         "Track a personal comic collection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("SHORTBOX_CONFIG"), "YAML config file")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newImportCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves and validates the configuration and builds the logger
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// openStore opens the configured database, which must have a DSN
func openStore(cfg *config.Config) (*storage.Store, error) {
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("no database configured; set DB_DSN or database.dsn")
	}
	store, err := storage.New(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}
	return store, nil
}
