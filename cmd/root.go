package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"app-inventory/core/config"
	"app-inventory/core/database"
	"app-inventory/core/graph"
	"app-inventory/core/logger"
	"app-inventory/core/storage"
	"app-inventory/feature/export"
	"app-inventory/feature/inventory"
	"app-inventory/feature/metadata"
	"app-inventory/feature/pipeline"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intune-apps",
		Short: "Export the Intune application inventory",
		Long: `Fetches the managed application inventory of a Microsoft Intune tenant,
stores every distinct app in a local database, optionally enriches each one with
its public App Store or Google Play listing, and exports the table to CSV and JSON.

Examples:
  # Credentials from the environment
  TENANT_ID=... CLIENT_ID=... CLIENT_SECRET=... intune-apps

  # Enrich with store metadata and write output/weekly.{csv,json}
  CLIENT_SECRET=... intune-apps --tenantId <id> --clientId <id> --metadata --output weekly`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInventory,
	}

	cmd.Flags().String("tenantId", "", "Entra ID tenant ID (or TENANT_ID)")
	cmd.Flags().String("clientId", "", "App registration client ID (or CLIENT_ID)")
	cmd.Flags().Bool("debug", false, "Enable debug logging")
	cmd.Flags().Bool("metadata", false, "Enrich apps with App Store and Google Play metadata")
	cmd.Flags().String("output", "intune_apps", "Base name of the exported CSV and JSON files")
	return cmd
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func runInventory(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Credentials are checked before any network call
	if err := cfg.Graph.Validate(); err != nil {
		return err
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	l = logger.WithRunID(l, uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, cfg, l)
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx)
	if summary != nil {
		printSummary(cmd.OutOrStdout(), summary)
	}
	return err
}

// buildPipeline connects the local store and wires every phase from the configuration.
func buildPipeline(ctx context.Context, cfg *config.Config, l *zap.Logger) (*pipeline.Pipeline, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	l.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("name", cfg.Database.Name),
	)

	store := inventory.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}

	var upload *export.Upload
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		upload = &export.Upload{
			Client: client,
			Bucket: cfg.Storage.Bucket,
			Prefix: cfg.Storage.Prefix,
			Region: cfg.Storage.Region,
		}
	}

	var opts []pipeline.Option
	if cfg.Metadata.Enabled {
		enricher := metadata.NewEnricher(store, metadata.NewProviders(cfg.Metadata), cfg.Metadata.Interval(), l)
		opts = append(opts, pipeline.WithEnricher(enricher))
	}

	return pipeline.New(
		graph.NewTokenProvider(cfg.Graph, nil),
		graph.NewClient(cfg.Graph, nil, l),
		inventory.NewIngester(store, l),
		export.NewExporter(store, cfg.Export.Dir, upload, l),
		cfg.Export.Name,
		l,
		opts...,
	), nil
}
