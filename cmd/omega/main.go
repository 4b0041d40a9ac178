package main

import (
	"fmt"
	"os"

	"github.com/omega/animator/internal/orm"
	"github.com/omega/animator/pkg/config"
	"github.com/omega/animator/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	ConfigPath string
}

var rf rootFlags

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "omega",
		Short:         "Generate and render Manim animations from natural language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&rf.ConfigPath, "config", "configs/config.yaml", "path to config file")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(executorCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(generateCmd())
	cmd.AddCommand(providersCmd())
	return cmd
}

// bootstrap loads config and builds the logger shared by every subcommand.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(rf.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, zapLogger, nil
}

// withApp opens storage, wires the application and seeds providers declared
// in the config file.
func withApp(cmd *cobra.Command, fn func(cfg *config.Config, app *App, log *zap.Logger) error) error {
	cfg, zapLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	storage, err := orm.New(ProvideStorageConfig(*cfg), zapLogger)
	if err != nil {
		return err
	}
	defer storage.Close()

	app, err := InitializeApp(zapLogger, *cfg, storage)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	if len(cfg.AI.Providers) > 0 {
		n, err := app.Providers.Seed(cmd.Context(), cfg.AI.Providers)
		if err != nil {
			return fmt.Errorf("failed to seed providers: %w", err)
		}
		zapLogger.Info("providers seeded", zap.Int("count", n))
	}
	return fn(cfg, app, zapLogger)
}
