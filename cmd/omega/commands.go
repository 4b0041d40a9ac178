package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/omega/animator/internal/orm"
	"github.com/omega/animator/internal/service"
	"github.com/omega/animator/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			storage, err := orm.Open(ProvideStorageConfig(*cfg))
			if err != nil {
				return err
			}
			defer storage.Close()

			if err := storage.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok: schema migrated")
			return nil
		},
	}
}

type generateResult struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Provider   string `json:"provider"`
	SceneClass string `json:"scene_class,omitempty"`
	Attempts   int    `json:"attempts"`
	OutputURL  string `json:"output_url,omitempty"`
	Error      string `json:"error,omitempty"`
	Script     string `json:"script"`
}

func generateCmd() *cobra.Command {
	var in service.GenerateInput
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a script once and optionally render it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(cfg *config.Config, app *App, log *zap.Logger) error {
				sc, err := app.Scripts.Generate(cmd.Context(), in)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(generateResult{
					ID:         sc.ID,
					Status:     string(sc.Status),
					Provider:   sc.Provider,
					SceneClass: sc.SceneClass,
					Attempts:   sc.Attempts,
					OutputURL:  sc.OutputURL,
					Error:      sc.ErrorMessage,
					Script:     sc.Content,
				})
			})
		},
	}
	cmd.Flags().StringVar(&in.Prompt, "prompt", "", "animation description")
	cmd.Flags().StringVar(&in.Provider, "provider", string(service.DefaultProvider), "model provider kind")
	cmd.Flags().BoolVar(&in.Execute, "execute", false, "render the generated script")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func providersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Manage the model provider catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import FILE",
		Short: "Upsert providers from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			return withApp(cmd, func(cfg *config.Config, app *App, log *zap.Logger) error {
				n, err := app.Providers.Import(cmd.Context(), data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d providers imported\n", n)
				return nil
			})
		},
	})
	return cmd
}
