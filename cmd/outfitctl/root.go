package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outfitpicker/server/internal/app"
	"github.com/outfitpicker/server/internal/shared/config"
)

// cli holds state shared by all subcommands.
type cli struct {
	configFile string
	envFile    string
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "outfitctl",
		Short:         "Manage the wardrobe from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (default searches ./config.yaml, ./configs, /etc/outfitpicker)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file applied to unset environment variables")

	root.AddCommand(
		newOutfitCommand(c),
		newUploadCommand(c),
		newUploadDirCommand(c),
		newMigrateCommand(c),
	)
	return root
}

// loadConfig loads and validates configuration.
func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.Options{ConfigFile: c.configFile, EnvFile: c.envFile})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// dependencies wires the application for a single command run.
func (c *cli) dependencies(ctx context.Context) (*app.Dependencies, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return app.InitializeDependencies(ctx, cfg)
}
