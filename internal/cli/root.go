// Package cli defines the atbot command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edgard/atbot/internal/bot"
	"github.com/edgard/atbot/internal/config"
	"github.com/edgard/atbot/internal/logger"
	"github.com/edgard/atbot/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "atbot",
		Short:         "A chat bot that picks between options and remembers who people are",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config file (default ./config.yaml)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewConsoleCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))

	return cmd
}

// setup loads the configuration and builds the logger on logOut.
func setup(opts *RootOptions, logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logOut, cfg.Log.Level, cfg.Log.JSON)
	log.Debug("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON, "backend", cfg.Store.Backend)
	return cfg, log, nil
}

// openStore is bot.OpenStore with a nicer error.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, error) {
	st, err := bot.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	return st, nil
}
