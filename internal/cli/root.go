// Package cli wires the lego-store command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/LeoR1u/ProyectoLegos/internal/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewRootCommand creates the root command for the lego-store binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lego-store",
		Short: "Lego Store - cart sessions, orders and tickets",
		Long:  "Serves the Lego Store storefront: session carts, pending carts across logins, checkout and PDF tickets.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := validLogLevels[opts.LogLevel]
			if !ok {
				return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", opts.LogLevel)
			}

			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to the YAML config (defaults to CONFIG_PATH, then config/local.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	return config.LoadConfigFromPath(config.ResolvePath(o.ConfigPath))
}
