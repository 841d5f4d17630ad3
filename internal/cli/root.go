package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/NefariousNGGA/backend/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the root command for the lair CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lair",
		Short: "Plato's Lair backend",
		Long:  "Serve the Plato's Lair API and run operator tasks against its database.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a yaml config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewIssueCommand(opts))
	cmd.AddCommand(NewPublishCommand(opts))

	return cmd
}

func (o *RootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.ConfigPath)
}
