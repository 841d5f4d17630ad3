package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/NefariousNGGA/backend/internal/infrastructure/providers"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			db, err := providers.NewDatabase(conf.Server)
			if err != nil {
				return errors.Wrap(err, "failed to connect database")
			}
			if err := providers.MigrateDatabase(db); err != nil {
				return errors.Wrap(err, "failed to migrate database")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
