package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/NefariousNGGA/backend/internal/infrastructure/providers"
)

// NewIssueCommand creates the issue command. The raw credential is printed
// once and never stored.
func NewIssueCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "issue <@handle> <display name>",
		Short: "Register an identity and print its credential",
		Example: `  lair issue @plato Plato
  lair issue @socrates "Socrates of Athens"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			db, err := providers.NewDatabase(conf.Server)
			if err != nil {
				return errors.Wrap(err, "failed to connect database")
			}
			uc := providers.NewUsecases(conf, db, providers.NewPostCache(conf.Server), nil)

			issued, err := uc.Identity.Issue(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:         %d\n", issued.Identity.ID)
			fmt.Fprintf(out, "username:   %s\n", issued.Identity.Handle)
			fmt.Fprintf(out, "token:      %s\n", issued.Credential)
			fmt.Fprintf(out, "lookup key: %s\n", issued.LookupKey)
			return nil
		},
	}
}
