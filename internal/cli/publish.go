package cli

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/NefariousNGGA/backend/internal/infrastructure/providers"
)

// NewPublishCommand creates the publish command. It authorizes with the
// configured admin token like the HTTP route does.
func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <submission id>",
		Short: "Publish a pending submission as a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid submission id %q", args[0])
			}

			conf, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			db, err := providers.NewDatabase(conf.Server)
			if err != nil {
				return errors.Wrap(err, "failed to connect database")
			}
			uc := providers.NewUsecases(conf, db, providers.NewPostCache(conf.Server), nil)

			post, err := uc.Submission.Publish(cmd.Context(), id, conf.Auth.AdminToken)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published submission %d as post %d\n", id, post.ID)
			return nil
		},
	}
}
