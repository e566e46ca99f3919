package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/apply"
)

func newApplyCommand(env *environment) *cobra.Command {
	var (
		updateWebhooks  bool
		updateSecrets   bool
		deleteResources bool
		continueOnError bool
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "apply <organization>",
		Short: "Reconcile an organization's live GitHub state with its declared configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patches, session, _, err := computePlan(cmd, env, args[0], updateWebhooks, updateSecrets)
			if err != nil {
				return err
			}

			opts := apply.Options{
				DeleteResources: deleteResources,
				ContinueOnError: continueOnError,
				DryRun:          dryRun,
			}

			result, err := apply.Run(cmd.Context(), env.logger(), session.Dispatcher, patches, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d addition(s), %d change(s), %d deletion(s), %d failure(s)\n",
				result.Additions, result.Changes, result.Deletions, len(result.Failures))

			return nil
		},
	}

	cmd.Flags().BoolVar(&updateWebhooks, "update-webhooks", false, "force every declared webhook to be re-applied")
	cmd.Flags().BoolVar(&updateSecrets, "update-secrets", false, "force every declared secret to be re-applied")
	cmd.Flags().BoolVar(&deleteResources, "delete-resources", false, "allow destructive REMOVE patches to be applied")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "attempt every patch even after one fails")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log what would be applied without calling GitHub")

	return cmd
}
