package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/validate"
)

// validateQuiet runs validation without rendering, for callers (plan,
// apply) that only need to gate on HasErrors.
func validateQuiet(org *model.Organization) *model.ValidationContext {
	return validate.Run(org)
}

// ErrValidationFailed is returned by validate/plan/apply when the
// expected configuration carries at least one ERROR-level finding (§4.6).
var ErrValidationFailed = errors.New("validation failed")

func newValidateCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <organization>",
		Short: "Validate an organization's declarative configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := engineconfig.Load(env.configPath())
			if err != nil {
				return err
			}

			org, ok := cfg.Find(args[0])
			if !ok {
				return errors.Wrapf(ErrOrganizationNotFound, "%q", args[0])
			}

			expected, err := loadExpected(ctx, cfg, org, "")
			if err != nil {
				return err
			}

			vctx := validate.Run(expected)
			validate.Render(cmd.OutOrStdout(), vctx)

			if vctx.HasErrors() {
				return errors.Wrapf(ErrValidationFailed, "%q", org.Name)
			}

			return nil
		},
	}

	return cmd
}
