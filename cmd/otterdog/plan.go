package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/diff"
	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/render"
)

func newPlanCommand(env *environment) *cobra.Command {
	var updateWebhooks, updateSecrets bool

	cmd := &cobra.Command{
		Use:   "plan <organization>",
		Short: "Show the patches apply would perform, without touching GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patches, _, _, err := computePlan(cmd, env, args[0], updateWebhooks, updateSecrets)
			if err != nil {
				return err
			}

			renderPlan(cmd, patches)

			return nil
		},
	}

	cmd.Flags().BoolVar(&updateWebhooks, "update-webhooks", false, "force every declared webhook to be re-applied")
	cmd.Flags().BoolVar(&updateSecrets, "update-secrets", false, "force every declared secret to be re-applied")

	return cmd
}

func newLocalPlanCommand(env *environment) *cobra.Command {
	var suffix string

	cmd := &cobra.Command{
		Use:   "local-plan <organization>",
		Short: "Diff an organization's base declaration against a suffixed variant, without contacting GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := engineconfig.Load(env.configPath())
			if err != nil {
				return err
			}

			org, ok := cfg.Find(args[0])
			if !ok {
				return ErrOrganizationNotFound
			}

			base, err := loadExpected(ctx, cfg, org, "")
			if err != nil {
				return err
			}

			variant, err := loadExpected(ctx, cfg, org, suffix)
			if err != nil {
				return err
			}

			patches := diff.Generate(diff.Context{}, variant, base)
			renderPlan(cmd, patches)

			return nil
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", "", "suffix appended to the organization's jsonnet file name to load the variant to compare against")
	_ = cmd.MarkFlagRequired("suffix")

	return cmd
}

// computePlan loads and validates organization name, imports its live
// state, and generates the ordered patch list (§4.4) reconciling live
// into expected. Returns the session alongside so apply can reuse it
// without re-authenticating.
func computePlan(cmd *cobra.Command, env *environment, name string, updateWebhooks, updateSecrets bool) ([]diff.LivePatch, *orgSession, *engineconfig.Config, error) {
	ctx := cmd.Context()

	cfg, err := engineconfig.Load(env.configPath())
	if err != nil {
		return nil, nil, nil, err
	}

	org, ok := cfg.Find(name)
	if !ok {
		return nil, nil, nil, ErrOrganizationNotFound
	}

	expected, err := loadExpected(ctx, cfg, org, "")
	if err != nil {
		return nil, nil, nil, err
	}

	vctx := validateQuiet(expected)
	if vctx.HasErrors() {
		return nil, nil, nil, ErrValidationFailed
	}

	session, err := newOrgSession(ctx, env.logger(), cfg, newResolver(), name)
	if err != nil {
		return nil, nil, nil, err
	}

	live, err := render.Import(ctx, session.REST, session.GraphQL, org.GithubID, 4)
	if err != nil {
		return nil, nil, nil, err
	}

	dctx := diff.Context{UpdateWebhooks: updateWebhooks, UpdateSecrets: updateSecrets}

	return diff.Generate(dctx, expected, live), session, cfg, nil
}

func renderPlan(cmd *cobra.Command, patches []diff.LivePatch) {
	out := cmd.OutOrStdout()

	if len(patches) == 0 {
		fmt.Fprintln(out, "no changes")

		return
	}

	for _, p := range patches {
		if p.Operation == diff.OpChange && len(p.Changes) > 0 {
			fmt.Fprintf(out, "%s %s\n", p.Operation, p.Path)

			for field, c := range p.Changes {
				fmt.Fprintf(out, "  %s: %v -> %v\n", field, c.From, c.To)
			}

			continue
		}

		fmt.Fprintf(out, "%s %s\n", p.Operation, p.Path)
	}
}
