package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/apply"
	"github.com/otterdog-go/otterdog/internal/diff"
	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

func newListBlueprintsCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-blueprints <organization>",
		Short: "List declared blueprints and which repositories they currently match",
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

			expected, err := loadExpected(ctx, cfg, org, "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, bp := range expected.Blueprints {
				fmt.Fprintf(out, "%s: rulesets=%v\n", bp.Name, bp.DefaultRulesets)

				for _, repo := range expected.Repositories {
					if bp.Matches(repo.Name) {
						fmt.Fprintf(out, "  %s\n", repo.Name)
					}
				}
			}

			return nil
		},
	}

	return cmd
}

func newApproveBlueprintsCommand(env *environment) *cobra.Command {
	var (
		deleteResources bool
		continueOnError bool
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "approve-blueprints <organization>",
		Short: "Apply every blueprint's default rulesets to its matching repositories",
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

			expected, err := loadExpected(ctx, cfg, org, "")
			if err != nil {
				return err
			}

			patches := blueprintPatches(expected)
			if len(patches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no blueprint gaps found")

				return nil
			}

			session, err := newOrgSession(ctx, env.logger(), cfg, newResolver(), org.Name)
			if err != nil {
				return err
			}

			opts := apply.Options{DeleteResources: deleteResources, ContinueOnError: continueOnError, DryRun: dryRun}

			result, err := apply.Run(ctx, env.logger(), session.Dispatcher, patches, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d addition(s), %d failure(s)\n", result.Additions, len(result.Failures))

			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteResources, "delete-resources", false, "allow destructive REMOVE patches to be applied")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "attempt every patch even after one fails")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log what would be applied without calling GitHub")

	return cmd
}

// blueprintPatches produces an ADD patch for every ruleset a blueprint
// names on a repository that doesn't yet declare a ruleset of that name,
// carrying the blueprint's own bypass actors onto the new ruleset
// (SPEC_FULL.md §C "approve-blueprints"). Repositories that already carry
// the ruleset by name are left untouched.
func blueprintPatches(org *model.Organization) []diff.LivePatch {
	orgRulesets := make(map[string]*model.OrganizationRuleset, len(org.Rulesets))
	for _, rs := range org.Rulesets {
		orgRulesets[rs.Name] = rs
	}

	var patches []diff.LivePatch

	for _, bp := range org.Blueprints {
		for _, repo := range org.Repositories {
			if !bp.Matches(repo.Name) {
				continue
			}

			existing := make(map[string]bool, len(repo.Rulesets))
			for _, rs := range repo.Rulesets {
				existing[rs.Name] = true
			}

			for _, name := range bp.DefaultRulesets {
				if existing[name] {
					continue
				}

				template, ok := orgRulesets[name]
				if !ok {
					continue
				}

				rs := &model.RepositoryRuleset{Ruleset: template.Ruleset}
				if actors, ok := bp.BypassActors.Get(); ok {
					rs.BypassActors = value.Of(actors)
				}

				patches = append(patches, diff.LivePatch{
					Operation: diff.OpAdd,
					Path:      "repositories[" + repo.Name + "].rulesets[" + name + "]",
					Object:    rs,
				})
			}
		}
	}

	return patches
}
