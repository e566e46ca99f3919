package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/render"
)

func newImportCommand(env *environment) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "import <organization>",
		Short: "Fetch an organization's live GitHub state and write it as a declarative document (§4.8 C8)",
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

			session, err := newOrgSession(ctx, env.logger(), cfg, newResolver(), org.Name)
			if err != nil {
				return err
			}

			current, err := render.Import(ctx, session.REST, session.GraphQL, org.GithubID, 4)
			if err != nil {
				return err
			}

			rendered, err := render.Render(current)
			if err != nil {
				return err
			}

			if outDir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(rendered))

				return nil
			}

			path := filepath.Join(outDir, org.GithubID+".json")

			if err := os.WriteFile(path, rendered, 0o644); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory to write the imported document into (default: print to stdout)")

	return cmd
}

func newCanonicalDiffCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonical-diff <organization>",
		Short: "Show the JSON merge patch between the expected configuration and its live GitHub state",
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

			session, err := newOrgSession(ctx, env.logger(), cfg, newResolver(), org.Name)
			if err != nil {
				return err
			}

			live, err := render.Import(ctx, session.REST, session.GraphQL, org.GithubID, 4)
			if err != nil {
				return err
			}

			patch, err := render.CanonicalDiff(expected, live)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(patch))

			return nil
		},
	}

	return cmd
}
