package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/render"
)

func newShowCommand(env *environment) *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "show <organization>",
		Short: "Render an organization's configuration (default: expected; --live: current GitHub state)",
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

			var rendered []byte

			if live {
				session, err := newOrgSession(ctx, env.logger(), cfg, newResolver(), org.Name)
				if err != nil {
					return err
				}

				current, err := render.Import(ctx, session.REST, session.GraphQL, org.GithubID, 4)
				if err != nil {
					return err
				}

				rendered, err = render.Render(current)
				if err != nil {
					return err
				}
			} else {
				expected, err := loadExpected(ctx, cfg, org, "")
				if err != nil {
					return err
				}

				rendered, err = render.Render(expected)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(rendered))

			return nil
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "render the organization's current GitHub state instead of its declared configuration")

	return cmd
}
