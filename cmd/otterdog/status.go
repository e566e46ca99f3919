package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
)

func newCheckStatusCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-status <organization>",
		Short: "Verify GitHub reachability and current rate limit for an organization's credentials",
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

			limits, _, err := session.REST.RateLimit.Get(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "core: %d/%d remaining (resets %s)\n",
				limits.Core.Remaining, limits.Core.Limit, limits.Core.Reset.Time)

			return nil
		},
	}

	return cmd
}

func newCheckTokenPermissionsCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-token-permissions <organization>",
		Short: "Print the OAuth scopes granted to an organization's credentials",
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

			_, resp, err := session.REST.Users.Get(ctx, "")
			if err != nil {
				return err
			}

			scopes := resp.Header.Get("X-OAuth-Scopes")
			if scopes == "" {
				scopes = "(fine-grained or App token; no classic scope header present)"
			}

			fmt.Fprintln(cmd.OutOrStdout(), scopes)

			return nil
		},
	}

	return cmd
}
