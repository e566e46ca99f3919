package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/provider/web"
	"github.com/otterdog-go/otterdog/internal/secret"
)

// ErrWebCredentialsMissing is returned when an operation needs the web
// client but the organization's credentials don't carry a login.
var ErrWebCredentialsMissing = errors.New("web: organization credentials missing login/password/totp_secret")

func newWebClient(ctx context.Context, env *environment, org engineconfig.Organization) (*web.Client, error) {
	if org.Credentials.Login == "" || org.Credentials.Password == "" || org.Credentials.TwoFATOTP == "" {
		return nil, errors.Wrapf(ErrWebCredentialsMissing, "%q", org.Name)
	}

	client := web.NewClient(env.logger(), org.GithubID)

	if err := client.Login(ctx, org.Credentials.Login, org.Credentials.Password, secret.TOTPProvider{}, org.Credentials.TwoFATOTP); err != nil {
		return nil, err
	}

	return client, nil
}

func newWebLoginCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "web-login <organization>",
		Short: "Authenticate a web-UI session for an organization and verify the credentials work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engineconfig.Load(env.configPath())
			if err != nil {
				return err
			}

			org, ok := cfg.Find(args[0])
			if !ok {
				return ErrOrganizationNotFound
			}

			_, err = newWebClient(cmd.Context(), env, org)

			return err
		},
	}
}

func newInstallAppCommand(env *environment) *cobra.Command {
	var appSlug string

	cmd := &cobra.Command{
		Use:   "install-app <organization>",
		Short: "Install a GitHub App into the organization via the web UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engineconfig.Load(env.configPath())
			if err != nil {
				return err
			}

			org, ok := cfg.Find(args[0])
			if !ok {
				return ErrOrganizationNotFound
			}

			client, err := newWebClient(cmd.Context(), env, org)
			if err != nil {
				return err
			}

			return client.InstallApp(cmd.Context(), appSlug)
		},
	}

	cmd.Flags().StringVar(&appSlug, "app", "", "app slug to install")
	_ = cmd.MarkFlagRequired("app")

	return cmd
}

func newUninstallAppCommand(env *environment) *cobra.Command {
	var installationID int64

	cmd := &cobra.Command{
		Use:   "uninstall-app <organization>",
		Short: "Uninstall a GitHub App from the organization via the web UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engineconfig.Load(env.configPath())
			if err != nil {
				return err
			}

			org, ok := cfg.Find(args[0])
			if !ok {
				return ErrOrganizationNotFound
			}

			client, err := newWebClient(cmd.Context(), env, org)
			if err != nil {
				return err
			}

			return client.UninstallApp(cmd.Context(), installationID)
		},
	}

	cmd.Flags().Int64Var(&installationID, "installation-id", 0, "installation ID to uninstall")
	_ = cmd.MarkFlagRequired("installation-id")

	return cmd
}

func newReviewAppPermissionsCommand(env *environment) *cobra.Command {
	var (
		requestID string
		approve   bool
	)

	cmd := &cobra.Command{
		Use:   "review-app-permissions <organization>",
		Short: "Approve or deny a pending app-permission-update request via the web UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engineconfig.Load(env.configPath())
			if err != nil {
				return err
			}

			org, ok := cfg.Find(args[0])
			if !ok {
				return ErrOrganizationNotFound
			}

			client, err := newWebClient(cmd.Context(), env, org)
			if err != nil {
				return err
			}

			return client.ReviewAppPermissions(cmd.Context(), requestID, approve)
		},
	}

	cmd.Flags().StringVar(&requestID, "request-id", "", "permission-update request ID")
	cmd.Flags().BoolVar(&approve, "approve", false, "approve the request instead of denying it")
	_ = cmd.MarkFlagRequired("request-id")

	return cmd
}
