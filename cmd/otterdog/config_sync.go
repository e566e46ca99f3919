package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/go-github/v84/github"
	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
)

// configFilePath builds the path of an organization's jsonnet source
// inside its config_repo (§6 "config_repo"), mirroring loadExpected's
// local-path convention.
func configFilePath(cfg *engineconfig.Config, org engineconfig.Organization) string {
	return org.GithubID + ".jsonnet"
}

func newFetchConfigCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-config <organization>",
		Short: "Download an organization's declarative configuration file from its config repository",
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

			path := configFilePath(cfg, org)

			content, _, _, err := session.REST.Repositories.GetContents(ctx, org.GithubID, org.ConfigRepo, path, nil)
			if err != nil {
				return errors.Wrapf(err, "fetching %s from %s/%s", path, org.GithubID, org.ConfigRepo)
			}

			data, err := content.GetContent()
			if err != nil {
				return errors.Wrap(err, "decoding config file content")
			}

			dest := filepath.Join(cfg.Defaults.Jsonnet.ConfigDir, org.ConfigRepo, path)

			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(data), 0o644); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "wrote", dest)

			return nil
		},
	}

	return cmd
}

func newPushConfigCommand(env *environment) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "push-config <organization>",
		Short: "Upload an organization's local declarative configuration file to its config repository",
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

			path := configFilePath(cfg, org)
			local := filepath.Join(cfg.Defaults.Jsonnet.ConfigDir, org.ConfigRepo, path)

			data, err := os.ReadFile(local)
			if err != nil {
				return err
			}

			return pushConfigFile(ctx, session, cfg, org, path, data, message)
		},
	}

	cmd.Flags().StringVar(&message, "message", "update configuration", "commit message for the config repository push")

	return cmd
}

func pushConfigFile(ctx context.Context, session *orgSession, cfg *engineconfig.Config, org engineconfig.Organization, path string, data []byte, message string) error {
	branch := cfg.Defaults.GitHub.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	existing, _, resp, err := session.REST.Repositories.GetContents(ctx, org.GithubID, org.ConfigRepo, path, nil)
	if err != nil && (resp == nil || resp.StatusCode != 404) {
		return errors.Wrapf(err, "checking existing %s in %s/%s", path, org.GithubID, org.ConfigRepo)
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: data,
		Branch:  github.Ptr(branch),
	}

	if existing != nil {
		opts.SHA = existing.SHA
		_, _, err = session.REST.Repositories.UpdateFile(ctx, org.GithubID, org.ConfigRepo, path, opts)
	} else {
		_, _, err = session.REST.Repositories.CreateFile(ctx, org.GithubID, org.ConfigRepo, path, opts)
	}

	return errors.Wrapf(err, "pushing %s to %s/%s", path, org.GithubID, org.ConfigRepo)
}
