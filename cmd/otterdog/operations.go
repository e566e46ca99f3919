package main

import (
	"fmt"

	"github.com/google/go-github/v84/github"
	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
)

func newSessionForArg(cmd *cobra.Command, env *environment, orgArg string) (*orgSession, *engineconfig.Config, engineconfig.Organization, error) {
	cfg, err := engineconfig.Load(env.configPath())
	if err != nil {
		return nil, nil, engineconfig.Organization{}, err
	}

	org, ok := cfg.Find(orgArg)
	if !ok {
		return nil, nil, engineconfig.Organization{}, ErrOrganizationNotFound
	}

	session, err := newOrgSession(cmd.Context(), env.logger(), cfg, newResolver(), org.Name)
	if err != nil {
		return nil, nil, engineconfig.Organization{}, err
	}

	return session, cfg, org, nil
}

func newListMembersCommand(env *environment) *cobra.Command {
	var twoFactorDisabled bool

	cmd := &cobra.Command{
		Use:   "list-members <organization>",
		Short: "List organization members, optionally only those without two-factor authentication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, _, err := newSessionForArg(cmd, env, args[0])
			if err != nil {
				return err
			}

			opts := &github.ListMembersOptions{ListOptions: github.ListOptions{PerPage: 100}}
			if twoFactorDisabled {
				opts.Filter2faDisabled = true
			}

			out := cmd.OutOrStdout()

			for {
				members, resp, err := session.REST.Organizations.ListMembers(cmd.Context(), session.Org.GithubID, opts)
				if err != nil {
					return err
				}

				for _, m := range members {
					fmt.Fprintln(out, m.GetLogin())
				}

				if resp.NextPage == 0 {
					break
				}

				opts.Page = resp.NextPage
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&twoFactorDisabled, "two-factor-disabled", false, "list only members without two-factor authentication enabled")

	return cmd
}

func newListAdvisoriesCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-advisories <organization>",
		Short: "List repository security advisories across the organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, _, err := newSessionForArg(cmd, env, args[0])
			if err != nil {
				return err
			}

			opts := &github.ListRepositorySecurityAdvisoriesOptions{ListCursorOptions: github.ListCursorOptions{PerPage: 100}}

			out := cmd.OutOrStdout()

			for {
				advisories, resp, err := session.REST.SecurityAdvisories.ListRepositorySecurityAdvisoriesForOrg(cmd.Context(), session.Org.GithubID, opts)
				if err != nil {
					return err
				}

				for _, a := range advisories {
					fmt.Fprintf(out, "%s\t%s\t%s\n", a.GetGHSAID(), a.GetSeverity(), a.GetSummary())
				}

				if resp.Cursor == "" {
					break
				}

				opts.Cursor = resp.Cursor
			}

			return nil
		},
	}

	return cmd
}

func newListAppsCommand(env *environment) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list-apps <organization>",
		Short: "List GitHub Apps installed in the organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, _, err := newSessionForArg(cmd, env, args[0])
			if err != nil {
				return err
			}

			opts := &github.ListOptions{PerPage: 100}

			out := cmd.OutOrStdout()

			for {
				installations, resp, err := session.REST.Organizations.ListInstallations(cmd.Context(), session.Org.GithubID, opts)
				if err != nil {
					return err
				}

				for _, inst := range installations.Installations {
					if asJSON {
						fmt.Fprintf(out, "{\"app\":%q,\"id\":%d}\n", inst.GetAppSlug(), inst.GetID())
					} else {
						fmt.Fprintln(out, inst.GetAppSlug())
					}
				}

				if resp.NextPage == 0 {
					break
				}

				opts.Page = resp.NextPage
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per installed app instead of its slug")

	return cmd
}

func newDispatchWorkflowCommand(env *environment) *cobra.Command {
	var (
		repo     string
		workflow string
		ref      string
	)

	cmd := &cobra.Command{
		Use:   "dispatch-workflow <organization>",
		Short: "Trigger a workflow_dispatch event for a repository workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, _, err := newSessionForArg(cmd, env, args[0])
			if err != nil {
				return err
			}

			event := github.CreateWorkflowDispatchEventRequest{Ref: ref}

			_, err = session.REST.Actions.CreateWorkflowDispatchEventByFileName(cmd.Context(), session.Org.GithubID, repo, workflow, event)

			return err
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository name")
	cmd.Flags().StringVar(&workflow, "workflow", "", "workflow file name, e.g. ci.yml")
	cmd.Flags().StringVar(&ref, "ref", "main", "git ref to run the workflow on")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("workflow")

	return cmd
}

func newDeleteFileCommand(env *environment) *cobra.Command {
	var (
		repo    string
		path    string
		branch  string
		message string
	)

	cmd := &cobra.Command{
		Use:   "delete-file <organization>",
		Short: "Delete a file from a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, _, err := newSessionForArg(cmd, env, args[0])
			if err != nil {
				return err
			}

			existing, _, resp, err := session.REST.Repositories.GetContents(cmd.Context(), session.Org.GithubID, repo, path, &github.RepositoryContentGetOptions{Ref: branch})
			if err != nil {
				return err
			}

			_ = resp

			opts := &github.RepositoryContentFileOptions{
				Message: github.Ptr(message),
				SHA:     existing.SHA,
				Branch:  github.Ptr(branch),
			}

			_, _, err = session.REST.Repositories.DeleteFile(cmd.Context(), session.Org.GithubID, repo, path, opts)

			return err
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository name")
	cmd.Flags().StringVar(&path, "path", "", "path of the file to delete")
	cmd.Flags().StringVar(&branch, "branch", "main", "branch to delete the file from")
	cmd.Flags().StringVar(&message, "message", "delete file", "commit message")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func newOpenPullRequestCommand(env *environment) *cobra.Command {
	var (
		repo  string
		title string
		head  string
		base  string
		body  string
	)

	cmd := &cobra.Command{
		Use:   "open-pull-request <organization>",
		Short: "Open a pull request on a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, _, err := newSessionForArg(cmd, env, args[0])
			if err != nil {
				return err
			}

			pr, _, err := session.REST.PullRequests.Create(cmd.Context(), session.Org.GithubID, repo, &github.NewPullRequest{
				Title: github.Ptr(title),
				Head:  github.Ptr(head),
				Base:  github.Ptr(base),
				Body:  github.Ptr(body),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pr.GetHTMLURL())

			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "repository name")
	cmd.Flags().StringVar(&title, "title", "", "pull request title")
	cmd.Flags().StringVar(&head, "head", "", "branch to merge from")
	cmd.Flags().StringVar(&base, "base", "main", "branch to merge into")
	cmd.Flags().StringVar(&body, "body", "", "pull request description")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("head")

	return cmd
}
