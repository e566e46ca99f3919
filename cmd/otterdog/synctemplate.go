package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/templatesync"
)

// ErrBlueprintNotFound is returned when --blueprint names a blueprint the
// organization doesn't declare.
var ErrBlueprintNotFound = errors.New("blueprint not found")

func newSyncTemplateCommand(env *environment) *cobra.Command {
	var (
		blueprintName string
		branchName    string
		fileMappings  []string
	)

	cmd := &cobra.Command{
		Use:   "sync-template <organization>",
		Short: "Propagate template files to every repository a blueprint matches, opening one pull request per repository",
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

			var bp *model.Blueprint
			for _, b := range expected.Blueprints {
				if b.Name == blueprintName {
					bp = b

					break
				}
			}

			if bp == nil {
				return errors.Wrapf(ErrBlueprintNotFound, "%q", blueprintName)
			}

			files, err := loadTemplateFiles(fileMappings)
			if err != nil {
				return err
			}

			session, err := newOrgSession(ctx, env.logger(), cfg, newResolver(), org.Name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, repo := range expected.Repositories {
				if !bp.Matches(repo.Name) {
					continue
				}

				defaultBranch := repo.DefaultBranch.GetOr("main")

				result, err := templatesync.Sync(ctx, env.logger(), session.REST.Client, org.GithubID, repo.Name, defaultBranch, branchName, files, "Synced from blueprint "+bp.Name)
				if err != nil {
					fmt.Fprintf(out, "%s: error: %v\n", repo.Name, err)

					continue
				}

				if result.Skipped {
					fmt.Fprintf(out, "%s: up to date\n", repo.Name)

					continue
				}

				fmt.Fprintf(out, "%s: %s\n", repo.Name, result.PRURL)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&blueprintName, "blueprint", "", "name of the blueprint whose matching repositories receive the template files")
	cmd.Flags().StringVar(&branchName, "branch", "sync-template", "branch name used for the sync commit/pull request")
	cmd.Flags().StringArrayVar(&fileMappings, "file", nil, "local-path:dest-path mapping to sync, may be repeated")
	_ = cmd.MarkFlagRequired("blueprint")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func loadTemplateFiles(mappings []string) ([]templatesync.File, error) {
	files := make([]templatesync.File, 0, len(mappings))

	for _, m := range mappings {
		local, dest, ok := strings.Cut(m, ":")
		if !ok {
			return nil, errors.Newf("--file %q must be \"local-path:dest-path\"", m)
		}

		content, err := os.ReadFile(local)
		if err != nil {
			return nil, err
		}

		files = append(files, templatesync.File{Dest: dest, Content: content})
	}

	return files, nil
}
