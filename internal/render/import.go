// Package render implements the import and render operations (C7/C8):
// reading an organization's live state into a declarative document, and
// formatting a declarative document for display (§4.8).
package render

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/otterdog-go/otterdog/internal/mapping"
	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/provider"
	"github.com/otterdog-go/otterdog/internal/provider/graphql"
)

// Reader is provider.Reader, named locally so callers outside
// internal/provider don't need to import it just to spell this type.
type Reader = provider.Reader

// BranchProtectionLister is satisfied by *graphql.Client.
type BranchProtectionLister interface {
	ListBranchProtectionRules(ctx context.Context, owner, repo string) ([]graphql.RuleAndID, error)
}

// Import fetches githubID's live state over REST and merges in branch
// protection rules over GraphQL (the one entity kind REST cannot serve,
// §4.1), running the per-repository branch-protection fetches with
// bounded parallelism (§4.8, §5 "reads during import/plan may run
// concurrently"; grounded on golang.org/x/sync/errgroup's SetLimit, the
// same package cloudbase-garm and kubernetes-sigs-prow use for bounded
// worker pools).
func Import(ctx context.Context, reader Reader, bp BranchProtectionLister, githubID string, concurrency int) (*model.Organization, error) {
	org, err := reader.GetOrganization(ctx, githubID)
	if err != nil {
		return nil, err
	}

	if bp == nil {
		return org, nil
	}

	if concurrency <= 0 {
		concurrency = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, repo := range org.Repositories {
		repo := repo

		g.Go(func() error {
			rules, err := bp.ListBranchProtectionRules(gctx, githubID, repo.Name)
			if err != nil {
				return err
			}

			repo.BranchProtectionRules = make([]*model.BranchProtectionRule, 0, len(rules))

			for _, r := range rules {
				rule := mapping.FromProviderBranchProtectionRule(r.Rule)
				repo.BranchProtectionRules = append(repo.BranchProtectionRules, &rule)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return org, nil
}
