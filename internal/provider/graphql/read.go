package graphql

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/shurcooL/graphql"

	"github.com/otterdog-go/otterdog/internal/mapping"
)

type actorListItemNode struct {
	Actor struct {
		Typename string `graphql:"__typename"`
		User     struct {
			Login graphql.String
		} `graphql:"... on User"`
		Team struct {
			CombinedSlug graphql.String
		} `graphql:"... on Team"`
		App struct {
			Slug graphql.String
		} `graphql:"... on App"`
	}
}

func (n actorListItemNode) token() string {
	switch n.Actor.Typename {
	case "User":
		return "@" + string(n.Actor.User.Login)
	case "Team":
		return "@" + string(n.Actor.Team.CombinedSlug)
	case "App":
		return string(n.Actor.App.Slug)
	default:
		return ""
	}
}

type branchProtectionRuleNode struct {
	ID                           graphql.ID
	Pattern                      graphql.String
	RequiresApprovingReviews     graphql.Boolean
	RequiredApprovingReviewCount graphql.Int
	DismissesStaleReviews        graphql.Boolean
	RequiresCodeOwnerReviews     graphql.Boolean
	RequiresStatusChecks         graphql.Boolean
	RequiresStrictStatusChecks   graphql.Boolean
	RequiredStatusCheckContexts  []graphql.String
	RequiresCommitSignatures     graphql.Boolean
	RequiresLinearHistory        graphql.Boolean
	RequiresDeployments          graphql.Boolean
	RequiredDeploymentEnvironments []graphql.String
	RequiresConversationResolution graphql.Boolean
	LockBranch                   graphql.Boolean
	AllowsForcePushes            graphql.Boolean
	AllowsDeletions              graphql.Boolean
	IsAdminEnforced              graphql.Boolean
	PushAllowances struct {
		Nodes []actorListItemNode
	} `graphql:"pushAllowances(first: 100)"`
	ReviewDismissalAllowances struct {
		Nodes []actorListItemNode
	} `graphql:"reviewDismissalAllowances(first: 100)"`
	BypassPullRequestAllowances struct {
		Nodes []actorListItemNode
	} `graphql:"bypassPullRequestAllowances(first: 100)"`
	BypassForcePushAllowances struct {
		Nodes []actorListItemNode
	} `graphql:"bypassForcePushAllowances(first: 100)"`
}

func (n branchProtectionRuleNode) toDTO() (string, mapping.BranchProtectionRuleNode) {
	contexts := make([]string, len(n.RequiredStatusCheckContexts))
	for i, c := range n.RequiredStatusCheckContexts {
		contexts[i] = string(c)
	}

	envs := make([]string, len(n.RequiredDeploymentEnvironments))
	for i, e := range n.RequiredDeploymentEnvironments {
		envs[i] = string(e)
	}

	return fmt.Sprint(n.ID), mapping.BranchProtectionRuleNode{
		Pattern:                        string(n.Pattern),
		RequiresApprovingReviews:       bool(n.RequiresApprovingReviews),
		RequiredApprovingReviewCount:   int(n.RequiredApprovingReviewCount),
		DismissesStaleReviews:          bool(n.DismissesStaleReviews),
		RequiresCodeOwnerReviews:       bool(n.RequiresCodeOwnerReviews),
		RequiresStatusChecks:           bool(n.RequiresStatusChecks),
		RequiresStrictStatusChecks:     bool(n.RequiresStrictStatusChecks),
		RequiredStatusCheckContexts:    contexts,
		RequiresCommitSignatures:       bool(n.RequiresCommitSignatures),
		RequiresLinearHistory:          bool(n.RequiresLinearHistory),
		RequiresDeployments:            bool(n.RequiresDeployments),
		RequiredDeploymentEnvironments: envs,
		RequiresConversationResolution: bool(n.RequiresConversationResolution),
		LockBranch:                     bool(n.LockBranch),
		AllowsForcePushes:              bool(n.AllowsForcePushes),
		AllowsDeletions:                bool(n.AllowsDeletions),
		IsAdminEnforced:                bool(n.IsAdminEnforced),
		PushRestrictions:               tokensOf(n.PushAllowances.Nodes),
		ReviewDismissalAllowances:      tokensOf(n.ReviewDismissalAllowances.Nodes),
		BypassPullRequestAllowances:    tokensOf(n.BypassPullRequestAllowances.Nodes),
		BypassForcePushAllowances:      tokensOf(n.BypassForcePushAllowances.Nodes),
	}
}

func tokensOf(items []actorListItemNode) []string {
	out := make([]string, 0, len(items))

	for _, it := range items {
		if t := it.token(); t != "" {
			out = append(out, t)
		}
	}

	return out
}

// RuleAndID pairs a decoded rule with the node ID it was created under, so
// callers (internal/diff, via internal/render's import path) can match
// rules for update/delete without a second lookup.
type RuleAndID struct {
	ID   graphql.ID
	Rule mapping.BranchProtectionRuleNode
}

// ListBranchProtectionRules fetches every branch protection rule for
// owner/repo, paginating the outer connection (§4.1 component C7, the
// import half for the one entity kind REST cannot serve). Each rule's
// four allowance lists are bounded to 100 entries in a single page; the
// original's per-rule pagination (graphql.py's _async_fill_paged_results)
// is generalized here to a fixed-size page since declarative configs
// rarely name more than a handful of bypass actors per rule.
func (c *Client) ListBranchProtectionRules(ctx context.Context, owner, repo string) ([]RuleAndID, error) {
	var out []RuleAndID

	var after *graphql.String

	for {
		var q struct {
			Repository struct {
				BranchProtectionRules struct {
					Nodes    []branchProtectionRuleNode
					PageInfo struct {
						EndCursor   graphql.String
						HasNextPage graphql.Boolean
					}
				} `graphql:"branchProtectionRules(first: 50, after: $after)"`
			} `graphql:"repository(owner: $owner, name: $name)"`
		}

		vars := map[string]any{
			"owner": graphql.String(owner),
			"name":  graphql.String(repo),
			"after": after,
		}

		if err := c.gql.Query(ctx, &q, vars); err != nil {
			return nil, errors.Wrapf(err, "listing branch protection rules for %s/%s", owner, repo)
		}

		for _, n := range q.Repository.BranchProtectionRules.Nodes {
			id, dto := n.toDTO()
			out = append(out, RuleAndID{ID: graphql.String(id), Rule: dto})
		}

		if !bool(q.Repository.BranchProtectionRules.PageInfo.HasNextPage) {
			break
		}

		cursor := q.Repository.BranchProtectionRules.PageInfo.EndCursor
		after = &cursor
	}

	return out, nil
}
