package graphql

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shurcooL/graphql"

	"github.com/otterdog-go/otterdog/internal/diff"
	"github.com/otterdog-go/otterdog/internal/mapping"
	"github.com/otterdog-go/otterdog/internal/model"
)

// branchProtectionRuleInput mirrors the scalar fields every
// create/update mutation input shares (GitHub's CreateBranchProtectionRuleInput
// and UpdateBranchProtectionRuleInput overlap except for the
// repository/rule identifier field), matching the original's dict-based
// payload construction (providers/github/graphql.py).
type branchProtectionRuleInput struct {
	RepositoryID                 graphql.ID   `graphql:"repositoryId"`
	RuleID                       graphql.ID   `graphql:"branchProtectionRuleId"`
	Pattern                      graphql.String `graphql:"pattern"`
	RequiresApprovingReviews     graphql.Boolean `graphql:"requiresApprovingReviews"`
	RequiredApprovingReviewCount graphql.Int  `graphql:"requiredApprovingReviewCount"`
	DismissesStaleReviews        graphql.Boolean `graphql:"dismissesStaleReviews"`
	RequiresCodeOwnerReviews     graphql.Boolean `graphql:"requiresCodeOwnerReviews"`
	RequiresStatusChecks         graphql.Boolean `graphql:"requiresStatusChecks"`
	RequiresStrictStatusChecks   graphql.Boolean `graphql:"requiresStrictStatusChecks"`
	RequiredStatusCheckContexts  []graphql.String `graphql:"requiredStatusCheckContexts"`
	RequiresCommitSignatures     graphql.Boolean `graphql:"requiresCommitSignatures"`
	RequiresLinearHistory        graphql.Boolean `graphql:"requiresLinearHistory"`
	RequiresDeployments          graphql.Boolean `graphql:"requiresDeployments"`
	RequiredDeploymentEnvironments []graphql.String `graphql:"requiredDeploymentEnvironments"`
	RequiresConversationResolution graphql.Boolean `graphql:"requiresConversationResolution"`
	LockBranch                   graphql.Boolean `graphql:"lockBranch"`
	AllowsForcePushes             graphql.Boolean `graphql:"allowsForcePushes"`
	AllowsDeletions               graphql.Boolean `graphql:"allowsDeletions"`
	IsAdminEnforced               graphql.Boolean `graphql:"isAdminEnforced"`
	RestrictsPushes               graphql.Boolean `graphql:"restrictsPushes"`
	PushActorIDs                  []graphql.ID `graphql:"pushActorIds"`
	RestrictsReviewDismissals     graphql.Boolean `graphql:"restrictsReviewDismissals"`
	ReviewDismissalActorIDs       []graphql.ID `graphql:"reviewDismissalActorIds"`
	BypassPullRequestActorIDs     []graphql.ID `graphql:"bypassPullRequestActorIds"`
	BypassForcePushActorIDs       []graphql.ID `graphql:"bypassForcePushActorIds"`
}

func (c *Client) buildInput(ctx context.Context, n mapping.BranchProtectionRuleNode) (branchProtectionRuleInput, error) {
	push, err := c.resolveTokenList(ctx, n.PushRestrictions)
	if err != nil {
		return branchProtectionRuleInput{}, err
	}

	dismiss, err := c.resolveTokenList(ctx, n.ReviewDismissalAllowances)
	if err != nil {
		return branchProtectionRuleInput{}, err
	}

	bypassPR, err := c.resolveTokenList(ctx, n.BypassPullRequestAllowances)
	if err != nil {
		return branchProtectionRuleInput{}, err
	}

	bypassForce, err := c.resolveTokenList(ctx, n.BypassForcePushAllowances)
	if err != nil {
		return branchProtectionRuleInput{}, err
	}

	contexts := make([]graphql.String, len(n.RequiredStatusCheckContexts))
	for i, v := range n.RequiredStatusCheckContexts {
		contexts[i] = graphql.String(v)
	}

	envs := make([]graphql.String, len(n.RequiredDeploymentEnvironments))
	for i, v := range n.RequiredDeploymentEnvironments {
		envs[i] = graphql.String(v)
	}

	return branchProtectionRuleInput{
		Pattern:                        graphql.String(n.Pattern),
		RequiresApprovingReviews:       graphql.Boolean(n.RequiresApprovingReviews),
		RequiredApprovingReviewCount:   graphql.Int(n.RequiredApprovingReviewCount),
		DismissesStaleReviews:          graphql.Boolean(n.DismissesStaleReviews),
		RequiresCodeOwnerReviews:       graphql.Boolean(n.RequiresCodeOwnerReviews),
		RequiresStatusChecks:           graphql.Boolean(n.RequiresStatusChecks),
		RequiresStrictStatusChecks:     graphql.Boolean(n.RequiresStrictStatusChecks),
		RequiredStatusCheckContexts:    contexts,
		RequiresCommitSignatures:       graphql.Boolean(n.RequiresCommitSignatures),
		RequiresLinearHistory:          graphql.Boolean(n.RequiresLinearHistory),
		RequiresDeployments:            graphql.Boolean(n.RequiresDeployments),
		RequiredDeploymentEnvironments: envs,
		RequiresConversationResolution: graphql.Boolean(n.RequiresConversationResolution),
		LockBranch:                     graphql.Boolean(n.LockBranch),
		AllowsForcePushes:              graphql.Boolean(n.AllowsForcePushes),
		AllowsDeletions:                graphql.Boolean(n.AllowsDeletions),
		IsAdminEnforced:                graphql.Boolean(n.IsAdminEnforced),
		RestrictsPushes:                graphql.Boolean(len(push) > 0),
		PushActorIDs:                   push,
		RestrictsReviewDismissals:      graphql.Boolean(len(dismiss) > 0),
		ReviewDismissalActorIDs:        dismiss,
		BypassPullRequestActorIDs:      bypassPR,
		BypassForcePushActorIDs:        bypassForce,
	}, nil
}

func (c *Client) resolveTokenList(ctx context.Context, raw []string) ([]graphql.ID, error) {
	out := make([]graphql.ID, 0, len(raw))

	for _, r := range raw {
		id, err := c.ResolveActorNodeID(ctx, model.ParseActorToken(r))
		if err != nil {
			return nil, err
		}

		out = append(out, id)
	}

	return out, nil
}

// Apply implements apply.Dispatcher for branch protection rules, the one
// entity kind the REST dispatcher (internal/provider/rest) cannot write.
func (c *Client) Apply(ctx context.Context, p diff.LivePatch) error {
	rule, ok := p.Object.(*model.BranchProtectionRule)
	if !ok {
		return errors.Newf("graphql: no writer registered for %T", p.Object)
	}

	owner, repo := c.org, repoNameFromPath(p.Path)

	dto := mapping.ToProviderBranchProtectionRule(*rule)

	input, err := c.buildInput(ctx, dto)
	if err != nil {
		return err
	}

	switch p.Operation {
	case diff.OpAdd:
		repoID, err := c.repositoryNodeID(ctx, owner, repo)
		if err != nil {
			return err
		}

		input.RepositoryID = repoID

		var m struct {
			CreateBranchProtectionRule struct {
				BranchProtectionRule struct {
					ID graphql.ID
				}
			} `graphql:"createBranchProtectionRule(input: $input)"`
		}

		return errors.Wrapf(c.gql.Mutate(ctx, &m, input, nil), "creating branch protection rule %q", rule.Pattern)
	case diff.OpChange:
		ruleID, err := c.findRuleID(ctx, owner, repo, rule.Pattern)
		if err != nil {
			return err
		}

		input.RuleID = ruleID

		var m struct {
			UpdateBranchProtectionRule struct {
				BranchProtectionRule struct {
					Pattern graphql.String
				}
			} `graphql:"updateBranchProtectionRule(input: $input)"`
		}

		return errors.Wrapf(c.gql.Mutate(ctx, &m, input, nil), "updating branch protection rule %q", rule.Pattern)
	case diff.OpRemove:
		ruleID, err := c.findRuleID(ctx, owner, repo, rule.Pattern)
		if err != nil {
			return err
		}

		var m struct {
			DeleteBranchProtectionRule struct {
				ClientMutationID graphql.String
			} `graphql:"deleteBranchProtectionRule(input: $input)"`
		}

		delInput := struct {
			RuleID graphql.ID `graphql:"branchProtectionRuleId"`
		}{RuleID: ruleID}

		return errors.Wrapf(c.gql.Mutate(ctx, &m, delInput, nil), "deleting branch protection rule %q", rule.Pattern)
	}

	return nil
}

func (c *Client) findRuleID(ctx context.Context, owner, repo, pattern string) (graphql.ID, error) {
	rules, err := c.ListBranchProtectionRules(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	for _, r := range rules {
		if r.Rule.Pattern == pattern {
			return r.ID, nil
		}
	}

	return nil, errors.Newf("branch protection rule %q not found on %s/%s", pattern, owner, repo)
}

// repoNameFromPath extracts the repository name from a patch path of the
// form "repositories[name].branch_protection_rules[pattern]".
func repoNameFromPath(path string) string {
	const marker = "repositories["

	i := strings.Index(path, marker)
	if i < 0 {
		return ""
	}

	rest := path[i+len(marker):]

	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return ""
	}

	return rest[:end]
}
