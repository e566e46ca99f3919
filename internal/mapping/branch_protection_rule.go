package mapping

import (
	"strings"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

// BranchProtectionRuleNode is the flattened shape the GraphQL provider
// layer (C7, package internal/provider/graphql) decodes a
// branchProtectionRule node into, after resolving every actor's GraphQL
// node ID back to a login/slug via the actor cache. Mapping stays pure by
// accepting already-resolved names rather than talking to the API itself.
type BranchProtectionRuleNode struct {
	Pattern                       string
	RequiresApprovingReviews      bool
	RequiredApprovingReviewCount  int
	DismissesStaleReviews         bool
	RequiresCodeOwnerReviews      bool
	RequiresStatusChecks          bool
	RequiresStrictStatusChecks    bool
	RequiredStatusCheckContexts   []string // "<slug>:<context>" or bare context
	RequiresCommitSignatures      bool
	RequiresLinearHistory         bool
	RequiresDeployments           bool
	RequiredDeploymentEnvironments []string
	RequiresConversationResolution bool
	LockBranch                    bool
	AllowsForcePushes              bool
	AllowsDeletions                bool
	IsAdminEnforced                bool
	PushRestrictions               []string // resolved actor tokens, §9 grammar
	ReviewDismissalAllowances      []string
	BypassPullRequestAllowances    []string
	BypassForcePushAllowances      []string
}

// FromProviderBranchProtectionRule builds the model projection from an
// already-decoded, actor-resolved GraphQL node.
func FromProviderBranchProtectionRule(n BranchProtectionRuleNode) model.BranchProtectionRule {
	checks := make([]model.RequiredStatusCheck, 0, len(n.RequiredStatusCheckContexts))

	for _, raw := range n.RequiredStatusCheckContexts {
		checks = append(checks, parseStatusCheck(raw))
	}

	return model.BranchProtectionRule{
		Pattern:                        n.Pattern,
		RequiresApprovingReviews:       value.Of(n.RequiresApprovingReviews),
		RequiredApprovingReviewCount:   value.Of(n.RequiredApprovingReviewCount),
		DismissesStaleReviews:          value.Of(n.DismissesStaleReviews),
		RequiresCodeOwnerReviews:       value.Of(n.RequiresCodeOwnerReviews),
		RequiresStatusChecks:           value.Of(n.RequiresStatusChecks),
		RequiresStrictStatusChecks:     value.Of(n.RequiresStrictStatusChecks),
		RequiredStatusChecks:           value.Of(checks),
		RequiresCommitSignatures:       value.Of(n.RequiresCommitSignatures),
		RequiresLinearHistory:          value.Of(n.RequiresLinearHistory),
		RequiresDeployments:            value.Of(n.RequiresDeployments),
		RequiredDeploymentEnvironments: value.Of(n.RequiredDeploymentEnvironments),
		RequiresConversationResolution: value.Of(n.RequiresConversationResolution),
		LockBranch:                     value.Of(n.LockBranch),
		AllowsForcePushes:              value.Of(n.AllowsForcePushes),
		AllowsDeletions:                value.Of(n.AllowsDeletions),
		IsAdminEnforced:                value.Of(n.IsAdminEnforced),
		PushRestrictions:               value.Of(parseActorTokens(n.PushRestrictions)),
		ReviewDismissalAllowances:      value.Of(parseActorTokens(n.ReviewDismissalAllowances)),
		BypassPullRequestAllowances:    value.Of(parseActorTokens(n.BypassPullRequestAllowances)),
		BypassForcePushAllowances:      value.Of(parseActorTokens(n.BypassForcePushAllowances)),
	}
}

// ToProviderBranchProtectionRule renders m back into the flattened shape
// the GraphQL provider layer submits as a createBranchProtectionRule /
// updateBranchProtectionRule mutation input, after the caller resolves
// each actor token to a GraphQL node ID.
func ToProviderBranchProtectionRule(m model.BranchProtectionRule) BranchProtectionRuleNode {
	checks, _ := m.RequiredStatusChecks.Get()
	contexts := make([]string, 0, len(checks))

	for _, c := range checks {
		contexts = append(contexts, c.String())
	}

	push, _ := m.PushRestrictions.Get()
	dismiss, _ := m.ReviewDismissalAllowances.Get()
	bypassPR, _ := m.BypassPullRequestAllowances.Get()
	bypassForce, _ := m.BypassForcePushAllowances.Get()
	envs, _ := m.RequiredDeploymentEnvironments.Get()

	return BranchProtectionRuleNode{
		Pattern:                        m.Pattern,
		RequiresApprovingReviews:       m.RequiresApprovingReviews.GetOr(false),
		RequiredApprovingReviewCount:   m.RequiredApprovingReviewCount.GetOr(0),
		DismissesStaleReviews:          m.DismissesStaleReviews.GetOr(false),
		RequiresCodeOwnerReviews:       m.RequiresCodeOwnerReviews.GetOr(false),
		RequiresStatusChecks:           m.RequiresStatusChecks.GetOr(false),
		RequiresStrictStatusChecks:     m.RequiresStrictStatusChecks.GetOr(false),
		RequiredStatusCheckContexts:    contexts,
		RequiresCommitSignatures:       m.RequiresCommitSignatures.GetOr(false),
		RequiresLinearHistory:          m.RequiresLinearHistory.GetOr(false),
		RequiresDeployments:            m.RequiresDeployments.GetOr(false),
		RequiredDeploymentEnvironments: envs,
		RequiresConversationResolution: m.RequiresConversationResolution.GetOr(false),
		LockBranch:                     m.LockBranch.GetOr(false),
		AllowsForcePushes:              m.AllowsForcePushes.GetOr(false),
		AllowsDeletions:                m.AllowsDeletions.GetOr(false),
		IsAdminEnforced:                m.IsAdminEnforced.GetOr(false),
		PushRestrictions:               renderActorTokens(push),
		ReviewDismissalAllowances:      renderActorTokens(dismiss),
		BypassPullRequestAllowances:    renderActorTokens(bypassPR),
		BypassForcePushAllowances:      renderActorTokens(bypassForce),
	}
}

func parseStatusCheck(raw string) model.RequiredStatusCheck {
	if idx := strings.Index(raw, ":"); idx >= 0 {
		return model.RequiredStatusCheck{Slug: raw[:idx], Context: raw[idx+1:]}
	}

	return model.RequiredStatusCheck{Slug: "any", Context: raw}
}

func parseActorTokens(raw []string) []model.ActorToken {
	out := make([]model.ActorToken, 0, len(raw))

	for _, r := range raw {
		out = append(out, model.ParseActorToken(r))
	}

	return out
}

func renderActorTokens(tokens []model.ActorToken) []string {
	out := make([]string, 0, len(tokens))

	for _, t := range tokens {
		out = append(out, t.String())
	}

	return out
}
