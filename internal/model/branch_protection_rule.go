package model

import "github.com/otterdog-go/otterdog/internal/value"

// RequiredStatusCheck is encoded in model form as "<app_slug>:<context>"
// (§4.3 "required_status_checks"); Slug is "any" when the app-scoping
// prefix is omitted.
type RequiredStatusCheck struct {
	Slug    string
	Context string
}

// String renders the model-form encoding, preserved verbatim for round-trip.
func (c RequiredStatusCheck) String() string {
	if c.Slug == "" || c.Slug == "any" {
		return c.Context
	}

	return c.Slug + ":" + c.Context
}

// BranchProtectionRule is a legacy (non-ruleset) branch protection rule,
// read/written via GraphQL (§4.1, §4.3). Its actor-list fields
// (pushRestrictions, reviewDismissalAllowances,
// bypassPullRequestAllowances, bypassForcePushAllowances) are declared as
// actor tokens in model form and resolved to node ids only at apply time.
type BranchProtectionRule struct {
	Pattern                      string // key
	RequiresApprovingReviews     value.Value[bool]
	RequiredApprovingReviewCount value.Value[int]
	DismissesStaleReviews        value.Value[bool]
	RequiresCodeOwnerReviews     value.Value[bool]
	RequiresStatusChecks         value.Value[bool]
	RequiresStrictStatusChecks   value.Value[bool]
	RequiredStatusChecks         value.Value[[]RequiredStatusCheck]
	RequiresCommitSignatures     value.Value[bool]
	RequiresLinearHistory        value.Value[bool]
	RequiresDeployments          value.Value[bool]
	RequiredDeploymentEnvironments value.Value[[]string]
	RequiresConversationResolution value.Value[bool]
	LockBranch                   value.Value[bool]
	AllowsForcePushes             value.Value[bool]
	AllowsDeletions               value.Value[bool]
	IsAdminEnforced               value.Value[bool]
	PushRestrictions              value.Value[[]ActorToken]
	ReviewDismissalAllowances     value.Value[[]ActorToken]
	BypassPullRequestAllowances   value.Value[[]ActorToken]
	BypassForcePushAllowances     value.Value[[]ActorToken]
}

func (r *BranchProtectionRule) Key() string { return r.Pattern }

func (r *BranchProtectionRule) Validate(ctx *ValidationContext, parent ModelObject) {
	path := "branch_protection_rules[" + r.Pattern + "]"
	if repo, ok := parent.(*Repository); ok {
		path = "repositories[" + repo.Name + "]." + path
	}

	if req, ok := r.RequiresApprovingReviews.Get(); ok && req {
		if count, ok := r.RequiredApprovingReviewCount.Get(); ok && (count < 0 || count > 10) {
			ctx.Add(SeverityError, path, "required_approving_review_count must be in [0,10], got %d", count)
		}
	}

	if force, ok := r.AllowsForcePushes.Get(); ok && force {
		if bypass, ok := r.BypassForcePushAllowances.Get(); ok && len(bypass) > 0 {
			ctx.Add(SeverityError, path, "allows_force_pushes=true requires bypass_force_push_allowances to be empty")
		}
	}

	if reqDeploy, ok := r.RequiresDeployments.Get(); ok && reqDeploy {
		if envs, ok := r.RequiredDeploymentEnvironments.Get(); ok {
			repo, _ := parent.(*Repository)

			for _, env := range envs {
				if repo != nil && !ctx.HasEnvironment(repo.Name, env) {
					ctx.Add(SeverityError, path, "required_deployment_environments references undeclared environment %q", env)
				}
			}
		}
	}
}
