package model

import "github.com/otterdog-go/otterdog/internal/value"

// RulesetTarget enumerates what a ruleset governs (§3 invariants).
type RulesetTarget string

const (
	RulesetTargetBranch RulesetTarget = "branch"
	RulesetTargetTag    RulesetTarget = "tag"
	RulesetTargetPush   RulesetTarget = "push"
)

// RulesetEnforcement enumerates a ruleset's enforcement mode. "evaluate" is
// only legal on the enterprise plan (§3 invariants, §8 scenario S6).
type RulesetEnforcement string

const (
	RulesetActive   RulesetEnforcement = "active"
	RulesetDisabled RulesetEnforcement = "disabled"
	RulesetEvaluate RulesetEnforcement = "evaluate"
)

// RefCondition is an include/exclude glob pair over ref names (§4.3 Ruleset).
type RefCondition struct {
	Include []string
	Exclude []string
}

// RulesetConditions is the full condition set gating when a ruleset
// applies: ref name patterns, and (repository scope only) repo-name
// patterns.
type RulesetConditions struct {
	RefName        value.Value[RefCondition]
	RepositoryName value.Value[RefCondition] // org-level rulesets only
}

// StatusCheck is a single required status check entry.
type StatusCheck struct {
	Context       string
	IntegrationID value.Value[int64]
}

// CodeScanningTool configures one code-scanning tool's alert thresholds.
type CodeScanningTool struct {
	Tool                    string
	AlertsThreshold         string
	SecurityAlertsThreshold string
}

// RulesetRules is the typed set of rules a ruleset may enforce (§4.3). Each
// boolean-gated rule (deletion, creation, non_fast_forward, ...) is
// represented as Value[bool] so UNSET excludes it from diff entirely;
// parameterized rules carry embedded_model settings records.
type RulesetRules struct {
	Deletion              value.Value[bool]
	Creation               value.Value[bool]
	Update                 value.Value[bool]
	RequiredLinearHistory  value.Value[bool]
	RequiredSignatures     value.Value[bool]
	NonFastForward         value.Value[bool]
	PullRequest            value.Value[PullRequestRuleSettings]
	RequiredStatusChecks   value.Value[StatusChecksRuleSettings]
	RequiredDeployments    value.Value[RequiredDeploymentsRuleSettings]
	CodeScanning           value.Value[CodeScanningRuleSettings]
	MergeQueue             value.Value[MergeQueueRuleSettings]
}

// PullRequestRuleSettings parameterizes the pull_request rule.
type PullRequestRuleSettings struct {
	DismissStaleReviewsOnPush      bool
	RequireCodeOwnerReview         bool
	RequireLastPushApproval        bool
	RequiredReviewThreadResolution bool
	RequiredApprovingReviewCount   int
	AllowedMergeMethods            []string // squash|merge|rebase
}

// StatusChecksRuleSettings parameterizes the required_status_checks rule.
type StatusChecksRuleSettings struct {
	StrictRequiredStatusChecksPolicy bool
	RequiredStatusChecks             []StatusCheck
}

// RequiredDeploymentsRuleSettings parameterizes the required_deployments
// rule; each entry must name an environment declared on the repository
// (§3 invariants).
type RequiredDeploymentsRuleSettings struct {
	RequiredDeploymentEnvironments []string
}

// CodeScanningRuleSettings parameterizes the code_scanning rule.
type CodeScanningRuleSettings struct {
	CodeScanningTools []CodeScanningTool
}

// MergeQueueRuleSettings parameterizes the merge_queue rule. Only the
// attributes GitHub's current schema documents are modeled; extending
// coverage further is an open question (see SPEC_FULL.md §D.1).
type MergeQueueRuleSettings struct {
	MergeMethod                string // merge|squash|rebase
	MinimumEntriesToMerge       int
	MinimumEntriesToMergeWaitMinutes int
	MaximumEntriesToMerge       int
	MaximumEntriesToMergeBatchSize  int
	CheckResponseTimeoutMinutes int
}

// BypassActor is a single bypass-actor entry on a ruleset, declared using
// the §9 actor-token grammar.
type BypassActor struct {
	Actor      ActorToken
	BypassMode BypassMode
}

// Ruleset holds the fields shared by OrganizationRuleset and
// RepositoryRuleset (§3).
type Ruleset struct {
	Name         string // key
	Target       value.Value[string]
	Enforcement  value.Value[string]
	Conditions   value.Value[RulesetConditions]
	BypassActors value.Value[[]BypassActor]
	Rules        value.Value[RulesetRules]
}

func validateRuleset(ctx *ValidationContext, path string, r *Ruleset, plan string, knownRepos func(string) bool) {
	target, hasTarget := r.Target.Get()
	if hasTarget {
		switch RulesetTarget(target) {
		case RulesetTargetBranch, RulesetTargetTag, RulesetTargetPush:
		default:
			ctx.Add(SeverityError, path, "target %q must be branch|tag|push", target)
		}
	}

	if enf, ok := r.Enforcement.Get(); ok {
		switch RulesetEnforcement(enf) {
		case RulesetActive, RulesetDisabled:
		case RulesetEvaluate:
			if plan != "enterprise" {
				ctx.Add(SeverityError, path, "enforcement=evaluate requires the enterprise plan (current plan: %q)", plan)
			}
		default:
			ctx.Add(SeverityError, path, "enforcement %q must be active|disabled|evaluate", enf)
		}
	}

	if rules, ok := r.Rules.Get(); ok {
		if rd, ok := rules.RequiredDeployments.Get(); ok && knownRepos != nil {
			for _, env := range rd.RequiredDeploymentEnvironments {
				if !knownRepos(env) {
					ctx.Add(SeverityError, path, "required_deployments references undeclared environment %q", env)
				}
			}
		}
	}

	if cond, ok := r.Conditions.Get(); ok {
		if ref, ok := cond.RefName.Get(); ok && hasTarget && target == string(RulesetTargetPush) {
			if len(ref.Include) > 0 || len(ref.Exclude) > 0 {
				ctx.Add(SeverityWarning, path, "ref_name conditions have no effect on push-target rulesets")
			}
		}
	}
}

// OrganizationRuleset applies across every repository matching its
// repository_name condition (§3).
type OrganizationRuleset struct {
	Ruleset
}

func (r *OrganizationRuleset) Key() string { return r.Ruleset.Name }

func (r *OrganizationRuleset) Validate(ctx *ValidationContext, _ ModelObject) {
	validateRuleset(ctx, "rulesets["+r.Name+"]", &r.Ruleset, ctx.Plan, nil)
}

// RepositoryRuleset is a ruleset scoped to a single repository (§3).
type RepositoryRuleset struct {
	Ruleset
}

func (r *RepositoryRuleset) Key() string { return r.Ruleset.Name }

func (r *RepositoryRuleset) Validate(ctx *ValidationContext, parent ModelObject) {
	repo, _ := parent.(*Repository)
	path := "rulesets[" + r.Name + "]"

	envCheck := func(env string) bool { return false }

	if repo != nil {
		path = "repositories[" + repo.Name + "]." + path
		envCheck = func(env string) bool { return ctx.HasEnvironment(repo.Name, env) }
	}

	validateRuleset(ctx, path, &r.Ruleset, ctx.Plan, envCheck)
}
