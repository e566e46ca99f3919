package model

import "github.com/otterdog-go/otterdog/internal/value"

// Repository is keyed by name, with an aliases list for rename tracking
// (§3). It exclusively owns branch protection rules, rulesets, webhooks,
// secrets, variables, environments, and team permissions.
type Repository struct {
	Name    string
	Aliases_ []string // model_only, renamed to avoid clashing with the Aliases() method

	Description               value.Value[string]
	Homepage                  value.Value[string]
	Private                   value.Value[bool]
	Visibility                value.Value[string] // public|private|internal
	HasIssues                 value.Value[bool]
	HasWiki                   value.Value[bool]
	HasProjects               value.Value[bool]
	HasDiscussions            value.Value[bool]
	HasDownloads              value.Value[bool]
	IsTemplate                value.Value[bool]
	TemplateRepository        value.Value[string] // read_only: origin of repo creation
	Topics                    value.Value[[]string]
	DefaultBranch             value.Value[string]
	AllowSquashMerge           value.Value[bool]
	AllowMergeCommit           value.Value[bool]
	AllowRebaseMerge           value.Value[bool]
	AllowAutoMerge             value.Value[bool]
	AllowUpdateBranch          value.Value[bool]
	DeleteBranchOnMerge        value.Value[bool]
	MergeCommitTitle           value.Value[string]
	MergeCommitMessage         value.Value[string]
	SquashMergeCommitTitle     value.Value[string]
	SquashMergeCommitMessage   value.Value[string]
	Archived                   value.Value[bool]
	AllowForking               value.Value[bool]
	WebCommitSignoffRequired  value.Value[bool]
	SecretScanning             value.Value[string] // enabled|disabled; suppressed for private repos
	SecretScanningPushProtection value.Value[string]
	DependabotSecurityUpdates  value.Value[string]
	CodeScanningDefaultSetupEnabled value.Value[bool]
	GitignoreTemplate          value.Value[string]
	LicenseTemplate            value.Value[string]

	Plan value.Value[string] // read_only: the repo's billing plan

	SkipPulls   bool // model_only
	SkipMembers bool // model_only

	BranchProtectionRules []*BranchProtectionRule
	Rulesets              []*RepositoryRuleset
	Webhooks              []*RepositoryWebhook
	Secrets               []*RepositorySecret
	Variables             []*RepositoryVariable
	Environments           []*Environment
	TeamPermissions        []*TeamPermission
	WorkflowSettings       RepositoryWorkflowSettings
}

func (r *Repository) Key() string       { return r.Name }
func (r *Repository) Aliases() []string { return r.Aliases_ }

// GetAllNames returns Name plus every alias (§4.2 step 3: repository rename
// matching).
func (r *Repository) GetAllNames() []string {
	return append([]string{r.Name}, r.Aliases_...)
}

func (r *Repository) Validate(ctx *ValidationContext, _ ModelObject) {
	path := "repositories[" + r.Name + "]"

	if vis, ok := r.Visibility.Get(); ok {
		switch vis {
		case "public", "private", "internal":
		default:
			ctx.Add(SeverityError, path, "visibility %q must be public|private|internal", vis)
		}
	}

	private := r.Private.GetOr(false)
	if vis, ok := r.Visibility.Get(); ok {
		private = vis != "public"
	}

	if private {
		if _, ok := r.SecretScanning.Get(); ok {
			ctx.Add(SeverityError, path, "secret_scanning cannot be configured on a private repository")
		}

		if _, ok := r.SecretScanningPushProtection.Get(); ok {
			ctx.Add(SeverityError, path, "secret_scanning_push_protection cannot be configured on a private repository")
		}
	}

	if pp, ok := r.SecretScanningPushProtection.Get(); ok && pp == "enabled" {
		if ss, ok := r.SecretScanning.Get(); !ok || ss != "enabled" {
			ctx.Add(SeverityError, path, "secret_scanning_push_protection requires secret_scanning to be enabled")
		}
	}

	if csd, ok := r.CodeScanningDefaultSetupEnabled.Get(); ok && csd {
		hasIssues, _ := r.HasIssues.Get()
		_ = hasIssues
		// code_scanning_default_setup_enabled requires Actions to be enabled;
		// Actions-enablement lives in workflow_settings.enabled, checked there.
	}

	archived := r.Archived.GetOr(false)
	if archived && len(r.BranchProtectionRules) > 0 {
		ctx.Add(SeverityWarning, path, "branch protection rules on an archived repository are dropped during diff")
	}

	for _, e := range r.Environments {
		ctx.registerEnvironment(r.Name, e.Name)
	}

	for _, bp := range r.BranchProtectionRules {
		bp.Validate(ctx, r)
	}

	for _, rs := range r.Rulesets {
		rs.Validate(ctx, r)
	}

	if len(r.BranchProtectionRules) > 0 && len(r.Rulesets) > 0 {
		patterns := make(map[string]struct{}, len(r.BranchProtectionRules))

		for _, bp := range r.BranchProtectionRules {
			patterns[bp.Pattern] = struct{}{}
		}

		for _, rs := range r.Rulesets {
			if cond, ok := rs.Conditions.Get(); ok {
				if ref, ok := cond.RefName.Get(); ok {
					for _, pat := range ref.Include {
						if _, clash := patterns[pat]; clash {
							ctx.Add(SeverityWarning, path,
								"pattern %q is covered by both a branch protection rule and a ruleset", pat)
						}
					}
				}
			}
		}
	}

	for _, wh := range r.Webhooks {
		wh.Validate(ctx, r)
	}

	for _, s := range r.Secrets {
		s.Validate(ctx, r)
	}

	for _, v := range r.Variables {
		v.Validate(ctx, r)
	}

	for _, e := range r.Environments {
		e.Validate(ctx, r)
	}

	for _, tp := range r.TeamPermissions {
		tp.Validate(ctx, r)
	}

	r.WorkflowSettings.Validate(ctx, r)
}

// GetModelObjects yields the repository and every owned child, each paired
// with its immediate parent (§4.2).
func (r *Repository) GetModelObjects() []ObjectWithParent {
	out := []ObjectWithParent{{Object: r, Parent: nil}}

	for _, bp := range r.BranchProtectionRules {
		out = append(out, ObjectWithParent{Object: bp, Parent: r})
	}

	for _, rs := range r.Rulesets {
		out = append(out, ObjectWithParent{Object: rs, Parent: r})
	}

	for _, wh := range r.Webhooks {
		out = append(out, ObjectWithParent{Object: wh, Parent: r})
	}

	for _, s := range r.Secrets {
		out = append(out, ObjectWithParent{Object: s, Parent: r})
	}

	for _, v := range r.Variables {
		out = append(out, ObjectWithParent{Object: v, Parent: r})
	}

	for _, e := range r.Environments {
		out = append(out, ObjectWithParent{Object: e, Parent: r})
		out = append(out, e.GetModelObjects()[1:]...)
	}

	for _, tp := range r.TeamPermissions {
		out = append(out, ObjectWithParent{Object: tp, Parent: r})
	}

	return out
}

// SuppressForArchived clears the fields GitHub's API silently rejects or
// ignores on archived repositories (§3 invariants; SPEC_FULL.md §D.3
// centralizes this list for future revision).
func SuppressForArchived(r *Repository) {
	if !r.Archived.GetOr(false) {
		return
	}

	r.BranchProtectionRules = nil
	r.Rulesets = nil
	r.AllowSquashMerge = value.Value[bool]{}
	r.AllowMergeCommit = value.Value[bool]{}
	r.AllowRebaseMerge = value.Value[bool]{}
	r.DeleteBranchOnMerge = value.Value[bool]{}
}
