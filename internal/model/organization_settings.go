package model

import "github.com/otterdog-go/otterdog/internal/value"

// OrganizationSettings is the singleton embedded record described in §3.
// Fields mirror the subset of GitHub's organization settings the engine
// manages; all are plain value fields participating in diff (no keys, no
// embedded children).
type OrganizationSettings struct {
	BillingEmail                               value.Value[string]
	Company                                    value.Value[string]
	Email                                      value.Value[string]
	TwitterUsername                            value.Value[string]
	Location                                   value.Value[string]
	Description                                value.Value[string]
	Blog                                       value.Value[string]
	DefaultRepositoryPermission                value.Value[string] // read|write|admin|none
	MembersCanCreatePublicRepositories          value.Value[bool]
	MembersCanCreatePrivateRepositories         value.Value[bool]
	MembersCanCreateInternalRepositories        value.Value[bool]
	MembersCanCreatePages                       value.Value[bool]
	MembersCanCreatePublicPages                 value.Value[bool]
	MembersCanForkPrivateRepositories           value.Value[bool]
	WebCommitSignoffRequired                    value.Value[bool]
	TwoFactorRequirement                        value.Value[bool]
	AdvancedSecurityEnabledForNewRepositories   value.Value[bool]
	DependabotAlertsEnabledForNewRepositories   value.Value[bool]
	DependabotSecurityUpdatesEnabledForNewRepos value.Value[bool]
	DependencyGraphEnabledForNewRepositories    value.Value[bool]
	SecretScanningEnabledForNewRepositories     value.Value[bool]
	SecretScanningPushProtectionForNewRepos     value.Value[bool]
	HasOrganizationProjects                     value.Value[bool]
	HasRepositoryProjects                       value.Value[bool]
}

func (s *OrganizationSettings) Key() string { return "" }

// Validate enforces §3's organization-level cross-field invariants.
func (s *OrganizationSettings) Validate(ctx *ValidationContext, _ ModelObject) {
	if v, ok := s.DependabotAlertsEnabledForNewRepositories.Get(); ok && v {
		if dg, ok := s.DependencyGraphEnabledForNewRepositories.Get(); ok && !dg {
			ctx.Add(SeverityError, "settings",
				"dependabot_alerts_enabled_for_new_repositories requires dependency_graph_enabled_for_new_repositories")
		}
	}

	if v, ok := s.DefaultRepositoryPermission.Get(); ok {
		switch v {
		case "read", "write", "admin", "none":
		default:
			ctx.Add(SeverityError, "settings", "default_repository_permission %q is not one of read|write|admin|none", v)
		}
	}
}

// EnabledRepositories controls which repositories workflows may run on
// (§4.4 step 4 cross-level coercion references this enum).
type EnabledRepositories string

const (
	EnabledRepositoriesAll      EnabledRepositories = "all"
	EnabledRepositoriesNone     EnabledRepositories = "none"
	EnabledRepositoriesSelected EnabledRepositories = "selected"
)

// OrganizationWorkflowSettings is the singleton embedded record controlling
// Actions defaults across the organization (§3).
type OrganizationWorkflowSettings struct {
	EnabledRepositories          value.Value[string] // EnabledRepositories
	SelectedRepositories         value.Value[[]string]
	DefaultWorkflowPermissions   value.Value[string] // read|write
	ActionsCanApprovePullRequests value.Value[bool]
	AllowedActions               value.Value[string] // all|local_only|selected
}

func (s *OrganizationWorkflowSettings) Key() string { return "" }

func (s *OrganizationWorkflowSettings) Validate(ctx *ValidationContext, _ ModelObject) {
	if v, ok := s.DefaultWorkflowPermissions.Get(); ok && v != "read" && v != "write" {
		ctx.Add(SeverityError, "workflow_settings", "default_workflow_permissions %q must be read|write", v)
	}

	if v, ok := s.EnabledRepositories.Get(); ok {
		switch EnabledRepositories(v) {
		case EnabledRepositoriesAll, EnabledRepositoriesNone, EnabledRepositoriesSelected:
		default:
			ctx.Add(SeverityError, "workflow_settings", "enabled_repositories %q is not one of all|none|selected", v)
		}

		if v != string(EnabledRepositoriesSelected) {
			if sel, ok := s.SelectedRepositories.Get(); ok && len(sel) > 0 {
				ctx.Add(SeverityWarning, "workflow_settings", "selected_repositories set but enabled_repositories is %q", v)
			}
		}
	}
}

