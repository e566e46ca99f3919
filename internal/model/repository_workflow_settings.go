package model

import "github.com/otterdog-go/otterdog/internal/value"

// RepositoryWorkflowSettings is the per-repository Actions configuration
// (§3). Several of its fields are coerced to UNSET based on the
// organization's workflow settings before diff (§4.4 step 4).
type RepositoryWorkflowSettings struct {
	Enabled                       value.Value[bool]
	DefaultWorkflowPermissions    value.Value[string]
	ActionsCanApprovePullRequests value.Value[bool]
	AllowedActions                value.Value[string]
	SelectedActions                value.Value[[]string]
}

func (s *RepositoryWorkflowSettings) Key() string { return "" }

func (s *RepositoryWorkflowSettings) Validate(ctx *ValidationContext, parent ModelObject) {
	path := "workflow_settings"
	if repo, ok := parent.(*Repository); ok {
		path = "repositories[" + repo.Name + "]." + path
	}

	if v, ok := s.DefaultWorkflowPermissions.Get(); ok && v != "read" && v != "write" {
		ctx.Add(SeverityError, path, "default_workflow_permissions %q must be read|write", v)
	}
}

// CoerceForOrganization applies §4.4 step 4's cross-level coercion: certain
// repository workflow fields are dropped to UNSET based on the
// organization's own workflow settings, to avoid spurious diffs when the
// organization has already centralized the decision.
func (s *RepositoryWorkflowSettings) CoerceForOrganization(org *OrganizationWorkflowSettings) {
	if enabledRepos, ok := org.EnabledRepositories.Get(); ok && enabledRepos == string(EnabledRepositoriesNone) {
		s.Enabled = value.Value[bool]{}
	}

	if perm, ok := org.DefaultWorkflowPermissions.Get(); ok && perm != "" {
		s.DefaultWorkflowPermissions = value.Value[string]{}
		_ = perm
	}
}
