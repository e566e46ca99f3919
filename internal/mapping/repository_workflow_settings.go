package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
)

// FromProviderRepositoryWorkflowSettings builds the repo-level Actions
// settings projection, mirroring FromProviderWorkflowSettings's
// organization-level counterpart but sourced from the repository-scoped
// endpoints GitHub splits the same way (permissions vs. default
// workflow permissions).
func FromProviderRepositoryWorkflowSettings(
	perms *github.ActionsPermissionsRepository,
	defaults *github.DefaultWorkflowPermissionRepository,
) model.RepositoryWorkflowSettings {
	out := model.RepositoryWorkflowSettings{}

	if perms != nil {
		out.Enabled = setBool(perms.Enabled)
		out.AllowedActions = setStr(perms.AllowedActions)
	}

	if defaults != nil {
		out.DefaultWorkflowPermissions = setStr((*string)(defaults.DefaultWorkflowPermissions))
		out.ActionsCanApprovePullRequests = setBool(defaults.CanApprovePullRequestReviews)
	}

	return out
}

// ToProviderRepositoryWorkflowSettings splits s back into the two provider
// request shapes the repository-scoped Actions API expects.
func ToProviderRepositoryWorkflowSettings(s model.RepositoryWorkflowSettings) (
	*github.ActionsPermissionsRepository,
	*github.DefaultWorkflowPermissionRepository,
) {
	perms := &github.ActionsPermissionsRepository{
		Enabled:        boolPtr(s.Enabled),
		AllowedActions: strPtr(s.AllowedActions),
	}

	var defaultPerm *github.DefaultWorkflowPermissionString
	if v, ok := s.DefaultWorkflowPermissions.Get(); ok {
		p := github.DefaultWorkflowPermissionString(v)
		defaultPerm = &p
	}

	defaults := &github.DefaultWorkflowPermissionRepository{
		DefaultWorkflowPermissions:   defaultPerm,
		CanApprovePullRequestReviews: boolPtr(s.ActionsCanApprovePullRequests),
	}

	return perms, defaults
}

// ToProviderActionsAllowed renders the selected_actions patterns list GitHub
// requires whenever allowed_actions is "selected" (§3 Repository and
// OrganizationWorkflowSettings share this dependent-field shape).
func ToProviderActionsAllowed(patterns []string) *github.ActionsAllowed {
	return &github.ActionsAllowed{PatternsAllowed: patterns}
}
