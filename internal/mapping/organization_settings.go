package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
)

// FromProviderOrganizationSettings builds the diffable settings projection
// of a live github.Organization (§3). Every field is mapped as Set; fields
// the provider omits come back as Unset, which is correct for live-side
// comparison since a live value that isn't reported simply isn't compared.
func FromProviderOrganizationSettings(o *github.Organization) model.OrganizationSettings {
	return model.OrganizationSettings{
		BillingEmail:                setStr(o.BillingEmail),
		Company:                     setStr(o.Company),
		Email:                       setStr(o.Email),
		TwitterUsername:             setStr(o.TwitterUsername),
		Location:                    setStr(o.Location),
		Description:                 setStr(o.Description),
		Blog:                        setStr(o.Blog),
		DefaultRepositoryPermission: setStr(o.DefaultRepoPermission),
		MembersCanCreatePublicRepositories:           setBool(o.MembersCanCreatePublicRepos),
		MembersCanCreatePrivateRepositories:          setBool(o.MembersCanCreatePrivateRepos),
		MembersCanCreateInternalRepositories:         setBool(o.MembersCanCreateInternalRepos),
		MembersCanCreatePages:                        setBool(o.MembersCanCreatePages),
		MembersCanCreatePublicPages:                  setBool(o.MembersCanCreatePublicPages),
		MembersCanForkPrivateRepositories:             setBool(o.MembersCanForkPrivateRepos),
		WebCommitSignoffRequired:                     setBool(o.WebCommitSignoffRequired),
		TwoFactorRequirement:                         setBool(o.TwoFactorRequirementEnabled),
		AdvancedSecurityEnabledForNewRepositories:     setBool(o.AdvancedSecurityEnabledForNewRepos),
		DependabotAlertsEnabledForNewRepositories:     setBool(o.DependabotAlertsEnabledForNewRepos),
		DependabotSecurityUpdatesEnabledForNewRepos:   setBool(o.DependabotSecurityUpdatesEnabledForNewRepos),
		DependencyGraphEnabledForNewRepositories:      setBool(o.DependencyGraphEnabledForNewRepos),
		SecretScanningEnabledForNewRepositories:       setBool(o.SecretScanningEnabledForNewRepos),
		SecretScanningPushProtectionForNewRepos:       setBool(o.SecretScanningPushProtectionEnabledForNewRepos),
		HasOrganizationProjects:                       setBool(o.HasOrganizationProjects),
		HasRepositoryProjects:                         setBool(o.HasRepositoryProjects),
	}
}

// ToProviderOrganizationSettings renders only the Set fields of s into a
// github.Organization update payload, leaving Unset/Null fields as nil so
// PATCH semantics (§4.5) never touch them unintentionally.
func ToProviderOrganizationSettings(s model.OrganizationSettings) *github.Organization {
	return &github.Organization{
		BillingEmail:          strPtr(s.BillingEmail),
		Company:               strPtr(s.Company),
		Email:                 strPtr(s.Email),
		TwitterUsername:       strPtr(s.TwitterUsername),
		Location:              strPtr(s.Location),
		Description:           strPtr(s.Description),
		Blog:                  strPtr(s.Blog),
		DefaultRepoPermission: strPtr(s.DefaultRepositoryPermission),
		MembersCanCreatePublicRepos:                     boolPtr(s.MembersCanCreatePublicRepositories),
		MembersCanCreatePrivateRepos:                    boolPtr(s.MembersCanCreatePrivateRepositories),
		MembersCanCreateInternalRepos:                   boolPtr(s.MembersCanCreateInternalRepositories),
		MembersCanCreatePages:                           boolPtr(s.MembersCanCreatePages),
		MembersCanCreatePublicPages:                      boolPtr(s.MembersCanCreatePublicPages),
		MembersCanForkPrivateRepos:                       boolPtr(s.MembersCanForkPrivateRepositories),
		WebCommitSignoffRequired:                         boolPtr(s.WebCommitSignoffRequired),
		TwoFactorRequirementEnabled:                      boolPtr(s.TwoFactorRequirement),
		AdvancedSecurityEnabledForNewRepos:                boolPtr(s.AdvancedSecurityEnabledForNewRepositories),
		DependabotAlertsEnabledForNewRepos:                boolPtr(s.DependabotAlertsEnabledForNewRepositories),
		DependabotSecurityUpdatesEnabledForNewRepos:       boolPtr(s.DependabotSecurityUpdatesEnabledForNewRepos),
		DependencyGraphEnabledForNewRepos:                 boolPtr(s.DependencyGraphEnabledForNewRepositories),
		SecretScanningEnabledForNewRepos:                  boolPtr(s.SecretScanningEnabledForNewRepositories),
		SecretScanningPushProtectionEnabledForNewRepos:    boolPtr(s.SecretScanningPushProtectionForNewRepos),
		HasOrganizationProjects:                           boolPtr(s.HasOrganizationProjects),
		HasRepositoryProjects:                             boolPtr(s.HasRepositoryProjects),
	}
}

// FromProviderWorkflowSettings builds the org-level Actions settings
// projection from the go-github actions permissions/default-workflow-
// permissions responses, which GitHub splits across two endpoints.
func FromProviderWorkflowSettings(
	perms *github.ActionsPermissions,
	defaults *github.DefaultWorkflowPermissionOrganization,
) model.OrganizationWorkflowSettings {
	out := model.OrganizationWorkflowSettings{}

	if perms != nil {
		out.EnabledRepositories = setStr(perms.EnabledRepositories)
		out.AllowedActions = setStr(perms.AllowedActions)
	}

	if defaults != nil {
		out.DefaultWorkflowPermissions = setStr((*string)(defaults.DefaultWorkflowPermissions))
		out.ActionsCanApprovePullRequests = setBool(defaults.CanApprovePullRequestReviews)
	}

	return out
}

// ToProviderWorkflowSettings splits s back into the two provider request
// shapes GitHub's Actions API expects.
func ToProviderWorkflowSettings(s model.OrganizationWorkflowSettings) (
	*github.ActionsPermissions,
	*github.DefaultWorkflowPermissionOrganization,
) {
	perms := &github.ActionsPermissions{
		EnabledRepositories: strPtr(s.EnabledRepositories),
		AllowedActions:      strPtr(s.AllowedActions),
	}

	var defaultPerm *github.DefaultWorkflowPermissionString
	if v, ok := s.DefaultWorkflowPermissions.Get(); ok {
		p := github.DefaultWorkflowPermissionString(v)
		defaultPerm = &p
	}

	defaults := &github.DefaultWorkflowPermissionOrganization{
		DefaultWorkflowPermissions:  defaultPerm,
		CanApprovePullRequestReviews: boolPtr(s.ActionsCanApprovePullRequests),
	}

	return perms, defaults
}
