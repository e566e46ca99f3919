package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

// FromProviderRepository builds the diffable Repository projection from a
// github.Repository. Owned collections (branch protection rules,
// rulesets, webhooks, secrets, variables, environments, team permissions)
// are populated separately by the provider layer (C7), since each needs
// its own paginated fetch; this function covers only repository-scalar
// fields (§4.3).
func FromProviderRepository(r *github.Repository) model.Repository {
	out := model.Repository{
		Name:                     r.GetName(),
		Description:              setStr(r.Description),
		Homepage:                 setStr(r.Homepage),
		Private:                  setBool(r.Private),
		Visibility:               setStr(r.Visibility),
		HasIssues:                setBool(r.HasIssues),
		HasWiki:                  setBool(r.HasWiki),
		HasProjects:              setBool(r.HasProjects),
		HasDiscussions:           setBool(r.HasDiscussions),
		HasDownloads:             setBool(r.HasDownloads),
		IsTemplate:               setBool(r.IsTemplate),
		DefaultBranch:            setStr(r.DefaultBranch),
		AllowSquashMerge:         setBool(r.AllowSquashMerge),
		AllowMergeCommit:         setBool(r.AllowMergeCommit),
		AllowRebaseMerge:         setBool(r.AllowRebaseMerge),
		AllowAutoMerge:           setBool(r.AllowAutoMerge),
		AllowUpdateBranch:        setBool(r.AllowUpdateBranch),
		DeleteBranchOnMerge:      setBool(r.DeleteBranchOnMerge),
		MergeCommitTitle:         setStr(r.MergeCommitTitle),
		MergeCommitMessage:       setStr(r.MergeCommitMessage),
		SquashMergeCommitTitle:   setStr(r.SquashMergeCommitTitle),
		SquashMergeCommitMessage: setStr(r.SquashMergeCommitMessage),
		Archived:                 setBool(r.Archived),
		AllowForking:             setBool(r.AllowForking),
		WebCommitSignoffRequired: setBool(r.WebCommitSignoffRequired),
		GitignoreTemplate:        setStr(nil),
		LicenseTemplate:          setStr(nil),
	}

	if r.TemplateRepository != nil {
		out.TemplateRepository = value.Of(r.TemplateRepository.GetFullName())
	}

	if len(r.Topics) > 0 {
		out.Topics = value.Of(r.Topics)
	}

	if sa := r.GetSecurityAndAnalysis(); sa != nil {
		if ss := sa.GetSecretScanning(); ss != nil {
			out.SecretScanning = setStr(ss.Status)
		}

		if sspp := sa.GetSecretScanningPushProtection(); sspp != nil {
			out.SecretScanningPushProtection = setStr(sspp.Status)
		}

		if dsu := sa.GetDependabotSecurityUpdates(); dsu != nil {
			out.DependabotSecurityUpdates = setStr(dsu.Status)
		}
	}

	if r.Plan != nil {
		out.Plan = value.Of(r.Plan.GetName())
	}

	return out
}

// ToProviderRepository renders only the Set scalar fields of m into a
// github.Repository update payload.
func ToProviderRepository(m model.Repository) *github.Repository {
	out := &github.Repository{
		Name:                     github.Ptr(m.Name),
		Description:              strPtr(m.Description),
		Homepage:                 strPtr(m.Homepage),
		Private:                  boolPtr(m.Private),
		Visibility:               strPtr(m.Visibility),
		HasIssues:                boolPtr(m.HasIssues),
		HasWiki:                  boolPtr(m.HasWiki),
		HasProjects:              boolPtr(m.HasProjects),
		HasDiscussions:           boolPtr(m.HasDiscussions),
		HasDownloads:             boolPtr(m.HasDownloads),
		IsTemplate:               boolPtr(m.IsTemplate),
		DefaultBranch:            strPtr(m.DefaultBranch),
		AllowSquashMerge:         boolPtr(m.AllowSquashMerge),
		AllowMergeCommit:         boolPtr(m.AllowMergeCommit),
		AllowRebaseMerge:         boolPtr(m.AllowRebaseMerge),
		AllowAutoMerge:           boolPtr(m.AllowAutoMerge),
		AllowUpdateBranch:        boolPtr(m.AllowUpdateBranch),
		DeleteBranchOnMerge:      boolPtr(m.DeleteBranchOnMerge),
		MergeCommitTitle:         strPtr(m.MergeCommitTitle),
		MergeCommitMessage:       strPtr(m.MergeCommitMessage),
		SquashMergeCommitTitle:   strPtr(m.SquashMergeCommitTitle),
		SquashMergeCommitMessage: strPtr(m.SquashMergeCommitMessage),
		Archived:                 boolPtr(m.Archived),
		AllowForking:             boolPtr(m.AllowForking),
		WebCommitSignoffRequired: boolPtr(m.WebCommitSignoffRequired),
	}

	if topics, ok := m.Topics.Get(); ok {
		out.Topics = topics
	}

	sa := &github.SecurityAndAnalysis{}
	touched := false

	if ss, ok := m.SecretScanning.Get(); ok {
		sa.SecretScanning = &github.SecretScanning{Status: &ss}
		touched = true
	}

	if sspp, ok := m.SecretScanningPushProtection.Get(); ok {
		sa.SecretScanningPushProtection = &github.SecretScanningPushProtection{Status: &sspp}
		touched = true
	}

	if dsu, ok := m.DependabotSecurityUpdates.Get(); ok {
		sa.DependabotSecurityUpdates = &github.DependabotSecurityUpdates{Status: &dsu}
		touched = true
	}

	if touched {
		out.SecurityAndAnalysis = sa
	}

	return out
}

func FromProviderTeamPermissionEntry(teamSlug, permission string) model.TeamPermission {
	return model.TeamPermission{TeamName: teamSlug, Permission: setStr(&permission)}
}
