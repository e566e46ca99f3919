package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

func FromProviderEnvironment(e *github.Environment) model.Environment {
	out := model.Environment{Name: e.GetName()}

	if e.WaitTimer != nil {
		out.WaitTimer = value.Of(*e.WaitTimer)
	}

	if e.DeploymentBranchPolicy != nil {
		policy := "all"

		switch {
		case e.DeploymentBranchPolicy.CustomBranchPolicies:
			policy = "selected"
		case e.DeploymentBranchPolicy.ProtectedBranches:
			policy = "protected"
		}

		out.DeploymentBranchPolicy = value.Of(policy)
	}

	reviewers := make([]string, 0, len(e.ProtectionRules))

	for _, pr := range e.ProtectionRules {
		for _, r := range pr.Reviewers {
			if r.Reviewer != nil {
				reviewers = append(reviewers, r.Reviewer.GetLogin())
			}
		}
	}

	if len(reviewers) > 0 {
		out.Reviewers = value.Of(reviewers)
	}

	return out
}

func ToProviderEnvironment(e model.Environment) *github.CreateUpdateEnvironment {
	req := &github.CreateUpdateEnvironment{}

	if wt, ok := e.WaitTimer.Get(); ok {
		req.WaitTimer = &wt
	}

	if policy, ok := e.DeploymentBranchPolicy.Get(); ok {
		req.DeploymentBranchPolicy = &github.BranchPolicy{
			ProtectedBranches:    github.Ptr(policy == "protected"),
			CustomBranchPolicies: github.Ptr(policy == "selected"),
		}
	}

	// Reviewers are submitted as actor-type/actor-id pairs resolved by the
	// provider layer (C7) from the declared @user / @org/team tokens.
	return req
}
