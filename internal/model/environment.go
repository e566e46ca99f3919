package model

import "github.com/otterdog-go/otterdog/internal/value"

// DeploymentBranchPolicy enumerates which branches may deploy to an
// environment (§4.3 "Environment.deployment_branch_policy").
type DeploymentBranchPolicy string

const (
	DeploymentBranchPolicyAll       DeploymentBranchPolicy = "all"
	DeploymentBranchPolicyProtected DeploymentBranchPolicy = "protected"
	DeploymentBranchPolicySelected  DeploymentBranchPolicy = "selected"
)

// Environment is a deployment environment owning its own secrets and
// variables (§3, ownership rules).
type Environment struct {
	Name                   string // key
	WaitTimer              value.Value[int]
	Reviewers              value.Value[[]string] // actor tokens: @user or @org/team
	DeploymentBranchPolicy value.Value[string]
	BranchPolicyNames      value.Value[[]string]
	PreventSelfReview      value.Value[bool]

	Secrets   []*EnvironmentSecret
	Variables []*EnvironmentVariable
}

func (e *Environment) Key() string { return e.Name }

func (e *Environment) Validate(ctx *ValidationContext, parent ModelObject) {
	path := "environments[" + e.Name + "]"
	if repo, ok := parent.(*Repository); ok {
		path = "repositories[" + repo.Name + "]." + path
	}

	if policy, ok := e.DeploymentBranchPolicy.Get(); ok {
		switch DeploymentBranchPolicy(policy) {
		case DeploymentBranchPolicyAll, DeploymentBranchPolicyProtected, DeploymentBranchPolicySelected:
		default:
			ctx.Add(SeverityError, path, "deployment_branch_policy %q must be all|protected|selected", policy)
		}
	}

	for _, s := range e.Secrets {
		s.Validate(ctx, e)
	}

	for _, v := range e.Variables {
		v.Validate(ctx, e)
	}
}

// GetModelObjects yields the environment and each owned secret/variable,
// each paired with its parent, as required by §4.2's get_model_objects.
func (e *Environment) GetModelObjects() []ObjectWithParent {
	out := []ObjectWithParent{{Object: e, Parent: nil}}

	for _, s := range e.Secrets {
		out = append(out, ObjectWithParent{Object: s, Parent: e})
	}

	for _, v := range e.Variables {
		out = append(out, ObjectWithParent{Object: v, Parent: e})
	}

	return out
}
