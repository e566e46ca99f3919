package model

import "github.com/otterdog-go/otterdog/internal/value"

// Variable holds the fields shared by OrganizationVariable,
// RepositoryVariable, and EnvironmentVariable (§3).
type Variable struct {
	Name  string // key
	Value value.Value[string]
}

// OrganizationVariable is an organization-level variable (§3).
type OrganizationVariable struct {
	Variable
	Visibility           value.Value[string]
	SelectedRepositories value.Value[[]string]
}

func (v *OrganizationVariable) Key() string { return v.Variable.Name }

func (v *OrganizationVariable) Validate(ctx *ValidationContext, _ ModelObject) {
	path := "variables[" + v.Name + "]"

	if vis, ok := v.Visibility.Get(); ok && vis != "public" && vis != "private" && vis != "selected" {
		ctx.Add(SeverityError, path, "visibility %q must be public|private|selected", vis)
	}

	if vis, ok := v.Visibility.Get(); ok && vis != "selected" {
		if sel, ok := v.SelectedRepositories.Get(); ok && len(sel) > 0 {
			ctx.Add(SeverityWarning, path, "selected_repositories set but visibility is %q", vis)
		}
	}
}

// RepositoryVariable is a repository-level variable (§3).
type RepositoryVariable struct {
	Variable
}

func (v *RepositoryVariable) Key() string                               { return v.Variable.Name }
func (v *RepositoryVariable) Validate(_ *ValidationContext, _ ModelObject) {}

// EnvironmentVariable is an environment-scoped variable (§3).
type EnvironmentVariable struct {
	Variable
}

func (v *EnvironmentVariable) Key() string                               { return v.Variable.Name }
func (v *EnvironmentVariable) Validate(_ *ValidationContext, _ ModelObject) {}
