package model

import "github.com/otterdog-go/otterdog/internal/value"

// TeamPermission grants a team a permission level on a repository (§3).
type TeamPermission struct {
	TeamName   string // key
	Permission value.Value[string] // pull|triage|push|maintain|admin
}

func (p *TeamPermission) Key() string { return p.TeamName }

func (p *TeamPermission) Validate(ctx *ValidationContext, parent ModelObject) {
	path := "team_permissions[" + p.TeamName + "]"
	if repo, ok := parent.(*Repository); ok {
		path = "repositories[" + repo.Name + "]." + path
	}

	if perm, ok := p.Permission.Get(); ok {
		switch perm {
		case "pull", "triage", "push", "maintain", "admin":
		default:
			ctx.Add(SeverityError, path, "permission %q must be pull|triage|push|maintain|admin", perm)
		}
	}
}
