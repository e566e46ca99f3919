package model

import "github.com/otterdog-go/otterdog/internal/value"

// OrganizationRole is a custom organization-level role that can be
// assigned to members or teams (§3).
type OrganizationRole struct {
	Name        string // key
	Description value.Value[string]
	Permissions value.Value[[]string]
	BaseRole    value.Value[string] // read|triage|write|maintain|admin
}

func (r *OrganizationRole) Key() string { return r.Name }

func (r *OrganizationRole) Validate(ctx *ValidationContext, _ ModelObject) {
	path := "roles[" + r.Name + "]"

	if base, ok := r.BaseRole.Get(); ok {
		switch base {
		case "read", "triage", "write", "maintain", "admin":
		default:
			ctx.Add(SeverityError, path, "base_role %q is not a recognized base role", base)
		}
	}

	if perms, ok := r.Permissions.Get(); ok && len(perms) == 0 {
		if _, hasBase := r.BaseRole.Get(); !hasBase {
			ctx.Add(SeverityWarning, path, "role has no permissions and no base_role")
		}
	}
}
