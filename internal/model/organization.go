package model

// Organization is the root entity, keyed by github_id (§3). It exclusively
// owns every collection except repository subtrees.
type Organization struct {
	GithubID string
	Name     string // declarative project name, distinct from GithubID

	Settings         OrganizationSettings
	WorkflowSettings OrganizationWorkflowSettings

	Webhooks         []*OrganizationWebhook
	Secrets          []*OrganizationSecret
	Variables        []*OrganizationVariable
	CustomProperties []*CustomProperty
	Roles            []*OrganizationRole
	Rulesets         []*OrganizationRuleset
	Teams            []*Team
	Repositories     []*Repository
	Blueprints       []*Blueprint

	// Plan is the organization's GitHub billing plan, used by the
	// validator to gate enterprise-only settings (§3, §8 scenario S6).
	Plan string
}

func (o *Organization) Key() string { return o.GithubID }

// ValidateOrganization is the top-level entry point (C6): it seeds a fresh
// ValidationContext from org's billing plan and repository list, then runs
// every entity's own Validate plus the organization-wide invariants listed
// in §4.6 that don't belong to any single entity.
func ValidateOrganization(o *Organization) *ValidationContext {
	ctx := NewValidationContext(o.Plan)

	for _, r := range o.Repositories {
		ctx.registerRepo(r.Name)
	}

	o.Validate(ctx, nil)

	return ctx
}

// Validate implements ModelObject for the root entity. Callers external to
// this package should use ValidateOrganization instead, which also seeds
// the ValidationContext.
func (o *Organization) Validate(ctx *ValidationContext, _ ModelObject) {
	o.Settings.Validate(ctx, o)
	o.WorkflowSettings.Validate(ctx, o)

	for _, wh := range o.Webhooks {
		wh.Validate(ctx, o)
	}

	for _, s := range o.Secrets {
		s.Validate(ctx, o)
	}

	for _, v := range o.Variables {
		v.Validate(ctx, o)
	}

	for _, cp := range o.CustomProperties {
		cp.Validate(ctx, o)
	}

	for _, role := range o.Roles {
		role.Validate(ctx, o)
	}

	for _, rs := range o.Rulesets {
		rs.Validate(ctx, o)
	}

	for _, t := range o.Teams {
		t.Validate(ctx, o)
	}

	for _, r := range o.Repositories {
		r.Validate(ctx, o)
	}

	for _, bp := range o.Blueprints {
		bp.Validate(ctx, o)
	}

	validateTeamParents(ctx, o)
	validateAliasCollisions(ctx, o)
}

// validateTeamParents ensures every declared parent_team references a team
// that actually exists, and that the parent graph has no cycles.
func validateTeamParents(ctx *ValidationContext, o *Organization) {
	byName := make(map[string]*Team, len(o.Teams))
	for _, t := range o.Teams {
		byName[t.Name] = t
	}

	for _, t := range o.Teams {
		parent, ok := t.ParentTeam.Get()
		if !ok || parent == "" {
			continue
		}

		if _, exists := byName[parent]; !exists {
			ctx.Add(SeverityError, "teams["+t.Name+"]", "parent_team %q does not exist", parent)

			continue
		}

		seen := map[string]struct{}{t.Name: {}}
		cur := parent

		for cur != "" {
			if _, loop := seen[cur]; loop {
				ctx.Add(SeverityError, "teams["+t.Name+"]", "parent_team chain forms a cycle at %q", cur)

				break
			}

			seen[cur] = struct{}{}

			next, ok := byName[cur]
			if !ok {
				break
			}

			cur, _ = next.ParentTeam.Get()
		}
	}
}

// validateAliasCollisions enforces §3's "aliases never collide with a
// primary key" invariant across webhooks and repositories.
func validateAliasCollisions(ctx *ValidationContext, o *Organization) {
	names := make(map[string]struct{}, len(o.Repositories))
	for _, r := range o.Repositories {
		names[r.Name] = struct{}{}
	}

	for _, r := range o.Repositories {
		for _, alias := range r.Aliases_ {
			if _, clash := names[alias]; clash {
				ctx.Add(SeverityError, "repositories["+r.Name+"]", "alias %q collides with a declared repository name", alias)
			}
		}
	}

	urls := make(map[string]struct{}, len(o.Webhooks))
	for _, w := range o.Webhooks {
		urls[w.URL] = struct{}{}
	}

	for _, w := range o.Webhooks {
		for _, alias := range w.Webhook.Aliases {
			if _, clash := urls[alias]; clash {
				ctx.Add(SeverityError, "webhooks["+w.URL+"]", "alias %q collides with a declared webhook url", alias)
			}
		}
	}
}

// GetModelObjects yields the organization plus the transitive closure of
// every owned entity (§4.2), in the deterministic order §4.4 specifies for
// diff generation: settings, workflow_settings, custom_properties, roles,
// rulesets, teams, webhooks, secrets, variables, then repositories (each
// with its own subtree in repo-internal order).
func (o *Organization) GetModelObjects() []ObjectWithParent {
	out := []ObjectWithParent{
		{Object: o, Parent: nil},
		{Object: &o.Settings, Parent: o},
		{Object: &o.WorkflowSettings, Parent: o},
	}

	for _, cp := range o.CustomProperties {
		out = append(out, ObjectWithParent{Object: cp, Parent: o})
	}

	for _, role := range o.Roles {
		out = append(out, ObjectWithParent{Object: role, Parent: o})
	}

	for _, rs := range o.Rulesets {
		out = append(out, ObjectWithParent{Object: rs, Parent: o})
	}

	for _, t := range o.Teams {
		out = append(out, ObjectWithParent{Object: t, Parent: o})
	}

	for _, wh := range o.Webhooks {
		out = append(out, ObjectWithParent{Object: wh, Parent: o})
	}

	for _, s := range o.Secrets {
		out = append(out, ObjectWithParent{Object: s, Parent: o})
	}

	for _, v := range o.Variables {
		out = append(out, ObjectWithParent{Object: v, Parent: o})
	}

	for _, r := range o.Repositories {
		out = append(out, r.GetModelObjects()...)
	}

	for _, bp := range o.Blueprints {
		out = append(out, ObjectWithParent{Object: bp, Parent: o})
	}

	return out
}
