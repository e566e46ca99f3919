package rest

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/diff"
	"github.com/otterdog-go/otterdog/internal/mapping"
	"github.com/otterdog-go/otterdog/internal/model"
)

// Apply implements apply.Dispatcher for every entity kind REST can create,
// update, or delete directly. Branch protection rules are excluded (they
// require the GraphQL transport, see internal/provider/graphql); the
// composite dispatcher in internal/provider routes those there instead.
func (c *Client) Apply(ctx context.Context, p diff.LivePatch) error {
	switch obj := p.Object.(type) {
	case *model.OrganizationWebhook:
		return c.applyOrganizationWebhook(ctx, p, obj)
	case *model.RepositoryWebhook:
		return c.applyRepositoryWebhook(ctx, p, obj)
	case *model.OrganizationSecret:
		return c.applyOrganizationSecret(ctx, p, obj)
	case *model.OrganizationVariable:
		return c.applyOrganizationVariable(ctx, p, obj)
	case *model.CustomProperty:
		return c.applyCustomProperty(ctx, p, obj)
	case *model.OrganizationRole:
		return c.applyOrganizationRole(ctx, p, obj)
	case *model.OrganizationRuleset:
		return c.applyOrganizationRuleset(ctx, p, obj)
	case *model.RepositoryRuleset:
		return c.applyRepositoryRuleset(ctx, p, obj)
	case *model.Team:
		return c.applyTeam(ctx, p, obj)
	case *model.Repository:
		return c.applyRepository(ctx, p, obj)
	case *model.OrganizationSettings:
		return c.applyOrganizationSettings(ctx, p, obj)
	case *model.OrganizationWorkflowSettings:
		return c.applyOrganizationWorkflowSettings(ctx, p, obj)
	case *model.RepositoryWorkflowSettings:
		return c.applyRepositoryWorkflowSettings(ctx, p, obj)
	case *model.RepositorySecret:
		return c.applyRepositorySecret(ctx, p, obj)
	case *model.RepositoryVariable:
		return c.applyRepositoryVariable(ctx, p, obj)
	case *model.Environment:
		return c.applyEnvironment(ctx, p, obj)
	case *model.EnvironmentSecret:
		return c.applyEnvironmentSecret(ctx, p, obj)
	case *model.EnvironmentVariable:
		return c.applyEnvironmentVariable(ctx, p, obj)
	case *model.TeamPermission:
		return c.applyTeamPermission(ctx, p, obj)
	default:
		return errors.Newf("rest: no writer registered for %T", obj)
	}
}

func (c *Client) applyOrganizationWebhook(ctx context.Context, p diff.LivePatch, w *model.OrganizationWebhook) error {
	org := c.orgFromPath(p.Path)
	req := mapping.ToProviderOrganizationWebhook(*w)

	switch p.Operation {
	case diff.OpAdd:
		_, _, err := c.Organizations.CreateHook(ctx, org, req)

		return errors.Wrap(err, "creating organization webhook")
	case diff.OpChange:
		id, err := c.findOrganizationHookID(ctx, org, w.URL)
		if err != nil {
			return err
		}

		_, _, err = c.Organizations.EditHook(ctx, org, id, req)

		return errors.Wrap(err, "updating organization webhook")
	case diff.OpRemove:
		id, err := c.findOrganizationHookID(ctx, org, w.URL)
		if err != nil {
			return err
		}

		_, err = c.Organizations.DeleteHook(ctx, org, id)

		return errors.Wrap(err, "deleting organization webhook")
	}

	return nil
}

func (c *Client) findOrganizationHookID(ctx context.Context, org, url string) (int64, error) {
	hooks, _, err := c.Organizations.ListHooks(ctx, org, &github.ListOptions{PerPage: 100})
	if err != nil {
		return 0, errors.Wrap(err, "listing organization webhooks")
	}

	for _, h := range hooks {
		if h.GetURL() == url || h.GetConfig().GetURL() == url {
			return h.GetID(), nil
		}
	}

	return 0, errors.Newf("organization webhook %q not found", url)
}

func (c *Client) applyRepositoryWebhook(ctx context.Context, p diff.LivePatch, w *model.RepositoryWebhook) error {
	owner, repo := c.ownerRepoFromPath(p.Path)
	req := mapping.ToProviderRepositoryWebhook(*w)

	switch p.Operation {
	case diff.OpAdd:
		_, _, err := c.Repositories.CreateHook(ctx, owner, repo, req)

		return errors.Wrap(err, "creating repository webhook")
	case diff.OpChange:
		id, err := c.findRepositoryHookID(ctx, owner, repo, w.URL)
		if err != nil {
			return err
		}

		_, _, err = c.Repositories.EditHook(ctx, owner, repo, id, req)

		return errors.Wrap(err, "updating repository webhook")
	case diff.OpRemove:
		id, err := c.findRepositoryHookID(ctx, owner, repo, w.URL)
		if err != nil {
			return err
		}

		_, err = c.Repositories.DeleteHook(ctx, owner, repo, id)

		return errors.Wrap(err, "deleting repository webhook")
	}

	return nil
}

func (c *Client) findRepositoryHookID(ctx context.Context, owner, repo, url string) (int64, error) {
	hooks, _, err := c.Repositories.ListHooks(ctx, owner, repo, &github.ListOptions{PerPage: 100})
	if err != nil {
		return 0, errors.Wrap(err, "listing repository webhooks")
	}

	for _, h := range hooks {
		if h.GetURL() == url || h.GetConfig().GetURL() == url {
			return h.GetID(), nil
		}
	}

	return 0, errors.Newf("repository webhook %q not found", url)
}

func (c *Client) applyOrganizationSecret(ctx context.Context, p diff.LivePatch, s *model.OrganizationSecret) error {
	org := c.orgFromPath(p.Path)

	if p.Operation == diff.OpRemove {
		_, err := c.Actions.DeleteOrgSecret(ctx, org, s.Name)

		return errors.Wrap(err, "deleting organization secret")
	}

	plaintext, ok := s.Value.Get()
	if !ok || model.IsDummySecret(plaintext) {
		return errors.Newf("refusing to write organization secret %q with no resolvable value", s.Name)
	}

	encrypted, keyID, err := c.EncryptSecretForOrg(ctx, org, plaintext)
	if err != nil {
		return err
	}

	req := mapping.ToProviderOrganizationSecret(*s, encrypted, keyID)

	_, err = c.Actions.CreateOrUpdateOrgSecret(ctx, org, req)

	return errors.Wrap(err, "writing organization secret")
}

func (c *Client) applyOrganizationVariable(ctx context.Context, p diff.LivePatch, v *model.OrganizationVariable) error {
	org := c.orgFromPath(p.Path)
	req := mapping.ToProviderOrganizationVariable(*v)

	switch p.Operation {
	case diff.OpAdd:
		_, err := c.Actions.CreateOrgVariable(ctx, org, req)

		return errors.Wrap(err, "creating organization variable")
	case diff.OpChange:
		_, err := c.Actions.UpdateOrgVariable(ctx, org, req)

		return errors.Wrap(err, "updating organization variable")
	case diff.OpRemove:
		_, err := c.Actions.DeleteOrgVariable(ctx, org, v.Name)

		return errors.Wrap(err, "deleting organization variable")
	}

	return nil
}

func (c *Client) applyCustomProperty(ctx context.Context, p diff.LivePatch, prop *model.CustomProperty) error {
	org := c.orgFromPath(p.Path)

	if p.Operation == diff.OpRemove {
		_, err := c.Organizations.RemoveCustomProperty(ctx, org, prop.Name)

		return errors.Wrap(err, "removing custom property")
	}

	req := mapping.ToProviderCustomProperty(*prop)
	_, _, err := c.Organizations.CreateOrUpdateCustomProperty(ctx, org, prop.Name, req)

	return errors.Wrap(err, "writing custom property")
}

func (c *Client) applyOrganizationRole(ctx context.Context, p diff.LivePatch, role *model.OrganizationRole) error {
	org := c.orgFromPath(p.Path)
	req := mapping.ToProviderOrganizationRole(*role)

	switch p.Operation {
	case diff.OpAdd:
		_, _, err := c.Organizations.CreateCustomRole(ctx, org, req)

		return errors.Wrap(err, "creating organization role")
	case diff.OpChange:
		id, err := c.findOrganizationRoleID(ctx, org, role.Name)
		if err != nil {
			return err
		}

		_, _, err = c.Organizations.UpdateCustomRole(ctx, org, id, req)

		return errors.Wrap(err, "updating organization role")
	case diff.OpRemove:
		id, err := c.findOrganizationRoleID(ctx, org, role.Name)
		if err != nil {
			return err
		}

		_, err = c.Organizations.DeleteCustomRole(ctx, org, id)

		return errors.Wrap(err, "deleting organization role")
	}

	return nil
}

func (c *Client) findOrganizationRoleID(ctx context.Context, org, name string) (int64, error) {
	roles, _, err := c.Organizations.ListCustomRoles(ctx, org)
	if err != nil {
		return 0, errors.Wrap(err, "listing organization roles")
	}

	for _, r := range roles.CustomRepoRoles {
		if r.GetName() == name {
			return r.GetID(), nil
		}
	}

	return 0, errors.Newf("organization role %q not found", name)
}

func (c *Client) applyOrganizationRuleset(ctx context.Context, p diff.LivePatch, rs *model.OrganizationRuleset) error {
	org := c.orgFromPath(p.Path)
	req := mapping.ToProviderRuleset(rs.Ruleset)

	switch p.Operation {
	case diff.OpAdd:
		_, _, err := c.Organizations.CreateOrganizationRuleset(ctx, org, *req)

		return errors.Wrap(err, "creating organization ruleset")
	case diff.OpChange:
		id, err := c.findOrganizationRulesetID(ctx, org, rs.Name)
		if err != nil {
			return err
		}

		_, _, err = c.Organizations.UpdateOrganizationRuleset(ctx, org, id, *req)

		return errors.Wrap(err, "updating organization ruleset")
	case diff.OpRemove:
		id, err := c.findOrganizationRulesetID(ctx, org, rs.Name)
		if err != nil {
			return err
		}

		_, err = c.Organizations.DeleteOrganizationRuleset(ctx, org, id)

		return errors.Wrap(err, "deleting organization ruleset")
	}

	return nil
}

func (c *Client) findOrganizationRulesetID(ctx context.Context, org, name string) (int64, error) {
	rulesets, _, err := c.Organizations.GetAllOrganizationRulesets(ctx, org)
	if err != nil {
		return 0, errors.Wrap(err, "listing organization rulesets")
	}

	for _, rs := range rulesets {
		if rs.Name == name {
			return rs.GetID(), nil
		}
	}

	return 0, errors.Newf("organization ruleset %q not found", name)
}

func (c *Client) applyRepositoryRuleset(ctx context.Context, p diff.LivePatch, rs *model.RepositoryRuleset) error {
	owner, repo := c.ownerRepoFromPath(p.Path)
	req := mapping.ToProviderRuleset(rs.Ruleset)

	switch p.Operation {
	case diff.OpAdd:
		_, _, err := c.Repositories.CreateRuleset(ctx, owner, repo, *req)

		return errors.Wrap(err, "creating repository ruleset")
	case diff.OpChange:
		id, err := c.findRepositoryRulesetID(ctx, owner, repo, rs.Name)
		if err != nil {
			return err
		}

		_, _, err = c.Repositories.UpdateRuleset(ctx, owner, repo, id, *req)

		return errors.Wrap(err, "updating repository ruleset")
	case diff.OpRemove:
		id, err := c.findRepositoryRulesetID(ctx, owner, repo, rs.Name)
		if err != nil {
			return err
		}

		_, err = c.Repositories.DeleteRuleset(ctx, owner, repo, id)

		return errors.Wrap(err, "deleting repository ruleset")
	}

	return nil
}

func (c *Client) findRepositoryRulesetID(ctx context.Context, owner, repo, name string) (int64, error) {
	rulesets, _, err := c.Repositories.GetAllRulesets(ctx, owner, repo, &github.RepositoryListRulesetsOptions{})
	if err != nil {
		return 0, errors.Wrap(err, "listing repository rulesets")
	}

	for _, rs := range rulesets {
		if rs.Name == name {
			return rs.GetID(), nil
		}
	}

	return 0, errors.Newf("repository ruleset %q not found", name)
}

func (c *Client) applyTeam(ctx context.Context, p diff.LivePatch, t *model.Team) error {
	org := c.orgFromPath(p.Path)
	req := mapping.ToProviderTeam(*t)

	switch p.Operation {
	case diff.OpAdd:
		_, _, err := c.Teams.CreateTeam(ctx, org, *req)

		return errors.Wrap(err, "creating team")
	case diff.OpChange:
		_, _, err := c.Teams.EditTeamBySlug(ctx, org, t.Name, *req, false)

		return errors.Wrap(err, "updating team")
	case diff.OpRemove:
		_, err := c.Teams.DeleteTeamBySlug(ctx, org, t.Name)

		return errors.Wrap(err, "deleting team")
	}

	return nil
}

func (c *Client) applyRepository(ctx context.Context, p diff.LivePatch, r *model.Repository) error {
	org := c.orgFromPath(p.Path)
	req := mapping.ToProviderRepository(*r)

	switch p.Operation {
	case diff.OpAdd:
		_, _, err := c.Repositories.Create(ctx, org, req)

		return errors.Wrap(err, "creating repository")
	case diff.OpChange:
		_, _, err := c.Repositories.Edit(ctx, org, r.Name, req)

		return errors.Wrap(err, "updating repository")
	case diff.OpRemove:
		_, err := c.Repositories.Delete(ctx, org, r.Name)

		return errors.Wrap(err, "deleting repository")
	}

	return nil
}

// applyOrganizationSettings writes the organization settings singleton.
// diffSingleton only ever emits OpChange for it, so no add/remove handling
// is needed.
func (c *Client) applyOrganizationSettings(ctx context.Context, p diff.LivePatch, s *model.OrganizationSettings) error {
	org := c.orgFromPath(p.Path)
	req := mapping.ToProviderOrganizationSettings(*s)

	_, _, err := c.Organizations.Edit(ctx, org, req)

	return errors.Wrap(err, "updating organization settings")
}

// applyOrganizationWorkflowSettings writes the org-level Actions defaults,
// split across the two endpoints GitHub itself splits them over (§3,
// mirroring FromProviderWorkflowSettings's read side).
func (c *Client) applyOrganizationWorkflowSettings(ctx context.Context, p diff.LivePatch, s *model.OrganizationWorkflowSettings) error {
	org := c.orgFromPath(p.Path)
	perms, defaults := mapping.ToProviderWorkflowSettings(*s)

	if _, _, err := c.Actions.EditActionsPermissions(ctx, org, *perms); err != nil {
		return errors.Wrap(err, "updating organization actions permissions")
	}

	_, _, err := c.Actions.EditDefaultWorkflowPermissionsInOrganization(ctx, org, *defaults)

	return errors.Wrap(err, "updating organization default workflow permissions")
}

// applyRepositoryWorkflowSettings writes the per-repository Actions
// defaults, mirroring applyOrganizationWorkflowSettings at repository scope.
func (c *Client) applyRepositoryWorkflowSettings(ctx context.Context, p diff.LivePatch, s *model.RepositoryWorkflowSettings) error {
	owner, repo := c.ownerRepoFromPath(p.Path)
	perms, defaults := mapping.ToProviderRepositoryWorkflowSettings(*s)

	if _, _, err := c.Repositories.EditActionsPermissions(ctx, owner, repo, *perms); err != nil {
		return errors.Wrap(err, "updating repository actions permissions")
	}

	if _, _, err := c.Repositories.EditDefaultWorkflowPermissions(ctx, owner, repo, *defaults); err != nil {
		return errors.Wrap(err, "updating repository default workflow permissions")
	}

	if allowed, ok := s.AllowedActions.Get(); ok && allowed == "selected" {
		if selected, ok := s.SelectedActions.Get(); ok {
			_, _, err := c.Repositories.EditActionsAllowed(ctx, owner, repo, *mapping.ToProviderActionsAllowed(selected))

			return errors.Wrap(err, "updating repository selected actions")
		}
	}

	return nil
}

func (c *Client) applyRepositorySecret(ctx context.Context, p diff.LivePatch, s *model.RepositorySecret) error {
	owner, repo := c.ownerRepoFromPath(p.Path)

	if p.Operation == diff.OpRemove {
		_, err := c.Actions.DeleteRepoSecret(ctx, owner, repo, s.Name)

		return errors.Wrap(err, "deleting repository secret")
	}

	plaintext, ok := s.Value.Get()
	if !ok || model.IsDummySecret(plaintext) {
		return errors.Newf("refusing to write repository secret %q with no resolvable value", s.Name)
	}

	encrypted, keyID, err := c.EncryptSecretForRepo(ctx, owner, repo, plaintext)
	if err != nil {
		return err
	}

	req := mapping.ToProviderRepositorySecret(*s, encrypted, keyID)

	_, err = c.Actions.CreateOrUpdateRepoSecret(ctx, owner, repo, req)

	return errors.Wrap(err, "writing repository secret")
}

func (c *Client) applyRepositoryVariable(ctx context.Context, p diff.LivePatch, v *model.RepositoryVariable) error {
	owner, repo := c.ownerRepoFromPath(p.Path)
	req := mapping.ToProviderRepositoryVariable(*v)

	switch p.Operation {
	case diff.OpAdd:
		_, err := c.Actions.CreateRepoVariable(ctx, owner, repo, req)

		return errors.Wrap(err, "creating repository variable")
	case diff.OpChange:
		_, err := c.Actions.UpdateRepoVariable(ctx, owner, repo, req)

		return errors.Wrap(err, "updating repository variable")
	case diff.OpRemove:
		_, err := c.Actions.DeleteRepoVariable(ctx, owner, repo, v.Name)

		return errors.Wrap(err, "deleting repository variable")
	}

	return nil
}

func (c *Client) applyEnvironment(ctx context.Context, p diff.LivePatch, e *model.Environment) error {
	owner, repo := c.ownerRepoFromPath(p.Path)

	if p.Operation == diff.OpRemove {
		_, err := c.Repositories.DeleteEnvironment(ctx, owner, repo, e.Name)

		return errors.Wrap(err, "deleting environment")
	}

	req := mapping.ToProviderEnvironment(*e)

	_, _, err := c.Repositories.CreateUpdateEnvironment(ctx, owner, repo, e.Name, req)

	return errors.Wrap(err, "writing environment")
}

func (c *Client) applyEnvironmentSecret(ctx context.Context, p diff.LivePatch, s *model.EnvironmentSecret) error {
	owner, repo, env := c.environmentFromPath(p.Path)

	repoID, err := c.repositoryID(ctx, owner, repo)
	if err != nil {
		return err
	}

	if p.Operation == diff.OpRemove {
		_, err := c.Actions.DeleteEnvSecret(ctx, int(repoID), env, s.Name)

		return errors.Wrap(err, "deleting environment secret")
	}

	plaintext, ok := s.Value.Get()
	if !ok || model.IsDummySecret(plaintext) {
		return errors.Newf("refusing to write environment secret %q with no resolvable value", s.Name)
	}

	encrypted, keyID, err := c.EncryptSecretForEnvironment(ctx, repoID, env, plaintext)
	if err != nil {
		return err
	}

	req := mapping.ToProviderEnvironmentSecret(*s, encrypted, keyID)

	_, err = c.Actions.CreateOrUpdateEnvSecret(ctx, int(repoID), env, req)

	return errors.Wrap(err, "writing environment secret")
}

func (c *Client) applyEnvironmentVariable(ctx context.Context, p diff.LivePatch, v *model.EnvironmentVariable) error {
	owner, repo, env := c.environmentFromPath(p.Path)

	repoID, err := c.repositoryID(ctx, owner, repo)
	if err != nil {
		return err
	}

	req := mapping.ToProviderEnvironmentVariable(*v)

	switch p.Operation {
	case diff.OpAdd:
		_, err := c.Actions.CreateEnvVariable(ctx, int(repoID), env, req)

		return errors.Wrap(err, "creating environment variable")
	case diff.OpChange:
		_, err := c.Actions.UpdateEnvVariable(ctx, int(repoID), env, req)

		return errors.Wrap(err, "updating environment variable")
	case diff.OpRemove:
		_, err := c.Actions.DeleteEnvVariable(ctx, int(repoID), env, v.Name)

		return errors.Wrap(err, "deleting environment variable")
	}

	return nil
}

func (c *Client) applyTeamPermission(ctx context.Context, p diff.LivePatch, tp *model.TeamPermission) error {
	org := c.orgFromPath(p.Path)
	owner, repo := c.ownerRepoFromPath(p.Path)

	if p.Operation == diff.OpRemove {
		_, err := c.Teams.RemoveTeamRepoBySlug(ctx, org, tp.TeamName, owner, repo)

		return errors.Wrap(err, "removing team repository permission")
	}

	opts := &github.TeamAddTeamRepoOptions{Permission: tp.Permission.GetOr("")}

	_, err := c.Teams.AddTeamRepoBySlug(ctx, org, tp.TeamName, owner, repo, opts)

	return errors.Wrap(err, "writing team repository permission")
}
