package rest

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/mapping"
	"github.com/otterdog-go/otterdog/internal/model"
)

// GetOrganization fetches the live state of githubID across every entity
// kind REST serves, assembling a model.Organization (§4.1 component C7,
// the import half). Branch protection rules are fetched by the GraphQL
// provider and merged in by the caller (internal/render), since they are
// not reachable over REST.
func (c *Client) GetOrganization(ctx context.Context, githubID string) (*model.Organization, error) {
	org, _, err := c.Organizations.Get(ctx, githubID)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching organization %q", githubID)
	}

	settings := mapping.FromProviderOrganizationSettings(org)

	perms, _, err := c.Actions.GetActionsPermissions(ctx, githubID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching organization actions permissions")
	}

	defaults, _, err := c.Actions.GetDefaultWorkflowPermissionsInOrganization(ctx, githubID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching organization default workflow permissions")
	}

	workflowSettings := mapping.FromProviderWorkflowSettings(perms, defaults)

	webhooks, err := c.listOrganizationWebhooks(ctx, githubID)
	if err != nil {
		return nil, err
	}

	secrets, err := c.listOrganizationSecrets(ctx, githubID)
	if err != nil {
		return nil, err
	}

	variables, err := c.listOrganizationVariables(ctx, githubID)
	if err != nil {
		return nil, err
	}

	customProps, err := c.listCustomProperties(ctx, githubID)
	if err != nil {
		return nil, err
	}

	roles, err := c.listOrganizationRoles(ctx, githubID)
	if err != nil {
		return nil, err
	}

	rulesets, err := c.listOrganizationRulesets(ctx, githubID)
	if err != nil {
		return nil, err
	}

	teams, err := c.listTeams(ctx, githubID)
	if err != nil {
		return nil, err
	}

	repos, err := c.listRepositories(ctx, githubID)
	if err != nil {
		return nil, err
	}

	return &model.Organization{
		GithubID:         githubID,
		Plan:             org.GetPlan().GetName(),
		Settings:         settings,
		WorkflowSettings: workflowSettings,
		Webhooks:         webhooks,
		Secrets:          secrets,
		Variables:        variables,
		CustomProperties: customProps,
		Roles:            roles,
		Rulesets:         rulesets,
		Teams:            teams,
		Repositories:     repos,
	}, nil
}

func (c *Client) listOrganizationWebhooks(ctx context.Context, org string) ([]*model.OrganizationWebhook, error) {
	var out []*model.OrganizationWebhook

	opts := &github.ListOptions{PerPage: 100}

	for {
		hooks, resp, err := c.Organizations.ListHooks(ctx, org, opts)
		if err != nil {
			return nil, errors.Wrap(err, "listing organization webhooks")
		}

		for _, h := range hooks {
			out = append(out, &model.OrganizationWebhook{Webhook: mapping.FromProviderWebhook(h)})
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return out, nil
}

func (c *Client) listOrganizationSecrets(ctx context.Context, org string) ([]*model.OrganizationSecret, error) {
	var out []*model.OrganizationSecret

	opts := &github.ListOptions{PerPage: 100}

	for {
		secrets, resp, err := c.Actions.ListOrgSecrets(ctx, org, opts)
		if err != nil {
			return nil, errors.Wrap(err, "listing organization secrets")
		}

		for _, s := range secrets.Secrets {
			v := mapping.FromProviderOrganizationSecret(s)
			out = append(out, &v)
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return out, nil
}

func (c *Client) listOrganizationVariables(ctx context.Context, org string) ([]*model.OrganizationVariable, error) {
	var out []*model.OrganizationVariable

	opts := &github.ListOptions{PerPage: 100}

	for {
		vars, resp, err := c.Actions.ListOrgVariables(ctx, org, opts)
		if err != nil {
			return nil, errors.Wrap(err, "listing organization variables")
		}

		for _, v := range vars.Variables {
			mv := mapping.FromProviderOrganizationVariable(v)
			out = append(out, &mv)
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return out, nil
}

func (c *Client) listCustomProperties(ctx context.Context, org string) ([]*model.CustomProperty, error) {
	props, _, err := c.Organizations.GetAllCustomProperties(ctx, org)
	if err != nil {
		return nil, errors.Wrap(err, "listing custom properties")
	}

	out := make([]*model.CustomProperty, 0, len(props))
	for _, p := range props {
		mp := mapping.FromProviderCustomProperty(p)
		out = append(out, &mp)
	}

	return out, nil
}

func (c *Client) listOrganizationRoles(ctx context.Context, org string) ([]*model.OrganizationRole, error) {
	roles, _, err := c.Organizations.ListCustomRoles(ctx, org)
	if err != nil {
		return nil, errors.Wrap(err, "listing organization roles")
	}

	out := make([]*model.OrganizationRole, 0, len(roles.CustomRepoRoles))

	for _, r := range roles.CustomRepoRoles {
		mr := mapping.FromProviderOrganizationRole(r)
		out = append(out, &mr)
	}

	return out, nil
}

func (c *Client) listOrganizationRulesets(ctx context.Context, org string) ([]*model.OrganizationRuleset, error) {
	rulesets, _, err := c.Organizations.GetAllOrganizationRulesets(ctx, org)
	if err != nil {
		return nil, errors.Wrap(err, "listing organization rulesets")
	}

	out := make([]*model.OrganizationRuleset, 0, len(rulesets))

	for _, rs := range rulesets {
		out = append(out, &model.OrganizationRuleset{Ruleset: mapping.FromProviderRuleset(rs)})
	}

	return out, nil
}

func (c *Client) listTeams(ctx context.Context, org string) ([]*model.Team, error) {
	var out []*model.Team

	opts := &github.ListOptions{PerPage: 100}

	for {
		teams, resp, err := c.Teams.ListTeams(ctx, org, opts)
		if err != nil {
			return nil, errors.Wrap(err, "listing teams")
		}

		for _, t := range teams {
			mt := mapping.FromProviderTeam(t)
			out = append(out, &mt)
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return out, nil
}

func (c *Client) listRepositories(ctx context.Context, org string) ([]*model.Repository, error) {
	var out []*model.Repository

	opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: 100}}

	for {
		repos, resp, err := c.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, errors.Wrap(err, "listing repositories")
		}

		for _, r := range repos {
			mr := mapping.FromProviderRepository(r)
			out = append(out, &mr)
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return out, nil
}
