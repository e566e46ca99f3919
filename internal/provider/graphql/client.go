// Package graphql implements the GraphQL-transport slice of the provider
// facade (C1), the only way to reach branch protection rules: GitHub never
// exposed them over REST, so every read and write for this entity kind
// goes through api.github.com/graphql instead (§4.1).
package graphql

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/shurcooL/graphql"
	"golang.org/x/oauth2"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/pkg/logger"
)

const endpoint = "https://api.github.com/graphql"

// Client wraps *graphql.Client with the repository and actor node-ID
// caches branch protection rule reads/writes need: GraphQL addresses
// everything by opaque node ID, never by login or numeric ID.
type Client struct {
	gql *graphql.Client
	log *logger.Logger
	org string

	repoIDMu sync.Mutex
	repoIDs  map[string]graphql.ID // "owner/repo" -> repository node id

	actorIDMu sync.Mutex
	actorIDs  map[string]graphql.ID // actor token raw -> node id
}

// NewClient builds an authenticated GraphQL client, bearer-token style,
// matching the original implementation's plain Authorization header
// (providers/github/graphql.py) but routed through golang.org/x/oauth2's
// StaticTokenSource so the transport composes with any http.RoundTripper
// middleware added later. Like rest.Client, one Client is bound to a
// single organization.
func NewClient(log *logger.Logger, org, token string) (*Client, error) {
	if token == "" {
		return nil, errors.New("graphql: empty token")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	return &Client{
		gql:      graphql.NewClient(endpoint, httpClient),
		log:      log,
		org:      org,
		repoIDs:  make(map[string]graphql.ID),
		actorIDs: make(map[string]graphql.ID),
	}, nil
}

func cacheKey(owner, repo string) string { return owner + "/" + repo }

// repositoryNodeID resolves owner/repo to the GraphQL node ID that
// createBranchProtectionRule's RepositoryID input field expects.
func (c *Client) repositoryNodeID(ctx context.Context, owner, repo string) (graphql.ID, error) {
	key := cacheKey(owner, repo)

	c.repoIDMu.Lock()
	if id, ok := c.repoIDs[key]; ok {
		c.repoIDMu.Unlock()

		return id, nil
	}
	c.repoIDMu.Unlock()

	var q struct {
		Repository struct {
			ID graphql.ID
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	vars := map[string]any{
		"owner": graphql.String(owner),
		"name":  graphql.String(repo),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return "", errors.Wrapf(err, "resolving node id for %s/%s", owner, repo)
	}

	c.repoIDMu.Lock()
	c.repoIDs[key] = q.Repository.ID
	c.repoIDMu.Unlock()

	return q.Repository.ID, nil
}

// ResolveActorNodeID resolves a §9 actor token to the GraphQL node ID
// GitHub's push/bypass/dismissal allowance inputs expect, distinct from
// rest.Client.ResolveActor's numeric IDs: GraphQL addresses actors by
// opaque node ID exclusively.
func (c *Client) ResolveActorNodeID(ctx context.Context, token model.ActorToken) (graphql.ID, error) {
	c.actorIDMu.Lock()
	if id, ok := c.actorIDs[token.Raw]; ok {
		c.actorIDMu.Unlock()

		return id, nil
	}
	c.actorIDMu.Unlock()

	id, err := c.resolveActorNodeIDUncached(ctx, token)
	if err != nil {
		return "", err
	}

	c.actorIDMu.Lock()
	c.actorIDs[token.Raw] = id
	c.actorIDMu.Unlock()

	return id, nil
}

func (c *Client) resolveActorNodeIDUncached(ctx context.Context, token model.ActorToken) (graphql.ID, error) {
	switch token.Type {
	case model.ActorUser:
		var q struct {
			User struct {
				ID graphql.ID
			} `graphql:"user(login: $login)"`
		}

		if err := c.gql.Query(ctx, &q, map[string]any{"login": graphql.String(token.Name)}); err != nil {
			return "", errors.Wrapf(err, "resolving user %q node id", token.Name)
		}

		return q.User.ID, nil
	case model.ActorApp:
		var q struct {
			App struct {
				ID graphql.ID
			} `graphql:"marketplaceListing(slug: $slug) { app { id } }"`
		}

		if err := c.gql.Query(ctx, &q, map[string]any{"slug": graphql.String(token.Name)}); err != nil {
			return "", errors.Wrapf(err, "resolving app %q node id", token.Name)
		}

		return q.App.ID, nil
	case model.ActorTeam:
		org, slug, ok := splitTeamSlug(token.Name)
		if !ok {
			return "", errors.Newf("team actor %q must be \"org/slug\"", token.Name)
		}

		var q struct {
			Organization struct {
				Team struct {
					ID graphql.ID
				} `graphql:"team(slug: $slug)"`
			} `graphql:"organization(login: $org)"`
		}

		vars := map[string]any{
			"org":  graphql.String(org),
			"slug": graphql.String(slug),
		}

		if err := c.gql.Query(ctx, &q, vars); err != nil {
			return "", errors.Wrapf(err, "resolving team %q node id", token.Name)
		}

		return q.Organization.Team.ID, nil
	default:
		return "", errors.Newf("actor type %q has no GraphQL node id", token.Type)
	}
}

func splitTeamSlug(name string) (org, slug string, ok bool) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[:i], name[i+1:], true
		}
	}

	return "", "", false
}
