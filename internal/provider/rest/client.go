// Package rest implements the REST-transport slice of the provider facade
// (C1, C7) using go-github, mirroring the teacher's pkg/github.Client
// wrapper and rate-limiting setup (pkg/github/client.go) but generalized
// from one-shot settings sync into full CRUD across every entity kind
// §4.1 assigns to REST.
package rest

import (
	"context"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/pkg/logger"
)

// ErrTokenInvalid mirrors the teacher's validateToken failure mode.
var ErrTokenInvalid = errors.New("rest: token validation failed")

// Client wraps *github.Client with the organization-scoped caches the
// rest of this package needs: the actor-resolution cache (§4.1) and the
// organization's libsodium public key for secret encryption.
type Client struct {
	*github.Client

	log *logger.Logger
	org string

	actorCacheMu sync.Mutex
	actorCache   map[string]int64 // token string -> node/numeric id

	orgKeyMu sync.Mutex
	orgKeys  map[string]*github.PublicKey // org -> actions public key

	repoIDMu sync.Mutex
	repoIDs  map[string]int64 // "owner/repo" -> numeric id, needed by the environment-scoped Actions endpoints
}

// NewClient authenticates client against token and verifies it works by
// checking the rate limit endpoint, exactly as the teacher's NewClient
// does (pkg/github/client.go), generalized to store the per-organization
// caches this package's broader CRUD surface needs. One Client is bound
// to a single organization, matching the §6 engine config's one-
// credential-set-per-organization model.
func NewClient(ctx context.Context, log *logger.Logger, org, token string) (*Client, error) {
	if token == "" {
		return nil, errors.New("rest: empty token")
	}

	rateLimiter := github_ratelimit.NewClient(nil)
	gh := github.NewClient(rateLimiter).WithAuthToken(token)

	if _, resp, err := gh.RateLimit.Get(ctx); err != nil {
		return nil, errors.Wrap(ErrTokenInvalid, err.Error())
	} else if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrTokenInvalid, "unexpected status %d", resp.StatusCode)
	}

	log.Debug("rest provider client initialized", "org", org)

	return &Client{
		Client:     gh,
		log:        log,
		org:        org,
		actorCache: make(map[string]int64),
		orgKeys:    make(map[string]*github.PublicKey),
		repoIDs:    make(map[string]int64),
	}, nil
}

// Org returns the organization login this client is bound to.
func (c *Client) Org() string { return c.org }

// ResolveActor turns a §9 actor token into the numeric ID GitHub's REST
// APIs expect, caching results per process run since the same actor is
// typically referenced by dozens of rulesets/branch-protection rules
// across one organization (§4.1 "Actor resolution caching").
func (c *Client) ResolveActor(ctx context.Context, token model.ActorToken) (int64, error) {
	c.actorCacheMu.Lock()
	if id, ok := c.actorCache[token.Raw]; ok {
		c.actorCacheMu.Unlock()

		return id, nil
	}
	c.actorCacheMu.Unlock()

	id, err := c.resolveActorUncached(ctx, token)
	if err != nil {
		return 0, err
	}

	c.actorCacheMu.Lock()
	c.actorCache[token.Raw] = id
	c.actorCacheMu.Unlock()

	return id, nil
}

func (c *Client) resolveActorUncached(ctx context.Context, token model.ActorToken) (int64, error) {
	switch token.Type {
	case model.ActorUser:
		u, _, err := c.Users.Get(ctx, token.Name)
		if err != nil {
			return 0, errors.Wrapf(err, "resolving user %q", token.Name)
		}

		return u.GetID(), nil
	case model.ActorApp:
		a, _, err := c.Apps.Get(ctx, token.Name)
		if err != nil {
			return 0, errors.Wrapf(err, "resolving app %q", token.Name)
		}

		return a.GetID(), nil
	case model.ActorTeam:
		org, slug, ok := splitTeamSlug(token.Name)
		if !ok {
			return 0, errors.Newf("team actor %q must be \"org/slug\"", token.Name)
		}

		t, _, err := c.Teams.GetTeamBySlug(ctx, org, slug)
		if err != nil {
			return 0, errors.Wrapf(err, "resolving team %q", token.Name)
		}

		return t.GetID(), nil
	default:
		return 0, errors.Newf("actor type %q cannot be resolved to a numeric id", token.Type)
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
