package main

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/provider"
	"github.com/otterdog-go/otterdog/internal/provider/graphql"
	"github.com/otterdog-go/otterdog/internal/provider/rest"
	"github.com/otterdog-go/otterdog/internal/secret"
	"github.com/otterdog-go/otterdog/pkg/logger"
)

// ErrOrganizationNotFound is returned when an org name/github_id isn't
// declared in the top-level configuration file.
var ErrOrganizationNotFound = errors.New("organization not found in configuration")

// orgSession bundles everything one organization's operation needs:
// its configuration entry, REST and GraphQL clients, and the composite
// dispatcher apply uses.
type orgSession struct {
	Org        engineconfig.Organization
	REST       *rest.Client
	GraphQL    *graphql.Client
	Dispatcher provider.CompositeDispatcher
}

// newOrgSession resolves credentials for orgName per the cascade
// registered in resolver, then authenticates both transports (§4.7).
func newOrgSession(ctx context.Context, log *logger.Logger, cfg *engineconfig.Config, resolver *secret.Resolver, orgName string) (*orgSession, error) {
	org, ok := cfg.Find(orgName)
	if !ok {
		return nil, errors.Wrapf(ErrOrganizationNotFound, "%q", orgName)
	}

	token, err := resolveToken(ctx, resolver, org)
	if err != nil {
		return nil, err
	}

	restClient, err := rest.NewClient(ctx, log, org.GithubID, token)
	if err != nil {
		return nil, err
	}

	gqlClient, err := graphql.NewClient(log, org.GithubID, token)
	if err != nil {
		return nil, err
	}

	return &orgSession{
		Org:     org,
		REST:    restClient,
		GraphQL: gqlClient,
		Dispatcher: provider.CompositeDispatcher{
			REST:    restClient,
			GraphQL: gqlClient,
		},
	}, nil
}

// resolveToken turns org's credentials block into an authentication
// token string, dispatching on Provider (§6 "credentials"): "github-app"
// mints an App JWT from app_id+api_token (pem path), anything else
// resolves api_token as a "<provider>:<key-path>" reference.
func resolveToken(ctx context.Context, resolver *secret.Resolver, org engineconfig.Organization) (string, error) {
	if org.Credentials.Provider == "github-app" {
		return resolver.Resolve(ctx, "github-app:"+org.Credentials.AppID+":"+org.Credentials.APIToken)
	}

	if org.Credentials.APIToken == "" {
		return "", errors.Newf("organization %q: credentials.api_token not set", org.Name)
	}

	if org.Credentials.Provider == "" {
		return resolver.Resolve(ctx, org.Credentials.APIToken)
	}

	return resolver.Resolve(ctx, org.Credentials.Provider+":"+org.Credentials.APIToken)
}

func newResolver() *secret.Resolver {
	r := secret.NewResolver()
	r.Register("env", secret.EnvProvider{})
	r.Register("plain", secret.PlainProvider{})
	r.Register("github-app", secret.GitHubAppTokenMinter{})
	r.Register("gh-cli", secret.GHCLIProvider{Prompt: true})

	return r
}
