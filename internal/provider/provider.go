// Package provider defines the facade (C1) every transport-specific
// implementation (internal/provider/rest, /graphql, /web) satisfies. The
// facade is the single seam between the pure internal/model +
// internal/diff + internal/mapping layers and GitHub's three distinct
// transports (§4.1): REST via go-github, GraphQL via shurcooL/graphql for
// legacy branch protection rules, and authenticated web-UI scraping for
// the handful of settings GitHub exposes nowhere else.
package provider

import (
	"context"

	"github.com/otterdog-go/otterdog/internal/model"
)

// Reader fetches the live state of an organization, used by import (C8)
// and by plan/apply to compute the live side of a diff (§4.1). *rest.Client
// satisfies this directly; internal/render.Import merges in GraphQL's
// branch-protection rules on top of it.
type Reader interface {
	GetOrganization(ctx context.Context, githubID string) (*model.Organization, error)
}
