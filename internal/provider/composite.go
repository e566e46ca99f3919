package provider

import (
	"context"

	"github.com/otterdog-go/otterdog/internal/diff"
	"github.com/otterdog-go/otterdog/internal/model"
)

// BranchProtectionWriter is satisfied by internal/provider/graphql.Client;
// kept as a narrow interface here so this package never imports a
// transport package directly (avoids an import cycle, since graphql in
// turn depends on internal/model and internal/mapping like rest does).
type BranchProtectionWriter interface {
	Apply(ctx context.Context, patch diff.LivePatch) error
}

// CompositeDispatcher routes each LivePatch to the transport that can
// actually write its entity kind (§4.1): GraphQL owns branch protection
// rules exclusively, REST owns everything else.
type CompositeDispatcher struct {
	REST    BranchProtectionWriter
	GraphQL BranchProtectionWriter
}

func (d CompositeDispatcher) Apply(ctx context.Context, patch diff.LivePatch) error {
	if _, ok := patch.Object.(*model.BranchProtectionRule); ok {
		return d.GraphQL.Apply(ctx, patch)
	}

	return d.REST.Apply(ctx, patch)
}
