// Package secret resolves the opaque "<provider>:<key-path>" references
// declared in model.Secret.Value / model.Webhook.Secret into plaintext at
// the last possible moment, directly before a provider write (§3, §9
// "Secret reference"). Resolution never happens during diff: the diff
// generator compares references, not plaintext, and dummy placeholders
// (model.IsDummySecret) are never resolved at all.
package secret

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/otterdog-go/otterdog/internal/model"
)

// ErrUnknownProvider is returned when a reference names a provider this
// build has no Resolver registered for.
var ErrUnknownProvider = errors.New("secret: unknown provider")

// ErrDummySecret is returned when a caller attempts to resolve a dummy
// placeholder value; callers must check model.IsDummySecret first and
// never reach this path in practice (§8 property 4), but Resolve refuses
// defensively.
var ErrDummySecret = errors.New("secret: refusing to resolve a dummy placeholder")

// Provider resolves one key-path under its own namespace (e.g. "bitwarden",
// "pass", "plain", "env").
type Provider interface {
	Resolve(ctx context.Context, keyPath string) (string, error)
}

// Resolver dispatches a "<provider>:<key-path>" reference to the matching
// registered Provider.
type Resolver struct {
	providers map[string]Provider
}

// NewResolver builds a Resolver with no providers registered; callers
// register the providers relevant to their engine configuration (§6).
func NewResolver() *Resolver {
	return &Resolver{providers: map[string]Provider{}}
}

// Register binds name (the provider prefix before ':') to p.
func (r *Resolver) Register(name string, p Provider) {
	r.providers[name] = p
}

// Resolve parses ref as "<provider>:<key-path>" and dispatches to the
// matching Provider. A reference without a ':' is returned unchanged,
// matching the teacher convention that bare literals in configuration are
// already plaintext.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	if model.IsDummySecret(ref) {
		return "", ErrDummySecret
	}

	name, keyPath, ok := strings.Cut(ref, ":")
	if !ok {
		return ref, nil
	}

	p, ok := r.providers[name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownProvider, "%q", name)
	}

	return p.Resolve(ctx, keyPath)
}

// EnvProvider resolves a key-path as an environment variable name. This
// is the simplest provider and the one every engine configuration example
// in the pack defaults to when no vault is configured.
type EnvProvider struct{}

func (EnvProvider) Resolve(_ context.Context, keyPath string) (string, error) {
	v, ok := os.LookupEnv(keyPath)
	if !ok {
		return "", errors.Newf("environment variable %q is not set", keyPath)
	}

	return v, nil
}

// PlainProvider resolves a key-path to itself, for configurations that
// store a literal sentinel value, e.g. "plain:some-literal-token" used in
// throwaway fixtures and tests.
type PlainProvider struct{}

func (PlainProvider) Resolve(_ context.Context, keyPath string) (string, error) {
	return keyPath, nil
}
