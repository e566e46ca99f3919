package model

import "github.com/otterdog-go/otterdog/internal/value"

// Secret holds the fields shared by OrganizationSecret, RepositorySecret,
// and EnvironmentSecret (§3, §4.7).
type Secret struct {
	Name  string // key
	// Value is never compared during diff generation (tagged diff:"-"): the
	// provider never echoes a secret's value back, so the live side is
	// always Unset and any comparison would be a perpetual, unconvergeable
	// spurious change that leaks the unresolved reference into plan output.
	// It is written only under a forced update (§4.4 step 5).
	Value value.Value[string] `diff:"-"` // opaque "<provider>:<key-path>" reference, or dummy
}

// HasDummyValue reports whether Value is the redacted placeholder.
func (s *Secret) HasDummyValue() bool {
	v, ok := s.Value.Get()

	return ok && IsDummySecret(v)
}

// Visibility controls which repositories an organization-level secret or
// variable applies to (GLOSSARY "Visibility").
type Visibility string

const (
	VisibilityAll      Visibility = "all"
	VisibilityPrivate  Visibility = "private"
	VisibilitySelected Visibility = "selected"
)

// OrganizationSecret is an organization-level secret (§3).
type OrganizationSecret struct {
	Secret
	Visibility          value.Value[string] // public|private|selected in model form (§4.3 rewrite note)
	SelectedRepositories value.Value[[]string]
}

func (s *OrganizationSecret) Key() string { return s.Secret.Name }

func (s *OrganizationSecret) Validate(ctx *ValidationContext, _ ModelObject) {
	path := "secrets[" + s.Name + "]"

	if v, ok := s.Visibility.Get(); ok && v != "public" && v != "private" && v != "selected" {
		ctx.Add(SeverityError, path, "visibility %q must be public|private|selected", v)
	}

	if v, ok := s.Visibility.Get(); ok && v != "selected" {
		if sel, ok := s.SelectedRepositories.Get(); ok && len(sel) > 0 {
			ctx.Add(SeverityWarning, path, "selected_repositories set but visibility is %q", v)
		}
	}
}

// RepositorySecret is a repository-level secret (§3).
type RepositorySecret struct {
	Secret
}

func (s *RepositorySecret) Key() string { return s.Secret.Name }

func (s *RepositorySecret) Validate(_ *ValidationContext, _ ModelObject) {}

// EnvironmentSecret is an environment-scoped secret (§3).
type EnvironmentSecret struct {
	Secret
}

func (s *EnvironmentSecret) Key() string { return s.Secret.Name }

func (s *EnvironmentSecret) Validate(_ *ValidationContext, _ ModelObject) {}
