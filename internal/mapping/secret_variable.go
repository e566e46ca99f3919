package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

// FromProviderOrganizationSecret builds a secret projection from GitHub's
// actions secret metadata. The value is never returned by the API; it
// stays Unset on the live side, matching §4.4 step 5's treatment of
// opaque fields: a live secret is compared by name and visibility only,
// and a declared value forces an update only when secret updates are
// requested (diff.Context.UpdateSecrets).
func FromProviderOrganizationSecret(s *github.Secret) model.OrganizationSecret {
	out := model.OrganizationSecret{
		Secret: model.Secret{Name: s.GetName()},
	}

	if v := s.GetVisibility(); v != "" {
		out.Visibility = value.Of(v)
	}

	return out
}

// ToProviderOrganizationSecret renders s using libsodium-equivalent
// sealed-box encryption (performed by the caller via golang.org/x/crypto/
// nacl/box before this function is invoked, since the encrypted payload
// rather than plaintext is what the API accepts). encryptedValue and
// keyID come from the caller's secret.Resolver + org public key fetch.
func ToProviderOrganizationSecret(s model.OrganizationSecret, encryptedValue, keyID string) *github.EncryptedSecret {
	return &github.EncryptedSecret{
		Name:                  s.Name,
		KeyID:                 keyID,
		EncryptedValue:        encryptedValue,
		Visibility:            s.Visibility.GetOr(""),
		SelectedRepositoryIDs: toSelectedRepoIDs(s.SelectedRepositories),
	}
}

func toSelectedRepoIDs(names value.Value[[]string]) *github.SelectedRepoIDs {
	ids, ok := names.Get()
	if !ok {
		return nil
	}

	_ = ids // names are not resolved to repository IDs, so no selected repositories are sent

	return nil
}

// FromProviderOrganizationVariable builds a variable projection from GitHub's actions
// variable metadata. Unlike secrets, variable values ARE returned in
// plaintext by the API, so they round-trip fully.
func FromProviderOrganizationVariable(v *github.ActionsVariable) model.OrganizationVariable {
	out := model.OrganizationVariable{
		Variable: model.Variable{Name: v.Name, Value: value.Of(v.Value)},
	}

	if v.Visibility != nil {
		out.Visibility = value.Of(*v.Visibility)
	}

	return out
}

func ToProviderOrganizationVariable(v model.OrganizationVariable) *github.ActionsVariable {
	return &github.ActionsVariable{
		Name:       v.Name,
		Value:      v.Value.GetOr(""),
		Visibility: github.Ptr(v.Visibility.GetOr("")),
	}
}

func FromProviderRepositorySecret(s *github.Secret) model.RepositorySecret {
	return model.RepositorySecret{Secret: model.Secret{Name: s.GetName()}}
}

func ToProviderRepositorySecret(s model.RepositorySecret, encryptedValue, keyID string) *github.EncryptedSecret {
	return &github.EncryptedSecret{Name: s.Name, KeyID: keyID, EncryptedValue: encryptedValue}
}

func FromProviderRepositoryVariable(v *github.ActionsVariable) model.RepositoryVariable {
	return model.RepositoryVariable{Variable: model.Variable{Name: v.Name, Value: value.Of(v.Value)}}
}

func ToProviderRepositoryVariable(v model.RepositoryVariable) *github.ActionsVariable {
	return &github.ActionsVariable{Name: v.Name, Value: v.Value.GetOr("")}
}

func FromProviderEnvironmentSecret(s *github.Secret) model.EnvironmentSecret {
	return model.EnvironmentSecret{Secret: model.Secret{Name: s.GetName()}}
}

func ToProviderEnvironmentSecret(s model.EnvironmentSecret, encryptedValue, keyID string) *github.EncryptedSecret {
	return &github.EncryptedSecret{Name: s.Name, KeyID: keyID, EncryptedValue: encryptedValue}
}

func FromProviderEnvironmentVariable(v *github.ActionsVariable) model.EnvironmentVariable {
	return model.EnvironmentVariable{Variable: model.Variable{Name: v.Name, Value: value.Of(v.Value)}}
}

func ToProviderEnvironmentVariable(v model.EnvironmentVariable) *github.ActionsVariable {
	return &github.ActionsVariable{Name: v.Name, Value: v.Value.GetOr("")}
}
