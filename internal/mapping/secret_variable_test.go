package mapping

import (
	"testing"

	"github.com/google/go-github/v84/github"
)

func TestFromProviderOrganizationVariableRoundTrip(t *testing.T) {
	src := &github.ActionsVariable{
		Name:       "BUILD_ENV",
		Value:      "staging",
		Visibility: github.Ptr("selected"),
	}

	v := FromProviderOrganizationVariable(src)

	if v.Name != "BUILD_ENV" {
		t.Errorf("Name = %q, want %q", v.Name, "BUILD_ENV")
	}

	if got, ok := v.Value.Get(); !ok || got != "staging" {
		t.Errorf("Value = (%q, %v), want (%q, true)", got, ok, "staging")
	}

	if got, ok := v.Visibility.Get(); !ok || got != "selected" {
		t.Errorf("Visibility = (%q, %v), want (%q, true)", got, ok, "selected")
	}

	back := ToProviderOrganizationVariable(v)

	if back.Name != src.Name || back.Value != src.Value {
		t.Errorf("ToProviderOrganizationVariable() = %+v, want round trip of %+v", back, src)
	}
}

func TestFromProviderOrganizationSecretNeverCarriesValue(t *testing.T) {
	src := &github.Secret{Name: github.Ptr("TOKEN"), Visibility: github.Ptr("private")}

	s := FromProviderOrganizationSecret(src)

	if s.Name != "TOKEN" {
		t.Errorf("Name = %q, want %q", s.Name, "TOKEN")
	}

	if s.Value.IsSet() {
		t.Error("a secret read from the provider must never carry a value (§4.4 step 5)")
	}

	if got, ok := s.Visibility.Get(); !ok || got != "private" {
		t.Errorf("Visibility = (%q, %v), want (%q, true)", got, ok, "private")
	}
}

func TestFromProviderRepositoryVariableRoundTrip(t *testing.T) {
	src := &github.ActionsVariable{Name: "FLAG", Value: "on"}

	v := FromProviderRepositoryVariable(src)

	back := ToProviderRepositoryVariable(v)

	if back.Name != src.Name || back.Value != src.Value {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, src)
	}
}
