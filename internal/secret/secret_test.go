package secret

import (
	"context"
	"errors"
	"testing"
)

func TestResolverDispatch(t *testing.T) {
	r := NewResolver()
	r.Register("env", EnvProvider{})
	r.Register("plain", PlainProvider{})

	t.Setenv("MY_TOKEN", "s3cr3t")

	got, err := r.Resolve(context.Background(), "env:MY_TOKEN")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got != "s3cr3t" {
		t.Errorf("Resolve() = %q, want %q", got, "s3cr3t")
	}

	got, err = r.Resolve(context.Background(), "plain:literal-value")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got != "literal-value" {
		t.Errorf("Resolve() = %q, want %q", got, "literal-value")
	}
}

func TestResolverBareLiteralPassesThrough(t *testing.T) {
	r := NewResolver()

	got, err := r.Resolve(context.Background(), "no-colon-here")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got != "no-colon-here" {
		t.Errorf("Resolve() = %q, want unchanged input", got)
	}
}

func TestResolverUnknownProvider(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve(context.Background(), "vault:some/path")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Resolve() error = %v, want ErrUnknownProvider", err)
	}
}

func TestResolverRefusesDummySecret(t *testing.T) {
	r := NewResolver()
	r.Register("env", EnvProvider{})

	_, err := r.Resolve(context.Background(), "********")
	if !errors.Is(err, ErrDummySecret) {
		t.Errorf("Resolve() error = %v, want ErrDummySecret", err)
	}
}

func TestEnvProviderMissing(t *testing.T) {
	p := EnvProvider{}

	_, err := p.Resolve(context.Background(), "DEFINITELY_NOT_SET_ENV_VAR")
	if err == nil {
		t.Error("expected error for unset environment variable")
	}
}
