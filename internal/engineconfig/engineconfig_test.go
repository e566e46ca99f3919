package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func TestLoadAppliesConfigRepoDefault(t *testing.T) {
	path := writeConfig(t, `
defaults:
  github:
    config_repo: ".github-private"
organizations:
  - name: acme
    github_id: acme-corp
    credentials:
      provider: env
      api_token: env:ACME_TOKEN
  - name: other
    github_id: other-corp
    config_repo: custom-repo
    credentials:
      provider: plain
      api_token: plain:xyz
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	acme, ok := cfg.Find("acme")
	if !ok {
		t.Fatal("Find(acme) = false, want true")
	}

	if acme.ConfigRepo != ".github-private" {
		t.Errorf("acme.ConfigRepo = %q, want inherited default", acme.ConfigRepo)
	}

	other, ok := cfg.Find("other-corp")
	if !ok {
		t.Fatal("Find(other-corp) = false, want true")
	}

	if other.ConfigRepo != "custom-repo" {
		t.Errorf("other.ConfigRepo = %q, want explicit override preserved", other.ConfigRepo)
	}
}

func TestLoadDefaultsConfigRepoWhenUnset(t *testing.T) {
	path := writeConfig(t, `
organizations:
  - name: acme
    github_id: acme-corp
    credentials:
      provider: env
      api_token: env:ACME_TOKEN
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	acme, _ := cfg.Find("acme")
	if acme.ConfigRepo != ".eclipsefdn" {
		t.Errorf("ConfigRepo = %q, want fallback %q", acme.ConfigRepo, ".eclipsefdn")
	}
}

func TestLoadRejectsEmptyOrganizations(t *testing.T) {
	path := writeConfig(t, "organizations: []\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for configuration with no organizations")
	}
}

func TestFindMissingReturnsFalse(t *testing.T) {
	path := writeConfig(t, `
organizations:
  - name: acme
    github_id: acme-corp
    credentials:
      provider: env
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok := cfg.Find("nonexistent"); ok {
		t.Error("Find(nonexistent) = true, want false")
	}
}
