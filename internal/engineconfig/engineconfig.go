// Package engineconfig parses the top-level configuration file (§6): the
// one document that lists every organization this engine manages and how
// to reach it, as distinct from each organization's own declarative
// document (handled by internal/document).
package engineconfig

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v4"
)

// ErrInvalidConfig wraps any structural problem with the top-level file.
var ErrInvalidConfig = errors.New("engineconfig: invalid configuration")

// Defaults holds the optional shared settings every organization inherits
// unless it overrides them (§6 "defaults").
type Defaults struct {
	Jsonnet struct {
		BaseTemplate string `yaml:"base_template"`
		ConfigDir    string `yaml:"config_dir"`
	} `yaml:"jsonnet"`
	GitHub struct {
		ConfigRepo    string `yaml:"config_repo"`
		DefaultBranch string `yaml:"default_branch"`
	} `yaml:"github"`
}

// Credentials names the secret provider backing one organization's
// authentication, resolved at runtime via internal/secret.Resolver
// (§4.7; "<provider>:<key-path>" reference grammar).
type Credentials struct {
	Provider string `yaml:"provider"`
	APIToken string `yaml:"api_token,omitempty"`
	AppID    string `yaml:"app_id,omitempty"`
	Login    string `yaml:"login,omitempty"`
	Password string `yaml:"password,omitempty"`
	TwoFATOTP string `yaml:"totp_secret,omitempty"`
}

// Organization names one managed organization and how to reach it.
type Organization struct {
	Name        string      `yaml:"name"`
	GithubID    string      `yaml:"github_id"`
	ConfigRepo  string      `yaml:"config_repo,omitempty"`
	Credentials Credentials `yaml:"credentials"`
}

// Config is the top-level configuration file's fully parsed form.
type Config struct {
	Defaults      Defaults       `yaml:"defaults"`
	Organizations []Organization `yaml:"organizations"`
}

// Load reads and parses path into a Config, applying Defaults.GitHub's
// ConfigRepo fallback ("`.eclipsefdn`", §6) to any organization that
// doesn't set its own.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration file %q", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	configRepo := cfg.Defaults.GitHub.ConfigRepo
	if configRepo == "" {
		configRepo = ".eclipsefdn"
	}

	for i := range cfg.Organizations {
		if cfg.Organizations[i].ConfigRepo == "" {
			cfg.Organizations[i].ConfigRepo = configRepo
		}
	}

	if len(cfg.Organizations) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "no organizations declared")
	}

	return &cfg, nil
}

// Find returns the Organization entry named name, or false if absent.
func (c *Config) Find(name string) (Organization, bool) {
	for _, o := range c.Organizations {
		if o.Name == name || o.GithubID == name {
			return o, true
		}
	}

	return Organization{}, false
}
