package model

import (
	"regexp"

	"github.com/otterdog-go/otterdog/internal/value"
)

// dummySecretPattern matches the "all asterisks" placeholder used by
// imported configurations to redact a real secret value (§3, GLOSSARY
// "Dummy secret").
var dummySecretPattern = regexp.MustCompile(`^\*+$`)

// IsDummySecret reports whether value consists entirely of '*' characters.
func IsDummySecret(v string) bool {
	return v != "" && dummySecretPattern.MatchString(v)
}

// Webhook holds the fields shared by OrganizationWebhook and
// RepositoryWebhook (§3, §4.3 "Webhook.config").
type Webhook struct {
	URL         string // key
	Aliases     []string // model_only: prior URLs, for rename tracking
	ContentType value.Value[string]
	InsecureSSL value.Value[string]
	// Secret is excluded from diff comparison (tagged diff:"-") for the same
	// reason as model.Secret.Value: GitHub never returns a webhook's secret,
	// so the live side is always Unset. It is written only under a forced
	// update (§4.4 step 5).
	Secret value.Value[string] `diff:"-"` // opaque secret reference or dummy
	Active value.Value[bool]
	Events      value.Value[[]string]
}

// GetAllURLs returns URL plus every alias, used by generate_live_patch_of_list
// to match renamed webhooks (§4.2 step 3).
func (w *Webhook) GetAllURLs() []string {
	return append([]string{w.URL}, w.Aliases...)
}

// HasDummySecret reports whether this webhook's configured secret is the
// redacted placeholder, in which case it must never be written (§4.4 step 5,
// §8 property 4).
func (w *Webhook) HasDummySecret() bool {
	s, ok := w.Secret.Get()

	return ok && IsDummySecret(s)
}

// OrganizationWebhook is an organization-level webhook (§3).
type OrganizationWebhook struct {
	Webhook
}

func (w *OrganizationWebhook) Key() string     { return w.URL }
func (w *OrganizationWebhook) Aliases() []string { return w.Webhook.Aliases }

func (w *OrganizationWebhook) Validate(ctx *ValidationContext, _ ModelObject) {
	validateWebhook(ctx, "webhooks["+w.URL+"]", &w.Webhook)
}

// RepositoryWebhook is a repository-level webhook (§3).
type RepositoryWebhook struct {
	Webhook
}

func (w *RepositoryWebhook) Key() string       { return w.URL }
func (w *RepositoryWebhook) Aliases() []string { return w.Webhook.Aliases }

func (w *RepositoryWebhook) Validate(ctx *ValidationContext, parent ModelObject) {
	path := "webhooks[" + w.URL + "]"
	if repo, ok := parent.(*Repository); ok {
		path = "repositories[" + repo.Name + "]." + path
	}

	validateWebhook(ctx, path, &w.Webhook)
}

func validateWebhook(ctx *ValidationContext, path string, w *Webhook) {
	if ct, ok := w.ContentType.Get(); ok && ct != "json" && ct != "form" {
		ctx.Add(SeverityError, path, "content_type %q must be json or form", ct)
	}

	if ssl, ok := w.InsecureSSL.Get(); ok && ssl != "0" && ssl != "1" {
		ctx.Add(SeverityError, path, "insecure_ssl %q must be \"0\" or \"1\"", ssl)
	}
}
