package mapping

import (
	"strconv"

	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

// FromProviderWebhook builds the shared Webhook projection from a
// github.Hook. The secret is never returned by GitHub's API, so it is
// always mapped Unset on the live side (§4.4 step 5: a live webhook never
// participates in secret comparison, only the declared side does).
func FromProviderWebhook(h *github.Hook) model.Webhook {
	w := model.Webhook{
		URL:    h.GetURL(),
		Active: value.Of(h.GetActive()),
		Events: setStrSlice(h.Events),
	}

	if cfg := h.Config; cfg != nil {
		w.ContentType = setStr(cfg.ContentType)
		w.URL = cfg.GetURL()

		if cfg.InsecureSSL != nil {
			w.InsecureSSL = value.Of(strconv.FormatFloat(*cfg.InsecureSSL, 'f', -1, 64))
		}
	}

	return w
}

func toProviderHookConfig(w model.Webhook) *github.HookConfig {
	cfg := &github.HookConfig{
		URL:         github.Ptr(w.URL),
		ContentType: strPtr(w.ContentType),
	}

	if ssl, ok := w.InsecureSSL.Get(); ok {
		if f, err := strconv.ParseFloat(ssl, 64); err == nil {
			cfg.InsecureSSL = &f
		}
	}

	if secret, ok := w.Secret.Get(); ok && !model.IsDummySecret(secret) {
		cfg.Secret = github.Ptr(secret)
	}

	return cfg
}

// ToProviderOrganizationWebhook renders w as an organization webhook
// request body. Callers must check HasDummySecret first (§8 property 4);
// this function still omits the secret key entirely when dummy, as a
// second line of defense.
func ToProviderOrganizationWebhook(w model.OrganizationWebhook) *github.Hook {
	return &github.Hook{
		Active: boolPtr(w.Active),
		Events: w.Events.GetOr(nil),
		Config: toProviderHookConfig(w.Webhook),
	}
}

// ToProviderRepositoryWebhook renders w as a repository webhook request body.
func ToProviderRepositoryWebhook(w model.RepositoryWebhook) *github.Hook {
	return &github.Hook{
		Active: boolPtr(w.Active),
		Events: w.Events.GetOr(nil),
		Config: toProviderHookConfig(w.Webhook),
	}
}
