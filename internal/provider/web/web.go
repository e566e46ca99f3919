// Package web implements the web client (§4.1 "Web client"): an
// authenticated browser-like session used for the handful of settings,
// app-installation, and app-permission-review operations GitHub exposes
// only through its HTML UI, never through REST or GraphQL.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/otterdog-go/otterdog/internal/secret"
	"github.com/otterdog-go/otterdog/pkg/logger"
)

// ErrLoginFailed is returned when GitHub's web login rejects the
// submitted credentials or TOTP code.
var ErrLoginFailed = errors.New("web: login failed")

// ErrNotLoggedIn is returned when an operation needing an authenticated
// session runs before Login succeeds.
var ErrNotLoggedIn = errors.New("web: not logged in")

const defaultBaseURL = "https://github.com"

// Client drives an authenticated github.com browser session. Every
// request carries the session cookies Login establishes.
type Client struct {
	httpClient *http.Client
	log        *logger.Logger
	org        string
	baseURL    string

	loggedIn bool
}

// NewClient builds a Client scoped to org. Login must succeed before any
// other method is called.
func NewClient(log *logger.Logger, org string) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		httpClient: &http.Client{Jar: jar},
		log:        log,
		org:        org,
		baseURL:    defaultBaseURL,
	}
}

// Login submits username/password to GitHub's login form, then answers a
// TOTP challenge if one is presented, establishing the session cookie
// jar every later request reuses.
func (c *Client) Login(ctx context.Context, username, password string, totp secret.TOTPProvider, totpSecret string) error {
	token, action, err := c.fetchFormToken(ctx, "/login", "login")
	if err != nil {
		return errors.Wrap(err, "fetching login form")
	}

	form := url.Values{
		"login":              {username},
		"password":           {password},
		"authenticity_token": {token},
	}

	body, err := c.post(ctx, action, form)
	if err != nil {
		return errors.Wrap(err, "submitting login form")
	}

	if !strings.Contains(body, "otp") && !strings.Contains(body, "two-factor") {
		c.loggedIn = true

		return nil
	}

	return c.submitTOTP(ctx, body, totp, totpSecret)
}

func (c *Client) submitTOTP(ctx context.Context, loginResponseBody string, totp secret.TOTPProvider, totpSecret string) error {
	token, action, err := extractFormToken(loginResponseBody, "app_otp")
	if err != nil {
		return errors.Wrap(err, "parsing two-factor challenge form")
	}

	code, err := totp.Generate(totpSecret)
	if err != nil {
		return errors.Wrap(err, "generating TOTP code")
	}

	form := url.Values{
		"app_otp":            {code},
		"authenticity_token": {token},
	}

	if _, err := c.post(ctx, action, form); err != nil {
		return errors.Wrap(err, "submitting two-factor code")
	}

	c.loggedIn = true

	return nil
}

// InstallApp installs appSlug into the organization via the web-only
// installation-request approval form (§3 "app install/uninstall").
func (c *Client) InstallApp(ctx context.Context, appSlug string) error {
	if !c.loggedIn {
		return ErrNotLoggedIn
	}

	path := fmt.Sprintf("/organizations/%s/settings/installations", c.org)

	token, action, err := c.fetchFormToken(ctx, path, "install_"+appSlug)
	if err != nil {
		return errors.Wrapf(err, "fetching install form for %s", appSlug)
	}

	form := url.Values{"authenticity_token": {token}}

	_, err = c.post(ctx, action, form)

	return err
}

// UninstallApp removes an installed app by its installation ID.
func (c *Client) UninstallApp(ctx context.Context, installationID int64) error {
	if !c.loggedIn {
		return ErrNotLoggedIn
	}

	path := fmt.Sprintf("/organizations/%s/settings/installations/%d", c.org, installationID)

	token, action, err := c.fetchFormToken(ctx, path, "uninstall")
	if err != nil {
		return errors.Wrap(err, "fetching uninstall form")
	}

	form := url.Values{
		"authenticity_token": {token},
		"_method":            {"delete"},
	}

	_, err = c.post(ctx, action, form)

	return err
}

// ReviewAppPermissions approves or denies a pending app-permission-update
// request (§3 "app install/uninstall ... review/approve requested
// app-permission updates").
func (c *Client) ReviewAppPermissions(ctx context.Context, requestID string, approve bool) error {
	if !c.loggedIn {
		return ErrNotLoggedIn
	}

	path := fmt.Sprintf("/organizations/%s/settings/permission_updates/%s", c.org, requestID)

	token, action, err := c.fetchFormToken(ctx, path, "review")
	if err != nil {
		return errors.Wrap(err, "fetching permission review form")
	}

	decision := "deny"
	if approve {
		decision = "approve"
	}

	form := url.Values{
		"authenticity_token": {token},
		"decision":           {decision},
	}

	_, err = c.post(ctx, action, form)

	return err
}

// fetchFormToken GETs path and extracts the authenticity_token and
// action of the form whose id or action contains marker.
func (c *Client) fetchFormToken(ctx context.Context, path, marker string) (token, action string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	return extractFormToken(string(body), marker)
}

func (c *Client) post(ctx context.Context, action string, form url.Values) (string, error) {
	target := action
	if !strings.HasPrefix(action, "http") {
		target = c.baseURL + action
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return "", errors.Wrapf(ErrLoginFailed, "status %d", resp.StatusCode)
	}

	return string(body), nil
}

// extractFormToken walks an HTML document for the first <form> whose id
// or action contains marker, returning its authenticity_token hidden
// input value and its action attribute.
func extractFormToken(body, marker string) (token, action string, err error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", "", err
	}

	var form *html.Node

	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if form != nil {
			return
		}

		if n.Type == html.ElementNode && n.Data == "form" && nodeMatches(n, marker) {
			form = n

			return
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	walk(doc)

	if form == nil {
		return "", "", errors.Newf("no form matching %q found", marker)
	}

	action = attr(form, "action")

	var findToken func(*html.Node) string

	findToken = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "input" && attr(n, "name") == "authenticity_token" {
			return attr(n, "value")
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if v := findToken(child); v != "" {
				return v
			}
		}

		return ""
	}

	token = findToken(form)
	if token == "" {
		return "", "", errors.New("authenticity_token not found in form")
	}

	return token, action, nil
}

func nodeMatches(n *html.Node, marker string) bool {
	return strings.Contains(attr(n, "id"), marker) || strings.Contains(attr(n, "action"), marker)
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}

	return ""
}
