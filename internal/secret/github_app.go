package secret

import (
	"context"
	"crypto/rsa"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
)

// GitHubAppTokenMinter mints short-lived JWTs used to authenticate as a
// GitHub App (rather than an installation), per GitHub's App
// authentication flow. Resolve returns the JWT itself; it is not
// exchanged for an installation access token. key-path format for this provider is
// "<app_id>:<path-to-pem>".
type GitHubAppTokenMinter struct{}

func (GitHubAppTokenMinter) Resolve(_ context.Context, keyPath string) (string, error) {
	appID, pemPath, ok := strings.Cut(keyPath, ":")
	if !ok {
		return "", errors.Newf("github-app key-path %q must be \"<app_id>:<pem_path>\"", keyPath)
	}

	pemBytes, err := os.ReadFile(pemPath)
	if err != nil {
		return "", errors.Wrap(err, "reading GitHub App private key")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return "", errors.Wrap(err, "parsing GitHub App private key")
	}

	return mintAppJWT(appID, key)
}

// mintAppJWT builds the RS256 JWT GitHub's App authentication expects:
// iat slightly in the past to tolerate clock drift, exp 9 minutes out
// (GitHub's hard cap is 10 minutes), iss the app's numeric ID.
func mintAppJWT(appID string, key *rsa.PrivateKey) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"iat": now.Add(-time.Minute).Unix(),
		"exp": now.Add(9 * time.Minute).Unix(),
		"iss": appID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signed, err := token.SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, "signing GitHub App JWT")
	}

	return signed, nil
}
