package rest

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/cockroachdb/errors"
	"github.com/google/go-github/v84/github"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/box"
)

// orgPublicKey fetches and caches an organization's Actions public key,
// used to seal secret values before they are ever sent over the wire.
func (c *Client) orgPublicKey(ctx context.Context, org string) (*github.PublicKey, error) {
	c.orgKeyMu.Lock()
	if key, ok := c.orgKeys[org]; ok {
		c.orgKeyMu.Unlock()

		return key, nil
	}
	c.orgKeyMu.Unlock()

	key, _, err := c.Actions.GetOrgPublicKey(ctx, org)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching public key for org %q", org)
	}

	c.orgKeyMu.Lock()
	c.orgKeys[org] = key
	c.orgKeyMu.Unlock()

	return key, nil
}

// EncryptSecretForOrg seals plaintext using org's Actions public key,
// returning the sealed-box ciphertext and the key ID GitHub requires
// alongside it when creating/updating the secret (§4.1 "Secret
// encryption"; sealed-box construction grounded on the pack's libsodium-
// equivalent usage of golang.org/x/crypto/nacl/box).
func (c *Client) EncryptSecretForOrg(ctx context.Context, org, plaintext string) (encryptedValue, keyID string, err error) {
	key, err := c.orgPublicKey(ctx, org)
	if err != nil {
		return "", "", err
	}

	sealed, err := sealSecret(key.GetKey(), plaintext)
	if err != nil {
		return "", "", err
	}

	return sealed, key.GetKeyID(), nil
}

// EncryptSecretForRepo seals plaintext using repo's own Actions public key.
func (c *Client) EncryptSecretForRepo(ctx context.Context, owner, repo, plaintext string) (encryptedValue, keyID string, err error) {
	key, _, err := c.Actions.GetRepoPublicKey(ctx, owner, repo)
	if err != nil {
		return "", "", errors.Wrapf(err, "fetching public key for %s/%s", owner, repo)
	}

	sealed, err := sealSecret(key.GetKey(), plaintext)
	if err != nil {
		return "", "", err
	}

	return sealed, key.GetKeyID(), nil
}

// repositoryID resolves owner/repo to its numeric ID, caching the result
// since the environment-scoped Actions endpoints (public key, secrets,
// variables) all key off the repository ID rather than its name.
func (c *Client) repositoryID(ctx context.Context, owner, repo string) (int64, error) {
	key := owner + "/" + repo

	c.repoIDMu.Lock()
	if id, ok := c.repoIDs[key]; ok {
		c.repoIDMu.Unlock()

		return id, nil
	}
	c.repoIDMu.Unlock()

	r, _, err := c.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return 0, errors.Wrapf(err, "resolving repository id for %s/%s", owner, repo)
	}

	id := r.GetID()

	c.repoIDMu.Lock()
	c.repoIDs[key] = id
	c.repoIDMu.Unlock()

	return id, nil
}

// EncryptSecretForEnvironment seals plaintext using the environment's
// own Actions public key.
func (c *Client) EncryptSecretForEnvironment(ctx context.Context, repoID int64, envName, plaintext string) (encryptedValue, keyID string, err error) {
	key, _, err := c.Actions.GetEnvPublicKey(ctx, int(repoID), envName)
	if err != nil {
		return "", "", errors.Wrapf(err, "fetching public key for environment %q", envName)
	}

	sealed, err := sealSecret(key.GetKey(), plaintext)
	if err != nil {
		return "", "", err
	}

	return sealed, key.GetKeyID(), nil
}

func sealSecret(base64PublicKey, plaintext string) (string, error) {
	pubBytes, err := base64.StdEncoding.DecodeString(base64PublicKey)
	if err != nil {
		return "", errors.Wrap(err, "decoding public key")
	}

	if len(pubBytes) != 32 {
		return "", errors.Newf("invalid public key length: %d", len(pubBytes))
	}

	var recipientPub [32]byte
	copy(recipientPub[:], pubBytes)

	ephemeralPub, ephemeralPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return "", errors.Wrap(err, "generating ephemeral key")
	}

	nonceHash, err := blake2b.New(24, nil)
	if err != nil {
		return "", errors.Wrap(err, "creating nonce hash")
	}

	nonceHash.Write(ephemeralPub[:])
	nonceHash.Write(recipientPub[:])

	var nonce [24]byte
	copy(nonce[:], nonceHash.Sum(nil))

	sealed := box.Seal(nil, []byte(plaintext), &nonce, &recipientPub, ephemeralPriv)

	out := make([]byte, 0, len(ephemeralPub)+len(sealed))
	out = append(out, ephemeralPub[:]...)
	out = append(out, sealed...)

	return base64.StdEncoding.EncodeToString(out), nil
}
