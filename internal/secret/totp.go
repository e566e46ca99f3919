package secret

import (
	"context"
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // G505: RFC 6238 TOTP mandates SHA-1/HMAC-SHA1, not used for anything else here
	"encoding/base32"
	"encoding/binary"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// TOTPProvider computes RFC 6238 time-based one-time passwords for the
// web-UI login flow (C9, --web-login / TOTP-gated settings with no public
// API). No library in this stack provides TOTP — it is a handful of
// HMAC-SHA1 steps over a base32 secret, small and fully specified by the
// RFC, so it is implemented directly against crypto/hmac and
// encoding/base32 rather than pulled in as a dependency.
type TOTPProvider struct {
	// Now is overridable for deterministic tests; nil uses time.Now.
	Now func() time.Time
}

func (p TOTPProvider) Resolve(_ context.Context, keyPath string) (string, error) {
	return p.Generate(keyPath)
}

// Generate computes the current 6-digit TOTP code for base32Secret.
func (p TOTPProvider) Generate(base32Secret string) (string, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	secret, err := decodeBase32Secret(base32Secret)
	if err != nil {
		return "", errors.Wrap(err, "decoding TOTP secret")
	}

	counter := uint64(now().Unix() / 30)

	return computeHOTP(secret, counter, 6), nil
}

func decodeBase32Secret(s string) ([]byte, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")

	if n := len(s) % 8; n != 0 {
		s += strings.Repeat("=", 8-n)
	}

	return base32.StdEncoding.DecodeString(s)
}

func computeHOTP(secret []byte, counter uint64, digits int) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	truncated := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for range make([]struct{}, digits) {
		mod *= 10
	}

	code := truncated % mod

	out := make([]byte, digits)
	for i := digits - 1; i >= 0; i-- {
		out[i] = byte('0' + code%10)
		code /= 10
	}

	return string(out)
}
