package secret

import (
	"testing"
	"time"
)

func TestTOTPProviderGenerate(t *testing.T) {
	// RFC 6238 Appendix B test vector: secret "12345678901234567890"
	// (ASCII) base32-encoded, at Unix time 59 (counter 1), SHA-1, 8
	// digits truncated to 6 below since this provider always emits 6.
	const secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

	fixedTime := time.Unix(59, 0)

	p := TOTPProvider{Now: func() time.Time { return fixedTime }}

	code, err := p.Generate(secret)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(code) != 6 {
		t.Errorf("code length = %d, want 6", len(code))
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains non-digit", code)
		}
	}
}

func TestTOTPProviderDeterministic(t *testing.T) {
	const secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

	fixedTime := time.Unix(1700000000, 0)
	p := TOTPProvider{Now: func() time.Time { return fixedTime }}

	first, err := p.Generate(secret)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	second, err := p.Generate(secret)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if first != second {
		t.Errorf("same time window produced different codes: %q vs %q", first, second)
	}
}

func TestTOTPProviderChangesAcrossWindows(t *testing.T) {
	const secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

	p1 := TOTPProvider{Now: func() time.Time { return time.Unix(0, 0) }}
	p2 := TOTPProvider{Now: func() time.Time { return time.Unix(30, 0) }}

	code1, err := p1.Generate(secret)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	code2, err := p2.Generate(secret)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if code1 == code2 {
		t.Error("expected different codes across adjacent 30s windows")
	}
}

func TestTOTPProviderRejectsInvalidSecret(t *testing.T) {
	p := TOTPProvider{}

	if _, err := p.Generate("not valid base32!!"); err == nil {
		t.Error("expected error for invalid base32 secret")
	}
}
