package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-please-change"

func newTestIssuer(t *testing.T, alg string) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, alg, DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return issuer
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenIssuer("", "HS256", time.Minute); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("empty secret: got %v, want ErrEmptySecret", err)
	}
	if _, err := NewTokenIssuer(testSecret, "RS256", time.Minute); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("RS256: got %v, want ErrUnsupportedAlgorithm", err)
	}

	issuer, err := NewTokenIssuer(testSecret, "HS512", 0)
	if err != nil {
		t.Fatalf("HS512: %v", err)
	}
	if issuer.TTL() != DefaultTokenTTL {
		t.Errorf("zero ttl should default to %v, got %v", DefaultTokenTTL, issuer.TTL())
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			t.Parallel()

			issuer := newTestIssuer(t, alg)
			before := time.Now()

			token, expiresAt, err := issuer.Issue("user-1")
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}

			if d := expiresAt.Sub(before); d < 29*time.Minute || d > 31*time.Minute {
				t.Errorf("expiry should be ~30m from issuance, got %v", d)
			}

			userID, err := issuer.Verify(token)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if userID != "user-1" {
				t.Errorf("subject = %q, want user-1", userID)
			}
		})
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, "HS256")
	issuer.now = func() time.Time { return time.Now().Add(-31 * time.Minute) }

	token, _, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	issuer.now = time.Now
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, "HS256")
	valid, _, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherSecret, err := NewTokenIssuer("another-secret", "HS256", DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	foreign, _, _ := otherSecret.Issue("user-1")

	otherAlg := newTestIssuer(t, "HS512")
	wrongAlg, _, _ := otherAlg.Issue("user-1")

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString([]byte(testSecret))

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered signature", tampered},
		{"foreign secret", foreign},
		{"different algorithm", wrongAlg},
		{"missing subject", noSubject},
		{"missing expiry", noExpiry},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%s) = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestIsSupportedAlgorithm(t *testing.T) {
	t.Parallel()

	for alg, want := range map[string]bool{"HS256": true, "HS384": true, "HS512": true, "RS256": false, "none": false} {
		if got := IsSupportedAlgorithm(alg); got != want {
			t.Errorf("IsSupportedAlgorithm(%q) = %v, want %v", alg, got, want)
		}
	}
}
