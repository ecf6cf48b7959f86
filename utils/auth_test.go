package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", 0).WithClock(fixedClock(&now))

	token, err := issuer.Issue(map[string]interface{}{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := EmailFromClaims(claims); got != "a@x.com" {
		t.Errorf("Expected email a@x.com, got %q", got)
	}
	for k := range claims {
		if k != "email" && k != "iat" && k != "exp" {
			t.Errorf("Unexpected claim %q", k)
		}
	}

	exp, err := jwt.MapClaims(claims).GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("Expected exp claim, got %v (%v)", exp, err)
	}
	if want := now.Add(24 * time.Hour); !exp.Time.Equal(want) {
		t.Errorf("Expected exp %v, got %v", want, exp.Time)
	}
}

func TestParseHonoursExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", 24*time.Hour).WithClock(fixedClock(&now))

	token, err := issuer.Issue(map[string]interface{}{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	now = now.Add(23*time.Hour + 59*time.Minute)
	if _, err := issuer.Parse(token); err != nil {
		t.Errorf("Expected token to be valid before expiry, got %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := issuer.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired after 24h, got %v", err)
	}
}

func TestIssueOverridesCallerExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", time.Hour).WithClock(fixedClock(&now))

	token, err := issuer.Issue(map[string]interface{}{"email": "a@x.com", "exp": now.Add(1000 * time.Hour).Unix()})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := issuer.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected caller exp to be ignored, got %v", err)
	}
}

func TestParseRejectsForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	other := NewTokenIssuer("other-secret", 0)

	foreign, err := other.Issue(map[string]interface{}{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build unsigned token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@x.com"}).
		SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("Failed to build token: %v", err)
	}

	tests := map[string]string{
		"wrong secret": foreign,
		"alg none":     unsigned,
		"no expiry":    noExpiry,
		"garbage":      "not-a-token",
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestExpiryDefault(t *testing.T) {
	if got := NewTokenIssuer("secret", 0).Expiry(); got != DefaultTokenExpiry {
		t.Errorf("Expected default expiry %v, got %v", DefaultTokenExpiry, got)
	}
	if got := NewTokenIssuer("secret", 2*time.Hour).Expiry(); got != 2*time.Hour {
		t.Errorf("Expected 2h expiry, got %v", got)
	}
}

func TestIssueWithoutSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", 0).Issue(map[string]interface{}{}); err == nil {
		t.Error("Expected an error without a secret")
	}
}
