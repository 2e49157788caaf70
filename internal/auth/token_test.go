package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
)

func testIssuer() *Issuer {
	return NewIssuer(config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, Issuer: "test"})
}

func TestIssueAndParse(t *testing.T) {
	iss := testIssuer()
	token, claims, err := iss.Guest("  勇者  ")
	if err != nil {
		t.Fatalf("Guest failed: %v", err)
	}
	if claims.Name != "勇者" || claims.PlayerID == "" {
		t.Errorf("Unexpected claims %+v", claims)
	}

	parsed, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.PlayerID != claims.PlayerID || parsed.Name != "勇者" {
		t.Errorf("Parsed claims differ: %+v", parsed)
	}
}

func TestParseRejects(t *testing.T) {
	iss := testIssuer()
	token, _, err := iss.Issue("p1", "勇者")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := NewIssuer(config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour, Issuer: "test"})
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}

	wrongIssuer := NewIssuer(config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, Issuer: "else"})
	if _, err := wrongIssuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong issuer, got %v", err)
	}

	if _, err := iss.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	iss := testIssuer()
	issuedAt := time.Now().Add(-2 * time.Hour)
	iss.now = func() time.Time { return issuedAt }
	token, _, err := iss.Issue("p1", "勇者")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	iss.now = time.Now
	if _, err := iss.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected expired token to be rejected, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	if _, err := NormalizeName("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	long := strings.Repeat("龙", 40)
	name, err := NormalizeName(long)
	if err != nil {
		t.Fatalf("NormalizeName failed: %v", err)
	}
	if len([]rune(name)) != MaxNameLength {
		t.Errorf("Expected %d runes, got %d", MaxNameLength, len([]rune(name)))
	}
}
