package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/duel-labs/roadmap-service/internal/domain"
)

const testSecret = "test-secret"

func testManager() *TokenManager {
	return NewTokenManager(testSecret, 30*time.Minute, 14*24*time.Hour)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := testManager()

	access, expiresAt, err := tm.IssueAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("access token expiry not in the future")
	}

	claims, err := tm.Verify(access)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("subject = %q, want user-1", claims.UserID)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("role = %q, want %q", claims.Role, domain.RoleUser)
	}
}

func TestIssuancesDiffer(t *testing.T) {
	tm := testManager()

	first, _, err := tm.IssueRefresh("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, _, err := tm.IssueRefresh("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if first == second {
		t.Fatal("two issuances produced identical tokens")
	}
}

func TestVerifyExpired(t *testing.T) {
	tm := testManager()

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Verify(expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewTokenManager("another-secret", 30*time.Minute, 24*time.Hour)
	token, _, err := other.IssueAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := testManager().Verify(token); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("err = %v, want ErrTokenSignatureInvalid", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	tm := testManager()
	token, _, err := tm.IssueAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := tm.Verify(tampered); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("err = %v, want ErrTokenSignatureInvalid", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tm := testManager()

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := tm.Verify(token); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q) err = %v, want ErrTokenMalformed", token, err)
		}
	}
}
