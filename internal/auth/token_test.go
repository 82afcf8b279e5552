package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vaxcare/vaxcare-backend/internal/auth"
	"github.com/vaxcare/vaxcare-backend/internal/domain"
)

const (
	testAccessSecret  = "access-secret-for-tests-32-chars!"
	testRefreshSecret = "refresh-secret-for-tests-32-char!"
)

func testTokenService() *auth.TokenService {
	return auth.NewTokenService(
		[]byte(testAccessSecret),
		[]byte(testRefreshSecret),
		time.Hour,
		24*time.Hour,
	)
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	ts := testTokenService()
	tok, err := ts.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := ts.VerifyAccessToken(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want %q", userID, "user-1")
	}
}

func TestTokenService_RefreshRoundTrip(t *testing.T) {
	ts := testTokenService()
	tok, err := ts.IssueRefreshToken("user-2")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := ts.VerifyRefreshToken(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-2" {
		t.Errorf("userID = %q, want %q", userID, "user-2")
	}
}

// An access token must not verify as a refresh token and vice versa:
// the two classes are signed with distinct secrets.
func TestTokenService_ClassesNotInterchangeable(t *testing.T) {
	ts := testTokenService()

	access, err := ts.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := ts.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := ts.VerifyRefreshToken(access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("VerifyRefreshToken(access) err = %v, want ErrTokenInvalid", err)
	}
	if _, err := ts.VerifyAccessToken(refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("VerifyAccessToken(refresh) err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenService_ExpiredTokenFails(t *testing.T) {
	ts := auth.NewTokenService(
		[]byte(testAccessSecret),
		[]byte(testRefreshSecret),
		-time.Minute, // already expired at issue time
		24*time.Hour,
	)
	tok, err := ts.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ts.VerifyAccessToken(tok); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expired token err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenService_MalformedTokenFails(t *testing.T) {
	ts := testTokenService()
	for _, raw := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := ts.VerifyAccessToken(raw); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("VerifyAccessToken(%q) err = %v, want ErrTokenInvalid", raw, err)
		}
	}
}

func TestTokenService_WrongSecretFails(t *testing.T) {
	other := auth.NewTokenService(
		[]byte("a-completely-different-secret-32!"),
		[]byte(testRefreshSecret),
		time.Hour,
		24*time.Hour,
	)
	tok, err := other.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := testTokenService().VerifyAccessToken(tok); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("mis-signed token err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenService_IssuePair(t *testing.T) {
	ts := testTokenService()
	pair, err := ts.IssuePair("user-1")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("pair has empty token")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens are identical")
	}

	if _, err := ts.VerifyAccessToken(pair.AccessToken); err != nil {
		t.Errorf("verify access of pair: %v", err)
	}
	if _, err := ts.VerifyRefreshToken(pair.RefreshToken); err != nil {
		t.Errorf("verify refresh of pair: %v", err)
	}
}
