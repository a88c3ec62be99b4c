package utils

import (
	"testing"
	"time"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "test")
	t.Setenv("JWT_SECRET_KEY", "jwt-test-secret")
	InitJWT()
}

func TestAccessTokenRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateAccessToken("user-123", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseToken(token, "access")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("user id = %q, want user-123", claims.UserID)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("session id = %q, want sess-1", claims.SessionID)
	}

	bare, _ := GenerateAccessToken("user-123", "")
	claims, err = ParseToken(bare, "access")
	if err != nil {
		t.Fatalf("ParseToken without session: %v", err)
	}
	if claims.SessionID != "" {
		t.Errorf("session id = %q, want empty", claims.SessionID)
	}
}

func TestTokenTypeIsEnforced(t *testing.T) {
	initTestJWT(t)

	access, _ := GenerateAccessToken("user-123", "")
	refresh, _ := GenerateRefreshToken("user-123", "")

	if _, err := ParseToken(access, "refresh"); err == nil {
		t.Error("access token accepted at the refresh endpoint")
	}
	if _, err := ParseToken(refresh, "access"); err == nil {
		t.Error("refresh token accepted as an access token")
	}
	if _, err := ParseToken(refresh, "refresh"); err != nil {
		t.Errorf("refresh token rejected at its own endpoint: %v", err)
	}
}

func TestParseTokenRejectsTamperedSignature(t *testing.T) {
	initTestJWT(t)

	token, _ := GenerateAccessToken("user-123", "")

	JWTSecretKey = "a-different-secret"
	defer func() { JWTSecretKey = "jwt-test-secret" }()

	if _, err := ParseToken(token, "access"); err == nil {
		t.Error("token signed with the old secret still parses")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	initTestJWT(t)

	if _, err := ParseToken("not.a.token", "access"); err == nil {
		t.Error("garbage token parsed")
	}
	if _, err := ParseToken("", "access"); err == nil {
		t.Error("empty token parsed")
	}
}

func TestTokenRemainingTTL(t *testing.T) {
	initTestJWT(t)

	token, _ := GenerateAccessToken("user-123", "")
	ttl := TokenRemainingTTL(token)
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("remaining ttl = %v, want within (0, 1h]", ttl)
	}

	if got := TokenRemainingTTL("garbage"); got != 0 {
		t.Errorf("ttl of garbage token = %v, want 0", got)
	}
}
