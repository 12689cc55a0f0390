package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"meetingsManagement/internal/testutil"
)

const (
	testSecret = "test-secret"
	testUserID = "7b1f6a8e-0c1d-4c52-9a6e-2f4b8d3e9a10"
)

func TestVerify_ValidToken(t *testing.T) {
	tok := testutil.GenerateAccessToken(t, testSecret, testUserID, time.Hour)
	s, err := NewVerifier(testSecret).Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if s.User.ID != testUserID || s.AccessToken != tok || s.ExpiresAt.IsZero() {
		t.Fatalf("session mismatch: %+v", s)
	}
}

func TestVerify_Rejections(t *testing.T) {
	v := NewVerifier(testSecret)
	cases := map[string]string{
		"wrong secret": testutil.GenerateAccessToken(t, "other", testUserID, time.Hour),
		"expired":      testutil.GenerateAccessToken(t, testSecret, testUserID, -time.Minute),
		"non uuid sub": testutil.GenerateAccessToken(t, testSecret, "alice", time.Hour),
		"garbage":      "not.a.jwt",
	}
	for name, tok := range cases {
		if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
	if _, err := NewVerifier("").Verify("x"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestSignRoundTrip(t *testing.T) {
	v := NewVerifier(testSecret)
	tok, err := v.Sign(testUserID, "a@example.test", time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	s, err := v.Verify(tok)
	if err != nil || s.User.Email != "a@example.test" {
		t.Fatalf("verify signed: %+v %v", s, err)
	}
}

func TestCurrentSession(t *testing.T) {
	v := NewVerifier(testSecret)

	s, err := v.CurrentSession(context.Background())
	if err != nil || s != nil {
		t.Fatalf("no token: %+v %v", s, err)
	}

	expired := testutil.GenerateAccessToken(t, testSecret, testUserID, -time.Minute)
	s, err = v.CurrentSession(WithAccessToken(context.Background(), expired))
	if err != nil || s != nil {
		t.Fatalf("expired token should be no session: %+v %v", s, err)
	}

	valid := testutil.GenerateAccessToken(t, testSecret, testUserID, time.Hour)
	s, err = v.CurrentSession(WithAccessToken(context.Background(), valid))
	if err != nil || s == nil || s.User.ID != testUserID {
		t.Fatalf("valid token: %+v %v", s, err)
	}
}
