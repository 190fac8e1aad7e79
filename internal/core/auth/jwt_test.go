package auth

import (
	"testing"
	"time"
)

func TestIssueParse_Roundtrip(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}

	tok, err := j.Issue("u1", "admin@123", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "u1" || claims.Email != "admin@123" || !claims.Admin {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestParse_Expired(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: -time.Minute}

	tok, err := j.Issue("u1", "x@y", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := j.Parse(tok); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestParse_WrongSecret(t *testing.T) {
	a := &JWTer{Secret: []byte("secret-a"), Issuer: "test", TTL: time.Hour}
	b := &JWTer{Secret: []byte("secret-b"), Issuer: "test", TTL: time.Hour}

	tok, err := a.Issue("u1", "x@y", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.Parse(tok); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestIssue_DefaultTTL(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "test"}

	tok, err := j.Issue("u1", "x@y", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if window != DefaultTTL {
		t.Errorf("default lifetime = %v, want %v", window, DefaultTTL)
	}
}
