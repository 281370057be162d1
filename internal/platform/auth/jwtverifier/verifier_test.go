package jwtverifier_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/klxtra/activities-api/internal/platform/auth/jwkstest"
	"github.com/klxtra/activities-api/internal/platform/auth/jwtverifier"
	"github.com/klxtra/activities-api/internal/platform/config"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testJWTConfig(jwksURL string) config.JWTConfig {
	return config.JWTConfig{
		Issuer:                 "test-iss",
		Audience:               "test-aud",
		JWKSURL:                jwksURL,
		ClockSkew:              0,
		JWKSRefreshInterval:    10 * time.Minute,
		JWKSMinRefreshInterval: 0,
		HTTPTimeout:            2 * time.Second,
	}
}

func TestVerifier_Verify_ValidToken(t *testing.T) {
	t.Parallel()

	jwksSrv, setKeys := jwkstest.NewRotatingJWKSServer()
	defer jwksSrv.Close()

	kp, err := jwkstest.GenerateRSAKeypair("kid-1")
	if err != nil {
		t.Fatalf("GenerateRSAKeypair: %v", err)
	}
	setKeys([]jwkstest.Keypair{kp})

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := testJWTConfig(jwksSrv.URL)
	v := jwtverifier.NewWithOptions(cfg, nil, clk)

	jwt, err := jwkstest.MintRS256JWT(kp, cfg.Issuer, cfg.Audience, "student-123", clk.Now(), 5*time.Minute, nil, map[string]any{
		"email":          "jane@example.edu",
		"name":           "Jane Doe",
		"email_verified": true,
	})
	if err != nil {
		t.Fatalf("MintRS256JWT: %v", err)
	}

	id, err := v.Verify(context.Background(), jwt)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if string(id.Subject) != "student-123" {
		t.Fatalf("subject mismatch: got %q", id.Subject)
	}
	if id.Email != "jane@example.edu" || id.Name != "Jane Doe" || !id.EmailVerified {
		t.Fatalf("identity claims mismatch: %+v", id)
	}
}

func TestVerifier_Verify_MissingIdentityClaims(t *testing.T) {
	t.Parallel()

	jwksSrv, setKeys := jwkstest.NewRotatingJWKSServer()
	defer jwksSrv.Close()

	kp, _ := jwkstest.GenerateRSAKeypair("kid-1")
	setKeys([]jwkstest.Keypair{kp})

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := testJWTConfig(jwksSrv.URL)
	v := jwtverifier.NewWithOptions(cfg, nil, clk)

	// Only sub: email/name default empty, email_verified defaults false.
	jwt, _ := jwkstest.MintRS256JWT(kp, cfg.Issuer, cfg.Audience, "student-123", clk.Now(), 5*time.Minute, nil, nil)
	id, err := v.Verify(context.Background(), jwt)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.Email != "" || id.Name != "" || id.EmailVerified {
		t.Fatalf("expected empty optional claims: %+v", id)
	}
}

func TestVerifier_Verify_Expired(t *testing.T) {
	t.Parallel()

	jwksSrv, setKeys := jwkstest.NewRotatingJWKSServer()
	defer jwksSrv.Close()

	kp, _ := jwkstest.GenerateRSAKeypair("kid-1")
	setKeys([]jwkstest.Keypair{kp})

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := testJWTConfig(jwksSrv.URL)
	v := jwtverifier.NewWithOptions(cfg, nil, clk)

	jwt, _ := jwkstest.MintRS256JWT(kp, cfg.Issuer, cfg.Audience, "student-123", clk.Now(), -1*time.Minute, nil, nil)
	if _, err := v.Verify(context.Background(), jwt); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifier_Verify_WrongIssuerOrAudience(t *testing.T) {
	t.Parallel()

	jwksSrv, setKeys := jwkstest.NewRotatingJWKSServer()
	defer jwksSrv.Close()

	kp, _ := jwkstest.GenerateRSAKeypair("kid-1")
	setKeys([]jwkstest.Keypair{kp})

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := testJWTConfig(jwksSrv.URL)
	v := jwtverifier.NewWithOptions(cfg, nil, clk)

	jwtWrongIss, _ := jwkstest.MintRS256JWT(kp, "wrong-iss", cfg.Audience, "student-123", clk.Now(), 5*time.Minute, nil, nil)
	if _, err := v.Verify(context.Background(), jwtWrongIss); err == nil {
		t.Fatalf("expected error for wrong iss")
	}

	jwtWrongAud, _ := jwkstest.MintRS256JWT(kp, cfg.Issuer, "wrong-aud", "student-123", clk.Now(), 5*time.Minute, nil, nil)
	if _, err := v.Verify(context.Background(), jwtWrongAud); err == nil {
		t.Fatalf("expected error for wrong aud")
	}
}

func TestVerifier_Verify_BadSignature(t *testing.T) {
	t.Parallel()

	jwksSrv, setKeys := jwkstest.NewRotatingJWKSServer()
	defer jwksSrv.Close()

	kp, _ := jwkstest.GenerateRSAKeypair("kid-1")
	setKeys([]jwkstest.Keypair{kp})

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := testJWTConfig(jwksSrv.URL)
	v := jwtverifier.NewWithOptions(cfg, nil, clk)

	// Mint a JWT with a different private key than what's in JWKS.
	other, _ := rsa.GenerateKey(rand.Reader, 2048)
	otherKP := jwkstest.Keypair{Kid: "kid-1", Private: other}
	jwt, _ := jwkstest.MintRS256JWT(otherKP, cfg.Issuer, cfg.Audience, "student-123", clk.Now(), 5*time.Minute, nil, nil)
	if _, err := v.Verify(context.Background(), jwt); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifier_Verify_JWKSRotation_OldKidRejected_NewKidAccepted(t *testing.T) {
	t.Parallel()

	jwksSrv, setKeys := jwkstest.NewRotatingJWKSServer()
	defer jwksSrv.Close()

	k1, _ := jwkstest.GenerateRSAKeypair("kid-1")
	k2, _ := jwkstest.GenerateRSAKeypair("kid-2")
	setKeys([]jwkstest.Keypair{k1})

	clk := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := testJWTConfig(jwksSrv.URL)
	cfg.JWKSRefreshInterval = 1 * time.Second
	v := jwtverifier.NewWithOptions(cfg, nil, clk)

	jwt1, _ := jwkstest.MintRS256JWT(k1, cfg.Issuer, cfg.Audience, "student-123", clk.Now(), 5*time.Minute, nil, nil)
	if _, err := v.Verify(context.Background(), jwt1); err != nil {
		t.Fatalf("expected jwt1 to verify: %v", err)
	}

	// Rotate: JWKS now only contains kid-2.
	setKeys([]jwkstest.Keypair{k2})
	clk.Advance(2 * time.Second) // force interval refresh on next Verify call.

	// Old kid should be rejected after refresh.
	if _, err := v.Verify(context.Background(), jwt1); err == nil {
		t.Fatalf("expected jwt1 to be rejected after rotation")
	}

	jwt2, _ := jwkstest.MintRS256JWT(k2, cfg.Issuer, cfg.Audience, "student-456", clk.Now(), 5*time.Minute, nil, nil)
	id, err := v.Verify(context.Background(), jwt2)
	if err != nil {
		t.Fatalf("expected jwt2 to verify: %v", err)
	}
	if string(id.Subject) != "student-456" {
		t.Fatalf("subject mismatch: got %q", id.Subject)
	}
}
