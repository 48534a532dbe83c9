package token

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
	"time"
)

func newHSManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		TTL:           2 * time.Hour,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("test-secret-test-secret-test-secret"),
		Issuer:        "accounts-test",
		Now:           now,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := newHSManager(t, nil)

	raw, err := m.Issue("acc-123", ActivateAccount, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(ActivateAccount, raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "acc-123" {
		t.Fatalf("subject = %q, want acc-123", claims.Subject)
	}
	if claims.TokenType != ActivateAccount {
		t.Fatalf("token type = %q, want %q", claims.TokenType, ActivateAccount)
	}
}

func TestVerifyTypeMismatch(t *testing.T) {
	m := newHSManager(t, nil)

	raw, err := m.Issue("acc-123", ActivateAccount, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := m.Verify(ResetPassword, raw); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	current := time.Now()
	m := newHSManager(t, func() time.Time { return current })

	raw, err := m.Issue("acc-123", ResetPassword, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	current = current.Add(time.Hour + time.Minute)
	if _, err := m.Verify(ResetPassword, raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := newHSManager(t, nil)
	if _, err := m.Verify(ActivateAccount, "not.a.token"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	m := newHSManager(t, nil)
	other, err := NewManager(Config{
		TTL:           2 * time.Hour,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("a-completely-different-secret-value"),
		Issuer:        "accounts-test",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	raw, err := other.Issue("acc-123", ActivateAccount, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(ActivateAccount, raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	m := newHSManager(t, nil)
	if _, err := m.Issue("", ActivateAccount, 0); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestIssueRejectsUnknownType(t *testing.T) {
	m := newHSManager(t, nil)
	if _, err := m.Issue("acc-123", Type("refresh"), 0); err == nil {
		t.Fatal("expected error for unknown token type")
	}
}

func TestEd25519RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	m, err := NewManager(Config{
		TTL:           2 * time.Hour,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     pub,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	raw, err := m.Issue("acc-456", ResetPassword, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Verify(ResetPassword, raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "acc-456" {
		t.Fatalf("subject = %q, want acc-456", claims.Subject)
	}
}

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(Config{SigningMethod: MethodHS256, PrivateKey: []byte("k")}); err == nil {
		t.Fatal("expected error for missing TTL")
	}
	if _, err := NewManager(Config{TTL: time.Hour, SigningMethod: MethodHS256}); err == nil {
		t.Fatal("expected error for missing private key")
	}
	if _, err := NewManager(Config{TTL: time.Hour, SigningMethod: SigningMethod("rsa")}); err == nil {
		t.Fatal("expected error for unsupported method")
	}
}
