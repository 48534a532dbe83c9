package goAccounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/goAccounts/token"
)

// Full local lifecycle: register, fail to log in while pending, activate with
// the issued token, then log in.
func TestRegisterActivateAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)

	result, err := engine.Register(ctx, RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
		Password:  "Pass123$",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := engine.Authenticate(ctx, "alice", "Pass123$"); !errors.Is(err, ErrAccountNotActivated) {
		t.Fatalf("pre-activation login: got %v, want ErrAccountNotActivated", err)
	}

	account, err := engine.Activate(ctx, result.ActivationToken)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !account.Active {
		t.Fatal("expected account active after activation")
	}
	if !store.stored(t, account.ID).Active {
		t.Fatal("expected activation to be persisted")
	}

	if _, err := engine.Authenticate(ctx, "alice", "Pass123$"); err != nil {
		t.Fatalf("post-activation login: %v", err)
	}
}

func TestActivateExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)

	result, err := engine.Register(ctx, RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
		Password:  "Pass123$",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	clock.Advance(engine.config.Token.TTL + engine.config.Token.Leeway + time.Minute)

	if _, err := engine.Activate(ctx, result.ActivationToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestActivateRejectsResetToken(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)

	acc := seedAccount(t, engine, store, "alice", "alice@example.com", "Pass123$", false)

	resetToken, err := engine.tokens.Issue(acc.ID, token.ResetPassword, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := engine.Activate(ctx, resetToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch, got %v", err)
	}
}

func TestActivateGarbageToken(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, newMockAccountStore(), newTestClock())

	if _, err := engine.Activate(ctx, "not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestActivateMissingSubjectFailsClosed(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)

	result, err := engine.Register(ctx, RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
		Password:  "Pass123$",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := store.Delete(ctx, result.Account.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := engine.Activate(ctx, result.ActivationToken); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)

	result, err := engine.Register(ctx, RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
		Password:  "Pass123$",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := engine.Activate(ctx, result.ActivationToken); err != nil {
		t.Fatalf("first Activate: %v", err)
	}
	account, err := engine.Activate(ctx, result.ActivationToken)
	if err != nil {
		t.Fatalf("second Activate: %v", err)
	}
	if !account.Active {
		t.Fatal("expected account to remain active")
	}
}

func TestResendActivation(t *testing.T) {
	ctx := context.Background()
	store := newMockAccountStore()
	clock := newTestClock()
	engine := newTestEngine(t, store, clock)

	if _, err := engine.Register(ctx, RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Example",
		Password:  "Pass123$",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resent, err := engine.ResendActivation(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("ResendActivation: %v", err)
	}
	if resent == "" {
		t.Fatal("expected a fresh activation token")
	}
	if _, err := engine.Activate(ctx, resent); err != nil {
		t.Fatalf("Activate with resent token: %v", err)
	}

	// Another resend after activation is a silent no-op.
	resent, err = engine.ResendActivation(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("ResendActivation after activation: %v", err)
	}
	if resent != "" {
		t.Fatalf("token = %q, want empty for active account", resent)
	}
}
