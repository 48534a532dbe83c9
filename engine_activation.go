package goAccounts

import (
	"context"
	"errors"

	"github.com/MrEthical07/goAccounts/token"
)

// Activate describes the activate operation and its observable behavior.
//
// Activate verifies an activation token and marks the subject account active.
// Activating an already active account succeeds idempotently. A valid token
// whose subject no longer exists fails closed with ErrAccountNotFound.
func (e *Engine) Activate(ctx context.Context, tokenStr string) (*Account, error) {
	if e == nil || e.store == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.tokens.Verify(token.ActivateAccount, tokenStr)
	if err != nil {
		mapped := mapTokenError(err)
		e.metricInc(MetricActivationFailure)
		e.emitAudit(ctx, auditEventActivationFailure, false, "", mapped, func() map[string]string {
			return map[string]string{
				"reason": "token_verify_failed",
			}
		})
		return nil, mapped
	}

	account, err := e.store.FindByID(ctx, claims.Subject)
	if err != nil {
		e.metricInc(MetricActivationFailure)
		e.emitAudit(ctx, auditEventActivationFailure, false, claims.Subject, err, func() map[string]string {
			return map[string]string{
				"reason": "account_lookup_failed",
			}
		})
		return nil, err
	}

	if !account.Active {
		account.Activate()
		if err := e.store.Update(ctx, account); err != nil {
			e.metricInc(MetricActivationFailure)
			e.emitAudit(ctx, auditEventActivationFailure, false, account.ID, err, func() map[string]string {
				return map[string]string{
					"reason": "store_update_failed",
				}
			})
			return nil, err
		}
		e.queueMail(ctx, composeActivated(e.config.Mail, account.Email, account.Username))
	}

	e.metricInc(MetricActivationSuccess)
	e.emitAudit(ctx, auditEventActivationSuccess, true, account.ID, nil, nil)

	return account, nil
}

// ResendActivation describes the resendactivation operation and its observable behavior.
//
// ResendActivation issues a fresh activation token for a pending account and
// queues the welcome mail again. Already active accounts are a no-op that
// returns an empty token.
func (e *Engine) ResendActivation(ctx context.Context, email string) (string, error) {
	if e == nil || e.store == nil || e.tokens == nil {
		return "", ErrEngineNotReady
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account.Active {
		return "", nil
	}

	activationToken, err := e.tokens.Issue(account.ID, token.ActivateAccount, e.config.Token.TTL)
	if err != nil {
		return "", err
	}
	e.queueMail(ctx, composeWelcome(e.config.Mail, account.Email, account.Username, activationToken))

	return activationToken, nil
}

// mapTokenError narrows token package errors to the engine's sentinels so
// callers never depend on the token package directly.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpired):
		return ErrTokenExpired
	case errors.Is(err, token.ErrTypeMismatch):
		return ErrTokenTypeMismatch
	default:
		return ErrTokenInvalid
	}
}
