package goAccounts

import (
	"context"
	"errors"

	"github.com/MrEthical07/goAccounts/token"
)

// RequestPasswordReset describes the requestpasswordreset operation and its observable behavior.
//
// RequestPasswordReset is enumeration safe: an unknown email returns an empty
// token and a nil error, indistinguishable from success to an HTTP layer that
// renders a generic "check your inbox" response. The signed token is returned
// to the embedding application for testing and custom delivery.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if e == nil || e.store == nil || e.tokens == nil {
		return "", ErrEngineNotReady
	}
	if !e.config.PasswordReset.Enabled {
		return "", ErrPasswordResetDisabled
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			e.emitAudit(ctx, auditEventPasswordResetRequest, false, "", nil, func() map[string]string {
				return map[string]string{
					"reason": "unknown_email",
				}
			})
			return "", nil
		}
		return "", err
	}

	resetToken, err := e.tokens.Issue(account.ID, token.ResetPassword, e.config.Token.TTL)
	if err != nil {
		e.metricInc(MetricPasswordResetFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, account.ID, err, func() map[string]string {
			return map[string]string{
				"reason": "issue_reset_failed",
			}
		})
		return "", err
	}

	e.metricInc(MetricPasswordResetRequest)
	e.emitAudit(ctx, auditEventPasswordResetRequest, true, account.ID, nil, nil)
	e.queueMail(ctx, composePasswordReset(e.config.Mail, account.Email, account.Username, resetToken))

	return resetToken, nil
}

// ConfirmPasswordReset describes the confirmpasswordreset operation and its observable behavior.
//
// ConfirmPasswordReset verifies a reset token and replaces the account's
// password. It deliberately does not clear an active lock or the
// failed-attempt counter: a reset proves mailbox control, not that the
// lockout-triggering party is gone. A valid token whose subject no longer
// exists fails closed with ErrAccountNotFound.
func (e *Engine) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if e == nil || e.store == nil || e.hasher == nil || e.tokens == nil {
		return ErrEngineNotReady
	}
	if !e.config.PasswordReset.Enabled {
		return ErrPasswordResetDisabled
	}

	claims, err := e.tokens.Verify(token.ResetPassword, tokenStr)
	if err != nil {
		mapped := mapTokenError(err)
		e.metricInc(MetricPasswordResetFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, "", mapped, func() map[string]string {
			return map[string]string{
				"reason": "token_verify_failed",
			}
		})
		return mapped
	}

	account, err := e.store.FindByID(ctx, claims.Subject)
	if err != nil {
		e.metricInc(MetricPasswordResetFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, claims.Subject, err, func() map[string]string {
			return map[string]string{
				"reason": "account_lookup_failed",
			}
		})
		return err
	}

	if err := account.SetPassword(e.hasher, newPassword); err != nil {
		e.metricInc(MetricPasswordResetFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, account.ID, err, func() map[string]string {
			return map[string]string{
				"reason": "password_policy",
			}
		})
		return err
	}

	if err := e.store.Update(ctx, account); err != nil {
		e.metricInc(MetricPasswordResetFailure)
		e.emitAudit(ctx, auditEventPasswordResetFailure, false, account.ID, err, func() map[string]string {
			return map[string]string{
				"reason": "store_update_failed",
			}
		})
		return err
	}

	e.metricInc(MetricPasswordResetSuccess)
	e.emitAudit(ctx, auditEventPasswordResetConfirm, true, account.ID, nil, nil)
	e.queueMail(ctx, composePasswordChanged(e.config.Mail, account.Email, account.Username))

	return nil
}
