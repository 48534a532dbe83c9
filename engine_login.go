package goAccounts

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Authenticate describes the authenticate operation and its observable behavior.
//
// The validation order is fixed and security relevant:
//
//  1. account lookup: the lower-cased identifier against the username
//     index, then the raw identifier against the email index (unknown
//     identifier reports ErrInvalidCredentials)
//  2. lazy lock catch-up: an expired lock is cleared and persisted
//  3. password check; a mismatch increments the failed-attempt counter and,
//     at the threshold, locks the account
//  4. activation and lock gates, checked only after a correct password
//  5. failed-attempt counter reset
//
// A wrong password on a locked account therefore still reports
// ErrInvalidCredentials, never ErrAccountLocked, so the lock state leaks
// nothing to a caller who does not know the password.
func (e *Engine) Authenticate(ctx context.Context, identifier, password string) (*AuthenticateResult, error) {
	if e == nil || e.store == nil || e.hasher == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer e.metrics.Observe(MetricAuthenticateLatency, time.Since(start))
	}

	if identifier == "" || password == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
				"reason":     "empty_input",
			}
		})
		return nil, ErrInvalidCredentials
	}

	account, err := e.store.FindByUsername(ctx, strings.ToLower(identifier))
	if errors.Is(err, ErrAccountNotFound) {
		// Email addresses are stored as submitted, so the fallback lookup
		// uses the raw identifier.
		account, err = e.store.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, "", ErrInvalidCredentials, func() map[string]string {
				return map[string]string{
					"identifier": identifier,
					"reason":     "account_not_found",
				}
			})
			return nil, ErrInvalidCredentials
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
				"reason":     "store_lookup_failed",
			}
		})
		return nil, err
	}

	now := e.now()

	if account.SyncLockState(now) {
		// Expired lock: persist the cleared state before anything else so a
		// later failure path does not resurrect it.
		if err := e.store.Update(ctx, account); err != nil {
			return nil, err
		}
	}

	ok, err := account.CheckPassword(e.hasher, password)
	if err != nil || !ok {
		lockedNow := account.RegisterFailedAttempt(now, e.config.Lockout.MaxAttempts, e.config.Lockout.LockDuration)
		if updateErr := e.store.Update(ctx, account); updateErr != nil {
			return nil, updateErr
		}
		if lockedNow {
			e.metricInc(MetricAccountLocked)
			e.emitAudit(ctx, auditEventAccountLocked, false, account.ID, ErrAccountLocked, func() map[string]string {
				return map[string]string{
					"identifier": account.Username,
				}
			})
			e.queueMail(ctx, composeLocked(e.config.Mail, account.Email, account.Username, account.LockedUntil))
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, account.ID, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"identifier": account.Username,
				"reason":     "password_mismatch",
			}
		})
		return nil, ErrInvalidCredentials
	}

	if !account.Active {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, account.ID, ErrAccountNotActivated, func() map[string]string {
			return map[string]string{
				"identifier": account.Username,
				"reason":     "not_activated",
			}
		})
		return nil, ErrAccountNotActivated
	}

	if account.IsLocked(now) {
		e.metricInc(MetricLoginLocked)
		e.emitAudit(ctx, auditEventLoginFailure, false, account.ID, ErrAccountLocked, func() map[string]string {
			return map[string]string{
				"identifier": account.Username,
				"reason":     "locked",
			}
		})
		return nil, ErrAccountLocked
	}

	if account.LoginAttempts != 0 {
		account.ResetLoginAttempts()
		if err := e.store.Update(ctx, account); err != nil {
			return nil, err
		}
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, account.ID, nil, func() map[string]string {
		return map[string]string{
			"identifier": account.Username,
		}
	})

	return &AuthenticateResult{Account: account}, nil
}
