package goAccounts

import (
	"context"
	"errors"

	"github.com/MrEthical07/goAccounts/token"
)

// Register describes the register operation and its observable behavior.
//
// Register validates the request against the credential policy, creates the
// account pending activation, issues the activation token, and queues the
// welcome mail carrying the activation link. Username and email uniqueness is
// delegated to the store, so concurrent registrations resolve there.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if e == nil || e.store == nil || e.hasher == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}
	if !e.config.Registration.Enabled {
		return nil, ErrRegistrationDisabled
	}

	account, err := NewAccount(req.Username, req.Email)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"identifier": req.Username,
				"reason":     "policy",
			}
		})
		return nil, err
	}
	if err := account.SetName(req.FirstName, req.LastName); err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"identifier": account.Username,
				"reason":     "policy",
			}
		})
		return nil, err
	}
	if err := account.SetPassword(e.hasher, req.Password); err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"identifier": account.Username,
				"reason":     "password_policy",
			}
		})
		return nil, err
	}

	if !e.config.Registration.RequireActivation {
		account.Activate()
	}

	if err := e.store.Create(ctx, account); err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken), errors.Is(err, ErrDuplicateIdentifier):
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", err, func() map[string]string {
				return map[string]string{
					"identifier": account.Username,
				}
			})
		default:
			e.metricInc(MetricRegisterFailure)
			e.emitAudit(ctx, auditEventRegisterFailure, false, "", err, func() map[string]string {
				return map[string]string{
					"identifier": account.Username,
					"reason":     "store_create_failed",
				}
			})
		}
		return nil, err
	}

	result := &RegisterResult{Account: account}

	if e.config.Registration.RequireActivation {
		activationToken, err := e.tokens.Issue(account.ID, token.ActivateAccount, e.config.Token.TTL)
		if err != nil {
			e.metricInc(MetricRegisterFailure)
			e.emitAudit(ctx, auditEventRegisterFailure, false, account.ID, err, func() map[string]string {
				return map[string]string{
					"identifier": account.Username,
					"reason":     "issue_activation_failed",
				}
			})
			return nil, err
		}
		result.ActivationToken = activationToken
		e.queueMail(ctx, composeWelcome(e.config.Mail, account.Email, account.Username, activationToken))
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, account.ID, nil, func() map[string]string {
		return map[string]string{
			"identifier": account.Username,
		}
	})

	return result, nil
}

func (e *Engine) queueMail(ctx context.Context, n Notification) {
	if e == nil || e.mail == nil {
		return
	}
	e.metricInc(MetricMailQueued)
	e.mail.Queue(ctx, n)
}
