package goAccounts

import (
	"context"
	"errors"
	"strings"

	"github.com/MrEthical07/goAccounts/google"
)

// FederatedAuthURL describes the federatedauthurl operation and its observable behavior.
//
// FederatedAuthURL may return an error when input validation, dependency calls, or security checks fail.
// FederatedAuthURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) FederatedAuthURL(ctx context.Context, state string) (string, error) {
	if e == nil || e.federated == nil {
		return "", ErrEngineNotReady
	}
	if !e.config.Federated.Enabled {
		return "", ErrFederatedDisabled
	}
	return e.federated.AuthURL(ctx, state)
}

// FederatedSignIn describes the federatedsignin operation and its observable behavior.
//
// FederatedSignIn exchanges the provider callback code for a verified profile
// and signs the subject in, provisioning an account on first contact. An
// unverified provider email is rejected outright. Provisioned accounts start
// active, with the provider subject as username. Lock state still applies to
// returning federated accounts.
func (e *Engine) FederatedSignIn(ctx context.Context, code string) (*FederatedResult, error) {
	if e == nil || e.store == nil || e.federated == nil {
		return nil, ErrEngineNotReady
	}
	if !e.config.Federated.Enabled {
		return nil, ErrFederatedDisabled
	}

	profile, err := e.federated.Exchange(ctx, code)
	if err != nil {
		e.metricInc(MetricFederatedLoginFailure)
		e.emitAudit(ctx, auditEventFederatedLoginFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"reason": "exchange_failed",
			}
		})
		return nil, err
	}

	if !profile.EmailVerified {
		e.metricInc(MetricFederatedLoginFailure)
		e.emitAudit(ctx, auditEventFederatedLoginFailure, false, "", ErrEmailNotVerified, func() map[string]string {
			return map[string]string{
				"reason": "email_unverified",
			}
		})
		return nil, ErrEmailNotVerified
	}

	account, err := e.store.FindByUsername(ctx, profile.Sub)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			e.metricInc(MetricFederatedLoginFailure)
			e.emitAudit(ctx, auditEventFederatedLoginFailure, false, "", err, func() map[string]string {
				return map[string]string{
					"reason": "store_lookup_failed",
				}
			})
			return nil, err
		}
		return e.provisionFederatedAccount(ctx, profile)
	}

	if account.IsLocked(e.now()) {
		e.metricInc(MetricFederatedLoginFailure)
		e.emitAudit(ctx, auditEventFederatedLoginFailure, false, account.ID, ErrAccountLocked, nil)
		return nil, ErrAccountLocked
	}

	e.metricInc(MetricFederatedLoginSuccess)
	e.emitAudit(ctx, auditEventFederatedLoginSuccess, true, account.ID, nil, nil)

	return &FederatedResult{Account: account}, nil
}

func (e *Engine) provisionFederatedAccount(ctx context.Context, profile *google.Profile) (*FederatedResult, error) {
	account, err := NewFederatedAccount(ProviderGoogle, profile.Sub, profile.Email)
	if err != nil {
		e.metricInc(MetricFederatedLoginFailure)
		e.emitAudit(ctx, auditEventFederatedLoginFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"reason": "invalid_profile",
			}
		})
		return nil, err
	}

	// Provider name claims are optional; accounts without them stay nameless.
	account.FirstName = strings.TrimSpace(profile.GivenName)
	account.LastName = strings.TrimSpace(profile.FamilyName)

	if err := e.store.Create(ctx, account); err != nil {
		e.metricInc(MetricFederatedLoginFailure)
		e.emitAudit(ctx, auditEventFederatedLoginFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"reason": "store_create_failed",
			}
		})
		return nil, err
	}

	e.metricInc(MetricFederatedAccountCreated)
	e.metricInc(MetricFederatedLoginSuccess)
	e.emitAudit(ctx, auditEventFederatedAccountCreated, true, account.ID, nil, func() map[string]string {
		return map[string]string{
			"provider": ProviderGoogle,
		}
	})

	return &FederatedResult{Account: account, Created: true}, nil
}
