package goAccounts

import "context"

// GetAccount describes the getaccount operation and its observable behavior.
//
// GetAccount may return an error when input validation, dependency calls, or security checks fail.
// GetAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GetAccount(ctx context.Context, id string) (*Account, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	return e.store.FindByID(ctx, id)
}

// UnlockAccount describes the unlockaccount operation and its observable behavior.
//
// UnlockAccount is an administrative override: it clears the lock and the
// failed-attempt counter without waiting for the lock window to pass.
func (e *Engine) UnlockAccount(ctx context.Context, id string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	account, err := e.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	account.Unlock()
	if err := e.store.Update(ctx, account); err != nil {
		return err
	}

	e.metricInc(MetricAccountUnlocked)
	e.emitAudit(ctx, auditEventAccountUnlocked, true, account.ID, nil, nil)

	return nil
}

// DeleteAccount describes the deleteaccount operation and its observable behavior.
//
// DeleteAccount removes the account and frees its username and email for
// reuse.
func (e *Engine) DeleteAccount(ctx context.Context, id string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}

	e.metricInc(MetricAccountDeleted)
	e.emitAudit(ctx, auditEventAccountDeleted, true, id, nil, nil)

	return nil
}
