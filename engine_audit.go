package goAccounts

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventRegisterSuccess         = "register_success"
	auditEventRegisterFailure         = "register_failure"
	auditEventRegisterDuplicate       = "register_duplicate"
	auditEventLoginSuccess            = "login_success"
	auditEventLoginFailure            = "login_failure"
	auditEventAccountLocked           = "account_locked"
	auditEventAccountUnlocked         = "account_unlocked"
	auditEventAccountDeleted          = "account_deleted"
	auditEventActivationSuccess       = "activation_success"
	auditEventActivationFailure       = "activation_failure"
	auditEventPasswordResetRequest    = "password_reset_request"
	auditEventPasswordResetConfirm    = "password_reset_confirm"
	auditEventPasswordResetFailure    = "password_reset_failure"
	auditEventFederatedLoginSuccess   = "federated_login_success"
	auditEventFederatedLoginFailure   = "federated_login_failure"
	auditEventFederatedAccountCreated = "federated_account_created"
)

// AuditErrorCode defines a public type used by goAccounts APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrAccountLocked      AuditErrorCode = "account_locked"
	auditErrAccountInactive    AuditErrorCode = "account_inactive"
	auditErrAccountNotFound    AuditErrorCode = "account_not_found"
	auditErrDuplicate          AuditErrorCode = "duplicate"
	auditErrPolicy             AuditErrorCode = "policy_violation"
	auditErrTokenExpired       AuditErrorCode = "token_expired"
	auditErrInvalidToken       AuditErrorCode = "invalid_token"
	auditErrFeatureDisabled    AuditErrorCode = "feature_disabled"
	auditErrEmailUnverified    AuditErrorCode = "email_unverified"
	auditErrUnavailable        AuditErrorCode = "backend_unavailable"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	accountID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		AccountID: accountID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrAccountLocked):
		return auditErrAccountLocked
	case errors.Is(err, ErrAccountNotActivated):
		return auditErrAccountInactive
	case errors.Is(err, ErrAccountNotFound):
		return auditErrAccountNotFound
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrDuplicateIdentifier):
		return auditErrDuplicate
	case errors.Is(err, ErrTokenExpired):
		return auditErrTokenExpired
	case errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenTypeMismatch):
		return auditErrInvalidToken
	case errors.Is(err, ErrRegistrationDisabled),
		errors.Is(err, ErrPasswordResetDisabled),
		errors.Is(err, ErrFederatedDisabled):
		return auditErrFeatureDisabled
	case errors.Is(err, ErrEmailNotVerified):
		return auditErrEmailUnverified
	case errors.Is(err, ErrStoreUnavailable):
		return auditErrUnavailable
	case isPolicyError(err):
		return auditErrPolicy
	default:
		return auditErrInternal
	}
}
