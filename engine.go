package goAccounts

import (
	"time"

	"github.com/MrEthical07/goAccounts/token"
)

// Engine defines a public type used by goAccounts APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	store     AccountStore
	hasher    PasswordHasher
	tokens    *token.Manager
	federated FederatedProvider
	audit     *auditDispatcher
	mail      *mailDispatcher
	metrics   *Metrics

	// now is the engine wall clock. Tests override it to exercise lock and
	// expiry boundaries without sleeping.
	now func() time.Time
}

// Close describes the close operation and its observable behavior.
//
// Close drains and stops the audit and mail dispatchers. The Engine must not
// be used after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
	if e.mail != nil {
		e.mail.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MailDropped describes the maildropped operation and its observable behavior.
//
// MailDropped may return an error when input validation, dependency calls, or security checks fail.
// MailDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MailDropped() uint64 {
	if e == nil || e.mail == nil {
		return 0
	}
	return e.mail.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}
