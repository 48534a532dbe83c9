package goAccounts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// NotificationKind defines a public type used by goAccounts APIs.
//
// NotificationKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type NotificationKind string

const (
	// NotificationWelcome is an exported constant or variable used by the account engine.
	NotificationWelcome NotificationKind = "welcome"
	// NotificationActivated is an exported constant or variable used by the account engine.
	NotificationActivated NotificationKind = "activated"
	// NotificationLocked is an exported constant or variable used by the account engine.
	NotificationLocked NotificationKind = "locked"
	// NotificationPasswordReset is an exported constant or variable used by the account engine.
	NotificationPasswordReset NotificationKind = "password_reset"
	// NotificationPasswordChanged is an exported constant or variable used by the account engine.
	NotificationPasswordChanged NotificationKind = "password_changed"
)

// Notification defines a public type used by goAccounts APIs.
//
// Notification instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Notification struct {
	Kind      NotificationKind
	Sender    string
	Recipient string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// MailSink defines a public type used by goAccounts APIs.
//
// MailSink is the delivery boundary: the engine composes notifications and
// hands them to the sink asynchronously. Implementations wrap SMTP, an API
// client, or an in-memory collector in tests.
type MailSink interface {
	Deliver(ctx context.Context, n Notification)
}

// NoOpMailSink is an exported constant or variable used by the account engine.
type NoOpMailSink struct{}

func (NoOpMailSink) Deliver(context.Context, Notification) {}

// ChannelMailSink defines a public type used by goAccounts APIs.
//
// ChannelMailSink instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChannelMailSink struct {
	mails chan Notification
}

// NewChannelMailSink describes the newchannelmailsink operation and its observable behavior.
//
// NewChannelMailSink may return an error when input validation, dependency calls, or security checks fail.
// NewChannelMailSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewChannelMailSink(buffer int) *ChannelMailSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelMailSink{
		mails: make(chan Notification, buffer),
	}
}

func (s *ChannelMailSink) Deliver(ctx context.Context, n Notification) {
	select {
	case s.mails <- n:
	case <-ctx.Done():
	}
}

// Mails describes the mails operation and its observable behavior.
//
// Mails may return an error when input validation, dependency calls, or security checks fail.
// Mails does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ChannelMailSink) Mails() <-chan Notification {
	return s.mails
}

// MemoryMailSink collects delivered notifications for inspection in tests and
// examples.
type MemoryMailSink struct {
	mu    sync.Mutex
	mails []Notification
}

func (s *MemoryMailSink) Deliver(_ context.Context, n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mails = append(s.mails, n)
}

// All describes the all operation and its observable behavior.
//
// All may return an error when input validation, dependency calls, or security checks fail.
// All does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MemoryMailSink) All() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.mails))
	copy(out, s.mails)
	return out
}

func tokenLink(base, tok string) string {
	if base == "" {
		return tok
	}
	return strings.TrimRight(base, "/") + "/" + tok
}

func composeWelcome(cfg MailConfig, recipient, username, activationToken string) Notification {
	return Notification{
		Kind:      NotificationWelcome,
		Sender:    cfg.Sender,
		Recipient: recipient,
		Subject:   "Welcome! Confirm your email",
		Body: fmt.Sprintf(
			"Hi %s,\n\nThanks for signing up. Confirm your email address by visiting:\n\n%s\n\nThe link expires in 2 hours.",
			username, tokenLink(cfg.ActivationURL, activationToken),
		),
	}
}

func composeActivated(cfg MailConfig, recipient, username string) Notification {
	return Notification{
		Kind:      NotificationActivated,
		Sender:    cfg.Sender,
		Recipient: recipient,
		Subject:   "Your account is active",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour email address is confirmed and your account is now active.",
			username,
		),
	}
}

func composeLocked(cfg MailConfig, recipient, username string, until time.Time) Notification {
	return Notification{
		Kind:      NotificationLocked,
		Sender:    cfg.Sender,
		Recipient: recipient,
		Subject:   "Your account has been locked",
		Body: fmt.Sprintf(
			"Hi %s,\n\nToo many failed sign-in attempts. Your account is locked until %s.",
			username, until.UTC().Format(time.RFC1123),
		),
	}
}

func composePasswordReset(cfg MailConfig, recipient, username, resetToken string) Notification {
	return Notification{
		Kind:      NotificationPasswordReset,
		Sender:    cfg.Sender,
		Recipient: recipient,
		Subject:   "Password reset request",
		Body: fmt.Sprintf(
			"Hi %s,\n\nA password reset was requested for your account. Reset it by visiting:\n\n%s\n\nThe link expires in 2 hours. If you did not request this, ignore this message.",
			username, tokenLink(cfg.ResetURL, resetToken),
		),
	}
}

func composePasswordChanged(cfg MailConfig, recipient, username string) Notification {
	return Notification{
		Kind:      NotificationPasswordChanged,
		Sender:    cfg.Sender,
		Recipient: recipient,
		Subject:   "Your password was changed",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour password was just changed. If this was not you, request a password reset immediately.",
			username,
		),
	}
}
