// Package notify delivers launch-outcome notifications. Training runs are
// long; the notifiers here let the caller walk away from the terminal.
package notify

import (
	"fmt"

	"github.com/classifai/trainlaunch/internal/domain"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotifyInfo NotificationType = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

// Notification represents a notification to be sent
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	RunID   string // Optional run reference
}

// Notifier is the interface for sending notifications
type Notifier interface {
	Send(n Notification) error
}

// MultiNotifier sends to multiple notifiers
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send sends the notification to all notifiers
func (m *MultiNotifier) Send(n Notification) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(n); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// NoopNotifier does nothing (for testing or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) Send(n Notification) error { return nil }

// ForOutcome builds the notification for a finished run.
func ForOutcome(runID string, outcome *domain.Outcome) Notification {
	n := Notification{
		Title:   fmt.Sprintf("Training run %s", outcome.Status),
		Message: outcome.Summary,
		RunID:   runID,
	}
	switch outcome.Status {
	case domain.RunCompleted:
		n.Type = NotifySuccess
	case domain.RunFailed:
		n.Type = NotifyError
	default:
		n.Type = NotifyInfo
	}
	return n
}
