package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"ledger_system/internal/domain" // Domain models

	"github.com/google/uuid"     // Event ids
	"github.com/sirupsen/logrus" // Structured logging
)

// Sink receives notifications after the state change they describe has committed
type Sink interface {
	Publish(ctx context.Context, e domain.Event) error
}

// RoleAssigned builds a RoleAssigned notification
func RoleAssigned(target domain.AccountID, role domain.Role) domain.Event {
	return newEvent(domain.EventRoleAssigned, target, role, 0)
}

// DepositMade builds a DepositMade notification
func DepositMade(source domain.AccountID, amount domain.Amount) domain.Event {
	return newEvent(domain.EventDepositMade, source, "", amount)
}

// WithdrawalMade builds a WithdrawalMade notification
func WithdrawalMade(requester domain.AccountID, amount domain.Amount) domain.Event {
	return newEvent(domain.EventWithdrawalMade, requester, "", amount)
}

func newEvent(kind domain.EventKind, account domain.AccountID, role domain.Role, amount domain.Amount) domain.Event {
	return domain.Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Account:   account,
		Role:      role,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// Emit publishes e and logs a failed publish. The state change has already
// committed, so a sink failure is reported but never returned to the caller.
func Emit(ctx context.Context, sink Sink, e domain.Event) {
	if sink == nil {
		return
	}
	if err := sink.Publish(ctx, e); err != nil {
		logrus.WithFields(logrus.Fields{
			"event_id": e.ID,        // Event id
			"kind":     e.Kind,      // Event kind
			"account":  e.Account,   // Account on the event
			"error":    err.Error(), // Error message
		}).Error("Failed to publish event")
	}
}

// Log is an in-memory append-only notification log
type Log struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewLog creates an empty Log
func NewLog() *Log {
	return &Log{}
}

// Publish appends e to the log
func (l *Log) Publish(_ context.Context, e domain.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

// Events returns a copy of every event published so far, oldest first
func (l *Log) Events() []domain.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Last returns the most recent event
func (l *Log) Last() (domain.Event, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.events) == 0 {
		return domain.Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Len reports how many events were published
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Fanout publishes every event to each of its sinks
type Fanout []Sink

// Publish forwards e to all sinks and joins their errors
func (f Fanout) Publish(ctx context.Context, e domain.Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
