// Package ledger holds the system balance and guards deposits and withdrawals.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ledger_system/internal/domain" // Domain models
	"ledger_system/internal/events" // Notifications

	"github.com/sirupsen/logrus" // Structured logging
)

// DefaultWithdrawalLimit is the per-transaction ceiling: one native unit
const DefaultWithdrawalLimit = domain.Unit

// Store holds the balance
type Store interface {
	Balance(ctx context.Context) (domain.Amount, error)
	Credit(ctx context.Context, amount domain.Amount) (domain.Amount, error)
	Debit(ctx context.Context, amount domain.Amount) (domain.Amount, error)
}

// Payer moves withdrawn funds to the requester
type Payer interface {
	Pay(ctx context.Context, to domain.AccountID, amount domain.Amount) error
}

// PayerFunc adapts a function to Payer
type PayerFunc func(ctx context.Context, to domain.AccountID, amount domain.Amount) error

func (f PayerFunc) Pay(ctx context.Context, to domain.AccountID, amount domain.Amount) error {
	return f(ctx, to, amount)
}

// logPayer only records the payout
var logPayer = PayerFunc(func(_ context.Context, to domain.AccountID, amount domain.Amount) error {
	logrus.WithFields(logrus.Fields{"to": to, "amount": amount.String()}).Debug("Payout")
	return nil
})

// Option configures a Ledger
type Option func(*Ledger)

// WithWithdrawalLimit overrides DefaultWithdrawalLimit
func WithWithdrawalLimit(limit domain.Amount) Option {
	return func(l *Ledger) { l.limit = limit }
}

// WithPayer sets the collaborator that transfers withdrawn funds
func WithPayer(p Payer) Option {
	return func(l *Ledger) { l.payer = p }
}

// Ledger serialises every operation, so a withdrawal's checks and debit are
// never interleaved with another mutation.
type Ledger struct {
	mu    sync.Mutex
	store Store
	sink  events.Sink
	payer Payer
	limit domain.Amount
}

// New creates a Ledger over store
func New(store Store, sink events.Sink, opts ...Option) *Ledger {
	l := &Ledger{store: store, sink: sink, payer: logPayer, limit: DefaultWithdrawalLimit} // Defaults before options
	for _, opt := range opts {
		opt(l) // Apply option
	}
	return l
}

// WithdrawalLimit returns the per-transaction ceiling
func (l *Ledger) WithdrawalLimit() domain.Amount { return l.limit }

// Deposit adds amount to the balance and emits DepositMade
func (l *Ledger) Deposit(ctx context.Context, source domain.AccountID, amount domain.Amount) (domain.Amount, error) {
	l.mu.Lock()         // One operation at a time
	defer l.mu.Unlock() // Release after notify
	return l.deposit(ctx, source, amount)
}

// Receive handles a bare value transfer. It is the same operation as Deposit.
func (l *Ledger) Receive(ctx context.Context, source domain.AccountID, amount domain.Amount) (domain.Amount, error) {
	return l.Deposit(ctx, source, amount)
}

func (l *Ledger) deposit(ctx context.Context, source domain.AccountID, amount domain.Amount) (domain.Amount, error) {
	// Negative values would drive the balance below zero
	if amount < 0 {
		return 0, &domain.InvalidAmountError{Input: amount.String()}
	}
	balance, err := l.store.Credit(ctx, amount) // Increment balance
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"source": source,          // Depositing account
			"amount": amount.String(), // Deposit amount
			"error":  err.Error(),     // Error message
		}).Error("Deposit failed")
		return 0, fmt.Errorf("credit: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"source":  source,           // Depositing account
		"amount":  amount.String(),  // Deposit amount
		"balance": balance.String(), // Balance after deposit
	}).Info("Deposit made")
	events.Emit(ctx, l.sink, events.DepositMade(source, amount)) // Notify after commit
	return balance, nil
}

// Withdraw debits amount and pays it to requester. The ceiling is checked
// before the balance.
func (l *Ledger) Withdraw(ctx context.Context, requester domain.AccountID, amount domain.Amount) (domain.Amount, error) {
	l.mu.Lock()         // One operation at a time
	defer l.mu.Unlock() // Release after notify
	return l.withdraw(ctx, requester, amount)
}

func (l *Ledger) withdraw(ctx context.Context, requester domain.AccountID, amount domain.Amount) (domain.Amount, error) {
	log := logrus.WithFields(logrus.Fields{
		"requester": requester,       // Withdrawing account
		"amount":    amount.String(), // Requested amount
	})
	if amount < 0 {
		return 0, &domain.InvalidAmountError{Input: amount.String()}
	}
	// Check the per-transaction ceiling
	if amount > l.limit {
		log.WithField("limit", l.limit.String()).Warn("Withdrawal over limit")
		return 0, &domain.WithdrawalLimitExceededError{Requester: requester, Amount: amount, Limit: l.limit}
	}
	current, err := l.store.Balance(ctx) // Read current balance
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	// Check sufficient funds
	if amount > current {
		log.WithField("balance", current.String()).Warn("Withdrawal over balance")
		return 0, &domain.InsufficientFundsError{Requester: requester, Amount: amount, Balance: current}
	}
	balance, err := l.store.Debit(ctx, amount) // Decrement balance
	if errors.Is(err, domain.ErrInsufficientFunds) {
		return 0, &domain.InsufficientFundsError{Requester: requester, Amount: amount, Balance: current}
	}
	if err != nil {
		log.WithField("error", err.Error()).Error("Withdrawal failed")
		return 0, fmt.Errorf("debit: %w", err)
	}
	// Transfer the funds to the requester
	if err := l.payer.Pay(ctx, requester, amount); err != nil {
		// Undo the debit so the failed withdrawal leaves no trace
		if _, cerr := l.store.Credit(ctx, amount); cerr != nil {
			log.WithField("error", cerr.Error()).Error("Failed to restore balance after payout failure")
			return 0, errors.Join(fmt.Errorf("pay: %w", err), fmt.Errorf("restore: %w", cerr))
		}
		log.WithField("error", err.Error()).Error("Payout failed")
		return 0, fmt.Errorf("pay: %w", err)
	}
	log.WithField("balance", balance.String()).Info("Withdrawal made")
	events.Emit(ctx, l.sink, events.WithdrawalMade(requester, amount)) // Notify after commit
	return balance, nil
}

// CurrentBalance returns the stored balance
func (l *Ledger) CurrentBalance(ctx context.Context) (domain.Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Balance(ctx) // Never observes a half-applied operation
}
