package ledger

import (
	"context"

	"ledger_system/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Structured logging
)

// Named entry points
const (
	OpDeposit        = "deposit"
	OpWithdraw       = "withdraw"
	OpCurrentBalance = "currentBalance"
)

// Call is one invocation of the ledger. An empty Operation with empty Data is
// a bare value transfer.
type Call struct {
	Operation string           // Entry point name
	Caller    domain.AccountID // Invoking account
	Amount    domain.Amount    // Deposit value or withdrawal request
	Data      []byte           // Auxiliary data; no entry point accepts any
}

// Result is the outcome of a dispatched call
type Result struct {
	Operation string        `json:"operation"`
	Balance   domain.Amount `json:"balance"`
}

type handler func(ctx context.Context, l *Ledger, c Call) (domain.Amount, error)

var operations = map[string]handler{
	OpDeposit: func(ctx context.Context, l *Ledger, c Call) (domain.Amount, error) {
		return l.deposit(ctx, c.Caller, c.Amount)
	},
	OpWithdraw: func(ctx context.Context, l *Ledger, c Call) (domain.Amount, error) {
		return l.withdraw(ctx, c.Caller, c.Amount)
	},
	OpCurrentBalance: func(ctx context.Context, l *Ledger, _ Call) (domain.Amount, error) {
		return l.store.Balance(ctx)
	},
}

// Match resolves the entry point c targets without touching state. Unknown
// operations, and any call that carries auxiliary data, fail with
// NoSuchOperation.
func Match(c Call) (string, error) {
	op := c.Operation // Requested entry point
	if op == "" && len(c.Data) == 0 {
		op = OpDeposit // Bare transfer
	}
	if _, ok := operations[op]; !ok || len(c.Data) > 0 {
		logrus.WithFields(logrus.Fields{
			"caller":    c.Caller,    // Invoking account
			"operation": c.Operation, // Unmatched operation
			"data_len":  len(c.Data), // Auxiliary data length
		}).Warn("No such operation")
		return "", &domain.NoSuchOperationError{Operation: c.Operation, DataLen: len(c.Data)}
	}
	return op, nil
}

// Dispatch routes c to its entry point through Match
func (l *Ledger) Dispatch(ctx context.Context, c Call) (Result, error) {
	op, err := Match(c)
	if err != nil {
		return Result{}, err // Rejected before any state is read
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, err := operations[op](ctx, l, c) // Run the matched handler
	if err != nil {
		return Result{}, err
	}
	return Result{Operation: op, Balance: balance}, nil
}
