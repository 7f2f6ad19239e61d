package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match them through errors.Is and carry
// the context a caller needs to diagnose the rejection.
var (
	ErrUnauthorized            = errors.New("caller is not an admin")
	ErrInvalidRole             = errors.New("role not recognized")
	ErrWithdrawalLimitExceeded = errors.New("withdrawal exceeds the per-transaction limit")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrNoSuchOperation         = errors.New("no matching operation; this entry point does not exist")
	ErrInvalidAmount           = errors.New("invalid amount")
)

// UnauthorizedError is returned when the caller lacks the required role
type UnauthorizedError struct {
	Caller   AccountID // Offending caller
	Required Role      // Role the operation needs
}

func (e *UnauthorizedError) Error() string { return ErrUnauthorized.Error() }
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// InvalidRoleError is returned for a role name outside the accepted set
type InvalidRoleError struct {
	Name string // Role name as supplied
}

func (e *InvalidRoleError) Error() string { return ErrInvalidRole.Error() }
func (e *InvalidRoleError) Is(target error) bool {
	return target == ErrInvalidRole
}

// WithdrawalLimitExceededError is returned when a withdrawal is above the ceiling
type WithdrawalLimitExceededError struct {
	Requester AccountID
	Amount    Amount
	Limit     Amount
}

func (e *WithdrawalLimitExceededError) Error() string { return ErrWithdrawalLimitExceeded.Error() }
func (e *WithdrawalLimitExceededError) Is(target error) bool {
	return target == ErrWithdrawalLimitExceeded
}

// InsufficientFundsError is returned when a withdrawal exceeds the stored balance
type InsufficientFundsError struct {
	Requester AccountID
	Amount    Amount
	Balance   Amount
}

func (e *InsufficientFundsError) Error() string { return ErrInsufficientFunds.Error() }
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// NoSuchOperationError is returned for any call that matches no entry point
type NoSuchOperationError struct {
	Operation string // Requested operation, empty for a bare transfer
	DataLen   int    // Length of the auxiliary data supplied
}

func (e *NoSuchOperationError) Error() string { return ErrNoSuchOperation.Error() }
func (e *NoSuchOperationError) Is(target error) bool {
	return target == ErrNoSuchOperation
}

// InvalidAmountError is returned for negative, malformed or overflowing amounts
type InvalidAmountError struct {
	Input string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidAmount.Error(), e.Input)
}
func (e *InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidAmount
}
