package store

import (
	"context"
	"sync"

	"ledger_system/internal/domain" // Domain models
)

// Memory keeps all state in process
type Memory struct {
	mu           sync.RWMutex
	roles        map[domain.Role]map[domain.AccountID]bool // One membership set per role
	bootstrapped bool                                      // Set once the first admin is granted
	balance      domain.Amount                             // Ledger balance in minor units
	users        map[domain.AccountID]domain.User          // Credentials by account
	nextID       uint                                      // Last assigned user ID
}

// NewMemory creates an empty Memory store
func NewMemory() *Memory {
	roles := make(map[domain.Role]map[domain.AccountID]bool, len(domain.Roles))
	for _, r := range domain.Roles {
		roles[r] = make(map[domain.AccountID]bool)
	}
	return &Memory{roles: roles, users: make(map[domain.AccountID]domain.User)}
}

// HasRole reports whether account is in the role's set
func (m *Memory) HasRole(_ context.Context, account domain.AccountID, role domain.Role) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roles[role][account], nil
}

// GrantRole inserts account into the role's set; granting twice is a no-op
func (m *Memory) GrantRole(_ context.Context, account domain.AccountID, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.roles[role]
	if !ok {
		return &domain.InvalidRoleError{Name: string(role)}
	}
	set[account] = true // Insert into the membership set
	return nil
}

// BootstrapAdmin grants creator Admin on the first call only
func (m *Memory) BootstrapAdmin(_ context.Context, creator domain.AccountID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bootstrapped {
		return false, nil // Someone already bootstrapped
	}
	m.bootstrapped = true
	m.roles[domain.RoleAdmin][creator] = true // Creator becomes the first admin
	return true, nil
}

// CountRole returns the size of the role's set
func (m *Memory) CountRole(_ context.Context, role domain.Role) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.roles[role])), nil
}

// Balance returns the ledger balance
func (m *Memory) Balance(_ context.Context) (domain.Amount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balance, nil
}

// Credit adds amount to the balance and returns the new balance
func (m *Memory) Credit(_ context.Context, amount domain.Amount) (domain.Amount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := m.balance.Add(amount) // Overflow-checked sum
	if err != nil {
		return m.balance, err
	}
	m.balance = next
	return next, nil
}

// Debit subtracts amount from the balance, refusing to go below zero
func (m *Memory) Debit(_ context.Context, amount domain.Amount) (domain.Amount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if amount > m.balance {
		return m.balance, domain.ErrInsufficientFunds // Balance never goes below zero
	}
	m.balance -= amount
	return m.balance, nil
}

// CreateUser stores u, assigning its ID
func (m *Memory) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[u.Account]; exists {
		return ErrConflict // Account already registered
	}
	m.nextID++
	u.ID = m.nextID // Assign ID like an autoincrement column
	m.users[u.Account] = *u
	return nil
}

// FindUser looks up the credentials of account
func (m *Memory) FindUser(_ context.Context, account domain.AccountID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[account]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}
