package store

import (
	"context"
	"errors"
	"strings"

	"ledger_system/internal/domain" // Domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clauses
)

// Gorm persists state through GORM. The tables are created by db.Migrate.
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a Gorm store
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// HasRole reports whether a grant row exists for (account, role)
func (g *Gorm) HasRole(ctx context.Context, account domain.AccountID, role domain.Role) (bool, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&domain.RoleGrant{}).
		Where("account = ? AND role = ?", account, role). // Filter by account and role
		Count(&n).Error
	return n > 0, err
}

// GrantRole inserts a grant row, ignoring an existing one
func (g *Gorm) GrantRole(ctx context.Context, account domain.AccountID, role domain.Role) error {
	grant := domain.RoleGrant{Account: account, Role: role} // Grant row
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
}

// BootstrapAdmin inserts the bootstrap row and the creator's admin grant in one
// transaction. The row's fixed primary key lets only one instance ever win.
func (g *Gorm) BootstrapAdmin(ctx context.Context, creator domain.AccountID) (bool, error) {
	granted := false
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := domain.RegistryBootstrap{ID: domain.RegistryBootstrapID, Creator: creator}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row) // Claim the bootstrap row
		if res.Error != nil {
			return res.Error // Return error to rollback
		}
		if res.RowsAffected == 0 {
			return nil // Already bootstrapped
		}
		grant := domain.RoleGrant{Account: creator, Role: domain.RoleAdmin}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error; err != nil {
			return err // Return error to rollback
		}
		granted = true
		return nil // Commit transaction
	})
	if err != nil {
		return false, err
	}
	return granted, nil
}

// CountRole counts grant rows for role
func (g *Gorm) CountRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&domain.RoleGrant{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

// Balance reads the ledger row; a missing row means a zero balance
func (g *Gorm) Balance(ctx context.Context) (domain.Amount, error) {
	var state domain.LedgerState
	err := g.db.WithContext(ctx).First(&state, domain.LedgerStateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return state.Balance, err
}

// Credit increments the balance atomically
func (g *Gorm) Credit(ctx context.Context, amount domain.Amount) (domain.Amount, error) {
	var balance domain.Amount
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := ensureState(tx)
		if err != nil {
			return err // Return error to rollback
		}
		// Refuse before writing so an overflowing credit leaves the row untouched
		if balance, err = state.Balance.Add(amount); err != nil {
			return err
		}
		return tx.Model(&state).Update("balance", gorm.Expr("balance + ?", amount)).Error // Increment balance
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Debit decrements the balance only while it stays non-negative
func (g *Gorm) Debit(ctx context.Context, amount domain.Amount) (domain.Amount, error) {
	if amount == 0 {
		return g.Balance(ctx) // MySQL reports zero affected rows for a no-op update
	}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureState(tx); err != nil {
			return err // Return error to rollback
		}
		res := tx.Model(&domain.LedgerState{}).
			Where("id = ? AND balance >= ?", domain.LedgerStateID, amount). // Only while funds suffice
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error // Return error to rollback
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientFunds // Guard rejected the update
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return g.Balance(ctx)
}

// ensureState loads the ledger row, creating it at zero on first use
func ensureState(tx *gorm.DB) (domain.LedgerState, error) {
	state := domain.LedgerState{ID: domain.LedgerStateID}
	err := tx.Where(domain.LedgerState{ID: domain.LedgerStateID}).FirstOrCreate(&state).Error
	return state, err
}

// CreateUser inserts u; a taken account name yields ErrConflict
func (g *Gorm) CreateUser(ctx context.Context, u *domain.User) error {
	err := g.db.WithContext(ctx).Create(u).Error
	if err != nil && isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// FindUser looks up the credentials of account
func (g *Gorm) FindUser(ctx context.Context, account domain.AccountID) (*domain.User, error) {
	var u domain.User
	err := g.db.WithContext(ctx).Where("account = ?", account).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
