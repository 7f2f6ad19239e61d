package domain

// RoleGrant Model, one row per (account, role) membership
type RoleGrant struct {
	ID        uint      `gorm:"primaryKey"`                                    // Primary key
	Account   AccountID `gorm:"not null;size:64;uniqueIndex:idx_account_role"` // Account holding the role
	Role      Role      `gorm:"not null;size:16;uniqueIndex:idx_account_role"` // Admin, Supporter or Member
	CreatedAt int64     `gorm:"autoCreateTime:milli"`                          // Timestamp of creation in milliseconds
}

// LedgerState Model, a single row holding the ledger balance
type LedgerState struct {
	ID      uint   `gorm:"primaryKey"`         // Always LedgerStateID
	Balance Amount `gorm:"not null;default:0"` // Balance in minor units
}

// LedgerStateID is the primary key of the only LedgerState row
const LedgerStateID uint = 1

// RegistryBootstrap Model, a single row recording which account bootstrapped the registry
type RegistryBootstrap struct {
	ID        uint      `gorm:"primaryKey"`           // Always RegistryBootstrapID
	Creator   AccountID `gorm:"not null;size:64"`     // First admin
	CreatedAt int64     `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}

// RegistryBootstrapID is the primary key of the only RegistryBootstrap row
const RegistryBootstrapID uint = 1
