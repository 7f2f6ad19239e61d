package domain

// AccountID identifies a caller
type AccountID string

// User Model, the login credentials bound to an account identity
type User struct {
	ID       uint      `gorm:"primaryKey"`              // Primary key
	Account  AccountID `gorm:"unique;not null;size:64"` // Account identity used by the registry and ledger
	Password string    `gorm:"not null" json:"-"`       // Hashed password
	Created  int64     `gorm:"autoCreateTime:milli"`    // Timestamp of creation in milliseconds
}
