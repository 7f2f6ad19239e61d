package domain

import "time"

// EventKind names a notification
type EventKind string

const (
	EventRoleAssigned   EventKind = "RoleAssigned"
	EventDepositMade    EventKind = "DepositMade"
	EventWithdrawalMade EventKind = "WithdrawalMade"
)

// Event Model, a notification emitted after a committed state change
type Event struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`       // uuid
	Kind      EventKind `gorm:"not null;size:32;index" json:"kind"` // Notification name
	Account   AccountID `gorm:"not null;size:64" json:"account"`    // Target, source or requester
	Role      Role      `gorm:"size:16" json:"role,omitempty"`      // Set for RoleAssigned
	Amount    Amount    `json:"amount,omitempty"`                   // Set for ledger events
	CreatedAt time.Time `json:"created_at"`                         // Commit time
}
