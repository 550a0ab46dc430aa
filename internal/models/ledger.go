package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccount is the row model for the ledger_accounts table.
type LedgerAccount struct {
	AccountID string          `db:"account_id"`
	ClientID  string          `db:"client_id"`
	Balance   decimal.Decimal `db:"balance"`
	AuditFields
}

// LedgerMovement is the row model for the ledger_movements table.
type LedgerMovement struct {
	MovementID  string          `db:"movement_id"`
	AccountID   string          `db:"account_id"`
	Direction   string          `db:"direction"`
	Origin      string          `db:"origin"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	OccurredAt  time.Time       `db:"occurred_at"`

	ContractID         *string `db:"contract_id"`
	InstallmentID      *string `db:"installment_id"`
	ReversesMovementID *string `db:"reverses_movement_id"`

	RunningBalance decimal.Decimal `db:"running_balance"`
	AuditFields
}

// CashBookEntry is the row model for the cash_book_entries table.
type CashBookEntry struct {
	EntryID     string          `db:"entry_id"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	OccurredAt  time.Time       `db:"occurred_at"`

	ContractID      *string `db:"contract_id"`
	ReversesEntryID *string `db:"reverses_entry_id"`

	ActorID   string    `db:"actor_id"`
	SourceIP  string    `db:"source_ip"`
	CreatedAt time.Time `db:"created_at"`
}
