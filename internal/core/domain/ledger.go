package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection indicates whether a ledger movement credits or debits the
// account it belongs to.
type MovementDirection string

const (
	MovementCredit MovementDirection = "CREDIT"
	MovementDebit  MovementDirection = "DEBIT"
)

// MovementOrigin tags the business event that produced a ledger movement.
type MovementOrigin string

const (
	OriginLoanDisbursement        MovementOrigin = "LOAN_DISBURSEMENT"
	OriginWithdrawal              MovementOrigin = "WITHDRAWAL"
	OriginDeposit                 MovementOrigin = "DEPOSIT"
	OriginInstallmentPayment      MovementOrigin = "INSTALLMENT_PAYMENT"
	OriginFee                     MovementOrigin = "FEE"
	OriginRenegotiationSettlement MovementOrigin = "RENEGOTIATION_SETTLEMENT"
	OriginPartnerCommission       MovementOrigin = "PARTNER_COMMISSION"
	OriginReversal                MovementOrigin = "REVERSAL"
)

// LedgerAccount is the per-client sub-ledger. Balance is derived from the
// account's movements and is only ever mutated together with a movement
// insert, inside the same transaction. There is no direct balance setter.
type LedgerAccount struct {
	AccountID string          `json:"accountID"`
	ClientID  string          `json:"clientID"`
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}

// LedgerMovement is one append-only entry of a client account's statement.
// Amount is always positive; the sign is implied by Direction. Movements are
// never edited or removed: correction is a new movement in the opposite
// direction referencing the original.
type LedgerMovement struct {
	MovementID  string            `json:"movementID"`
	AccountID   string            `json:"accountID"`
	Direction   MovementDirection `json:"direction"`
	Origin      MovementOrigin    `json:"origin"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	OccurredAt  time.Time         `json:"occurredAt"`

	// Optional back-references for traceability only.
	ContractID         *string `json:"contractID,omitempty"`
	InstallmentID      *string `json:"installmentID,omitempty"`
	ReversesMovementID *string `json:"reversesMovementID,omitempty"`

	// RunningBalance is the account balance immediately after this movement,
	// computed at insertion time.
	RunningBalance decimal.Decimal `json:"runningBalance"`
	AuditFields
}

// SignedAmount returns the movement amount with the sign implied by its
// direction: positive for credits, negative for debits.
func (m *LedgerMovement) SignedAmount() decimal.Decimal {
	if m.Direction == MovementDebit {
		return m.Amount.Neg()
	}
	return m.Amount
}
