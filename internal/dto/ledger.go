package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// DepositRequest defines the data for a client account deposit.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// WithdrawRequest defines the data for a client account withdrawal. The
// payout is checked against both the account balance and the company cash.
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// LedgerMovementResponse defines the data returned for one statement line.
type LedgerMovementResponse struct {
	MovementID     string                   `json:"movementID"`
	AccountID      string                   `json:"accountID"`
	Direction      domain.MovementDirection `json:"direction"`
	Origin         domain.MovementOrigin    `json:"origin"`
	Amount         decimal.Decimal          `json:"amount"`
	Description    string                   `json:"description"`
	OccurredAt     time.Time                `json:"occurredAt"`
	RunningBalance decimal.Decimal          `json:"runningBalance"`

	ContractID         *string `json:"contractID,omitempty"`
	InstallmentID      *string `json:"installmentID,omitempty"`
	ReversesMovementID *string `json:"reversesMovementID,omitempty"`
}

// LedgerAccountResponse defines the data returned for a client account.
type LedgerAccountResponse struct {
	AccountID string          `json:"accountID"`
	ClientID  string          `json:"clientID"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListMovementsParams defines query parameters for an account statement.
type ListMovementsParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// StatementResponse wraps an account with a page of its movements.
type StatementResponse struct {
	Account   LedgerAccountResponse    `json:"account"`
	Movements []LedgerMovementResponse `json:"movements"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToLedgerMovementResponse converts a domain.LedgerMovement to its DTO.
func ToLedgerMovementResponse(m *domain.LedgerMovement) LedgerMovementResponse {
	return LedgerMovementResponse{
		MovementID:         m.MovementID,
		AccountID:          m.AccountID,
		Direction:          m.Direction,
		Origin:             m.Origin,
		Amount:             m.Amount,
		Description:        m.Description,
		OccurredAt:         m.OccurredAt,
		RunningBalance:     m.RunningBalance,
		ContractID:         m.ContractID,
		InstallmentID:      m.InstallmentID,
		ReversesMovementID: m.ReversesMovementID,
	}
}

// ToLedgerMovementResponses converts a slice of movements to DTOs.
func ToLedgerMovementResponses(ms []domain.LedgerMovement) []LedgerMovementResponse {
	out := make([]LedgerMovementResponse, len(ms))
	for i, m := range ms {
		out[i] = ToLedgerMovementResponse(&m)
	}
	return out
}

// ToLedgerAccountResponse converts a domain.LedgerAccount to its DTO.
func ToLedgerAccountResponse(a *domain.LedgerAccount) LedgerAccountResponse {
	return LedgerAccountResponse{
		AccountID: a.AccountID,
		ClientID:  a.ClientID,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}
