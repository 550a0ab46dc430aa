package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// CreateCashEntryRequest defines the data for a manual cash book entry.
// Amount is a positive magnitude; the engine applies the category's sign.
type CreateCashEntryRequest struct {
	Category    domain.CashBookCategory `json:"category" binding:"required"`
	Amount      decimal.Decimal         `json:"amount" binding:"required"`
	Description string                  `json:"description" binding:"required,notblank"`
	OccurredAt  time.Time               `json:"occurredAt"`
	ContractID  *string                 `json:"contractID"`
}

// ReverseCashEntryRequest defines the data for the privileged reversal of a
// cash book entry.
type ReverseCashEntryRequest struct {
	Reason      string `json:"reason" binding:"required,notblank"`
	AdminSecret string `json:"adminSecret" binding:"required"`
}

// CashEntryResponse defines the data returned for one cash book line.
type CashEntryResponse struct {
	EntryID     string                  `json:"entryID"`
	Category    domain.CashBookCategory `json:"category"`
	Amount      decimal.Decimal         `json:"amount"`
	Description string                  `json:"description"`
	OccurredAt  time.Time               `json:"occurredAt"`

	ContractID      *string `json:"contractID,omitempty"`
	ReversesEntryID *string `json:"reversesEntryID,omitempty"`

	ActorID   string    `json:"actorID"`
	CreatedAt time.Time `json:"createdAt"`
}

// CashBalanceResponse defines the data returned for the cash balance query.
type CashBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"asOf"`
}

// ListCashEntriesParams defines query parameters for listing cash entries.
type ListCashEntriesParams struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Category string     `form:"category"`
	Limit    int        `form:"limit,default=50"`
	Offset   int        `form:"offset,default=0"`
}

// ListCashEntriesResponse wraps a page of cash book entries.
type ListCashEntriesResponse struct {
	Entries []CashEntryResponse `json:"entries"`
}

// ToCashEntryResponse converts a domain.CashBookEntry to its DTO.
func ToCashEntryResponse(e *domain.CashBookEntry) CashEntryResponse {
	return CashEntryResponse{
		EntryID:         e.EntryID,
		Category:        e.Category,
		Amount:          e.Amount,
		Description:     e.Description,
		OccurredAt:      e.OccurredAt,
		ContractID:      e.ContractID,
		ReversesEntryID: e.ReversesEntryID,
		ActorID:         e.ActorID,
		CreatedAt:       e.CreatedAt,
	}
}

// ToCashEntryResponses converts a slice of entries to DTOs.
func ToCashEntryResponses(es []domain.CashBookEntry) []CashEntryResponse {
	out := make([]CashEntryResponse, len(es))
	for i, e := range es {
		out[i] = ToCashEntryResponse(&e)
	}
	return out
}
