package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunAutoDebitRequest triggers a batch run that debits due installments from
// client accounts with sufficient balance.
type RunAutoDebitRequest struct {
	// ReferenceDate defaults to today when zero.
	ReferenceDate time.Time `json:"referenceDate"`
	AdminSecret   string    `json:"adminSecret" binding:"required"`
}

// AutoDebitItemResult is the outcome for one candidate installment.
type AutoDebitItemResult struct {
	ContractID    string          `json:"contractID"`
	InstallmentID string          `json:"installmentID"`
	Number        int             `json:"number"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	Debited       bool            `json:"debited"`
	Reason        string          `json:"reason,omitempty"` // set when skipped or failed
}

// AutoDebitRunResponse summarizes a completed batch run.
type AutoDebitRunResponse struct {
	ReferenceDate time.Time             `json:"referenceDate"`
	Candidates    int                   `json:"candidates"`
	Debited       int                   `json:"debited"`
	Skipped       int                   `json:"skipped"`
	Failed        int                   `json:"failed"`
	TotalDebited  decimal.Decimal       `json:"totalDebited"`
	Items         []AutoDebitItemResult `json:"items"`
}
