package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBookCategory tags a company cash-book entry with the business event it
// records. The category alone determines the sign of the persisted amount.
type CashBookCategory string

const (
	// Inflows (persisted positive).
	CashCapitalContribution     CashBookCategory = "CAPITAL_CONTRIBUTION"
	CashInstallmentPayment      CashBookCategory = "INSTALLMENT_PAYMENT"
	CashClientDeposit           CashBookCategory = "CLIENT_DEPOSIT"
	CashRenegotiationAbsorption CashBookCategory = "RENEGOTIATION_ABSORPTION"

	// Outflows (persisted negative).
	CashLoanDisbursement   CashBookCategory = "LOAN_DISBURSEMENT"
	CashExpense            CashBookCategory = "EXPENSE"
	CashClientWithdrawal   CashBookCategory = "CLIENT_WITHDRAWAL"
	CashPartnerCommission  CashBookCategory = "PARTNER_COMMISSION"
	CashReceivablesAdvance CashBookCategory = "RECEIVABLES_ADVANCE"

	// CashReversal inverts the sign of the entry it reverses; its sign is
	// derived from the original entry, not from this table.
	CashReversal CashBookCategory = "REVERSAL"
)

// cashOutflow lists the categories whose entries are persisted negative. The
// engine enforces the sign from the category rather than trusting the caller.
var cashOutflow = map[CashBookCategory]bool{
	CashLoanDisbursement:   true,
	CashExpense:            true,
	CashClientWithdrawal:   true,
	CashPartnerCommission:  true,
	CashReceivablesAdvance: true,
}

// IsOutflow reports whether entries of this category leave the cash book.
func (c CashBookCategory) IsOutflow() bool {
	return cashOutflow[c]
}

// KnownCashCategory reports whether the category is one the engine accepts.
func KnownCashCategory(c CashBookCategory) bool {
	switch c {
	case CashCapitalContribution, CashInstallmentPayment, CashClientDeposit,
		CashRenegotiationAbsorption, CashLoanDisbursement, CashExpense,
		CashClientWithdrawal, CashPartnerCommission, CashReceivablesAdvance,
		CashReversal:
		return true
	}
	return false
}

// CashBookEntry is one line of the company-wide cash ledger. Amount carries
// the sign (outflows negative); the current cash balance is the running sum
// of all entries.
type CashBookEntry struct {
	EntryID     string           `json:"entryID"`
	Category    CashBookCategory `json:"category"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	OccurredAt  time.Time        `json:"occurredAt"`

	ContractID      *string `json:"contractID,omitempty"`
	ReversesEntryID *string `json:"reversesEntryID,omitempty"`

	// Audit metadata for the acting operator.
	ActorID  string `json:"actorID"`
	SourceIP string `json:"sourceIP,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// SignedCashAmount applies the category's sign convention to a positive
// magnitude.
func SignedCashAmount(category CashBookCategory, magnitude decimal.Decimal) decimal.Decimal {
	if category.IsOutflow() {
		return magnitude.Abs().Neg()
	}
	return magnitude.Abs()
}
