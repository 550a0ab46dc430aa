package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanProposal is the row model for the loan_proposals table.
type LoanProposal struct {
	ProposalID         string          `db:"proposal_id"`
	ClientID           string          `db:"client_id"`
	RequestedAmount    decimal.Decimal `db:"requested_amount"`
	InstallmentCount   int             `db:"installment_count"`
	MonthlyRatePercent decimal.Decimal `db:"monthly_rate_percent"`
	FirstDueDate       time.Time       `db:"first_due_date"`

	PartnerID         *string         `db:"partner_id"`
	CommissionPercent decimal.Decimal `db:"commission_percent"`

	Status     string     `db:"status"`
	Notes      string     `db:"notes"`
	AnalyzedAt *time.Time `db:"analyzed_at"`
	AnalystID  *string    `db:"analyst_id"`
	Verdict    *string    `db:"verdict"`
	ContractID *string    `db:"contract_id"`

	AuditFields
}
