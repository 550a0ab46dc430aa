package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalStatus indicates the analysis state of a loan proposal.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "PENDING"
	ProposalApproved  ProposalStatus = "APPROVED"
	ProposalDenied    ProposalStatus = "DENIED"
	ProposalCancelled ProposalStatus = "CANCELLED"
)

// LoanProposal is a contract request awaiting credit analysis. Approval turns
// it into a real contract through the normal contract-creation path.
type LoanProposal struct {
	ProposalID         string          `json:"proposalID"`
	ClientID           string          `json:"clientID"`
	RequestedAmount    decimal.Decimal `json:"requestedAmount"`
	InstallmentCount   int             `json:"installmentCount"`
	MonthlyRatePercent decimal.Decimal `json:"monthlyRatePercent"`
	FirstDueDate       time.Time       `json:"firstDueDate"`

	// Partner defaults are prefilled from the client registry when present.
	PartnerID         *string         `json:"partnerID,omitempty"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"`

	Status     ProposalStatus `json:"status"`
	Notes      string         `json:"notes"`
	AnalyzedAt *time.Time     `json:"analyzedAt,omitempty"`
	AnalystID  string         `json:"analystID,omitempty"`
	Verdict    string         `json:"verdict,omitempty"`

	// Set when an approval generates a contract.
	ContractID *string `json:"contractID,omitempty"`
	AuditFields
}
