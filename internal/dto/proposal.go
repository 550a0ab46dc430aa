package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// CreateProposalRequest defines the data for submitting a loan proposal.
type CreateProposalRequest struct {
	ClientID           string          `json:"clientID" binding:"required"`
	RequestedAmount    decimal.Decimal `json:"requestedAmount" binding:"required"`
	InstallmentCount   int             `json:"installmentCount" binding:"required,min=1,max=360"`
	MonthlyRatePercent decimal.Decimal `json:"monthlyRatePercent"`
	FirstDueDate       time.Time       `json:"firstDueDate" binding:"required"`

	PartnerID         *string         `json:"partnerID"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"`

	Notes string `json:"notes"`
}

// AnalyzeProposalRequest records the analyst verdict on a pending proposal.
// An APPROVED verdict creates the contract through the normal creation path.
type AnalyzeProposalRequest struct {
	Verdict string `json:"verdict" binding:"required,oneof=APPROVED DENIED"`
	Notes   string `json:"notes"`
}

// ProposalResponse defines the data returned for a loan proposal.
type ProposalResponse struct {
	ProposalID         string                `json:"proposalID"`
	ClientID           string                `json:"clientID"`
	RequestedAmount    decimal.Decimal       `json:"requestedAmount"`
	InstallmentCount   int                   `json:"installmentCount"`
	MonthlyRatePercent decimal.Decimal       `json:"monthlyRatePercent"`
	FirstDueDate       time.Time             `json:"firstDueDate"`
	PartnerID          *string               `json:"partnerID,omitempty"`
	CommissionPercent  decimal.Decimal       `json:"commissionPercent"`
	Status             domain.ProposalStatus `json:"status"`
	Notes              string                `json:"notes"`
	AnalyzedAt         *time.Time            `json:"analyzedAt,omitempty"`
	AnalystID          string                `json:"analystID,omitempty"`
	Verdict            string                `json:"verdict,omitempty"`
	ContractID         *string               `json:"contractID,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// ListProposalsParams defines query parameters for listing proposals.
type ListProposalsParams struct {
	ClientID string `form:"clientID"`
	Status   string `form:"status"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

// ListProposalsResponse wraps the list of proposals.
type ListProposalsResponse struct {
	Proposals []ProposalResponse `json:"proposals"`
}

// ToProposalResponse converts a domain.LoanProposal to its DTO.
func ToProposalResponse(p *domain.LoanProposal) ProposalResponse {
	return ProposalResponse{
		ProposalID:         p.ProposalID,
		ClientID:           p.ClientID,
		RequestedAmount:    p.RequestedAmount,
		InstallmentCount:   p.InstallmentCount,
		MonthlyRatePercent: p.MonthlyRatePercent,
		FirstDueDate:       p.FirstDueDate,
		PartnerID:          p.PartnerID,
		CommissionPercent:  p.CommissionPercent,
		Status:             p.Status,
		Notes:              p.Notes,
		AnalyzedAt:         p.AnalyzedAt,
		AnalystID:          p.AnalystID,
		Verdict:            p.Verdict,
		ContractID:         p.ContractID,
		CreatedAt:          p.CreatedAt,
	}
}

// ToProposalResponses converts a slice of proposals to DTOs.
func ToProposalResponses(ps []domain.LoanProposal) []ProposalResponse {
	out := make([]ProposalResponse, len(ps))
	for i, p := range ps {
		out[i] = ToProposalResponse(&p)
	}
	return out
}
