package mapping

import (
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
)

// ToModelProposal converts a domain LoanProposal to its row model.
func ToModelProposal(d domain.LoanProposal) models.LoanProposal {
	m := models.LoanProposal{
		ProposalID:         d.ProposalID,
		ClientID:           d.ClientID,
		RequestedAmount:    d.RequestedAmount,
		InstallmentCount:   d.InstallmentCount,
		MonthlyRatePercent: d.MonthlyRatePercent,
		FirstDueDate:       d.FirstDueDate,
		PartnerID:          d.PartnerID,
		CommissionPercent:  d.CommissionPercent,
		Status:             string(d.Status),
		Notes:              d.Notes,
		AnalyzedAt:         d.AnalyzedAt,
		ContractID:         d.ContractID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.AnalystID != "" {
		m.AnalystID = &d.AnalystID
	}
	if d.Verdict != "" {
		m.Verdict = &d.Verdict
	}
	return m
}

// ToDomainProposal converts a row model to a domain LoanProposal.
func ToDomainProposal(m models.LoanProposal) domain.LoanProposal {
	return domain.LoanProposal{
		ProposalID:         m.ProposalID,
		ClientID:           m.ClientID,
		RequestedAmount:    m.RequestedAmount,
		InstallmentCount:   m.InstallmentCount,
		MonthlyRatePercent: m.MonthlyRatePercent,
		FirstDueDate:       m.FirstDueDate,
		PartnerID:          m.PartnerID,
		CommissionPercent:  m.CommissionPercent,
		Status:             domain.ProposalStatus(m.Status),
		Notes:              m.Notes,
		AnalyzedAt:         m.AnalyzedAt,
		AnalystID:          deref(m.AnalystID),
		Verdict:            deref(m.Verdict),
		ContractID:         m.ContractID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProposalSlice converts a slice of row models.
func ToDomainProposalSlice(ms []models.LoanProposal) []domain.LoanProposal {
	out := make([]domain.LoanProposal, len(ms))
	for i, m := range ms {
		out[i] = ToDomainProposal(m)
	}
	return out
}
