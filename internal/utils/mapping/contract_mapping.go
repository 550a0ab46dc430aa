package mapping

import (
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
)

// ToModelContract converts a domain LoanContract to its row model.
func ToModelContract(d domain.LoanContract) models.LoanContract {
	m := models.LoanContract{
		ContractID:             d.ContractID,
		ContractCode:           d.ContractCode,
		ClientID:               d.ClientID,
		InstallmentCount:       d.InstallmentCount,
		OriginatingContractID:  d.OriginatingContractID,
		PartnerID:              d.PartnerID,
		CommissionPercent:      d.CommissionPercent,
		Principal:              d.Principal,
		MonthlyRatePercent:     d.MonthlyRatePercent,
		FirstDueDate:           d.FirstDueDate,
		AppliedInstallment:     d.AppliedInstallment,
		TotalContract:          d.TotalContract,
		TotalInterest:          d.TotalInterest,
		RoundingAdjustment:     d.RoundingAdjustment,
		HasLateFee:             d.HasLateFee,
		LateFeePercent:         d.LateFeePercent,
		MoratoryMonthlyPercent: d.MoratoryMonthlyPercent,
		Status:                 models.ContractStatus(d.Status),
		Notes:                  d.Notes,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
	if d.Cancellation != nil {
		c := *d.Cancellation
		m.CancelledAt = &c.CancelledAt
		m.CancelledBy = &c.CancelledBy
		m.CancellationReason = &c.Reason
		m.CancellationNotes = &c.Notes
	}
	return m
}

// ToDomainContract converts a row model to a domain LoanContract.
func ToDomainContract(m models.LoanContract) domain.LoanContract {
	d := domain.LoanContract{
		ContractID:             m.ContractID,
		ContractCode:           m.ContractCode,
		ClientID:               m.ClientID,
		InstallmentCount:       m.InstallmentCount,
		OriginatingContractID:  m.OriginatingContractID,
		PartnerID:              m.PartnerID,
		CommissionPercent:      m.CommissionPercent,
		Principal:              m.Principal,
		MonthlyRatePercent:     m.MonthlyRatePercent,
		FirstDueDate:           m.FirstDueDate,
		AppliedInstallment:     m.AppliedInstallment,
		TotalContract:          m.TotalContract,
		TotalInterest:          m.TotalInterest,
		RoundingAdjustment:     m.RoundingAdjustment,
		HasLateFee:             m.HasLateFee,
		LateFeePercent:         m.LateFeePercent,
		MoratoryMonthlyPercent: m.MoratoryMonthlyPercent,
		Status:                 domain.ContractStatus(m.Status),
		Notes:                  m.Notes,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
	if m.CancelledAt != nil {
		d.Cancellation = &domain.Cancellation{
			CancelledAt: *m.CancelledAt,
			CancelledBy: deref(m.CancelledBy),
			Reason:      deref(m.CancellationReason),
			Notes:       deref(m.CancellationNotes),
		}
	}
	return d
}

// ToModelInstallment converts a domain Installment to its row model.
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID: d.InstallmentID,
		ContractID:    d.ContractID,
		Number:        d.Number,
		DueDate:       d.DueDate,
		Amount:        d.Amount,
		Status:        models.InstallmentStatus(d.Status),
		PaymentDate:   d.PaymentDate,
		PaidAmount:    d.PaidAmount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a row model to a domain Installment.
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID: m.InstallmentID,
		ContractID:    m.ContractID,
		Number:        m.Number,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		Status:        domain.InstallmentStatus(m.Status),
		PaymentDate:   m.PaymentDate,
		PaidAmount:    m.PaidAmount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of row models.
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	out := make([]domain.Installment, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInstallment(m)
	}
	return out
}

// ToModelContractLog converts a domain ContractLog to its row model.
func ToModelContractLog(d domain.ContractLog) models.ContractLog {
	return models.ContractLog{
		LogID:      d.LogID,
		ContractID: d.ContractID,
		Action:     string(d.Action),
		ActorID:    d.ActorID,
		Reason:     d.Reason,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainContractLog converts a row model to a domain ContractLog.
func ToDomainContractLog(m models.ContractLog) domain.ContractLog {
	return domain.ContractLog{
		LogID:      m.LogID,
		ContractID: m.ContractID,
		Action:     domain.LogAction(m.Action),
		ActorID:    m.ActorID,
		Reason:     m.Reason,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
