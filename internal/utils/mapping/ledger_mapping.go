package mapping

import (
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
)

// ToModelLedgerAccount converts a domain LedgerAccount to its row model.
func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		AccountID:   d.AccountID,
		ClientID:    d.ClientID,
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerAccount converts a row model to a domain LedgerAccount.
func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:   m.AccountID,
		ClientID:    m.ClientID,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerMovement converts a domain LedgerMovement to its row model.
func ToModelLedgerMovement(d domain.LedgerMovement) models.LedgerMovement {
	return models.LedgerMovement{
		MovementID:         d.MovementID,
		AccountID:          d.AccountID,
		Direction:          string(d.Direction),
		Origin:             string(d.Origin),
		Amount:             d.Amount,
		Description:        d.Description,
		OccurredAt:         d.OccurredAt,
		ContractID:         d.ContractID,
		InstallmentID:      d.InstallmentID,
		ReversesMovementID: d.ReversesMovementID,
		RunningBalance:     d.RunningBalance,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerMovement converts a row model to a domain LedgerMovement.
func ToDomainLedgerMovement(m models.LedgerMovement) domain.LedgerMovement {
	return domain.LedgerMovement{
		MovementID:         m.MovementID,
		AccountID:          m.AccountID,
		Direction:          domain.MovementDirection(m.Direction),
		Origin:             domain.MovementOrigin(m.Origin),
		Amount:             m.Amount,
		Description:        m.Description,
		OccurredAt:         m.OccurredAt,
		ContractID:         m.ContractID,
		InstallmentID:      m.InstallmentID,
		ReversesMovementID: m.ReversesMovementID,
		RunningBalance:     m.RunningBalance,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerMovementSlice converts a slice of row models.
func ToDomainLedgerMovementSlice(ms []models.LedgerMovement) []domain.LedgerMovement {
	out := make([]domain.LedgerMovement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerMovement(m)
	}
	return out
}
