package mapping

import (
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
)

// ToModelCashBookEntry converts a domain CashBookEntry to its row model.
func ToModelCashBookEntry(d domain.CashBookEntry) models.CashBookEntry {
	return models.CashBookEntry{
		EntryID:         d.EntryID,
		Category:        string(d.Category),
		Amount:          d.Amount,
		Description:     d.Description,
		OccurredAt:      d.OccurredAt,
		ContractID:      d.ContractID,
		ReversesEntryID: d.ReversesEntryID,
		ActorID:         d.ActorID,
		SourceIP:        d.SourceIP,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainCashBookEntry converts a row model to a domain CashBookEntry.
func ToDomainCashBookEntry(m models.CashBookEntry) domain.CashBookEntry {
	return domain.CashBookEntry{
		EntryID:         m.EntryID,
		Category:        domain.CashBookCategory(m.Category),
		Amount:          m.Amount,
		Description:     m.Description,
		OccurredAt:      m.OccurredAt,
		ContractID:      m.ContractID,
		ReversesEntryID: m.ReversesEntryID,
		ActorID:         m.ActorID,
		SourceIP:        m.SourceIP,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainCashBookEntrySlice converts a slice of row models.
func ToDomainCashBookEntrySlice(ms []models.CashBookEntry) []domain.CashBookEntry {
	out := make([]domain.CashBookEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCashBookEntry(m)
	}
	return out
}
