package mapping

import (
	"github.com/comfy-credits/backend/internal/core/domain"
	"github.com/comfy-credits/backend/internal/models"
)

// ToModelCreditEntry converts a domain CreditEntry to a model CreditEntry
func ToModelCreditEntry(d domain.CreditEntry) models.CreditEntry {
	return models.CreditEntry{
		EntryID:          d.EntryID,
		UserID:           d.UserID,
		Delta:            d.Delta,
		ResultingBalance: d.ResultingBalance,
		Kind:             models.CreditEntryKind(d.Kind),
		Description:      d.Description,
		ActorID:          d.ActorID,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainCreditEntry converts a model CreditEntry to a domain CreditEntry
func ToDomainCreditEntry(m models.CreditEntry) domain.CreditEntry {
	return domain.CreditEntry{
		EntryID:          m.EntryID,
		UserID:           m.UserID,
		Delta:            m.Delta,
		ResultingBalance: m.ResultingBalance,
		Kind:             domain.CreditEntryKind(m.Kind),
		Description:      m.Description,
		ActorID:          m.ActorID,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainCreditEntrySlice converts a slice of model CreditEntries to domain CreditEntries
func ToDomainCreditEntrySlice(ms []models.CreditEntry) []domain.CreditEntry {
	ds := make([]domain.CreditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditEntry(m)
	}
	return ds
}
