package dto

import (
	"time"

	"github.com/comfy-credits/backend/internal/core/domain"
)

// AdminAdjustCreditsRequest defines the payload for an admin balance correction.
// Bounds match the caller-facing contract: amount within +/-10000 and a
// mandatory reason of at most 200 characters.
type AdminAdjustCreditsRequest struct {
	Amount      int64  `json:"amount" binding:"required,ne=0,gte=-10000,lte=10000"`
	Description string `json:"description" binding:"required,min=1,max=200"`
}

// AdminAdjustCreditsResponse is returned after a successful adjustment.
type AdminAdjustCreditsResponse struct {
	Success    bool  `json:"success"`
	NewBalance int64 `json:"newBalance"`
}

// CreditEntryResponse is the caller-facing representation of a ledger entry.
type CreditEntryResponse struct {
	EntryID          string    `json:"id"`
	Delta            int64     `json:"delta"`
	ResultingBalance int64     `json:"resultingBalance"`
	Kind             string    `json:"kind"`
	Description      string    `json:"description"`
	ActorID          *string   `json:"actorID,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToCreditEntryResponse converts a domain.CreditEntry to its DTO
func ToCreditEntryResponse(e domain.CreditEntry) CreditEntryResponse {
	return CreditEntryResponse{
		EntryID:          e.EntryID,
		Delta:            e.Delta,
		ResultingBalance: e.ResultingBalance,
		Kind:             string(e.Kind),
		Description:      e.Description,
		ActorID:          e.ActorID,
		CreatedAt:        e.CreatedAt,
	}
}

// ListCreditEntriesParams defines query parameters for listing ledger entries.
type ListCreditEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// CreditHistoryResponse wraps a user's balance together with a page of entries.
type CreditHistoryResponse struct {
	Balance   int64                 `json:"balance"`
	Entries   []CreditEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToCreditHistoryResponse builds the history DTO from domain values
func ToCreditHistoryResponse(balance int64, entries []domain.CreditEntry, nextToken *string) CreditHistoryResponse {
	out := make([]CreditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToCreditEntryResponse(e)
	}
	return CreditHistoryResponse{Balance: balance, Entries: out, NextToken: nextToken}
}
