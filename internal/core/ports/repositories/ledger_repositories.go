package repositories

import (
	"context"

	"github.com/comfy-credits/backend/internal/core/domain"
)

// LedgerReader defines read operations over the credit ledger.
type LedgerReader interface {
	// GetBalance returns the current credit balance for a user.
	// Returns apperrors.ErrNotFound if the user does not exist.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// ListEntries retrieves a paginated list of ledger entries for a user,
	// newest first. It returns the entries and a token for the next page.
	ListEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CreditEntry, *string, error)
}

// LedgerWriter defines the single write path into the credit ledger.
type LedgerWriter interface {
	// AppendEntry applies entry.Delta to the user's balance and persists the
	// entry, all within one transaction. The entry's ResultingBalance is
	// computed by the repository. Fails with apperrors.ErrInsufficientBalance
	// when the delta would drive the balance negative, apperrors.ErrNotFound
	// when the user does not exist, and apperrors.ErrDuplicate when a second
	// WELCOME entry is attempted for the same user. On any failure neither the
	// balance nor the ledger is changed.
	AppendEntry(ctx context.Context, entry domain.CreditEntry) (*domain.CreditEntry, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
