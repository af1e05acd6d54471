package services

import (
	"context"

	"github.com/comfy-credits/backend/internal/core/domain"
)

// CreditReaderSvc defines read operations over the credit ledger.
type CreditReaderSvc interface {
	// GetBalance returns the current balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// ListEntries retrieves a page of ledger entries for a user, newest first.
	ListEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CreditEntry, *string, error)
}

// BalanceAdjusterSvc is the sole gateway through which balances are mutated.
type BalanceAdjusterSvc interface {
	// AdjustBalance applies a signed delta to a user's balance and appends the
	// matching ledger entry atomically. Returns the appended entry.
	AdjustBalance(ctx context.Context, userID string, delta int64, kind domain.CreditEntryKind, description string, actorID *string) (*domain.CreditEntry, error)
}

// WelcomeGrantSvc issues the one-time registration bonus.
type WelcomeGrantSvc interface {
	// GrantWelcomeBonus credits the fixed welcome bonus to a freshly created
	// account. A repeated invocation fails with apperrors.ErrDuplicate.
	GrantWelcomeBonus(ctx context.Context, userID string) (*domain.CreditEntry, error)
}

// AdminAdjustmentSvc performs attributed administrator corrections.
type AdminAdjustmentSvc interface {
	// AdminAdjustCredits adjusts a target user's balance on behalf of an
	// administrator. The actor comes from the authenticated session, never
	// from the request body. Returns the resulting balance.
	AdminAdjustCredits(ctx context.Context, targetUserID string, amount int64, reason string, actor *domain.User) (int64, error)
}

// WorkflowConsumptionSvc debits an account for a paid workflow run.
type WorkflowConsumptionSvc interface {
	// ConsumeForWorkflowRun debits the workflow's credit cost from the user.
	// An insufficient balance blocks the run.
	ConsumeForWorkflowRun(ctx context.Context, userID string, workflow *domain.Workflow) (*domain.CreditEntry, error)
}

// CreditSvcFacade combines all credit-related service interfaces
type CreditSvcFacade interface {
	CreditReaderSvc
	BalanceAdjusterSvc
	WelcomeGrantSvc
	AdminAdjustmentSvc
	WorkflowConsumptionSvc
}
