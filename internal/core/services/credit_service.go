package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
)

const (
	// maxEntryDescriptionLength bounds the stored description. It is wider
	// than the request-level limit because admin attribution prefixes the
	// submitted reason.
	maxEntryDescriptionLength = 500

	// maxAdjustmentAmount bounds a single admin adjustment in either direction.
	maxAdjustmentAmount = 10000

	defaultEntryPageSize = 20
	maxEntryPageSize     = 100
)

type creditService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewCreditService creates the credit service backing all balance mutations.
func NewCreditService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.CreditSvcFacade {
	return &creditService{ledgerRepo: ledgerRepo}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) GetBalance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.ledgerRepo.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (s *creditService) ListEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CreditEntry, *string, error) {
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}
	entries, token, err := s.ledgerRepo.ListEntries(ctx, userID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list credit entries: %w", err)
	}
	return entries, token, nil
}

// AdjustBalance is the single write path into the ledger. Every mutation,
// whatever its origin, flows through here so the zero-delta and description
// rules hold uniformly.
func (s *creditService) AdjustBalance(ctx context.Context, userID string, delta int64, kind domain.CreditEntryKind, description string, actorID *string) (*domain.CreditEntry, error) {
	if delta == 0 {
		return nil, apperrors.NewAppError(400, "adjustment delta must be non-zero", apperrors.ErrValidation)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewAppError(400, "entry description must not be empty", apperrors.ErrValidation)
	}
	if len(description) > maxEntryDescriptionLength {
		return nil, apperrors.NewAppError(400, "entry description too long", apperrors.ErrValidation)
	}

	entry := domain.CreditEntry{
		EntryID:     uuid.NewString(),
		UserID:      userID,
		Delta:       delta,
		Kind:        kind,
		Description: description,
		ActorID:     actorID,
	}

	saved, err := s.ledgerRepo.AppendEntry(ctx, entry)
	if err != nil {
		s.LogWarn(ctx, "Balance adjustment rejected", "target_user_id", userID, "delta", delta, "kind", string(kind), "error", err.Error())
		return nil, err
	}

	s.LogInfo(ctx, "Balance adjusted", "target_user_id", userID, "delta", delta, "kind", string(kind), "resulting_balance", saved.ResultingBalance)
	return saved, nil
}

// GrantWelcomeBonus credits the fixed signup bonus. The ledger's partial
// unique index makes a repeated grant fail with ErrDuplicate, so the bonus is
// issued at most once per user.
func (s *creditService) GrantWelcomeBonus(ctx context.Context, userID string) (*domain.CreditEntry, error) {
	return s.AdjustBalance(ctx, userID, domain.WelcomeBonusCredits, domain.EntryKindWelcome, "Welcome bonus", nil)
}

// AdminAdjustCredits applies an attributed manual correction. The actor's
// email is baked into the description and their ID stored on the entry; both
// come from the authenticated session, never from client input.
func (s *creditService) AdminAdjustCredits(ctx context.Context, targetUserID string, amount int64, reason string, actor *domain.User) (int64, error) {
	if actor == nil || !actor.IsAdmin() {
		return 0, apperrors.ErrForbidden
	}
	if amount < -maxAdjustmentAmount || amount > maxAdjustmentAmount {
		return 0, apperrors.NewAppError(400, "adjustment amount out of range", apperrors.ErrValidation)
	}

	// The attribution prefix alone would pass the description check below,
	// so the reason must be non-empty on its own.
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return 0, apperrors.NewAppError(400, "adjustment reason must not be empty", apperrors.ErrValidation)
	}

	description := fmt.Sprintf("[Admin: %s] %s", actor.Email, reason)
	actorID := actor.UserID

	entry, err := s.AdjustBalance(ctx, targetUserID, amount, domain.EntryKindAdminAdjustment, description, &actorID)
	if err != nil {
		return 0, err
	}
	return entry.ResultingBalance, nil
}

// ConsumeForWorkflowRun debits the workflow's cost ahead of the run. An
// insufficient balance surfaces as ErrInsufficientBalance and blocks the run.
func (s *creditService) ConsumeForWorkflowRun(ctx context.Context, userID string, workflow *domain.Workflow) (*domain.CreditEntry, error) {
	if workflow == nil {
		return nil, apperrors.NewAppError(400, "workflow is required", apperrors.ErrValidation)
	}
	if workflow.CreditsCost <= 0 {
		return nil, apperrors.NewAppError(400, "workflow credit cost must be positive", apperrors.ErrValidation)
	}

	description := fmt.Sprintf("Workflow run: %s", workflow.Name)
	return s.AdjustBalance(ctx, userID, -workflow.CreditsCost, domain.EntryKindWorkflowRun, description, nil)
}
