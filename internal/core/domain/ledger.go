package domain

import "time"

// CreditEntryKind classifies the origin of a ledger entry.
type CreditEntryKind string

const (
	// EntryKindWelcome is the one-time registration bonus. At most one entry
	// of this kind may exist per user (enforced by a DB constraint).
	EntryKindWelcome CreditEntryKind = "WELCOME"
	// EntryKindAdminAdjustment is an administrator-initiated correction.
	EntryKindAdminAdjustment CreditEntryKind = "ADMIN_ADJUSTMENT"
	// EntryKindWorkflowRun is the debit taken when a paid workflow run starts.
	EntryKindWorkflowRun CreditEntryKind = "WORKFLOW_RUN"
)

// WelcomeBonusCredits is the fixed bonus issued once at registration.
const WelcomeBonusCredits int64 = 5

// CreditEntry is an immutable record of one balance-changing event.
// Entries are only ever appended; the most recent entry's ResultingBalance
// always equals the user's current balance.
type CreditEntry struct {
	EntryID          string          `json:"entryID"` // Primary Key (UUID)
	UserID           string          `json:"userID"`
	Delta            int64           `json:"delta"` // positive = credit, negative = debit
	ResultingBalance int64           `json:"resultingBalance"`
	Kind             CreditEntryKind `json:"kind"`
	Description      string          `json:"description"`
	ActorID          *string         `json:"actorID,omitempty"` // admin user ID for ADMIN_ADJUSTMENT entries
	CreatedAt        time.Time       `json:"createdAt"`
}
