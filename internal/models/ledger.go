package models

import "time"

// CreditEntryKind classifies the origin of a ledger entry.
type CreditEntryKind string

const (
	EntryKindWelcome         CreditEntryKind = "WELCOME"
	EntryKindAdminAdjustment CreditEntryKind = "ADMIN_ADJUSTMENT"
	EntryKindWorkflowRun     CreditEntryKind = "WORKFLOW_RUN"
)

// CreditEntry represents a row of the append-only credit_entries table.
// Rows are never updated or deleted.
type CreditEntry struct {
	EntryID          string          `db:"entry_id"`
	UserID           string          `db:"user_id"`
	Delta            int64           `db:"delta"`
	ResultingBalance int64           `db:"resulting_balance"`
	Kind             CreditEntryKind `db:"kind"`
	Description      string          `db:"description"`
	ActorID          *string         `db:"actor_id"` // Nullable
	CreatedAt        time.Time       `db:"created_at"`
}
