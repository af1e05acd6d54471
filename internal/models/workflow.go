package models

import (
	"encoding/json"
	"time"
)

// Workflow represents a row of the workflows table.
type Workflow struct {
	WorkflowID    string          `db:"workflow_id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	DeploymentID  string          `db:"deployment_id"`
	CreditsCost   int64           `db:"credits_cost"`
	Category      string          `db:"category"`
	InputSchema   json.RawMessage `db:"input_schema"` // JSONB, nullable
	Active        bool            `db:"active"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}

// WorkflowRun represents a row of the workflow_runs table.
type WorkflowRun struct {
	RunID        string    `db:"run_id"`
	WorkflowID   string    `db:"workflow_id"`
	UserID       string    `db:"user_id"`
	CreditsSpent int64     `db:"credits_spent"`
	EntryID      string    `db:"entry_id"`
	CreatedAt    time.Time `db:"created_at"`
}
