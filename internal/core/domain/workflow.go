package domain

import (
	"encoding/json"
	"time"
)

// Workflow is a runnable, priced workflow definition published to users.
type Workflow struct {
	WorkflowID    string          `json:"workflowID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	DeploymentID  string          `json:"deploymentID"` // identifier on the external execution backend
	CreditsCost   int64           `json:"creditsCost"`
	Category      string          `json:"category"`
	InputSchema   json.RawMessage `json:"inputSchema,omitempty"` // free-form schema for the run form
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// WorkflowRun records one paid run initiation. The authoritative record of the
// spend is the credit entry; the run row links it to the workflow.
type WorkflowRun struct {
	RunID        string    `json:"runID"` // Primary Key (UUID)
	WorkflowID   string    `json:"workflowID"`
	UserID       string    `json:"userID"`
	CreditsSpent int64     `json:"creditsSpent"`
	EntryID      string    `json:"entryID"` // ledger entry that paid for this run
	CreatedAt    time.Time `json:"createdAt"`
}
