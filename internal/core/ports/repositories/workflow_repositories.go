package repositories

import (
	"context"

	"github.com/comfy-credits/backend/internal/core/domain"
)

// WorkflowReader defines read operations for workflow definitions
type WorkflowReader interface {
	// FindWorkflowByID retrieves a workflow by its ID.
	FindWorkflowByID(ctx context.Context, workflowID string) (*domain.Workflow, error)

	// ListWorkflows retrieves workflows, newest first. When includeInactive is
	// false only active workflows are returned.
	ListWorkflows(ctx context.Context, includeInactive bool) ([]domain.Workflow, error)
}

// WorkflowWriter defines write operations for workflow definitions
type WorkflowWriter interface {
	// SaveWorkflow persists a new workflow.
	SaveWorkflow(ctx context.Context, workflow domain.Workflow) error

	// UpdateWorkflow updates an existing workflow.
	UpdateWorkflow(ctx context.Context, workflow domain.Workflow) error
}

// WorkflowRunWriter records initiated runs.
type WorkflowRunWriter interface {
	// SaveWorkflowRun persists a run record for a debit that already committed.
	SaveWorkflowRun(ctx context.Context, run domain.WorkflowRun) error
}

// WorkflowRepositoryFacade combines all workflow-related repository interfaces
type WorkflowRepositoryFacade interface {
	WorkflowReader
	WorkflowWriter
	WorkflowRunWriter
}
