package services

import (
	"context"

	"github.com/comfy-credits/backend/internal/core/domain"
	"github.com/comfy-credits/backend/internal/dto"
)

// WorkflowReaderSvc defines read operations for workflows
type WorkflowReaderSvc interface {
	// GetWorkflowByID retrieves a workflow by its ID.
	GetWorkflowByID(ctx context.Context, workflowID string) (*domain.Workflow, error)

	// ListWorkflows retrieves workflows, newest first. Inactive workflows are
	// only included for administrators.
	ListWorkflows(ctx context.Context, includeInactive bool) ([]domain.Workflow, error)
}

// WorkflowWriterSvc defines admin CRUD over workflow definitions
type WorkflowWriterSvc interface {
	// CreateWorkflow creates a new workflow definition.
	CreateWorkflow(ctx context.Context, req dto.CreateWorkflowRequest) (*domain.Workflow, error)

	// UpdateWorkflow applies a partial update to a workflow.
	UpdateWorkflow(ctx context.Context, workflowID string, req dto.UpdateWorkflowRequest) (*domain.Workflow, error)
}

// WorkflowRunnerSvc initiates paid workflow runs.
type WorkflowRunnerSvc interface {
	// RunWorkflow debits the workflow's cost from the user and records the
	// run. Returns the run and the user's resulting balance.
	RunWorkflow(ctx context.Context, userID string, workflowID string) (*domain.WorkflowRun, int64, error)
}

// WorkflowSvcFacade combines all workflow-related service interfaces
type WorkflowSvcFacade interface {
	WorkflowReaderSvc
	WorkflowWriterSvc
	WorkflowRunnerSvc
}
