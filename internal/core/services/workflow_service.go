package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/dto"
)

type workflowService struct {
	BaseService
	workflowRepo portsrepo.WorkflowRepositoryFacade
	creditSvc    portssvc.WorkflowConsumptionSvc
}

// NewWorkflowService creates the workflow service. The credit service handles
// the debit side of paid runs.
func NewWorkflowService(workflowRepo portsrepo.WorkflowRepositoryFacade, creditSvc portssvc.WorkflowConsumptionSvc) portssvc.WorkflowSvcFacade {
	return &workflowService{workflowRepo: workflowRepo, creditSvc: creditSvc}
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

func (s *workflowService) GetWorkflowByID(ctx context.Context, workflowID string) (*domain.Workflow, error) {
	workflow, err := s.workflowRepo.FindWorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow by ID: %w", err)
	}
	return workflow, nil
}

func (s *workflowService) ListWorkflows(ctx context.Context, includeInactive bool) ([]domain.Workflow, error) {
	workflows, err := s.workflowRepo.ListWorkflows(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	return workflows, nil
}

func (s *workflowService) CreateWorkflow(ctx context.Context, req dto.CreateWorkflowRequest) (*domain.Workflow, error) {
	now := time.Now()
	workflow := domain.Workflow{
		WorkflowID:    uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		DeploymentID:  strings.TrimSpace(req.DeploymentID),
		CreditsCost:   req.CreditsCost,
		Category:      strings.TrimSpace(req.Category),
		InputSchema:   req.InputSchema,
		Active:        true,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.workflowRepo.SaveWorkflow(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	s.LogInfo(ctx, "Workflow created", "workflow_id", workflow.WorkflowID, "credits_cost", workflow.CreditsCost)
	return &workflow, nil
}

// UpdateWorkflow applies a partial update. Only fields present in the request
// change; everything else keeps its stored value.
func (s *workflowService) UpdateWorkflow(ctx context.Context, workflowID string, req dto.UpdateWorkflowRequest) (*domain.Workflow, error) {
	workflow, err := s.workflowRepo.FindWorkflowByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to find workflow for update: %w", err)
	}

	if req.Name != nil {
		workflow.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		workflow.Description = strings.TrimSpace(*req.Description)
	}
	if req.DeploymentID != nil {
		workflow.DeploymentID = strings.TrimSpace(*req.DeploymentID)
	}
	if req.CreditsCost != nil {
		workflow.CreditsCost = *req.CreditsCost
	}
	if req.Category != nil {
		workflow.Category = strings.TrimSpace(*req.Category)
	}
	if req.InputSchema != nil {
		workflow.InputSchema = req.InputSchema
	}
	if req.Active != nil {
		workflow.Active = *req.Active
	}
	workflow.LastUpdatedAt = time.Now()

	if err := s.workflowRepo.UpdateWorkflow(ctx, *workflow); err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	s.LogInfo(ctx, "Workflow updated", "workflow_id", workflow.WorkflowID)
	return workflow, nil
}

// RunWorkflow debits the workflow's cost from the user, then records the run.
// The ledger entry is the authoritative record of the spend; a failure to save
// the run row after the debit committed is logged, not rolled back.
func (s *workflowService) RunWorkflow(ctx context.Context, userID string, workflowID string) (*domain.WorkflowRun, int64, error) {
	workflow, err := s.workflowRepo.FindWorkflowByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, apperrors.NewNotFoundError("workflow not found")
		}
		return nil, 0, fmt.Errorf("failed to find workflow for run: %w", err)
	}

	if !workflow.Active {
		return nil, 0, apperrors.NewNotFoundError("workflow not found")
	}

	entry, err := s.creditSvc.ConsumeForWorkflowRun(ctx, userID, workflow)
	if err != nil {
		return nil, 0, err
	}

	run := domain.WorkflowRun{
		RunID:        uuid.NewString(),
		WorkflowID:   workflow.WorkflowID,
		UserID:       userID,
		CreditsSpent: workflow.CreditsCost,
		EntryID:      entry.EntryID,
		CreatedAt:    time.Now(),
	}

	if err := s.workflowRepo.SaveWorkflowRun(ctx, run); err != nil {
		// The debit already committed and the ledger entry carries the spend,
		// so the run is still reported as started.
		s.LogError(ctx, err, "Failed to record workflow run after debit", "run_id", run.RunID, "entry_id", entry.EntryID)
	}

	s.LogInfo(ctx, "Workflow run started", "run_id", run.RunID, "workflow_id", workflow.WorkflowID, "credits_spent", run.CreditsSpent)
	return &run, entry.ResultingBalance, nil
}
