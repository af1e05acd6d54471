package dto

import (
	"encoding/json"
	"time"

	"github.com/comfy-credits/backend/internal/core/domain"
)

// CreateWorkflowRequest defines the payload for creating a workflow.
type CreateWorkflowRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Description  string          `json:"description" binding:"omitempty,max=500"`
	DeploymentID string          `json:"deploymentId" binding:"required"`
	CreditsCost  int64           `json:"creditsCost" binding:"required,gte=1,lte=100"`
	Category     string          `json:"category" binding:"omitempty,max=50"`
	InputSchema  json.RawMessage `json:"inputSchema,omitempty"`
}

// UpdateWorkflowRequest defines the fields an admin may change on a workflow.
// Pointers differentiate omitted fields from zero values.
type UpdateWorkflowRequest struct {
	Name         *string         `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string         `json:"description" binding:"omitempty,max=500"`
	DeploymentID *string         `json:"deploymentId" binding:"omitempty,min=1"`
	CreditsCost  *int64          `json:"creditsCost" binding:"omitempty,gte=1,lte=100"`
	Category     *string         `json:"category" binding:"omitempty,max=50"`
	Active       *bool           `json:"active"`
	InputSchema  json.RawMessage `json:"inputSchema,omitempty"`
}

// WorkflowResponse is the caller-facing representation of a workflow.
type WorkflowResponse struct {
	WorkflowID   string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	DeploymentID string          `json:"deploymentId"`
	CreditsCost  int64           `json:"creditsCost"`
	Category     string          `json:"category"`
	InputSchema  json.RawMessage `json:"inputSchema,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToWorkflowResponse converts a domain.Workflow to its DTO
func ToWorkflowResponse(w *domain.Workflow) WorkflowResponse {
	return WorkflowResponse{
		WorkflowID:   w.WorkflowID,
		Name:         w.Name,
		Description:  w.Description,
		DeploymentID: w.DeploymentID,
		CreditsCost:  w.CreditsCost,
		Category:     w.Category,
		InputSchema:  w.InputSchema,
		Active:       w.Active,
		CreatedAt:    w.CreatedAt,
	}
}

// ListWorkflowsResponse wraps a workflow listing.
type ListWorkflowsResponse struct {
	Workflows []WorkflowResponse `json:"workflows"`
}

// ToListWorkflowsResponse converts domain workflows to the listing DTO
func ToListWorkflowsResponse(ws []domain.Workflow) ListWorkflowsResponse {
	out := make([]WorkflowResponse, len(ws))
	for i := range ws {
		out[i] = ToWorkflowResponse(&ws[i])
	}
	return ListWorkflowsResponse{Workflows: out}
}

// RunWorkflowResponse is returned when a paid run has been initiated.
type RunWorkflowResponse struct {
	Success      bool   `json:"success"`
	RunID        string `json:"runId"`
	CreditsSpent int64  `json:"creditsSpent"`
	NewBalance   int64  `json:"newBalance"`
}
