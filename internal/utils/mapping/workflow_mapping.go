package mapping

import (
	"github.com/comfy-credits/backend/internal/core/domain"
	"github.com/comfy-credits/backend/internal/models"
)

// ToModelWorkflow converts a domain Workflow to a model Workflow
func ToModelWorkflow(d domain.Workflow) models.Workflow {
	return models.Workflow{
		WorkflowID:    d.WorkflowID,
		Name:          d.Name,
		Description:   d.Description,
		DeploymentID:  d.DeploymentID,
		CreditsCost:   d.CreditsCost,
		Category:      d.Category,
		InputSchema:   d.InputSchema,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainWorkflow converts a model Workflow to a domain Workflow
func ToDomainWorkflow(m models.Workflow) domain.Workflow {
	return domain.Workflow{
		WorkflowID:    m.WorkflowID,
		Name:          m.Name,
		Description:   m.Description,
		DeploymentID:  m.DeploymentID,
		CreditsCost:   m.CreditsCost,
		Category:      m.Category,
		InputSchema:   m.InputSchema,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToDomainWorkflowSlice converts a slice of model Workflows to domain Workflows
func ToDomainWorkflowSlice(ms []models.Workflow) []domain.Workflow {
	ds := make([]domain.Workflow, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkflow(m)
	}
	return ds
}

// ToDomainWorkflowRun converts a model WorkflowRun to a domain WorkflowRun
func ToDomainWorkflowRun(m models.WorkflowRun) domain.WorkflowRun {
	return domain.WorkflowRun(m)
}
