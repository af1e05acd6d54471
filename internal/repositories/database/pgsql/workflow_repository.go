package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	"github.com/comfy-credits/backend/internal/models"
	"github.com/comfy-credits/backend/internal/utils/mapping"
	"github.com/comfy-credits/backend/pkg/database"
)

type PgxWorkflowRepository struct {
	BaseRepository
}

func newPgxWorkflowRepository(pool database.PgxPool) portsrepo.WorkflowRepositoryFacade {
	return &PgxWorkflowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWorkflowRepository implements portsrepo.WorkflowRepositoryFacade
var _ portsrepo.WorkflowRepositoryFacade = (*PgxWorkflowRepository)(nil)

func (r *PgxWorkflowRepository) SaveWorkflow(ctx context.Context, workflow domain.Workflow) error {
	m := mapping.ToModelWorkflow(workflow)
	query := `
        INSERT INTO workflows (workflow_id, name, description, deployment_id, credits_cost, category, input_schema, active, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.WorkflowID,
		m.Name,
		m.Description,
		m.DeploymentID,
		m.CreditsCost,
		m.Category,
		m.InputSchema,
		m.Active,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}
	return nil
}

func (r *PgxWorkflowRepository) FindWorkflowByID(ctx context.Context, workflowID string) (*domain.Workflow, error) {
	query := `
		SELECT workflow_id, name, description, deployment_id, credits_cost, category, input_schema, active, created_at, last_updated_at
		FROM workflows
		WHERE workflow_id = $1;
	`
	var m models.Workflow
	err := r.Pool.QueryRow(ctx, query, workflowID).Scan(
		&m.WorkflowID,
		&m.Name,
		&m.Description,
		&m.DeploymentID,
		&m.CreditsCost,
		&m.Category,
		&m.InputSchema,
		&m.Active,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workflow by ID %s: %w", workflowID, err)
	}

	d := mapping.ToDomainWorkflow(m)
	return &d, nil
}

func (r *PgxWorkflowRepository) ListWorkflows(ctx context.Context, includeInactive bool) ([]domain.Workflow, error) {
	query := `
        SELECT workflow_id, name, description, deployment_id, credits_cost, category, input_schema, active, created_at, last_updated_at
        FROM workflows
    `
	if !includeInactive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows: %w", err)
	}
	defer rows.Close()

	modelWorkflows := []models.Workflow{}
	for rows.Next() {
		var m models.Workflow
		err := rows.Scan(
			&m.WorkflowID,
			&m.Name,
			&m.Description,
			&m.DeploymentID,
			&m.CreditsCost,
			&m.Category,
			&m.InputSchema,
			&m.Active,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow row: %w", err)
		}
		modelWorkflows = append(modelWorkflows, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating workflow rows: %w", rows.Err())
	}

	return mapping.ToDomainWorkflowSlice(modelWorkflows), nil
}

func (r *PgxWorkflowRepository) UpdateWorkflow(ctx context.Context, workflow domain.Workflow) error {
	m := mapping.ToModelWorkflow(workflow)
	query := `
        UPDATE workflows
        SET name = $1, description = $2, deployment_id = $3, credits_cost = $4, category = $5, input_schema = $6, active = $7, last_updated_at = $8
        WHERE workflow_id = $9;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.DeploymentID,
		m.CreditsCost,
		m.Category,
		m.InputSchema,
		m.Active,
		m.LastUpdatedAt,
		m.WorkflowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow %s: %w", workflow.WorkflowID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkflowRepository) SaveWorkflowRun(ctx context.Context, run domain.WorkflowRun) error {
	m := models.WorkflowRun(run)
	query := `
        INSERT INTO workflow_runs (run_id, workflow_id, user_id, credits_spent, entry_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.RunID,
		m.WorkflowID,
		m.UserID,
		m.CreditsSpent,
		m.EntryID,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save workflow run: %w", err)
	}
	return nil
}
