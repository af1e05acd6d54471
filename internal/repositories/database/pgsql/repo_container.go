package pgsql

import (
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	"github.com/comfy-credits/backend/pkg/database"
)

func NewRepositoryProvider(dbPool database.PgxPool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	workflowRepo := newPgxWorkflowRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		LedgerRepo:   ledgerRepo,
		WorkflowRepo: workflowRepo,
	}
}
