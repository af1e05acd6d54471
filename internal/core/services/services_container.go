package services

import (
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Credit service first since user and workflow services depend on it
	container.Credit = NewCreditService(repos.LedgerRepo)

	container.User = NewUserService(repos.UserRepo, container.Credit)
	container.Workflow = NewWorkflowService(repos.WorkflowRepo, container.Credit)

	return container
}
