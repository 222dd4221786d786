package services

import (
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/platform/mailer"
	"github.com/bankpro/bankpro_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mail mailer.Mailer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Catalog = NewCatalogService(repos.CatalogRepo)
	container.Client = NewClientService(repos.ClientRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.ClientRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.ClientRepo, repos.LedgerRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo, mail)

	return container
}
