package pgsql

import (
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:  newPgxLedgerRepository(dbPool),
		AccountRepo: newPgxAccountRepository(dbPool),
		ClientRepo:  newPgxClientRepository(dbPool),
		CatalogRepo: newPgxCatalogRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
