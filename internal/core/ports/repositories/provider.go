package repositories

// RepositoryProvider bundles every repository implementation so wiring code
// can pass them around as one unit.
type RepositoryProvider struct {
	LedgerRepo  LedgerRepository
	AccountRepo AccountRepository
	ClientRepo  ClientRepository
	CatalogRepo CatalogRepository
	UserRepo    UserRepository
}
