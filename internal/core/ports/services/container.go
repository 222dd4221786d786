package services

// ServiceContainer holds all the service facades the handlers depend on.
type ServiceContainer struct {
	Ledger    LedgerSvcFacade
	Catalog   CatalogSvcFacade
	Client    ClientSvcFacade
	Account   AccountSvcFacade
	Reporting ReportingSvcFacade
	User      UserSvcFacade
	Auth      AuthSvcFacade
}
