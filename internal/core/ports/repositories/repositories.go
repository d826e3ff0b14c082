package repositories

// RepositoryProvider bundles all repository implementations so they can be
// injected into the service container in one pass.
type RepositoryProvider struct {
	ProductRepo     ProductRepositoryFacade
	CustomerRepo    CustomerRepositoryFacade
	SupplierRepo    SupplierRepositoryFacade
	OrderRepo       OrderRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	UserRepo        UserRepositoryFacade
	ReportingRepo   ReportingRepository
}
