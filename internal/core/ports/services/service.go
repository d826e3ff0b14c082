package services

// ServiceContainer bundles all service facades for handler registration.
type ServiceContainer struct {
	Product     ProductSvcFacade
	Customer    CustomerSvcFacade
	Supplier    SupplierSvcFacade
	Order       OrderSvcFacade
	Settlement  SettlementSvcFacade
	Transaction TransactionSvcFacade
	Reporting   ReportingSvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
	Insight     InsightSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
}
