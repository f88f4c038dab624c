package ports

import (
	"context"

	"github.com/txpay/txpay-admin/internal/domain/model"
)

// TXPayAPI is the remote API as seen by one authenticated caller.
type TXPayAPI interface {
	ListMerchants(ctx context.Context, q model.ListQuery) (model.Page[model.Merchant], error)
	GetMerchant(ctx context.Context, id string) (model.Merchant, error)
	CreateMerchant(ctx context.Context, req model.MerchantRequest) (model.Merchant, error)
	UpdateMerchant(ctx context.Context, id string, req model.MerchantRequest) (model.Merchant, error)
	DeleteMerchant(ctx context.Context, id string) error

	ListTransactions(ctx context.Context, q model.ListQuery) (model.Page[model.Transaction], error)
	GetTransaction(ctx context.Context, id string) (model.Transaction, error)
	PerformTransactionAction(ctx context.Context, id string, action model.TransactionAction) (model.Transaction, error)
	ExportTransactions(ctx context.Context, filters map[string]string) (model.Export, error)

	ListPartners(ctx context.Context, q model.ListQuery) (model.Page[model.Partner], error)
	GetPartner(ctx context.Context, id string) (model.Partner, error)
	CreatePartner(ctx context.Context, req model.PartnerRequest) (model.Partner, error)
	UpdatePartner(ctx context.Context, id string, req model.PartnerRequest) (model.Partner, error)
	DeletePartner(ctx context.Context, id string) error

	ListAdminUsers(ctx context.Context, q model.ListQuery) (model.Page[model.AdminUser], error)
	GetAdminUser(ctx context.Context, id string) (model.AdminUser, error)
	CreateAdminUser(ctx context.Context, req model.AdminUserRequest) (model.AdminUser, error)
	UpdateAdminUser(ctx context.Context, id string, req model.AdminUserRequest) (model.AdminUser, error)
	DeleteAdminUser(ctx context.Context, id string) error

	ListPaymentLinks(ctx context.Context, q model.ListQuery) (model.Page[model.PaymentLink], error)
	GetPaymentLink(ctx context.Context, id string) (model.PaymentLink, error)
	CreatePaymentLink(ctx context.Context, req model.PaymentLinkRequest) (model.PaymentLink, error)
	UpdatePaymentLink(ctx context.Context, id string, req model.PaymentLinkRequest) (model.PaymentLink, error)
	DeletePaymentLink(ctx context.Context, id string) error

	Profile(ctx context.Context) (model.Profile, error)
	SendContact(ctx context.Context, msg model.ContactMessage) error
	Health(ctx context.Context) (model.Health, error)
}

// TXPayConnector hands out an API bound to a caller's token.
type TXPayConnector interface {
	ForToken(token string) TXPayAPI
}

// TXPayConnectorFunc adapts a function to TXPayConnector.
type TXPayConnectorFunc func(token string) TXPayAPI

// ForToken implements TXPayConnector.
func (f TXPayConnectorFunc) ForToken(token string) TXPayAPI { return f(token) }
