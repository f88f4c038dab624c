package txpay

import (
	"context"
	"net/http"

	"github.com/txpay/txpay-admin/internal/domain/model"
)

// resource describes one REST collection, e.g. "/merchants".
type resource struct {
	path string // collection path
	name string // metric prefix
}

var (
	merchants    = resource{path: "/merchants", name: "merchants"}
	transactions = resource{path: "/transactions", name: "transactions"}
	partners     = resource{path: "/partners", name: "partners"}
	adminUsers   = resource{path: "/admin-users", name: "admin_users"}
	paymentLinks = resource{path: "/payment-links", name: "payment_links"}
)

func (r resource) item(id string) string {
	return r.path + "/" + escapeID(id)
}

func list[T any](ctx context.Context, c *Client, r resource, q model.ListQuery) (model.Page[T], error) {
	var page model.Page[T]
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     r.path,
		endpoint: r.name + ".list",
		query:    q.Values(),
	}, &page)
	if err != nil {
		return model.Page[T]{}, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	page.Meta = page.Meta.Normalize(q, len(page.Data))
	return page, nil
}

func get[T any](ctx context.Context, c *Client, r resource, id string) (T, error) {
	var out T
	err := c.do(ctx, call{method: http.MethodGet, path: r.item(id), endpoint: r.name + ".get"}, &out)
	return out, err
}

func create[T, R any](ctx context.Context, c *Client, r resource, req R) (T, error) {
	var out T
	err := c.do(ctx, call{method: http.MethodPost, path: r.path, endpoint: r.name + ".create", body: req}, &out)
	return out, err
}

func update[T, R any](ctx context.Context, c *Client, r resource, id string, req R) (T, error) {
	var out T
	err := c.do(ctx, call{method: http.MethodPatch, path: r.item(id), endpoint: r.name + ".update", body: req}, &out)
	return out, err
}

func remove(ctx context.Context, c *Client, r resource, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: r.item(id), endpoint: r.name + ".delete"}, nil)
}

// ListMerchants returns one page of merchants.
func (c *Client) ListMerchants(ctx context.Context, q model.ListQuery) (model.Page[model.Merchant], error) {
	return list[model.Merchant](ctx, c, merchants, q)
}

// GetMerchant returns a merchant by id.
func (c *Client) GetMerchant(ctx context.Context, id string) (model.Merchant, error) {
	return get[model.Merchant](ctx, c, merchants, id)
}

// CreateMerchant creates a merchant.
func (c *Client) CreateMerchant(ctx context.Context, req model.MerchantRequest) (model.Merchant, error) {
	return create[model.Merchant](ctx, c, merchants, req)
}

// UpdateMerchant updates a merchant.
func (c *Client) UpdateMerchant(ctx context.Context, id string, req model.MerchantRequest) (model.Merchant, error) {
	return update[model.Merchant](ctx, c, merchants, id, req)
}

// DeleteMerchant deletes a merchant.
func (c *Client) DeleteMerchant(ctx context.Context, id string) error {
	return remove(ctx, c, merchants, id)
}

// ListPartners returns one page of partners.
func (c *Client) ListPartners(ctx context.Context, q model.ListQuery) (model.Page[model.Partner], error) {
	return list[model.Partner](ctx, c, partners, q)
}

// GetPartner returns a partner by id.
func (c *Client) GetPartner(ctx context.Context, id string) (model.Partner, error) {
	return get[model.Partner](ctx, c, partners, id)
}

// CreatePartner creates a partner.
func (c *Client) CreatePartner(ctx context.Context, req model.PartnerRequest) (model.Partner, error) {
	return create[model.Partner](ctx, c, partners, req)
}

// UpdatePartner updates a partner.
func (c *Client) UpdatePartner(ctx context.Context, id string, req model.PartnerRequest) (model.Partner, error) {
	return update[model.Partner](ctx, c, partners, id, req)
}

// DeletePartner deletes a partner.
func (c *Client) DeletePartner(ctx context.Context, id string) error {
	return remove(ctx, c, partners, id)
}

// ListAdminUsers returns one page of admin users.
func (c *Client) ListAdminUsers(ctx context.Context, q model.ListQuery) (model.Page[model.AdminUser], error) {
	return list[model.AdminUser](ctx, c, adminUsers, q)
}

// GetAdminUser returns an admin user by id.
func (c *Client) GetAdminUser(ctx context.Context, id string) (model.AdminUser, error) {
	return get[model.AdminUser](ctx, c, adminUsers, id)
}

// CreateAdminUser creates an admin user.
func (c *Client) CreateAdminUser(ctx context.Context, req model.AdminUserRequest) (model.AdminUser, error) {
	return create[model.AdminUser](ctx, c, adminUsers, req)
}

// UpdateAdminUser updates an admin user.
func (c *Client) UpdateAdminUser(ctx context.Context, id string, req model.AdminUserRequest) (model.AdminUser, error) {
	return update[model.AdminUser](ctx, c, adminUsers, id, req)
}

// DeleteAdminUser deletes an admin user.
func (c *Client) DeleteAdminUser(ctx context.Context, id string) error {
	return remove(ctx, c, adminUsers, id)
}

// ListPaymentLinks returns one page of payment links.
func (c *Client) ListPaymentLinks(ctx context.Context, q model.ListQuery) (model.Page[model.PaymentLink], error) {
	return list[model.PaymentLink](ctx, c, paymentLinks, q)
}

// GetPaymentLink returns a payment link by id.
func (c *Client) GetPaymentLink(ctx context.Context, id string) (model.PaymentLink, error) {
	return get[model.PaymentLink](ctx, c, paymentLinks, id)
}

// CreatePaymentLink creates a payment link.
func (c *Client) CreatePaymentLink(ctx context.Context, req model.PaymentLinkRequest) (model.PaymentLink, error) {
	return create[model.PaymentLink](ctx, c, paymentLinks, req)
}

// UpdatePaymentLink updates a payment link.
func (c *Client) UpdatePaymentLink(ctx context.Context, id string, req model.PaymentLinkRequest) (model.PaymentLink, error) {
	return update[model.PaymentLink](ctx, c, paymentLinks, id, req)
}

// DeletePaymentLink deletes a payment link.
func (c *Client) DeletePaymentLink(ctx context.Context, id string) error {
	return remove(ctx, c, paymentLinks, id)
}
