package service

import (
	"context"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/ports"
)

// EntityOps binds the API calls for one editable entity.
type EntityOps[T, R any] struct {
	Name   string
	Get    func(ctx context.Context, id string) (T, error)
	Create func(ctx context.Context, req R) (T, error)
	Update func(ctx context.Context, id string, req R) (T, error)
	Delete func(ctx context.Context, id string) error
}

// EntityService performs audited create, update and delete calls for one caller.
type EntityService[T, R any] struct {
	ops   EntityOps[T, R]
	audit *AuditService
	actor domainauth.Session
	// OnChange runs after every successful mutation.
	OnChange func(ctx context.Context)
}

// NewEntityService binds ops to actor. audit may be nil.
func NewEntityService[T, R any](ops EntityOps[T, R], audit *AuditService, actor domainauth.Session) *EntityService[T, R] {
	return &EntityService[T, R]{ops: ops, audit: audit, actor: actor}
}

// Name returns the entity name used in audit entries and routes.
func (s *EntityService[T, R]) Name() string { return s.ops.Name }

// Get loads one entity.
func (s *EntityService[T, R]) Get(ctx context.Context, id string) (T, error) {
	return s.ops.Get(ctx, id)
}

// Create creates an entity.
func (s *EntityService[T, R]) Create(ctx context.Context, req R) (T, error) {
	out, err := s.ops.Create(ctx, req)
	s.record(ctx, "create", idOf(out), err)
	return out, err
}

// Update updates the entity id.
func (s *EntityService[T, R]) Update(ctx context.Context, id string, req R) (T, error) {
	out, err := s.ops.Update(ctx, id, req)
	s.record(ctx, "update", id, err)
	return out, err
}

// Delete removes the entity id.
func (s *EntityService[T, R]) Delete(ctx context.Context, id string) error {
	err := s.ops.Delete(ctx, id)
	s.record(ctx, "delete", id, err)
	return err
}

func (s *EntityService[T, R]) record(ctx context.Context, action, id string, err error) {
	s.audit.Record(ctx, s.actor, AuditEvent{Action: action, Entity: s.ops.Name, EntityID: id, Err: err})
	if err == nil && s.OnChange != nil {
		s.OnChange(ctx)
	}
}

type identified interface{ GetID() string }

func idOf(v any) string {
	if x, ok := v.(identified); ok {
		return x.GetID()
	}
	return ""
}

// MerchantOps binds merchant calls on api.
func MerchantOps(api ports.TXPayAPI) EntityOps[model.Merchant, model.MerchantRequest] {
	return EntityOps[model.Merchant, model.MerchantRequest]{
		Name: "merchant", Get: api.GetMerchant, Create: api.CreateMerchant,
		Update: api.UpdateMerchant, Delete: api.DeleteMerchant,
	}
}

// PartnerOps binds partner calls on api.
func PartnerOps(api ports.TXPayAPI) EntityOps[model.Partner, model.PartnerRequest] {
	return EntityOps[model.Partner, model.PartnerRequest]{
		Name: "partner", Get: api.GetPartner, Create: api.CreatePartner,
		Update: api.UpdatePartner, Delete: api.DeletePartner,
	}
}

// AdminUserOps binds admin user calls on api.
func AdminUserOps(api ports.TXPayAPI) EntityOps[model.AdminUser, model.AdminUserRequest] {
	return EntityOps[model.AdminUser, model.AdminUserRequest]{
		Name: "admin_user", Get: api.GetAdminUser, Create: api.CreateAdminUser,
		Update: api.UpdateAdminUser, Delete: api.DeleteAdminUser,
	}
}

// PaymentLinkOps binds payment link calls on api.
func PaymentLinkOps(api ports.TXPayAPI) EntityOps[model.PaymentLink, model.PaymentLinkRequest] {
	return EntityOps[model.PaymentLink, model.PaymentLinkRequest]{
		Name: "payment_link", Get: api.GetPaymentLink, Create: api.CreatePaymentLink,
		Update: api.UpdatePaymentLink, Delete: api.DeletePaymentLink,
	}
}
