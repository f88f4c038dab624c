package service

import (
	"context"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/domain/model"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// TransactionService runs transaction lifecycle actions and exports on behalf of a caller.
type TransactionService struct {
	audit *AuditService
}

// NewTransactionService constructs a TransactionService. audit may be nil.
func NewTransactionService(audit *AuditService) *TransactionService {
	return &TransactionService{audit: audit}
}

// Perform runs action against the transaction and records the outcome.
func (s *TransactionService) Perform(
	ctx context.Context,
	api ports.TXPayAPI,
	actor domainauth.Session,
	id string,
	action string,
) (model.Transaction, error) {
	a, ok := model.ParseTransactionAction(action)
	if !ok {
		return model.Transaction{}, apperrors.Validationf("unsupported action %q", action)
	}
	if id == "" {
		return model.Transaction{}, apperrors.Validation("transaction id is required")
	}

	tx, err := api.PerformTransactionAction(ctx, id, a)
	s.audit.Record(ctx, actor, AuditEvent{Action: string(a), Entity: "transaction", EntityID: id, Err: err})
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// Export downloads the spreadsheet for the transaction filters in state.
// Page and tab are ignored. The caller closes the returned body.
func (s *TransactionService) Export(
	ctx context.Context,
	api ports.TXPayAPI,
	actor domainauth.Session,
	filters map[string]string,
) (model.Export, error) {
	valid, err := viewstate.SchemaFor(viewstate.TabTransactions).Validate(filters)
	if err != nil {
		return model.Export{}, err
	}
	exp, err := api.ExportTransactions(ctx, valid)
	s.audit.Record(ctx, actor, AuditEvent{Action: "export", Entity: "transaction", Detail: encodeFilters(valid), Err: err})
	if err != nil {
		return model.Export{}, err
	}
	return exp, nil
}

func encodeFilters(f map[string]string) string {
	return model.ListQuery{Filters: f}.Values().Encode()
}
