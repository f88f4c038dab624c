package httpx

import (
	"io"
	"mime"
	"net/http"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// transactionActions lists the lifecycle actions in display order.
var transactionActions = []model.TransactionAction{model.ActionCapture, model.ActionVoid, model.ActionRefund}

// TransactionDetail shows one transaction with the actions its status allows.
// GET /transactions/{id}.
func (h *UIHandlers) TransactionDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tx, err := h.apiFor(r).GetTransaction(r.Context(), id)
	if err != nil {
		h.logger().WarnContext(r.Context(), "load transaction failed", "id", id, "error", err)
		renderStatusMessage(w, r, DetermineErrorStatus(err), ErrorMessage(loc(r), err))
		return
	}
	h.renderTransaction(w, r, tx)
}

func (h *UIHandlers) renderTransaction(w http.ResponseWriter, r *http.Request, tx model.Transaction) {
	l := loc(r)
	title := l.T("transaction.title", tx.ID)

	actions := make([]string, 0, len(transactionActions))
	for _, a := range transactionActions {
		if tx.Allows(a) {
			actions = append(actions, string(a))
		}
	}

	data := NewTemplateData(r, PageMeta{Title: title, PageTitle: title, CurrentPage: PageTransaction}).
		With("Transaction", tx).
		With("Actions", actions).
		With("BackURL", h.transactionBackURL(r)).
		Build()
	h.renderDashboardPage(w, r, data)
}

// transactionBackURL returns to the list the detail was opened from.
func (h *UIHandlers) transactionBackURL(r *http.Request) string {
	if p, ok := localPath(r.URL.Query().Get(returnParam)); ok {
		return p
	}
	return "/?" + viewstate.KeyTab + "=" + string(viewstate.TabTransactions)
}

// TransactionAction runs capture, void or refund.
// POST /transactions/{id}/{action}.
//
// htmx callers get the refreshed detail plus a toast; a rejected action keeps
// the page as it is and only shows the error.
func (h *UIHandlers) TransactionAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	action := r.PathValue("action")
	l := loc(r)

	tx, err := h.Transactions.Perform(r.Context(), h.apiFor(r), actor(r), id, action)
	if err != nil {
		h.logger().WarnContext(r.Context(), "transaction action failed",
			"id", id, "action", action, "error", err)
		msg := ErrorMessage(l, err)
		if IsHTMX(r) {
			keepPage(w, http.StatusOK, msg)
			return
		}
		renderStatusMessage(w, r, DetermineErrorStatus(err), msg)
		return
	}

	h.logger().InfoContext(r.Context(), "transaction action", "id", id, "action", action, "status", tx.Status)
	if !IsHTMX(r) {
		http.Redirect(w, r, "/transactions/"+id, http.StatusSeeOther)
		return
	}
	triggerToast(w, l.T("toast.transaction_updated"), "success")
	h.renderTransaction(w, r, tx)
}

// TransactionExport streams the spreadsheet for the filters in the query.
// GET /transactions/export?<filters>.
func (h *UIHandlers) TransactionExport(w http.ResponseWriter, r *http.Request) {
	mgr := viewstate.New(viewstate.NewRequestLocation(r), string(viewstate.TabTransactions))
	filters := mgr.Read().Filters

	exp, err := h.Transactions.Export(r.Context(), h.apiFor(r), actor(r), filters)
	if err != nil {
		h.logger().WarnContext(r.Context(), "transaction export failed", "error", err)
		msg := ErrorMessage(loc(r), err)
		if field := invalidFilterField(err); field != "" {
			msg = loc(r).T("error.invalid_filter", loc(r).T("filter."+field))
		}
		if IsHTMX(r) {
			keepPage(w, http.StatusOK, msg)
			return
		}
		renderStatusMessage(w, r, DetermineErrorStatus(err), msg)
		return
	}
	defer func() {
		if cerr := exp.Body.Close(); cerr != nil {
			h.logger().WarnContext(r.Context(), "closing export body failed", "error", cerr)
		}
	}()

	contentType := exp.ContentType
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	filename := exp.Filename
	if filename == "" {
		filename = "transactions.xlsx"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := io.Copy(w, exp.Body); err != nil {
		h.logger().WarnContext(r.Context(), "streaming export failed", "error", err)
	}
}
