package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/http/ui/viewmodel"
	"github.com/txpay/txpay-admin/internal/http/uiutil"
	"github.com/txpay/txpay-admin/internal/http/validation"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// returnParam carries the dashboard view a form goes back to.
const returnParam = "return"

// entityForm describes how one editable entity maps onto the generic form.
// Forms work on url.Values so the same field builder serves the initial
// render, the edit render and the re-render after a failed submit.
type entityForm[T, R any] struct {
	entity   string // entity.<entity> label key
	basePath string
	tab      viewstate.Tab
	ops      func(api ports.TXPayAPI) service.EntityOps[T, R]
	values   func(item T) url.Values
	defaults func(h *UIHandlers) url.Values
	fields   func(h *UIHandlers, r *http.Request, v url.Values, mode FormMode) []viewmodel.FormField
	parse    func(v url.Values, mode FormMode) (R, *validation.FieldValidator)
	// changed runs after a successful mutation. Optional.
	changed func(h *UIHandlers, r *http.Request) func(ctx context.Context)
}

// entityRoutes are the handlers of one entity.
type entityRoutes struct {
	New    http.HandlerFunc
	Edit   http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

func entityHandlers[T, R any](h *UIHandlers, f entityForm[T, R]) entityRoutes {
	return entityRoutes{
		New:    func(w http.ResponseWriter, r *http.Request) { f.newPage(h, w, r) },
		Edit:   func(w http.ResponseWriter, r *http.Request) { f.editPage(h, w, r) },
		Create: func(w http.ResponseWriter, r *http.Request) { f.submit(h, w, r, FormModeCreate) },
		Update: func(w http.ResponseWriter, r *http.Request) { f.submit(h, w, r, FormModeEdit) },
		Delete: func(w http.ResponseWriter, r *http.Request) { f.remove(h, w, r) },
	}
}

func (f entityForm[T, R]) svc(h *UIHandlers, r *http.Request) *service.EntityService[T, R] {
	svc := service.NewEntityService(f.ops(h.apiFor(r)), h.Audit, actor(r))
	if f.changed != nil {
		svc.OnChange = f.changed(h, r)
	}
	return svc
}

// tabURL is the dashboard tab the entity is listed on.
func (f entityForm[T, R]) tabURL() string {
	q := url.Values{}
	q.Set(viewstate.KeyTab, string(f.tab))
	return "/?" + q.Encode()
}

// returnURL keeps a same-origin dashboard URL, falling back to the entity tab.
func (f entityForm[T, R]) returnURL(raw string) string {
	if p, ok := localPath(raw); ok {
		return p
	}
	return f.tabURL()
}

func (f entityForm[T, R]) meta(r *http.Request, mode FormMode) PageMeta {
	l := loc(r)
	key := "form.new"
	if mode == FormModeEdit {
		key = "form.edit"
	}
	title := l.T(key, l.T("entity."+f.entity))
	return PageMeta{Title: title, PageTitle: title, CurrentPage: PageEntityForm}
}

func (f entityForm[T, R]) formData(h *UIHandlers, r *http.Request, mode FormMode, id string, v url.Values, returnTo string) map[string]any {
	action := f.basePath
	if mode == FormModeEdit {
		action = f.basePath + "/" + url.PathEscape(id)
	}
	return map[string]any{
		"Mode":     mode,
		"Entity":   f.entity,
		"ID":       id,
		"Action":   action,
		"Fields":   f.fields(h, r, v, mode),
		"ReturnTo": returnTo,
	}
}

func (f entityForm[T, R]) render(h *UIHandlers, w http.ResponseWriter, r *http.Request, mode FormMode, id string, v url.Values) {
	data := f.formData(h, r, mode, id, v, f.returnURL(r.URL.Query().Get(returnParam)))
	h.renderDashboardPage(w, r, NewTemplateData(r, f.meta(r, mode)).Merge(data).Build())
}

// newPage renders an empty form. GET <base>/new.
func (f entityForm[T, R]) newPage(h *UIHandlers, w http.ResponseWriter, r *http.Request) {
	v := url.Values{}
	if f.defaults != nil {
		v = f.defaults(h)
	}
	f.render(h, w, r, FormModeCreate, "", v)
}

// editPage loads the entity into the form. GET <base>/{id}/edit.
func (f entityForm[T, R]) editPage(h *UIHandlers, w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	item, err := f.svc(h, r).Get(r.Context(), id)
	if err != nil {
		h.logger().WarnContext(r.Context(), "load entity failed", "entity", f.entity, "id", id, "error", err)
		renderStatusMessage(w, r, DetermineErrorStatus(err), ErrorMessage(loc(r), err))
		return
	}
	f.render(h, w, r, FormModeEdit, id, f.values(item))
}

// submit creates or updates the entity. POST <base> and POST <base>/{id}.
func (f entityForm[T, R]) submit(h *UIHandlers, w http.ResponseWriter, r *http.Request, mode FormMode) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	returnTo := f.returnURL(r.PostFormValue(returnParam))
	l := loc(r)

	FormSubmission[T, R]{
		Mode: mode,
		ID:   id,
		Parse: func(v url.Values) (R, map[string]string) {
			req, fv := f.parse(v, mode)
			return req, fv.Messages(l.T)
		},
		Saver:      f.svc(h, r),
		Render:     h.renderDashboardPage,
		Meta:       f.meta(r, mode),
		Data:       f.formData(h, r, mode, id, r.PostForm, returnTo),
		SuccessURL: returnTo,
	}.Handle(w, r)
}

// remove deletes the entity. POST <base>/{id}/delete.
func (f entityForm[T, R]) remove(h *UIHandlers, w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	l := loc(r)
	if err := f.svc(h, r).Delete(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "delete entity failed", "entity", f.entity, "id", id, "error", err)
		msg := ErrorMessage(l, err)
		if IsHTMX(r) {
			keepPage(w, http.StatusOK, msg)
			return
		}
		renderStatusMessage(w, r, DetermineErrorStatus(err), msg)
		return
	}

	redirect(w, r, f.returnURL(r.FormValue(returnParam)))
}

func formField(l interface{ T(string, ...any) string }, name, typ string, v url.Values, required bool) viewmodel.FormField {
	return viewmodel.FormField{
		Name:     name,
		Label:    l.T("field." + name),
		Type:     typ,
		Value:    v.Get(name),
		Required: required,
	}
}

func selectField(l interface{ T(string, ...any) string }, name string, v url.Values, required bool, values ...string) viewmodel.FormField {
	f := formField(l, name, "select", v, required)
	current := v.Get(name)
	if !required {
		f.Options = append(f.Options, viewmodel.Option{Value: "", Label: l.T("common.none"), Selected: current == ""})
	}
	for _, val := range values {
		f.Options = append(f.Options, viewmodel.Option{Value: val, Label: val, Selected: strings.EqualFold(val, current)})
	}
	return f
}

func formValue(v url.Values, name string) string {
	return strings.TrimSpace(v.Get(name))
}

var (
	merchantStatuses = []string{
		string(model.MerchantStatusActive), string(model.MerchantStatusInactive),
		string(model.MerchantStatusPending), string(model.MerchantStatusSuspended),
	}
	simpleStatuses      = []string{"ACTIVE", "INACTIVE"}
	paymentLinkStatuses = []string{"ACTIVE", "PAID", "EXPIRED", "CANCELLED"}
	adminRoles          = []string{string(model.AdminRoleSuperAdmin), string(model.AdminRoleAdmin), string(model.AdminRoleSupport)}
)

func merchantForm() entityForm[model.Merchant, model.MerchantRequest] {
	return entityForm[model.Merchant, model.MerchantRequest]{
		entity:   "merchant",
		basePath: "/merchants",
		tab:      viewstate.TabMerchants,
		ops:      service.MerchantOps,
		values: func(m model.Merchant) url.Values {
			return url.Values{
				"name": {m.Name}, "email": {m.Email}, "phone": {m.Phone},
				"country": {m.Country}, "status": {string(m.Status)}, "partnerId": {m.PartnerID},
			}
		},
		defaults: func(h *UIHandlers) url.Values {
			return url.Values{"country": {h.UI.DefaultCountry}, "status": {string(model.MerchantStatusActive)}}
		},
		fields: func(_ *UIHandlers, r *http.Request, v url.Values, _ FormMode) []viewmodel.FormField {
			l := loc(r)
			return []viewmodel.FormField{
				formField(l, "name", "text", v, true),
				formField(l, "email", "email", v, true),
				formField(l, "phone", "tel", v, false),
				formField(l, "country", "text", v, true),
				selectField(l, "status", v, true, merchantStatuses...),
				formField(l, "partnerId", "text", v, false),
			}
		},
		parse: func(v url.Values, _ FormMode) (model.MerchantRequest, *validation.FieldValidator) {
			req := model.MerchantRequest{
				Name:      formValue(v, "name"),
				Email:     formValue(v, "email"),
				Phone:     formValue(v, "phone"),
				Country:   strings.ToUpper(formValue(v, "country")),
				Status:    model.MerchantStatus(strings.ToUpper(formValue(v, "status"))),
				PartnerID: formValue(v, "partnerId"),
			}
			fv := validation.New().
				Validate("name", req.Name, validation.Required(120)).
				Validate("email", req.Email, validation.Required(254), validation.Email()).
				Validate("phone", req.Phone, validation.Optional(32)).
				Validate("country", req.Country, validation.Required(2), validation.Country()).
				Validate("status", string(req.Status), validation.Required(0), validation.OneOf(merchantStatuses...)).
				Validate("partnerId", req.PartnerID, validation.Optional(64))
			return req, fv
		},
		changed: func(h *UIHandlers, r *http.Request) func(ctx context.Context) {
			userID := actor(r).UserID
			return func(ctx context.Context) {
				if h.Reference != nil {
					h.Reference.InvalidateMerchants(ctx, userID)
				}
			}
		},
	}
}

func partnerForm() entityForm[model.Partner, model.PartnerRequest] {
	return entityForm[model.Partner, model.PartnerRequest]{
		entity:   "partner",
		basePath: "/partners",
		tab:      viewstate.TabPartners,
		ops:      service.PartnerOps,
		values: func(p model.Partner) url.Values {
			return url.Values{
				"name": {p.Name}, "email": {p.Email}, "status": {p.Status},
				"commissionRate": {p.CommissionRate.String()},
			}
		},
		defaults: func(*UIHandlers) url.Values {
			return url.Values{"status": {"ACTIVE"}}
		},
		fields: func(_ *UIHandlers, r *http.Request, v url.Values, _ FormMode) []viewmodel.FormField {
			l := loc(r)
			rate := formField(l, "commissionRate", "number", v, false)
			rate.Hint = "%"
			return []viewmodel.FormField{
				formField(l, "name", "text", v, true),
				formField(l, "email", "email", v, true),
				selectField(l, "status", v, false, simpleStatuses...),
				rate,
			}
		},
		parse: func(v url.Values, _ FormMode) (model.PartnerRequest, *validation.FieldValidator) {
			req := model.PartnerRequest{
				Name:           formValue(v, "name"),
				Email:          formValue(v, "email"),
				Status:         strings.ToUpper(formValue(v, "status")),
				CommissionRate: json.Number(formValue(v, "commissionRate")),
			}
			fv := validation.New().
				Validate("name", req.Name, validation.Required(120)).
				Validate("email", req.Email, validation.Required(254), validation.Email()).
				Validate("status", req.Status, validation.OneOf(simpleStatuses...)).
				Validate("commissionRate", req.CommissionRate.String(), validation.Rate())
			return req, fv
		},
	}
}

func adminUserForm() entityForm[model.AdminUser, model.AdminUserRequest] {
	return entityForm[model.AdminUser, model.AdminUserRequest]{
		entity:   "admin_user",
		basePath: "/admins",
		tab:      viewstate.TabAdmins,
		ops:      service.AdminUserOps,
		values: func(a model.AdminUser) url.Values {
			return url.Values{
				"name": {a.Name}, "email": {a.Email}, "role": {string(a.Role)},
				"active": {strconv.FormatBool(a.Active)},
			}
		},
		defaults: func(*UIHandlers) url.Values {
			return url.Values{"role": {string(model.AdminRoleSupport)}, "active": {"true"}}
		},
		fields: func(_ *UIHandlers, r *http.Request, v url.Values, mode FormMode) []viewmodel.FormField {
			l := loc(r)
			active := formField(l, "active", "checkbox", v, false)
			active.Value = "true"
			active.Checked = v.Get("active") == "true" || v.Get("active") == "on"
			password := formField(l, "password", "password", v, mode == FormModeCreate)
			password.Value = ""
			if mode == FormModeEdit {
				password.Hint = l.T("field.password_hint")
			}
			return []viewmodel.FormField{
				formField(l, "name", "text", v, true),
				formField(l, "email", "email", v, true),
				selectField(l, "role", v, true, adminRoles...),
				active,
				password,
			}
		},
		parse: func(v url.Values, mode FormMode) (model.AdminUserRequest, *validation.FieldValidator) {
			active := v.Get("active") == "true" || v.Get("active") == "on"
			req := model.AdminUserRequest{
				Name:     formValue(v, "name"),
				Email:    formValue(v, "email"),
				Role:     model.AdminRole(strings.ToUpper(formValue(v, "role"))),
				Active:   &active,
				Password: v.Get("password"),
			}
			passwordCheck := validation.Optional(128)
			if mode == FormModeCreate {
				passwordCheck = validation.Required(128)
			}
			fv := validation.New().
				Validate("name", req.Name, validation.Required(120)).
				Validate("email", req.Email, validation.Required(254), validation.Email()).
				Validate("role", string(req.Role), validation.Required(0), validation.OneOf(adminRoles...)).
				Validate("password", req.Password, passwordCheck, validation.MinLen(8))
			return req, fv
		},
	}
}

func paymentLinkForm() entityForm[model.PaymentLink, model.PaymentLinkRequest] {
	return entityForm[model.PaymentLink, model.PaymentLinkRequest]{
		entity:   "payment_link",
		basePath: "/payment-links",
		tab:      viewstate.TabPaymentLinks,
		ops:      service.PaymentLinkOps,
		values: func(p model.PaymentLink) url.Values {
			return url.Values{
				"merchantId": {p.MerchantID}, "description": {p.Description},
				"amount": {p.Amount.String()}, "currency": {p.Currency}, "status": {p.Status},
				"expiresAt": {uiutil.DateInput(p.ExpiresAt)},
			}
		},
		defaults: func(*UIHandlers) url.Values {
			return url.Values{"status": {"ACTIVE"}}
		},
		fields: func(h *UIHandlers, r *http.Request, v url.Values, _ FormMode) []viewmodel.FormField {
			l := loc(r)
			merchant := formField(l, "merchantId", "text", v, true)
			if opts := h.merchantOptions(r, viewstate.TabPaymentLinks); len(opts) > 0 {
				merchant.Type = "select"
				merchant.Options = merchantSelectOptions(opts, v.Get("merchantId"))
			}
			return []viewmodel.FormField{
				merchant,
				formField(l, "description", "textarea", v, true),
				formField(l, "amount", "number", v, true),
				formField(l, "currency", "text", v, true),
				selectField(l, "status", v, false, paymentLinkStatuses...),
				formField(l, "expiresAt", "date", v, false),
			}
		},
		parse: func(v url.Values, _ FormMode) (model.PaymentLinkRequest, *validation.FieldValidator) {
			req := model.PaymentLinkRequest{
				MerchantID:  formValue(v, "merchantId"),
				Description: formValue(v, "description"),
				Amount:      json.Number(formValue(v, "amount")),
				Currency:    strings.ToUpper(formValue(v, "currency")),
				Status:      strings.ToUpper(formValue(v, "status")),
			}
			fv := validation.New().
				Validate("merchantId", req.MerchantID, validation.Required(64)).
				Validate("description", req.Description, validation.Required(255)).
				Validate("amount", req.Amount.String(), validation.Required(0), validation.Amount()).
				Validate("currency", req.Currency, validation.Required(3), validation.Currency()).
				Validate("status", req.Status, validation.OneOf(paymentLinkStatuses...)).
				Validate("expiresAt", formValue(v, "expiresAt"), validation.Date())
			if exp, err := uiutil.ParseDateInput(v.Get("expiresAt")); err == nil {
				req.ExpiresAt = exp
			}
			return req, fv
		},
	}
}

func merchantSelectOptions(opts []model.MerchantOption, current string) []viewmodel.Option {
	out := make([]viewmodel.Option, 0, len(opts)+1)
	found := current == ""
	for _, o := range opts {
		sel := o.ID == current
		found = found || sel
		out = append(out, viewmodel.Option{Value: o.ID, Label: o.Name, Selected: sel})
	}
	if !found {
		out = append(out, viewmodel.Option{Value: current, Label: current, Selected: true})
	}
	return out
}
