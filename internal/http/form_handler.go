package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// FormSaver persists a parsed form. service.EntityService satisfies it for
// every console entity.
type FormSaver[T, R any] interface {
	Create(ctx context.Context, req R) (T, error)
	Update(ctx context.Context, id string, req R) (T, error)
}

// FormRenderer renders the form page with data. Field errors re-render
// through the same function, so it is an ErrorRenderer.
type FormRenderer = ErrorRenderer

// FormSubmission is one create or edit post of an entity form.
type FormSubmission[T, R any] struct {
	Mode FormMode
	// ID names the entity being edited; ignored on create.
	ID string
	// Parse turns the posted values into a request plus field errors.
	Parse  func(url.Values) (R, map[string]string)
	Saver  FormSaver[T, R]
	Render FormRenderer
	Meta   PageMeta
	// Data is merged into the re-rendered form; it carries the submitted values.
	Data       map[string]any
	SuccessURL string
}

// Handle validates the form, saves it and redirects to SuccessURL. Local
// validation errors never reach the API. API field errors and other failures
// re-render the form; browsers get 422, HTMX swaps stay on 200.
func (s FormSubmission[T, R]) Handle(w http.ResponseWriter, r *http.Request) {
	if s.Parse == nil || s.Saver == nil || s.Render == nil {
		http.Error(w, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	switch s.Mode {
	case FormModeCreate:
	case FormModeEdit:
		if s.ID == "" {
			http.NotFound(w, r)
			return
		}
	default:
		http.Error(w, "invalid form mode", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req, fieldErrors := s.Parse(r.PostForm)
	if len(fieldErrors) > 0 {
		s.rerender(w, r, fieldErrors, nil)
		return
	}

	var err error
	if s.Mode == FormModeEdit {
		_, err = s.Saver.Update(r.Context(), s.ID, req)
	} else {
		_, err = s.Saver.Create(r.Context(), req)
	}
	switch {
	case errors.Is(err, context.Canceled):
		http.Error(w, "request canceled", http.StatusRequestTimeout)
	case err != nil:
		s.rerender(w, r, nil, err)
	default:
		redirect(w, r, s.SuccessURL)
	}
}

func (s FormSubmission[T, R]) rerender(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string, err error) {
	data := map[string]any{"Mode": s.Mode}
	for k, v := range s.Data {
		data[k] = v
	}
	RenderError(ErrorOpts{
		W:           w,
		R:           r,
		Err:         err,
		FieldErrors: fieldErrors,
		Renderer:    s.Render,
		PageMeta:    s.Meta,
		Data:        data,
		StatusCode:  formErrorStatus(r),
	})
}

// formErrorStatus keeps htmx swaps on 200 and reports 422 to everything else.
func formErrorStatus(r *http.Request) int {
	if IsHTMX(r) {
		return 0
	}
	return http.StatusUnprocessableEntity
}
