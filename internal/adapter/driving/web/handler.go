// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/httprate"

	"github.com/ericfisherdev/dvrhub/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/dvrhub/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/dvrhub/internal/application"
	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

const siteTitle = "DVR/NVR Password Hub"

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	lookupSvc     *application.LookupService
	contributeSvc *application.ContributeService
	limit         func(http.Handler) http.Handler
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. contributeRate
// caps form submissions per client IP per minute; zero disables the limit.
func NewHandler(
	lookupSvc *application.LookupService,
	contributeSvc *application.ContributeService,
	contributeRate int,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		lookupSvc:     lookupSvc,
		contributeSvc: contributeSvc,
		limit:         func(next http.Handler) http.Handler { return next },
		secureCookies: secureCookies,
		logger:        logger,
	}
	if contributeRate > 0 {
		h.limit = httprate.LimitByIP(contributeRate, time.Minute)
	}
	return h
}

// Search renders the Search tab. The brand and model query parameters carry
// the current selection.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := h.lookupSvc.Lookup(r.Context(), q.Get("brand"), q.Get("model"))

	h.render(w, r, http.StatusOK, "Search Device", "search", pages.Search(toSearchViewModel(res)))
}

// ContributeForm renders an empty Contribute tab, with a success notice when
// redirected here after a save.
func (h *Handler) ContributeForm(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r, h.secureCookies)
	vm := newContributeViewModel(h.brands(r), token)
	if added := r.URL.Query().Get("added"); added != "" {
		vm.SuccessMessage = successMessage(added)
	}

	h.render(w, r, http.StatusOK, "Add / Contribute", "contribute", pages.Contribute(vm))
}

// SubmitContribution validates and saves the posted form, then redirects back
// to the empty form so a reload cannot resubmit it.
func (h *Handler) SubmitContribution(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	brands := h.brands(r)
	form := parseContributeForm(r, len(brands) > 0)

	err := h.contributeSvc.Contribute(r.Context(), form.Record)
	if err == nil {
		target := "/contribute?added=" + url.QueryEscape(form.Record.Brand+" - "+form.Record.Model)
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	token := csrfToken(w, r, h.secureCookies)
	var valErr *application.ValidationError
	if errors.As(err, &valErr) {
		vm := refillContributeViewModel(brands, token, form, msgMissingRequired)
		h.render(w, r, http.StatusUnprocessableEntity, "Add / Contribute", "contribute", pages.Contribute(vm))
		return
	}

	h.logger.Error("failed to save contribution", "brand", form.Record.Brand, "model", form.Record.Model, "error", err)
	vm := refillContributeViewModel(brands, token, form, msgSaveFailed)
	h.render(w, r, http.StatusBadGateway, "Add / Contribute", "contribute", pages.Contribute(vm))
}

// brands returns the existing brand list for the contribute form. An
// unreadable store yields no brands, which forces the new-brand input.
func (h *Handler) brands(r *http.Request) []string {
	catalog, _ := h.lookupSvc.Load(r.Context())
	return catalog.Brands()
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title, active string, content templ.Component) {
	layout := templates.Layout(title+" | "+siteTitle, active, content)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "page", active, "error", err)
	}
}

// contributeForm is a parsed contribute submission. Record.Brand is already
// resolved from the brand source.
type contributeForm struct {
	Source        application.BrandSource
	ExistingBrand string
	NewBrand      string
	Record        model.Record
}

func parseContributeForm(r *http.Request, haveExisting bool) contributeForm {
	form := contributeForm{
		Source:        application.BrandSource(r.PostFormValue("brand_source")),
		ExistingBrand: r.PostFormValue("existing_brand"),
		NewBrand:      r.PostFormValue("new_brand"),
	}
	form.Record = model.Record{
		Brand: application.ResolveBrand(form.Source, form.ExistingBrand, form.NewBrand, haveExisting),
		Model: r.PostFormValue("model"),
		User:  r.PostFormValue("user"),
		Pass:  r.PostFormValue("pass"),
		Info:  r.PostFormValue("info"),
	}
	return form
}
