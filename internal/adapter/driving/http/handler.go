// Package httphandler implements the JSON API driving adapter and the HTTP
// middleware shared with the web GUI.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/ericfisherdev/dvrhub/internal/application"
	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	lookupSvc     *application.LookupService
	contributeSvc *application.ContributeService
	limit         func(http.Handler) http.Handler
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. contributeRate
// caps record submissions per client IP per minute; zero disables the limit.
func NewHandler(
	lookupSvc *application.LookupService,
	contributeSvc *application.ContributeService,
	contributeRate int,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		lookupSvc:     lookupSvc,
		contributeSvc: contributeSvc,
		limit:         func(next http.Handler) http.Handler { return next },
		logger:        logger,
	}
	if contributeRate > 0 {
		h.limit = httprate.LimitByIP(contributeRate, time.Minute)
	}
	return h
}

// RegisterAPIRoutes registers all API routes on mux under /api/v1.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/brands", h.ListBrands)
	mux.HandleFunc("GET /api/v1/brands/{brand}/models", h.ListModels)
	mux.HandleFunc("GET /api/v1/brands/{brand}/models/{model}", h.GetRecord)
	mux.Handle("POST /api/v1/records", h.limit(http.HandlerFunc(h.CreateRecord)))
}

// ListBrands returns the distinct brands in the store.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.lookupSvc.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "record store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, BrandsResponse{Brands: catalog.Brands()})
}

// ListModels returns the distinct models of one brand.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	brand := r.PathValue("brand")

	catalog, err := h.lookupSvc.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "record store unavailable")
		return
	}

	if !catalog.HasBrand(brand) {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}

	writeJSON(w, http.StatusOK, ModelsResponse{Brand: brand, Models: catalog.Models(brand)})
}

// GetRecord returns the first record stored for a brand and model.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	brand := r.PathValue("brand")
	deviceModel := r.PathValue("model")

	catalog, err := h.lookupSvc.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "record store unavailable")
		return
	}

	res := application.Resolve(catalog, brand, deviceModel)
	if res.Record == nil {
		msg := "record not found"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		writeError(w, http.StatusNotFound, msg)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(*res.Record))
}

// CreateRecord appends a contributed record. Brand and model are required;
// an omitted user defaults to "admin".
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record := req.toRecord()

	if err := h.contributeSvc.Contribute(r.Context(), record); err != nil {
		var verr *application.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "brand and model are required", Fields: verr.Fields})
			return
		}
		h.logger.Error("failed to append record", "brand", record.Brand, "model", record.Model, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(record))
}

// Health returns a simple health check response. It does not touch the store.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (req CreateRecordRequest) toRecord() model.Record {
	user := model.DefaultUser
	if req.User != nil {
		user = *req.User
	}
	return model.Record{
		Brand: req.Brand,
		Model: req.Model,
		User:  user,
		Pass:  req.Pass,
		Info:  req.Info,
	}
}
