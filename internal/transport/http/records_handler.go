// Package http contains the chi HTTP handlers for the record service.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "macrocli/internal/errors"
	"macrocli/internal/services"
	"macrocli/internal/store"
	"macrocli/pkg/contracts/domain"
)

// RecordsHandler serves CRUD over monthly panel records.
type RecordsHandler struct {
	service      *services.RecordService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRecordsHandler creates a records handler.
func NewRecordsHandler(service *services.RecordService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RecordsHandler {
	return &RecordsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "records_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the record routes.
func (h *RecordsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Route("/{date}", func(r chi.Router) {
		r.Use(h.DateCtx)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})

	return r
}

// DateCtx validates the date path parameter before the method handlers run.
func (h *RecordsHandler) DateCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")
		if err := h.service.ValidateDate(date); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", err.Error()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// List handles GET /records?skip=&limit=.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", 0)

	records, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if records == nil {
		records = []domain.MonthlyRecord{}
	}
	render.JSON(w, r, records)
}

// Get handles GET /records/{date}.
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	rec, err := h.service.Get(r.Context(), date)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapRecordError(err))
		return
	}
	render.JSON(w, r, rec)
}

// Create handles POST /records.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec domain.MonthlyRecord
	if err := render.DecodeJSON(r.Body, &rec); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.service.Create(r.Context(), rec); err != nil {
		h.errorHandler.HandleError(w, r, mapRecordError(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, rec)
}

// Update handles PUT /records/{date}.
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var rec domain.MonthlyRecord
	if err := render.DecodeJSON(r.Body, &rec); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.service.Update(r.Context(), date, rec); err != nil {
		h.errorHandler.HandleError(w, r, mapRecordError(err))
		return
	}
	render.JSON(w, r, rec)
}

// Delete handles DELETE /records/{date}.
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	if err := h.service.Delete(r.Context(), date); err != nil {
		h.errorHandler.HandleError(w, r, mapRecordError(err))
		return
	}
	render.JSON(w, r, map[string]any{"deleted": true, "date": date})
}

// mapRecordError converts service and store errors to API errors.
func mapRecordError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apierrors.NotFoundError("record")
	case errors.Is(err, store.ErrExists):
		return apierrors.ConflictError("record")
	case errors.Is(err, services.ErrDateMismatch):
		return apierrors.ErrValidation("date", err.Error())
	}
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	// Validation failures from the service carry their own message.
	if isValidationError(err) {
		return apierrors.InvalidRequestWithError(err)
	}
	return err
}

func isValidationError(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "invalid record")
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
