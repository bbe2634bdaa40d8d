package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "macrocli/internal/errors"
	"macrocli/internal/services"
	"macrocli/pkg/contracts/domain"
)

// AnalysisHandler serves the canned economic queries over the stored panel.
type AnalysisHandler struct {
	service      *services.AnalysisService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(service *services.AnalysisService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/high-unemployment", h.HighUnemployment)
	r.Get("/unemployment-by-decade", h.UnemploymentByDecade)
	r.Get("/yield-inversions", h.YieldInversions)
	r.Get("/snapshot/{year}", h.YearSnapshot)
	r.Get("/crisis-bands", h.CrisisBands)

	return r
}

// HighUnemployment handles GET /analysis/high-unemployment?threshold=&limit=.
func (h *AnalysisHandler) HighUnemployment(w http.ResponseWriter, r *http.Request) {
	threshold := floatQuery(r, "threshold", 0)
	limit := intQuery(r, "limit", 0)

	months, err := h.service.HighUnemploymentMonths(r.Context(), threshold, limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if months == nil {
		months = []domain.UnemploymentMonth{}
	}
	render.JSON(w, r, months)
}

// UnemploymentByDecade handles GET /analysis/unemployment-by-decade.
func (h *AnalysisHandler) UnemploymentByDecade(w http.ResponseWriter, r *http.Request) {
	decades, err := h.service.AvgUnemploymentByDecade(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if decades == nil {
		decades = []domain.DecadeAverage{}
	}
	render.JSON(w, r, decades)
}

// YieldInversions handles GET /analysis/yield-inversions?limit=.
func (h *AnalysisHandler) YieldInversions(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 0)

	inversions, err := h.service.YieldCurveInversions(r.Context(), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if inversions == nil {
		inversions = []domain.InversionMonth{}
	}
	render.JSON(w, r, inversions)
}

// YearSnapshot handles GET /analysis/snapshot/{year}.
func (h *AnalysisHandler) YearSnapshot(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1000 || year > 9999 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year", "year must be a four-digit number"))
		return
	}

	records, svcErr := h.service.YearSnapshot(r.Context(), year)
	if svcErr != nil {
		h.errorHandler.HandleError(w, r, svcErr)
		return
	}
	if records == nil {
		records = []domain.MonthlyRecord{}
	}
	render.JSON(w, r, records)
}

// CrisisBands handles GET /analysis/crisis-bands.
func (h *AnalysisHandler) CrisisBands(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.CrisisBands())
}

func floatQuery(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
