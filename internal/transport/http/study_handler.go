package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "marketstudy/internal/errors"
	"marketstudy/internal/financial"
	"marketstudy/internal/middleware"
)

// StudyHandler serves the market, competitor and financial views
type StudyHandler struct {
	service      StudyServiceInterface
	validator    *middleware.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(service StudyServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		service:      service,
		validator:    middleware.NewValidationMiddleware(logger, errorHandler),
		logger:       logger.With(slog.String("component", "study_handler")),
		errorHandler: errorHandler,
	}
}

// FinancialRoutes returns the /financial sub-router
func (h *StudyHandler) FinancialRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/analysis", h.GetFinancialAnalysis)
	r.Get("/sensitivity", h.GetSensitivity)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeValidator(h.errorHandler, "application/json"))
		r.Use(h.validator.ValidateRequest)
		r.Post("/what-if", h.WhatIf)
	})
	return r
}

// GetMarket handles GET /api/market
func (h *StudyHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Market())
}

// GetCompetitorAnalysis handles GET /api/competitors/analysis
func (h *StudyHandler) GetCompetitorAnalysis(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CompetitorAnalysis(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "competitor analysis failed", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// GetFinancialAnalysis handles GET /api/financial/analysis
func (h *StudyHandler) GetFinancialAnalysis(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.FinancialAnalysis(r.Context()))
}

// GetSensitivity handles GET /api/financial/sensitivity
func (h *StudyHandler) GetSensitivity(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Sensitivity(r.Context()))
}

// WhatIf handles POST /api/financial/what-if
func (h *StudyHandler) WhatIf(w http.ResponseWriter, r *http.Request) {
	var overrides financial.Overrides
	if err := h.validator.DecodeAndValidate(r, &overrides); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	analysis, err := h.service.WhatIf(r.Context(), overrides)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, analysis)
}
