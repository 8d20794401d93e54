package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "marketstudy/internal/errors"
	"marketstudy/internal/files"
	"marketstudy/internal/services"
)

// ReportHandler runs studies and serves their outputs
type ReportHandler struct {
	service      StudyServiceInterface
	catalog      *files.Catalog
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service StudyServiceInterface, catalog *files.Catalog, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:      service,
		catalog:      catalog,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the /reports sub-router
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.RunStudy)
	r.Get("/latest", h.GetLatestRun)
	r.Get("/result", h.GetResult)
	r.Get("/summary", h.GetSummary)
	r.Get("/files", h.ListFiles)
	r.Get("/files/{name}", h.DownloadFile)
	return r
}

// RunStudy handles POST /api/reports
func (h *ReportHandler) RunStudy(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Run(r.Context())
	switch {
	case errors.Is(err, services.ErrStudyRunning):
		h.errorHandler.HandleError(w, r, apierrors.ErrStudyRunning)
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "study run failed",
			slog.String("run_id", summary.RunID),
			slog.String("error", err.Error()),
		)
		h.errorHandler.HandleError(w, r, apierrors.StudyRunError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "study run completed",
		slog.String("run_id", summary.RunID),
		slog.Int("artifacts", len(summary.Artifacts)),
	)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

// GetLatestRun handles GET /api/reports/latest
func (h *ReportHandler) GetLatestRun(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.service.LastRun()
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.NoStudyError("study run"))
		return
	}
	render.JSON(w, r, summary)
}

// GetResult handles GET /api/reports/result
func (h *ReportHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Result(r.Context())
	if err != nil {
		h.handleResultError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetSummary handles GET /api/reports/summary
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.SummaryHTML(r.Context())
	if err != nil {
		h.handleResultError(w, r, err)
		return
	}
	render.HTML(w, r, string(page))
}

func (h *ReportHandler) handleResultError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNoStudyResult) {
		h.errorHandler.HandleError(w, r, apierrors.NoStudyError("study result"))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// ListFiles handles GET /api/reports/files
func (h *ReportHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.List()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if list == nil {
		list = []files.FileInfo{}
	}
	render.JSON(w, r, map[string]interface{}{
		"files": list,
		"count": len(list),
	})
}

// DownloadFile handles GET /api/reports/files/{name}
func (h *ReportHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	info, err := h.catalog.Find(chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	f, err := os.Open(info.Path)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewStorageError("failed to open report file", err))
		return
	}
	defer f.Close()

	h.logger.DebugContext(r.Context(), "serving report file",
		slog.String("file", info.Name),
		slog.Int64("size", info.Size),
	)

	if info.Kind != "html" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name))
	}
	http.ServeContent(w, r, info.Name, info.ModTime, f)
}
