package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketstudy/internal/config"
	apierrors "marketstudy/internal/errors"
	"marketstudy/internal/files"
	"marketstudy/internal/financial"
	"marketstudy/internal/pipeline"
	"marketstudy/internal/services"
	"marketstudy/internal/shared/testutil"
	"marketstudy/pkg/contracts/domain"
)

// MockStudyService is a mock implementation of StudyServiceInterface
type MockStudyService struct {
	mock.Mock
}

func (m *MockStudyService) Run(ctx context.Context) (pipeline.Summary, error) {
	args := m.Called()
	return args.Get(0).(pipeline.Summary), args.Error(1)
}

func (m *MockStudyService) LastRun() (pipeline.Summary, bool) {
	args := m.Called()
	return args.Get(0).(pipeline.Summary), args.Bool(1)
}

func (m *MockStudyService) Result(ctx context.Context) (domain.StudyResult, error) {
	args := m.Called()
	return args.Get(0).(domain.StudyResult), args.Error(1)
}

func (m *MockStudyService) SummaryHTML(ctx context.Context) ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStudyService) Market() domain.MarketInfo {
	return m.Called().Get(0).(domain.MarketInfo)
}

func (m *MockStudyService) CompetitorAnalysis(ctx context.Context) (services.CompetitorReport, error) {
	args := m.Called()
	return args.Get(0).(services.CompetitorReport), args.Error(1)
}

func (m *MockStudyService) FinancialAnalysis(ctx context.Context) domain.FinancialAnalysis {
	return m.Called().Get(0).(domain.FinancialAnalysis)
}

func (m *MockStudyService) Sensitivity(ctx context.Context) domain.SensitivityResult {
	return m.Called().Get(0).(domain.SensitivityResult)
}

func (m *MockStudyService) WhatIf(ctx context.Context, o financial.Overrides) (domain.FinancialAnalysis, error) {
	args := m.Called(o)
	return args.Get(0).(domain.FinancialAnalysis), args.Error(1)
}

func newTestRouter(t *testing.T, svc StudyServiceInterface) chi.Router {
	t.Helper()
	return newTestRouterWithFiles(t, svc, t.TempDir())
}

func newTestRouterWithFiles(t *testing.T, svc StudyServiceInterface, reportsDir string) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)
	study := NewStudyHandler(svc, logger, eh)
	reports := NewReportHandler(svc, files.NewCatalog(reportsDir), logger, eh)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/market", study.GetMarket)
		r.Get("/competitors/analysis", study.GetCompetitorAnalysis)
		r.Mount("/financial", study.FinancialRoutes())
		r.Mount("/reports", reports.Routes())
	})
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStudyHandler_ReadViews(t *testing.T) {
	svc := new(MockStudyService)
	svc.On("Market").Return(domain.MarketInfo{Industry: "Event Rentals", Location: "Niort"})
	svc.On("CompetitorAnalysis").Return(services.CompetitorReport{
		Analysis: domain.CompetitorAnalysis{TotalCompetitors: 3},
	}, nil)
	svc.On("FinancialAnalysis").Return(domain.FinancialAnalysis{
		Revenue: domain.RevenueProjection{Year1Revenue: 120000},
	})
	svc.On("Sensitivity").Return(domain.SensitivityResult{BaseROI: 12.5})

	r := newTestRouter(t, svc)

	tests := []struct {
		name  string
		path  string
		key   string
		value interface{}
	}{
		{"market", "/api/market", "location", "Niort"},
		{"financial analysis", "/api/financial/analysis", "revenue_projections", nil},
		{"sensitivity", "/api/financial/sensitivity", "base_roi", 12.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			require.Contains(t, body, tt.key)
			if tt.value != nil {
				assert.Equal(t, tt.value, body[tt.key])
			}
		})
	}

	t.Run("competitor analysis", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/api/competitors/analysis", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var report services.CompetitorReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 3, report.Analysis.TotalCompetitors)
	})

	svc.AssertExpectations(t)
}

func TestStudyHandler_CompetitorAnalysisError(t *testing.T) {
	svc := new(MockStudyService)
	svc.On("CompetitorAnalysis").Return(services.CompetitorReport{},
		apierrors.NewParsingError("competitor workbook unreadable", errors.New("bad zip")))

	rec := serve(newTestRouter(t, svc), http.MethodGet, "/api/competitors/analysis", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apierrors.TypeDataCorrupted, decode(t, rec)["type"])
}

func TestStudyHandler_WhatIf(t *testing.T) {
	churn := 2.5
	svc := new(MockStudyService)
	svc.On("WhatIf", financial.Overrides{MonthlyChurnPct: &churn}).Return(domain.FinancialAnalysis{
		ROI: domain.ROIResult{ROI1Year: 42},
	}, nil)
	r := newTestRouter(t, svc)

	t.Run("valid overrides", func(t *testing.T) {
		rec := serve(r, http.MethodPost, "/api/financial/what-if", `{"monthly_churn_rate":2.5}`)
		require.Equal(t, http.StatusOK, rec.Code)
		roi := decode(t, rec)["roi_metrics"].(map[string]interface{})
		assert.Equal(t, 42.0, roi["roi_1_year"])
	})

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"malformed json", `{"monthly_churn_rate":`, http.StatusBadRequest, "INVALID_JSON"},
		{"out of range", `{"gross_margin":150}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unknown field", `{"discount":5}`, http.StatusBadRequest, "INVALID_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodPost, "/api/financial/what-if", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decode(t, rec)["error_code"])
		})
	}

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/financial/what-if", strings.NewReader("a=1"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	svc.AssertNumberOfCalls(t, "WhatIf", 1)
}

func TestStudyHandler_WhatIfRejectedByModel(t *testing.T) {
	svc := new(MockStudyService)
	svc.On("WhatIf", mock.Anything).Return(domain.FinancialAnalysis{},
		apierrors.NewAppValidationError("invalid overrides", errors.New("growth too low")))

	rec := serve(newTestRouter(t, svc), http.MethodPost, "/api/financial/what-if", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeValidation, decode(t, rec)["type"])
}

func TestReportHandler_RunStudy(t *testing.T) {
	summary := pipeline.Summary{
		RunID:  "run-1",
		Status: pipeline.RunStatusCompleted,
		Artifacts: []domain.Artifact{
			{Kind: domain.ArtifactWorkbook, Path: "reports/market_study.xlsx", Created: true},
		},
	}

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"completed", nil, http.StatusCreated, ""},
		{"already running", services.ErrStudyRunning, http.StatusConflict, "STUDY_RUNNING"},
		{"failed", errors.New("pipeline step render: disk full"), http.StatusInternalServerError, "STUDY_RUN_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStudyService)
			svc.On("Run").Return(summary, tt.err)

			rec := serve(newTestRouter(t, svc), http.MethodPost, "/api/reports", "")
			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode(t, rec)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, body["error_code"])
				return
			}
			assert.Equal(t, "run-1", body["run_id"])
			artifacts := body["artifacts"].([]interface{})
			require.Len(t, artifacts, 1)
			assert.Equal(t, "reports/market_study.xlsx", artifacts[0].(map[string]interface{})["path"])
		})
	}
}

func TestReportHandler_Summary(t *testing.T) {
	t.Run("html page", func(t *testing.T) {
		svc := new(MockStudyService)
		svc.On("SummaryHTML").Return([]byte("<html><body>Executive Summary</body></html>"), nil)

		rec := serve(newTestRouter(t, svc), http.MethodGet, "/api/reports/summary", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "Executive Summary")
	})

	t.Run("no study yet", func(t *testing.T) {
		svc := new(MockStudyService)
		svc.On("SummaryHTML").Return(nil, services.ErrNoStudyResult)

		rec := serve(newTestRouter(t, svc), http.MethodGet, "/api/reports/summary", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apierrors.TypeNotFound, decode(t, rec)["type"])
	})
}

func TestReportHandler_LatestAndResult(t *testing.T) {
	svc := new(MockStudyService)
	svc.On("LastRun").Return(pipeline.Summary{}, false).Once()
	svc.On("LastRun").Return(pipeline.Summary{RunID: "run-2", Status: pipeline.RunStatusFailed}, true)
	svc.On("Result").Return(domain.StudyResult{RunID: "run-1", BusinessName: "Location Festive Niort"}, nil)
	r := newTestRouter(t, svc)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/reports/latest", "").Code)

	rec := serve(r, http.MethodGet, "/api/reports/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "failed", decode(t, rec)["status"])

	rec = serve(r, http.MethodGet, "/api/reports/result", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Location Festive Niort", decode(t, rec)["business_name"])
}

func TestReportHandler_Files(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "market_study_report.xlsx"), []byte("xlsx"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "executive_summary.html"), []byte("<html></html>"), 0644))
	r := newTestRouterWithFiles(t, new(MockStudyService), dir)

	rec := serve(r, http.MethodGet, "/api/reports/files", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, decode(t, rec)["count"])

	tests := []struct {
		name        string
		file        string
		wantCode    int
		disposition bool
	}{
		{"workbook download", "market_study_report.xlsx", http.StatusOK, true},
		{"summary inline", "executive_summary.html", http.StatusOK, false},
		{"missing", "deck.pdf", http.StatusNotFound, false},
		{"hidden file", ".env", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodGet, "/api/reports/files/"+tt.file, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.disposition {
				assert.Contains(t, rec.Header().Get("Content-Disposition"), tt.file)
				assert.Equal(t, "xlsx", rec.Body.String())
			} else {
				assert.Empty(t, rec.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	paths := config.DefaultPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())
	h := NewHealthHandler(services.NewHealthService("1.0.0", "", paths, nil, nil), nil)

	rec := httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.0.0", decode(t, rec)["version"])

	rec = httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "degraded", decode(t, rec)["status"])

	rec = httptest.NewRecorder()
	h.LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))
	assert.Equal(t, "alive", decode(t, rec)["status"])
}
