package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketstudy/internal/config"
	"marketstudy/internal/errors"
	"marketstudy/internal/financial"
	"marketstudy/internal/shared/testutil"
)

// newTestApplication builds an application rooted in a temp directory
func newTestApplication(t *testing.T, mutate func(*config.Config)) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Observability.MetricExporter = "none"
	cfg.Security.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)

	logger, _ := testutil.NewTestLogger(t)
	app, err := NewApplicationWithConfig(cfg, paths, logger)
	require.NoError(t, err)
	return app
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestApplication_StudyWorkflow(t *testing.T) {
	app := newTestApplication(t, nil)
	srv := httptest.NewServer(app.Router)
	defer srv.Close()

	t.Run("summary before any run", func(t *testing.T) {
		resp, _ := get(t, srv, "/api/reports/summary")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "json")
	})

	t.Run("run study", func(t *testing.T) {
		resp, body := post(t, srv, "/api/reports", "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

		var summary struct {
			RunID     string `json:"run_id"`
			Status    string `json:"status"`
			Artifacts []struct {
				Kind string `json:"kind"`
				Path string `json:"path"`
			} `json:"artifacts"`
		}
		require.NoError(t, json.Unmarshal(body, &summary))
		assert.Equal(t, "completed", summary.Status)
		require.Len(t, summary.Artifacts, 9)
		for _, a := range summary.Artifacts {
			assert.FileExists(t, a.Path, a.Kind)
		}
	})

	t.Run("summary after run", func(t *testing.T) {
		resp, body := get(t, srv, "/api/reports/summary")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, string(body), config.DefaultBusinessName)
	})

	t.Run("financial views", func(t *testing.T) {
		resp, body := get(t, srv, "/api/financial/analysis")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var analysis map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &analysis))
		investment := analysis["investment_requirements"].(map[string]interface{})
		assert.Equal(t, 50000.0, investment["total_year_1_investment"])

		resp, _ = get(t, srv, "/api/financial/sensitivity")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("what-if validation", func(t *testing.T) {
		resp, _ := post(t, srv, "/api/financial/what-if", `{"monthly_churn_rate":-3}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = post(t, srv, "/api/financial/what-if", `{"monthly_churn_rate":3}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestApplication_Routes(t *testing.T) {
	app := newTestApplication(t, nil)
	srv := httptest.NewServer(app.Router)
	defer srv.Close()

	tests := []struct {
		name     string
		path     string
		wantCode int
		contains string
	}{
		{"health", "/api/health", http.StatusOK, `"status"`},
		{"liveness", "/api/health/live", http.StatusOK, `"alive"`},
		{"trailing slash", "/api/market/", http.StatusOK, `"target_market"`},
		{"version", "/api/version", http.StatusOK, config.AppVersion},
		{"market", "/api/market", http.StatusOK, `"target_market"`},
		{"competitors", "/api/competitors/analysis", http.StatusOK, `"total_competitors"`},
		{"unknown route", "/api/nope", http.StatusNotFound, errors.TypeNotFound},
		{"no metrics without exporter", "/metrics", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Contains(t, string(body), tt.contains)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
			}
		})
	}
}

func TestApplication_Metrics(t *testing.T) {
	app := newTestApplication(t, func(c *config.Config) {
		c.Observability.MetricExporter = "prometheus"
	})
	t.Cleanup(func() { _ = app.OTelProviders.Shutdown(context.Background()) })
	require.NotNil(t, app.OTelProviders.PrometheusHTTP)

	srv := httptest.NewServer(app.Router)
	defer srv.Close()

	get(t, srv, "/api/market")
	resp, body := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "# HELP")
}

func TestApplication_RateLimit(t *testing.T) {
	app := newTestApplication(t, func(c *config.Config) {
		c.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	})
	srv := httptest.NewServer(app.Router)
	defer srv.Close()

	first, _ := get(t, srv, "/api/market")
	second, _ := get(t, srv, "/api/market")
	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func TestBuildStudyConfig(t *testing.T) {
	dir := t.TempDir()
	paths := config.DefaultPaths(dir)

	t.Run("defaults", func(t *testing.T) {
		cfg := config.Default()
		sc, err := BuildStudyConfig(cfg, paths, nil)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultBusinessName, sc.BusinessName)
		assert.Equal(t, financial.DefaultAssumptions().UnitEconomics, sc.Model.Assumptions().UnitEconomics)
		assert.NotEmpty(t, sc.Market.TargetMarket)
	})

	t.Run("assumptions file", func(t *testing.T) {
		file := filepath.Join(dir, "assumptions.yaml")
		require.NoError(t, os.WriteFile(file, []byte("unit_economics:\n  avg_transaction_value: 50\n  gross_margin: 70\n  customer_acquisition_cost: 40\n  monthly_churn_rate: 5\n"), 0644))

		cfg := config.Default()
		cfg.Study.AssumptionsFile = file
		sc, err := BuildStudyConfig(cfg, paths, nil)
		require.NoError(t, err)
		assert.Equal(t, 40.0, sc.Model.Assumptions().UnitEconomics.CustomerAcquisitionCost)
	})

	t.Run("missing assumptions file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Study.AssumptionsFile = filepath.Join(dir, "missing.yaml")
		_, err := BuildStudyConfig(cfg, paths, nil)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
	})
}

func TestNewApplication_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	yaml := "paths:\n  base_dir: " + dir + "\nlogging:\n  output: console\n  level: error\nobservability:\n  metric_exporter: none\n"
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0644))

	app, err := NewApplication(file)
	require.NoError(t, err)
	assert.Equal(t, dir, app.Paths.BaseDir)
	assert.DirExists(t, app.Paths.ReportsDir)
	assert.Equal(t, ":8080", app.Server.Addr)

	// A server that never started shuts down cleanly.
	require.NoError(t, app.Stop(context.Background()))
}
