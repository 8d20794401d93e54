package reports

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"marketstudy/internal/competitor"
	"marketstudy/internal/config"
	"marketstudy/internal/financial"
	"marketstudy/internal/market"
	"marketstudy/internal/shared/testutil"
	"marketstudy/pkg/contracts/domain"
)

func sampleResult(t *testing.T) domain.StudyResult {
	t.Helper()
	analysis := financial.NewDefaultModel(nil).Run(context.Background())
	records := testutil.SampleCompetitors()
	return domain.StudyResult{
		RunID:        "run-1",
		BusinessName: "Location Festive Niort",
		GeneratedAt:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Market:       market.DefaultInfo(),
		Competitors:  records,
		Competition:  competitor.Analyze(records),
		Financial:    analysis,
		Summary:      financial.ExecutiveSummary("Location Festive Niort", analysis),
	}
}

func TestWorkbookWriter_Write(t *testing.T) {
	result := sampleResult(t)
	path := filepath.Join(t.TempDir(), "reports", "market_study_report.xlsx")

	require.NoError(t, NewWorkbookWriter(nil).Write(context.Background(), path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CompetitorSheet, ProjectionSheet, SensitivitySheet}, f.GetSheetList())

	t.Run("summary", func(t *testing.T) {
		title, err := f.GetCellValue(SummarySheet, "A1")
		require.NoError(t, err)
		assert.Equal(t, "MARKET STUDY - LOCATION FESTIVE NIORT", title)

		rows, err := f.GetRows(SummarySheet)
		require.NoError(t, err)
		assert.Equal(t, []string{"Indicator", "Value"}, rows[1])
		assert.Equal(t, []string{"Competitors identified", "3"}, rows[2])
		assert.Equal(t, []string{"Year 1 investment", "€50,000"}, rows[3])
		assert.Equal(t, []string{"Break-even", "Not reached in year 1"}, rows[9])
	})

	t.Run("competitors", func(t *testing.T) {
		rows, err := f.GetRows(CompetitorSheet)
		require.NoError(t, err)
		assert.Equal(t, "LS Réception", rows[1][0])
		assert.Equal(t, "Leader", rows[1][4])
		assert.Equal(t, []string{"Total competitors", "3"}, rows[6])
		assert.Equal(t, []string{"Top strength: Good pricing", "2"}, rows[9])
		assert.Equal(t, []string{"Position: Leader", "2"}, rows[12])
	})

	t.Run("projections", func(t *testing.T) {
		header, err := f.GetCellValue(ProjectionSheet, "C2")
		require.NoError(t, err)
		assert.Equal(t, "Revenue (€)", header)

		month, err := f.GetCellValue(ProjectionSheet, "A3")
		require.NoError(t, err)
		assert.Equal(t, "Month 1", month)

		net, err := f.GetCellValue(ProjectionSheet, "F3")
		require.NoError(t, err)
		assert.Equal(t, "-32975", net)

		last, err := f.GetCellValue(ProjectionSheet, "A14")
		require.NoError(t, err)
		assert.Equal(t, "Month 12", last)
	})

	t.Run("sensitivity", func(t *testing.T) {
		rows, err := f.GetRows(SensitivitySheet)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(rows), 8)
		assert.Equal(t, "CAC_20", rows[2][1])
		assert.Equal(t, "Churn_7%", rows[7][1])
		assert.Equal(t, rows[1][3], rows[2][3])
	})
}

func TestWorkbookWriter_EmptyCompetitors(t *testing.T) {
	result := sampleResult(t)
	result.Competitors = nil
	result.Competition = competitor.Analyze(nil)

	f, err := NewWorkbookWriter(nil).Build(result)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CompetitorSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total competitors", "0"}, rows[3])
}

func TestWorkbookWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	err := NewWorkbookWriter(nil).Write(ctx, path, sampleResult(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestSlides(t *testing.T) {
	result := sampleResult(t)
	slides := Slides(result)

	require.Len(t, slides, 6)
	assert.Equal(t, "Market Study - Location Festive Niort", slides[0].Title)
	assert.Equal(t, "Competitive Landscape", slides[2].Title)
	assert.Equal(t, []string{
		"LS Réception",
		"Organi-Sons",
		"Sonovolante",
		"Most cited strengths: Good pricing, Fast delivery, Local presence",
	}, slides[2].Bullets)
	assert.Contains(t, slides[3].Bullets, "Year 1 investment: €50,000")
	assert.True(t, slides[5].Numbered)

	t.Run("many competitors are summarised", func(t *testing.T) {
		result.Competitors = nil
		for _, name := range competitor.KnownCompetitors {
			result.Competitors = append(result.Competitors, domain.CompetitorRecord{Name: name})
		}
		result.Competition = competitor.Analyze(result.Competitors)

		bullets := Slides(result)[2].Bullets
		require.Len(t, bullets, landscapeCompetitors+1)
		assert.Equal(t, "+ 8 other local players", bullets[landscapeCompetitors])
	})

	t.Run("no competitors", func(t *testing.T) {
		result.Competitors = nil
		assert.Equal(t, []string{"No competitor research recorded yet"}, Slides(result)[2].Bullets)
	})
}

func TestDeckWriter_Write(t *testing.T) {
	result := sampleResult(t)

	pdf, err := NewDeckWriter(nil).Build(result)
	require.NoError(t, err)
	assert.Equal(t, 6, pdf.PageCount())
	w, h := pdf.GetPageSize()
	assert.InDelta(t, slideWidth, w, 0.01)
	assert.InDelta(t, slideHeight, h, 0.01)

	path := filepath.Join(t.TempDir(), "reports", "deck.pdf")
	require.NoError(t, NewDeckWriter(nil).Write(context.Background(), path, result))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}

func TestSummaryRenderer(t *testing.T) {
	r := NewSummaryRenderer(nil)

	fragment, err := r.Fragment("## Title\n\n- **bold** item\n")
	require.NoError(t, err)
	assert.Contains(t, string(fragment), "<h2>Title</h2>")
	assert.Contains(t, string(fragment), "<strong>bold</strong>")

	result := sampleResult(t)
	page, err := r.Page(result)
	require.NoError(t, err)
	html := string(page)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Market Study - Location Festive Niort</title>")
	assert.Contains(t, html, "<h2>Executive Summary</h2>")
	assert.Contains(t, html, "€50,000")

	path := filepath.Join(t.TempDir(), "summary.html")
	require.NoError(t, r.Write(context.Background(), path, result))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, page, raw)
}

type fakeWriter struct {
	err   error
	calls *atomic.Int32
}

func (w fakeWriter) Write(ctx context.Context, _ string, _ domain.StudyResult) error {
	w.calls.Add(1)
	return w.err
}

func TestGenerator_GenerateAll(t *testing.T) {
	paths := config.DefaultPaths(t.TempDir())
	logger, logs := testutil.NewTestLogger(t)

	artifacts, err := NewGenerator(paths, logger).GenerateAll(context.Background(), sampleResult(t))
	require.NoError(t, err)

	require.Len(t, artifacts, 3)
	assert.Equal(t, domain.Artifact{Kind: domain.ArtifactWorkbook, Path: paths.Workbook, Created: true}, artifacts[0])
	assert.Equal(t, domain.ArtifactDeck, artifacts[1].Kind)
	assert.Equal(t, domain.ArtifactSummaryHTML, artifacts[2].Kind)
	for _, a := range artifacts {
		assert.FileExists(t, a.Path)
	}
	assert.True(t, logs.ContainsMessage("reports generated"))
	testutil.AssertNoErrors(t, logs)
}

func TestGenerator_FirstErrorWins(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("render failed")
	g := &Generator{
		targets: []target{
			{domain.ArtifactWorkbook, "a", fakeWriter{calls: &calls}},
			{domain.ArtifactDeck, "b", fakeWriter{err: boom, calls: &calls}},
			{domain.ArtifactSummaryHTML, "c", fakeWriter{calls: &calls}},
		},
		logger: slog.New(testutil.NewBufferedSlogHandler(nil)),
	}

	artifacts, err := g.GenerateAll(context.Background(), domain.StudyResult{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, artifacts)
	assert.Equal(t, int32(3), calls.Load())
}
