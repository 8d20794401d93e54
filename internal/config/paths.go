package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every file the study reads or writes.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string

	// Inputs and seeded data
	CompetitorTemplate string
	CompetitorJSON     string
	MarketOverview     string
	MarketJSON         string

	// Outputs
	AnalysisJSON string
	CashFlowCSV  string
	Workbook     string
	Deck         string
	SummaryHTML  string
}

// NewPaths lays out the study files under baseDir. Relative directory names
// are joined to baseDir, absolute ones are used as given.
func NewPaths(baseDir, dataDir, reportsDir, logsDir string) *Paths {
	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(baseDir, dir)
	}

	data := resolve(dataDir)
	reports := resolve(reportsDir)

	return &Paths{
		BaseDir:    baseDir,
		DataDir:    data,
		ReportsDir: reports,
		LogsDir:    resolve(logsDir),

		CompetitorTemplate: filepath.Join(data, CompetitorTemplateFile),
		CompetitorJSON:     filepath.Join(data, CompetitorDataFile),
		MarketOverview:     filepath.Join(data, MarketOverviewFile),
		MarketJSON:         filepath.Join(data, MarketDataFile),

		AnalysisJSON: filepath.Join(reports, AnalysisResultsFile),
		CashFlowCSV:  filepath.Join(reports, CashFlowFile),
		Workbook:     filepath.Join(reports, WorkbookFile),
		Deck:         filepath.Join(reports, DeckFile),
		SummaryHTML:  filepath.Join(reports, SummaryFile),
	}
}

// DefaultPaths lays out the default directories under baseDir.
func DefaultPaths(baseDir string) *Paths {
	return NewPaths(baseDir, DefaultDataDir, DefaultReportsDir, DefaultLogsDir)
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// ReportPath returns the path for a file in the reports directory
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath returns the path for a log file
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved layout for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("inputs",
			slog.String("competitor_template", p.CompetitorTemplate),
			slog.Bool("competitor_template_exists", FileExists(p.CompetitorTemplate)),
			slog.String("market_overview", p.MarketOverview),
		),
		slog.Group("reports",
			slog.String("analysis", p.AnalysisJSON),
			slog.String("workbook", p.Workbook),
			slog.String("deck", p.Deck),
		))
}
