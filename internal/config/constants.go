package config

import (
	"time"

	"marketstudy/pkg/contracts"
)

// Application constants
const (
	// Application Info
	AppName    = "Market Study"
	AppVersion = contracts.Version

	DefaultBusinessName = "Location Festive Niort"

	// Server
	DefaultPort           = 8080
	DefaultRequestTimeout = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 10 // requests per second
	DefaultBurstSize = 20

	// Directories (relative to the base directory)
	DefaultDataDir    = "data"
	DefaultReportsDir = "reports"
	DefaultLogsDir    = "logs"
	DefaultLogFile    = "marketstudy.log"
)

// Well-known file names.
const (
	CompetitorTemplateFile = "competitor_research.xlsx"
	CompetitorDataFile     = "competitor_data.json"
	MarketOverviewFile     = "market_overview.xlsx"
	MarketDataFile         = "market_data.json"
	AnalysisResultsFile    = "analysis_results.json"
	CashFlowFile           = "monthly_cash_flow.csv"
	WorkbookFile           = "market_study_report.xlsx"
	DeckFile               = "market_study_presentation.pdf"
	SummaryFile            = "executive_summary.html"
)
