package domain

import "time"

// StudyResult is everything a report needs from one study run.
type StudyResult struct {
	FormatVersion string             `json:"format_version"`
	RunID         string             `json:"run_id"`
	BusinessName  string             `json:"business_name"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Market        MarketInfo         `json:"market"`
	Competitors   []CompetitorRecord `json:"competitors"`
	Competition   CompetitorAnalysis `json:"competitor_analysis"`
	Financial     FinancialAnalysis  `json:"financial_analysis"`
	Summary       string             `json:"executive_summary"`
}

// ArtifactKind names a generated file type.
type ArtifactKind string

const (
	ArtifactCompetitorTemplate ArtifactKind = "competitor_template"
	ArtifactCompetitorData     ArtifactKind = "competitor_data"
	ArtifactMarketOverview     ArtifactKind = "market_overview"
	ArtifactMarketData         ArtifactKind = "market_data"
	ArtifactAnalysisJSON       ArtifactKind = "analysis_json"
	ArtifactCashFlowCSV        ArtifactKind = "cash_flow_csv"
	ArtifactWorkbook           ArtifactKind = "workbook"
	ArtifactDeck               ArtifactKind = "deck"
	ArtifactSummaryHTML        ArtifactKind = "summary_html"
)

// Artifact is a file produced by a study run.
type Artifact struct {
	Kind    ArtifactKind `json:"kind"`
	Path    string       `json:"path"`
	Created bool         `json:"created"`
}
