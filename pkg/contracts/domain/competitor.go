package domain

// Competitor table column names as they appear in research spreadsheets.
const (
	ColumnCompetitor     = "Competitor"
	ColumnWebsite        = "Website"
	ColumnServices       = "Services"
	ColumnPricingRange   = "Pricing Range"
	ColumnSpecialization = "Specialization"
	ColumnStrengths      = "Strengths"
	ColumnWeaknesses     = "Weaknesses"
	ColumnMarketPosition = "Market Position"
)

// CompetitorColumns lists the research template columns in display order.
var CompetitorColumns = []string{
	ColumnCompetitor,
	ColumnWebsite,
	ColumnServices,
	ColumnPricingRange,
	ColumnSpecialization,
	ColumnStrengths,
	ColumnWeaknesses,
	ColumnMarketPosition,
}

// CompetitorRecord is one row of the competitor research table.
// List-valued fields hold comma-separated text and may be blank.
type CompetitorRecord struct {
	Name           string `json:"competitor"`
	Website        string `json:"website,omitempty"`
	Services       string `json:"services,omitempty"`
	PricingRange   string `json:"pricing_range,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Strengths      string `json:"strengths,omitempty"`
	Weaknesses     string `json:"weaknesses,omitempty"`
	MarketPosition string `json:"market_position,omitempty"`
}

// Field returns the value stored under a spreadsheet column name.
// Unknown columns yield an empty string.
func (r CompetitorRecord) Field(column string) string {
	switch column {
	case ColumnCompetitor:
		return r.Name
	case ColumnWebsite:
		return r.Website
	case ColumnServices:
		return r.Services
	case ColumnPricingRange:
		return r.PricingRange
	case ColumnSpecialization:
		return r.Specialization
	case ColumnStrengths:
		return r.Strengths
	case ColumnWeaknesses:
		return r.Weaknesses
	case ColumnMarketPosition:
		return r.MarketPosition
	default:
		return ""
	}
}

// Row returns the record as cell values ordered like CompetitorColumns.
func (r CompetitorRecord) Row() []string {
	row := make([]string, len(CompetitorColumns))
	for i, col := range CompetitorColumns {
		row[i] = r.Field(col)
	}
	return row
}

// TokenCount is a tallied list entry, e.g. a strength and how many
// competitors cite it.
type TokenCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// CompetitorAnalysis holds aggregate statistics over a competitor table.
type CompetitorAnalysis struct {
	TotalCompetitors           int            `json:"total_competitors"`
	AvgStrengthsPerCompetitor  float64        `json:"avg_strengths_per_competitor"`
	AvgWeaknessesPerCompetitor float64        `json:"avg_weaknesses_per_competitor"`
	MarketPositionDistribution map[string]int `json:"market_position_distribution"`
	TopStrengths               []TokenCount   `json:"top_strengths"`
	SpecializationFrequency    []TokenCount   `json:"specialization_frequency"`
}

// IsEmpty reports whether the analysis was computed over no records.
func (a CompetitorAnalysis) IsEmpty() bool {
	return a.TotalCompetitors == 0
}
