package domain

// MarketInfo is the static market overview.
type MarketInfo struct {
	Industry           string   `json:"industry"`
	Location           string   `json:"location"`
	TargetMarket       []string `json:"target_market"`
	SeasonalityFactors []string `json:"seasonality_factors"`
	MarketTrends       []string `json:"market_trends"`
}

// SegmentColumns are the research columns of the target segment sheet.
var SegmentColumns = []string{
	"Segment",
	"Estimated Market Share",
	"Growth Potential",
	"Marketing Approach",
}
