package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	apperrors "marketstudy/internal/errors"
	"marketstudy/internal/financial"
	"marketstudy/pkg/contracts/domain"
)

// Slide geometry in inches, 16:9.
const (
	slideWidth  = 13.33
	slideHeight = 7.5
	slideMargin = 0.8
)

// landscapeCompetitors is how many competitors the landscape slide names
// before summarising the rest.
const landscapeCompetitors = 4

// Differentiators are the advantages of the business over incumbents.
var Differentiators = []string{
	"Direct purchasing from manufacturers in China",
	"Lower costs than traditional suppliers",
	"Established relationships with local school parent associations",
	"Flexible sourcing",
}

// Recommendations are the strategic actions closing the deck.
var Recommendations = []string{
	"Build a dedicated offer for school parent associations",
	"Create complete event packages",
	"Lead with the economical and local angle",
	"Invest in a stronger digital presence",
}

// Slide is one page of the deck.
type Slide struct {
	Title    string
	Subtitle string
	Lead     string
	Bullets  []string
	Numbered bool
}

// DeckWriter renders the study as a landscape slide deck in PDF.
type DeckWriter struct {
	logger *slog.Logger
}

// NewDeckWriter creates a deck writer.
func NewDeckWriter(logger *slog.Logger) *DeckWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckWriter{logger: logger.With(slog.String("component", "deck_writer"))}
}

// Slides returns the deck content for result.
func Slides(result domain.StudyResult) []Slide {
	info := result.Market
	fa := result.Financial

	landscape := Slide{Title: "Competitive Landscape", Lead: "Main competitors identified:"}
	names := make([]string, 0, len(result.Competitors))
	for _, c := range result.Competitors {
		names = append(names, c.Name)
	}
	if len(names) == 0 {
		landscape.Bullets = []string{"No competitor research recorded yet"}
	} else {
		shown := names
		if len(shown) > landscapeCompetitors {
			shown = names[:landscapeCompetitors]
		}
		landscape.Bullets = append(landscape.Bullets, shown...)
		if rest := len(names) - len(shown); rest > 0 {
			landscape.Bullets = append(landscape.Bullets, fmt.Sprintf("+ %d other local players", rest))
		}
		if len(result.Competition.TopStrengths) > 0 {
			top := make([]string, 0, len(result.Competition.TopStrengths))
			for _, tc := range result.Competition.TopStrengths {
				top = append(top, tc.Text)
			}
			landscape.Bullets = append(landscape.Bullets, "Most cited strengths: "+strings.Join(top, ", "))
		}
	}

	return []Slide{
		{
			Title:    "Market Study - " + result.BusinessName,
			Subtitle: fmt.Sprintf("Opportunities in %s in %s", strings.ToLower(info.Industry), info.Location),
		},
		{
			Title: "Market Overview",
			Bullets: []string{
				"Industry: " + info.Industry,
				"Location: " + info.Location,
				"Target segments: " + strings.Join(info.TargetMarket, ", "),
				"Trend: " + firstOr(info.MarketTrends, "n/a"),
			},
		},
		landscape,
		{
			Title: "Financial Highlights",
			Bullets: []string{
				"Year 1 investment: " + financial.FormatEuro(fa.Investment.TotalYear1Investment),
				"Year 1 revenue: " + financial.FormatEuro(fa.Revenue.Year1Revenue),
				fmt.Sprintf("ROI: %.1f%% after 1 year, %.1f%% after 3 years", fa.ROI.ROI1Year, fa.ROI.ROI3Years),
				"NPV at 10%: " + financial.FormatEuro(fa.ROI.NPV),
				"Break-even: " + breakEvenText(fa.ROI.BreakEvenMonth),
				fmt.Sprintf("LTV:CAC %.1f:1", fa.UnitEconomics.LTVToCACRatio),
			},
		},
		{
			Title:   "Differentiation",
			Lead:    "Competitive advantages of " + result.BusinessName + ":",
			Bullets: Differentiators,
		},
		{
			Title:    "Strategic Recommendations",
			Lead:     "Opportunities identified:",
			Bullets:  Recommendations,
			Numbered: true,
		},
	}
}

// Build lays out the slides on a PDF document.
func (d *DeckWriter) Build(result domain.StudyResult) (*fpdf.Fpdf, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: slideHeight, Ht: slideWidth},
	})
	pdf.SetMargins(slideMargin, slideMargin, slideMargin)
	pdf.SetAutoPageBreak(false, slideMargin)
	pdf.SetTitle("Market Study - "+result.BusinessName, true)

	// Core fonts are cp1252; translate accents and the euro sign.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, s := range Slides(result) {
		pdf.AddPage()
		if i == 0 {
			titleSlide(pdf, tr, s)
		} else {
			contentSlide(pdf, tr, s)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, apperrors.NewRenderError("layout deck", err)
	}
	return pdf, nil
}

// Write renders the deck to path.
func (d *DeckWriter) Write(ctx context.Context, path string, result domain.StudyResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf, err := d.Build(result)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create reports directory", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return apperrors.NewRenderError("write deck", err).WithContext("path", path)
	}

	d.logger.InfoContext(ctx, "deck written",
		slog.String("path", path),
		slog.Int("slides", pdf.PageCount()),
	)
	return nil
}

func titleSlide(pdf *fpdf.Fpdf, tr func(string) string, s Slide) {
	width := slideWidth - 2*slideMargin

	pdf.SetFillColor(31, 78, 121)
	pdf.Rect(0, 0, slideWidth, slideHeight, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 36)
	pdf.SetXY(slideMargin, 2.6)
	pdf.MultiCell(width, 0.6, tr(s.Title), "", "C", false)

	pdf.SetFont("Helvetica", "", 20)
	pdf.SetXY(slideMargin, 4.0)
	pdf.MultiCell(width, 0.4, tr(s.Subtitle), "", "C", false)
}

func contentSlide(pdf *fpdf.Fpdf, tr func(string) string, s Slide) {
	width := slideWidth - 2*slideMargin

	pdf.SetFillColor(31, 78, 121)
	pdf.Rect(0, 0, slideWidth, 1.3, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetXY(slideMargin, 0.35)
	pdf.CellFormat(width, 0.6, tr(s.Title), "", 0, "L", false, 0, "")

	pdf.SetTextColor(33, 33, 33)
	pdf.SetXY(slideMargin, 1.8)

	if s.Lead != "" {
		pdf.SetFont("Helvetica", "B", 20)
		pdf.MultiCell(width, 0.45, tr(s.Lead), "", "L", false)
		pdf.Ln(0.15)
	}

	pdf.SetFont("Helvetica", "", 18)
	for i, b := range s.Bullets {
		marker := "•"
		if s.Numbered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		pdf.SetX(slideMargin + 0.3)
		pdf.MultiCell(width-0.3, 0.42, tr(marker+" "+b), "", "L", false)
		pdf.Ln(0.1)
	}
}

func firstOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}
