package reports

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	apperrors "marketstudy/internal/errors"
	"marketstudy/pkg/contracts/domain"
)

var summaryPage = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 48rem; margin: 2rem auto; color: #212121; }
h2 { color: #1f4e79; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`))

// SummaryRenderer turns the markdown executive summary into HTML.
type SummaryRenderer struct {
	md     goldmark.Markdown
	logger *slog.Logger
}

// NewSummaryRenderer creates a renderer with GitHub-flavoured tables.
func NewSummaryRenderer(logger *slog.Logger) *SummaryRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryRenderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger: logger.With(slog.String("component", "summary_renderer")),
	}
}

// Fragment converts markdown to an HTML fragment.
func (r *SummaryRenderer) Fragment(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return nil, apperrors.NewRenderError("convert summary markdown", err)
	}
	return buf.Bytes(), nil
}

// Page renders the executive summary of result as a standalone HTML page.
func (r *SummaryRenderer) Page(result domain.StudyResult) ([]byte, error) {
	body, err := r.Fragment(result.Summary)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = summaryPage.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: "Market Study - " + result.BusinessName,
		Body:  template.HTML(body),
	})
	if err != nil {
		return nil, apperrors.NewRenderError("render summary page", err)
	}
	return buf.Bytes(), nil
}

// Write saves the summary page to path.
func (r *SummaryRenderer) Write(ctx context.Context, path string, result domain.StudyResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page, err := r.Page(result)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create reports directory", err)
	}
	if err := os.WriteFile(path, page, 0644); err != nil {
		return apperrors.NewStorageError("write summary", err).WithContext("path", path)
	}

	r.logger.InfoContext(ctx, "summary written", slog.String("path", path), slog.Int("bytes", len(page)))
	return nil
}
