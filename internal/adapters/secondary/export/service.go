// Package export generates downloadable deck artifacts from export payloads.
package export

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/transudeck/deckd/internal/domain/entities"
	"github.com/transudeck/deckd/internal/domain/ports"
)

// invalidFilenameChars are stripped from artifact filenames.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Service implements ports.Exporter: it renders an ordered export payload
// into a self-contained HTML deck written to the output directory.
type Service struct {
	outputDir string
	theme     string
	renderer  ports.MarkdownRenderer
	template  *template.Template
	now       func() time.Time
}

// NewService creates an exporter writing artifacts under outputDir
func NewService(outputDir, theme string, renderer ports.MarkdownRenderer) (*Service, error) {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tmpl, err := template.New("deck").Parse(deckTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing deck template: %w", err)
	}

	return &Service{
		outputDir: outputDir,
		theme:     theme,
		renderer:  renderer,
		template:  tmpl,
		now:       time.Now,
	}, nil
}

// renderedSlide is one slide prepared for the artifact template
type renderedSlide struct {
	Order int
	HTML  template.HTML
}

// Generate writes the artifact and returns its descriptor
func (s *Service) Generate(ctx context.Context, slides []entities.SlideData) (*ports.ExportResult, error) {
	if len(slides) == 0 {
		return nil, &entities.EmptyDeckError{Op: "generate artifact"}
	}

	rendered := make([]renderedSlide, 0, len(slides))
	for _, slide := range slides {
		html, err := s.renderer.Render(slide.Content)
		if err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", slide.Order, err)
		}
		rendered = append(rendered, renderedSlide{
			Order: slide.Order,
			// Renderer output is already sanitized.
			HTML: template.HTML(html), // #nosec G203
		})
	}

	generatedAt := s.now()
	filename := SanitizeFilename(fmt.Sprintf("presentation_%s.html", generatedAt.Format("20060102_150405")))
	path := filepath.Join(s.outputDir, filename)

	file, err := os.Create(path) // #nosec G304 - path is outputDir plus a sanitized name
	if err != nil {
		return nil, fmt.Errorf("creating artifact file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data := struct {
		Theme       string
		Slides      []renderedSlide
		SlideCount  int
		GeneratedAt string
	}{
		Theme:       s.theme,
		Slides:      rendered,
		SlideCount:  len(rendered),
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
	}

	if err := s.template.Execute(file, data); err != nil {
		return nil, fmt.Errorf("executing deck template: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("checking artifact: %w", err)
	}

	return &ports.ExportResult{
		Filename:    filename,
		Path:        path,
		FileSize:    info.Size(),
		SlideCount:  len(rendered),
		GeneratedAt: generatedAt,
	}, nil
}

// ArtifactPath resolves a previously generated artifact by filename
func (s *Service) ArtifactPath(filename string) (string, error) {
	clean := filepath.Base(filepath.Clean(filename))
	if clean != filename || strings.Contains(filename, "..") {
		return "", fmt.Errorf("invalid artifact name: %s", filename)
	}

	path := filepath.Join(s.outputDir, clean)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact not found: %s", filename)
	}

	return path, nil
}

// SanitizeFilename removes characters that are invalid in filenames and
// replaces spaces with underscores.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = strings.ReplaceAll(filename, " ", "_")

	if len(filename) > 200 {
		filename = filename[:200]
	}

	return filename
}

// deckTemplate is the self-contained artifact layout: one section per slide,
// printable one slide per page.
const deckTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Presentation</title>
    <meta name="generator" content="deckd">
    <meta name="export-date" content="{{.GeneratedAt}}">
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
            background: #f5f5f5;
            color: #1a1a2e;
        }
        .slide {
            width: 960px;
            min-height: 540px;
            margin: 2rem auto;
            padding: 3rem 4rem;
            background: #fff;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
        }
        .slide h1, .slide h2 { margin-bottom: 1rem; }
        .slide ul, .slide ol { margin: 0.5rem 0 0.5rem 1.5rem; }
        .slide p { margin: 0.5rem 0; }
        .slide-number {
            text-align: right;
            font-size: 0.8rem;
            color: #888;
        }
        @media print {
            body { background: #fff; }
            .slide {
                page-break-after: always;
                margin: 0;
                border-radius: 0;
                box-shadow: none;
            }
        }
    </style>
</head>
<body class="theme-{{.Theme}}">
{{range .Slides}}    <section class="slide">
        {{.HTML}}
        <div class="slide-number">{{.Order}}</div>
    </section>
{{end}}</body>
</html>
`
