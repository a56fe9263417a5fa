package services

import (
	"html"

	"github.com/transudeck/deckd/internal/domain/ports"
)

// PlaceholderPreview is rendered when there is no selected slide to project.
const PlaceholderPreview = "<p class=\"placeholder\">No slide selected</p>"

// ProjectorService turns slide markdown into renderable HTML. Render failures
// fall back to a verbatim plain-text rendering so a preview is always
// produced.
type ProjectorService struct {
	renderer ports.MarkdownRenderer
}

// NewProjectorService creates a projector backed by the given markdown
// renderer. A nil renderer means plain-text only.
func NewProjectorService(renderer ports.MarkdownRenderer) *ProjectorService {
	return &ProjectorService{renderer: renderer}
}

// Project returns the renderable representation of content
func (s *ProjectorService) Project(content string) string {
	if s.renderer == nil {
		return plainText(content)
	}

	rendered, err := s.renderer.Render(content)
	if err != nil {
		return plainText(content)
	}

	return rendered
}

// plainText is the verbatim fallback rendering
func plainText(content string) string {
	return "<pre>" + html.EscapeString(content) + "</pre>"
}
