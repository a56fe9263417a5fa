// Package builders provides fluent test fixtures for deck entities.
package builders

import (
	"fmt"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{
			ID:      "slide-1",
			Content: "## Test Slide\n\n- Point 1\n- Point 2",
			Order:   0,
		},
	}
}

// WithID sets the slide id
func (b *SlideBuilder) WithID(id string) *SlideBuilder {
	b.slide.ID = id
	return b
}

// WithContent sets the slide content
func (b *SlideBuilder) WithContent(content string) *SlideBuilder {
	b.slide.Content = content
	return b
}

// WithOrder sets the slide order
func (b *SlideBuilder) WithOrder(order int) *SlideBuilder {
	b.slide.Order = order
	return b
}

// Build returns the constructed slide
func (b *SlideBuilder) Build() entities.Slide {
	b.slide.Title = b.slide.ExtractTitle()
	return b.slide
}

// Slides builds n distinct slides with ids slide-0..slide-n-1 and contiguous
// orders, the shape the deck store maintains.
func Slides(n int) []entities.Slide {
	slides := make([]entities.Slide, 0, n)
	for i := 0; i < n; i++ {
		slides = append(slides, NewSlideBuilder().
			WithID(fmt.Sprintf("slide-%d", i)).
			WithContent(fmt.Sprintf("## Slide %d\n\nBody %d", i, i)).
			WithOrder(i).
			Build())
	}
	return slides
}
