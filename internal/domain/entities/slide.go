package entities

import (
	"errors"
	"strconv"
	"strings"
)

// Slide represents a single slide in the deck
type Slide struct {
	// ID is a unique identifier for the slide, stable across reorders and edits
	ID string `json:"id"`

	// Content is the raw markdown content of the slide
	Content string `json:"content"`

	// Order is the slide position in the deck (0-based, always equal to its
	// index in the deck sequence)
	Order int `json:"order"`

	// Title is extracted from the first heading or generated
	Title string `json:"title,omitempty"`
}

// Validate ensures the slide has valid content
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Content) == "" {
		return errors.New("slide content cannot be empty")
	}

	if s.Order < 0 {
		return errors.New("slide order must be non-negative")
	}

	return nil
}

// ExtractTitle attempts to extract the slide title from content
func (s *Slide) ExtractTitle() string {
	for _, line := range strings.Split(s.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			return strings.TrimPrefix(trimmed, "## ")
		}
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimPrefix(trimmed, "# ")
		}
	}

	// If no heading found, generate a title
	return "Slide " + strconv.Itoa(s.Order+1)
}

// SlideData is the wire representation of a slide in the export payload
type SlideData struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}
