package ports

import (
	"context"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// DeckService is the single owner of deck state. All mutation goes through
// it; every operation re-establishes the deck invariants before returning.
type DeckService interface {
	// Snapshot returns a copy of the current deck state.
	Snapshot() entities.Deck

	// Append adds slides at the end and returns the number appended.
	Append(slides []entities.Slide) int

	// AddBlank appends a placeholder slide and selects it.
	AddBlank() entities.Slide

	// DeleteSelected removes the active slide. Returns EmptyDeckError when
	// the deck is empty.
	DeleteSelected() error

	// UpdateContent replaces a slide's content. Out-of-range indices are a
	// silent no-op.
	UpdateContent(index int, content string)

	// Select moves the selection pointer, clamped to the deck bounds.
	Select(index int)

	// MoveSlide relocates a slide using post-removal index semantics and
	// adjusts the selection pointer.
	MoveSlide(oldIndex, newIndex int)

	// Clear empties the deck.
	Clear()
}

// Projector produces the renderable representation of slide content.
type Projector interface {
	Project(content string) string
}

// TranslateCommand is the input to a combined translate-and-summarize run.
type TranslateCommand struct {
	Text                   string
	SourceLang             string
	TargetLang             string
	AdditionalInstructions string
	NumSlides              int
	Model                  string
}

// TranslationResult is the output of a combined translate-and-summarize run.
type TranslationResult struct {
	Translation string `json:"translation"`
	Summary     string `json:"summary"`
	NumSlides   int    `json:"num_slides"`
}

// TranslationService runs the translate-then-summarize pipeline.
type TranslationService interface {
	TranslateAndSummarize(ctx context.Context, cmd TranslateCommand) (*TranslationResult, error)
}
