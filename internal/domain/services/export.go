package services

import (
	"github.com/transudeck/deckd/internal/domain/entities"
)

// BuildExportPayload produces the exact ordered payload handed to the export
// collaborator: one {id, content, order} record per slide, preserving the
// deck's current order. Returns EmptyDeckError when the deck has no slides.
func BuildExportPayload(deck entities.Deck) ([]entities.SlideData, error) {
	if len(deck.Slides) == 0 {
		return nil, &entities.EmptyDeckError{Op: "export deck"}
	}

	payload := make([]entities.SlideData, 0, len(deck.Slides))
	for _, slide := range deck.Slides {
		payload = append(payload, entities.SlideData{
			ID:      slide.ID,
			Content: slide.Content,
			Order:   slide.Order,
		})
	}

	return payload, nil
}
