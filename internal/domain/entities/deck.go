package entities

import (
	"errors"
	"fmt"
)

// NoSelection is the selection pointer value for an empty deck.
const NoSelection = -1

// Deck is an immutable snapshot of the slide collection and its selection
// pointer. The deck store hands these out; mutating a snapshot has no effect
// on the store.
type Deck struct {
	// Slides contains all slides in order
	Slides []Slide `json:"slides"`

	// Selection is the index of the active slide, or NoSelection when empty
	Selection int `json:"selection"`
}

// Validate checks the deck invariants: contiguous orders matching positions,
// pairwise-distinct ids, and a selection pointer that is either NoSelection
// (empty deck) or a valid index.
func (d *Deck) Validate() error {
	seen := make(map[string]struct{}, len(d.Slides))
	for i, slide := range d.Slides {
		if slide.Order != i {
			return fmt.Errorf("slide at position %d has order %d", i, slide.Order)
		}
		if slide.ID == "" {
			return fmt.Errorf("slide at position %d has empty id", i)
		}
		if _, dup := seen[slide.ID]; dup {
			return fmt.Errorf("duplicate slide id %q", slide.ID)
		}
		seen[slide.ID] = struct{}{}
	}

	if len(d.Slides) == 0 {
		if d.Selection != NoSelection {
			return errors.New("empty deck must have no selection")
		}
		return nil
	}

	if d.Selection < 0 || d.Selection >= len(d.Slides) {
		return fmt.Errorf("selection %d out of range (0-%d)", d.Selection, len(d.Slides)-1)
	}

	return nil
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// SelectedSlide returns the active slide, or nil when the deck is empty.
func (d *Deck) SelectedSlide() *Slide {
	if d.Selection < 0 || d.Selection >= len(d.Slides) {
		return nil
	}
	return &d.Slides[d.Selection]
}
