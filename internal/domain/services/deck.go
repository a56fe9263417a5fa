package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/transudeck/deckd/internal/domain/entities"
)

// BlankSlideContent is the placeholder content for manually added slides.
const BlankSlideContent = "# New Slide\n\nAdd your content here"

// DeckStore owns the ordered slide collection and the selection pointer.
// It is the only place deck state is mutated; every operation re-establishes
// the deck invariants (contiguous orders, distinct ids, valid selection)
// before releasing the lock.
type DeckStore struct {
	mu        sync.RWMutex
	slides    []entities.Slide
	selection int
}

// NewDeckStore creates an empty deck store
func NewDeckStore() *DeckStore {
	return &DeckStore{selection: entities.NoSelection}
}

// Snapshot returns a copy of the current deck state
func (s *DeckStore) Snapshot() entities.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slides := make([]entities.Slide, len(s.slides))
	copy(slides, s.slides)

	return entities.Deck{Slides: slides, Selection: s.selection}
}

// Append adds slides at the end, continuing the order sequence. Selection is
// unchanged unless the deck was empty, in which case it moves to the first
// appended slide. Returns the number of slides appended.
func (s *DeckStore) Append(slides []entities.Slide) int {
	if len(slides) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wasEmpty := len(s.slides) == 0

	for _, slide := range slides {
		slide.Order = len(s.slides)
		if slide.ID == "" {
			slide.ID = uuid.New().String()
		}
		s.slides = append(s.slides, slide)
	}

	if wasEmpty {
		s.selection = 0
	}

	return len(slides)
}

// AddBlank appends a single placeholder slide and selects it
func (s *DeckStore) AddBlank() entities.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()

	slide := entities.Slide{
		ID:      uuid.New().String(),
		Content: BlankSlideContent,
		Order:   len(s.slides),
	}
	slide.Title = slide.ExtractTitle()

	s.slides = append(s.slides, slide)
	s.selection = len(s.slides) - 1

	return slide
}

// DeleteSelected removes the slide at the selection pointer, renumbers the
// remainder, and clamps the selection. Returns EmptyDeckError if the deck
// has no slides.
func (s *DeckStore) DeleteSelected() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.slides) == 0 {
		return &entities.EmptyDeckError{Op: "delete slide"}
	}

	s.slides = append(s.slides[:s.selection], s.slides[s.selection+1:]...)
	s.renumber()

	if len(s.slides) == 0 {
		s.selection = entities.NoSelection
	} else {
		s.selection = clamp(s.selection, 0, len(s.slides)-1)
	}

	return nil
}

// UpdateContent replaces the content of the slide at index. Stale indices
// from the UI are a silent no-op rather than an error.
func (s *DeckStore) UpdateContent(index int, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.slides) {
		return
	}

	s.slides[index].Content = content
	s.slides[index].Title = s.slides[index].ExtractTitle()
}

// Select sets the selection pointer, clamped to the deck bounds. No-op on an
// empty deck.
func (s *DeckStore) Select(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.slides) == 0 {
		return
	}

	s.selection = clamp(index, 0, len(s.slides)-1)
}

// MoveSlide relocates the slide at oldIndex to newIndex. Indices use
// post-removal semantics: newIndex is the position in the list after the
// moved slide has been taken out. The selection pointer follows the moved
// slide, or shifts by one when the move crosses it:
//
//	sel == oldIndex            -> sel = newIndex
//	oldIndex < sel <= newIndex -> sel - 1
//	newIndex <= sel < oldIndex -> sel + 1
//	otherwise                  -> unchanged
//
// A move with oldIndex == newIndex is an explicit no-op, and out-of-range
// indices are dropped.
func (s *DeckStore) MoveSlide(oldIndex, newIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldIndex == newIndex {
		return
	}

	n := len(s.slides)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		// Stale drag event; see entities.OutOfRangeError.
		return
	}

	moved := s.slides[oldIndex]
	rest := append(s.slides[:oldIndex], s.slides[oldIndex+1:]...)

	s.slides = append(rest[:newIndex], append([]entities.Slide{moved}, rest[newIndex:]...)...)
	s.renumber()

	sel := s.selection
	switch {
	case sel == oldIndex:
		s.selection = newIndex
	case oldIndex < sel && sel <= newIndex:
		s.selection = sel - 1
	case newIndex <= sel && sel < oldIndex:
		s.selection = sel + 1
	}
}

// Clear empties the deck and resets the selection pointer
func (s *DeckStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slides = nil
	s.selection = entities.NoSelection
}

// renumber reassigns every slide's order to its position. Callers must hold
// the write lock.
func (s *DeckStore) renumber() {
	for i := range s.slides {
		s.slides[i].Order = i
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
