package entities

import "fmt"

// EmptyDeckError is returned by operations that require at least one slide
// (delete, export) when the deck is empty. The operation aborts without
// changing state.
type EmptyDeckError struct {
	Op string
}

func (e *EmptyDeckError) Error() string {
	return fmt.Sprintf("%s: deck has no slides", e.Op)
}

// IsEmptyDeck reports whether err is an EmptyDeckError.
func IsEmptyDeck(err error) bool {
	_, ok := err.(*EmptyDeckError)
	return ok
}

// OutOfRangeError signals an index-based operation against a stale index.
// It never reaches callers: the deck store clamps or no-ops instead, because
// indices arrive from UI state that can lag behind the deck.
type OutOfRangeError struct {
	Op    string
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range (deck has %d slides)", e.Op, e.Index, e.Len)
}

// NotConfiguredError is returned by operations that need GenAI credentials
// before any have been configured.
type NotConfiguredError struct{}

func (e *NotConfiguredError) Error() string {
	return "API not configured. Please configure API settings first."
}
