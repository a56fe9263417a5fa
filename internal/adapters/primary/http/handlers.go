package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/transudeck/deckd/internal/domain/entities"
	"github.com/transudeck/deckd/internal/domain/ports"
	"github.com/transudeck/deckd/internal/domain/services"
)

// ErrorResponse is the error body: the wire format uses a single detail field
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SlideResponse represents a single slide in API responses
type SlideResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
	Title   string `json:"title,omitempty"`
}

// DeckResponse represents the deck state in API responses
type DeckResponse struct {
	Slides     []SlideResponse `json:"slides"`
	Selection  int             `json:"selection"`
	SlideCount int             `json:"slide_count"`
}

// SegmentRequest is the input to deck segmentation
type SegmentRequest struct {
	Text      string `json:"text"`
	NumSlides int    `json:"num_slides"`
}

// SegmentResponse reports the segmentation outcome alongside the new deck
type SegmentResponse struct {
	Created int          `json:"created"`
	Deck    DeckResponse `json:"deck"`
}

// UpdateSlideRequest carries new content for a slide
type UpdateSlideRequest struct {
	Content string `json:"content"`
}

// SelectRequest carries a selection index
type SelectRequest struct {
	Index int `json:"index"`
}

// MoveRequest carries a drag-reorder event: old_index is the slide's prior
// position, new_index its position after removal.
type MoveRequest struct {
	OldIndex int `json:"old_index"`
	NewIndex int `json:"new_index"`
}

// SlidePreview is one projected slide thumbnail
type SlidePreview struct {
	Order int    `json:"order"`
	HTML  string `json:"html"`
}

// PreviewResponse carries projected HTML for the thumbnail grid and the
// selected slide's larger preview.
type PreviewResponse struct {
	Slides       []SlidePreview `json:"slides"`
	SelectedHTML string         `json:"selected_html"`
	Selection    int            `json:"selection"`
}

// ExportResponse reports a generated artifact
type ExportResponse struct {
	Status      string `json:"status"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	SlideCount  int    `json:"slide_count"`
}

func deckToResponse(deck entities.Deck) DeckResponse {
	slides := make([]SlideResponse, 0, len(deck.Slides))
	for _, slide := range deck.Slides {
		slides = append(slides, SlideResponse{
			ID:      slide.ID,
			Content: slide.Content,
			Order:   slide.Order,
			Title:   slide.Title,
		})
	}

	return DeckResponse{
		Slides:     slides,
		Selection:  deck.Selection,
		SlideCount: len(slides),
	}
}

// handleHealth reports server liveness and configuration state
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	configured := s.genai != nil
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"configured": configured,
	})
}

// handleGetDeck returns the current deck state
func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, deckToResponse(s.deck.Snapshot()))
}

// handleClearDeck empties the deck
func (s *Server) handleClearDeck(w http.ResponseWriter, r *http.Request) {
	s.deck.Clear()
	s.notifyDeckChanged(ports.EventTypeDeckChanged)
	s.writeJSON(w, http.StatusOK, deckToResponse(s.deck.Snapshot()))
}

// handleSegment segments text into slides and loads them as the new deck.
// Zero surviving sections is not an error; the response reports created: 0
// and the deck is left empty.
func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slides := services.Segment(req.Text, req.NumSlides)

	s.deck.Clear()
	created := s.deck.Append(slides)

	s.notifyDeckChanged(ports.EventTypeDeckChanged)
	s.writeJSON(w, http.StatusOK, SegmentResponse{
		Created: created,
		Deck:    deckToResponse(s.deck.Snapshot()),
	})
}

// handlePreview returns projected HTML for all slides plus the selection
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	deck := s.deck.Snapshot()

	previews := make([]SlidePreview, 0, len(deck.Slides))
	for _, slide := range deck.Slides {
		previews = append(previews, SlidePreview{
			Order: slide.Order,
			HTML:  s.projector.Project(slide.Content),
		})
	}

	selectedHTML := services.PlaceholderPreview
	if selected := deck.SelectedSlide(); selected != nil {
		selectedHTML = s.projector.Project(selected.Content)
	}

	s.writeJSON(w, http.StatusOK, PreviewResponse{
		Slides:       previews,
		SelectedHTML: selectedHTML,
		Selection:    deck.Selection,
	})
}

// handleAddSlide appends a blank slide and selects it
func (s *Server) handleAddSlide(w http.ResponseWriter, r *http.Request) {
	slide := s.deck.AddBlank()

	s.notifyDeckChanged(ports.EventTypeDeckChanged)
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"slide": SlideResponse{ID: slide.ID, Content: slide.Content, Order: slide.Order, Title: slide.Title},
		"deck":  deckToResponse(s.deck.Snapshot()),
	})
}

// handleDeleteSelected removes the active slide
func (s *Server) handleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	if err := s.deck.DeleteSelected(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.notifyDeckChanged(ports.EventTypeDeckChanged)
	s.writeJSON(w, http.StatusOK, deckToResponse(s.deck.Snapshot()))
}

// handleUpdateSlide replaces a slide's content. A stale index is a no-op.
func (s *Server) handleUpdateSlide(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid slide index")
		return
	}

	var req UpdateSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.deck.UpdateContent(index, req.Content)

	s.notifyDeckChanged(ports.EventTypeDeckChanged)
	s.writeJSON(w, http.StatusOK, deckToResponse(s.deck.Snapshot()))
}

// handleSelect moves the selection pointer
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.deck.Select(req.Index)

	s.notifyDeckChanged(ports.EventTypeSelection)
	s.writeJSON(w, http.StatusOK, deckToResponse(s.deck.Snapshot()))
}

// handleMove applies a drag-reorder event
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.deck.MoveSlide(req.OldIndex, req.NewIndex)

	s.notifyDeckChanged(ports.EventTypeDeckChanged)
	s.writeJSON(w, http.StatusOK, deckToResponse(s.deck.Snapshot()))
}

// handleExport builds the export payload and generates the artifact
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	payload, err := services.BuildExportPayload(s.deck.Snapshot())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.exporter.Generate(r.Context(), payload)
	if err != nil {
		s.logger.Error("Export failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	s.logger.Info("Artifact generated: %s (%d slides)", result.Filename, result.SlideCount)
	s.writeJSON(w, http.StatusOK, ExportResponse{
		Status:      "success",
		Filename:    result.Filename,
		DownloadURL: fmt.Sprintf("/api/export/download/%s", result.Filename),
		SlideCount:  result.SlideCount,
	})
}

// handleExportDownload serves a previously generated artifact
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	path, err := s.exporter.ArtifactPath(filename)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

// writeJSON writes a JSON response with the given status
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response: %v", err)
	}
}

// writeError writes an error response in the {detail} wire format
func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, ErrorResponse{Detail: detail})
}
