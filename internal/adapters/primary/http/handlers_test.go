package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transudeck/deckd/internal/domain/entities"
	"github.com/transudeck/deckd/internal/domain/ports"
	"github.com/transudeck/deckd/internal/domain/services"
)

type stubExporter struct {
	result  *ports.ExportResult
	err     error
	payload []entities.SlideData
}

func (s *stubExporter) Generate(ctx context.Context, slides []entities.SlideData) (*ports.ExportResult, error) {
	s.payload = slides
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubExporter) ArtifactPath(filename string) (string, error) {
	return "", errors.New("not found")
}

type stubValidator struct {
	valid bool
	err   error
}

func (s *stubValidator) ValidateCredentials(ctx context.Context, apiKey, apiURL string) (bool, error) {
	return s.valid, s.err
}

type stubCredStore struct {
	apiKey string
	apiURL string
	err    error
}

func (s *stubCredStore) SaveCredentials(ctx context.Context, apiKey, apiURL string) error {
	if s.err != nil {
		return s.err
	}
	s.apiKey = apiKey
	s.apiURL = apiURL
	return nil
}

type stubTranslation struct {
	result *ports.TranslationResult
	err    error
}

func (s *stubTranslation) TranslateAndSummarize(ctx context.Context, cmd ports.TranslateCommand) (*ports.TranslationResult, error) {
	return s.result, s.err
}

type stubCatalog struct {
	models []ports.ModelInfo
	err    error
}

func (s *stubCatalog) ListModels(ctx context.Context) ([]ports.ModelInfo, error) {
	return s.models, s.err
}

type testDeps struct {
	server    *Server
	handler   http.Handler
	exporter  *stubExporter
	validator *stubValidator
	credStore *stubCredStore
}

func newTestServer(t *testing.T) *testDeps {
	t.Helper()

	exporter := &stubExporter{
		result: &ports.ExportResult{
			Filename:    "presentation_20250101_120000.html",
			SlideCount:  2,
			GeneratedAt: time.Now(),
		},
	}
	validator := &stubValidator{valid: true}
	credStore := &stubCredStore{}

	factory := func(apiKey, apiURL string) *GenAIServices {
		return &GenAIServices{
			Translation: &stubTranslation{result: &ports.TranslationResult{
				Translation: "translated",
				Summary:     "# One\n\n---\n\n# Two",
				NumSlides:   2,
			}},
			Catalog: &stubCatalog{models: []ports.ModelInfo{
				{ID: "claude-3-5-sonnet", Name: "Claude 3.5 Sonnet", OriginalName: "claude-3-5-sonnet"},
			}},
		}
	}

	srv := NewServer(ServerDeps{
		Deck:      services.NewDeckStore(),
		Projector: services.NewProjectorService(nil),
		Exporter:  exporter,
		Validator: validator,
		CredStore: credStore,
		Factory:   factory,
	}, &entities.Config{})

	return &testDeps{
		server:    srv,
		handler:   srv.setupRoutes(),
		exporter:  exporter,
		validator: validator,
		credStore: credStore,
	}
}

func (d *testDeps) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	d.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleHealth(t *testing.T) {
	d := newTestServer(t)

	rec := d.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["configured"])
}

func TestHandleSegment(t *testing.T) {
	t.Run("loads segmented slides as the new deck", func(t *testing.T) {
		d := newTestServer(t)

		rec := d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{
			Text:      "# Intro\n\n---\n\n# Details\n\n---\n\n# Wrap-up",
			NumSlides: 3,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[SegmentResponse](t, rec)
		assert.Equal(t, 3, resp.Created)
		assert.Equal(t, 3, resp.Deck.SlideCount)
		assert.Equal(t, 0, resp.Deck.Selection)
		assert.Equal(t, "# Intro", resp.Deck.Slides[0].Content)
	})

	t.Run("replaces the previous deck", func(t *testing.T) {
		d := newTestServer(t)
		d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{Text: "# Old", NumSlides: 1})

		rec := d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{Text: "# New", NumSlides: 1})

		resp := decode[SegmentResponse](t, rec)
		require.Equal(t, 1, resp.Deck.SlideCount)
		assert.Equal(t, "# New", resp.Deck.Slides[0].Content)
	})

	t.Run("empty text yields an empty deck, not an error", func(t *testing.T) {
		d := newTestServer(t)

		rec := d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{Text: "   \n\n", NumSlides: 3})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[SegmentResponse](t, rec)
		assert.Equal(t, 0, resp.Created)
		assert.Equal(t, entities.NoSelection, resp.Deck.Selection)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		d := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/deck/segment", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		d.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decode[ErrorResponse](t, rec).Detail)
	})
}

func TestDeckLifecycle(t *testing.T) {
	d := newTestServer(t)

	// Start with three slides.
	d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{
		Text: "# A\n\n---\n\n# B\n\n---\n\n# C", NumSlides: 3,
	})

	// Select the middle slide.
	rec := d.do(t, http.MethodPost, "/api/deck/select", SelectRequest{Index: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[DeckResponse](t, rec).Selection)

	// Drag the first slide to the end; the selection follows its slide.
	rec = d.do(t, http.MethodPost, "/api/deck/move", MoveRequest{OldIndex: 0, NewIndex: 2})
	deck := decode[DeckResponse](t, rec)
	require.Equal(t, []string{"# B", "# C", "# A"}, slideContents(deck))
	assert.Equal(t, 0, deck.Selection)

	// Edit the selected slide.
	rec = d.do(t, http.MethodPut, "/api/deck/slides/0", UpdateSlideRequest{Content: "# B (edited)"})
	deck = decode[DeckResponse](t, rec)
	assert.Equal(t, "# B (edited)", deck.Slides[0].Content)

	// Delete it.
	rec = d.do(t, http.MethodDelete, "/api/deck/slides/selected", nil)
	deck = decode[DeckResponse](t, rec)
	require.Equal(t, []string{"# C", "# A"}, slideContents(deck))
	assert.Equal(t, 0, deck.Selection)

	// Clear everything.
	rec = d.do(t, http.MethodDelete, "/api/deck", nil)
	deck = decode[DeckResponse](t, rec)
	assert.Equal(t, 0, deck.SlideCount)
	assert.Equal(t, entities.NoSelection, deck.Selection)
}

func TestHandleAddSlide(t *testing.T) {
	d := newTestServer(t)

	rec := d.do(t, http.MethodPost, "/api/deck/slides", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode[struct {
		Slide SlideResponse `json:"slide"`
		Deck  DeckResponse  `json:"deck"`
	}](t, rec)
	assert.Equal(t, services.BlankSlideContent, body.Slide.Content)
	assert.NotEmpty(t, body.Slide.ID)
	assert.Equal(t, 0, body.Deck.Selection)
}

func TestHandleDeleteSelected_EmptyDeck(t *testing.T) {
	d := newTestServer(t)

	rec := d.do(t, http.MethodDelete, "/api/deck/slides/selected", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "deck has no slides")
}

func TestHandleUpdateSlide_StaleIndexIsNoOp(t *testing.T) {
	d := newTestServer(t)
	d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{Text: "# Only", NumSlides: 1})

	rec := d.do(t, http.MethodPut, "/api/deck/slides/7", UpdateSlideRequest{Content: "# Changed"})

	require.Equal(t, http.StatusOK, rec.Code)
	deck := decode[DeckResponse](t, rec)
	assert.Equal(t, "# Only", deck.Slides[0].Content)
}

func TestHandlePreview(t *testing.T) {
	t.Run("projects every slide plus the selection", func(t *testing.T) {
		d := newTestServer(t)
		d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{
			Text: "# A\n\n---\n\n# B", NumSlides: 2,
		})

		rec := d.do(t, http.MethodGet, "/api/deck/preview", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[PreviewResponse](t, rec)
		require.Len(t, resp.Slides, 2)
		assert.Contains(t, resp.Slides[0].HTML, "# A")
		assert.Contains(t, resp.SelectedHTML, "# A")
		assert.Equal(t, 0, resp.Selection)
	})

	t.Run("empty deck shows the placeholder", func(t *testing.T) {
		d := newTestServer(t)

		rec := d.do(t, http.MethodGet, "/api/deck/preview", nil)

		resp := decode[PreviewResponse](t, rec)
		assert.Empty(t, resp.Slides)
		assert.Equal(t, services.PlaceholderPreview, resp.SelectedHTML)
		assert.Equal(t, entities.NoSelection, resp.Selection)
	})
}

func TestHandleExport(t *testing.T) {
	t.Run("generates an artifact from the current deck", func(t *testing.T) {
		d := newTestServer(t)
		d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{
			Text: "# A\n\n---\n\n# B", NumSlides: 2,
		})

		rec := d.do(t, http.MethodPost, "/api/export", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[ExportResponse](t, rec)
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "presentation_20250101_120000.html", resp.Filename)
		assert.Equal(t, "/api/export/download/presentation_20250101_120000.html", resp.DownloadURL)

		require.Len(t, d.exporter.payload, 2)
		assert.Equal(t, "# A", d.exporter.payload[0].Content)
		assert.Equal(t, 0, d.exporter.payload[0].Order)
	})

	t.Run("empty deck is rejected", func(t *testing.T) {
		d := newTestServer(t)

		rec := d.do(t, http.MethodPost, "/api/export", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Detail, "deck has no slides")
	})

	t.Run("generator failure maps to 500", func(t *testing.T) {
		d := newTestServer(t)
		d.exporter.err = errors.New("disk full")
		d.do(t, http.MethodPost, "/api/deck/segment", SegmentRequest{Text: "# A", NumSlides: 1})

		rec := d.do(t, http.MethodPost, "/api/export", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("download rejects unknown artifacts", func(t *testing.T) {
		d := newTestServer(t)

		rec := d.do(t, http.MethodGet, "/api/export/download/nope.html", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleSetConfig(t *testing.T) {
	t.Run("validates, persists, and activates credentials", func(t *testing.T) {
		d := newTestServer(t)

		rec := d.do(t, http.MethodPost, "/api/config", ConfigRequest{
			APIKey: "  secret  ",
			APIURL: "https://hub.example.com/v1/",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "secret", d.credStore.apiKey)
		assert.Equal(t, "https://hub.example.com/v1", d.credStore.apiURL, "trailing slash is trimmed")

		status := d.do(t, http.MethodGet, "/api/config/status", nil)
		assert.True(t, decode[ConfigStatusResponse](t, status).Configured)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		d := newTestServer(t)

		rec := d.do(t, http.MethodPost, "/api/config", ConfigRequest{APIKey: "k"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "API Key and URL are required", decode[ErrorResponse](t, rec).Detail)
	})

	t.Run("invalid credentials are not persisted", func(t *testing.T) {
		d := newTestServer(t)
		d.validator.valid = false

		rec := d.do(t, http.MethodPost, "/api/config", ConfigRequest{
			APIKey: "bad", APIURL: "https://hub.example.com",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, d.credStore.apiKey)
	})

	t.Run("save failure maps to 500", func(t *testing.T) {
		d := newTestServer(t)
		d.credStore.err = errors.New("read-only filesystem")

		rec := d.do(t, http.MethodPost, "/api/config", ConfigRequest{
			APIKey: "k", APIURL: "https://hub.example.com",
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGenAIEndpoints_RequireConfiguration(t *testing.T) {
	d := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/models", nil},
		{http.MethodPost, "/api/translate", TranslateRequest{Text: "hello", TargetLang: "German"}},
	} {
		t.Run(fmt.Sprintf("%s %s", tc.method, tc.path), func(t *testing.T) {
			rec := d.do(t, tc.method, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, (&entities.NotConfiguredError{}).Error(), decode[ErrorResponse](t, rec).Detail)
		})
	}
}

func TestGenAIEndpoints_Configured(t *testing.T) {
	d := newTestServer(t)
	d.do(t, http.MethodPost, "/api/config", ConfigRequest{
		APIKey: "k", APIURL: "https://hub.example.com",
	})

	t.Run("models", func(t *testing.T) {
		rec := d.do(t, http.MethodGet, "/api/models", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[ModelListResponse](t, rec)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Claude 3.5 Sonnet", resp.Models[0].Name)
	})

	t.Run("translate", func(t *testing.T) {
		rec := d.do(t, http.MethodPost, "/api/translate", TranslateRequest{
			Text: "hello", SourceLang: "English", TargetLang: "German", NumSlides: 2,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[ports.TranslationResult](t, rec)
		assert.Equal(t, "translated", resp.Translation)
		assert.Equal(t, 2, resp.NumSlides)
	})
}

func slideContents(deck DeckResponse) []string {
	contents := make([]string, len(deck.Slides))
	for i, slide := range deck.Slides {
		contents[i] = slide.Content
	}
	return contents
}
