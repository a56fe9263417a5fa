// Package http exposes the deck engine over a JSON API, plus a WebSocket
// channel that keeps connected clients' deck views in sync.
package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/transudeck/deckd/internal/domain/entities"
	"github.com/transudeck/deckd/internal/domain/ports"
)

// HTTPLogger provides structured logging for the HTTP server
type HTTPLogger struct {
	component string
	verbose   bool
	level     entities.LogLevel
}

// NewHTTPLogger creates a new HTTP logger instance
func NewHTTPLogger(component string, verbose bool) *HTTPLogger {
	return &HTTPLogger{
		component: component,
		verbose:   verbose,
		level:     entities.LogLevelInfo,
	}
}

// NewHTTPLoggerWithLevel creates a new HTTP logger instance with specific level
func NewHTTPLoggerWithLevel(component string, verbose bool, level entities.LogLevel) *HTTPLogger {
	return &HTTPLogger{
		component: component,
		verbose:   verbose,
		level:     level,
	}
}

// shouldLog checks if the message should be logged based on level
func (l *HTTPLogger) shouldLog(msgLevel entities.LogLevel) bool {
	levelMap := map[entities.LogLevel]int{
		entities.LogLevelDebug: 0,
		entities.LogLevelInfo:  1,
		entities.LogLevelWarn:  2,
		entities.LogLevelError: 3,
	}

	return levelMap[msgLevel] >= levelMap[l.level]
}

// Debug logs debug messages (only if debug level is enabled)
func (l *HTTPLogger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelDebug) {
		log.Printf("[DEBUG] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Info logs informational messages
func (l *HTTPLogger) Info(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		log.Printf("[INFO] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Warn logs warning messages
func (l *HTTPLogger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelWarn) {
		log.Printf("[WARN] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Error logs error messages (always logged)
func (l *HTTPLogger) Error(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelError) {
		log.Printf("[ERROR] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// GenAIServices are the collaborators that require live API credentials.
// They are rebuilt whenever credentials change.
type GenAIServices struct {
	Translation ports.TranslationService
	Catalog     ports.ModelCatalog
}

// GenAIFactory builds credential-bound GenAI services
type GenAIFactory func(apiKey, apiURL string) *GenAIServices

// Server exposes the deck engine over HTTP
type Server struct {
	server    *http.Server
	connMgr   *ConnectionManager
	deck      ports.DeckService
	projector ports.Projector
	exporter  ports.Exporter
	validator ports.CredentialValidator
	credStore ports.CredentialStore
	factory   GenAIFactory
	config    *entities.Config
	logger    *HTTPLogger

	mu      sync.RWMutex
	genai   *GenAIServices // nil until credentials are configured
	running bool
}

// ServerDeps bundles the server's collaborators
type ServerDeps struct {
	Deck      ports.DeckService
	Projector ports.Projector
	Exporter  ports.Exporter
	Validator ports.CredentialValidator
	CredStore ports.CredentialStore
	Factory   GenAIFactory
}

// NewServer creates a new HTTP server. config must not be nil.
func NewServer(deps ServerDeps, config *entities.Config) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid Config")
	}

	s := &Server{
		connMgr:   NewConnectionManager(),
		deck:      deps.Deck,
		projector: deps.Projector,
		exporter:  deps.Exporter,
		validator: deps.Validator,
		credStore: deps.CredStore,
		factory:   deps.Factory,
		config:    config,
		logger:    NewHTTPLoggerWithLevel("server", config.Logging.Verbose, config.Logging.GetLevel()),
	}

	// Bind GenAI services up front when credentials are already configured.
	if config.GenAI.IsConfigured() && s.factory != nil {
		s.genai = s.factory(config.GenAI.APIKey, config.GenAI.APIURL)
	}

	return s
}

// Start begins serving on the configured host and port
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	go s.connMgr.Run(ctx)

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.Server.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	handler := c.Handler(router)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.GetReadTimeout(),
		WriteTimeout: s.config.Server.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("HTTP server starting on %s:%d", s.config.Server.Host, s.config.Server.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// genaiServices returns the current credential-bound services, or nil when
// unconfigured.
func (s *Server) genaiServices() *GenAIServices {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.genai
}

// rebindGenAI swaps in services bound to new credentials
func (s *Server) rebindGenAI(apiKey, apiURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.GenAI.APIKey = apiKey
	s.config.GenAI.APIURL = apiURL
	if s.factory != nil {
		s.genai = s.factory(apiKey, apiURL)
	}
}

// notifyDeckChanged broadcasts the current deck snapshot to all clients
func (s *Server) notifyDeckChanged(eventType string) {
	s.connMgr.Broadcast(ports.UpdateEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      deckToResponse(s.deck.Snapshot()),
	})
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// WebSocket endpoint for deck sync
	router.HandleFunc("/ws", s.handleWebSocket)

	// Configuration and model listing
	router.HandleFunc("/api/config", s.handleSetConfig).Methods(http.MethodPost)
	router.HandleFunc("/api/config/status", s.handleConfigStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/models", s.handleModels).Methods(http.MethodGet)

	// Translation pipeline
	router.HandleFunc("/api/translate", s.handleTranslate).Methods(http.MethodPost)

	// Deck operations
	router.HandleFunc("/api/deck", s.handleGetDeck).Methods(http.MethodGet)
	router.HandleFunc("/api/deck", s.handleClearDeck).Methods(http.MethodDelete)
	router.HandleFunc("/api/deck/segment", s.handleSegment).Methods(http.MethodPost)
	router.HandleFunc("/api/deck/preview", s.handlePreview).Methods(http.MethodGet)
	router.HandleFunc("/api/deck/slides", s.handleAddSlide).Methods(http.MethodPost)
	router.HandleFunc("/api/deck/slides/selected", s.handleDeleteSelected).Methods(http.MethodDelete)
	router.HandleFunc("/api/deck/slides/{index:[0-9]+}", s.handleUpdateSlide).Methods(http.MethodPut)
	router.HandleFunc("/api/deck/select", s.handleSelect).Methods(http.MethodPost)
	router.HandleFunc("/api/deck/move", s.handleMove).Methods(http.MethodPost)

	// Export
	router.HandleFunc("/api/export", s.handleExport).Methods(http.MethodPost)
	router.HandleFunc("/api/export/download/{filename}", s.handleExportDownload).Methods(http.MethodGet)

	handler := securityHeadersMiddleware(router)
	handler = createLoggingMiddleware(handler, s.logger)

	return handler
}
