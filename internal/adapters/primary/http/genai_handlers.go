package http

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/transudeck/deckd/internal/domain/entities"
	"github.com/transudeck/deckd/internal/domain/ports"
)

// ConfigRequest carries candidate API credentials
type ConfigRequest struct {
	APIKey string `json:"api_key"`
	APIURL string `json:"api_url"`
}

// ConfigStatusResponse reports the configuration state
type ConfigStatusResponse struct {
	Configured    bool `json:"configured"`
	HasConfigFile bool `json:"has_config_file"`
	APIURLSet     bool `json:"api_url_set"`
}

// TranslateRequest is the translate-and-summarize input
type TranslateRequest struct {
	Text                   string `json:"text"`
	SourceLang             string `json:"source_lang"`
	TargetLang             string `json:"target_lang"`
	AdditionalInstructions string `json:"additional_instructions"`
	NumSlides              int    `json:"num_slides"`
	Model                  string `json:"model"`
}

// ModelListResponse is the model listing output
type ModelListResponse struct {
	Models []ports.ModelInfo `json:"models"`
	Count  int               `json:"count"`
}

// handleSetConfig validates, persists, and activates new API credentials
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.APIKey = strings.TrimSpace(req.APIKey)
	req.APIURL = strings.TrimRight(strings.TrimSpace(req.APIURL), "/")
	if req.APIKey == "" || req.APIURL == "" {
		s.writeError(w, http.StatusBadRequest, "API Key and URL are required")
		return
	}

	valid, err := s.validator.ValidateCredentials(r.Context(), req.APIKey, req.APIURL)
	if err != nil {
		s.logger.Error("Credential validation failed: %v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid API credentials. Please check your API Key and URL.")
		return
	}
	if !valid {
		s.writeError(w, http.StatusBadRequest, "Invalid API credentials. Please check your API Key and URL.")
		return
	}

	if err := s.credStore.SaveCredentials(r.Context(), req.APIKey, req.APIURL); err != nil {
		s.logger.Error("Saving credentials failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to save configuration")
		return
	}

	s.rebindGenAI(req.APIKey, req.APIURL)
	s.logger.Info("API configuration updated and saved")

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Configuration saved successfully",
		"configured": true,
	})
}

// handleConfigStatus reports whether the GenAI API is usable
func (s *Server) handleConfigStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	configured := s.genai != nil
	apiURLSet := s.config.GenAI.APIURL != ""
	s.mu.RUnlock()

	hasConfigFile := false
	if s.credStore != nil {
		if loader, ok := s.credStore.(interface{ GetGlobalPath() string }); ok {
			if _, err := os.Stat(loader.GetGlobalPath()); err == nil {
				hasConfigFile = true
			}
		}
	}

	s.writeJSON(w, http.StatusOK, ConfigStatusResponse{
		Configured:    configured,
		HasConfigFile: hasConfigFile,
		APIURLSet:     apiURLSet,
	})
}

// handleModels lists the usable models
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	genai := s.genaiServices()
	if genai == nil {
		s.writeError(w, http.StatusBadRequest, (&entities.NotConfiguredError{}).Error())
		return
	}

	models, err := genai.Catalog.ListModels(r.Context())
	if err != nil {
		s.logger.Error("Fetching models failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ModelListResponse{Models: models, Count: len(models)})
}

// handleTranslate runs the translate-then-summarize pipeline
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	genai := s.genaiServices()
	if genai == nil {
		s.writeError(w, http.StatusBadRequest, (&entities.NotConfiguredError{}).Error())
		return
	}

	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := genai.Translation.TranslateAndSummarize(r.Context(), ports.TranslateCommand{
		Text:                   req.Text,
		SourceLang:             req.SourceLang,
		TargetLang:             req.TargetLang,
		AdditionalInstructions: req.AdditionalInstructions,
		NumSlides:              req.NumSlides,
		Model:                  req.Model,
	})
	if err != nil {
		s.logger.Error("Translation pipeline failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}
