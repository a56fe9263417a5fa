package genai

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/transudeck/deckd/internal/domain/ports"
)

// supportedPrefixes filters the hub's model list down to the families that
// handle translation and summarization well enough for deck generation.
var supportedPrefixes = []string{"claude-", "llama"}

var titleCaser = cases.Title(language.English)

// ModelCatalog implements ports.ModelCatalog: it filters the hub's raw model
// list to supported families and formats ids into display names.
type ModelCatalog struct {
	client *Client
}

// NewModelCatalog creates a new model catalog
func NewModelCatalog(client *Client) *ModelCatalog {
	return &ModelCatalog{client: client}
}

// ListModels returns the filtered, formatted, name-sorted model list
func (m *ModelCatalog) ListModels(ctx context.Context) ([]ports.ModelInfo, error) {
	ids, err := m.client.ListModelIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching models: %w", err)
	}

	models := make([]ports.ModelInfo, 0, len(ids))
	for _, id := range ids {
		if !IsSupportedModel(id) {
			continue
		}
		models = append(models, ports.ModelInfo{
			ID:           id,
			Name:         FormatModelName(id),
			OriginalName: id,
		})
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })

	return models, nil
}

// IsSupportedModel reports whether the model family is usable for
// translation and summarization.
func IsSupportedModel(modelID string) bool {
	for _, prefix := range supportedPrefixes {
		if strings.HasPrefix(modelID, prefix) {
			return true
		}
	}
	return false
}

// FormatModelName formats a model id into a human-readable name:
//
//	claude-3-5-sonnet   -> Claude 3.5 Sonnet
//	claude-4-5-sonnet   -> Claude 4.5 Sonnet
//	llama3-1-405b       -> Llama 3.1 405B
//	llama4-maverick-17b -> Llama 4 Maverick 17B
func FormatModelName(modelID string) string {
	switch {
	case strings.HasPrefix(modelID, "claude-"):
		return formatClaudeName(modelID)
	case strings.HasPrefix(modelID, "llama"):
		return formatLlamaName(modelID)
	default:
		return titleCaser.String(strings.ReplaceAll(modelID, "-", " "))
	}
}

func formatClaudeName(modelID string) string {
	parts := strings.Split(strings.TrimPrefix(modelID, "claude-"), "-")

	var version []string
	i := 0
	for i < len(parts) && isDigits(parts[i]) {
		version = append(version, parts[i])
		i++
	}

	name := "Claude"
	if len(version) > 0 {
		name += " " + strings.Join(version, ".")
	}
	if i < len(parts) {
		variant := make([]string, 0, len(parts)-i)
		for _, part := range parts[i:] {
			variant = append(variant, titleCaser.String(part))
		}
		name += " " + strings.Join(variant, " ")
	}

	return name
}

func formatLlamaName(modelID string) string {
	parts := strings.Split(strings.TrimPrefix(modelID, "llama"), "-")

	var version, rest []string
	for _, part := range parts {
		switch {
		case part == "":
		case isDigits(part):
			version = append(version, part)
		case isParamCount(part):
			rest = append(rest, strings.ToUpper(part))
		default:
			rest = append(rest, titleCaser.String(part))
		}
	}

	name := "Llama"
	if len(version) > 0 {
		name += " " + strings.Join(version, ".")
	}
	if len(rest) > 0 {
		name += " " + strings.Join(rest, " ")
	}

	return name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isParamCount matches parameter-count tokens like "405b" or "17.5b"
func isParamCount(s string) bool {
	if len(s) < 2 || s[len(s)-1] != 'b' {
		return false
	}
	return isDigits(strings.ReplaceAll(s[:len(s)-1], ".", ""))
}

// Validator implements ports.CredentialValidator by probing the models
// endpoint with candidate credentials.
type Validator struct {
	http ports.HTTPClient
}

// NewValidator creates a new credential validator
func NewValidator(httpClient ports.HTTPClient) *Validator {
	return &Validator{http: httpClient}
}

// ValidateCredentials reports whether the candidate credentials can list
// models on the hub.
func (v *Validator) ValidateCredentials(ctx context.Context, apiKey, apiURL string) (bool, error) {
	probe := NewClient(apiURL, apiKey, v.http)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probe.modelsURL(), nil)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}
	probe.setHeaders(req)

	resp, err := v.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("calling GenAI Hub: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK, nil
}
