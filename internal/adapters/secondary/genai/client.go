// Package genai implements the GenAI Hub chat-completions collaborators:
// translation, summarization, model listing, and credential validation.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/transudeck/deckd/internal/domain/ports"
)

// Client is a minimal OpenAI-compatible chat-completions client. Base URLs
// in the wild sometimes already include /chat/completions or a /v1 suffix,
// so endpoint resolution tolerates both.
type Client struct {
	baseURL string
	apiKey  string
	http    ports.HTTPClient
}

// NewClient creates a new GenAI Hub client
func NewClient(apiURL, apiKey string, httpClient ports.HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(apiURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// chatMessage is one message in a chat-completion request
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat-completion request body
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the subset of the chat-completion response we consume
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// modelsResponse is the models-listing response body
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// apiError is the error body returned by the hub on failure
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail string `json:"detail"`
}

// completionsURL resolves the chat-completions endpoint for the base URL
func (c *Client) completionsURL() string {
	if strings.Contains(c.baseURL, "/chat/completions") {
		return c.baseURL
	}
	return c.baseURL + "/chat/completions"
}

// modelsURL resolves the models endpoint for the base URL
func (c *Client) modelsURL() string {
	if strings.Contains(c.baseURL, "/chat/completions") {
		return strings.Replace(c.baseURL, "/chat/completions", "/models", 1)
	}
	return c.baseURL + "/models"
}

// Complete sends a single-prompt chat completion and returns the trimmed
// assistant message.
func (c *Client) Complete(ctx context.Context, model, prompt string, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling GenAI Hub: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GenAI Hub returned %d: %s", resp.StatusCode, errorMessage(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("unexpected API response format")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// ListModelIDs fetches the raw model id list from the hub
func (c *Client) ListModelIDs(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling GenAI Hub: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GenAI Hub returned %d: %s", resp.StatusCode, errorMessage(data))
	}

	var parsed modelsResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Data))
	for _, model := range parsed.Data {
		if model.ID != "" {
			ids = append(ids, model.ID)
		}
	}

	return ids, nil
}

// setHeaders applies auth and content headers to an outgoing request
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// errorMessage extracts a server-provided message from an error body, falling
// back to the raw body when it is not in a known shape.
func errorMessage(body []byte) string {
	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Detail != "" {
			return parsed.Detail
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "no error detail provided"
	}
	return msg
}
