package genai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatModelName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "claude-3-5-sonnet", want: "Claude 3.5 Sonnet"},
		{id: "claude-4-5-sonnet", want: "Claude 4.5 Sonnet"},
		{id: "claude-3-opus", want: "Claude 3 Opus"},
		{id: "llama3-1-405b", want: "Llama 3.1 405B"},
		{id: "llama4-maverick-17b", want: "Llama 4 Maverick 17B"},
		{id: "llama-guard", want: "Llama Guard"},
		{id: "some-other-model", want: "Some Other Model"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatModelName(tt.id))
		})
	}
}

func TestIsSupportedModel(t *testing.T) {
	assert.True(t, IsSupportedModel("claude-3-5-sonnet"))
	assert.True(t, IsSupportedModel("llama3-1-405b"))
	assert.False(t, IsSupportedModel("gpt-4"))
	assert.False(t, IsSupportedModel("mistral-large"))
	assert.False(t, IsSupportedModel(""))
}

func TestModelCatalog_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [
			{"id": "llama3-1-405b"},
			{"id": "gpt-4"},
			{"id": "claude-3-5-sonnet"}
		]}`))
	}))
	defer srv.Close()

	catalog := NewModelCatalog(NewClient(srv.URL, "key", testHTTPClient()))

	models, err := catalog.ListModels(context.Background())

	require.NoError(t, err)
	require.Len(t, models, 2, "unsupported families are filtered out")

	// Sorted by display name
	assert.Equal(t, "Claude 3.5 Sonnet", models[0].Name)
	assert.Equal(t, "claude-3-5-sonnet", models[0].ID)
	assert.Equal(t, "Llama 3.1 405B", models[1].Name)
	assert.Equal(t, "llama3-1-405b", models[1].OriginalName)
}

func TestValidator_ValidateCredentials(t *testing.T) {
	t.Run("accepts 200 from the models endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/models", r.URL.Path)
			assert.Equal(t, "Bearer candidate", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"data": []}`))
		}))
		defer srv.Close()

		v := NewValidator(testHTTPClient())

		ok, err := v.ValidateCredentials(context.Background(), "candidate", srv.URL+"/v1")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		v := NewValidator(testHTTPClient())

		ok, err := v.ValidateCredentials(context.Background(), "bad", srv.URL)

		require.NoError(t, err)
		assert.False(t, ok)
	})
}
