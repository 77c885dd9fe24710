package partner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Complete(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Generated prose."}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", WithBaseURL(srv.URL), WithModel("test-model"))

	got, err := c.Complete(context.Background(), "system text", "task text", 0.625)
	require.NoError(t, err)
	assert.Equal(t, "Generated prose.", got)

	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system text", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "task text", captured.Messages[1].Content)
	assert.InDelta(t, 0.625, captured.Temperature, 1e-9)
	assert.Equal(t, MaxOutputTokens, captured.MaxTokens)
}

func TestOpenAIClient_NoAPIKey(t *testing.T) {
	c := NewOpenAIClient("")

	_, err := c.Complete(context.Background(), "s", "t", 0.5)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "auth", pe.Kind)
}

func TestOpenAIClient_APIErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   string
	}{
		{http.StatusUnauthorized, "auth"},
		{http.StatusTooManyRequests, "rate_limit"},
		{http.StatusInternalServerError, "api"},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "nope", "type": "test"},
			})
		}))

		c := NewOpenAIClient("key", WithBaseURL(srv.URL))
		_, err := c.Complete(context.Background(), "s", "t", 0.5)

		var pe *Error
		require.ErrorAs(t, err, &pe, "status %d", tc.status)
		assert.Equal(t, tc.kind, pe.Kind, "status %d", tc.status)
		assert.Equal(t, "nope", pe.Message)

		srv.Close()
	}
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAIClient("key", WithBaseURL(srv.URL))
	_, err := c.Complete(context.Background(), "s", "t", 0.5)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "api", pe.Kind)
}
