package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"
)

// OpenAIClient calls the OpenAI chat-completions API.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Option configures an OpenAIClient.
type Option func(*OpenAIClient)

// WithBaseURL overrides the API endpoint (tests, proxies, compatible servers).
func WithBaseURL(url string) Option {
	return func(c *OpenAIClient) { c.baseURL = url }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *OpenAIClient) {
		if model != "" {
			c.model = model
		}
	}
}

// NewOpenAIClient creates a client. The HTTP client carries the
// system-wide request timeout.
func NewOpenAIClient(apiKey string, opts ...Option) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: RequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete implements Completer against the chat-completions endpoint.
func (c *OpenAIClient) Complete(ctx context.Context, systemDirective, taskDirective string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", &Error{Kind: "auth", Message: "no API key configured"}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemDirective},
			{Role: "user", Content: taskDirective},
		},
		Temperature: temperature,
		MaxTokens:   MaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &Error{Kind: "timeout", Message: err.Error()}
		}
		return "", &Error{Kind: "transport", Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: "transport", Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.apiFailure(resp.StatusCode, data)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &Error{Kind: "api", Message: "malformed response: " + err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Kind: "api", Message: "response contained no choices"}
	}

	return parsed.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) apiFailure(status int, data []byte) *Error {
	kind := "api"
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = "auth"
	case http.StatusTooManyRequests:
		kind = "rate_limit"
	}

	var ae apiError
	if err := json.Unmarshal(data, &ae); err == nil && ae.Error.Message != "" {
		return &Error{Kind: kind, Message: ae.Error.Message}
	}
	return &Error{Kind: kind, Message: fmt.Sprintf("unexpected status %d", status)}
}

var _ Completer = (*OpenAIClient)(nil)
