// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docgen asks a chat completion API to document a source file.
package docgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/scriptdoc/internal/httputil"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

// ErrNoContent is returned when the API answers 2xx but carries no usable text.
var ErrNoContent = errors.New("completion returned no content")

// OpenRouter calls an OpenAI-compatible chat completions endpoint, by
// default OpenRouter's.
type OpenRouter struct {
	APIKey    string
	Model     string
	URL       string
	UserAgent string
	Client    *http.Client
}

// NewOpenRouter builds a client from configuration.
func NewOpenRouter(cfg types.Config, client *http.Client) *OpenRouter {
	url := cfg.OpenRouter.URL
	if url == "" {
		url = types.DefaultOpenRouterURL
	}
	return &OpenRouter{
		APIKey:    cfg.OpenRouter.APIKey,
		Model:     cfg.OpenRouter.Model,
		URL:       url,
		UserAgent: cfg.HTTP.UserAgent,
		Client:    client,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Generate sends one completion request for the file and returns the
// cleaned text of the first choice. A non-2xx answer is returned as a
// *httputil.StatusError. There is exactly one attempt.
func (o *OpenRouter) Generate(ctx context.Context, name, content string) (types.Documentation, error) {
	prompt, err := RenderPrompt(name, content)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	body, err := httputil.PostJSON(ctx, o.Client, httputil.Request{
		URL: o.URL,
		Payload: chatRequest{
			Model:    o.Model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		},
		UserAgent: o.UserAgent,
		Header:    http.Header{"Authorization": []string{"Bearer " + o.APIKey}},
	})
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoContent
	}

	doc := Clean(resp.Choices[0].Message.Content)
	if doc == "" {
		return "", ErrNoContent
	}
	return doc, nil
}
