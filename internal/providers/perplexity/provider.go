// Package perplexity answers tracking queries through the Perplexity chat
// completions API. Perplexity grounds answers in live web results, so its
// responses tend to carry citations — exactly the signal the citation
// extractor looks for.
package perplexity

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ido-cryptoson/geo-platform/internal/config"
)

const defaultModel = "sonar-pro"

// Provider implements the AIProvider interface via the Perplexity HTTP API
type Provider struct {
	client *resty.Client
	model  string
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
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewProvider creates a new Perplexity-backed provider
func NewProvider(cfg *config.Config) *Provider {
	client := resty.New().
		SetBaseURL(cfg.PerplexityBaseURL).
		SetAuthToken(cfg.PerplexityAPIKey).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Provider{
		client: client,
		model:  defaultModel,
	}
}

func (p *Provider) Name() string {
	return "perplexity"
}

// RunQuery sends one query and returns the raw answer text. Any citations the
// API reports are appended as a sources block so the citation extractor sees
// them in the same text stream the other platforms produce.
func (p *Provider) RunQuery(ctx context.Context, query string) (string, error) {
	var result chatResponse
	var errBody apiError

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: p.model,
			Messages: []chatMessage{
				{Role: "user", Content: query},
			},
		}).
		SetResult(&result).
		SetError(&errBody).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("perplexity request failed: %w", err)
	}

	if resp.IsError() {
		if errBody.Error.Message != "" {
			return "", fmt.Errorf("perplexity API error: %s", errBody.Error.Message)
		}
		return "", fmt.Errorf("perplexity API error: %s", resp.Status())
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	content := result.Choices[0].Message.Content
	if len(result.Citations) > 0 {
		content += "\n\nSources:\n"
		for _, c := range result.Citations {
			content += fmt.Sprintf("- %s\n", c)
		}
	}

	return content, nil
}
