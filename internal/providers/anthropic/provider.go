// Package anthropic answers tracking queries through the Anthropic messages
// API (the "claude" platform).
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ido-cryptoson/geo-platform/internal/config"
)

// Provider implements the AIProvider interface via the Anthropic SDK
type Provider struct {
	client *anthropic.Client
	model  string
}

// NewProvider creates a new Anthropic-backed provider
func NewProvider(cfg *config.Config) *Provider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
	)
	return &Provider{
		client: &client,
		model:  "claude-sonnet-4-20250514",
	}
}

func (p *Provider) Name() string {
	return "claude"
}

// RunQuery sends one query and returns the raw recommendation text
func (p *Provider) RunQuery(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf("You are a knowledgeable local guide. Recommend restaurants with specific, "+
		"real names. When several options fit, present them as a ranked list.\n\nQuestion: %s", query)

	messages := []anthropic.MessageParam{{
		Content: []anthropic.ContentBlockParamUnion{{
			OfText: &anthropic.TextBlockParam{Text: prompt},
		}},
		Role: anthropic.MessageParamRoleUser,
	}}

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   1000,
		Messages:    messages,
		Temperature: anthropic.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("message request failed: %w", err)
	}

	text := extractResponseText(response)
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

func extractResponseText(response *anthropic.Message) string {
	var textParts []string
	for _, block := range response.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			textParts = append(textParts, variant.Text)
		}
	}
	return strings.Join(textParts, "")
}
