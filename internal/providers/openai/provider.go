// Package openai answers tracking queries through the OpenAI chat completions
// API (the "chatgpt" platform).
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ido-cryptoson/geo-platform/internal/config"
)

const systemPrompt = "You are a helpful assistant that provides restaurant recommendations " +
	"based on the user's location and preferences. Be specific and include real restaurant names when possible."

// Provider implements the AIProvider interface via the OpenAI SDK
type Provider struct {
	client *openai.Client
	model  string
}

// RecommendationResponse is the structured output shape requested from the
// model. The answer field carries the recommendation text the parser consumes.
type RecommendationResponse struct {
	Answer     string   `json:"answer" jsonschema_description:"The full recommendation text, including any ranked list"`
	KeyPoints  []string `json:"key_points" jsonschema_description:"3-5 key points from the answer"`
	Confidence string   `json:"confidence" jsonschema:"enum=high,enum=medium,enum=low" jsonschema_description:"Confidence level in the answer accuracy"`
}

// Generate the JSON schema at initialization time
var recommendationSchema = generateSchema[RecommendationResponse]()

func generateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// NewProvider creates a new OpenAI-backed provider
func NewProvider(cfg *config.Config) *Provider {
	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
	)
	return &Provider{
		client: &client,
		model:  "gpt-4o",
	}
}

func (p *Provider) Name() string {
	return "chatgpt"
}

// RunQuery sends one query and returns the raw recommendation text
func (p *Provider) RunQuery(ctx context.Context, query string) (string, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "recommendation_response",
		Description: openai.String("Structured restaurant recommendation"),
		Schema:      recommendationSchema,
		Strict:      openai.Bool(true),
	}

	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(query),
		},
		Model: openai.ChatModel(p.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	content := response.Choices[0].Message.Content

	// Unwrap the structured answer; fall back to the raw content when the
	// model did not honor the schema
	var structured RecommendationResponse
	if err := json.Unmarshal([]byte(content), &structured); err == nil && structured.Answer != "" {
		content = structured.Answer
		if len(structured.KeyPoints) > 0 {
			content += "\n\nKey Points:\n"
			for _, point := range structured.KeyPoints {
				content += fmt.Sprintf("• %s\n", point)
			}
		}
	}

	return content, nil
}
