package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIAnalyzer implements Analyzer using OpenAI vision models with
// structured outputs, so responses decode straight into Analysis.
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer creates an analyzer for OpenAI vision models. An empty
// apiKey falls back to the OPENAI_API_KEY environment variable; an empty
// model selects a structured-outputs capable default.
func NewOpenAIAnalyzer(apiKey, model string) *OpenAIAnalyzer {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if model == "" {
		// Only certain models can perform structured outputs
		model = openai.ChatModelGPT4o2024_08_06
	}
	return &OpenAIAnalyzer{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Analyze sends the image and the analysis prompt to the model and decodes
// the structured response.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, imageBase64 string) (*Analysis, error) {
	if imageBase64 == "" {
		return nil, errors.New("no image data provided")
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        openai.F("product_analysis"),
		Description: openai.F("Structured identification of a product in an image"),
		Schema:      openai.F(analysisSchema),
		Strict:      openai.Bool(true),
	}

	chat, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessageParts(
				openai.TextPart(analysisPrompt),
				openai.ImagePart(imageDataURL(imageBase64)),
			),
		}),
		ResponseFormat: openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONSchemaParam{
				Type:       openai.F(openai.ResponseFormatJSONSchemaTypeJSONSchema),
				JSONSchema: openai.F(schemaParam),
			},
		),
		Model: openai.F(a.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion error: %w", err)
	}

	if len(chat.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}

	return parseAnalysis(chat.Choices[0].Message.Content), nil
}
