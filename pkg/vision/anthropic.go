package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicAnalyzer implements Analyzer using Claude vision models. Claude has
// no structured-output mode for images here, so the response is parsed with
// the fence-tolerant JSON decoder.
type AnthropicAnalyzer struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicAnalyzer creates an analyzer for Claude vision models. An empty
// apiKey falls back to the ANTHROPIC_API_KEY environment variable.
func NewAnthropicAnalyzer(apiKey, model string) *AnthropicAnalyzer {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if model == "" {
		model = "claude-3-5-sonnet-20240620"
	}
	return &AnthropicAnalyzer{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Analyze sends the image and the analysis prompt to Claude and decodes the
// textual response.
func (a *AnthropicAnalyzer) Analyze(ctx context.Context, imageBase64 string) (*Analysis, error) {
	if imageBase64 == "" {
		return nil, errors.New("no image data provided")
	}

	response, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(a.model),
		MaxTokens: anthropic.Int(1024),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(imageMediaType(imageBase64), imageBase64),
				anthropic.NewTextBlock(analysisPrompt),
			),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic completion error: %w", err)
	}

	text := ""
	for _, block := range response.Content {
		switch block := block.AsUnion().(type) {
		case anthropic.TextBlock:
			text += block.Text
		}
	}
	if text == "" {
		return nil, errors.New("no text content in response")
	}

	return parseAnalysis(text), nil
}
