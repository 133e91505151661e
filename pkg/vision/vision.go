// Package vision identifies products from images via a generative vision API.
// The API is injected behind the Analyzer interface so the rest of the system
// can be tested without live network access.
package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/invopop/jsonschema"
)

// Analysis is the structured product identification returned by a vision model.
type Analysis struct {
	ProductName string   `json:"product_name" jsonschema_description:"Name of the product"`
	Brand       string   `json:"brand" jsonschema_description:"Brand name if visible"`
	Category    string   `json:"category" jsonschema_description:"Product category (electronics, clothing, etc.)"`
	Model       string   `json:"model" jsonschema_description:"Model number or specific variant if visible"`
	KeyFeatures []string `json:"key_features" jsonschema_description:"Key features visible in the image"`
	PriceRange  string   `json:"estimated_price_range" jsonschema_description:"USD price range estimate (e.g. '$50-100')"`
	Confidence  string   `json:"confidence" jsonschema_description:"High/Medium/Low confidence in the identification"`
}

// Analyzer identifies a product from a base64-encoded image.
type Analyzer interface {
	Analyze(ctx context.Context, imageBase64 string) (*Analysis, error)
}

// analysisPrompt asks the model for exactly the fields in Analysis.
const analysisPrompt = `Analyze this product image and provide the following information in JSON format:
{
    "product_name": "Name of the product",
    "brand": "Brand name if visible",
    "category": "Product category (electronics, clothing, etc.)",
    "model": "Model number or specific variant if visible",
    "key_features": ["List of key features visible"],
    "estimated_price_range": "USD price range estimate (e.g., '$50-100')",
    "confidence": "High/Medium/Low confidence in identification"
}

Be as specific as possible about the product details.`

// GenerateSchema reflects a JSON schema for structured outputs.
func GenerateSchema[T any]() interface{} {
	// Structured Outputs uses a subset of JSON schema
	// These flags are necessary to comply with the subset
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

var analysisSchema = GenerateSchema[Analysis]()

// parseAnalysis decodes a model response into an Analysis. Models sometimes
// wrap JSON in markdown fences, so those are stripped first. Responses that
// still do not decode yield a low-confidence placeholder instead of an error.
func parseAnalysis(response string) *Analysis {
	text := response
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}

	analysis := &Analysis{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), analysis); err != nil {
		return &Analysis{
			ProductName: "Product identified but details unclear",
			Brand:       "Unknown",
			Category:    "General",
			Model:       "Unknown",
			KeyFeatures: []string{"Product visible in image"},
			PriceRange:  "Unable to estimate",
			Confidence:  "Low",
		}
	}
	return analysis
}

// imageDataURL builds a data URL for an uploaded image, sniffing the media
// type from the decoded bytes. Undecodable input is passed through as JPEG
// and left for the API to reject.
func imageDataURL(imageBase64 string) string {
	return "data:" + imageMediaType(imageBase64) + ";base64," + imageBase64
}

func imageMediaType(imageBase64 string) string {
	decoded, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil || len(decoded) == 0 {
		return "image/jpeg"
	}
	mediaType := http.DetectContentType(decoded)
	if !strings.HasPrefix(mediaType, "image/") {
		return "image/jpeg"
	}
	return mediaType
}
