package finder

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/darshanbagade/puch-mcp/core"
	"github.com/darshanbagade/puch-mcp/pkg/price"
	"github.com/darshanbagade/puch-mcp/pkg/tools"
	"github.com/darshanbagade/puch-mcp/pkg/tools/utils"
	"github.com/darshanbagade/puch-mcp/pkg/vision"
)

// PriceLookup is the engine capability the tool depends on. Lookups always
// return a degraded Result instead of an error.
type PriceLookup interface {
	LookupByURL(ctx context.Context, url string) price.Result
	LookupByDescription(ctx context.Context, description string) price.Result
}

// ImageSource retrieves uploaded images by platform image ID.
type ImageSource interface {
	FetchImage(ctx context.Context, imageID string) (string, error)
}

// RichToolDescription is the structured tool description format the Puch AI
// platform expects, serialized into the MCP description field.
type RichToolDescription struct {
	Description string `json:"description"`
	UseWhen     string `json:"use_when"`
	SideEffects string `json:"side_effects,omitempty"`
}

var findPriceDescription = RichToolDescription{
	Description: "Find the actual price of a product by analyzing an image or product URL. Upload a product image to get AI-powered price analysis, or provide a direct product URL from Amazon, Flipkart, or eBay to get current pricing.",
	UseWhen:     "User uploads a product image or provides a product URL and wants to know the current market price. Works with photos of products, screenshots of listings, or direct e-commerce links.",
	SideEffects: "Analyzes product images using AI vision, searches e-commerce sites for pricing, and returns current market price information with product details",
}

// FindPriceTool finds a product's price from a URL or an uploaded image.
type FindPriceTool struct {
	lookup       PriceLookup
	analyzer     vision.Analyzer
	images       ImageSource
	demoFallback bool
	handle       mcp.Tool
}

// NewFindPriceTool wires the price engine, vision analyzer and image source
// into the find_product_price tool. When demoFallback is set, an image that
// cannot be retrieved produces a clearly labeled demo analysis instead of a
// failure reply; placeholder data is never presented as real pricing.
func NewFindPriceTool(lookup PriceLookup, analyzer vision.Analyzer, images ImageSource, demoFallback bool) core.Tool {
	description, _ := json.Marshal(findPriceDescription)

	t := &FindPriceTool{
		lookup:       lookup,
		analyzer:     analyzer,
		images:       images,
		demoFallback: demoFallback,
	}

	t.handle = mcp.NewTool(
		"find_product_price",
		mcp.WithDescription(string(description)),
		mcp.WithString(
			"puch_user_id",
			mcp.Required(),
			mcp.Description("Puch User Unique Identifier"),
		),
		mcp.WithString(
			"product_url",
			mcp.Description("Product URL (Amazon, Flipkart, eBay)"),
		),
		mcp.WithString(
			"puch_image_data",
			mcp.Description("Base64-encoded product image"),
		),
		mcp.WithString(
			"image_id_for_tool",
			mcp.Description("Puch AI image ID for tool processing"),
		),
	)
	return t
}

// Handle returns the tool's definition.
func (t *FindPriceTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool. Every outcome is a text result; outbound
// failures degrade to an "unable to retrieve price" reply rather than an
// error surfaced to the caller.
func (t *FindPriceTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := utils.GetRequiredStringParam(request, "puch_user_id")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	productURL, _ := utils.GetOptionalStringParam(request, "product_url")
	imageData, _ := utils.GetOptionalStringParam(request, "puch_image_data")
	imageID, _ := utils.GetOptionalStringParam(request, "image_id_for_tool")

	requestID := uuid.NewString()
	log.Info("Handling find_product_price",
		"request_id", requestID,
		"user_id", userID,
		"has_url", productURL != "",
		"has_image", imageData != "" || imageID != "")

	if productURL == "" && imageData == "" && imageID == "" {
		return tools.NewErrorResult(errors.New("invalid_argument: please provide either a product URL or upload an image")), nil
	}

	if productURL != "" {
		return t.handleURL(ctx, requestID, productURL), nil
	}
	return t.handleImage(ctx, requestID, imageData, imageID), nil
}

func (t *FindPriceTool) handleURL(ctx context.Context, requestID, productURL string) *mcp.CallToolResult {
	result := t.lookup.LookupByURL(ctx, productURL)
	if !result.Found {
		log.Info("URL lookup degraded", "request_id", requestID, "url", productURL)
		return tools.NewTextResult("❌ Unable to fetch price from this URL. Please try a different product link.")
	}

	log.Info("URL lookup succeeded",
		"request_id", requestID,
		"source", result.Source,
		"amount", result.Amount)
	return tools.NewTextResult(formatURLReply(result))
}

func (t *FindPriceTool) handleImage(ctx context.Context, requestID, imageData, imageID string) *mcp.CallToolResult {
	analysis, demo := t.analyzeImage(ctx, requestID, imageData, imageID)
	if analysis == nil {
		return tools.NewTextResult("❌ Unable to process the image. Please try uploading the image again or use a product URL instead.")
	}

	estimate := price.Estimate(analysis.Category, analysis.Brand)

	query := strings.TrimSpace(analysis.Brand + " " + analysis.ProductName)
	if query == "" {
		query = analysis.Category
	}

	// Best effort: a live price from a shopping search beats a bare estimate.
	var live price.Result
	if !demo {
		live = t.lookup.LookupByDescription(ctx, query)
	}

	log.Info("Image lookup finished",
		"request_id", requestID,
		"product", analysis.ProductName,
		"demo", demo,
		"live_price", live.Found)
	return tools.NewTextResult(formatImageReply(analysis, estimate, live, price.SearchLinks(query), demo))
}

// analyzeImage resolves the image bytes and runs vision analysis. The demo
// return value reports whether the analysis is sample data rather than a
// real identification.
func (t *FindPriceTool) analyzeImage(ctx context.Context, requestID, imageData, imageID string) (analysis *vision.Analysis, demo bool) {
	if imageData == "" && imageID != "" {
		fetched, err := t.images.FetchImage(ctx, imageID)
		if err != nil {
			log.Warn("Image fetch failed", "request_id", requestID, "image_id", imageID, "error", err)
			if t.demoFallback {
				return vision.DemoAnalysis(imageID), true
			}
			return nil, false
		}
		imageData = fetched
	}

	result, err := t.analyzer.Analyze(ctx, imageData)
	if err != nil {
		log.Error("Vision analysis failed", "request_id", requestID, "error", err)
		return nil, false
	}
	return result, false
}
