package finder

import (
	"fmt"
	"strings"

	"github.com/darshanbagade/puch-mcp/pkg/price"
	"github.com/darshanbagade/puch-mcp/pkg/vision"
)

// formatURLReply renders the reply for a successful URL-mode lookup.
func formatURLReply(result price.Result) string {
	title := result.Title
	if title == "" {
		title = "Unknown Product"
	}

	var b strings.Builder
	b.WriteString("💰 **Product Price Found!**\n\n")
	fmt.Fprintf(&b, "**Product:** %s\n", title)
	fmt.Fprintf(&b, "**Current Price:** %s%.2f\n", result.Currency, result.Amount)
	fmt.Fprintf(&b, "**Source:** %s\n\n", result.Source)
	fmt.Fprintf(&b, "🔗 **Product Link:** %s\n\n", result.URL)
	b.WriteString("✅ This is the current listed price on the website.")
	return b.String()
}

// formatImageReply renders the reply for image mode: the vision analysis,
// the price estimate (plus a live search hit when one was found), and the
// storefront search links. Demo analyses carry an explicit warning banner.
func formatImageReply(analysis *vision.Analysis, estimate float64, live price.Result, links []string, demo bool) string {
	var b strings.Builder

	if demo {
		b.WriteString("⚠️ **DEMO MODE**: Unable to access your uploaded image. Using sample analysis for demonstration.\n\n")
	}

	b.WriteString("💰 **Product Price Analysis**\n\n")
	b.WriteString("**🔍 AI Analysis:**\n")
	if demo {
		fmt.Fprintf(&b, "**Demo Product:** %s\n", analysis.ProductName)
	} else {
		fmt.Fprintf(&b, "**Product:** %s\n", analysis.ProductName)
	}
	fmt.Fprintf(&b, "**Brand:** %s\n", fallback(analysis.Brand, "Unknown"))
	fmt.Fprintf(&b, "**Category:** %s\n", fallback(analysis.Category, "General"))
	fmt.Fprintf(&b, "**Model:** %s\n", fallback(analysis.Model, "Unknown"))
	fmt.Fprintf(&b, "**Confidence:** %s\n\n", fallback(analysis.Confidence, "Medium"))

	b.WriteString("**💵 Price Information:**\n")
	fmt.Fprintf(&b, "**Estimated Price:** $%.2f USD\n", estimate)
	fmt.Fprintf(&b, "**Price Range:** %s\n", fallback(analysis.PriceRange, "Unable to estimate"))
	if live.Found {
		fmt.Fprintf(&b, "**Live Listing:** %s%.2f (%s)\n", live.Currency, live.Amount, live.Source)
	}
	b.WriteString("\n")

	if len(links) > 0 {
		b.WriteString("**🛒 Where to Buy:**\n")
		b.WriteString(strings.Join(links, "\n"))
		b.WriteString("\n\n")
	}

	if demo {
		b.WriteString("📝 **Note:** This is a demo analysis. To get real product analysis, please ensure image upload is working properly or try providing a product URL instead.")
	} else {
		b.WriteString("📝 **Note:** Prices are estimates based on AI analysis. For exact pricing, visit the retailer websites directly.")
	}
	return b.String()
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) == "" {
		return alt
	}
	return value
}
