package price

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// currencyPattern matches a currency symbol followed by digits with optional
// thousands separators and a decimal part. The first match in document order
// wins; there is no ranking across candidates.
var currencyPattern = regexp.MustCompile(`[$₹€£]\s?\d[\d,]*(?:\.\d+)?`)

// metaPricePattern matches the Open Graph product price meta tag, which is
// checked before scanning the page text.
var (
	metaPricePattern    = regexp.MustCompile(`<meta[^>]*property="product:price:amount"[^>]*content="([^"]*)"`)
	metaCurrencyPattern = regexp.MustCompile(`<meta[^>]*property="product:price:currency"[^>]*content="([^"]*)"`)
	titlePattern        = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	tagPattern          = regexp.MustCompile(`<[^>]*>`)
)

// Site-specific markers, mirroring the selectors the big storefronts use.
var (
	amazonPricePattern   = regexp.MustCompile(`(?is)<span[^>]*class="[^"]*a-offscreen[^"]*"[^>]*>(.*?)</span>`)
	amazonTitlePattern   = regexp.MustCompile(`(?is)<span[^>]*id="productTitle"[^>]*>(.*?)</span>`)
	flipkartPricePattern = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*(?:_30jeq3|Nx9bqj|_1_WHN1)[^"]*"[^>]*>(.*?)</div>`)
	flipkartTitlePattern = regexp.MustCompile(`(?is)<(?:span|h1)[^>]*class="[^"]*(?:B_NuCI|VU-ZEz|yhB1nd)[^"]*"[^>]*>(.*?)</(?:span|h1)>`)
	ebayPricePattern     = regexp.MustCompile(`(?is)<span[^>]*class="[^"]*notranslate[^"]*"[^>]*>(.*?)</span>`)
	ebayTitlePattern     = regexp.MustCompile(`(?is)<h1[^>]*class="[^"]*x-item-title[^"]*"[^>]*>(.*?)</h1>`)
)

// Extract scans arbitrary markup or text for the first price-like substring
// and normalizes it. Malformed or absent price text yields Found=false,
// never an error. Extraction is pure: the same input always produces the
// same result.
func Extract(body string) Result {
	if m := metaPricePattern.FindStringSubmatch(body); m != nil {
		if amount, ok := parseAmount(m[1]); ok {
			currency := "$"
			if c := metaCurrencyPattern.FindStringSubmatch(body); c != nil {
				currency = currencySymbol(c[1])
			}
			return Result{
				Found:    true,
				Amount:   amount,
				Currency: currency,
				Source:   "Generic",
				Snippet:  m[1],
			}
		}
	}

	match := currencyPattern.FindString(body)
	if match == "" {
		return Result{Found: false}
	}

	amount, ok := parseAmount(match)
	if !ok {
		return Result{Found: false}
	}

	return Result{
		Found:    true,
		Amount:   amount,
		Currency: string([]rune(match)[0]),
		Source:   "Generic",
		Snippet:  match,
	}
}

// ExtractForHost applies site-aware extraction for the storefronts we know,
// falling back to the generic scan for everything else. The host decides which
// markers to try and which currency the site lists in.
func ExtractForHost(host, body string) Result {
	host = strings.ToLower(host)

	switch {
	case strings.Contains(host, "amazon"):
		return extractWithMarkers(body, amazonPricePattern, amazonTitlePattern, "$", "Amazon")
	case strings.Contains(host, "flipkart"):
		return extractWithMarkers(body, flipkartPricePattern, flipkartTitlePattern, "₹", "Flipkart")
	case strings.Contains(host, "ebay"):
		return extractWithMarkers(body, ebayPricePattern, ebayTitlePattern, "$", "eBay")
	}

	result := Extract(body)
	result.Title = extractTitle(body, titlePattern)
	return result
}

// extractWithMarkers walks the site's price markers in document order and
// keeps the first one that parses. When no marker yields a price the generic
// scan takes over, so a redesigned page degrades instead of failing.
func extractWithMarkers(body string, pricePattern, titleRe *regexp.Regexp, currency, source string) Result {
	title := extractTitle(body, titleRe)
	if title == "" {
		title = extractTitle(body, titlePattern)
	}

	for _, m := range pricePattern.FindAllStringSubmatch(body, -1) {
		text := cleanText(m[1])
		amount, ok := parseAmount(text)
		if !ok {
			continue
		}
		if sym := firstCurrencySymbol(text); sym != "" {
			currency = sym
		}
		return Result{
			Found:    true,
			Amount:   amount,
			Currency: currency,
			Title:    title,
			Source:   source,
			Snippet:  text,
		}
	}

	result := Extract(body)
	result.Title = title
	if result.Found {
		result.Source = source
	}
	return result
}

// parseAmount strips everything but digits and the decimal separator and
// parses the remainder. Negative amounts cannot occur because the sign is
// stripped with the rest of the noise.
func parseAmount(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < 0 {
		return 0, false
	}
	return amount, true
}

func firstCurrencySymbol(text string) string {
	for _, r := range text {
		switch r {
		case '$', '₹', '€', '£':
			return string(r)
		}
	}
	return ""
}

// currencySymbol maps ISO currency codes from meta tags to display symbols.
func currencySymbol(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "USD", "":
		return "$"
	case "INR":
		return "₹"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return strings.TrimSpace(code)
	}
}

func extractTitle(body string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return cleanText(m[1])
}

// cleanText strips nested tags and entities from an extracted fragment.
func cleanText(fragment string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(fragment, "")))
}
