package price

import (
	"fmt"
	"net/url"
	"strings"
)

// SearchLinks builds search URLs for the major storefronts from a product
// query, for the "where to buy" section of image-mode replies.
func SearchLinks(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	escaped := url.QueryEscape(query)
	return []string{
		fmt.Sprintf("🛒 **Amazon:** https://www.amazon.com/s?k=%s", escaped),
		fmt.Sprintf("🛒 **Flipkart:** https://www.flipkart.com/search?q=%s", escaped),
		fmt.Sprintf("🛒 **eBay:** https://www.ebay.com/sch/i.html?_nkw=%s", escaped),
	}
}
