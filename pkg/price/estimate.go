package price

import (
	"math"
	"strings"
)

// basePrices maps product categories to a rough USD anchor price. Ordered
// slice rather than a map so estimates are deterministic for a given input.
var basePrices = []struct {
	category string
	base     float64
}{
	{"smartphone", 300},
	{"laptop", 800},
	{"headphones", 100},
	{"camera", 400},
	{"gaming", 200},
	{"smartwatch", 150},
	{"watch", 150},
	{"electronics", 100},
	{"clothing", 50},
	{"shoes", 80},
	{"kitchen", 60},
	{"furniture", 200},
	{"home", 75},
	{"book", 15},
	{"toy", 25},
}

// premiumBrands carry a price premium over the category anchor.
var premiumBrands = []string{
	"apple", "samsung", "sony", "nike", "adidas", "gucci", "louis vuitton",
}

// Estimate produces a ballpark USD price from an analyzed product category
// and brand. It is an estimate, not a quoted price, and callers must present
// it as such. The same inputs always produce the same estimate.
func Estimate(category, brand string) float64 {
	category = strings.ToLower(category)
	brand = strings.ToLower(brand)

	estimated := 50.0 // default anchor for unrecognized categories
	for _, entry := range basePrices {
		if strings.Contains(category, entry.category) {
			estimated = entry.base
			break
		}
	}

	for _, premium := range premiumBrands {
		if strings.Contains(brand, premium) {
			estimated *= 1.5
			break
		}
	}

	return math.Round(estimated*100) / 100
}
