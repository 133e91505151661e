// Package price implements the price lookup engine: fetching product pages,
// extracting a price-like substring from the markup, and normalizing it into
// a result the tools can format for the caller.
package price

// Result is the outcome of a single price lookup. It is created per request
// and never persisted.
type Result struct {
	// Found reports whether a plausible price was located.
	Found bool

	// Amount is the parsed price. Non-negative whenever Found is true.
	Amount float64

	// Currency is the single currency indicator attached to the amount,
	// e.g. "$" or "₹".
	Currency string

	// Title is the product title when one could be extracted.
	Title string

	// Source labels where the result came from ("Amazon", "Generic", ...).
	Source string

	// URL is the page the price was extracted from.
	URL string

	// Snippet is the raw matched price text, useful for debugging.
	Snippet string
}
