package vision

import (
	"crypto/md5"
	"encoding/binary"
)

// demoCatalog is the sample analysis pool used when an uploaded image cannot
// be retrieved and the demo fallback is enabled. Every entry is marked as a
// demo analysis so it can never pass for a real identification.
var demoCatalog = []Analysis{
	{
		ProductName: "Philips Steam Iron",
		Brand:       "Philips",
		Category:    "home appliance",
		Model:       "GC1905",
		KeyFeatures: []string{"Steam Function", "Non-stick Soleplate", "Variable Temperature"},
		PriceRange:  "$25-45",
		Confidence:  "Medium (Demo Analysis)",
	},
	{
		ProductName: "Instant Pot",
		Brand:       "Instant Pot",
		Category:    "kitchen appliance",
		Model:       "Duo 7-in-1",
		KeyFeatures: []string{"Pressure Cooker", "Slow Cooker", "Rice Cooker"},
		PriceRange:  "$70-100",
		Confidence:  "Medium (Demo Analysis)",
	},
	{
		ProductName: "Lenovo ThinkPad E15",
		Brand:       "Lenovo",
		Category:    "laptop",
		Model:       "Business Laptop",
		KeyFeatures: []string{"15.6-inch Display", "Intel Core i5", "8GB RAM", "256GB SSD"},
		PriceRange:  "$599-799",
		Confidence:  "Medium (Demo Analysis)",
	},
	{
		ProductName: "HP Pavilion 15",
		Brand:       "HP",
		Category:    "laptop",
		Model:       "All-Purpose Laptop",
		KeyFeatures: []string{"15.6-inch FHD", "Intel Core i7", "16GB RAM", "512GB SSD"},
		PriceRange:  "$699-899",
		Confidence:  "Medium (Demo Analysis)",
	},
	{
		ProductName: "iPhone 15 Pro",
		Brand:       "Apple",
		Category:    "smartphone",
		Model:       "A3108",
		KeyFeatures: []string{"Pro Camera System", "Titanium Design", "A17 Pro Chip"},
		PriceRange:  "$999-1199",
		Confidence:  "Medium (Demo Analysis)",
	},
	{
		ProductName: "Samsung Galaxy S24",
		Brand:       "Samsung",
		Category:    "smartphone",
		Model:       "Flagship",
		KeyFeatures: []string{"Dynamic AMOLED", "AI Camera", "5G Connectivity"},
		PriceRange:  "$799-999",
		Confidence:  "Medium (Demo Analysis)",
	},
	{
		ProductName: "Sony WH-1000XM5",
		Brand:       "Sony",
		Category:    "headphones",
		Model:       "Wireless Noise Canceling",
		KeyFeatures: []string{"30-hour Battery", "Industry-leading Noise Canceling"},
		PriceRange:  "$350-400",
		Confidence:  "Medium (Demo Analysis)",
	},
	{
		ProductName: "Kindle Paperwhite",
		Brand:       "Amazon",
		Category:    "e-reader",
		Model:       "11th Generation",
		KeyFeatures: []string{"6.8-inch Display", "Waterproof", "Adjustable Light"},
		PriceRange:  "$130-180",
		Confidence:  "Medium (Demo Analysis)",
	},
}

// DemoAnalysis deterministically picks a sample analysis for an image ID.
// The same ID always maps to the same product, which keeps demo replies
// stable across repeated calls.
func DemoAnalysis(imageID string) *Analysis {
	sum := md5.Sum([]byte(imageID))
	index := binary.BigEndian.Uint64(sum[:8]) % uint64(len(demoCatalog))
	analysis := demoCatalog[index]
	return &analysis
}
