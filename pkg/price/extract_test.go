package price

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given a price extraction over raw text", t, func() {
		Convey("A dollar price is parsed with its symbol", func() {
			result := Extract(`<p>Only $19.99 today</p>`)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 19.99)
			So(result.Currency, ShouldEqual, "$")
		})

		Convey("Text without a currency-marked substring yields no result", func() {
			result := Extract(`<p>Call for pricing. Item number 42.</p>`)

			So(result.Found, ShouldBeFalse)
		})

		Convey("The first of multiple matches wins, consistently", func() {
			body := `<span>$10.50</span> <span>$99.99</span> <span>€5.00</span>`

			first := Extract(body)
			second := Extract(body)

			So(first.Found, ShouldBeTrue)
			So(first.Amount, ShouldEqual, 10.50)
			So(first, ShouldResemble, second)
		})

		Convey("Extraction is idempotent for identical input", func() {
			body := `<div class="price">₹1,299.00</div>`

			first := Extract(body)
			second := Extract(body)

			So(first, ShouldResemble, second)
			So(first.Amount, ShouldEqual, 1299.00)
			So(first.Currency, ShouldEqual, "₹")
		})

		Convey("Thousands separators are stripped", func() {
			result := Extract(`£2,499`)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 2499)
			So(result.Currency, ShouldEqual, "£")
		})

		Convey("A currency symbol with no digits yields no result", func() {
			result := Extract(`Prices from $ to be announced`)

			So(result.Found, ShouldBeFalse)
		})

		Convey("The product meta tag wins over page text", func() {
			body := `<head><meta property="product:price:amount" content="49.95">` +
				`<meta property="product:price:currency" content="EUR"></head>` +
				`<body><span>$99.99</span></body>`

			result := Extract(body)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 49.95)
			So(result.Currency, ShouldEqual, "€")
		})

		Convey("An amount always carries exactly one currency indicator", func() {
			result := Extract(`now $12.00`)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldBeGreaterThanOrEqualTo, 0)
			So(len([]rune(result.Currency)), ShouldEqual, 1)
		})
	})
}

func TestExtractForHost(t *testing.T) {
	Convey("Given site-aware extraction", t, func() {
		Convey("Amazon markers are used for amazon hosts", func() {
			body := `<span id="productTitle"> Sony WH-1000XM5 </span>` +
				`<span class="a-price"><span class="a-offscreen">$348.00</span></span>`

			result := ExtractForHost("www.amazon.com", body)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 348.00)
			So(result.Currency, ShouldEqual, "$")
			So(result.Title, ShouldEqual, "Sony WH-1000XM5")
			So(result.Source, ShouldEqual, "Amazon")
		})

		Convey("Flipkart markers default to rupees", func() {
			body := `<span class="B_NuCI">Samsung Galaxy S24</span>` +
				`<div class="Nx9bqj CxhGGd">₹62,999</div>`

			result := ExtractForHost("www.flipkart.com", body)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 62999)
			So(result.Currency, ShouldEqual, "₹")
			So(result.Source, ShouldEqual, "Flipkart")
		})

		Convey("eBay notranslate spans are parsed", func() {
			body := `<h1 class="x-item-title__mainTitle">Kindle Paperwhite</h1>` +
				`<span class="notranslate">US $129.99</span>`

			result := ExtractForHost("www.ebay.com", body)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 129.99)
			So(result.Source, ShouldEqual, "eBay")
		})

		Convey("Unknown hosts fall back to the generic scan with the page title", func() {
			body := `<title>Widget Shop</title><p>Price: €15.00</p>`

			result := ExtractForHost("shop.example.com", body)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 15.00)
			So(result.Currency, ShouldEqual, "€")
			So(result.Title, ShouldEqual, "Widget Shop")
			So(result.Source, ShouldEqual, "Generic")
		})

		Convey("A known host with unparseable markers degrades to the generic scan", func() {
			body := `<span class="a-offscreen">See options</span><p>from $25.00</p>`

			result := ExtractForHost("amazon.in", body)

			So(result.Found, ShouldBeTrue)
			So(result.Amount, ShouldEqual, 25.00)
			So(result.Source, ShouldEqual, "Amazon")
		})
	})
}

func TestParseAmount(t *testing.T) {
	Convey("Given raw price text", t, func() {
		cases := []struct {
			text   string
			amount float64
			ok     bool
		}{
			{"$19.99", 19.99, true},
			{"₹1,299", 1299, true},
			{"US $45.00", 45.00, true},
			{"free", 0, false},
			{"", 0, false},
			{"...", 0, false},
		}

		for _, c := range cases {
			amount, ok := parseAmount(c.text)
			So(ok, ShouldEqual, c.ok)
			if c.ok {
				So(amount, ShouldEqual, c.amount)
			}
		}
	})
}
