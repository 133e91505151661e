package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByURL(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts a price from a served page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Write([]byte(`<title>Steam Iron</title><div class="price">$34.99</div>`))
		}))
		defer srv.Close()

		result := NewFetcher(5 * time.Second).LookupByURL(ctx, srv.URL)

		require.True(t, result.Found)
		assert.Equal(t, 34.99, result.Amount)
		assert.Equal(t, "$", result.Currency)
		assert.Equal(t, srv.URL, result.URL)
	})

	t.Run("HTTP 500 degrades instead of raising", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		result := NewFetcher(5 * time.Second).LookupByURL(ctx, srv.URL)

		assert.False(t, result.Found)
	})

	t.Run("timeout degrades instead of raising", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`$10.00`))
		}))
		defer srv.Close()

		result := NewFetcher(20 * time.Millisecond).LookupByURL(ctx, srv.URL)

		assert.False(t, result.Found)
	})

	t.Run("unreachable host degrades instead of raising", func(t *testing.T) {
		result := NewFetcher(time.Second).LookupByURL(ctx, "http://127.0.0.1:1/product")

		assert.False(t, result.Found)
	})

	t.Run("non-http schemes are rejected", func(t *testing.T) {
		fetcher := NewFetcher(time.Second)

		assert.False(t, fetcher.LookupByURL(ctx, "ftp://example.com/item").Found)
		assert.False(t, fetcher.LookupByURL(ctx, "not a url").Found)
	})

	t.Run("a page without prices degrades", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<p>Out of stock</p>`))
		}))
		defer srv.Close()

		result := NewFetcher(5 * time.Second).LookupByURL(ctx, srv.URL)

		assert.False(t, result.Found)
	})

	t.Run("same page content yields the same result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<div>$55.55</div>`))
		}))
		defer srv.Close()

		fetcher := NewFetcher(5 * time.Second)
		first := fetcher.LookupByURL(ctx, srv.URL)
		second := fetcher.LookupByURL(ctx, srv.URL)

		assert.Equal(t, first, second)
	})
}

func TestLookupByDescription(t *testing.T) {
	t.Run("empty descriptions degrade without a request", func(t *testing.T) {
		result := NewFetcher(time.Second).LookupByDescription(context.Background(), "")

		assert.False(t, result.Found)
	})
}
