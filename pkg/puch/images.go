// Package puch retrieves user-uploaded images from the Puch AI platform by
// image ID. The platform has no documented download API, so a small set of
// known endpoint shapes is probed in order.
package puch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// imageEndpoints are the known URL shapes for fetching an uploaded image,
// tried in order until one yields usable image data.
var imageEndpoints = []string{
	"https://api.puch.ai/images/%s",
	"https://api.puch.ai/v1/images/%s",
	"https://api.puch.ai/files/%s",
	"https://puch.ai/api/images/%s",
	"https://puch.ai/images/%s",
	"https://puch.ai/files/%s",
	"https://api.puch.ai/image?id=%s",
	"https://puch.ai/api/image?id=%s",
}

// minImageBytes filters out error pages and empty placeholders masquerading
// as images.
const minImageBytes = 100

// ErrImageUnavailable reports that no endpoint returned usable image data.
var ErrImageUnavailable = errors.New("image unavailable from all endpoints")

// ImageClient fetches uploaded images by platform image ID.
type ImageClient struct {
	client    *http.Client
	endpoints []string
}

// NewImageClient creates an ImageClient with a per-request timeout.
func NewImageClient(timeout time.Duration) *ImageClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ImageClient{
		client:    &http.Client{Timeout: timeout},
		endpoints: imageEndpoints,
	}
}

// FetchImage retrieves the image with the given ID and returns it base64
// encoded. It accepts direct image responses, JSON envelopes carrying base64
// data or a download URL, and plain-text base64 bodies. When every endpoint
// fails it returns ErrImageUnavailable.
func (c *ImageClient) FetchImage(ctx context.Context, imageID string) (string, error) {
	if imageID == "" {
		return "", errors.New("empty image id")
	}

	for _, pattern := range c.endpoints {
		endpoint := fmt.Sprintf(pattern, imageID)
		data, err := c.tryEndpoint(ctx, endpoint)
		if err != nil {
			log.Debug("Image endpoint failed", "endpoint", endpoint, "error", err)
			continue
		}
		return data, nil
	}

	return "", ErrImageUnavailable
}

func (c *ImageClient) tryEndpoint(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Product-Price-Finder-MCP/1.0")
	req.Header.Set("Accept", "image/*,application/json,text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", errors.New("empty response body")
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.HasPrefix(contentType, "image/"):
		if len(body) < minImageBytes {
			return "", errors.New("image response too small")
		}
		return base64.StdEncoding.EncodeToString(body), nil

	case strings.Contains(contentType, "application/json"):
		return c.imageFromJSON(ctx, body)

	case strings.HasPrefix(contentType, "text/"):
		return imageFromText(body)
	}

	return "", fmt.Errorf("unsupported content type %q", contentType)
}

// imageFromJSON digs image data out of a JSON envelope, checking the known
// field names for inline base64 first and download URLs second.
func (c *ImageClient) imageFromJSON(ctx context.Context, body []byte) (string, error) {
	payload := map[string]any{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}

	for _, field := range []string{"image_data", "data", "base64", "content", "image", "file_data", "blob"} {
		value, ok := payload[field].(string)
		if !ok || len(value) < minImageBytes {
			continue
		}
		if _, err := base64.StdEncoding.DecodeString(value); err == nil {
			return value, nil
		}
	}

	for _, field := range []string{"url", "image_url", "file_url", "download_url", "src", "href"} {
		imageURL, ok := payload[field].(string)
		if !ok || imageURL == "" {
			continue
		}
		data, err := c.fetchFromURL(ctx, imageURL)
		if err != nil {
			log.Debug("Image URL from JSON envelope failed", "url", imageURL, "error", err)
			continue
		}
		return data, nil
	}

	return "", errors.New("no image data in JSON envelope")
}

func (c *ImageClient) fetchFromURL(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(body) < minImageBytes {
		return "", errors.New("image response too small")
	}
	return base64.StdEncoding.EncodeToString(body), nil
}

// imageFromText handles endpoints that return base64 data as plain text.
func imageFromText(body []byte) (string, error) {
	text := strings.TrimSpace(string(body))
	if len(text) < minImageBytes {
		return "", errors.New("text response too small")
	}
	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", err
	}
	if len(decoded) < minImageBytes {
		return "", errors.New("decoded image too small")
	}
	return text, nil
}
