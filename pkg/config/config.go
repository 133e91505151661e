// Package config provides centralized configuration management for the
// Product Price Finder MCP server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete configuration for the application
type Config struct {
	// Server configuration
	Server struct {
		Host      string
		Port      int
		Transport string // "sse" or "stdio"
	}

	// Bearer auth configuration
	Auth struct {
		Token       string
		PhoneNumber string
	}

	// Vision API configuration
	Vision struct {
		Provider        string // "openai" or "anthropic"
		OpenAIAPIKey    string
		AnthropicAPIKey string
		Model           string
	}

	// Price lookup configuration
	Price struct {
		FetchTimeout time.Duration
		DemoFallback bool
	}

	Debug bool
}

var (
	once   sync.Once
	config *Config
)

// Load initializes and loads the configuration from environment variables
func Load() *Config {
	once.Do(func() {
		v := viper.New()

		// Set default values
		v.SetDefault("server.host", "0.0.0.0")
		v.SetDefault("server.port", 8086)
		v.SetDefault("server.transport", "sse")
		v.SetDefault("vision.provider", "openai")
		v.SetDefault("price.fetch_timeout_seconds", 10)

		// Load from environment variables
		v.AutomaticEnv()

		config = &Config{}

		// Server
		config.Server.Host = v.GetString("server.host")
		if host := os.Getenv("HOST"); host != "" {
			config.Server.Host = host
		}
		config.Server.Port = v.GetInt("server.port")
		if port := os.Getenv("PORT"); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				config.Server.Port = p
			}
		}
		config.Server.Transport = v.GetString("server.transport")
		if transport := os.Getenv("MCP_TRANSPORT"); transport != "" {
			config.Server.Transport = transport
		}

		// Auth
		config.Auth.Token = os.Getenv("AUTH_TOKEN")
		config.Auth.PhoneNumber = os.Getenv("MY_NUMBER")

		// Vision
		config.Vision.Provider = v.GetString("vision.provider")
		if provider := os.Getenv("VISION_PROVIDER"); provider != "" {
			config.Vision.Provider = provider
		}
		config.Vision.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
		config.Vision.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
		config.Vision.Model = os.Getenv("VISION_MODEL")

		// Price lookup
		config.Price.FetchTimeout = time.Duration(v.GetInt("price.fetch_timeout_seconds")) * time.Second
		if secs := os.Getenv("FETCH_TIMEOUT_SECONDS"); secs != "" {
			if s, err := strconv.Atoi(secs); err == nil && s > 0 {
				config.Price.FetchTimeout = time.Duration(s) * time.Second
			}
		}
		config.Price.DemoFallback = os.Getenv("DEMO_FALLBACK") == "true"

		config.Debug = os.Getenv("DEBUG") == "true"
	})

	return config
}

// Validate checks if all required configuration values are set
func (c *Config) Validate() error {
	// List of validation errors
	var errors []string

	if c.Auth.Token == "" {
		errors = append(errors, "AUTH_TOKEN must be set for bearer authentication")
	}

	if c.Auth.PhoneNumber == "" {
		errors = append(errors, "MY_NUMBER must be set for the validate tool")
	}

	// The vision provider needs a key for image analysis to work
	switch c.Vision.Provider {
	case "openai":
		if c.Vision.OpenAIAPIKey == "" {
			errors = append(errors, "OPENAI_API_KEY is required for image analysis")
		}
	case "anthropic":
		if c.Vision.AnthropicAPIKey == "" {
			errors = append(errors, "ANTHROPIC_API_KEY is required for image analysis")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown vision provider %q", c.Vision.Provider))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}
