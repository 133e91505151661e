// Command server is the main entry point for the Product Price Finder MCP server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/darshanbagade/puch-mcp/core"
	"github.com/darshanbagade/puch-mcp/pkg/auth"
	"github.com/darshanbagade/puch-mcp/pkg/config"
	"github.com/darshanbagade/puch-mcp/pkg/price"
	"github.com/darshanbagade/puch-mcp/pkg/puch"
	"github.com/darshanbagade/puch-mcp/pkg/tools/finder"
	"github.com/darshanbagade/puch-mcp/pkg/vision"
)

func main() {
	_ = godotenv.Load() // load .env if present; not fatal if missing

	cfg := config.Load()
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		log.Warn("Configuration incomplete", "error", err)
	}

	mcpServer := server.NewMCPServer(
		"Product Price Finder MCP Server",
		"1.0.0",
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)

	registry := NewToolRegistry(mcpServer)

	fetcher := price.NewFetcher(cfg.Price.FetchTimeout)
	images := puch.NewImageClient(cfg.Price.FetchTimeout)
	analyzer := newAnalyzer(cfg)

	registry.RegisterTool("validate", finder.NewValidateTool(cfg.Auth.PhoneNumber))
	registry.RegisterTool("find_product_price", finder.NewFindPriceTool(fetcher, analyzer, images, cfg.Price.DemoFallback))

	switch cfg.Server.Transport {
	case "stdio":
		log.Info("Serving MCP over stdio")
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatal("Server error", "error", err)
		}
	default:
		serveSSE(mcpServer, cfg)
	}
}

// serveSSE exposes the MCP server over SSE HTTP, gated by the bearer
// middleware so unauthorized requests never reach a tool handler.
func serveSSE(mcpServer *server.MCPServer, cfg *config.Config) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	baseURL := fmt.Sprintf("http://%s", addr)

	sseServer := server.NewSSEServer(mcpServer, server.WithBaseURL(baseURL))
	authenticator := auth.New(cfg.Auth.Token)

	srv := &http.Server{
		Addr:    addr,
		Handler: authenticator.Middleware(sseServer),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Serving MCP over SSE", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown", "error", err)
	}
	log.Info("Graceful shutdown complete")
}

func newAnalyzer(cfg *config.Config) vision.Analyzer {
	if cfg.Vision.Provider == "anthropic" {
		return vision.NewAnthropicAnalyzer(cfg.Vision.AnthropicAPIKey, cfg.Vision.Model)
	}
	return vision.NewOpenAIAnalyzer(cfg.Vision.OpenAIAPIKey, cfg.Vision.Model)
}

// ToolRegistry manages tool registration and lifecycle
type ToolRegistry struct {
	server *server.MCPServer
	tools  map[string]core.Tool
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry(mcpServer *server.MCPServer) *ToolRegistry {
	return &ToolRegistry{
		server: mcpServer,
		tools:  make(map[string]core.Tool),
	}
}

// RegisterTool registers a tool with the server
func (r *ToolRegistry) RegisterTool(name string, tool core.Tool) {
	r.tools[name] = tool
	r.server.AddTool(tool.Handle(), tool.Handler)
}
