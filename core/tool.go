package core

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is the contract every tool registered with the server satisfies.
type Tool interface {
	Handle() mcp.Tool
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
