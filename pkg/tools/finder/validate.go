// Package finder exposes the product price finder MCP tools.
package finder

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/darshanbagade/puch-mcp/core"
	"github.com/darshanbagade/puch-mcp/pkg/tools"
)

// ValidateTool answers the Puch AI ownership check with the configured
// phone number.
type ValidateTool struct {
	phoneNumber string
	handle      mcp.Tool
}

// NewValidateTool creates the validate tool required by the Puch AI platform.
func NewValidateTool(phoneNumber string) core.Tool {
	t := &ValidateTool{
		phoneNumber: phoneNumber,
	}

	t.handle = mcp.NewTool(
		"validate",
		mcp.WithDescription("Validation tool required by Puch AI. Returns the server owner's phone number."),
	)
	return t
}

// Handle returns the tool's definition.
func (t *ValidateTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *ValidateTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return tools.NewTextResult(t.phoneNumber), nil
}
