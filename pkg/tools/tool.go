// Package tools provides shared helpers for MCP tools
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// NewErrorResult creates a standard error result
func NewErrorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// NewTextResult creates a standard text result
func NewTextResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}
