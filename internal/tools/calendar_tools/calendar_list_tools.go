package calendar_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"calmcp/internal/server"
	"calmcp/internal/tools/common"
)

// registerCalendarListTools registers the calendar enumeration tool
func registerCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCalendarsTool := mcp.NewTool("list_calendars",
		mcp.WithDescription("List all available calendars with their names, types, and sources"),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithOperation("list_calendars", "calendars", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			calendars, err := sc.Engine().Calendars(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list calendars: %v", err)), nil
			}

			payload, err := json.MarshalIndent(calendars, "", "  ")
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize calendars: %v", err)), nil
			}
			return mcp.NewToolResultText(string(payload)), nil
		}))

	return nil
}
