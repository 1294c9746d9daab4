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

// registerTodayTools registers the combined same-day overview tool
func registerTodayTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	todayTool := mcp.NewTool("get_today_summary",
		mcp.WithDescription("Get a summary of today's events and incomplete reminders"),
	)

	s.AddTool(todayTool, common.InstrumentedToolHandlerWithOperation("get_today_summary", "today", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			summary, err := sc.Engine().Today(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to build today summary: %v", err)), nil
			}

			payload, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize summary: %v", err)), nil
			}
			return mcp.NewToolResultText(string(payload)), nil
		}))

	return nil
}
