package search_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"calmcp/internal/query"
	"calmcp/internal/server"
	"calmcp/internal/tools/common"
)

// RegisterSearchTools registers the combined full-text search tool
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("search",
		mcp.WithDescription("Search events and reminders by text. Matches against titles, notes, and event locations. Uses a 30-day lookahead unless explicit dates are given, and surfaces completed reminders."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for (case-insensitive substring)"),
		),
		mcp.WithBoolean("search_events",
			mcp.Description("Search calendar events (default: true)"),
		),
		mcp.WithBoolean("search_reminders",
			mcp.Description("Search reminders (default: true)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date in YYYY-MM-DD format (default: today)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date in YYYY-MM-DD format (default: start_date + 30 days)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithOperation("search", "search", sc, handleSearch(sc)))

	return nil
}

func handleSearch(sc *server.ServerContext) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		text, ok := args["query"].(string)
		if !ok || text == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		q := query.SearchQuery{
			Query:           text,
			SearchEvents:    common.GetBoolArg(args, "search_events", true),
			SearchReminders: common.GetBoolArg(args, "search_reminders", true),
			StartDate:       common.GetStringArg(args, "start_date", ""),
			EndDate:         common.GetStringArg(args, "end_date", ""),
		}

		results, err := sc.Engine().Search(ctx, q)
		if err != nil {
			if errors.Is(err, query.ErrInvalidDate) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}

		payload, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize search results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
