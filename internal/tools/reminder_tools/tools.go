package reminder_tools

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

const reminderToolDescription = `Get reminders/tasks with details including:
- Title and notes
- Due date and completion state
- Priority (high, medium, low)
- Which reminder list they belong to

Reminders without a due date only appear in unfiltered queries.`

// reminderQueryFromArgs builds a reminder query from loose request
// arguments. A missing days_ahead falls back to the 7-day default.
func reminderQueryFromArgs(args map[string]interface{}) query.ReminderQuery {
	return query.ReminderQuery{
		StartDate:        common.GetStringArg(args, "start_date", ""),
		EndDate:          common.GetStringArg(args, "end_date", ""),
		CalendarNames:    common.GetCalendarNamesFromArgs(args),
		IncludeCompleted: common.GetBoolArg(args, "include_completed", false),
		DaysAhead:        common.GetIntArg(args, "days_ahead", query.DefaultDaysAhead),
	}
}

func handleGetReminders(sc *server.ServerContext) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q := reminderQueryFromArgs(request.GetArguments())

		reminders, err := sc.Engine().Reminders(ctx, q)
		if err != nil {
			if errors.Is(err, query.ErrInvalidDate) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch reminders: %v", err)), nil
		}

		payload, err := json.MarshalIndent(reminders, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize reminders: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// RegisterReminderTools registers all reminder-related tools with the MCP server
func RegisterReminderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getRemindersTool := mcp.NewTool("get_reminders",
		mcp.WithDescription(reminderToolDescription),
		mcp.WithString("start_date",
			mcp.Description("Start date in YYYY-MM-DD format (default: today)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date in YYYY-MM-DD format (default: start_date + days_ahead)"),
		),
		mcp.WithArray("calendar_names",
			mcp.Description("Filter by specific reminder list names (default: all lists)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed reminders (default: false)"),
		),
		mcp.WithNumber("days_ahead",
			mcp.Description("Number of days to look ahead if end_date not specified (default: 7)"),
		),
	)

	s.AddTool(getRemindersTool, common.InstrumentedToolHandlerWithOperation("get_reminders", "reminders", sc, handleGetReminders(sc)))

	return nil
}
