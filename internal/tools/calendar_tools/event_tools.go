package calendar_tools

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

const eventToolDescription = `Get calendar events with full details including:
- Event title, description/notes, location
- Calendar name (which calendar the event belongs to)
- Start and end times
- RSVP status (Accepted, Declined, Tentative, Pending)
- Attendees list with their RSVP statuses
- Organizer information
- Whether it's an all-day event
- Meeting URL if available

Perfect for understanding your schedule, priorities, and commitments.`

// eventQueryOptions declares the shared parameter schema of the event
// listing tools.
func eventQueryOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithDescription(eventToolDescription),
		mcp.WithString("start_date",
			mcp.Description("Start date in YYYY-MM-DD format (default: today)"),
		),
		mcp.WithString("end_date",
			mcp.Description("End date in YYYY-MM-DD format (default: start_date + days_ahead)"),
		),
		mcp.WithArray("calendar_names",
			mcp.Description("Filter by specific calendar names (default: all calendars)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("days_ahead",
			mcp.Description("Number of days to look ahead if end_date not specified (default: 7)"),
		),
		mcp.WithString("attendee_name_pattern",
			mcp.Description("Case-insensitive substring matched against any attendee's name or email"),
		),
		mcp.WithArray("attendee_status_filter",
			mcp.Description("Keep events where any attendee carries one of these RSVP statuses (e.g. Accepted, Declined)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("all_day_only",
			mcp.Description("Only return all-day events (default: false)"),
		),
		mcp.WithBoolean("busy_only",
			mcp.Description("Only return events that block time as busy (default: false)"),
		),
	}
}

// eventQueryFromArgs builds an event query from loose request arguments.
// A missing days_ahead falls back to the 7-day default; an explicit
// zero keeps its same-day meaning.
func eventQueryFromArgs(args map[string]interface{}) query.EventQuery {
	return query.EventQuery{
		StartDate:            common.GetStringArg(args, "start_date", ""),
		EndDate:              common.GetStringArg(args, "end_date", ""),
		CalendarNames:        common.GetCalendarNamesFromArgs(args),
		DaysAhead:            common.GetIntArg(args, "days_ahead", query.DefaultDaysAhead),
		AttendeeNamePattern:  common.GetStringArg(args, "attendee_name_pattern", ""),
		AttendeeStatusFilter: common.GetStringSliceArg(args, "attendee_status_filter"),
		AllDayOnly:           common.GetBoolArg(args, "all_day_only", false),
		BusyOnly:             common.GetBoolArg(args, "busy_only", false),
	}
}

func handleGetEvents(sc *server.ServerContext) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q := eventQueryFromArgs(request.GetArguments())

		events, err := sc.Engine().Events(ctx, q)
		if err != nil {
			if errors.Is(err, query.ErrInvalidDate) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch events: %v", err)), nil
		}

		payload, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize events: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// registerEventTools registers the event listing tools. get_events is a
// legacy alias of get_calendar_events with the identical contract.
func registerEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	handler := handleGetEvents(sc)

	for _, name := range []string{"get_calendar_events", "get_events"} {
		tool := mcp.NewTool(name, eventQueryOptions()...)
		s.AddTool(tool, common.InstrumentedToolHandlerWithOperation(name, "events", sc, handler))
	}

	return nil
}
