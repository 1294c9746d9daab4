package timezone_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"calmcp/internal/server"
	"calmcp/internal/timezone"
	"calmcp/internal/tools/common"
)

// RegisterTimezoneTools registers the time utility tools with the MCP server
func RegisterTimezoneTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	currentTimeTool := mcp.NewTool("get_current_time",
		mcp.WithDescription("Get the current time in a given IANA timezone, with ISO 8601 datetime and a Unix timestamp."),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone name, e.g. America/New_York (default: UTC)"),
		),
	)
	s.AddTool(currentTimeTool, common.InstrumentedToolHandler("get_current_time", sc, handleCurrentTime(sc)))

	convertTool := mcp.NewTool("convert_time",
		mcp.WithDescription("Convert a datetime between timezones. The input is read as wall-clock time in the source timezone, even when it carries its own offset."),
		mcp.WithString("datetime_str",
			mcp.Required(),
			mcp.Description("Datetime to convert, e.g. 2024-12-25T14:30:00 or 2024-12-25"),
		),
		mcp.WithString("from_timezone",
			mcp.Required(),
			mcp.Description("Source IANA timezone name"),
		),
		mcp.WithString("to_timezone",
			mcp.Required(),
			mcp.Description("Target IANA timezone name"),
		),
	)
	s.AddTool(convertTool, common.InstrumentedToolHandler("convert_time", sc, handleConvertTime(sc)))

	listZonesTool := mcp.NewTool("list_timezones",
		mcp.WithDescription("List known IANA timezone names, optionally restricted to one region."),
		mcp.WithString("region",
			mcp.Description("Region prefix such as America, Europe, or Asia (default: all regions)"),
		),
	)
	s.AddTool(listZonesTool, common.InstrumentedToolHandler("list_timezones", sc, handleListTimezones(sc)))

	return nil
}

func handleCurrentTime(sc *server.ServerContext) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		zone := common.GetStringArg(request.GetArguments(), "timezone", "UTC")

		result, err := sc.TimeZones().CurrentTime(zone)
		if err != nil {
			return timezoneErrorResult(err), nil
		}
		return marshalResult(result)
	}
}

func handleConvertTime(sc *server.ServerContext) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		datetimeStr, ok := args["datetime_str"].(string)
		if !ok || datetimeStr == "" {
			return mcp.NewToolResultError("datetime_str parameter is required"), nil
		}
		fromZone, ok := args["from_timezone"].(string)
		if !ok || fromZone == "" {
			return mcp.NewToolResultError("from_timezone parameter is required"), nil
		}
		toZone, ok := args["to_timezone"].(string)
		if !ok || toZone == "" {
			return mcp.NewToolResultError("to_timezone parameter is required"), nil
		}

		result, err := sc.TimeZones().Convert(datetimeStr, fromZone, toZone)
		if err != nil {
			return timezoneErrorResult(err), nil
		}
		return marshalResult(result)
	}
}

func handleListTimezones(sc *server.ServerContext) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		region := common.GetStringArg(request.GetArguments(), "region", "")
		zones := sc.TimeZones().ListZones(region)
		return marshalResult(zones)
	}
}

// timezoneErrorResult maps service errors to tool errors, keeping the
// sentinel messages intact for the client.
func timezoneErrorResult(err error) *mcp.CallToolResult {
	if errors.Is(err, timezone.ErrUnknownTimezone) || errors.Is(err, timezone.ErrInvalidDatetime) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("Time lookup failed: %v", err))
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
