// Package calendar_tools provides MCP tools for querying calendar
// events and calendars.
//
// Tools: get_calendar_events (with its legacy alias get_events),
// list_calendars, and get_today_summary. All tools are read-only and
// share the server context's query engine and access gate.
package calendar_tools
