// Package timezone_tools provides MCP tools for time lookups and
// timezone conversion: get_current_time, convert_time, and
// list_timezones.
package timezone_tools
