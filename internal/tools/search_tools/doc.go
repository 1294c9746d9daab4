// Package search_tools provides the MCP tool for full-text search over
// events and reminders.
package search_tools
