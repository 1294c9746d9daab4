// Package reminder_tools provides the MCP tool for querying reminders.
package reminder_tools
