// Package query implements the calendar query engine: date-range
// resolution, projection of raw store records into their wire
// representations, the post-filter pipeline for events and reminders,
// and full-text search across both entity kinds.
//
// All operations share one DateRangeResolver so day-boundary behavior
// is identical across tools. Result order always follows the store's
// enumeration order; filters never re-sort.
package query
