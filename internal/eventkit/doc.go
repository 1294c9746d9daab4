// Package eventkit defines the boundary to the native calendar and
// reminder store. The Store interface mirrors the four capabilities the
// query engine consumes (enumerate calendars, enumerate events in a
// window, enumerate reminders, request authorization), and MemStore
// provides an in-memory implementation used for fixtures and tests.
//
// Raw records in this package carry the source's shape, including its
// numeric participant-status, availability and priority codes. Mapping
// those codes to human-readable values happens in the query package.
package eventkit
