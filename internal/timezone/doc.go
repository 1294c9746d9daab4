// Package timezone provides the stateless time utilities: current time
// in a named zone, wall-clock conversion between zones, and zone
// enumeration. It is independent of the calendar store.
//
// The IANA database is compiled into the binary via time/tzdata so
// lookups work on hosts without a system zoneinfo directory, and the
// zone list served to clients is a generated snapshot of the same
// database.
package timezone
