// Package logging provides structured logging utilities for calmcp.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (attendee email anonymization)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "events.list")
//	logger.Info("listing events",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("attendee matched",
//	    logging.AttendeeHash(email))
//
// # Security Considerations
//
// Attendee and organizer emails are hashed before logging to prevent
// PII leakage while still allowing correlation across entries. All logs
// go to stderr so stdout stays clean for the stdio transport.
package logging
