// Package server provides the MCP server context, session tracking,
// health checks, and the metrics server for the calmcp application.
//
// # Key Components
//
// ServerContext wires the calendar store, the shared access gate, the
// query engine, and the timezone service together. Every tool package
// registers against it so all tools share one access grant and one
// engine.
//
// MetricsServer serves Prometheus metrics on a dedicated port, keeping
// operational metrics off the main transport.
//
// HealthChecker exposes liveness and readiness handlers for Kubernetes
// probes when the server runs over the streamable HTTP transport.
//
// SessionTracker tracks active sessions on the HTTP transport and
// reaps sessions that go quiet, keeping the active-session gauge
// accurate.
package server
