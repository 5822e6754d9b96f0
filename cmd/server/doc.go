// Package main is the entry point for the filesystem API server.
//
// The server exposes a sandboxed view of a single base directory over a
// REST API: listing, metadata, text and binary content, uploads, and
// create/delete/copy/move mutations. Every client-supplied path is resolved
// through a containment gate before any filesystem call.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -base-dir /data
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
