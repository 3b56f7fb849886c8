// Package mcp provides an MCP (Model Context Protocol) server adapter for holdings.
// It lets AI assistants normalise class titles, convert submissions and query
// the filing catalog.
package mcp

import "errors"

// ErrMissingTitleService is returned when the title service is not provided.
var ErrMissingTitleService = errors.New("mcp: title service is required")

// ErrServiceUnavailable is returned by tools whose backing service is not configured.
var ErrServiceUnavailable = errors.New("mcp: service not configured")
