// Package mcp provides an MCP (Model Context Protocol) server adapter for Verdex.
// It enables AI assistants like Claude to query verdict statistics and
// template recommendations from the local index.
package mcp

import "errors"

// ErrMissingRecommendationService is returned when the recommendation service is not provided.
var ErrMissingRecommendationService = errors.New("mcp: recommendation service is required")
