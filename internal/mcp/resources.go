// resources.go implements MCP resource handlers for telemetry sessions.
//
// Resources give read-only access to recorded sessions via a URI scheme, so
// an LLM can pull a session into context without calling a tool.
// URIs look like seek://sessions/{id}; any unique ID prefix works.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/seek/extension"
	"github.com/mark3labs/mcp-go/mcp"
)

const sessionScheme = "seek://sessions/"

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a session URI without an ID.
	ErrEmptyID = errors.New("empty session id")
)

// readSession returns the session named by uri as JSON.
func readSession(ctx context.Context, extCtx extension.Context, uri string) ([]mcp.ResourceContents, error) {
	id, err := parseSessionURI(uri)
	if err != nil {
		return nil, err
	}
	rec, err := extCtx.Collector().Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseSessionURI extracts the session ID from seek://sessions/{id}.
func parseSessionURI(uri string) (string, error) {
	id, ok := strings.CutPrefix(uri, sessionScheme)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id = strings.Trim(id, "/")
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return id, nil
}
