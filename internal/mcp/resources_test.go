package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/telemetry"
	"github.com/jpl-au/seek/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr error
	}{
		{"seek://sessions/abc123", "abc123", nil},
		{"seek://sessions/abc123/", "abc123", nil},
		{"seek://sessions/", "", ErrEmptyID},
		{"seek://documents/abc", "", ErrInvalidURI},
		{"seek://sessions/a/b", "", ErrInvalidURI},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseSessionURI(tt.uri)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func testContext(t *testing.T) extension.Context {
	t.Helper()
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	engine := search.New(ws, search.WithCollector(telemetry.NewCollector(true)))
	return extension.NewContext(engine, nil, nil)
}

func TestReadSession(t *testing.T) {
	extCtx := testContext(t)
	rec, ok := extCtx.Collector().StartSession("TODO", "grep", ".").Complete()
	require.True(t, ok)

	uri := sessionScheme + rec.ID[:8]
	contents, err := readSession(context.Background(), extCtx, uri)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, uri, text.URI)

	var got telemetry.Record
	require.NoError(t, json.Unmarshal([]byte(text.Text), &got))
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "TODO", got.Query)

	_, err = readSession(context.Background(), extCtx, sessionScheme+"missing")
	assert.ErrorIs(t, err, telemetry.ErrNotFound)
}

func TestGetGuide(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"topic": "search"}
	res, err := getGuide(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	req.Params.Arguments = map[string]any{"topic": "no-such-topic"}
	res, err = getGuide(context.Background(), req)
	require.NoError(t, err)
	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "available_topics")
}

func TestNew_RegistersExtensionTools(t *testing.T) {
	called := false
	tools := []extension.MCPTool{{
		Tool: mcp.NewTool("test_echo"),
		Handler: func(_ context.Context, _ extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			called = true
			return mcp.NewToolResultText("ok"), nil
		},
	}}
	s := New(testContext(t), tools)

	registered := s.ListTools()
	require.Contains(t, registered, "test_echo")
	require.Contains(t, registered, "seek_guide")

	_, err := registered["test_echo"].Handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called)
}
