package mcp

import (
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServer_RegistersCaptureTools(t *testing.T) {
	srv, err := NewServer(&cli.App{}, discardLogger())
	require.NoError(t, err)

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	var names []any
	for _, tool := range tools {
		names = append(names, tool["name"])
	}
	assert.Contains(t, names, "capture.parse")
	assert.Contains(t, names, "capture.add")
	assert.Contains(t, names, "capture.list")
}

func TestNewServer_RequiresApp(t *testing.T) {
	_, err := NewServer(nil, discardLogger())
	assert.Error(t, err)
}

func TestServe_RequiresArguments(t *testing.T) {
	assert.Error(t, Serve(t.Context(), nil, &cli.App{}, nil))
}

func TestMiddlewareStack_AddsAuthWithToken(t *testing.T) {
	open := middlewareStack("", discardLogger())
	secured := middlewareStack("secret", discardLogger())

	assert.Len(t, secured, len(open)+1)
}
