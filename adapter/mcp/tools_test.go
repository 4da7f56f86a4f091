package mcp

import (
	"testing"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
)

func newTestServer() *mcp.Server {
	return mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})
}

func TestRegisterCLITools_ListTools(t *testing.T) {
	srv := newTestServer()

	app := &cli.App{}
	require.NoError(t, RegisterCLITools(srv, ToolDependencies{App: app}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		if name, ok := tool["name"].(string); ok {
			names[name] = true
		}
	}
	for _, want := range []string{
		"cli.health", "cli.version",
		"capture.parse", "capture.add", "capture.list", "capture.show", "capture.confirm",
	} {
		assert.True(t, names[want], "%s tool should be registered", want)
	}
}

func TestRegisterCLITools_RequiresDependencies(t *testing.T) {
	assert.Error(t, RegisterCLITools(nil, ToolDependencies{App: &cli.App{}}))
	assert.Error(t, RegisterCLITools(newTestServer(), ToolDependencies{}))
}

func TestRegisterResourcesAndPrompts(t *testing.T) {
	srv := newTestServer()
	deps := ToolDependencies{App: &cli.App{}}

	assert.NoError(t, RegisterResources(srv, deps))
	assert.NoError(t, RegisterPrompts(srv, deps))
	assert.Error(t, RegisterResources(nil, deps))
	assert.Error(t, RegisterPrompts(nil, deps))
}

func TestParseUUID(t *testing.T) {
	_, err := parseUUID("")
	assert.Error(t, err)

	_, err = parseUUID("abc")
	assert.Error(t, err)

	id, err := parseUUID("00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", id.String())
}
