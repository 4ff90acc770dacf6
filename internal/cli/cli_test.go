package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cybre/yeelight-office/internal/config"
	"github.com/cybre/yeelight-office/internal/state"
	"github.com/cybre/yeelight-office/internal/yeelight"
	"github.com/cybre/yeelight-office/internal/yeelight/yeelighttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(server *yeelighttest.Server) config.Config {
	return config.Config{
		Host:           server.Host(),
		Port:           server.Port(),
		ConnectionMode: yeelight.ModeSession,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
	}
}

func execute(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand(cfg)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApplyWorkScene(t *testing.T) {
	server := yeelighttest.NewServer(t, yeelighttest.OK)

	out, err := execute(t, testConfig(server), "--mode", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "scene work applied")
	assert.Equal(t, []string{"set_power", "set_bright", "set_rgb"}, server.Methods())
}

func TestApplyOffScenePerCommand(t *testing.T) {
	server := yeelighttest.NewServer(t, yeelighttest.OK)
	cfg := testConfig(server)
	cfg.ConnectionMode = yeelight.ModePerCommand

	_, err := execute(t, cfg, "--mode", "off")
	require.NoError(t, err)
	assert.Equal(t, []string{"set_power"}, server.Methods())
	assert.Equal(t, 1, server.Connections())
}

func TestModeIsRequired(t *testing.T) {
	server := yeelighttest.NewServer(t, yeelighttest.OK)

	_, err := execute(t, testConfig(server))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
	assert.Empty(t, server.Commands())
}

func TestUnknownMode(t *testing.T) {
	server := yeelighttest.NewServer(t, yeelighttest.OK)

	out, err := execute(t, testConfig(server), "--mode", "party")
	require.Error(t, err)
	assert.Contains(t, out, "unknown scene")
	assert.Empty(t, server.Commands())
}

func TestDeviceErrorFails(t *testing.T) {
	server := yeelighttest.NewServer(t, yeelighttest.FailMethod("set_rgb", -1, "unsupported"))

	out, err := execute(t, testConfig(server), "--mode", "warning")
	require.Error(t, err)

	var protocolErr *yeelight.ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Contains(t, out, "unsupported")
	assert.NotContains(t, out, "request:")
}

func TestDebugPrintsRawExchange(t *testing.T) {
	server := yeelighttest.NewServer(t, yeelighttest.FailMethod("set_bright", -1, "quota exceeded"))
	cfg := testConfig(server)
	cfg.ConnectionMode = yeelight.ModePerCommand

	out, err := execute(t, cfg, "--mode", "dnd", "--debug")
	require.Error(t, err)
	assert.Contains(t, out, `request:  {"id":2,"method":"set_bright","params":[75]}`)
	assert.Contains(t, out, `response: {"error":{"code":-1,"message":"quota exceeded"},"id":2}`)
	assert.Contains(t, out, "sending command")
	assert.Equal(t, []string{"set_power", "set_bright", "set_rgb"}, server.Methods())
}

func TestRecordsLastScene(t *testing.T) {
	server := yeelighttest.NewServer(t, yeelighttest.OK)
	cfg := testConfig(server)
	cfg.StateDir = filepath.Join(t.TempDir(), "state")

	_, err := execute(t, cfg, "--mode", "dnd")
	require.NoError(t, err)

	store, err := state.Open(cfg.StateDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	rec, ok, err := store.Last()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dnd", rec.Scene)
	assert.Equal(t, "session", rec.ConnectionMode)
	assert.True(t, rec.Succeeded)
	assert.Zero(t, rec.FailedSteps)
}
