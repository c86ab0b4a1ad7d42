package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`bot:
  nick: atbot
store:
  backend: file
  root: %s
scheduler:
  tasks:
    store_maintenance:
      enabled: false
`, filepath.Join(dir, "data"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProfileSetAndGet(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "", "--config", cfg, "profile", "set", "Alice", "a", "careful", "tester")
	require.NoError(t, err)
	assert.Equal(t, "saved alice\n", out)

	out, err = execute(t, "", "--config", cfg, "profile", "get", "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "ALICE is a careful tester\n", out)

	_, err = execute(t, "", "--config", cfg, "profile", "get", "bob")
	assert.ErrorContains(t, err, "no profile for bob")
}

func TestProfileArgs(t *testing.T) {
	cfg := writeConfig(t)

	_, err := execute(t, "", "--config", cfg, "profile", "set", "alice")
	assert.Error(t, err)
	_, err = execute(t, "", "--config", cfg, "profile", "get")
	assert.Error(t, err)
}

func TestConsoleSharesStoreWithProfileCommands(t *testing.T) {
	cfg := writeConfig(t)

	_, err := execute(t, "", "--config", cfg, "profile", "set", "op", "the operator")
	require.NoError(t, err)

	out, err := execute(t, "@whoami\n@choose tea\n", "--config", cfg, "console", "--nick", "Op", "--channel", "#ops")
	require.NoError(t, err)
	assert.Equal(t, "[#ops] Op: you are the operator\n[#ops] Op: tea\n", out)
}

func TestRunWithoutTransportsFails(t *testing.T) {
	_, err := execute(t, "", "--config", writeConfig(t), "run")
	assert.ErrorContains(t, err, "no transports enabled")
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: memory\n"), 0o600))

	_, err := execute(t, "", "--config", path, "profile", "get", "x")
	assert.ErrorContains(t, err, "configuration error")
}
