package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "bot:\n  nick: atbot\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "atbot", cfg.Bot.Nick)
	assert.Equal(t, DefaultBotPrefix, cfg.Bot.Prefix)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, DefaultStoreRoot, cfg.Store.Root)
	assert.Equal(t, DefaultStoreFormat, cfg.Store.Format)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.False(t, cfg.Telegram.Enabled)
	assert.False(t, cfg.Discord.Enabled)
	assert.Empty(t, cfg.Metrics.Addr)

	task, ok := cfg.Scheduler.Tasks[MaintenanceTaskName]
	require.True(t, ok)
	assert.True(t, task.Enabled)
	assert.Equal(t, DefaultMaintenanceAt, task.Schedule)
}

func TestLoadConfigFileValues(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  json: true
bot:
  nick: helper
  prefix: "!"
store:
  backend: sqlite
  format: yaml
database:
  path: /tmp/helper.db
metrics:
  addr: ":9090"
telegram:
  enabled: true
  token: abc
scheduler:
  tasks:
    store_maintenance:
      enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "!", cfg.Bot.Prefix)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "yaml", cfg.Store.Format)
	assert.Equal(t, "/tmp/helper.db", cfg.Database.Path)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.True(t, cfg.Telegram.Enabled)
	assert.Equal(t, "abc", cfg.Telegram.Token)
	assert.False(t, cfg.Scheduler.Tasks[MaintenanceTaskName].Enabled)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "bot:\n  nick: fromfile\n")
	t.Setenv("ATBOT_BOT_NICK", "fromenv")
	t.Setenv("ATBOT_STORE_BACKEND", "memory")
	t.Setenv("ATBOT_DISCORD_ENABLED", "true")
	t.Setenv("ATBOT_DISCORD_TOKEN", "secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Bot.Nick)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.True(t, cfg.Discord.Enabled)
	assert.Equal(t, "secret", cfg.Discord.Token)
}

func TestLoadConfigMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("ATBOT_BOT_NICK", "envonly")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "envonly", cfg.Bot.Nick)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing nick", body: "log:\n  level: info\n"},
		{name: "bad log level", body: "bot:\n  nick: a\nlog:\n  level: loud\n"},
		{name: "unknown backend", body: "bot:\n  nick: a\nstore:\n  backend: floppy\n"},
		{name: "unknown format", body: "bot:\n  nick: a\nstore:\n  format: xml\n"},
		{name: "telegram without token", body: "bot:\n  nick: a\ntelegram:\n  enabled: true\n"},
		{name: "discord without token", body: "bot:\n  nick: a\ndiscord:\n  enabled: true\n"},
		{name: "redis without addr", body: "bot:\n  nick: a\nstore:\n  backend: redis\n"},
		{name: "s3 without bucket", body: "bot:\n  nick: a\nstore:\n  backend: s3\n"},
		{name: "prefix with space", body: "bot:\n  nick: a\n  prefix: \"@ \"\n"},
		{
			name: "enabled task without schedule",
			body: "bot:\n  nick: a\nscheduler:\n  tasks:\n    other:\n      enabled: true\n",
		},
		{name: "malformed yaml", body: "bot: [nick\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}
