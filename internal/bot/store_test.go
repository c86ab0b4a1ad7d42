package bot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/atbot/internal/config"
	"github.com/edgard/atbot/internal/store"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "memory", cfg: config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}}},
		{
			name: "file",
			cfg:  config.Config{Store: config.StoreConfig{Backend: config.BackendFile, Root: dir, Format: "yaml"}},
		},
		{
			name: "sqlite",
			cfg: config.Config{
				Store:    config.StoreConfig{Backend: config.BackendSQLite},
				Database: config.DatabaseConfig{Path: filepath.Join(dir, "nested", "atbot.db")},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			st, err := OpenStore(ctx, &tc.cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, st.Close()) })

			require.NoError(t, st.Save(ctx, store.NewProfile("Alice", "a tester")))
			p, err := st.Load(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, "a tester", p.Description)
		})
	}
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	st, err := OpenStore(context.Background(), &config.Config{Store: config.StoreConfig{Backend: "floppy"}}, nil)
	assert.Error(t, err)
	assert.Nil(t, st)
}
