package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	tmpDirName = ".tmp"
	// Temp files younger than this may belong to a save in progress.
	staleTempAge = 10 * time.Minute
)

// RunMaintenance removes temporary files left behind by interrupted saves.
func (s *Store) RunMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled before profile directory cleanup", "error", ctx.Err())
		return ctx.Err()
	}

	entries, err := afero.ReadDir(s.fs, s.tmpDir)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.DebugContext(ctx, "Temp directory does not exist yet, nothing to clean", "dir", s.tmpDir)
		return nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list temp directory", "dir", s.tmpDir, "error", err)
		return err
	}

	cutoff := time.Now().Add(-staleTempAge)
	removed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || entry.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.tmpDir, entry.Name())
		if err := s.fs.Remove(path); err != nil {
			s.logger.WarnContext(ctx, "Failed to remove stale temp file", "path", path, "error", err)
			continue
		}
		removed++
	}

	s.logger.InfoContext(ctx, "Temp directory cleanup completed", "dir", s.tmpDir, "removed", removed)
	return nil
}
