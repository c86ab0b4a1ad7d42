// Package file stores one profile per file under <root>/whois/<key>.<format>
// on an afero filesystem. Writes go to a temporary file under <root>/whois/.tmp
// and are renamed into place, so readers never see a partial record. Keys
// cannot contain a path separator, so no record can live in the temp
// directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/edgard/atbot/internal/store"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var errInvalidKey = errors.New("key is not a valid file name")

// Options configures a Store.
type Options struct {
	Root   string
	Format store.Format
	Logger *slog.Logger
}

// Store is a file-per-key profile store.
type Store struct {
	fs     afero.Fs
	dir    string
	tmpDir string
	format store.Format
	logger *slog.Logger
	locks  *keyLocks
}

// New creates a store on fsys. The namespace directory is created lazily on
// the first save.
func New(fsys afero.Fs, opts Options) (*Store, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}
	format := opts.Format
	if format == "" {
		format = store.FormatJSON
	}
	if format != store.FormatJSON && format != store.FormatYAML {
		return nil, fmt.Errorf("unsupported record format %q", format)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Store{
		fs:     fsys,
		dir:    filepath.Join(opts.Root, store.Namespace),
		tmpDir: filepath.Join(opts.Root, store.Namespace, tmpDirName),
		format: format,
		logger: logger.With("component", "file_store"),
		locks:  newKeyLocks(),
	}, nil
}

// NewOS creates a store on the host filesystem.
func NewOS(opts Options) (*Store, error) {
	return New(afero.NewOsFs(), opts)
}

func (s *Store) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", errInvalidKey
	}
	return filepath.Join(s.dir, key+"."+string(s.format)), nil
}

// Load reads and decodes the record for key.
func (s *Store) Load(ctx context.Context, key string) (*store.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.ReadError(key, err)
	}
	path, err := s.path(key)
	if err != nil {
		// No record can be stored under such a key.
		s.logger.DebugContext(ctx, "No profile file for unusable key", "key", key)
		return nil, store.NotFound(key)
	}

	unlock := s.locks.lock(key)
	defer unlock()

	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.DebugContext(ctx, "No profile file", "key", key, "path", path)
		return nil, store.NotFound(key)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read profile file", "key", key, "path", path, "error", err)
		return nil, store.ReadError(key, err)
	}

	p, err := store.Decode(s.format, data)
	if err != nil {
		s.logger.WarnContext(ctx, "Corrupt profile file", "key", key, "path", path, "error", err)
		return nil, store.ReadError(key, err)
	}
	return p, nil
}

// Save encodes p and atomically replaces the record for p.Nickname.
func (s *Store) Save(ctx context.Context, p *store.Profile) error {
	if p == nil {
		return store.WriteError("", fmt.Errorf("cannot save nil profile"))
	}
	key := p.Nickname
	if err := ctx.Err(); err != nil {
		return store.WriteError(key, err)
	}
	path, err := s.path(key)
	if err != nil {
		return store.WriteError(key, err)
	}

	data, err := store.Encode(s.format, p)
	if err != nil {
		return store.WriteError(key, err)
	}

	unlock := s.locks.lock(key)
	defer unlock()

	if err := s.fs.MkdirAll(s.tmpDir, dirPerm); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create profile directory", "dir", s.tmpDir, "error", err)
		return store.WriteError(key, fmt.Errorf("create %s: %w", s.tmpDir, err))
	}
	if err := s.writeAtomic(path, data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write profile file", "key", key, "path", path, "error", err)
		return store.WriteError(key, err)
	}

	s.logger.DebugContext(ctx, "Profile saved", "key", key, "path", path, "bytes", len(data))
	return nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, s.tmpDir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = s.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", path, err)
	}
	if err := s.fs.Chmod(tmpPath, filePerm); err != nil {
		return fmt.Errorf("chmod temp for %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp for %s: %w", path, err)
	}
	committed = true
	return nil
}

// Close is a no-op; files are closed after every operation.
func (s *Store) Close() error { return nil }
