package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/IjehJoel987/Tekegram/core/logger"
)

const storeComponent = "store"

// DefaultLoadDebounce is the window within which repeated Load calls reuse
// the in-memory snapshot instead of rereading the file.
const DefaultLoadDebounce = 3 * time.Second

// FileStore reads and writes the snapshot file. A single mutex serializes
// disk access; the write path is temp file, fsync, backup refresh, rename,
// so either the old or the new snapshot survives any crash.
type FileStore struct {
	path         string
	backupPath   string
	loadDebounce time.Duration

	mu       sync.Mutex
	cached   *Snapshot
	loadedAt time.Time
}

// Option adjusts FileStore construction.
type Option func(*FileStore)

// WithBackupPath overrides the default "<path>.backup" sibling.
func WithBackupPath(path string) Option {
	return func(fs *FileStore) { fs.backupPath = path }
}

// WithLoadDebounce overrides the load debounce window. Zero disables it.
func WithLoadDebounce(d time.Duration) Option {
	return func(fs *FileStore) { fs.loadDebounce = d }
}

func NewFileStore(path string, opts ...Option) *FileStore {
	fs := &FileStore{
		path:         path,
		backupPath:   path + ".backup",
		loadDebounce: DefaultLoadDebounce,
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Path returns the primary snapshot path.
func (fs *FileStore) Path() string { return fs.path }

// Load returns the current snapshot. A missing file yields a fresh empty
// snapshot that is persisted immediately. A corrupt primary falls back to
// the backup and rewrites the primary from it. If both copies are
// unreadable the error is fatal for the caller: proceeding would silently
// erase every stored request.
func (fs *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.cached != nil && fs.loadDebounce > 0 && time.Since(fs.loadedAt) < fs.loadDebounce {
		return fs.cached, nil
	}

	snap, err := readSnapshot(fs.path)
	switch {
	case err == nil:
		// The primary just parsed, so it is safe to refresh the backup
		// from it.
		fs.refreshBackup(ctx)
		fs.remember(snap)
		return snap, nil
	case errors.Is(err, os.ErrNotExist):
		logger.Info(ctx, storeComponent, "store.init",
			slog.String("path", fs.path),
		)
		snap = NewSnapshot()
		if werr := fs.write(snap, true); werr != nil {
			return nil, werr
		}
		fs.remember(snap)
		return snap, nil
	}

	logger.Warn(ctx, storeComponent, "store.load_failed",
		slog.String("path", fs.path),
		slog.String("err", err.Error()),
	)
	snap, berr := readSnapshot(fs.backupPath)
	if berr != nil {
		return nil, fmt.Errorf("store: primary unreadable (%v) and backup unreadable: %w", err, berr)
	}
	logger.Warn(ctx, storeComponent, "store.backup_restored",
		slog.String("backup", fs.backupPath),
	)
	// Heal the primary so the next start does not depend on the backup.
	// The backup refresh is skipped: it would copy the corrupt primary
	// over the only good copy.
	if werr := fs.write(snap, false); werr != nil {
		return nil, werr
	}
	fs.remember(snap)
	return snap, nil
}

// Save persists the snapshot. The previous primary becomes the backup
// before the rename lands, so the backup always holds the last good write.
func (fs *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	start := time.Now()
	if err := fs.write(snap, true); err != nil {
		logger.Error(ctx, storeComponent, "store.save_failed",
			slog.String("path", fs.path),
			slog.String("err", err.Error()),
		)
		return err
	}
	fs.remember(snap)
	logger.Debug(ctx, storeComponent, "store.saved",
		slog.String("path", fs.path),
		slog.Duration("took", logger.Took(start)),
	)
	return nil
}

func (fs *FileStore) remember(snap *Snapshot) {
	fs.cached = snap
	fs.loadedAt = time.Now()
}

// refreshBackup copies the primary over the backup. Callers must only use
// it while the primary is known to parse.
func (fs *FileStore) refreshBackup(ctx context.Context) {
	if err := copyFile(fs.path, fs.backupPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn(ctx, storeComponent, "store.backup_refresh_failed",
			slog.String("backup", fs.backupPath),
			slog.String("err", err.Error()),
		)
	}
}

func (fs *FileStore) write(snap *Snapshot, refreshBackup bool) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal snapshot: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fs.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}

	// Preserve the outgoing primary as the backup before replacing it.
	// A failed refresh is not fatal: the primary write still proceeds.
	if refreshBackup {
		fs.refreshBackup(logger.Background())
	}

	if err := os.Rename(tmpName, fs.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", fs.path, err)
	}
	return nil
}

func readSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}
	snap.normalize()
	return snap, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
