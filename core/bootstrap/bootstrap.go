package bootstrap

import (
	"context"
	"fmt"
	"time"

	coreconfig "github.com/IjehJoel987/Tekegram/core/config"
	"github.com/IjehJoel987/Tekegram/core/logger"
	"github.com/IjehJoel987/Tekegram/store"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	OpenStore  func(*coreconfig.Config) *store.FileStore
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Store    *store.FileStore
	Snapshot *store.Snapshot
}

// Run initializes the logger and loads the persisted snapshot. A snapshot
// that cannot be read from either the primary file or its backup aborts
// startup; running on an implicitly empty state would discard real data.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	open := opts.OpenStore
	if open == nil {
		open = defaultOpenStore
	}
	fs := open(opts.Config)

	snap, err := fs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: snapshot load failed: %w", err)
	}

	return &Result{Store: fs, Snapshot: snap}, nil
}

func defaultOpenStore(cfg *coreconfig.Config) *store.FileStore {
	storeOpts := []store.Option{}
	if cfg.Storage.BackupFile != "" {
		storeOpts = append(storeOpts, store.WithBackupPath(cfg.Storage.BackupFile))
	}
	if cfg.Storage.LoadDebounceMS > 0 {
		storeOpts = append(storeOpts, store.WithLoadDebounce(time.Duration(cfg.Storage.LoadDebounceMS)*time.Millisecond))
	}
	return store.NewFileStore(cfg.Storage.DataFile, storeOpts...)
}
