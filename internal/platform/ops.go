package platform

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/quill/pkg/adapters/kv"
	"github.com/aretw0/quill/pkg/core"
)

// Init initializes a vault repository at the given path based on the
// provided configuration, and loads the persisted collection.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		if err := o.repository.Initialize(context.Background()); err != nil {
			return nil, err
		}
		return o.repository, nil
	}

	repo, err := initKV(path, o)
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initKV handles the initialization logic for the key/value adapter.
func initKV(path string, o *options) (core.Repository, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	eventBuffer, _ := o.config["event_buffer"].(int)

	isReadOnly, _ := o.config["read_only"].(bool)
	// Default dev safety to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveVaultPath(path, useTemp)

	if IsDevRun() && o.logger != nil {
		if bypassSafety {
			if isReadOnly {
				o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
			} else {
				o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
			}
		} else {
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolvedPath)
		}
	}

	store := o.store
	if store == nil {
		if mustExist && !useTemp {
			info, err := os.Stat(resolvedPath)
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("vault path does not exist: %s", resolvedPath)
			}
			if err == nil && !info.IsDir() {
				return nil, fmt.Errorf("vault path is not a directory: %s", resolvedPath)
			}
		}
		if autoInit && !isReadOnly {
			if err := os.MkdirAll(resolvedPath, 0755); err != nil {
				return nil, fmt.Errorf("failed to create vault directory: %w", err)
			}
		}
		store = kv.NewFileStore(resolvedPath)
	}

	if autoInit && !isReadOnly {
		// Materialize the empty collection so the path is a vault from now on.
		if err := kv.EnsureCollection(store); err != nil {
			return nil, fmt.Errorf("failed to create collection: %w", err)
		}
	}

	return kv.NewRepository(kv.Config{
		Store:        store,
		Logger:       o.logger,
		ReadOnly:     isReadOnly,
		ErrorHandler: errorHandler,
		EventBuffer:  eventBuffer,
	}), nil
}
