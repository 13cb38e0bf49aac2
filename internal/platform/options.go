package platform

import (
	"log/slog"

	"github.com/aretw0/quill/pkg/adapters/kv"
	"github.com/aretw0/quill/pkg/core"
)

// options holds the internal configuration for the quill service.
type options struct {
	repository core.Repository
	cipher     core.Cipher
	store      kv.Store
	logger     *slog.Logger
	config     map[string]interface{}
}

// Option defines a functional option for configuring quill.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: make(map[string]interface{}),
	}
}

// WithAutoInit enables automatic initialization of the vault (creates the directory).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, the default key/value adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithStore allows injecting a custom byte-level store while keeping the
// default repository logic on top of it.
func WithStore(store kv.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCipher allows injecting a custom confidentiality engine.
func WithCipher(c core.Cipher) Option {
	return func(o *options) {
		o.cipher = c
	}
}

// WithEventBuffer allows specifying the size of the watch event buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring
// during the Watch loop. This allows applications to log or react to runtime
// watcher failures (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Write operations (Upsert, Remove) return core.ErrReadOnly.
// 2. Initialization (Mkdir) is skipped.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the "Sandbox" safety mechanism when running via `go run`.
// By default (true), quill forces a temporary directory to prevent accidental
// data loss. Setting this to false allows operating on the real filesystem
// even during `go run`.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
