package quill

import (
	"log/slog"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/adapters/kv"
	"github.com/aretw0/quill/pkg/core"
)

// Version exposes the version of the library.
var Version = "0.3.0"

// --- Configuration ---

// Option defines a functional option for configuring quill.
type Option = platform.Option

// WithAutoInit enables automatic initialization of the vault (creates the directory).
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithStore allows injecting a custom byte-level store (e.g. kv.NewMemoryStore()).
func WithStore(store kv.Store) Option {
	return platform.WithStore(store)
}

// WithCipher allows injecting a custom confidentiality engine.
func WithCipher(c core.Cipher) Option {
	return platform.WithCipher(c)
}

// WithEventBuffer allows specifying the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the sandbox safety mechanism under `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates a new quill note Service for the vault at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a vault repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// FindRoot looks upwards from startDir for a vault root indicator
// (a notes.json store or a quill.yaml config file).
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// VaultConfig is a public alias for the vault settings file shape.
type VaultConfig = platform.VaultConfig

// LoadVaultConfig reads quill.yaml from the vault root. A missing file
// yields the zero config without error.
func LoadVaultConfig(root string) (VaultConfig, error) {
	return platform.LoadVaultConfig(root)
}
