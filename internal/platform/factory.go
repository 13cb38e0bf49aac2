package platform

import (
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/crypt"
)

// New assembles a fully wired note service for the vault at the given path.
//
//	svc, err := quill.New("./path/to/vault", quill.WithAutoInit(true))
func New(path string, opts ...Option) (*core.Service, error) {
	// 1. Initialize environment (path, directories, persisted collection)
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	// Parse options again here for the cipher wiring
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cipher := o.cipher
	if cipher == nil {
		cipher = crypt.NewEngine()
	}

	// Initialize Domain Service
	service := core.NewService(repo, cipher)

	return service, nil
}
