package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType string `json:"repository_type"`
	CipherType     string `json:"cipher_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		// Try to get component type if repository implements introspection.Component
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	cipherType := "none"
	if s.cipher != nil {
		cipherType = "cipher"
		if comp, ok := s.cipher.(introspection.Component); ok {
			cipherType = comp.ComponentType()
		}
	}

	return ServiceState{
		RepositoryType: repoType,
		CipherType:     cipherType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
