// Package api provides factory implementations for dependency injection
package api

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with a fresh metrics registry.
func (s *DefaultServerStarter) StartServer(ctx context.Context, archive Archiver, config ServerConfig, logger *slog.Logger) error {
	return StartServer(ctx, archive, config, prometheus.NewRegistry(), logger)
}
