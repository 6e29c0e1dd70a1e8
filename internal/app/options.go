package service

import (
	"time"

	"github.com/okian/incentivo/internal/adapters/repository"
	"github.com/okian/incentivo/internal/domain/scoring"
	"github.com/okian/incentivo/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCalculator sets the score calculator and therefore the catalog.
func WithCalculator(calc *scoring.Calculator) Option {
	return func(s *Service) {
		if calc != nil {
			s.calc = calc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAutosaveDelay sets the quiet period before notes are persisted.
func WithAutosaveDelay(delay time.Duration) Option {
	return func(s *Service) {
		if delay > 0 {
			s.autosaveDelay = delay
		}
	}
}

// WithClock overrides the time source used for export stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
