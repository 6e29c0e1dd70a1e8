// Package service provides the evaluation service behind the HTTP API and CLI.
//
// Every write recomputes TotalScore through the configured Calculator, so
// stored scores always agree with the current catalog and quality rule.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/incentivo/internal/adapters/autosave"
	"github.com/okian/incentivo/internal/adapters/repository"
	"github.com/okian/incentivo/internal/domain/catalog"
	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/internal/domain/scoring"
	"github.com/okian/incentivo/internal/domain/stats"
	"github.com/okian/incentivo/pkg/logger"
	"github.com/okian/incentivo/pkg/metrics"
)

const defaultAutosaveDelay = 800 * time.Millisecond

// Service owns the employee and task collections.
type Service struct {
	// mu serializes read-modify-write cycles against the store.
	mu sync.RWMutex

	store         repository.Store
	calc          *scoring.Calculator
	notes         *autosave.Debouncer
	autosaveDelay time.Duration
	now           func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a Service. Without WithStore state lives in memory.
func New(opts ...Option) *Service {
	s := &Service{
		store:         repository.NewMemoryStore(),
		calc:          scoring.NewCalculator(),
		autosaveDelay: defaultAutosaveDelay,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.notes = autosave.New(s.store.SaveNotes,
		autosave.WithDelay(s.autosaveDelay),
		autosave.WithLogger(s.logger),
	)
	return s
}

// Start rescores stored tasks against the current catalog and publishes
// aggregate metrics.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	changed := 0
	for i := range tasks {
		normalized := normalizeStored(&tasks[i])
		if s.rescore(&tasks[i]) || normalized {
			changed++
		}
	}
	if changed > 0 {
		if err := s.store.SaveTasks(ctx, tasks); err != nil {
			return fmt.Errorf("save rescored tasks: %w", err)
		}
	}

	s.started = true
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("tasks", len(tasks)),
		logger.Int("rescored", changed),
		logger.String("quality_rule", string(s.calc.Quality())),
		logger.Int("task_types", len(s.calc.Catalog().Types())),
	)
	return s.refreshMetricsLocked(ctx)
}

// Stop flushes pending notes and closes the store.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping evaluation service...")

	var firstErr error
	if err := s.notes.Stop(ctx); err != nil {
		firstErr = fmt.Errorf("flush notes: %w", err)
	}
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close store: %w", err)
	}

	s.started = false
	s.logger.Info(ctx, "evaluation service stopped")
	return firstErr
}

// Catalog returns the rubric table in use.
func (s *Service) Catalog() *catalog.Catalog { return s.calc.Catalog() }

// Calculator returns the score calculator in use.
func (s *Service) Calculator() *scoring.Calculator { return s.calc }

// RefreshMetrics publishes aggregate gauges for the whole store.
func (s *Service) RefreshMetrics(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshMetricsLocked(ctx)
}

func (s *Service) refreshMetricsLocked(ctx context.Context) error {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return err
	}
	agg := stats.Aggregate(tasks)
	metrics.UpdateAggregates(agg.TotalTasks, agg.PendingTasks, agg.AverageScore)
	metrics.UpdateEmployees(len(employees))
	return nil
}

// score recomputes t.TotalScore on a write and records the outcome.
func (s *Service) score(t *model.Task) {
	t.TotalScore = s.calc.Compute(t.Type, t.Evaluations)
	metrics.RecordTaskScored(t.Type, t.TotalScore)
}

// rescore recomputes t.TotalScore and reports whether it changed. Only
// changes are recorded.
func (s *Service) rescore(t *model.Task) bool {
	prev := t.TotalScore
	t.TotalScore = s.calc.Compute(t.Type, t.Evaluations)

	var changed bool
	switch {
	case prev == nil && t.TotalScore == nil:
		changed = false
	case prev == nil || t.TotalScore == nil:
		changed = true
	default:
		changed = *prev != *t.TotalScore
	}
	if changed {
		metrics.RecordTaskScored(t.Type, t.TotalScore)
	}
	return changed
}

// normalizeStored clamps t's stored evaluations and reports whether any moved.
func normalizeStored(t *model.Task) bool {
	normalized := scoring.NormalizeEvaluations(t.Evaluations)
	moved := false
	for name, v := range t.Evaluations {
		if normalized[name] != v {
			moved = true
		}
	}
	t.Evaluations = normalized
	return moved
}

func (s *Service) load(ctx context.Context) ([]model.Employee, []model.Task, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load employees: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	return employees, tasks, nil
}

func nextID[T any](items []T, id func(T) int64) int64 {
	var maxID int64
	for _, it := range items {
		maxID = max(maxID, id(it))
	}
	return maxID + 1
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
