package service

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/incentivo/internal/adapters/backup"
	"github.com/okian/incentivo/pkg/logger"
	"github.com/okian/incentivo/pkg/metrics"
)

// Export writes a backup of all employees and tasks.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	s.mu.RLock()
	employees, tasks, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return backup.Encode(w, employees, tasks, s.now())
}

// Import validates a backup document and merges it into the store.
// Imported tasks are rescored; tasks of unknown types stay pending.
func (s *Service) Import(ctx context.Context, r io.Reader, strategy backup.Strategy) (backup.Summary, error) {
	doc, err := backup.Decode(r)
	if err != nil {
		return backup.Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, tasks, err := s.load(ctx)
	if err != nil {
		return backup.Summary{}, err
	}
	res, err := backup.Merge(employees, tasks, doc, strategy)
	if err != nil {
		return backup.Summary{}, err
	}
	for i := range res.Tasks {
		s.rescore(&res.Tasks[i])
	}

	if err := s.store.SaveEmployees(ctx, res.Employees); err != nil {
		return backup.Summary{}, fmt.Errorf("save imported employees: %w", err)
	}
	if err := s.store.SaveTasks(ctx, res.Tasks); err != nil {
		return backup.Summary{}, fmt.Errorf("save imported tasks: %w", err)
	}

	metrics.RecordImportedTasks("added", res.Summary.TasksAdded)
	metrics.RecordImportedTasks("duplicate", res.Summary.Duplicates)
	metrics.RecordImportedTasks("replaced", res.Summary.Replaced)
	s.logger.Info(ctx, "backup imported",
		logger.String("strategy", string(strategy)),
		logger.Int("tasks_added", res.Summary.TasksAdded),
		logger.Int("duplicates", res.Summary.Duplicates),
		logger.Int("replaced", res.Summary.Replaced),
		logger.Int("employees_added", res.Summary.EmployeesAdded),
	)
	return res.Summary, s.refreshMetricsLocked(ctx)
}

// Notes returns the notes text, including content not yet persisted.
func (s *Service) Notes(ctx context.Context) (string, error) {
	if content, pending := s.notes.Pending(); pending {
		return content, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Notes(ctx)
}

// SaveNotes schedules the notes text to be persisted after the autosave delay.
func (s *Service) SaveNotes(_ context.Context, content string) error {
	return s.notes.Schedule(content)
}

// FlushNotes persists pending notes immediately.
func (s *Service) FlushNotes(ctx context.Context) error {
	return s.notes.Flush(ctx)
}
