package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/incentivo/internal/domain/catalog"
	"github.com/okian/incentivo/internal/domain/filter"
	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/internal/domain/scoring"
	"github.com/okian/incentivo/pkg/logger"
)

// TaskInput carries the editable fields of a task.
type TaskInput struct {
	Title       string
	EmployeeID  int64
	Type        string
	Date        string
	Evaluations model.Evaluations
	Comments    string
}

// Tasks returns the tasks matching c.
func (s *Service) Tasks(ctx context.Context, c filter.Criteria) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(tasks, c), nil
}

// Task returns one task.
func (s *Service) Task(ctx context.Context, id int64) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i := indexOfTask(tasks, id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return tasks[i], nil
}

// CreateTask validates in and stores a new scored task.
func (s *Service) CreateTask(ctx context.Context, in TaskInput) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, tasks, err := s.load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.validateTask(in, employees); err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:          nextID(tasks, func(t model.Task) int64 { return t.ID }),
		Title:       strings.TrimSpace(in.Title),
		EmployeeID:  in.EmployeeID,
		Type:        in.Type,
		Date:        strings.TrimSpace(in.Date),
		Evaluations: evaluationsOrEmpty(in.Evaluations),
		Comments:    in.Comments,
	}
	s.score(&t)

	if err := s.store.SaveTasks(ctx, append(tasks, t)); err != nil {
		return model.Task{}, err
	}
	s.logger.Info(ctx, "task created",
		logger.Int64("task_id", t.ID),
		logger.String("type", t.Type),
		logger.Bool("evaluated", t.Evaluated()),
	)
	return t, s.refreshMetricsLocked(ctx)
}

// UpdateTask replaces the editable fields of a task and rescores it.
func (s *Service) UpdateTask(ctx context.Context, id int64, in TaskInput) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, tasks, err := s.load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i := indexOfTask(tasks, id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	if err := s.validateTask(in, employees); err != nil {
		return model.Task{}, err
	}

	t := &tasks[i]
	t.Title = strings.TrimSpace(in.Title)
	t.EmployeeID = in.EmployeeID
	t.Type = in.Type
	t.Date = strings.TrimSpace(in.Date)
	t.Evaluations = evaluationsOrEmpty(in.Evaluations)
	t.Comments = in.Comments
	s.score(t)

	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		return model.Task{}, err
	}
	s.logger.Info(ctx, "task updated", logger.Int64("task_id", id))
	return *t, s.refreshMetricsLocked(ctx)
}

// Evaluate replaces a task's evaluations and rescores it.
func (s *Service) Evaluate(ctx context.Context, id int64, evals model.Evaluations) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i := indexOfTask(tasks, id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	t := &tasks[i]
	tt, ok := s.calc.Catalog().Lookup(t.Type)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %q", ErrUnknownType, t.Type)
	}
	if err := validateEvaluations(tt, evals); err != nil {
		return model.Task{}, err
	}

	t.Evaluations = evaluationsOrEmpty(evals)
	s.score(t)
	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		return model.Task{}, err
	}

	fields := []logger.Field{logger.Int64("task_id", id), logger.Bool("evaluated", t.Evaluated())}
	if t.TotalScore != nil {
		fields = append(fields, logger.Float64("total_score", *t.TotalScore))
	}
	s.logger.Info(ctx, "task evaluated", fields...)
	return *t, s.refreshMetricsLocked(ctx)
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return err
	}
	i := indexOfTask(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	tasks = append(tasks[:i], tasks[i+1:]...)
	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		return err
	}
	s.logger.Info(ctx, "task deleted", logger.Int64("task_id", id))
	return s.refreshMetricsLocked(ctx)
}

func (s *Service) validateTask(in TaskInput, employees []model.Employee) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if _, ok := filter.ParseDay(in.Date); !ok {
		return fmt.Errorf("%w: date %q is not a calendar day", ErrInvalidTask, in.Date)
	}
	found := false
	for _, e := range employees {
		if e.ID == in.EmployeeID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %d", ErrEmployeeNotFound, in.EmployeeID)
	}
	tt, ok := s.calc.Catalog().Lookup(in.Type)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, in.Type)
	}
	return validateEvaluations(tt, in.Evaluations)
}

// validateEvaluations rejects criteria that are not part of the rubric.
func validateEvaluations(tt catalog.TaskType, evals model.Evaluations) error {
	for name := range evals {
		if _, ok := tt.Criterion(name); !ok {
			return fmt.Errorf("%w: criterion %q is not part of %q", ErrInvalidTask, name, tt.Name)
		}
	}
	return nil
}

// evaluationsOrEmpty returns a clamped copy of e, never nil.
func evaluationsOrEmpty(e model.Evaluations) model.Evaluations {
	return scoring.NormalizeEvaluations(e)
}

func indexOfTask(tasks []model.Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
