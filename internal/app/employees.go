package service

import (
	"context"
	"fmt"

	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/pkg/logger"
	"github.com/okian/incentivo/pkg/metrics"
)

// Employees returns every employee in creation order.
func (s *Service) Employees(ctx context.Context) ([]model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ListEmployees(ctx)
}

// Employee returns one employee.
func (s *Service) Employee(ctx context.Context, id int64) (model.Employee, error) {
	employees, err := s.Employees(ctx)
	if err != nil {
		return model.Employee{}, err
	}
	for _, e := range employees {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Employee{}, fmt.Errorf("%w: %d", ErrEmployeeNotFound, id)
}

// CreateEmployee adds an employee with the next free id.
func (s *Service) CreateEmployee(ctx context.Context, name string) (model.Employee, error) {
	name = normalizeName(name)
	if name == "" {
		return model.Employee{}, fmt.Errorf("%w: name is required", ErrInvalidEmployee)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return model.Employee{}, err
	}
	e := model.Employee{
		ID:   nextID(employees, func(e model.Employee) int64 { return e.ID }),
		Name: name,
	}
	if err := s.store.SaveEmployees(ctx, append(employees, e)); err != nil {
		return model.Employee{}, err
	}
	metrics.UpdateEmployees(len(employees) + 1)
	s.logger.Info(ctx, "employee created", logger.Int64("employee_id", e.ID))
	return e, nil
}

// RenameEmployee changes an employee's name.
func (s *Service) RenameEmployee(ctx context.Context, id int64, name string) (model.Employee, error) {
	name = normalizeName(name)
	if name == "" {
		return model.Employee{}, fmt.Errorf("%w: name is required", ErrInvalidEmployee)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return model.Employee{}, err
	}
	for i := range employees {
		if employees[i].ID != id {
			continue
		}
		employees[i].Name = name
		if err := s.store.SaveEmployees(ctx, employees); err != nil {
			return model.Employee{}, err
		}
		return employees[i], nil
	}
	return model.Employee{}, fmt.Errorf("%w: %d", ErrEmployeeNotFound, id)
}

// DeleteEmployee removes an employee and every task assigned to them.
// It returns the number of tasks removed.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, tasks, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := employees[:0]
	found := false
	for _, e := range employees {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return 0, fmt.Errorf("%w: %d", ErrEmployeeNotFound, id)
	}

	remaining := tasks[:0]
	removed := 0
	for _, t := range tasks {
		if t.EmployeeID == id {
			removed++
			continue
		}
		remaining = append(remaining, t)
	}

	if err := s.store.SaveTasks(ctx, remaining); err != nil {
		return 0, err
	}
	if err := s.store.SaveEmployees(ctx, kept); err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "employee deleted",
		logger.Int64("employee_id", id),
		logger.Int("tasks_removed", removed),
	)
	return removed, s.refreshMetricsLocked(ctx)
}
