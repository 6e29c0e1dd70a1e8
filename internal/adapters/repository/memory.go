package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/pkg/metrics"
)

// MemoryStore keeps state in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	employees []model.Employee
	tasks     []model.Task
	notes     string
	closed    bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees: []model.Employee{},
		tasks:     []model.Task{},
	}
}

func (s *MemoryStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		metrics.RecordStoreOperation(opListEmployees, time.Since(start), err)
		return nil, err
	}
	out := model.CloneEmployees(s.employees)
	metrics.RecordStoreOperation(opListEmployees, time.Since(start), nil)
	return out, nil
}

func (s *MemoryStore) SaveEmployees(ctx context.Context, employees []model.Employee) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		metrics.RecordStoreOperation(opSaveEmployees, time.Since(start), err)
		return err
	}
	s.employees = nonNilEmployees(model.CloneEmployees(employees))
	metrics.RecordStoreOperation(opSaveEmployees, time.Since(start), nil)
	return nil
}

func (s *MemoryStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		metrics.RecordStoreOperation(opListTasks, time.Since(start), err)
		return nil, err
	}
	out := model.CloneTasks(s.tasks)
	metrics.RecordStoreOperation(opListTasks, time.Since(start), nil)
	return out, nil
}

func (s *MemoryStore) SaveTasks(ctx context.Context, tasks []model.Task) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		metrics.RecordStoreOperation(opSaveTasks, time.Since(start), err)
		return err
	}
	s.tasks = nonNilTasks(model.CloneTasks(tasks))
	metrics.RecordStoreOperation(opSaveTasks, time.Since(start), nil)
	return nil
}

func (s *MemoryStore) Notes(ctx context.Context) (string, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		metrics.RecordStoreOperation(opNotes, time.Since(start), err)
		return "", err
	}
	metrics.RecordStoreOperation(opNotes, time.Since(start), nil)
	return s.notes, nil
}

func (s *MemoryStore) SaveNotes(ctx context.Context, notes string) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		metrics.RecordStoreOperation(opSaveNotes, time.Since(start), err)
		return err
	}
	s.notes = notes
	metrics.RecordStoreOperation(opSaveNotes, time.Since(start), nil)
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// check must be called with the lock held.
func (s *MemoryStore) check(ctx context.Context) error {
	if s.closed {
		return ErrStoreClosed
	}
	return ctx.Err()
}

func nonNilEmployees(in []model.Employee) []model.Employee {
	if in == nil {
		return []model.Employee{}
	}
	return in
}

func nonNilTasks(in []model.Task) []model.Task {
	if in == nil {
		return []model.Task{}
	}
	return in
}
