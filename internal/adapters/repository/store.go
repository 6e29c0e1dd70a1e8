// Package repository persists employees, tasks and notes.
package repository

import (
	"context"

	"github.com/okian/incentivo/internal/domain/model"
)

// Store provides whole-collection read/write access to the evaluation state.
// Every read returns copies; mutating a result never changes stored data.
type Store interface {
	// ListEmployees returns all employees in insertion order.
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	// SaveEmployees replaces the employee collection.
	SaveEmployees(ctx context.Context, employees []model.Employee) error

	// ListTasks returns all tasks in insertion order.
	ListTasks(ctx context.Context) ([]model.Task, error)
	// SaveTasks replaces the task collection.
	SaveTasks(ctx context.Context, tasks []model.Task) error

	// Notes returns the free-form notes text.
	Notes(ctx context.Context) (string, error)
	// SaveNotes replaces the notes text.
	SaveNotes(ctx context.Context, notes string) error

	// Close releases underlying resources. Later calls fail with ErrStoreClosed.
	Close() error
}

// Operation names reported to metrics.
const (
	opListEmployees = "list_employees"
	opSaveEmployees = "save_employees"
	opListTasks     = "list_tasks"
	opSaveTasks     = "save_tasks"
	opNotes         = "notes"
	opSaveNotes     = "save_notes"
)
