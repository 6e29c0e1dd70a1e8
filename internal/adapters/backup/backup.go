// Package backup encodes, validates and merges export documents.
//
// A document is {employees, tasks, exportDate, version}. Decode rejects
// documents missing required fields so callers never merge partial data.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/internal/domain/scoring"
)

// exportDateLayout matches ISO-8601 with millisecond precision in UTC.
const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Encode writes an indented backup of employees and tasks stamped with now.
func Encode(w io.Writer, employees []model.Employee, tasks []model.Task, now time.Time) error {
	doc := model.Backup{
		Employees:  model.CloneEmployees(employees),
		Tasks:      model.CloneTasks(tasks),
		ExportDate: now.UTC().Format(exportDateLayout),
		Version:    model.BackupVersion,
	}
	if doc.Employees == nil {
		doc.Employees = []model.Employee{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []model.Task{}
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].Evaluations == nil {
			doc.Tasks[i].Evaluations = model.Evaluations{}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

type wireEmployee struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type wireTask struct {
	ID          *int64         `json:"id"`
	Title       *string        `json:"title"`
	EmployeeID  *int64         `json:"employeeId"`
	Type        *string        `json:"type"`
	Date        string         `json:"date"`
	Evaluations map[string]any `json:"evaluations"`
	Comments    string         `json:"comments"`
}

type wireBackup struct {
	Employees  *[]wireEmployee `json:"employees"`
	Tasks      *[]wireTask     `json:"tasks"`
	ExportDate string          `json:"exportDate"`
	Version    string          `json:"version"`
}

// Decode reads and validates a backup document. TotalScore values in the
// document are discarded; callers rescore imported tasks.
func Decode(r io.Reader) (model.Backup, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return model.Backup{}, fmt.Errorf("read backup: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Backup{}, fmt.Errorf("%w: empty document", ErrInvalidBackup)
	}

	var w wireBackup
	if err := json.Unmarshal(raw, &w); err != nil {
		return model.Backup{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	if w.Version != "" && w.Version != model.BackupVersion {
		return model.Backup{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, w.Version)
	}
	if w.Employees == nil {
		return model.Backup{}, fmt.Errorf("%w: missing employees", ErrInvalidBackup)
	}
	if w.Tasks == nil {
		return model.Backup{}, fmt.Errorf("%w: missing tasks", ErrInvalidBackup)
	}

	doc := model.Backup{
		Employees:  make([]model.Employee, 0, len(*w.Employees)),
		Tasks:      make([]model.Task, 0, len(*w.Tasks)),
		ExportDate: w.ExportDate,
		Version:    model.BackupVersion,
	}
	for i, e := range *w.Employees {
		if e.ID == nil || e.Name == nil || strings.TrimSpace(*e.Name) == "" {
			return model.Backup{}, fmt.Errorf("%w: employee %d requires id and name", ErrInvalidBackup, i)
		}
		doc.Employees = append(doc.Employees, model.Employee{ID: *e.ID, Name: *e.Name})
	}
	for i, t := range *w.Tasks {
		if t.ID == nil || t.Title == nil || t.EmployeeID == nil || t.Type == nil {
			return model.Backup{}, fmt.Errorf("%w: task %d requires id, title, employeeId and type", ErrInvalidBackup, i)
		}
		doc.Tasks = append(doc.Tasks, model.Task{
			ID:          *t.ID,
			Title:       *t.Title,
			EmployeeID:  *t.EmployeeID,
			Type:        *t.Type,
			Date:        t.Date,
			Evaluations: scoring.ParseEvaluations(t.Evaluations),
			Comments:    t.Comments,
		})
	}
	return doc, nil
}
