// Package model contains domain models passed between layers.
package model

// Employee is a collaborator that tasks are assigned to.
type Employee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Evaluations maps a criterion name to its raw 0-100 score.
type Evaluations map[string]float64

// Clone returns an independent copy. A nil map stays nil.
func (e Evaluations) Clone() Evaluations {
	if e == nil {
		return nil
	}
	out := make(Evaluations, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Task is a single assignment evaluated against its type's rubric.
// TotalScore is derived from Type and Evaluations; nil means pending.
type Task struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	EmployeeID  int64       `json:"employeeId"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
	Evaluations Evaluations `json:"evaluations"`
	Comments    string      `json:"comments,omitempty"`
	TotalScore  *float64    `json:"totalScore"`
}

// Evaluated reports whether the task carries a score.
func (t Task) Evaluated() bool { return t.TotalScore != nil }

// Clone returns a deep copy so callers never share maps or score pointers.
func (t Task) Clone() Task {
	c := t
	c.Evaluations = t.Evaluations.Clone()
	if t.TotalScore != nil {
		v := *t.TotalScore
		c.TotalScore = &v
	}
	return c
}

// CloneTasks deep-copies a task slice.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// CloneEmployees copies an employee slice.
func CloneEmployees(employees []Employee) []Employee {
	if employees == nil {
		return nil
	}
	out := make([]Employee, len(employees))
	copy(out, employees)
	return out
}

// BackupVersion is the only backup document version understood.
const BackupVersion = "1.0"

// Backup is the export/import document.
type Backup struct {
	Employees  []Employee `json:"employees"`
	Tasks      []Task     `json:"tasks"`
	ExportDate string     `json:"exportDate"`
	Version    string     `json:"version"`
}
