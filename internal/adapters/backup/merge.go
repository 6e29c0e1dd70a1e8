package backup

import (
	"fmt"
	"strings"

	"github.com/okian/incentivo/internal/domain/dedupe"
	"github.com/okian/incentivo/internal/domain/model"
)

// Strategy resolves imported tasks whose title matches an existing task.
type Strategy string

const (
	// KeepBoth keeps existing tasks and gives imported duplicates fresh ids.
	KeepBoth Strategy = "keep_both"
	// Replace drops existing tasks whose title matches an imported task.
	Replace Strategy = "replace"
)

// ParseStrategy maps a name to a Strategy. Empty selects KeepBoth.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeepBoth:
		return KeepBoth, nil
	case Replace:
		return Replace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Summary counts what a merge did.
type Summary struct {
	EmployeesAdded   int `json:"employeesAdded"`
	EmployeesUpdated int `json:"employeesUpdated"`
	TasksAdded       int `json:"tasksAdded"`
	Duplicates       int `json:"duplicates"`
	Replaced         int `json:"replaced"`
	Renumbered       int `json:"renumbered"`
}

// Result is the merged state. Inputs are never modified.
type Result struct {
	Employees []model.Employee
	Tasks     []model.Task
	Summary   Summary
}

// Merge combines a decoded document with the existing state.
//
// Employees merge by id, imported names win. Tasks are matched by exact
// title against existing tasks. Any imported task whose id is already taken
// is renumbered past the current maximum.
func Merge(employees []model.Employee, tasks []model.Task, doc model.Backup, strategy Strategy) (Result, error) {
	if strategy != KeepBoth && strategy != Replace {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	var res Result
	res.Employees, res.Summary.EmployeesAdded, res.Summary.EmployeesUpdated = mergeEmployees(employees, doc.Employees)

	keys := make([]string, 0, len(tasks))
	for _, t := range tasks {
		keys = append(keys, t.Title)
	}
	titles := dedupe.NewInMemoryDeduper(dedupe.WithKeys(keys...))

	duplicate := make([]bool, len(doc.Tasks))
	replaced := make(map[string]struct{})
	for i, t := range doc.Tasks {
		if titles.Seen(t.Title) {
			duplicate[i] = true
			res.Summary.Duplicates++
			if strategy == Replace {
				replaced[t.Title] = struct{}{}
			}
		}
	}

	kept := make([]model.Task, 0, len(tasks)+len(doc.Tasks))
	for _, t := range tasks {
		if _, drop := replaced[t.Title]; drop {
			res.Summary.Replaced++
			continue
		}
		kept = append(kept, t.Clone())
	}

	used := make(map[int64]struct{}, len(kept)+len(doc.Tasks))
	var next int64
	for _, t := range kept {
		used[t.ID] = struct{}{}
		next = max(next, t.ID)
	}
	for _, t := range doc.Tasks {
		next = max(next, t.ID)
	}

	for i, t := range doc.Tasks {
		task := t.Clone()
		task.TotalScore = nil
		_, taken := used[task.ID]
		if taken || (duplicate[i] && strategy == KeepBoth) {
			next++
			task.ID = next
			res.Summary.Renumbered++
		}
		used[task.ID] = struct{}{}
		kept = append(kept, task)
		res.Summary.TasksAdded++
	}

	res.Tasks = kept
	return res, nil
}

func mergeEmployees(existing, imported []model.Employee) ([]model.Employee, int, int) {
	out := model.CloneEmployees(existing)
	if out == nil {
		out = []model.Employee{}
	}
	index := make(map[int64]int, len(out))
	for i, e := range out {
		index[e.ID] = i
	}

	var added, updated int
	for _, e := range imported {
		if i, ok := index[e.ID]; ok {
			if out[i].Name != e.Name {
				out[i].Name = e.Name
				updated++
			}
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
		added++
	}
	return out, added, updated
}
