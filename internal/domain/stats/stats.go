// Package stats rolls scored tasks up into report and dashboard figures.
//
// Inputs are expected to be filtered already; nothing here narrows by date or
// type. Pending tasks (nil TotalScore) only count toward PendingTasks.
package stats

import (
	"fmt"
	"sort"

	"github.com/okian/incentivo/internal/domain/bucket"
	"github.com/okian/incentivo/internal/domain/model"
)

// MaxBonusPercent is the bonus earned by a perfect average.
const MaxBonusPercent = 30

const percentScale = 100

// Stats summarises a task set.
type Stats struct {
	TotalTasks      int                   `json:"totalTasks"`
	PendingTasks    int                   `json:"pendingTasks"`
	AverageScore    float64               `json:"averageScore"`
	BonusPercentage string                `json:"bonusPercentage"`
	TasksByType     map[string]int        `json:"tasksByType"`
	Distribution    map[bucket.Bucket]int `json:"distribution"`
}

// EmployeeStats is one row of the per-employee table.
type EmployeeStats struct {
	Employee model.Employee `json:"employee"`
	Stats    Stats          `json:"stats"`
}

// Bonus converts an average score into the bonus percentage, unrounded.
func Bonus(average float64) float64 {
	return average / percentScale * MaxBonusPercent
}

// FormatBonus renders a bonus with two decimals.
func FormatBonus(bonus float64) string {
	return fmt.Sprintf("%.2f", bonus)
}

// Aggregate computes Stats over tasks.
func Aggregate(tasks []model.Task) Stats {
	s := Stats{
		TasksByType:  make(map[string]int),
		Distribution: make(map[bucket.Bucket]int, len(bucket.All())),
	}
	for _, b := range bucket.All() {
		s.Distribution[b] = 0
	}

	var sum float64
	for _, t := range tasks {
		if !t.Evaluated() {
			s.PendingTasks++
			continue
		}
		score := *t.TotalScore
		s.TotalTasks++
		sum += score
		s.TasksByType[t.Type]++
		s.Distribution[bucket.Classify(score)]++
	}

	if s.TotalTasks > 0 {
		s.AverageScore = sum / float64(s.TotalTasks)
	}
	s.BonusPercentage = FormatBonus(Bonus(s.AverageScore))
	return s
}

// ForEmployee computes Stats over one employee's tasks.
func ForEmployee(tasks []model.Task, employeeID int64) Stats {
	own := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.EmployeeID == employeeID {
			own = append(own, t)
		}
	}
	return Aggregate(own)
}

// ByEmployee returns one row per employee, best average first, ties by name.
func ByEmployee(employees []model.Employee, tasks []model.Task) []EmployeeStats {
	grouped := make(map[int64][]model.Task, len(employees))
	for _, t := range tasks {
		grouped[t.EmployeeID] = append(grouped[t.EmployeeID], t)
	}

	rows := make([]EmployeeStats, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, EmployeeStats{Employee: e, Stats: Aggregate(grouped[e.ID])})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Stats.AverageScore != rows[j].Stats.AverageScore {
			return rows[i].Stats.AverageScore > rows[j].Stats.AverageScore
		}
		return rows[i].Employee.Name < rows[j].Employee.Name
	})
	return rows
}
