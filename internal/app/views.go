package service

import (
	"context"

	"github.com/okian/incentivo/internal/domain/bucket"
	"github.com/okian/incentivo/internal/domain/filter"
	"github.com/okian/incentivo/internal/domain/impact"
	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/internal/domain/stats"
	"github.com/okian/incentivo/internal/domain/types"
)

// Stats aggregates the tasks matching c.
func (s *Service) Stats(ctx context.Context, c filter.Criteria) (stats.Stats, error) {
	tasks, err := s.Tasks(ctx, c)
	if err != nil {
		return stats.Stats{}, err
	}
	return stats.Aggregate(tasks), nil
}

// EmployeeStats ranks every employee over the tasks matching c.
// An employee predicate in c is ignored so every employee gets a row.
func (s *Service) EmployeeStats(ctx context.Context, c filter.Criteria) ([]stats.EmployeeStats, error) {
	c.EmployeeID = nil
	s.mu.RLock()
	employees, tasks, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return stats.ByEmployee(employees, filter.Apply(tasks, c)), nil
}

// Impact ranks criteria by lost points over the tasks matching c. With
// attentionOnly set, only criteria with a positive impact are returned.
func (s *Service) Impact(ctx context.Context, c filter.Criteria, attentionOnly bool) ([]impact.CriterionImpact, error) {
	tasks, err := s.Tasks(ctx, c)
	if err != nil {
		return nil, err
	}
	list := impact.Analyze(tasks)
	if attentionOnly {
		list = impact.NeedsAttention(list)
	}
	return list, nil
}

// Dashboard summarizes the whole store.
func (s *Service) Dashboard(ctx context.Context) (types.Dashboard, error) {
	s.mu.RLock()
	employees, tasks, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return types.Dashboard{}, err
	}
	return types.Dashboard{
		Stats:     stats.Aggregate(tasks),
		Ranking:   stats.ByEmployee(employees, tasks),
		Attention: impact.Top(impact.NeedsAttention(impact.Analyze(tasks)), types.AttentionLimit),
	}, nil
}

// Report gathers stats, impact and annotated tasks for the tasks matching c.
func (s *Service) Report(ctx context.Context, c filter.Criteria) (types.Report, error) {
	s.mu.RLock()
	employees, all, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return types.Report{}, err
	}

	names := make(map[int64]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	tasks := filter.Apply(all, c)
	report := types.Report{
		Stats:  stats.Aggregate(tasks),
		Impact: impact.Analyze(tasks),
		Tasks:  make([]types.ReportTask, 0, len(tasks)),
	}
	for _, t := range tasks {
		report.Tasks = append(report.Tasks, s.annotate(t, names[t.EmployeeID]))
	}
	return report, nil
}

func (s *Service) annotate(t model.Task, employee string) types.ReportTask {
	rt := types.ReportTask{Task: t, Employee: employee}
	if t.TotalScore != nil {
		b := bucket.Classify(*t.TotalScore)
		rt.Bucket = &b
	}
	if bd, ok := s.calc.Breakdown(t.Type, t.Evaluations); ok {
		rt.Breakdown = &bd
	}
	return rt
}
