// Package impact ranks evaluation criteria by the points they cost (Pareto view).
package impact

import (
	"sort"

	"github.com/okian/incentivo/internal/domain/model"
)

const perfectScore = 100

// CriterionImpact aggregates every occurrence of one criterion name.
type CriterionImpact struct {
	Criterion         string   `json:"criterion"`
	Count             int      `json:"count"`
	TotalScoreSum     float64  `json:"totalScoreSum"`
	AvgScore          float64  `json:"avgScore"`
	BelowPerfect      int      `json:"belowPerfect"`
	ImpactScore       float64  `json:"impactScore"`
	ImpactPercentage  float64  `json:"impactPercentage"`
	AffectedTaskTypes []string `json:"affectedTaskTypes"`
}

type accumulator struct {
	CriterionImpact
	types map[string]struct{}
}

// Analyze aggregates criterion scores across evaluated tasks, grouping by
// criterion name regardless of task type. The result is ordered by
// ImpactScore descending, ties by name.
func Analyze(tasks []model.Task) []CriterionImpact {
	acc := make(map[string]*accumulator)
	for _, t := range tasks {
		if !t.Evaluated() || len(t.Evaluations) == 0 {
			continue
		}
		for name, raw := range t.Evaluations {
			a, ok := acc[name]
			if !ok {
				a = &accumulator{
					CriterionImpact: CriterionImpact{Criterion: name},
					types:           make(map[string]struct{}),
				}
				acc[name] = a
			}
			a.Count++
			a.TotalScoreSum += raw
			if raw < perfectScore {
				a.BelowPerfect++
				a.ImpactScore += perfectScore - raw
				a.types[t.Type] = struct{}{}
			}
		}
	}

	out := make([]CriterionImpact, 0, len(acc))
	for _, a := range acc {
		ci := a.CriterionImpact
		ci.AvgScore = ci.TotalScoreSum / float64(ci.Count)
		ci.ImpactPercentage = float64(ci.BelowPerfect) / float64(ci.Count) * perfectScore
		ci.AffectedTaskTypes = make([]string, 0, len(a.types))
		for tt := range a.types {
			ci.AffectedTaskTypes = append(ci.AffectedTaskTypes, tt)
		}
		sort.Strings(ci.AffectedTaskTypes)
		out = append(out, ci)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ImpactScore != out[j].ImpactScore {
			return out[i].ImpactScore > out[j].ImpactScore
		}
		return out[i].Criterion < out[j].Criterion
	})
	return out
}

// NeedsAttention keeps criteria that fell short of perfect at least once.
func NeedsAttention(list []CriterionImpact) []CriterionImpact {
	out := make([]CriterionImpact, 0, len(list))
	for _, ci := range list {
		if ci.BelowPerfect > 0 {
			out = append(out, ci)
		}
	}
	return out
}

// Top returns at most n leading entries.
func Top(list []CriterionImpact, n int) []CriterionImpact {
	if n < 0 || n >= len(list) {
		return list
	}
	return list[:n]
}
