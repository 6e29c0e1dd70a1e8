// Package types contains result shapes shared by the service and its adapters.
package types

import (
	"github.com/okian/incentivo/internal/domain/bucket"
	"github.com/okian/incentivo/internal/domain/impact"
	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/internal/domain/scoring"
	"github.com/okian/incentivo/internal/domain/stats"
)

// AttentionLimit is the number of criteria shown on the dashboard.
const AttentionLimit = 5

// Dashboard is the overview of every task in the store.
type Dashboard struct {
	Stats     stats.Stats              `json:"stats"`
	Ranking   []stats.EmployeeStats    `json:"ranking"`
	Attention []impact.CriterionImpact `json:"attention"`
}

// ReportTask is a task annotated for rendering.
type ReportTask struct {
	model.Task
	Employee  string             `json:"employee"`
	Bucket    *bucket.Bucket     `json:"bucket,omitempty"`
	Breakdown *scoring.Breakdown `json:"breakdown,omitempty"`
}

// Report is the filtered view handed to renderers.
type Report struct {
	Stats  stats.Stats              `json:"stats"`
	Impact []impact.CriterionImpact `json:"impact"`
	Tasks  []ReportTask             `json:"tasks"`
}
