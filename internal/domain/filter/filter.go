// Package filter selects the subset of tasks a report or view works on.
package filter

import (
	"strings"
	"time"

	"github.com/okian/incentivo/internal/domain/model"
)

const dayLayout = time.DateOnly

// Criteria are optional, AND-combined predicates. The zero value keeps
// every task.
type Criteria struct {
	// EmployeeID keeps tasks of one employee when non-nil.
	EmployeeID *int64
	// Type keeps tasks of one task type when non-empty.
	Type string
	// Start and End bound the task date, inclusive, compared by calendar day.
	Start string
	End   string
	// OnlyUnevaluated keeps pending tasks.
	OnlyUnevaluated bool
	// Query matches title or comments as a case-insensitive substring.
	// Whitespace is significant.
	Query string
}

// IsZero reports whether c has no active predicate.
func (c Criteria) IsZero() bool {
	return c.EmployeeID == nil && c.Type == "" && c.Start == "" && c.End == "" &&
		!c.OnlyUnevaluated && c.Query == ""
}

// ForEmployee returns c narrowed to one employee.
func (c Criteria) ForEmployee(id int64) Criteria {
	c.EmployeeID = &id
	return c
}

// Apply returns deep copies of the tasks matching c, in input order.
func Apply(tasks []model.Task, c Criteria) []model.Task {
	m := newMatcher(c)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if m.match(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Match reports whether a single task satisfies c.
func Match(t model.Task, c Criteria) bool {
	return newMatcher(c).match(t)
}

// matcher holds the pre-parsed form of Criteria.
type matcher struct {
	c        Criteria
	start    time.Time
	end      time.Time
	hasStart bool
	hasEnd   bool
	query    string
}

func newMatcher(c Criteria) matcher {
	m := matcher{c: c, query: strings.ToLower(c.Query)}
	if d, ok := ParseDay(c.Start); ok {
		m.start, m.hasStart = d, true
	}
	if d, ok := ParseDay(c.End); ok {
		m.end, m.hasEnd = d, true
	}
	return m
}

func (m matcher) match(t model.Task) bool {
	if m.c.EmployeeID != nil && t.EmployeeID != *m.c.EmployeeID {
		return false
	}
	if m.c.Type != "" && t.Type != m.c.Type {
		return false
	}
	if m.c.OnlyUnevaluated && t.Evaluated() {
		return false
	}
	if m.hasStart || m.hasEnd {
		day, ok := ParseDay(t.Date)
		if !ok {
			return false
		}
		if m.hasStart && day.Before(m.start) {
			return false
		}
		if m.hasEnd && day.After(m.end) {
			return false
		}
	}
	if m.query != "" {
		if !strings.Contains(strings.ToLower(t.Title), m.query) &&
			!strings.Contains(strings.ToLower(t.Comments), m.query) {
			return false
		}
	}
	return true
}

// ParseDay reads an ISO date or RFC3339 timestamp and truncates it to
// midnight of the calendar day it names, so comparisons ignore the time of day.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(dayLayout, s); err == nil {
		return d, true
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if ts, err := time.Parse(layout, s); err == nil {
			y, mo, d := ts.Date()
			return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
