// Package catalog holds the evaluation rubric of every task type.
//
// A Catalog is built once, validated, and then shared read-only. Lookups return
// copies so callers can never mutate the shared table.
package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Rule selects how a task type turns criterion scores into a total.
type Rule string

// Scoring rules.
const (
	// RuleWeighted sums raw*weight/100 over all criteria.
	RuleWeighted Rule = "weighted"
	// RuleThreshold forfeits the Calidad weight below the quality threshold.
	RuleThreshold Rule = "threshold"
	// RuleProcess applies the threshold to Calidad and a fixed multiplier
	// to Seguimiento de instrucciones.
	RuleProcess Rule = "process"
)

// Criterion names with special scoring.
const (
	CriterionQuality      = "Calidad"
	CriterionInstructions = "Seguimiento de instrucciones"
)

const (
	maxWeight       = 100
	weightTolerance = 0.001
)

// Criterion is one weighted dimension of a rubric.
type Criterion struct {
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// TaskType is a named rubric.
type TaskType struct {
	Name     string      `json:"name" yaml:"name"`
	Rule     Rule        `json:"rule" yaml:"rule"`
	Criteria []Criterion `json:"criteria" yaml:"criteria"`
}

// Criterion returns the named criterion of t.
func (t TaskType) Criterion(name string) (Criterion, bool) {
	for _, c := range t.Criteria {
		if c.Name == name {
			return c, true
		}
	}
	return Criterion{}, false
}

// TotalWeight sums the nominal weights.
func (t TaskType) TotalWeight() float64 {
	var sum float64
	for _, c := range t.Criteria {
		sum += c.Weight
	}
	return sum
}

func (t TaskType) clone() TaskType {
	c := t
	c.Criteria = append([]Criterion(nil), t.Criteria...)
	return c
}

// Catalog is an immutable, ordered set of task types.
type Catalog struct {
	types []TaskType
	index map[string]int
}

// New validates the given types and builds a catalog from them.
func New(types ...TaskType) (*Catalog, error) {
	c := &Catalog{
		types: make([]TaskType, 0, len(types)),
		index: make(map[string]int, len(types)),
	}
	for _, t := range types {
		t = t.clone()
		if t.Rule == "" {
			t.Rule = RuleWeighted
		}
		if err := validateType(t); err != nil {
			return nil, err
		}
		if _, dup := c.index[t.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateType, t.Name)
		}
		c.index[t.Name] = len(c.types)
		c.types = append(c.types, t)
	}
	if len(c.types) == 0 {
		return nil, fmt.Errorf("%w: no task types", ErrInvalidCatalog)
	}
	return c, nil
}

// MustNew is New that panics on an invalid table. Only for static tables.
func MustNew(types ...TaskType) *Catalog {
	c, err := New(types...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the task type registered under name.
func (c *Catalog) Lookup(name string) (TaskType, bool) {
	i, ok := c.index[name]
	if !ok {
		return TaskType{}, false
	}
	return c.types[i].clone(), true
}

// Has reports whether name is a known task type.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Types returns every task type in catalog order.
func (c *Catalog) Types() []TaskType {
	out := make([]TaskType, len(c.types))
	for i, t := range c.types {
		out[i] = t.clone()
	}
	return out
}

// Names returns the task type names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.types))
	for i, t := range c.types {
		out[i] = t.Name
	}
	return out
}

func validateType(t TaskType) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task type without name", ErrInvalidCatalog)
	}
	if len(t.Criteria) == 0 {
		return fmt.Errorf("%w: %q has no criteria", ErrInvalidCatalog, t.Name)
	}

	seen := make(map[string]struct{}, len(t.Criteria))
	for _, c := range t.Criteria {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: %q has a criterion without name", ErrInvalidCatalog, t.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %q in %q", ErrDuplicateCriterion, c.Name, t.Name)
		}
		seen[c.Name] = struct{}{}
		if math.IsNaN(c.Weight) || c.Weight < 0 || c.Weight > maxWeight {
			return fmt.Errorf("%w: %q weight %v out of [0,100] in %q", ErrInvalidCatalog, c.Name, c.Weight, t.Name)
		}
	}

	switch t.Rule {
	case RuleWeighted:
		if sum := t.TotalWeight(); math.Abs(sum-maxWeight) > weightTolerance {
			return fmt.Errorf("%w: %q weights sum to %v, want 100", ErrInvalidCatalog, t.Name, sum)
		}
	case RuleThreshold:
		if _, ok := seen[CriterionQuality]; !ok {
			return fmt.Errorf("%w: %q needs a %q criterion", ErrInvalidCatalog, t.Name, CriterionQuality)
		}
	case RuleProcess:
		if _, ok := seen[CriterionQuality]; !ok {
			return fmt.Errorf("%w: %q needs a %q criterion", ErrInvalidCatalog, t.Name, CriterionQuality)
		}
		if _, ok := seen[CriterionInstructions]; !ok {
			return fmt.Errorf("%w: %q needs a %q criterion", ErrInvalidCatalog, t.Name, CriterionInstructions)
		}
	default:
		return fmt.Errorf("%w: %q has unknown rule %q", ErrInvalidCatalog, t.Name, t.Rule)
	}
	return nil
}
