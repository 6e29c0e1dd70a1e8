// Package scoring turns per-criterion raw scores into a task's total score.
//
// It is the single place where rubric arithmetic lives; every reader and writer
// of TotalScore goes through a Calculator.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/incentivo/internal/domain/catalog"
	"github.com/okian/incentivo/internal/domain/model"
)

// Scoring constants.
const (
	minRawScore = 0
	maxRawScore = 100

	// Calidad below this forfeits its whole contribution.
	qualityThreshold = 70

	// Rescaled quality: ((raw - rescaleBase) / rescaleSpan) * rescaleMax.
	rescaleBase = 69
	rescaleSpan = 31
	rescaleMax  = 60

	// Seguimiento de instrucciones in process tasks counts raw*0.40.
	instructionsMultiplier = 0.40
)

// QualityStrategy selects the Calidad formula used above the threshold.
type QualityStrategy string

// Quality strategies.
const (
	// QualityRescaled maps 70..100 onto 0..60 non-linearly to the threshold.
	QualityRescaled QualityStrategy = "rescaled"
	// QualityProportional uses raw*weight/100 like any other criterion.
	QualityProportional QualityStrategy = "proportional"
)

// ParseQualityStrategy validates a configured strategy name.
func ParseQualityStrategy(s string) (QualityStrategy, error) {
	switch QualityStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", QualityRescaled:
		return QualityRescaled, nil
	case QualityProportional:
		return QualityProportional, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithCatalog sets the rubric table.
func WithCatalog(c *catalog.Catalog) Option {
	return func(calc *Calculator) {
		if c != nil {
			calc.catalog = c
		}
	}
}

// WithQualityStrategy sets the Calidad formula.
func WithQualityStrategy(s QualityStrategy) Option {
	return func(calc *Calculator) {
		if s == QualityRescaled || s == QualityProportional {
			calc.quality = s
		}
	}
}

// Scorer computes a task's total score. A nil result means the task cannot be
// scored yet.
type Scorer interface {
	Compute(taskType string, evals model.Evaluations) *float64
}

// Contribution is one criterion's share of a total.
type Contribution struct {
	Criterion string  `json:"criterion"`
	Weight    float64 `json:"weight"`
	Raw       float64 `json:"raw"`
	Entered   bool    `json:"entered"`
	Points    float64 `json:"points"`
}

// Breakdown is a total with its per-criterion contributions in rubric order.
type Breakdown struct {
	Type          string         `json:"type"`
	Total         float64        `json:"total"`
	Contributions []Contribution `json:"contributions"`
}

// Calculator implements Scorer over a catalog.
type Calculator struct {
	catalog *catalog.Catalog
	quality QualityStrategy
}

// NewCalculator creates a calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		catalog: catalog.Default(),
		quality: QualityRescaled,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the rubric table in use.
func (c *Calculator) Catalog() *catalog.Catalog { return c.catalog }

// Quality returns the configured Calidad strategy.
func (c *Calculator) Quality() QualityStrategy { return c.quality }

// Compute returns the total score, or nil when the type is unknown or none of
// its criteria has been entered.
func (c *Calculator) Compute(taskType string, evals model.Evaluations) *float64 {
	b, ok := c.Breakdown(taskType, evals)
	if !ok {
		return nil
	}
	total := b.Total
	return &total
}

// Breakdown computes the total with per-criterion detail. ok is false when the
// task cannot be scored.
func (c *Calculator) Breakdown(taskType string, evals model.Evaluations) (Breakdown, bool) {
	tt, known := c.catalog.Lookup(taskType)
	if !known {
		return Breakdown{}, false
	}

	b := Breakdown{Type: tt.Name, Contributions: make([]Contribution, 0, len(tt.Criteria))}
	entered := false
	for _, cr := range tt.Criteria {
		raw, ok := evals[cr.Name]
		if ok {
			entered = true
		}
		raw = Clamp(raw)
		points := c.contribution(tt.Rule, cr, raw)
		b.Contributions = append(b.Contributions, Contribution{
			Criterion: cr.Name,
			Weight:    cr.Weight,
			Raw:       raw,
			Entered:   ok,
			Points:    points,
		})
		b.Total += points
	}
	if !entered {
		return Breakdown{}, false
	}
	return b, true
}

func (c *Calculator) contribution(rule catalog.Rule, cr catalog.Criterion, raw float64) float64 {
	switch rule {
	case catalog.RuleThreshold:
		if cr.Name == catalog.CriterionQuality {
			return c.qualityPoints(cr, raw)
		}
	case catalog.RuleProcess:
		switch cr.Name {
		case catalog.CriterionQuality:
			return c.qualityPoints(cr, raw)
		case catalog.CriterionInstructions:
			return raw * instructionsMultiplier
		}
	case catalog.RuleWeighted:
	}
	return weighted(cr, raw)
}

func (c *Calculator) qualityPoints(cr catalog.Criterion, raw float64) float64 {
	if raw < qualityThreshold {
		return 0
	}
	if c.quality == QualityProportional {
		return weighted(cr, raw)
	}
	return (raw - rescaleBase) / rescaleSpan * rescaleMax
}

func weighted(cr catalog.Criterion, raw float64) float64 {
	return raw * cr.Weight / maxRawScore
}

// Clamp bounds a raw score to [0,100]. Non-finite values become 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return minRawScore
	}
	return math.Max(minRawScore, math.Min(maxRawScore, v))
}

// NormalizeEvaluations returns a copy of evals with every score clamped.
// The result is never nil.
func NormalizeEvaluations(evals model.Evaluations) model.Evaluations {
	out := make(model.Evaluations, len(evals))
	for name, v := range evals {
		out[name] = Clamp(v)
	}
	return out
}
