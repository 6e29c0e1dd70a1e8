// Package bucket classifies task scores into performance bands.
package bucket

import "math"

// Bucket is a score band.
type Bucket string

// Score bands, best first.
const (
	Excellent Bucket = "excellent"
	Good      Bucket = "good"
	Regular   Bucket = "regular"
	Deficient Bucket = "deficient"
)

// Lower bounds, inclusive.
const (
	excellentFrom = 90
	goodFrom      = 70
	regularFrom   = 50
)

// Classify maps any real score to its band. NaN is Deficient.
func Classify(score float64) Bucket {
	switch {
	case math.IsNaN(score):
		return Deficient
	case score >= excellentFrom:
		return Excellent
	case score >= goodFrom:
		return Good
	case score >= regularFrom:
		return Regular
	default:
		return Deficient
	}
}

// All returns every band ordered best to worst.
func All() []Bucket {
	return []Bucket{Excellent, Good, Regular, Deficient}
}

// Label returns the display label.
func (b Bucket) Label() string {
	switch b {
	case Excellent:
		return "Excelente"
	case Good:
		return "Bueno"
	case Regular:
		return "Regular"
	case Deficient:
		return "Deficiente"
	}
	return string(b)
}

// Color returns the hex color used when rendering the band.
func (b Bucket) Color() string {
	switch b {
	case Excellent:
		return "#16a34a"
	case Good:
		return "#2563eb"
	case Regular:
		return "#d97706"
	default:
		return "#dc2626"
	}
}
