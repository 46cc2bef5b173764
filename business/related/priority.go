package related

import (
	"context"
	"fmt"
)

// termFactorDivisor turns a taxonomy's term count into its term factor:
// 12 terms give 1.2, 2 terms give 0.2.
const termFactorDivisor = 10.0

// TermCounter reports how many distinct terms a taxonomy defines.
type TermCounter interface {
	CountTerms(ctx context.Context, taxonomy string) (int64, error)
}

// PriorityOverride substitutes the computed priority of a taxonomy.
type PriorityOverride interface {
	OverridePriority(taxonomy string, computed float64) float64
}

type PriorityOverrideFunc func(taxonomy string, computed float64) float64

func (f PriorityOverrideFunc) OverridePriority(taxonomy string, computed float64) float64 {
	return f(taxonomy, computed)
}

// ComputePriority is termCount/10 * weight. It is 0 when either input is not positive.
func ComputePriority(termCount int64, weight int) float64 {
	if termCount <= 0 || weight <= 0 {
		return 0
	}
	termFactor := float64(termCount) / termFactorDivisor
	return termFactor * float64(weight)
}

type PriorityCalculator struct {
	counter  TermCounter
	override PriorityOverride
}

func NewPriorityCalculator(counter TermCounter, override PriorityOverride) *PriorityCalculator {
	return &PriorityCalculator{
		counter:  counter,
		override: override,
	}
}

// Priority returns the per-match contribution of taxonomy under settings.
func (c *PriorityCalculator) Priority(ctx context.Context, settings Settings, taxonomy string) (float64, error) {
	p, _, err := c.resolve(ctx, settings, taxonomy)
	return p, err
}

// resolve also reports whether the taxonomy has any terms; callers skip it when not.
func (c *PriorityCalculator) resolve(ctx context.Context, settings Settings, taxonomy string) (float64, bool, error) {
	count, err := c.counter.CountTerms(ctx, taxonomy)
	if err != nil {
		return 0, false, fmt.Errorf("count terms of %s: %w", taxonomy, err)
	}
	if count <= 0 {
		return 0, false, nil
	}

	priority := ComputePriority(count, settings.AttributeWeight(taxonomy))
	if c.override != nil {
		priority = c.override.OverridePriority(taxonomy, priority)
	}

	return priority, true, nil
}
