package related

import (
	"context"
	"fmt"
	"sort"

	"relatedAttributes/domain"
	"relatedAttributes/pkg/logger"
)

// accumulate credits every member of every (taxonomy, term) pair with the
// taxonomy priority. The product being related is a member of its own terms,
// so it ends up with the sum of all of its priorities.
func (s *RelatedService) accumulate(
	ctx context.Context,
	settings Settings,
	terms domain.TaxonomyTerms,
) (map[uint64]float64, error) {
	scores := make(map[uint64]float64)

	for _, taxonomy := range sortedTaxonomies(terms) {
		priority, hasTerms, err := s.priority.resolve(ctx, settings, taxonomy)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("context error: %w", ctxErr)
			}
			logger.Warn("skipping taxonomy without term count",
				"trace_id", TraceIDFromContext(ctx),
				"taxonomy", taxonomy,
				"error", err,
			)
			continue
		}
		if !hasTerms {
			continue
		}

		for _, termID := range terms[taxonomy] {
			members, err := s.catalog.ProductsInTerm(ctx, taxonomy, termID)
			if err != nil {
				return nil, fmt.Errorf("load members of term %d in %s: %w", termID, taxonomy, err)
			}
			for _, productID := range members {
				scores[productID] += priority
			}
		}
	}

	return scores, nil
}

// rank orders scores descending. Equal scores fall back to ascending product id;
// callers must not rely on any particular order among ties.
func rank(scores map[uint64]float64) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, 0, len(scores))
	for id, score := range scores {
		out = append(out, domain.ScoredProduct{ProductID: id, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Score > out[j].Score
	})

	return out
}

// applyThreshold keeps products whose score is more than policy.Threshold
// percent of the ceiling. The ceiling is the related product's own score in
// the same mapping; when it is missing or not positive nothing survives.
func applyThreshold(
	ranked []domain.ScoredProduct,
	scores map[uint64]float64,
	productID uint64,
	policy domain.ThresholdPolicy,
) ([]domain.ScoredProduct, float64) {
	ceiling, found := scores[productID]
	if !policy.Enabled || policy.Threshold < 0 {
		return ranked, ceiling
	}
	if !found || ceiling <= 0 || policy.Threshold > 100 {
		return []domain.ScoredProduct{}, ceiling
	}

	threshold := float64(policy.Threshold)
	kept := make([]domain.ScoredProduct, 0, len(ranked))
	for _, p := range ranked {
		if (p.Score/ceiling)*100 > threshold {
			kept = append(kept, p)
		}
	}

	return kept, ceiling
}

func removeProduct(ranked []domain.ScoredProduct, productID uint64) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, 0, len(ranked))
	for _, p := range ranked {
		if p.ProductID == productID {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortedTaxonomies(terms domain.TaxonomyTerms) []string {
	names := make([]string, 0, len(terms))
	for name := range terms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func countTerms(terms domain.TaxonomyTerms) int {
	n := 0
	for _, ids := range terms {
		n += len(ids)
	}
	return n
}
