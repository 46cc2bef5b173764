package related

import (
	"context"
	"fmt"
	"sync/atomic"

	"relatedAttributes/domain"
	"relatedAttributes/pkg/logger"
)

// RelatedService ranks catalog products by the attribute terms they share
// with a given product and rewrites the host's related-products query.
type RelatedService struct {
	catalog    CatalogRepository
	priority   *PriorityCalculator
	optionRepo OptionRepository
	attributes CandidateSource
	narrowing  []CandidateSource
	settings   atomic.Pointer[Settings]
}

// NewRelatedService loads the settings once; call Reload after they change.
// narrowing sources never score, they only shrink the host candidate query
// in NarrowCandidates.
func NewRelatedService(
	ctx context.Context,
	catalog CatalogRepository,
	counter TermCounter,
	optionRepo OptionRepository,
	override PriorityOverride,
	narrowing ...CandidateSource,
) *RelatedService {
	s := &RelatedService{
		catalog:    catalog,
		priority:   NewPriorityCalculator(counter, override),
		optionRepo: optionRepo,
		attributes: AttributeSource(catalog),
		narrowing:  narrowing,
	}
	s.Reload(ctx)
	return s
}

// Reload replaces the settings snapshot with the persisted values.
func (s *RelatedService) Reload(ctx context.Context) Settings {
	cfg := LoadSettings(ctx, s.optionRepo)
	s.settings.Store(&cfg)

	logger.Info("related settings loaded",
		"priorities", len(cfg.Priorities),
		"threshold_enabled", cfg.Threshold.Enabled,
		"threshold", cfg.Threshold.Threshold,
		"by_categories", cfg.Methods.ByCategories,
		"by_tags", cfg.Methods.ByTags,
	)
	return cfg
}

func (s *RelatedService) Settings() Settings {
	return *s.settings.Load()
}

// Priority exposes the attribute priority under the current settings.
func (s *RelatedService) Priority(ctx context.Context, taxonomy string) (float64, error) {
	return s.priority.Priority(ctx, s.Settings(), taxonomy)
}

// ScoreRelated scores every product sharing a term with productID, then applies
// the threshold policy and drops productID itself.
func (s *RelatedService) ScoreRelated(ctx context.Context, productID uint64) (domain.RelatedScores, error) {
	if err := ctx.Err(); err != nil {
		return domain.RelatedScores{}, fmt.Errorf("context error: %w", err)
	}

	settings := s.Settings()
	result := domain.RelatedScores{
		ProductID: productID,
		Threshold: settings.Threshold,
		Products:  []domain.ScoredProduct{},
	}

	terms, err := s.attributes.ProductTerms(ctx, productID)
	if err != nil {
		return domain.RelatedScores{}, fmt.Errorf("load product attributes: %w", err)
	}
	if countTerms(terms) == 0 {
		return result, nil
	}
	result.HasAttributes = true

	scores, err := s.accumulate(ctx, settings, terms)
	if err != nil {
		return domain.RelatedScores{}, err
	}
	RelatedScoringCandidates.Observe(float64(len(scores)))

	ranked := rank(scores)
	kept, ceiling := applyThreshold(ranked, scores, productID, settings.Threshold)
	result.Ceiling = ceiling
	result.Products = removeProduct(kept, productID)

	logger.Debug("related_scored",
		"trace_id", TraceIDFromContext(ctx),
		"product_id", productID,
		"taxonomies", len(terms),
		"scored", len(scores),
		"kept", len(result.Products),
		"ceiling", ceiling,
	)

	return result, nil
}

// ComputeRelated rewrites query so that it returns exactly the related
// products, best first. A product without attributes leaves query untouched;
// an empty ranking makes query match nothing.
func (s *RelatedService) ComputeRelated(
	ctx context.Context,
	productID uint64,
	query domain.RelatedQuery,
) (domain.RelatedQuery, error) {
	scores, err := s.ScoreRelated(ctx, productID)
	if err != nil {
		return query, err
	}

	if !scores.HasAttributes {
		RelatedScoringTotal.WithLabelValues(outcomePassthrough).Inc()
		return query, nil
	}

	if len(scores.Products) == 0 {
		RelatedScoringTotal.WithLabelValues(outcomeEmpty).Inc()
		return query.MatchNone(), nil
	}

	RelatedScoringTotal.WithLabelValues(outcomeRestricted).Inc()
	return query.RestrictToIDs(scores.ProductIDs()), nil
}

// NarrowCandidates limits the host query to products sharing a category or tag
// term with productID, for each relation method that is switched on. It runs
// before ComputeRelated and never touches scores. A product holding no terms
// of any enabled method keeps the query as is.
func (s *RelatedService) NarrowCandidates(
	ctx context.Context,
	productID uint64,
	query domain.RelatedQuery,
) (domain.RelatedQuery, error) {
	if err := ctx.Err(); err != nil {
		return query, fmt.Errorf("context error: %w", err)
	}

	settings := s.Settings()

	var termIDs []uint64
	for _, src := range s.narrowing {
		if !src.Enabled(settings) {
			continue
		}
		terms, err := src.ProductTerms(ctx, productID)
		if err != nil {
			return query, fmt.Errorf("load %s memberships: %w", src.Name(), err)
		}
		for _, taxonomy := range sortedTaxonomies(terms) {
			termIDs = append(termIDs, terms[taxonomy]...)
		}
	}

	if len(termIDs) == 0 {
		return query, nil
	}

	return query.RestrictToTerms(termIDs), nil
}
