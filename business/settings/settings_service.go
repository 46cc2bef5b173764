package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"relatedAttributes/business/related"
	"relatedAttributes/domain"
	"relatedAttributes/pkg/logger"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

var (
	ErrNegativeWeight   = errors.New("attribute weight cannot be negative")
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
)

// TaxonomyLister enumerates the catalog taxonomies of one kind in catalog order.
type TaxonomyLister interface {
	ListTaxonomies(ctx context.Context, kind domain.TaxonomyKind) ([]domain.Taxonomy, error)
}

// TermCountInvalidator is implemented by term counters that cache.
type TermCountInvalidator interface {
	Invalidate(ctx context.Context, taxonomies ...string) error
}

// Reloader is the scorer side of a settings change.
type Reloader interface {
	Reload(ctx context.Context) related.Settings
}

type thresholdForm struct {
	Enabled   bool
	Threshold int `validate:"min=0,max=100"`
}

type settingsService struct {
	optionRepo related.OptionRepository
	taxonomies TaxonomyLister
	counter    related.TermCounter
	reloader   Reloader
	validate   *validator.Validate
}

func NewSettingsService(
	optionRepo related.OptionRepository,
	taxonomies TaxonomyLister,
	counter related.TermCounter,
	reloader Reloader,
) *settingsService {
	return &settingsService{
		optionRepo: optionRepo,
		taxonomies: taxonomies,
		counter:    counter,
		reloader:   reloader,
		validate:   validator.New(),
	}
}

// GetAttributePriorityForm lists every attribute taxonomy with its weight.
// Saved weights come first, heaviest first; the rest keep catalog order.
func (s *settingsService) GetAttributePriorityForm(ctx context.Context) ([]domain.AttributePriorityField, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get attribute priority form")
		return nil, fmt.Errorf("context error: %w", err)
	}

	attributes, err := s.taxonomies.ListTaxonomies(ctx, domain.TaxonomyKindAttribute)
	if err != nil {
		logger.Error("failed to list attribute taxonomies", "error", err)
		return nil, err
	}

	saved := related.LoadSettings(ctx, s.optionRepo).Priorities

	var weighted, rest []domain.AttributePriorityField
	for _, tax := range attributes {
		field := domain.AttributePriorityField{
			Taxonomy:  tax.Name,
			Label:     tax.Label,
			TermCount: s.termCount(ctx, tax.Name),
		}

		if weight, ok := saved[tax.Name]; ok {
			field.Weight = weight
			weighted = append(weighted, field)
			continue
		}

		field.Weight = related.DefaultSettings().AttributeWeight(tax.Name)
		rest = append(rest, field)
	}

	sort.SliceStable(weighted, func(i, j int) bool {
		if weighted[i].Weight != weighted[j].Weight {
			return weighted[i].Weight > weighted[j].Weight
		}
		return weighted[i].Taxonomy < weighted[j].Taxonomy
	})

	return append(weighted, rest...), nil
}

func (s *settingsService) termCount(ctx context.Context, taxonomy string) int64 {
	if s.counter == nil {
		return 0
	}

	count, err := s.counter.CountTerms(ctx, taxonomy)
	if err != nil {
		logger.Warn("term count failed", "taxonomy", taxonomy, "error", err)
		return 0
	}

	return count
}

// invalidateTermCounts drops cached counts so the reloaded scorer and the
// next form render see the current catalog.
func (s *settingsService) invalidateTermCounts(ctx context.Context, attributes []domain.Taxonomy) {
	invalidator, ok := s.counter.(TermCountInvalidator)
	if !ok || len(attributes) == 0 {
		return
	}

	names := make([]string, 0, len(attributes))
	for _, tax := range attributes {
		names = append(names, tax.Name)
	}

	if err := invalidator.Invalidate(ctx, names...); err != nil {
		logger.Warn("failed to invalidate term counts", "error", err)
	}
}

// SaveAttributePriorities replaces the stored weights. Keys that are not
// attribute taxonomies are dropped.
func (s *settingsService) SaveAttributePriorities(ctx context.Context, priorities map[string]int) (related.Settings, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when save attribute priorities")
		return related.Settings{}, fmt.Errorf("context error: %w", err)
	}

	for taxonomy, weight := range priorities {
		if weight < 0 {
			logger.Error("Invalid attribute weight", "taxonomy", taxonomy, "weight", weight)
			return related.Settings{}, fmt.Errorf("%w: %s", ErrNegativeWeight, taxonomy)
		}
	}

	attributes, err := s.taxonomies.ListTaxonomies(ctx, domain.TaxonomyKindAttribute)
	if err != nil {
		logger.Error("failed to list attribute taxonomies", "error", err)
		return related.Settings{}, err
	}

	known := make(map[string]bool, len(attributes))
	for _, tax := range attributes {
		known[tax.Name] = true
	}

	s.invalidateTermCounts(ctx, attributes)

	clean := domain.AttributePriorities{}
	for taxonomy, weight := range priorities {
		if !known[taxonomy] {
			logger.Warn("dropping weight for unknown taxonomy", "taxonomy", taxonomy)
			continue
		}
		clean[taxonomy] = weight
	}

	return s.save(ctx, domain.OptionAttributePriority, clean)
}

func (s *settingsService) GetThresholdPolicy(ctx context.Context) (domain.ThresholdPolicy, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get threshold policy")
		return domain.ThresholdPolicy{}, fmt.Errorf("context error: %w", err)
	}

	return related.LoadSettings(ctx, s.optionRepo).Threshold, nil
}

func (s *settingsService) SaveThresholdPolicy(ctx context.Context, policy domain.ThresholdPolicy) (related.Settings, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when save threshold policy")
		return related.Settings{}, fmt.Errorf("context error: %w", err)
	}

	form := thresholdForm{Enabled: policy.Enabled, Threshold: policy.Threshold}
	if err := s.validate.Struct(form); err != nil {
		logger.Error("Invalid threshold policy", "threshold", policy.Threshold)
		return related.Settings{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
	}

	return s.save(ctx, domain.OptionAttributeThreshold, policy)
}

func (s *settingsService) GetRelationMethods(ctx context.Context) (domain.RelationMethods, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get relation methods")
		return domain.RelationMethods{}, fmt.Errorf("context error: %w", err)
	}

	return related.LoadSettings(ctx, s.optionRepo).Methods, nil
}

func (s *settingsService) SaveRelationMethods(ctx context.Context, methods domain.RelationMethods) (related.Settings, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when save relation methods")
		return related.Settings{}, fmt.Errorf("context error: %w", err)
	}

	return s.save(ctx, domain.OptionRelationMethods, methods)
}

// save persists value under name and swaps the scorer onto the new snapshot.
func (s *settingsService) save(ctx context.Context, name string, value any) (related.Settings, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return related.Settings{}, fmt.Errorf("failed to encode %s: %w", name, err)
	}

	opt := domain.Option{Name: name, Value: datatypes.JSON(raw)}
	if err := s.optionRepo.UpsertOption(ctx, opt); err != nil {
		logger.Error("failed to save option", "option", name, "error", err)
		return related.Settings{}, fmt.Errorf("failed to save %s: %w", name, err)
	}

	logger.Info("related settings saved", "option", name)

	if s.reloader == nil {
		return related.LoadSettings(ctx, s.optionRepo), nil
	}
	return s.reloader.Reload(ctx), nil
}
