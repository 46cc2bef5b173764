package related

import (
	"context"
	"relatedAttributes/domain"
)

const (
	defaultAttributeWeight  = 10
	defaultThresholdPercent = 75
)

// Settings is an immutable snapshot of the relatedness configuration.
type Settings struct {
	Priorities domain.AttributePriorities
	Threshold  domain.ThresholdPolicy
	Methods    domain.RelationMethods
}

func DefaultSettings() Settings {
	return Settings{
		Priorities: domain.AttributePriorities{},
		Threshold: domain.ThresholdPolicy{
			Enabled:   false,
			Threshold: defaultThresholdPercent,
		},
		Methods: domain.RelationMethods{
			ByCategories: true,
			ByTags:       false,
		},
	}
}

// AttributeWeight returns the manual weight for taxonomy, 10 when none is saved.
func (s Settings) AttributeWeight(taxonomy string) int {
	if w, ok := s.Priorities[taxonomy]; ok {
		return w
	}
	return defaultAttributeWeight
}

func (s Settings) ThresholdPolicy() domain.ThresholdPolicy {
	return s.Threshold
}

// OptionRepository reads and writes the persisted settings blobs.
type OptionRepository interface {
	GetOption(ctx context.Context, name string) (domain.Option, bool, error)
	UpsertOption(ctx context.Context, opt domain.Option) error
}
