package postgres

import (
	"context"
	"errors"
	"fmt"
	"relatedAttributes/business/related"
	"relatedAttributes/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OptionRepository struct {
	DB *gorm.DB
}

var _ related.OptionRepository = (*OptionRepository)(nil)

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{DB: db}
}

func (r *OptionRepository) GetOption(ctx context.Context, name string) (domain.Option, bool, error) {
	var opt domain.Option

	err := r.DB.WithContext(ctx).
		Where("name = ?", name).
		First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Option{}, false, nil
	}
	if err != nil {
		return domain.Option{}, false, fmt.Errorf("failed to find option %s: %w", name, err)
	}

	return opt, true, nil
}

func (r *OptionRepository) UpsertOption(ctx context.Context, opt domain.Option) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&opt).Error
	if err != nil {
		return fmt.Errorf("failed to save option %s: %w", opt.Name, err)
	}

	return nil
}
