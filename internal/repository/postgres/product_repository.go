package postgres

import (
	"context"
	"errors"
	"fmt"
	"relatedAttributes/business/product"
	"relatedAttributes/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var p domain.Product

	err := r.DB.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, product.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return p, nil
}

// FindByQuery runs a related-products query against the products table.
func (r *ProductRepository) FindByQuery(ctx context.Context, q domain.RelatedQuery) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// nothing to fetch, skip the round trip
	if q.MatchesNothing() {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	db := ApplyRelatedQuery(r.DB.WithContext(ctx).Model(&domain.Product{}), q)
	if err := db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find related products: %w", err)
	}

	return products, nil
}
