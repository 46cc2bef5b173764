package postgres

import (
	"context"
	"fmt"
	"relatedAttributes/business/related"
	"relatedAttributes/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

var (
	_ related.CatalogRepository = (*CatalogRepository)(nil)
	_ related.TermCounter       = (*CatalogRepository)(nil)
)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		DB: db,
	}
}

type productTermRow struct {
	Taxonomy string `gorm:"column:taxonomy"`
	TermID   uint64 `gorm:"column:term_id"`
}

func (r *CatalogRepository) ProductTerms(ctx context.Context, productID uint64, kind domain.TaxonomyKind) (domain.TaxonomyTerms, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []productTermRow
	err := r.DB.WithContext(ctx).
		Table("product_terms AS pt").
		Select("tx.name AS taxonomy, pt.term_id AS term_id").
		Joins("JOIN terms t ON t.id = pt.term_id").
		Joins("JOIN taxonomies tx ON tx.id = t.taxonomy_id").
		Where("pt.product_id = ? AND tx.kind = ?", productID, kind).
		Order("tx.name, pt.term_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product terms: %w", err)
	}

	terms := make(domain.TaxonomyTerms)
	for _, row := range rows {
		terms[row.Taxonomy] = append(terms[row.Taxonomy], row.TermID)
	}

	return terms, nil
}

func (r *CatalogRepository) ProductsInTerm(ctx context.Context, taxonomy string, termID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Table("product_terms AS pt").
		Joins("JOIN terms t ON t.id = pt.term_id").
		Joins("JOIN taxonomies tx ON tx.id = t.taxonomy_id").
		Where("pt.term_id = ? AND tx.name = ?", termID, taxonomy).
		Order("pt.product_id").
		Pluck("pt.product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find term members: %w", err)
	}

	return ids, nil
}

func (r *CatalogRepository) CountTerms(ctx context.Context, taxonomy string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Term{}).
		Joins("JOIN taxonomies tx ON tx.id = terms.taxonomy_id").
		Where("tx.name = ?", taxonomy).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count terms: %w", err)
	}

	return count, nil
}

func (r *CatalogRepository) ListTaxonomies(ctx context.Context, kind domain.TaxonomyKind) ([]domain.Taxonomy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var taxonomies []domain.Taxonomy
	err := r.DB.WithContext(ctx).
		Where("kind = ?", kind).
		Order("id").
		Find(&taxonomies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find taxonomies: %w", err)
	}

	return taxonomies, nil
}
