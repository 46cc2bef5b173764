package related

import (
	"context"
	"relatedAttributes/domain"
)

// CatalogRepository is the read side of the host catalog the scorer needs.
type CatalogRepository interface {
	// ProductTerms lists the terms productID holds, per taxonomy of the given kind.
	ProductTerms(ctx context.Context, productID uint64, kind domain.TaxonomyKind) (domain.TaxonomyTerms, error)
	// ProductsInTerm lists every product that is a member of termID, including the one being related.
	ProductsInTerm(ctx context.Context, taxonomy string, termID uint64) ([]uint64, error)
}

// CandidateSource supplies the terms a product holds in one kind of taxonomy.
type CandidateSource interface {
	Name() string
	Enabled(settings Settings) bool
	ProductTerms(ctx context.Context, productID uint64) (domain.TaxonomyTerms, error)
}

type taxonomySource struct {
	name    string
	kind    domain.TaxonomyKind
	enabled func(Settings) bool
	catalog CatalogRepository
}

func (s *taxonomySource) Name() string {
	return s.name
}

func (s *taxonomySource) Enabled(settings Settings) bool {
	return s.enabled(settings)
}

func (s *taxonomySource) ProductTerms(ctx context.Context, productID uint64) (domain.TaxonomyTerms, error) {
	return s.catalog.ProductTerms(ctx, productID, s.kind)
}

// AttributeSource reads product attribute memberships, the only ones scored.
func AttributeSource(catalog CatalogRepository) CandidateSource {
	return &taxonomySource{
		name:    "attributes",
		kind:    domain.TaxonomyKindAttribute,
		enabled: func(Settings) bool { return true },
		catalog: catalog,
	}
}

// CategorySource narrows candidates to shared categories when Methods.ByCategories is set.
func CategorySource(catalog CatalogRepository) CandidateSource {
	return &taxonomySource{
		name:    "categories",
		kind:    domain.TaxonomyKindCategory,
		enabled: func(s Settings) bool { return s.Methods.ByCategories },
		catalog: catalog,
	}
}

// TagSource narrows candidates to shared tags when Methods.ByTags is set.
func TagSource(catalog CatalogRepository) CandidateSource {
	return &taxonomySource{
		name:    "tags",
		kind:    domain.TaxonomyKindTag,
		enabled: func(s Settings) bool { return s.Methods.ByTags },
		catalog: catalog,
	}
}
