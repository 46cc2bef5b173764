package product

import (
	"context"
	"errors"
	"fmt"
	"relatedAttributes/business/related"
	"relatedAttributes/domain"
	"relatedAttributes/pkg/logger"
)

const DefaultRelatedLimit = 4

var ErrProductNotFound = errors.New("product not found")

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByQuery(ctx context.Context, q domain.RelatedQuery) ([]domain.Product, error)
}

// RelatedScorer rewrites the storefront candidate query. NarrowCandidates is
// the storefront's own category/tag filter, ComputeRelated the scoring.
type RelatedScorer interface {
	NarrowCandidates(ctx context.Context, productID uint64, query domain.RelatedQuery) (domain.RelatedQuery, error)
	ComputeRelated(ctx context.Context, productID uint64, query domain.RelatedQuery) (domain.RelatedQuery, error)
}

type productService struct {
	productRepo  ProductRepository
	scorer       RelatedScorer
	defaultLimit int
}

func NewProductService(productRepo ProductRepository, scorer RelatedScorer, defaultLimit int) *productService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultRelatedLimit
	}

	return &productService{
		productRepo:  productRepo,
		scorer:       scorer,
		defaultLimit: defaultLimit,
	}
}

// DefaultRelatedQuery is the listing the storefront asks for before any
// scoring: every other product, newest first.
func DefaultRelatedQuery(productID uint64, limit int) domain.RelatedQuery {
	return domain.RelatedQuery{
		Where: []domain.Predicate{
			{Kind: domain.PredicateRaw, SQL: "id <> ?", Args: []any{productID}},
		},
		OrderBy: []domain.Ordering{
			{Kind: domain.OrderingColumn, Column: "created_at", Desc: true},
		},
		Limit: limit,
	}
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return nil, related.ErrInvalidProductID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "product_id", id, "error", err)
		return nil, err
	}

	return &product, nil
}

// GetRelatedProducts lists the products related to productID. A narrowing or
// scoring failure yields an empty list rather than the unscored default listing.
func (s *productService) GetRelatedProducts(ctx context.Context, productID uint64, limit int) ([]domain.Product, error) {
	if productID == 0 {
		logger.Error("invalid product id when listing related products")
		return nil, related.ErrInvalidProductID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing related products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		logger.Error("failed to find product for related listing", "product_id", productID, "error", err)
		return nil, err
	}

	query, err := s.scorer.NarrowCandidates(ctx, productID, DefaultRelatedQuery(productID, limit))
	if err != nil {
		logger.Error("related candidate narrowing failed",
			"trace_id", related.TraceIDFromContext(ctx),
			"product_id", productID,
			"error", err,
		)
		return []domain.Product{}, nil
	}

	query, err = s.scorer.ComputeRelated(ctx, productID, query)
	if err != nil {
		logger.Error("related scoring failed",
			"trace_id", related.TraceIDFromContext(ctx),
			"product_id", productID,
			"error", err,
		)
		return []domain.Product{}, nil
	}

	products, err := s.productRepo.FindByQuery(ctx, query)
	if err != nil {
		logger.Error("failed to find related products", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to find related products: %w", err)
	}

	return products, nil
}
