package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"relatedAttributes/business/product"
	"relatedAttributes/business/related"
	"relatedAttributes/domain"
	"relatedAttributes/pkg/logger"
	"relatedAttributes/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RelatedHandler struct {
		validate       *validator.Validate
		productService RelatedProductService
		scorer         RelatedScorer
		timeout        time.Duration
	}

	RelatedProductService interface {
		GetRelatedProducts(ctx context.Context, productID uint64, limit int) ([]domain.Product, error)
	}

	RelatedScorer interface {
		ScoreRelated(ctx context.Context, productID uint64) (domain.RelatedScores, error)
	}

	RelatedListQuery struct {
		Limit int `query:"limit" validate:"gte=0,lte=100"`
	}
)

func NewRelatedHandler(productService RelatedProductService, scorer RelatedScorer) *RelatedHandler {
	return &RelatedHandler{
		validate:       validator.New(),
		productService: productService,
		scorer:         scorer,
		timeout:        10 * time.Second,
	}
}

func parseProductID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, related.ErrInvalidProductID
	}
	return id, nil
}

// GET /api/v1/products/:id/related?limit=4
func (h *RelatedHandler) GetRelatedProducts(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RelatedRequestLatency.Observe(time.Since(start).Seconds())
	}()

	productID, err := parseProductID(c)
	if err != nil {
		metrics.RelatedRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var q RelatedListQuery
	if err := c.Bind(&q); err != nil {
		metrics.RelatedRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		metrics.RelatedRequests.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetRelatedProducts(ctx, productID, q.Limit)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			metrics.RelatedRequests.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get related products", "product_id", productID, "error", err)
		metrics.RelatedRequests.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if len(products) == 0 {
		metrics.RelatedRequests.WithLabelValues("empty").Inc()
	} else {
		metrics.RelatedRequests.WithLabelValues("ok").Inc()
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

// GET /api/v1/products/:id/related/debug
func (h *RelatedHandler) DebugRelated(c echo.Context) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	scores, err := h.scorer.ScoreRelated(ctx, productID)
	if err != nil {
		logger.Error("Failed to score related products", "product_id", productID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(scores))
}
