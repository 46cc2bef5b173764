package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"relatedAttributes/business/product"
	"relatedAttributes/business/related"
	"relatedAttributes/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type stubProductService struct {
	products []domain.Product
	err      error
	gotID    uint64
	gotLimit int
}

func (s *stubProductService) GetRelatedProducts(ctx context.Context, productID uint64, limit int) ([]domain.Product, error) {
	s.gotID = productID
	s.gotLimit = limit
	return s.products, s.err
}

type stubScorer struct {
	scores domain.RelatedScores
	err    error
}

func (s *stubScorer) ScoreRelated(ctx context.Context, productID uint64) (domain.RelatedScores, error) {
	return s.scores, s.err
}

func serveRelated(t *testing.T, h *RelatedHandler, target string, handler func(*RelatedHandler) echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/api/v1/products/:id/related", handler(h))
	e.GET("/api/v1/products/:id/related/debug", handler(h))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func list(h *RelatedHandler) echo.HandlerFunc  { return h.GetRelatedProducts }
func debug(h *RelatedHandler) echo.HandlerFunc { return h.DebugRelated }

func TestGetRelatedProductsHandler(t *testing.T) {
	svc := &stubProductService{products: []domain.Product{
		{ID: 3, ProductName: "Red Scarf"},
		{ID: 2, ProductName: "Red Hat"},
	}}
	h := NewRelatedHandler(svc, &stubScorer{})

	rec := serveRelated(t, h, "/api/v1/products/1/related?limit=2", list)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(1), svc.gotID)
	assert.Equal(t, 2, svc.gotLimit)

	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "Red Scarf"), strings.Index(body, "Red Hat"))
}

func TestGetRelatedProductsHandlerDefaultLimit(t *testing.T) {
	svc := &stubProductService{products: []domain.Product{}}
	h := NewRelatedHandler(svc, &stubScorer{})

	rec := serveRelated(t, h, "/api/v1/products/5/related", list)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, svc.gotLimit)
}

func TestGetRelatedProductsHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"non numeric id", "/api/v1/products/abc/related", nil, http.StatusBadRequest},
		{"zero id", "/api/v1/products/0/related", nil, http.StatusBadRequest},
		{"limit too large", "/api/v1/products/1/related?limit=500", nil, http.StatusBadRequest},
		{"negative limit", "/api/v1/products/1/related?limit=-1", nil, http.StatusBadRequest},
		{"unknown product", "/api/v1/products/9/related", product.ErrProductNotFound, http.StatusNotFound},
		{"repository failure", "/api/v1/products/9/related", errBoom, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRelatedHandler(&stubProductService{err: tt.err}, &stubScorer{})
			rec := serveRelated(t, h, tt.target, list)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDebugRelatedHandler(t *testing.T) {
	scorer := &stubScorer{scores: domain.RelatedScores{
		ProductID:     1,
		HasAttributes: true,
		Ceiling:       5,
		Threshold:     domain.ThresholdPolicy{Enabled: true, Threshold: 80},
		Products:      []domain.ScoredProduct{{ProductID: 2, Score: 5}},
	}}
	h := NewRelatedHandler(&stubProductService{}, scorer)

	rec := serveRelated(t, h, "/api/v1/products/1/related/debug", debug)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ceiling":5`)
	assert.Contains(t, rec.Body.String(), `"threshold":80`)

	scorer.err = errBoom
	rec = serveRelated(t, h, "/api/v1/products/1/related/debug", debug)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serveRelated(t, h, "/api/v1/products/x/related/debug", debug)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), related.ErrInvalidProductID.Error())
}
