package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"relatedAttributes/business/related"
	"relatedAttributes/business/settings"
	"relatedAttributes/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettingsService struct {
	cfg        related.Settings
	saveErr    error
	priorities map[string]int
}

func newStubSettings() *stubSettingsService {
	return &stubSettingsService{cfg: related.DefaultSettings()}
}

func (s *stubSettingsService) GetAttributePriorityForm(ctx context.Context) ([]domain.AttributePriorityField, error) {
	return []domain.AttributePriorityField{
		{Taxonomy: "pa_color", Label: "Color", Weight: 20, TermCount: 5},
		{Taxonomy: "pa_size", Label: "Size", Weight: 10, TermCount: 2},
	}, nil
}

func (s *stubSettingsService) SaveAttributePriorities(ctx context.Context, priorities map[string]int) (related.Settings, error) {
	if s.saveErr != nil {
		return related.Settings{}, s.saveErr
	}
	s.priorities = priorities
	s.cfg.Priorities = priorities
	return s.cfg, nil
}

func (s *stubSettingsService) GetThresholdPolicy(ctx context.Context) (domain.ThresholdPolicy, error) {
	return s.cfg.Threshold, nil
}

func (s *stubSettingsService) SaveThresholdPolicy(ctx context.Context, policy domain.ThresholdPolicy) (related.Settings, error) {
	if s.saveErr != nil {
		return related.Settings{}, s.saveErr
	}
	s.cfg.Threshold = policy
	return s.cfg, nil
}

func (s *stubSettingsService) GetRelationMethods(ctx context.Context) (domain.RelationMethods, error) {
	return s.cfg.Methods, nil
}

func (s *stubSettingsService) SaveRelationMethods(ctx context.Context, methods domain.RelationMethods) (related.Settings, error) {
	s.cfg.Methods = methods
	return s.cfg, nil
}

func serveSettings(t *testing.T, svc RelatedSettingsService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewRelatedSettingsHandler(svc)
	e := echo.New()
	g := e.Group("/api/v1/admin/related")
	g.GET("/priorities", h.GetPriorities)
	g.PUT("/priorities", h.SavePriorities)
	g.GET("/threshold", h.GetThreshold)
	g.PUT("/threshold", h.SaveThreshold)
	g.GET("/methods", h.GetMethods)
	g.PUT("/methods", h.SaveMethods)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestGetPrioritiesHandler(t *testing.T) {
	rec := serveSettings(t, newStubSettings(), http.MethodGet, "/api/v1/admin/related/priorities", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"taxonomy":"pa_color"`)
	assert.Contains(t, rec.Body.String(), `"term_count":5`)
}

func TestSavePrioritiesHandler(t *testing.T) {
	svc := newStubSettings()

	rec := serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/priorities", `{"priorities":{"pa_color":20,"pa_size":0}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"pa_color": 20, "pa_size": 0}, svc.priorities)

	rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/priorities", `{"priorities":{"pa_color":-2}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/priorities", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/priorities", `{"priorities":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavePrioritiesHandlerServiceErrors(t *testing.T) {
	svc := newStubSettings()

	svc.saveErr = fmt.Errorf("%w: pa_color", settings.ErrNegativeWeight)
	rec := serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/priorities", `{"priorities":{"pa_color":1}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.saveErr = errBoom
	rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/priorities", `{"priorities":{"pa_color":1}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestThresholdHandlers(t *testing.T) {
	svc := newStubSettings()

	rec := serveSettings(t, svc, http.MethodGet, "/api/v1/admin/related/threshold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"threshold":75`)

	rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/threshold", `{"enabled":true,"threshold":80}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ThresholdPolicy{Enabled: true, Threshold: 80}, svc.cfg.Threshold)

	for _, body := range []string{`{"enabled":true,"threshold":101}`, `{"enabled":true,"threshold":-1}`, `{"threshold":50}`} {
		rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/threshold", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, 80, svc.cfg.Threshold.Threshold)
}

func TestMethodsHandlers(t *testing.T) {
	svc := newStubSettings()

	rec := serveSettings(t, svc, http.MethodGet, "/api/v1/admin/related/methods", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"by_categories":true`)

	rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/methods", `{"by_categories":false,"by_tags":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RelationMethods{ByCategories: false, ByTags: true}, svc.cfg.Methods)

	rec = serveSettings(t, svc, http.MethodPut, "/api/v1/admin/related/methods", `{"by_tags":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
