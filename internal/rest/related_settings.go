package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"relatedAttributes/business/related"
	"relatedAttributes/business/settings"
	"relatedAttributes/domain"
	"relatedAttributes/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RelatedSettingsHandler struct {
		validate        *validator.Validate
		settingsService RelatedSettingsService
		timeout         time.Duration
	}

	RelatedSettingsService interface {
		GetAttributePriorityForm(ctx context.Context) ([]domain.AttributePriorityField, error)
		SaveAttributePriorities(ctx context.Context, priorities map[string]int) (related.Settings, error)
		GetThresholdPolicy(ctx context.Context) (domain.ThresholdPolicy, error)
		SaveThresholdPolicy(ctx context.Context, policy domain.ThresholdPolicy) (related.Settings, error)
		GetRelationMethods(ctx context.Context) (domain.RelationMethods, error)
		SaveRelationMethods(ctx context.Context, methods domain.RelationMethods) (related.Settings, error)
	}

	PrioritiesRequest struct {
		Priorities map[string]int `json:"priorities" validate:"required,dive,keys,required,endkeys,gte=0"`
	}

	ThresholdRequest struct {
		Enabled   *bool `json:"enabled" validate:"required"`
		Threshold int   `json:"threshold" validate:"gte=0,lte=100"`
	}

	RelationMethodsRequest struct {
		ByCategories *bool `json:"by_categories" validate:"required"`
		ByTags       *bool `json:"by_tags" validate:"required"`
	}
)

func NewRelatedSettingsHandler(settingsService RelatedSettingsService) *RelatedSettingsHandler {
	return &RelatedSettingsHandler{
		validate:        validator.New(),
		settingsService: settingsService,
		timeout:         10 * time.Second,
	}
}

func settingsErrorStatus(err error) int {
	switch {
	case errors.Is(err, settings.ErrNegativeWeight), errors.Is(err, settings.ErrInvalidThreshold):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/v1/admin/related/priorities
func (h *RelatedSettingsHandler) GetPriorities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	form, err := h.settingsService.GetAttributePriorityForm(ctx)
	if err != nil {
		logger.Error("Failed to get attribute priorities", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(form))
}

// PUT /api/v1/admin/related/priorities
// body: {"priorities": {"pa_color": 20}}
func (h *RelatedSettingsHandler) SavePriorities(c echo.Context) error {
	var req PrioritiesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cfg, err := h.settingsService.SaveAttributePriorities(ctx, req.Priorities)
	if err != nil {
		logger.Error("Failed to save attribute priorities", "error", err)
		return c.JSON(settingsErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cfg.Priorities))
}

// GET /api/v1/admin/related/threshold
func (h *RelatedSettingsHandler) GetThreshold(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	policy, err := h.settingsService.GetThresholdPolicy(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(policy))
}

// PUT /api/v1/admin/related/threshold
// body: {"enabled": true, "threshold": 75}
func (h *RelatedSettingsHandler) SaveThreshold(c echo.Context) error {
	var req ThresholdRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	policy := domain.ThresholdPolicy{Enabled: *req.Enabled, Threshold: req.Threshold}
	cfg, err := h.settingsService.SaveThresholdPolicy(ctx, policy)
	if err != nil {
		logger.Error("Failed to save threshold policy", "error", err)
		return c.JSON(settingsErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cfg.Threshold))
}

// GET /api/v1/admin/related/methods
func (h *RelatedSettingsHandler) GetMethods(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	methods, err := h.settingsService.GetRelationMethods(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(methods))
}

// PUT /api/v1/admin/related/methods
// body: {"by_categories": true, "by_tags": false}
func (h *RelatedSettingsHandler) SaveMethods(c echo.Context) error {
	var req RelationMethodsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	methods := domain.RelationMethods{ByCategories: *req.ByCategories, ByTags: *req.ByTags}
	cfg, err := h.settingsService.SaveRelationMethods(ctx, methods)
	if err != nil {
		logger.Error("Failed to save relation methods", "error", err)
		return c.JSON(settingsErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cfg.Methods))
}
