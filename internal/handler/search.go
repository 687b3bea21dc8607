package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dharmasatrya/toursearch/internal/aggregator"
	"github.com/dharmasatrya/toursearch/internal/cache"
	"github.com/dharmasatrya/toursearch/internal/filter"
	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/internal/providers"
	"github.com/dharmasatrya/toursearch/internal/ranking"
)

type CatalogSource interface {
	Catalog(ctx context.Context) (*aggregator.Result, error)
}

type SearchHandler struct {
	catalog CatalogSource
	cache   cache.Cache
	logger  zerolog.Logger
}

func NewSearchHandler(catalog CatalogSource, c cache.Cache, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		catalog: catalog,
		cache:   c,
		logger:  logger,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if cached, found := h.cache.Get(ctx, req); found {
		return c.JSON(http.StatusOK, models.SearchResponse{
			SearchCriteria: buildSearchCriteria(req),
			Metadata: models.SearchMetadata{
				TotalResults:       len(cached.Tours),
				ProvidersQueried:   cached.ProvidersQueried,
				ProvidersSucceeded: cached.ProvidersSucceeded,
				SearchTimeMs:       time.Since(startTime).Milliseconds(),
				CacheHit:           true,
			},
			Tours: cached.Tours,
		})
	}

	result, err := h.catalog.Catalog(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to load tours: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	tours := ranking.Decorate(filter.Apply(result.Tours, req.Query, req.Filters))

	// a partial catalog must not be served from cache later
	if result.ProvidersFailed == 0 {
		entry := models.CachedSearch{
			Tours:              tours,
			ProvidersQueried:   result.ProvidersQueried,
			ProvidersSucceeded: result.ProvidersSucceeded,
		}
		if err := h.cache.Set(ctx, req, entry); err != nil {
			h.logger.Warn().Err(err).Msg("cache write failed")
		}
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: buildSearchCriteria(req),
		Metadata: models.SearchMetadata{
			TotalResults:       len(tours),
			ProvidersQueried:   result.ProvidersQueried,
			ProvidersSucceeded: result.ProvidersSucceeded,
			ProvidersFailed:    result.ProvidersFailed,
			FailedProviders:    result.FailedProviders,
			SearchTimeMs:       time.Since(startTime).Milliseconds(),
		},
		Tours: tours,
	})
}

func (h *SearchHandler) Featured(c echo.Context) error {
	result, err := h.catalog.Catalog(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to load tours: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	tours := ranking.Decorate(providers.Featured(result.Tours))
	return c.JSON(http.StatusOK, models.ToursResponse{
		Total: len(tours),
		Tours: tours,
	})
}

func buildSearchCriteria(req models.SearchRequest) models.SearchCriteria {
	return models.SearchCriteria{
		Query:   req.Query,
		Filters: req.Filters,
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
