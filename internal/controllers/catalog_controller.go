package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"bizdir/internal/entities"
	"bizdir/internal/models"
	"bizdir/internal/service"
)

type CatalogController struct {
	catalogService service.CatalogService
	log            zerolog.Logger
}

func NewCatalogController(catalogService service.CatalogService, log zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		log:            log,
	}
}

// ListCategories handles GET /api/categories
func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, err := cc.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ListBusinesses handles GET /api/businesses?category_id=&search=
func (cc *CatalogController) ListBusinesses(c *gin.Context) {
	query, matchable := parseBusinessQuery(c)
	if !matchable {
		c.JSON(http.StatusOK, []*entities.BusinessView{})
		return
	}

	businesses, err := cc.catalogService.ListBusinesses(c.Request.Context(), query)
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, businesses)
}

// GetBusiness handles GET /api/businesses/:id
func (cc *CatalogController) GetBusiness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Business not found"})
		return
	}

	business, err := cc.catalogService.GetBusiness(c.Request.Context(), id)
	if errors.Is(err, service.ErrBusinessNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Business not found"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, business)
}

// parseBusinessQuery reads the optional filters; empty values mean "not filtered".
// matchable is false when category_id can equal no stored id.
func parseBusinessQuery(c *gin.Context) (query models.BusinessQuery, matchable bool) {
	query = models.BusinessQuery{Search: c.Query("search")}

	if raw := c.Query("category_id"); raw != "" {
		id, ok := parseCategoryID(raw)
		if !ok {
			return query, false
		}
		query.CategoryID = &id
	}

	return query, true
}

// parseCategoryID accepts any numeral equal to a whole number, so "2", " 2" and "2.0"
// all select category 2.
func parseCategoryID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}
