package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"bizdir/internal/entities"
	"bizdir/internal/service"
)

// PageController serves the server-rendered directory pages
type PageController struct {
	catalogService service.CatalogService
	log            zerolog.Logger
}

func NewPageController(catalogService service.CatalogService, log zerolog.Logger) *PageController {
	return &PageController{
		catalogService: catalogService,
		log:            log,
	}
}

// Index handles GET /, taking the same filters as the businesses API
func (pc *PageController) Index(c *gin.Context) {
	data := gin.H{"Title": "Home", "Search": c.Query("search"), "CategoryID": int64(0)}

	query, matchable := parseBusinessQuery(c)
	if query.CategoryID != nil {
		data["CategoryID"] = *query.CategoryID
	}

	categories, err := pc.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		flash(c, pc.log, "danger", genericErrorMessage)
		categories = []*entities.Category{}
	}
	businesses := []*entities.BusinessView{}
	if matchable {
		businesses, err = pc.catalogService.ListBusinesses(c.Request.Context(), query)
		if err != nil {
			flash(c, pc.log, "danger", genericErrorMessage)
			businesses = []*entities.BusinessView{}
		}
	}

	data["Categories"] = categories
	data["Businesses"] = businesses
	renderPage(c, pc.log, http.StatusOK, "index.tmpl", data)
}

// BusinessDetails handles GET /business/:id
func (pc *PageController) BusinessDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderPage(c, pc.log, http.StatusNotFound, "business_details.tmpl", gin.H{"Title": "Business not found"})
		return
	}

	business, err := pc.catalogService.GetBusiness(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrBusinessNotFound):
		renderPage(c, pc.log, http.StatusNotFound, "business_details.tmpl", gin.H{"Title": "Business not found"})
	case err != nil:
		flash(c, pc.log, "danger", genericErrorMessage)
		renderPage(c, pc.log, http.StatusInternalServerError, "business_details.tmpl", gin.H{"Title": "Error"})
	default:
		renderPage(c, pc.log, http.StatusOK, "business_details.tmpl", gin.H{
			"Title":    business.Name,
			"Business": business,
		})
	}
}
