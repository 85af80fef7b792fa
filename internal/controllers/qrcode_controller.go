package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	"bizdir/internal/models"
	"bizdir/internal/service"
)

type QRCodeController struct {
	catalogService service.CatalogService
	baseURL        string
	log            zerolog.Logger
}

func NewQRCodeController(catalogService service.CatalogService, baseURL string, log zerolog.Logger) *QRCodeController {
	return &QRCodeController{
		catalogService: catalogService,
		baseURL:        strings.TrimRight(baseURL, "/"),
		log:            log,
	}
}

// GenerateBusinessQRCode handles GET /api/businesses/:id/qrcode - a QR code linking to the business page
func (qc *QRCodeController) GenerateBusinessQRCode(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Business not found"})
		return
	}

	if _, err := qc.catalogService.GetBusiness(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Business not found"})
			return
		}
		internalError(c)
		return
	}

	pageURL := fmt.Sprintf("%s/business/%d", qc.baseURL, id)

	// Generate QR code (256x256 pixels, medium error recovery)
	qrCode, err := qrcode.New(pageURL, qrcode.Medium)
	if err != nil {
		qc.log.Error().Err(err).Str("url", pageURL).Msg("failed to generate QR code")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate QR code"})
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		qc.log.Error().Err(err).Str("url", pageURL).Msg("failed to encode QR code")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate QR code image"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=business-%d.png", id))
	c.Data(http.StatusOK, "image/png", pngData)
}
