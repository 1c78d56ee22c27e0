package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Krzemon/Instruments-Graph/internal/errors"
	"github.com/Krzemon/Instruments-Graph/internal/pagination"
	"github.com/Krzemon/Instruments-Graph/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService     services.AssetServicer
	analyticsService services.AnalyticsServicer
	portfolioService services.PortfolioServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(
	assetService services.AssetServicer,
	analyticsService services.AnalyticsServicer,
	portfolioService services.PortfolioServicer,
) *AssetHandler {
	return &AssetHandler{
		assetService:     assetService,
		analyticsService: analyticsService,
		portfolioService: portfolioService,
	}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	ID         string  `json:"id" binding:"required,asset_id"`
	Name       string  `json:"name" binding:"required,min=1,max=200"`
	AssetClass string  `json:"asset_class" binding:"required,min=1,max=100"`
	Ticker     *string `json:"ticker,omitempty" binding:"omitempty,max=32"`
	Currency   string  `json:"currency" binding:"omitempty,iso4217"`
}

// CreateAsset handles creating a new asset.
// @Summary     Create asset
// @Description Create an asset node with its class link and price companion
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} map[string]interface{} "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate asset"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(req.ID, req.Name, req.AssetClass, req.Ticker, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"asset":   asset,
		"message": "Asset " + asset.ID + " created",
	})
}

// ListAssets handles listing assets.
// @Summary     List assets
// @Description Get a paginated list of assets with class, risk score, and stored price
// @Tags        assets
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[services.AssetView]
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assets, err := h.assetService.ListAssets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

// GetAsset handles fetching a single asset.
// @Summary     Get asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} services.AssetView
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetAsset(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteAsset handles removing an asset and its dependent records.
// @Summary     Delete asset
// @Description Delete an asset with its price, holding, and correlation edges
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} map[string]string "Asset deleted"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	if err := h.assetService.DeleteAsset(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset " + id + " deleted"})
}

// RefreshPrice handles a manual single-asset price refresh.
// @Summary     Refresh asset price
// @Description Refresh the stored price from the feed's 5-day lookback; the previous price is preserved when no trading data exists
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} services.PriceRefreshResult
// @Failure     400 {object} ErrorResponse "Asset has no ticker"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     502 {object} ErrorResponse "Feed unavailable"
// @Router      /assets/{id}/price [put]
func (h *AssetHandler) RefreshPrice(c *gin.Context) {
	result, err := h.analyticsService.RefreshAssetPrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Values handles listing holding values converted to the base currency.
// @Summary     Holding values
// @Description Market value of each holding, converted to the configured base currency
// @Tags        assets
// @Produce     json
// @Success     200 {array} services.AssetValue
// @Failure     502 {object} ErrorResponse "Feed unavailable"
// @Router      /assets/values [get]
func (h *AssetHandler) Values(c *gin.Context) {
	values, err := h.portfolioService.Values(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, values)
}
