package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Krzemon/Instruments-Graph/internal/errors"
	"github.com/Krzemon/Instruments-Graph/internal/services"
)

// PortfolioHandler handles portfolio holding requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// AddHoldingRequest represents the request payload for adding to a holding.
type AddHoldingRequest struct {
	AssetID string  `json:"asset_id" binding:"required,asset_id"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
}

// UpdateHoldingRequest represents the request payload for replacing an amount.
// Zero removes the holding.
type UpdateHoldingRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// List handles listing the portfolio's holdings.
// @Summary     List holdings
// @Description Holdings joined with asset, class, and stored price
// @Tags        portfolio
// @Produce     json
// @Success     200 {array} graph.HoldingValue
// @Router      /portfolio [get]
func (h *PortfolioHandler) List(c *gin.Context) {
	holdings, err := h.portfolioService.ListHoldings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, holdings)
}

// Add handles accumulating an amount into a holding.
// @Summary     Add holding
// @Description Add an amount to an asset's holding, creating it if absent
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       request body AddHoldingRequest true "Holding details"
// @Success     200 {object} models.Holding
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /portfolio [post]
func (h *PortfolioHandler) Add(c *gin.Context) {
	var req AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.portfolioService.AddHolding(req.AssetID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// Update handles replacing a holding's amount. Amount zero removes the holding.
// @Summary     Update holding
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       asset_id path string true "Asset ID"
// @Param       request body UpdateHoldingRequest true "New amount"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse "Negative amount"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Router      /portfolio/{asset_id} [put]
func (h *PortfolioHandler) Update(c *gin.Context) {
	var req UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	assetID := c.Param("asset_id")
	holding, err := h.portfolioService.UpdateHolding(assetID, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if holding == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Holding " + assetID + " removed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// Remove handles deleting a holding.
// @Summary     Remove holding
// @Tags        portfolio
// @Produce     json
// @Param       asset_id path string true "Asset ID"
// @Success     200 {object} map[string]string
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Router      /portfolio/{asset_id} [delete]
func (h *PortfolioHandler) Remove(c *gin.Context) {
	assetID := c.Param("asset_id")
	if err := h.portfolioService.RemoveHolding(assetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Holding " + assetID + " removed"})
}

// ClassDistribution handles the per-class value breakdown.
// @Summary     Class distribution
// @Description Portfolio value per asset class with percentage shares, in the base currency
// @Tags        portfolio
// @Produce     json
// @Success     200 {array} services.ClassSlice
// @Failure     502 {object} ErrorResponse "Feed unavailable"
// @Router      /portfolio/class-distribution [get]
func (h *PortfolioHandler) ClassDistribution(c *gin.Context) {
	slices, err := h.portfolioService.ClassDistribution(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, slices)
}

// Graph handles the held-asset correlation subgraph.
// @Summary     Portfolio graph
// @Description Held assets and the correlation edges between them
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} graph.PortfolioGraph
// @Router      /portfolio/graph [get]
func (h *PortfolioHandler) Graph(c *gin.Context) {
	g, err := h.portfolioService.Graph()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}
