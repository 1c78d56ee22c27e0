package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krzemon/Instruments-Graph/internal/services"
)

// AnalyticsHandler handles the batch analytics endpoints.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// CalculateCorrelations recomputes and persists the full correlation matrix.
// @Summary     Recompute correlations
// @Description Recompute the pairwise correlation matrix over a trailing 365-day window ending yesterday and persist every edge
// @Tags        analytics
// @Produce     json
// @Success     200 {object} services.CorrelationResult
// @Failure     400 {object} ErrorResponse "Fewer than 2 priced assets"
// @Failure     404 {object} ErrorResponse "Feed returned no data"
// @Failure     502 {object} ErrorResponse "Feed unavailable"
// @Router      /calculate-correlations [post]
func (h *AnalyticsHandler) CalculateCorrelations(c *gin.Context) {
	result, err := h.analyticsService.RecalculateCorrelations(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Correlations updated",
		"result":  result,
	})
}

// UpdateRisk recomputes and persists risk scores.
// @Summary     Recompute risk scores
// @Description Recompute trailing-volatility risk scores over a 60-day fetch window (last 30 returns) and persist them
// @Tags        analytics
// @Produce     json
// @Success     200 {object} services.RiskResult
// @Failure     400 {object} ErrorResponse "Fewer than 2 priced assets"
// @Failure     404 {object} ErrorResponse "Feed returned no data"
// @Failure     502 {object} ErrorResponse "Feed unavailable"
// @Router      /update-risk [get]
func (h *AnalyticsHandler) UpdateRisk(c *gin.Context) {
	result, err := h.analyticsService.UpdateRiskScores(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Risk scores updated",
		"result":  result,
	})
}
