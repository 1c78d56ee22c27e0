package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krzemon/Instruments-Graph/internal/services"
)

// RecommendHandler handles recommendation read projections.
type RecommendHandler struct {
	recommendService services.RecommendServicer
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(recommendService services.RecommendServicer) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

// TopCorrelated handles the top-correlated lookup for one asset.
// @Summary     Top correlated assets
// @Description Assets most strongly correlated (by absolute value) with the given asset
// @Tags        recommend
// @Produce     json
// @Param       id    path  string true  "Asset ID"
// @Param       limit query int    false "Max results (default 5)"
// @Success     200 {array} graph.CorrelatedAsset
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /recommend/top_correlated/{id} [get]
func (h *RecommendHandler) TopCorrelated(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.recommendService.TopCorrelated(c.Param("id"), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Diversifiers handles the diversifier recommendation.
// @Summary     Diversifier candidates
// @Description Non-held assets with the lowest average absolute correlation to the current holdings
// @Tags        recommend
// @Produce     json
// @Param       limit query int false "Max results (default 5)"
// @Success     200 {array} graph.Diversifier
// @Router      /recommend/diversifiers [get]
func (h *RecommendHandler) Diversifiers(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.recommendService.Diversifiers(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
