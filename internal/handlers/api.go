package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutralab/quantisim/internal/engine"
	"github.com/nutralab/quantisim/internal/models"
)

// APIHandler exposes the analysis engine over HTTP
type APIHandler struct {
	analyzer *engine.Analyzer
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(analyzer *engine.Analyzer) *APIHandler {
	return &APIHandler{analyzer: analyzer}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	api := router.Group("/api/v1")
	{
		api.POST("/analyze", h.Analyze)
	}
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze runs one quantitative analysis request
func (h *APIHandler) Analyze(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.AnalysisResponse{
			Success: false,
			Error:   "invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, resp)
			return
		}
		log.Printf("analysis failed for user %s: %v", req.UserProfile.UserID, err)
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
