package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"mocktest-service/internal/trend"
)

type TrendHandler struct {
	Analyzer *trend.Analyzer
}

func NewTrendHandler(a *trend.Analyzer) *TrendHandler {
	return &TrendHandler{Analyzer: a}
}

// AnalyzeTrends recomputes every concept's trend row and invalidates
// the ranking cache.
func (h *TrendHandler) AnalyzeTrends(c *gin.Context) {
	trends, err := h.Analyzer.AnalyzeTrends(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyzed": len(trends), "trends": trends})
}

func (h *TrendHandler) GetConceptRanking(c *gin.Context) {
	snapshot, err := h.Analyzer.GetSnapshot(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
