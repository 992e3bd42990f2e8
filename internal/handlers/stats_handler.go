package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

type StatsHandler struct {
	Stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

// Get is GET /stats
func (h *StatsHandler) Get(c *gin.Context) {
	dashboard, err := h.Stats.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Stats", "fetch stats")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
