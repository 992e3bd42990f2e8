package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

type WatchlistHandler struct {
	Watchlist *services.WatchlistService
}

func NewWatchlistHandler(w *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{Watchlist: w}
}

func (h *WatchlistHandler) List(c *gin.Context) {
	companies, err := h.Watchlist.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Watchlist company", "fetch watchlist")
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *WatchlistHandler) Get(c *gin.Context) {
	company, err := h.Watchlist.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Watchlist company", "fetch watchlist company")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *WatchlistHandler) Create(c *gin.Context) {
	var req dtos.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	company, err := h.Watchlist.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Watchlist company", "create watchlist company")
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *WatchlistHandler) Update(c *gin.Context) {
	var req dtos.UpdateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	company, err := h.Watchlist.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Watchlist company", "update watchlist company")
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *WatchlistHandler) Delete(c *gin.Context) {
	if err := h.Watchlist.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Watchlist company", "delete watchlist company")
		return
	}
	deleted(c)
}
