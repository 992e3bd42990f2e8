package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	LLMService   *services.LLMService
}

func NewApplicationHandler(apps *services.ApplicationService, llm *services.LLMService) *ApplicationHandler {
	return &ApplicationHandler{
		Applications: apps,
		LLMService:   llm,
	}
}

// List is GET /applications
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.Applications.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Application", "fetch applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.Applications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Application", "fetch application")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	app, err := h.Applications.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Application", "create application")
		return
	}
	c.JSON(http.StatusCreated, app)
}

// Update is PUT /applications/:id. It also serves completing a next step,
// which clears nextStep and nextStepDate.
func (h *ApplicationHandler) Update(c *gin.Context) {
	var req dtos.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	app, err := h.Applications.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Application", "update application")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.Applications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Application", "delete application")
		return
	}
	deleted(c)
}

// Extract is POST /applications/extract
func (h *ApplicationHandler) Extract(c *gin.Context) {
	if !h.LLMService.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Extraction not configured. Please set GEMINI_API_KEY."})
		return
	}

	var req dtos.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	draft, err := h.LLMService.ExtractApplication(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Application", "extract job posting")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}
