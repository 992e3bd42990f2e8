package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/calendar"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

type CalendarHandler struct {
	Tasks *services.TaskService
	Clock services.Clock
}

// NewCalendarHandler uses the task service's clock.
func NewCalendarHandler(tasks *services.TaskService) *CalendarHandler {
	return &CalendarHandler{Tasks: tasks, Clock: tasks.Clock}
}

type calendarResponse struct {
	View         calendar.View  `json:"view"`
	Label        string         `json:"label"`
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
	Days         []calendar.Day `json:"days"`
	UndatedCount int            `json:"undatedCount"`
}

// Get is GET /calendar?view=month&date=2026-01-15. The date defaults to today
// in the server's time zone.
func (h *CalendarHandler) Get(c *gin.Context) {
	view, err := calendar.ParseView(c.Query("view"))
	if err != nil {
		badRequest(c, err)
		return
	}

	anchor := h.Clock.Now()
	if raw := c.Query("date"); raw != "" {
		if anchor, err = dtos.ParseDate(raw); err != nil {
			badRequest(c, err)
			return
		}
	}

	items, err := h.Tasks.List(c.Request.Context(), services.TaskFilter{IncludeNextSteps: true})
	if err != nil {
		respondError(c, err, "Task", "fetch calendar")
		return
	}

	cal := calendar.New(anchor, view, h.Clock.Now)
	days, undated := cal.Bucket(items)
	start, end := cal.Range()
	c.JSON(http.StatusOK, calendarResponse{
		View:         view,
		Label:        cal.HeaderLabel(),
		Start:        start,
		End:          end,
		Days:         days,
		UndatedCount: undated,
	})
}
