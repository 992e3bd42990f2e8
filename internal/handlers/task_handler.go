package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/agenda"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

type TaskHandler struct {
	Tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

// taskFilter reads the list query. Next steps are included unless
// includeNextSteps is exactly "false".
func taskFilter(c *gin.Context) services.TaskFilter {
	f := services.TaskFilter{
		ApplicationID:    c.Query("applicationId"),
		WatchlistID:      c.Query("watchlistId"),
		ContactID:        c.Query("contactId"),
		IncludeNextSteps: c.Query("includeNextSteps") != "false",
	}
	if v, ok := c.GetQuery("completed"); ok {
		completed := v == "true"
		f.Completed = &completed
	}
	return f
}

// List is GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	items, err := h.Tasks.List(c.Request.Context(), taskFilter(c))
	if err != nil {
		respondError(c, err, "Task", "fetch tasks")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.Tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Task", "fetch task")
		return
	}
	c.JSON(http.StatusOK, agenda.FromTask(task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req dtos.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	task, err := h.Tasks.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Task", "create task")
		return
	}
	c.JSON(http.StatusCreated, agenda.FromTask(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req dtos.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	task, err := h.Tasks.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Task", "update task")
		return
	}
	c.JSON(http.StatusOK, agenda.FromTask(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.Tasks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Task", "delete task")
		return
	}
	deleted(c)
}
