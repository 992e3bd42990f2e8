package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/services"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Applications *services.ApplicationService
	Contacts     *services.ContactService
	Watchlist    *services.WatchlistService
	Tasks        *services.TaskService
	Stats        *services.StatsService
	Uploads      *services.UploadService
	LLM          *services.LLMService
}

// RegisterRoutes mounts /health and the /api group on r.
func RegisterRoutes(r gin.IRouter, svc *Services) {
	applicationHandler := NewApplicationHandler(svc.Applications, svc.LLM)
	contactHandler := NewContactHandler(svc.Contacts)
	watchlistHandler := NewWatchlistHandler(svc.Watchlist)
	taskHandler := NewTaskHandler(svc.Tasks)
	statsHandler := NewStatsHandler(svc.Stats)
	calendarHandler := NewCalendarHandler(svc.Tasks)
	uploadHandler := NewUploadHandler(svc.Uploads)

	r.GET("/health", HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		api.GET("/applications", applicationHandler.List)
		api.POST("/applications", applicationHandler.Create)
		api.POST("/applications/extract", applicationHandler.Extract)
		api.GET("/applications/:id", applicationHandler.Get)
		api.PUT("/applications/:id", applicationHandler.Update)
		api.DELETE("/applications/:id", applicationHandler.Delete)

		api.GET("/contacts", contactHandler.List)
		api.POST("/contacts", contactHandler.Create)
		api.GET("/contacts/:id", contactHandler.Get)
		api.PUT("/contacts/:id", contactHandler.Update)
		api.DELETE("/contacts/:id", contactHandler.Delete)
		api.POST("/contacts/:id/interactions", contactHandler.AddInteraction)
		api.POST("/contacts/:id/reminders", contactHandler.AddReminder)
		api.PUT("/contacts/:id/reminders", contactHandler.UpdateReminder)

		api.GET("/watchlist", watchlistHandler.List)
		api.POST("/watchlist", watchlistHandler.Create)
		api.GET("/watchlist/:id", watchlistHandler.Get)
		api.PUT("/watchlist/:id", watchlistHandler.Update)
		api.DELETE("/watchlist/:id", watchlistHandler.Delete)

		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks", taskHandler.Create)
		api.GET("/tasks/:id", taskHandler.Get)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)

		api.GET("/stats", statsHandler.Get)
		api.GET("/calendar", calendarHandler.Get)

		api.POST("/upload", uploadHandler.Upload)
		api.DELETE("/upload", uploadHandler.Delete)
	}
}
