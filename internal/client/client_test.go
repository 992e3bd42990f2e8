package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/agenda"
	"github.com/justsurfingit/job-search-tracker/internal/config"
	"github.com/justsurfingit/job-search-tracker/internal/database"
	"github.com/justsurfingit/job-search-tracker/internal/handlers"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"github.com/justsurfingit/job-search-tracker/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAPI serves the real routes over an in-memory database.
func newAPI(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	tasks := services.NewTaskService(db)
	router := gin.New()
	handlers.RegisterRoutes(router, &handlers.Services{
		Applications: services.NewApplicationService(db),
		Contacts:     services.NewContactService(db),
		Watchlist:    services.NewWatchlistService(db),
		Tasks:        tasks,
		Stats:        services.NewStatsService(db, tasks),
		Uploads:      services.NewUploadService(nil),
		LLM:          services.NewLLMService(nil),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func createApplication(t *testing.T, c *Client, fields map[string]any) models.Application {
	t.Helper()
	var app models.Application
	require.NoError(t, c.do(context.Background(), http.MethodPost, "/api/applications", fields, &app))
	return app
}

func TestMutate(t *testing.T) {
	ctx := context.Background()
	var calls []string
	apply := func() { calls = append(calls, "apply") }
	reconcile := func(context.Context) error {
		calls = append(calls, "reconcile")
		return nil
	}

	err := Mutate(ctx, apply, func(context.Context) error { return nil }, reconcile)
	require.NoError(t, err)
	assert.Equal(t, []string{"apply"}, calls)

	calls = nil
	boom := errors.New("boom")
	err = Mutate(ctx, apply, func(context.Context) error { return boom }, reconcile)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"apply", "reconcile"}, calls)

	refetch := errors.New("refetch failed")
	err = Mutate(ctx, nil, func(context.Context) error { return boom }, func(context.Context) error { return refetch })
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, refetch)
}

func TestCache(t *testing.T) {
	type row struct{ ID, Name string }
	c := NewCache(func(r row) string { return r.ID })
	assert.False(t, c.Loaded())

	c.Replace([]row{{"a", "one"}, {"b", "two"}})
	assert.True(t, c.Loaded())

	c.Prepend(row{"z", "first"})
	c.Put(row{"c", "three"})
	c.Put(row{"a", "uno"})
	assert.Equal(t, []row{{"z", "first"}, {"a", "uno"}, {"b", "two"}, {"c", "three"}}, c.Items())

	assert.True(t, c.Update("b", func(r *row) { r.Name = "dos" }))
	assert.False(t, c.Update("missing", func(*row) {}))
	got, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "dos", got.Name)

	assert.True(t, c.Remove("z"))
	assert.False(t, c.Remove("z"))
	assert.Len(t, c.Items(), 3)

	c.Reset()
	assert.False(t, c.Loaded())
	assert.Empty(t, c.Items())
}

func TestAPIError(t *testing.T) {
	c := newAPI(t)
	_, err := c.UpdateApplication(context.Background(), "missing", map[string]any{"notes": "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Application not found", apiErr.Message)
}

func TestBoardMove(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)
	app := createApplication(t, c, map[string]any{"company": "Acme", "position": "Engineer", "status": "APPLIED"})

	board := NewBoard(c)
	require.NoError(t, board.Load(ctx))
	require.Len(t, board.Column(models.StatusApplied), 1)

	from := Position{Status: models.StatusApplied, Index: 0}
	require.NoError(t, board.Move(ctx, app.ID, from, Position{Status: models.StatusInterview, Index: 0}))
	assert.Empty(t, board.Column(models.StatusApplied))
	assert.Len(t, board.Column(models.StatusInterview), 1)

	apps, err := c.ListApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, apps[0].Status)
}

// flakyServer keeps one application and refuses every status change.
type flakyServer struct {
	mu      sync.Mutex
	app     models.Application
	lists   int
	updates int
}

func (f *flakyServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		f.lists++
		_ = json.NewEncoder(w).Encode([]models.Application{f.app})
	case http.MethodPut:
		f.updates++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to update application"}`))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestBoardMoveFailureRefetches(t *testing.T) {
	ctx := context.Background()
	fake := &flakyServer{app: models.Application{ID: "app-1", Company: "Acme", Status: models.StatusApplied}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	board := NewBoard(New(srv.URL))
	require.NoError(t, board.Load(ctx))

	from := Position{Status: models.StatusApplied, Index: 0}
	err := board.Move(ctx, "app-1", from, Position{Status: models.StatusInterview, Index: 0})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 1, fake.updates)
	assert.Equal(t, 2, fake.lists)
	assert.Len(t, board.Column(models.StatusApplied), 1)
	assert.Empty(t, board.Column(models.StatusInterview))
}

func TestBoardMoveSamePositionIsNoop(t *testing.T) {
	fake := &flakyServer{app: models.Application{ID: "app-1", Status: models.StatusApplied}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	pos := Position{Status: models.StatusApplied, Index: 2}
	require.NoError(t, NewBoard(New(srv.URL)).Move(context.Background(), "app-1", pos, pos))
	assert.Zero(t, fake.updates)
	assert.Zero(t, fake.lists)
}

func TestTaskListCompletesNextStepOnApplication(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	app := createApplication(t, c, map[string]any{
		"company":      "Acme",
		"position":     "Engineer",
		"status":       "APPLIED",
		"nextStep":     "Call recruiter",
		"nextStepDate": tomorrow,
	})

	list := NewTaskList(c)
	_, err := list.Create(ctx, map[string]any{"title": "Update CV"})
	require.NoError(t, err)
	require.NoError(t, list.Load(ctx))
	require.Len(t, list.Items(), 2)

	stepID := agenda.NextStepPrefix + app.ID
	assert.ErrorIs(t, list.Delete(ctx, stepID), ErrNextStepDeletion)

	require.NoError(t, list.SetCompleted(ctx, stepID, true))
	require.Len(t, list.Items(), 1)

	apps, err := c.ListApplications(ctx)
	require.NoError(t, err)
	assert.Nil(t, apps[0].NextStep)
	assert.Nil(t, apps[0].NextStepDate)

	require.NoError(t, list.Load(ctx))
	require.Len(t, list.Items(), 1)
	assert.Equal(t, agenda.TypeTask, list.Items()[0].Type)
}

func TestTaskListToggleAndDelete(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)
	list := NewTaskList(c)

	item, err := list.Create(ctx, map[string]any{"title": "Send thank-you note"})
	require.NoError(t, err)

	require.NoError(t, list.SetCompleted(ctx, item.ID, true))
	got, ok := list.cache.Get(item.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)

	assert.ErrorIs(t, list.SetCompleted(ctx, "unknown", true), ErrUnknownItem)

	require.NoError(t, list.Delete(ctx, item.ID))
	assert.Empty(t, list.Items())

	remaining, err := c.ListTasks(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
