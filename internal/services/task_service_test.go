package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/agenda"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIDs(items []agenda.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

func TestTaskListMergeOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	svc.Clock = fixedClock

	d0 := fixedNow.AddDate(0, 0, 1)
	d1 := fixedNow.AddDate(0, 0, 2)
	t1 := seedTask(t, db, models.Task{Title: "T1", CreatedAt: fixedNow.Add(-time.Hour)})
	t2 := seedTask(t, db, models.Task{Title: "T2", DueDate: &d1})
	t3 := seedTask(t, db, models.Task{Title: "T3", DueDate: &d0, Completed: true})

	items, err := svc.List(ctx(), TaskFilter{IncludeNextSteps: true})
	require.NoError(t, err)
	assert.Equal(t, []string{t2.ID, t1.ID, t3.ID}, itemIDs(items))
}

func TestTaskListIncludesNextSteps(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	svc.Clock = fixedClock

	soon := fixedNow.AddDate(0, 0, 1)
	later := fixedNow.AddDate(0, 0, 3)
	open := seedApplication(t, db, models.Application{Status: models.StatusInterview, NextStep: ptr("Onsite"), NextStepDate: &soon, JobURL: ptr("https://acme.test/job")})
	seedApplication(t, db, models.Application{Status: models.StatusArchived, NextStep: ptr("Old"), NextStepDate: &soon})
	seedApplication(t, db, models.Application{NextStep: ptr("Undated")})
	task := seedTask(t, db, models.Task{Title: "Prep", DueDate: &later})

	items, err := svc.List(ctx(), TaskFilter{IncludeNextSteps: true})
	require.NoError(t, err)
	require.Equal(t, []string{"nextstep-" + open.ID, task.ID}, itemIDs(items))

	v := items[0].View()
	assert.Equal(t, agenda.TypeNextStep, v.Type)
	assert.Equal(t, "Onsite", v.Title)
	assert.Equal(t, "https://acme.test/job", *v.Link)
	assert.Equal(t, fixedNow, v.CreatedAt)

	withoutNext, err := svc.List(ctx(), TaskFilter{IncludeNextSteps: false})
	require.NoError(t, err)
	assert.Equal(t, []string{task.ID}, itemIDs(withoutNext))

	filtered, err := svc.List(ctx(), TaskFilter{ApplicationID: open.ID, IncludeNextSteps: true})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	done := seedTask(t, db, models.Task{Title: "Sent thank-you", Completed: true})
	completed, err := svc.List(ctx(), TaskFilter{Completed: ptr(true), IncludeNextSteps: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"nextstep-" + open.ID, done.ID}, itemIDs(completed))
}

func TestTaskListFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	app := seedApplication(t, db, models.Application{})
	linked := seedTask(t, db, models.Task{Title: "linked", ApplicationID: &app.ID})
	seedTask(t, db, models.Task{Title: "loose"})
	done := seedTask(t, db, models.Task{Title: "done", Completed: true})

	items, err := svc.List(ctx(), TaskFilter{ApplicationID: app.ID})
	require.NoError(t, err)
	require.Equal(t, []string{linked.ID}, itemIDs(items))
	assert.Equal(t, app.Company, items[0].View().Application.Company)

	items, err = svc.List(ctx(), TaskFilter{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{done.ID}, itemIDs(items))
}

func TestCompletingNextStepLeavesTasksAlone(t *testing.T) {
	db := setupTestDB(t)
	tasks := NewTaskService(db)
	tasks.Clock = fixedClock
	apps := NewApplicationService(db)

	due := fixedNow.AddDate(0, 0, 1)
	app := seedApplication(t, db, models.Application{NextStep: ptr("Call back"), NextStepDate: &due})
	seedTask(t, db, models.Task{Title: "unrelated"})

	var before int64
	require.NoError(t, db.Model(&models.Task{}).Count(&before).Error)

	var clear dtos.UpdateApplicationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"nextStep":null,"nextStepDate":null}`), &clear))
	_, err := apps.Update(ctx(), app.ID, &clear)
	require.NoError(t, err)

	var after int64
	require.NoError(t, db.Model(&models.Task{}).Count(&after).Error)
	assert.Equal(t, before, after)

	items, err := tasks.List(ctx(), TaskFilter{IncludeNextSteps: true})
	require.NoError(t, err)
	for _, it := range items {
		assert.Equal(t, agenda.TypeTask, it.Type())
	}
}

func TestTaskCreateLinkValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	contact := models.Contact{Name: "Ana", Company: ptr("Acme")}
	require.NoError(t, db.Create(&contact).Error)

	task, err := svc.Create(ctx(), &dtos.CreateTaskRequest{Title: "Thank-you note", ContactID: contact.ID})
	require.NoError(t, err)
	require.NotNil(t, task.Contact)
	assert.Equal(t, "Ana", task.Contact.Name)

	_, err = svc.Create(ctx(), &dtos.CreateTaskRequest{Title: "x", ApplicationID: "a", ContactID: contact.ID})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Create(ctx(), &dtos.CreateTaskRequest{Title: "x", WatchlistID: "missing"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTaskUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	app := seedApplication(t, db, models.Application{})
	company := models.WatchlistCompany{Name: "Globex"}
	require.NoError(t, db.Create(&company).Error)
	task := seedTask(t, db, models.Task{Title: "Apply", ApplicationID: &app.ID, Description: ptr("keep")})

	var req dtos.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"completed":true,"watchlistId":"`+company.ID+`"}`), &req))
	got, err := svc.Update(ctx(), task.ID, &req)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "keep", *got.Description)
	assert.Equal(t, models.LinkToWatchlist(company.ID), got.Target())
	assert.Nil(t, got.ApplicationID)

	_, err = svc.Update(ctx(), "nextstep-"+app.ID, &dtos.UpdateTaskRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)
	task := seedTask(t, db, models.Task{Title: "x"})

	require.NoError(t, svc.Delete(ctx(), task.ID))
	_, err := svc.Get(ctx(), task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx(), "nextstep-abc"), ErrNotFound)
}
