package agenda

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

var base = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func TestMergeOrderScenario(t *testing.T) {
	d0 := base.AddDate(0, 0, 1)
	d1 := base.AddDate(0, 0, 2)
	tasks := []models.Task{
		{ID: "T1", Title: "undated", CreatedAt: base},
		{ID: "T2", Title: "dated", DueDate: &d1, CreatedAt: base},
		{ID: "T3", Title: "done", DueDate: &d0, Completed: true, CreatedAt: base},
	}

	got := Merge(Tasks(tasks))
	assert.Equal(t, []string{"T2", "T1", "T3"}, ids(got))
}

func TestMergeWithNextSteps(t *testing.T) {
	early := base.AddDate(0, 0, 1)
	late := base.AddDate(0, 0, 5)
	apps := []models.Application{
		{ID: "a1", Company: "Acme", Position: "Dev", Status: models.StatusInterview, NextStep: ptr("Onsite"), NextStepDate: &early},
		{ID: "a2", Company: "Closed", Position: "Dev", Status: models.StatusRejected, NextStep: ptr("Nothing"), NextStepDate: &early},
		{ID: "a3", Company: "NoDate", Position: "Dev", Status: models.StatusApplied, NextStep: ptr("Wait")},
	}
	tasks := []models.Task{
		{ID: "t-late", DueDate: &late, CreatedAt: base},
		{ID: "t-old", CreatedAt: base.Add(-time.Hour)},
		{ID: "t-new", CreatedAt: base.Add(time.Hour)},
	}

	now := base.Add(2 * time.Hour)
	got := Merge(Tasks(tasks), NextSteps(apps, now))
	assert.Equal(t, []string{"nextstep-a1", "t-late", "t-new", "t-old"}, ids(got))
}

func TestCompareIsStableOnTies(t *testing.T) {
	due := base.AddDate(0, 0, 3)
	tasks := []models.Task{
		{ID: "first", DueDate: &due, CreatedAt: base},
		{ID: "second", DueDate: &due, CreatedAt: base.Add(time.Hour)},
	}
	assert.Equal(t, []string{"first", "second"}, ids(Merge(Tasks(tasks))))
	assert.False(t, Less(FromTask(&tasks[0]), FromTask(&tasks[1])))
}

func TestNextStepItemJSON(t *testing.T) {
	due := base.AddDate(0, 0, 1)
	app := models.Application{
		ID: "a1", Company: "Acme", Position: "Dev", Status: models.StatusApplied,
		CompanyWebsite: ptr("https://acme.test"), JobURL: ptr("https://acme.test/jobs/1"),
		NextStep: ptr("Phone screen"), NextStepDate: &due,
	}

	data, err := json.Marshal(FromNextStep(&app, base))
	require.NoError(t, err)

	var v View
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, "nextstep-a1", v.ID)
	assert.Equal(t, TypeNextStep, v.Type)
	assert.Equal(t, "Phone screen", v.Title)
	assert.Nil(t, v.Description)
	assert.False(t, v.Completed)
	assert.Equal(t, "https://acme.test/jobs/1", *v.Link)
	assert.Equal(t, "a1", *v.ApplicationID)
	assert.Nil(t, v.WatchlistID)
	assert.Equal(t, "Acme", v.Application.Company)
	assert.Nil(t, v.Contact)
}

func TestTaskItemJSON(t *testing.T) {
	task := models.Task{
		ID: "t1", Title: "Email recruiter", ContactID: ptr("c1"), CreatedAt: base,
		Contact: &models.Contact{ID: "c1", Name: "Ana", Company: ptr("Acme")},
	}

	data, err := json.Marshal(FromTask(&task))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "task", raw["type"])
	assert.Equal(t, map[string]any{"id": "c1", "name": "Ana", "company": "Acme"}, raw["contact"])
	assert.Nil(t, raw["application"])
}

func TestIsNextStepID(t *testing.T) {
	id, ok := IsNextStepID("nextstep-abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = IsNextStepID("abc")
	assert.False(t, ok)
	_, ok = IsNextStepID("nextstep-")
	assert.False(t, ok)
}
