package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactListTrimsInteractions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(db)
	svc.Clock = fixedClock

	contact, err := svc.Create(ctx(), &dtos.CreateContactRequest{Name: "Ana", Company: "Acme"})
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		when := dtos.Date{Time: fixedNow.AddDate(0, 0, -i)}
		_, err := svc.AddInteraction(ctx(), contact.ID, &dtos.CreateInteractionRequest{Content: "note", Date: &when})
		require.NoError(t, err)
	}
	done, err := svc.AddReminder(ctx(), contact.ID, &dtos.CreateReminderRequest{Title: "done", DueDate: &dtos.Date{Time: fixedNow}})
	require.NoError(t, err)
	_, err = svc.SetReminderCompleted(ctx(), contact.ID, done.ID, true)
	require.NoError(t, err)
	_, err = svc.AddReminder(ctx(), contact.ID, &dtos.CreateReminderRequest{Title: "open", DueDate: &dtos.Date{Time: fixedNow.AddDate(0, 0, 1)}})
	require.NoError(t, err)

	contacts, err := svc.List(ctx())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	got := contacts[0]
	require.Len(t, got.Interactions, 5)
	assert.True(t, fixedNow.Equal(got.Interactions[0].Date))
	require.Len(t, got.Reminders, 1)
	assert.Equal(t, "open", got.Reminders[0].Title)

	detail, err := svc.Get(ctx(), contact.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Interactions, 7)
	assert.Len(t, detail.Reminders, 2)
}

func TestAddInteractionDefaultsDate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(db)
	svc.Clock = fixedClock
	contact, err := svc.Create(ctx(), &dtos.CreateContactRequest{Name: "Ana"})
	require.NoError(t, err)

	in, err := svc.AddInteraction(ctx(), contact.ID, &dtos.CreateInteractionRequest{Content: "coffee"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, in.Date)

	_, err = svc.AddInteraction(ctx(), "missing", &dtos.CreateInteractionRequest{Content: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetReminderCompletedScopedToContact(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(db)
	a, err := svc.Create(ctx(), &dtos.CreateContactRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx(), &dtos.CreateContactRequest{Name: "B"})
	require.NoError(t, err)

	r, err := svc.AddReminder(ctx(), a.ID, &dtos.CreateReminderRequest{Title: "ping", DueDate: &dtos.Date{Time: fixedNow}})
	require.NoError(t, err)

	_, err = svc.SetReminderCompleted(ctx(), b.ID, r.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.SetReminderCompleted(ctx(), a.ID, r.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestContactUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(db)
	app := seedApplication(t, db, models.Application{})

	contact, err := svc.Create(ctx(), &dtos.CreateContactRequest{Name: "Ana", Email: "ana@acme.test", ApplicationIDs: []string{app.ID}})
	require.NoError(t, err)
	_, err = svc.AddInteraction(ctx(), contact.ID, &dtos.CreateInteractionRequest{Content: "hi"})
	require.NoError(t, err)
	task := seedTask(t, db, models.Task{ContactID: &contact.ID})

	var req dtos.UpdateContactRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":null,"phone":"555"}`), &req))
	updated, err := svc.Update(ctx(), contact.ID, &req)
	require.NoError(t, err)
	assert.Nil(t, updated.Email)
	assert.Equal(t, "555", *updated.Phone)
	assert.Equal(t, "Ana", updated.Name)
	require.Len(t, updated.Applications, 1)

	require.NoError(t, svc.Delete(ctx(), contact.ID))

	var interactions int64
	require.NoError(t, db.Model(&models.Interaction{}).Count(&interactions).Error)
	assert.Zero(t, interactions)

	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, "id = ?", task.ID).Error)
	assert.Nil(t, reloaded.ContactID)

	var apps int64
	require.NoError(t, db.Model(&models.Application{}).Count(&apps).Error)
	assert.EqualValues(t, 1, apps)

	_, err = svc.Get(ctx(), contact.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatchlistCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWatchlistService(db)

	first, err := svc.Create(ctx(), &dtos.CreateWatchlistRequest{Name: "Globex", CareersURL: "https://globex.test/careers"})
	require.NoError(t, err)
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	second, err := svc.Create(ctx(), &dtos.CreateWatchlistRequest{Name: "Initech"})
	require.NoError(t, err)
	assert.Nil(t, second.CareersURL)

	list, err := svc.List(ctx())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	var req dtos.UpdateWatchlistRequest
	require.NoError(t, json.Unmarshal([]byte(`{"notes":"hiring in Q2","careersUrl":null}`), &req))
	updated, err := svc.Update(ctx(), first.ID, &req)
	require.NoError(t, err)
	assert.Equal(t, "hiring in Q2", *updated.Notes)
	assert.Nil(t, updated.CareersURL)
	assert.Equal(t, "Globex", updated.Name)

	task := seedTask(t, db, models.Task{WatchlistID: &first.ID})
	require.NoError(t, svc.Delete(ctx(), first.ID))

	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, "id = ?", task.ID).Error)
	assert.Nil(t, reloaded.WatchlistID)

	assert.ErrorIs(t, svc.Delete(ctx(), first.ID), ErrNotFound)
}
